package httpapi

import (
	"net/http"

	"github.com/amiablealex/vantix/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	refreshToken string,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerMetricRoutes(mux, handler)
	registerCollectionRoutes(mux, handler, refreshToken)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeJSON(ctx, w, http.StatusInternalServerError, chartError{Error: "internal server error", Teams: make([]any, 0)})
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
