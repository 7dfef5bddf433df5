package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/amiablealex/vantix/internal/usecase"
)

// chartError is the read-path error shape. Dashboards always receive a
// teams array, so a failed chart renders empty instead of crashing.
type chartError struct {
	Error string `json:"error"`
	Teams []any  `json:"teams"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"encode response","teams":[]}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeReadError(ctx context.Context, w http.ResponseWriter, err error) {
	writeJSON(ctx, w, readErrorStatus(err), chartError{
		Error: err.Error(),
		Teams: make([]any, 0),
	})
}

func readErrorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrLeagueNotCollected):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
