package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/amiablealex/vantix/external/fpl"
	"github.com/amiablealex/vantix/internal/config"
	"github.com/amiablealex/vantix/internal/infrastructure/repository/sqlite"
	"github.com/amiablealex/vantix/internal/interfaces/httpapi"
	"github.com/amiablealex/vantix/internal/platform/cache"
	"github.com/amiablealex/vantix/internal/platform/logging"
	"github.com/amiablealex/vantix/internal/platform/resilience"
	"github.com/amiablealex/vantix/internal/usecase"
)

// App bundles the wired service graph: the HTTP server, the refresh
// scheduler and the per-league store manager behind them.
type App struct {
	Server    *http.Server
	Scheduler *usecase.SchedulerService
	Collector *usecase.CollectorService

	stores *sqlite.Manager
	logger *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var metricCache *cache.Store
	if cfg.CacheEnabled {
		metricCache = cache.NewStore(cfg.CacheTTL)
	}

	stores := sqlite.NewManager(cfg.DataDir)

	upstream := fpl.NewClient(fpl.ClientConfig{
		BaseURL:      cfg.FPLBaseURL,
		Timeout:      cfg.FPLTimeout,
		MaxRetries:   cfg.FPLMaxRetries,
		RequestDelay: cfg.FPLRequestDelay,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})

	collector := usecase.NewCollectorService(usecase.CollectorConfig{
		Upstream: upstream,
		Stores:   stores,
		Registry: usecase.NewRunRegistry(),
		Cache:    metricCache,
		Logger:   logger,
		Leagues:  cfg.LeagueCodes,
	})

	metrics := usecase.NewMetricsService(usecase.MetricsConfig{
		Stores: stores,
		Cache:  metricCache,
		Logger: logger,
	})

	scheduler, err := usecase.NewSchedulerService(usecase.SchedulerConfig{
		Collector: collector,
		Logger:    logger,
		Interval:  cfg.RefreshInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("build scheduler: %w", err)
	}

	handler := httpapi.NewHandler(metrics, collector, stores, logger)
	router := httpapi.NewRouter(handler, logger, cfg.RefreshToken, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:    server,
		Scheduler: scheduler,
		Collector: collector,
		stores:    stores,
		logger:    logger,
	}, nil
}

// Close releases the open league store handles.
func (a *App) Close() error {
	if a == nil || a.stores == nil {
		return nil
	}
	return a.stores.Close()
}
