package usecase

import (
	"context"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/amiablealex/vantix/internal/platform/logging"
)

// SchedulerService re-runs the collector on a fixed interval. Passes go
// through a size-1 worker pool in non-blocking mode, so a tick that fires
// while a pass is still running is declined rather than queued.
type SchedulerService struct {
	collector *CollectorService
	logger    *logging.Logger
	interval  time.Duration

	pool   *ants.Pool
	cancel context.CancelFunc
	done   chan struct{}
}

type SchedulerConfig struct {
	Collector *CollectorService
	Logger    *logging.Logger
	Interval  time.Duration
}

func NewSchedulerService(cfg SchedulerConfig) (*SchedulerService, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	pool, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	return &SchedulerService{
		collector: cfg.Collector,
		logger:    logger,
		interval:  interval,
		pool:      pool,
	}, nil
}

// Start launches the tick loop. The first pass runs immediately.
func (s *SchedulerService) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		s.logger.Info("scheduler started", "interval", s.interval)
		s.trigger(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.trigger(ctx)
			}
		}
	}()
}

func (s *SchedulerService) trigger(ctx context.Context) {
	err := s.pool.Submit(func() {
		results := s.collector.CollectAll(ctx)
		for _, result := range results {
			if result.Status == CollectStatusError {
				s.logger.WarnContext(ctx, "scheduled collection failed",
					"league_code", result.LeagueCode,
					"message", result.Message,
				)
			}
		}
	})
	if err != nil {
		s.logger.InfoContext(ctx, "scheduled collection declined, previous run still active")
	}
}

// Stop cancels the loop and waits for it to exit. A running pass observes
// the cancelled context and aborts at its next upstream call.
func (s *SchedulerService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.done != nil {
		<-s.done
	}
	s.pool.Release()
}
