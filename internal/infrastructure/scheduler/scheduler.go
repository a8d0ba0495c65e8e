package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/riskibarqy/footmate/internal/platform/logging"
)

// ContractExpirer completes active contracts past their expiry date.
type ContractExpirer interface {
	CompleteExpired(ctx context.Context) (int, error)
}

// Scheduler runs the periodic background jobs.
type Scheduler struct {
	s      gocron.Scheduler
	logger *logging.Logger
}

func New(logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{s: s, logger: logger}, nil
}

// AddContractExpiry registers the contract expiry sweep. Overlapping runs are
// skipped rather than queued.
func (s *Scheduler) AddContractExpiry(expirer ContractExpirer, interval time.Duration, timeout time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("contract expiry interval must be positive")
	}
	if timeout <= 0 {
		timeout = interval
	}
	_, err := s.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			runContractExpiry(ctx, expirer, s.logger)
		}),
		gocron.WithName("contract-expiry"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register contract expiry job: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.s.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.s.Shutdown()
}

func runContractExpiry(ctx context.Context, expirer ContractExpirer, logger *logging.Logger) {
	start := time.Now()
	n, err := expirer.CompleteExpired(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "contract expiry sweep failed", "error", err)
		return
	}
	if n > 0 {
		logger.InfoContext(ctx, "contract expiry sweep completed",
			"completed", n,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
