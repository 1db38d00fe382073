package sync

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/sethvargo/go-retry"
)

// transport retries within a single scheduler slot; after that the next tick
// or kick picks the records up again
const maxTransportRetries = 5

// CycleRunner runs one sync cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// Scheduler drives the engine on an interval and on explicit kicks from the
// connectivity watcher. Cycles never overlap: Run is the only goroutine that
// calls the engine.
type Scheduler struct {
	runner      CycleRunner
	interval    time.Duration
	backoffBase time.Duration
	maxBackoff  time.Duration
	kick        chan struct{}
	logger      logging.Logger
}

func NewScheduler(runner CycleRunner, interval, backoffBase, maxBackoff time.Duration, logger logging.Logger) *Scheduler {
	return &Scheduler{
		runner:      runner,
		interval:    interval,
		backoffBase: backoffBase,
		maxBackoff:  maxBackoff,
		kick:        make(chan struct{}, 1),
		logger:      logger,
	}
}

// Kick requests a cycle as soon as possible, typically on an offline→online
// transition. Kicks during a running cycle coalesce into one.
func (s *Scheduler) Kick() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Run loops until ctx is cancelled. Cancellation takes effect between
// cycles; an in-flight batch finishes or times out on its own, and either
// way resubmission is safe.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-s.kick:
		}
		s.runOnce(ctx)
	}
}

// runOnce runs a cycle, retrying transport failures with capped exponential
// backoff. Non-transport errors are not retried here.
func (s *Scheduler) runOnce(ctx context.Context) {
	b := retry.WithCappedDuration(s.maxBackoff, retry.NewExponential(s.backoffBase))
	b = retry.WithMaxRetries(maxTransportRetries, b)

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		err := s.runner.RunCycle(ctx)
		if errors.Is(err, common.ErrTransport) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn(ctx, "sync cycle failed", "error", err)
	}
}
