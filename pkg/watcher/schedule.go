package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/langkey/pkg/logger"
)

// cronParser accepts standard 5-field expressions and descriptors such as
// "@every 10m" or "@hourly".
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler runs a flush function on a cron schedule. It backs up the
// file watcher where file system events are unreliable, such as network
// mounts and some container volumes.
type Scheduler struct {
	spec    string
	fn      func(context.Context) error
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	started bool
}

// ScheduleOption configures a Scheduler.
type ScheduleOption func(*Scheduler)

// WithScheduleLogger sets the logger. Defaults to a no-op logger.
func WithScheduleLogger(l *slog.Logger) ScheduleOption {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunTimeout bounds a single run. Defaults to 30 seconds.
func WithRunTimeout(d time.Duration) ScheduleOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Schedule creates a Scheduler that calls fn on spec.
//
//	s, err := watcher.Schedule("@every 5m", store.Invalidate)
func Schedule(spec string, fn func(context.Context) error, opts ...ScheduleOption) (*Scheduler, error) {
	if _, err := cronParser.Parse(spec); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, spec, err)
	}

	s := &Scheduler{
		spec:    spec,
		fn:      fn,
		logger:  logger.NewNope(),
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Next returns the first activation after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	sched, err := cronParser.Parse(s.spec)
	if err != nil {
		return time.Time{}
	}
	return sched.Next(t)
}

// Start begins running the schedule in the background. Runs never overlap;
// an activation that comes due while the previous run is busy is skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.cron = cron.New(
		cron.WithParser(cronParser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := s.cron.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
		s.cancel()
		return fmt.Errorf("%w %q: %w", ErrInvalidSchedule, s.spec, err)
	}

	s.cron.Start()
	s.started = true
	s.logger.InfoContext(ctx, "scheduled flush", slog.String("schedule", s.spec))
	return nil
}

// Shutdown stops the schedule and waits for a running flush to finish or
// for ctx to expire.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	c, cancel := s.cron, s.cancel
	s.mu.Unlock()

	stopped := c.Stop()
	defer cancel()

	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.fn(runCtx); err != nil {
		s.logger.ErrorContext(ctx, "scheduled flush failed", slog.Any("error", err))
		return
	}
	s.logger.DebugContext(ctx, "scheduled flush", slog.Duration("took", time.Since(start)))
}
