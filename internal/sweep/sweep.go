// Package sweep runs a one-shot batch of URL probes across a fixed
// pool of workers and collects exactly one outcome per input URL.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamed0406/sitesweep/internal/domain"
	"github.com/hamed0406/sitesweep/internal/probe"
)

var (
	// ErrNoTargets is returned when Run is asked to sweep an empty list.
	ErrNoTargets = errors.New("sweep: no targets")

	// ErrNoWorkers is returned when the worker count is below one.
	ErrNoWorkers = errors.New("sweep: worker count must be >= 1")
)

// Sweeper fans a target list out over Workers goroutines, each pulling
// from a shared queue and probing with the configured Checker. The
// Checker is shared by all workers and must be safe for concurrent use;
// HTTPChecker wrapped in RetryChecker is.
type Sweeper struct {
	Logger  *zap.Logger
	Checker probe.Checker
	Workers int

	// OnOutcome, if set, is called from the collector goroutine as each
	// outcome arrives, in arrival order. Useful for live progress
	// output. It must not panic.
	OnOutcome func(domain.Outcome)
}

func New(logger *zap.Logger, checker probe.Checker, workers int) *Sweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{Logger: logger, Checker: checker, Workers: workers}
}

// Run probes every target and blocks until all of them have produced an
// outcome. Outcomes arrive in completion order, not input order;
// correlate by URL. On context cancellation the partial outcome set is
// returned together with ctx.Err().
func (s *Sweeper) Run(ctx context.Context, targets []string) ([]domain.Outcome, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	if s.Workers < 1 {
		return nil, ErrNoWorkers
	}

	jobs := make(chan string, s.Workers*2)
	results := make(chan domain.Outcome, s.Workers*2)

	var wg sync.WaitGroup
	for i := 0; i < s.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for url := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results <- s.probeOne(ctx, url)
			}
		}()
	}

	// Producer: enqueue in input order, then close. The close is the
	// "no more work" barrier the workers drain against.
	go func() {
		defer close(jobs)
		for _, u := range targets {
			select {
			case jobs <- u:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Close the results stream only after every worker has exited, so
	// the collector below terminates exactly when the pool does.
	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]domain.Outcome, 0, len(targets))
	for o := range results {
		if s.OnOutcome != nil {
			s.OnOutcome(o)
		}
		out = append(out, o)
	}

	if err := ctx.Err(); err != nil {
		s.Logger.Warn("sweep_cancelled",
			zap.Int("collected", len(out)),
			zap.Int("targets", len(targets)),
		)
		return out, err
	}
	if len(out) != len(targets) {
		// One outcome per target, always. Anything else means the
		// pool lost work and the run cannot be trusted.
		return out, fmt.Errorf("sweep: %d targets but %d outcomes", len(targets), len(out))
	}
	return out, nil
}

// probeOne runs the full attempt series for one URL and classifies the
// result. Elapsed time spans the whole series, backoff waits included.
// A panic inside the checker is contained here so one bad probe cannot
// take down the worker or starve the queue.
func (s *Sweeper) probeOne(ctx context.Context, url string) (out domain.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			s.Logger.Error("probe_panic",
				zap.String("url", url),
				zap.String("correlation_id", correlationID),
				zap.String("panic", fmt.Sprintf("%v", r)),
				zap.String("stack", string(debug.Stack())),
			)
			out = domain.Outcome{
				URL:       url,
				Up:        false,
				Reason:    fmt.Sprintf("probe panic (correlation_id: %s)", correlationID),
				LatencyMS: time.Since(start).Seconds() * 1000,
				CheckedAt: time.Now().UTC(),
			}
		}
	}()

	res := s.Checker.Check(ctx, url)
	o := domain.Outcome{
		URL:        url,
		Up:         res.Success,
		HTTPStatus: res.StatusCode,
		Reason:     res.Message,
		LatencyMS:  time.Since(start).Seconds() * 1000,
		CheckedAt:  time.Now().UTC(),
	}
	s.Logger.Debug("swept",
		zap.String("url", url),
		zap.Bool("up", o.Up),
		zap.Int("status", o.HTTPStatus),
		zap.Float64("latency_ms", o.LatencyMS),
		zap.String("reason", o.Reason),
	)
	return o
}
