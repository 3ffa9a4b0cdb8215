package sweep

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamed0406/sitesweep/internal/domain"
	"github.com/hamed0406/sitesweep/internal/probe"
)

// Settings are the knobs shared by every probe in one batch.
type Settings struct {
	Workers int
	Timeout time.Duration
	Retries int
	Backoff time.Duration
}

// Batch sweeps targets with the given settings and packages the result
// as a domain.Run ready for reporting or storage. onOutcome may be nil;
// when set it receives each outcome as it arrives. When the context is
// cancelled mid-sweep the outcomes collected so far are returned in a
// Run together with the context error.
func Batch(ctx context.Context, logger *zap.Logger, targets []string, st Settings, onOutcome func(domain.Outcome)) (*domain.Run, error) {
	started := time.Now().UTC()

	checker := &probe.RetryChecker{
		Inner:   probe.NewHTTPChecker(st.Timeout),
		Retries: st.Retries,
		Backoff: st.Backoff,
	}
	s := New(logger, checker, st.Workers)
	s.OnOutcome = onOutcome

	outcomes, err := s.Run(ctx, targets)
	if err != nil && len(outcomes) == 0 {
		return nil, err
	}

	// A cancelled sweep still yields the outcomes collected so far,
	// packaged alongside the error so callers can report them.
	return &domain.Run{
		ID:         domain.RunID(uuid.NewString()),
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Workers:    st.Workers,
		Timeout:    st.Timeout.String(),
		Retries:    st.Retries,
		Outcomes:   outcomes,
	}, err
}
