package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hamed0406/sitesweep/internal/domain"
)

// Notifier delivers a sweep summary to one destination.
type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans one message out to every configured destination. Delivery
// is best-effort: every notifier is attempted even when earlier ones
// fail, and the first error is returned.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, title, text); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NotifyRun sends the summary of a completed run to every notifier in m.
// A no-op when m is empty, so callers can build it unconditionally.
func (m Multi) NotifyRun(ctx context.Context, run *domain.Run) error {
	if len(m) == 0 {
		return nil
	}
	title, text := SweepSummary(run)
	return m.Send(ctx, title, text)
}

// SweepSummary renders a completed run as a notification title and
// body. Unreachable URLs are listed individually (capped) so the
// message stays useful for large sweeps.
func SweepSummary(run *domain.Run) (title, text string) {
	down := make([]domain.Outcome, 0)
	for _, o := range run.Outcomes {
		if !o.Up {
			down = append(down, o)
		}
	}

	title = fmt.Sprintf("sitesweep: %d/%d reachable", len(run.Outcomes)-len(down), len(run.Outcomes))

	var b strings.Builder
	fmt.Fprintf(&b, "run %s finished in %s\n", run.ID, run.FinishedAt.Sub(run.StartedAt).Round(10*time.Millisecond))
	const maxListed = 20
	for i, o := range down {
		if i == maxListed {
			fmt.Fprintf(&b, "… and %d more\n", len(down)-maxListed)
			break
		}
		fmt.Fprintf(&b, "• %s — %s\n", o.URL, o.Reason)
	}
	return title, b.String()
}
