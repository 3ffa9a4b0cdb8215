package repo

import (
	"context"
	"time"

	"github.com/hamed0406/sitesweep/internal/domain"
)

// RunSummary is the list view of a stored sweep: identity, timing, and
// tallies, without the per-URL outcomes.
type RunSummary struct {
	ID         domain.RunID `json:"id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Targets    int          `json:"targets"`
	Up         int          `json:"up"`
}

// SweepStore is the persistence port for completed sweeps — swap in any
// DB adapter later. Get returns nil, nil when the run does not exist.
type SweepStore interface {
	SaveRun(ctx context.Context, run *domain.Run) error
	ListRuns(ctx context.Context) ([]RunSummary, error)
	GetRun(ctx context.Context, id domain.RunID) (*domain.Run, error)
}
