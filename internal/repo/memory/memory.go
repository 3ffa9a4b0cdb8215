package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hamed0406/sitesweep/internal/domain"
	"github.com/hamed0406/sitesweep/internal/repo"
)

var _ repo.SweepStore = (*Store)(nil)

type Store struct {
	mu    sync.RWMutex
	runs  map[domain.RunID]*domain.Run
	order []domain.RunID // newest first
}

func New() *Store {
	return &Store{
		runs: make(map[domain.RunID]*domain.Run),
	}
}

func (m *Store) SaveRun(ctx context.Context, run *domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if run.ID == "" {
		run.ID = domain.RunID(uuid.NewString())
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}
	_, seen := m.runs[run.ID]
	m.runs[run.ID] = run
	if !seen {
		m.order = append([]domain.RunID{run.ID}, m.order...)
	}
	return nil
}

func (m *Store) ListRuns(ctx context.Context) ([]repo.RunSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]repo.RunSummary, 0, len(m.order))
	for _, id := range m.order {
		r := m.runs[id]
		out = append(out, repo.RunSummary{
			ID:         r.ID,
			StartedAt:  r.StartedAt,
			FinishedAt: r.FinishedAt,
			Targets:    len(r.Outcomes),
			Up:         r.UpCount(),
		})
	}
	return out, nil
}

func (m *Store) GetRun(ctx context.Context, id domain.RunID) (*domain.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runs[id], nil
}
