package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamed0406/sitesweep/internal/domain"
	"github.com/hamed0406/sitesweep/internal/repo"
)

var _ repo.SweepStore = (*Store)(nil)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS sweeps (
    id          TEXT PRIMARY KEY,
    started_at  TIMESTAMPTZ NOT NULL,
    finished_at TIMESTAMPTZ NOT NULL,
    workers     INT NOT NULL,
    timeout     TEXT NOT NULL,
    retries     INT NOT NULL
);
CREATE TABLE IF NOT EXISTS outcomes (
    sweep_id    TEXT NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
    url         TEXT NOT NULL,
    up          BOOLEAN NOT NULL,
    http_status INT,
    latency_ms  DOUBLE PRECISION NOT NULL,
    reason      TEXT NOT NULL DEFAULT '',
    checked_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS outcomes_sweep_idx ON outcomes (sweep_id);`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) SaveRun(ctx context.Context, run *domain.Run) error {
	if run.ID == "" {
		run.ID = domain.RunID(uuid.NewString())
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO sweeps (id, started_at, finished_at, workers, timeout, retries)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		string(run.ID), run.StartedAt, run.FinishedAt, run.Workers, run.Timeout, run.Retries)
	if err != nil {
		return fmt.Errorf("insert sweep: %w", err)
	}

	for _, o := range run.Outcomes {
		var statusPtr *int
		if o.Up {
			v := o.HTTPStatus
			statusPtr = &v
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO outcomes (sweep_id, url, up, http_status, latency_ms, reason, checked_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			string(run.ID), o.URL, o.Up, statusPtr, o.LatencyMS, o.Reason, o.CheckedAt)
		if err != nil {
			return fmt.Errorf("insert outcome %s: %w", o.URL, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) ListRuns(ctx context.Context) ([]repo.RunSummary, error) {
	rows, err := s.pool.Query(ctx, `
SELECT s.id,
       s.started_at,
       s.finished_at,
       COUNT(o.url),
       COUNT(o.url) FILTER (WHERE o.up)
  FROM sweeps s
  LEFT JOIN outcomes o ON o.sweep_id = s.id
 GROUP BY s.id
 ORDER BY s.started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sweeps: %w", err)
	}
	defer rows.Close()

	var out []repo.RunSummary
	for rows.Next() {
		var (
			id          string
			started     time.Time
			finished    time.Time
			targets, up int
		)
		if err := rows.Scan(&id, &started, &finished, &targets, &up); err != nil {
			return nil, fmt.Errorf("scan sweep: %w", err)
		}
		out = append(out, repo.RunSummary{
			ID:         domain.RunID(id),
			StartedAt:  started,
			FinishedAt: finished,
			Targets:    targets,
			Up:         up,
		})
	}
	return out, rows.Err()
}

func (s *Store) GetRun(ctx context.Context, id domain.RunID) (*domain.Run, error) {
	run := &domain.Run{ID: id}
	err := s.pool.QueryRow(ctx,
		`SELECT started_at, finished_at, workers, timeout, retries
		   FROM sweeps WHERE id = $1`, string(id)).
		Scan(&run.StartedAt, &run.FinishedAt, &run.Workers, &run.Timeout, &run.Retries)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sweep: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT url, up, http_status, latency_ms, reason, checked_at
		   FROM outcomes WHERE sweep_id = $1 ORDER BY checked_at`, string(id))
	if err != nil {
		return nil, fmt.Errorf("get outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			o          domain.Outcome
			statusNull *int
		)
		if err := rows.Scan(&o.URL, &o.Up, &statusNull, &o.LatencyMS, &o.Reason, &o.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		if statusNull != nil {
			o.HTTPStatus = *statusNull
		}
		run.Outcomes = append(run.Outcomes, o)
	}
	return run, rows.Err()
}
