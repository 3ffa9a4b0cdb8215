package domain

import "time"

type RunID string

// Outcome is the final classified result of probing one URL.
//
// Up means an HTTP response was received at all — any status code,
// 4xx and 5xx included. Whether a given status is "healthy" is left
// to whoever reads the report. When Up is false, HTTPStatus is 0 and
// Reason carries the transport-level error description.
type Outcome struct {
	URL        string    `json:"url"`
	Up         bool      `json:"up"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	LatencyMS  float64   `json:"latency_ms"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Run records one completed sweep: its identity, timing, the settings
// it ran with, and one Outcome per input URL.
type Run struct {
	ID         RunID     `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Workers    int       `json:"workers"`
	Timeout    string    `json:"timeout"`
	Retries    int       `json:"retries"`
	Outcomes   []Outcome `json:"outcomes"`
}

// UpCount returns how many outcomes received an HTTP response.
func (r *Run) UpCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Up {
			n++
		}
	}
	return n
}
