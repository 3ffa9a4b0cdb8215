// Package report renders completed sweep outcomes for humans and files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hamed0406/sitesweep/internal/domain"
)

// record is the on-disk shape of one outcome. Status is the HTTP status
// code as a number for reachable URLs, or the error description as a
// string for failures; readers discriminate on the JSON type.
type record struct {
	URL       string    `json:"url"`
	Status    any       `json:"status"`
	TimeMS    int64     `json:"time_ms"`
	Timestamp time.Time `json:"timestamp"`
}

func toRecord(o domain.Outcome) record {
	r := record{
		URL:       o.URL,
		TimeMS:    int64(o.LatencyMS),
		Timestamp: o.CheckedAt,
	}
	if o.Up {
		r.Status = o.HTTPStatus
	} else {
		r.Status = o.Reason
	}
	return r
}

// WriteJSON writes the outcome set to path as a JSON array. The file
// is staged in the same directory and renamed into place, so a reader
// watching path never sees a half-written report.
func WriteJSON(path string, outcomes []domain.Outcome) error {
	records := make([]record, 0, len(outcomes))
	for _, o := range outcomes {
		records = append(records, toRecord(o))
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	b = append(b, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("stage report %s: %w", path, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write report %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write report %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write report %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
