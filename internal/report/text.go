package report

import (
	"fmt"
	"io"

	"github.com/hamed0406/sitesweep/internal/domain"
)

// Printer writes one human-readable line per outcome, in arrival order.
// Not safe for concurrent use; feed it from a single goroutine (the
// sweep collector does).
type Printer struct {
	W io.Writer
}

func (p *Printer) Print(o domain.Outcome) {
	if o.Up {
		fmt.Fprintf(p.W, "[%d] OK %s in %.0fms\n", o.HTTPStatus, o.URL, o.LatencyMS)
		return
	}
	fmt.Fprintf(p.W, "[ERROR] %s failed: %s (after %.0fms)\n", o.URL, o.Reason, o.LatencyMS)
}

// Summary writes a one-line tally of the whole sweep.
func Summary(w io.Writer, outcomes []domain.Outcome) {
	up := 0
	for _, o := range outcomes {
		if o.Up {
			up++
		}
	}
	fmt.Fprintf(w, "%d checked, %d responded, %d unreachable\n", len(outcomes), up, len(outcomes)-up)
}
