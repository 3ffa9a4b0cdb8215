package probe

import (
	"context"
	"time"
)

// RetryChecker wraps another Checker with a bounded retry budget.
// Retries is the number of additional attempts after the first, so
// Retries == 0 means exactly one attempt. Only transport-level
// failures are retried: any received HTTP response stops the series,
// whatever its status code. Between failed attempts it waits Backoff.
type RetryChecker struct {
	Inner   Checker
	Retries int
	Backoff time.Duration
}

func (r *RetryChecker) Check(ctx context.Context, target string) CheckResult {
	retries := r.Retries
	if retries < 0 {
		retries = 0
	}

	var last CheckResult
	for attempt := 0; attempt <= retries; attempt++ {
		last = r.Inner.Check(ctx, target)
		if last.Success || last.Permanent {
			return last
		}
		if attempt < retries {
			select {
			case <-time.After(r.Backoff):
			case <-ctx.Done():
				return last
			}
		}
	}
	return last
}
