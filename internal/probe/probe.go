package probe

import "context"

// CheckResult holds the outcome of a single probe attempt (or attempt
// series, when produced by RetryChecker).
//
// Success means an HTTP response was received, regardless of status
// code — a 500 is a successful probe. Only transport-level failures
// (connection refused, DNS failure, timeout, malformed URL) produce
// Success == false, with Message carrying the error description.
type CheckResult struct {
	Success    bool
	StatusCode int
	Message    string

	// Permanent marks a failure that retrying cannot fix, such as a
	// request that could not even be constructed. RetryChecker gives
	// up immediately on permanent failures.
	Permanent bool
}

// Checker performs a single check for a given target URL.
type Checker interface {
	Check(ctx context.Context, target string) CheckResult
}
