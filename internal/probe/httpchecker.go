package probe

import (
	"context"
	"io"
	"net/http"
	"time"
)

// HTTPChecker probes a URL with a single GET request. The per-attempt
// timeout is enforced by the underlying http.Client.
type HTTPChecker struct {
	Client *http.Client
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTPChecker) Check(ctx context.Context, target string) CheckResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		// The request could not even be built; no number of retries
		// will change that.
		return CheckResult{Success: false, Message: err.Error(), Permanent: true}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return CheckResult{Success: false, Message: err.Error()}
	}
	// Drain so the connection can be reused; the body itself is irrelevant.
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return CheckResult{Success: true, StatusCode: resp.StatusCode}
}
