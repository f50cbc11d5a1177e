package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// HTTPChecker probes a single URL with a GET and judges the response
// code against an accepted set.
type HTTPChecker struct {
	URL    string
	Accept map[int]bool // accepted status codes; nil means 200 only
	Client *http.Client
}

func NewHTTPChecker(url string, timeout time.Duration, accept []int) *HTTPChecker {
	var set map[int]bool
	if len(accept) > 0 {
		set = make(map[int]bool, len(accept))
		for _, code := range accept {
			set[code] = true
		}
	}
	return &HTTPChecker{
		URL:    url,
		Accept: set,
		Client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTPChecker) Check(ctx context.Context) Outcome {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return Fail(fmt.Sprintf("GET %s: %v", h.URL, err))
	}

	resp, err := h.Client.Do(req)
	latency := time.Since(start).Seconds() * 1000 // ms
	if err != nil {
		out := Fail(fmt.Sprintf("GET %s: %v", h.URL, err))
		out.LatencyMS = latency
		return out
	}
	defer resp.Body.Close()

	var out Outcome
	if h.accepted(resp.StatusCode) {
		out = OK(resp.Status)
	} else {
		out = Fail(fmt.Sprintf("GET %s: unexpected status %s", h.URL, resp.Status))
	}
	out.LatencyMS = latency
	return out
}

func (h *HTTPChecker) accepted(code int) bool {
	if h.Accept == nil {
		return code == http.StatusOK
	}
	return h.Accept[code]
}
