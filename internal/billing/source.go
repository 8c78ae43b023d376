package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Source provides the usage figures to ship. Implementations fetch from
// wherever the figures live; the shipper treats the result as opaque.
type Source interface {
	Fetch(ctx context.Context) (UsageReport, error)
}

// StaticSource returns a fixed report, typically assembled from
// configuration. The billing period and day default to the current UTC
// month and day when left empty.
type StaticSource struct {
	Report UsageReport
}

func (s StaticSource) Fetch(_ context.Context) (UsageReport, error) {
	r := s.Report
	now := time.Now()
	if r.BillingPeriod == "" {
		r.BillingPeriod = Period(now)
	}
	if r.Day == "" {
		r.Day = Day(now)
	}
	return r, nil
}

// HTTPSource fetches a JSON usage report from an endpoint. The document
// must carry the UsageReport fields (budgetAmount, billingPeriod, day,
// spend).
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource returns an HTTPSource for the given URL.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) (UsageReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return UsageReport{}, fmt.Errorf("billing: build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return UsageReport{}, fmt.Errorf("billing: fetch report: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return UsageReport{}, fmt.Errorf("billing: report endpoint returned HTTP %d", resp.StatusCode)
	}
	var report UsageReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return UsageReport{}, fmt.Errorf("billing: decode report: %w", err)
	}
	return report, nil
}

// NewSource builds a Source from configuration. kind selects the
// implementation: "static" uses the given report, "http" fetches from
// endpoint.
func NewSource(kind, endpoint string, static UsageReport, timeout time.Duration) (Source, error) {
	switch kind {
	case "static":
		return StaticSource{Report: static}, nil
	case "http":
		if endpoint == "" {
			return nil, fmt.Errorf("billing: http source needs an endpoint")
		}
		return NewHTTPSource(endpoint, timeout), nil
	default:
		return nil, fmt.Errorf("billing: unknown source kind %q", kind)
	}
}
