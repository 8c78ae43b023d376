package loganalytics

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendship/spendship/internal/model"
)

// Protocol constants shared by the client and the verifying collector.
const (
	APIVersion      = "2016-04-01"
	ResourcePath    = "/api/logs"
	ContentTypeJSON = "application/json"
)

const (
	// DefaultDomain is the public ingestion domain. The target host is
	// {workspaceID}.{domain}.
	DefaultDomain = "ods.opinsights.azure.com"

	// TimeGeneratedField is the record key that carries the normalized
	// timestamp. Its name is sent in the time-generated-field header so the
	// service uses it as the record's generation time.
	TimeGeneratedField = "DateTime"

	defaultTimeout = 30 * time.Second
	maxRespBody    = 4 << 10
)

// Serialize injects the normalized timestamp into the record under
// TimeGeneratedField and marshals the record to UTF-8 JSON. The record must
// not be mutated after this point: the signature covers the exact byte
// length of the returned body.
func Serialize(rec *model.Record, t time.Time) ([]byte, error) {
	rec.Set(TimeGeneratedField, NormalizeUTC(t))
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	return body, nil
}

// Option configures a Client.
type Option func(*Client)

// WithDomain overrides the ingestion domain (default DefaultDomain).
func WithDomain(domain string) Option {
	return func(c *Client) { c.domain = domain }
}

// WithBaseURL points the client at a fixed base URL instead of the derived
// https://{workspaceID}.{domain} host. Used for local collectors and tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout sets the HTTP client timeout. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the client logger. Default: no-op.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client ships single telemetry records to the log ingestion endpoint,
// signing each request with the workspace's shared key. A Client holds no
// mutable state across calls, so it is safe for concurrent use.
type Client struct {
	creds   Credentials
	domain  string
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New builds a Client for the given credentials. Credentials are validated
// up front; a malformed shared key or empty workspace id fails here with a
// ConfigError rather than at send time.
func New(creds Credentials, opts ...Option) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		creds:  creds,
		domain: DefaultDomain,
		http:   &http.Client{Timeout: defaultTimeout},
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Send ships one record under the given log type, stamped with now. It
// returns the HTTP status code from the ingestion service: 200 means
// accepted, any other status is returned alongside a RejectionError. One
// call issues exactly one request; there is no retry or batching, callers
// needing resilience wrap Send themselves.
func (c *Client) Send(ctx context.Context, logType string, rec *model.Record, now time.Time) (int, error) {
	if err := c.creds.Validate(); err != nil {
		return 0, err
	}
	if logType == "" {
		return 0, &ConfigError{Reason: "log type is empty"}
	}

	// One wire date for both the canonical string and the x-ms-date header.
	date := WireDate(now)

	body, err := Serialize(rec, now)
	if err != nil {
		return 0, err
	}

	canonical := CanonicalString(http.MethodPost, len(body), ContentTypeJSON, date, ResourcePath)
	auth, err := Signature(c.creds, canonical)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return 0, &NetworkError{Err: err}
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Log-Type", logType)
	req.Header.Set("x-ms-date", date)
	req.Header.Set("time-generated-field", TimeGeneratedField)
	req.Header.Set("Content-Type", ContentTypeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &NetworkError{Err: err}
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxRespBody))

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("log_type", logType).
			Int("content_length", len(body)).
			Msg("record rejected by ingestion service")
		return resp.StatusCode, &RejectionError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Str("log_type", logType).
		Int("content_length", len(body)).
		Msg("record shipped")
	return resp.StatusCode, nil
}

func (c *Client) endpoint() string {
	base := c.baseURL
	if base == "" {
		base = "https://" + c.creds.WorkspaceID + "." + c.domain
	}
	return base + ResourcePath + "?api-version=" + APIVersion
}
