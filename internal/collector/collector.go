package collector

import (
	"context"
	"crypto/hmac"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/spendship/spendship/internal/loganalytics"
	"github.com/spendship/spendship/internal/response"
)

const (
	defaultMaxSkew = 15 * time.Minute
	maxBodySize    = 1 << 20
)

// Option configures a Collector.
type Option func(*Collector)

// WithMaxSkew sets the tolerated distance between the x-ms-date header and
// the collector clock. Default: 15m.
func WithMaxSkew(d time.Duration) Option {
	return func(col *Collector) { col.maxSkew = d }
}

// WithStoreSize sets how many accepted records are kept. Default: 200.
func WithStoreSize(n int) Option {
	return func(col *Collector) { col.store = newRecordStore(n) }
}

// WithLogger sets the collector logger. Default: no-op.
func WithLogger(l zerolog.Logger) Option {
	return func(col *Collector) { col.log = l }
}

// Collector is a local stand-in for the log ingestion service. It verifies
// the SharedKey signature of each POST against the configured credentials,
// keeps accepted records in memory, and answers with the same status codes
// the real service would.
type Collector struct {
	echo    *echo.Echo
	creds   loganalytics.Credentials
	store   *RecordStore
	maxSkew time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

// New builds a Collector verifying requests against creds.
func New(creds loganalytics.Credentials, opts ...Option) (*Collector, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	col := &Collector{
		echo:    e,
		creds:   creds,
		store:   newRecordStore(defaultStoreSize),
		maxSkew: defaultMaxSkew,
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(col)
	}

	e.POST(loganalytics.ResourcePath, col.handleIngest)
	e.GET("/records", col.handleRecords)
	return col, nil
}

// Handler exposes the collector as an http.Handler for tests and embedding.
func (col *Collector) Handler() http.Handler { return col.echo }

// Store exposes the accepted-record store.
func (col *Collector) Store() *RecordStore { return col.store }

// Start serves on addr until the context is cancelled or the server fails.
func (col *Collector) Start(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		_ = col.Shutdown(context.Background())
	}()
	return col.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (col *Collector) Shutdown(ctx context.Context) error {
	return col.echo.Shutdown(ctx)
}

// handleIngest verifies and stores one posted record.
func (col *Collector) handleIngest(c echo.Context) error {
	if v := c.QueryParam("api-version"); v != loganalytics.APIVersion {
		return response.BadRequest(c, "unsupported api-version", v)
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodySize))
	if err != nil {
		return response.BadRequest(c, "unreadable body", err.Error())
	}
	if len(body) == 0 {
		return response.BadRequest(c, "empty body", "a single JSON record is required")
	}

	dateHeader := c.Request().Header.Get("x-ms-date")
	sent, err := time.Parse(http.TimeFormat, dateHeader)
	if err != nil {
		return response.BadRequest(c, "malformed x-ms-date", dateHeader)
	}
	if skew := col.now().Sub(sent); skew > col.maxSkew || skew < -col.maxSkew {
		return response.Forbidden(c, "x-ms-date outside tolerated skew", dateHeader)
	}

	// Recompute the signature over the request as received. The content
	// length comes from the actual body bytes, so any tampering after
	// signing fails verification.
	canonical := loganalytics.CanonicalString(
		http.MethodPost, len(body), loganalytics.ContentTypeJSON, dateHeader, loganalytics.ResourcePath)
	expected, err := loganalytics.Signature(col.creds, canonical)
	if err != nil {
		return response.InternalError(c, "signature computation failed", err.Error())
	}
	got := c.Request().Header.Get(echo.HeaderAuthorization)
	if !hmac.Equal([]byte(got), []byte(expected)) {
		col.log.Warn().Int("content_length", len(body)).Msg("signature mismatch")
		return response.Forbidden(c, "signature mismatch", "authorization header does not match request")
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return response.BadRequest(c, "body is not a JSON object", err.Error())
	}

	rec := ReceivedRecord{
		ID:         uuid.New(),
		LogType:    c.Request().Header.Get("Log-Type"),
		ReceivedAt: col.now(),
		Fields:     fields,
	}
	col.store.Add(rec)
	col.log.Info().
		Str("id", rec.ID.String()).
		Str("log_type", rec.LogType).
		Int("content_length", len(body)).
		Msg("record accepted")

	return c.NoContent(http.StatusOK)
}

// handleRecords lists recently accepted records, newest first.
func (col *Collector) handleRecords(c echo.Context) error {
	return response.OK(c, map[string]any{"records": col.store.Recent()}, "")
}
