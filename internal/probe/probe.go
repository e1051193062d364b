package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nao1215/lineup/internal/locator"
	"github.com/nao1215/lineup/internal/model"
	"github.com/nao1215/lineup/internal/transport"
)

// DefaultTimeout bounds a single probe when no timeout is configured.
const DefaultTimeout = 2 * time.Second

// defaultMaxBodySize limits the bytes read from a page response.
const defaultMaxBodySize = 5 * 1024 * 1024

// Outcome is the result class of a single fetch.
type Outcome int

const (
	// Miss means the page was not available: network error, non-2xx
	// status or an undecodable body.
	Miss Outcome = iota

	// Hit means a page was fetched and decoded.
	Hit

	// TimedOut means the deadline expired and the request was cancelled.
	TimedOut
)

// String returns a human-readable name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	case TimedOut:
		return "timeout"
	default:
		return "unknown"
	}
}

// Result describes one fetch.
type Result struct {
	// Outcome is the result class.
	Outcome Outcome

	// Page is set only for hits.
	Page *model.Page

	// StatusCode is the HTTP status, 0 when no response arrived.
	StatusCode int

	// Err is the underlying failure for misses and timeouts.
	Err error

	// Elapsed is the wall time of the fetch.
	Elapsed time.Duration
}

// Prober fetches pages with a per-request deadline.
type Prober struct {
	client      *http.Client
	locator     *locator.Locator
	timeout     time.Duration
	maxBodySize int64
	logger      *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout sets the per-probe deadline.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(n int64) Option {
	return func(p *Prober) {
		if n > 0 {
			p.maxBodySize = n
		}
	}
}

// WithLogger sets the logger used for per-probe debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		p.logger = logger
	}
}

// New creates a Prober that fetches through client and addresses pages with loc.
func New(client *http.Client, loc *locator.Locator, opts ...Option) *Prober {
	p := &Prober{
		client:      client,
		locator:     loc,
		timeout:     DefaultTimeout,
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.client == nil {
		p.client = http.DefaultClient
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Locator returns the locator used to address pages.
func (p *Prober) Locator() *locator.Locator {
	return p.locator
}

// Probe returns the page for slug on source, or nil if it cannot be had.
// It never fails: every error is logged and reported as absent.
// A miss on the local origin falls back to the default pages; a timeout
// does not.
func (p *Prober) Probe(ctx context.Context, source model.Source, slug string) *model.Page {
	if source == model.SourceGhost {
		return nil
	}

	if source.IsRemote() {
		if err := transport.ValidateOnionHost(string(source)); err != nil {
			p.logger.Debug("probe skipped", "source", source, "slug", slug, "error", err)
			return nil
		}
	}

	address, err := p.locator.Locate(source, slug)
	if err != nil {
		p.logger.Debug("probe skipped", "source", source, "slug", slug, "error", err)
		return nil
	}

	result := p.Fetch(ctx, address)
	p.logger.Debug("probe",
		"source", source,
		"slug", slug,
		"address", address,
		"outcome", result.Outcome,
		"status", result.StatusCode,
		"elapsed", result.Elapsed,
	)

	if result.Outcome == Hit {
		return result.Page
	}

	// A timed-out origin is not asked again for its default pages, so
	// the local candidate stays within one timeout.
	if source == model.SourceLocal && result.Outcome != TimedOut && ctx.Err() == nil {
		return p.Probe(ctx, model.SourceDefault, slug)
	}

	return nil
}

// Fetch performs one GET of address bounded by the probe timeout.
func (p *Prober) Fetch(ctx context.Context, address string) Result {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	result := p.fetch(ctx, address)
	result.Elapsed = time.Since(start)

	if result.Outcome != Hit && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.Outcome = TimedOut
	}
	return result
}

func (p *Prober) fetch(ctx context.Context, address string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return Result{Outcome: Miss, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{Outcome: Miss, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // Best effort
		return Result{
			Outcome:    Miss,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var page model.Page
	if err := json.NewDecoder(io.LimitReader(resp.Body, p.maxBodySize)).Decode(&page); err != nil {
		return Result{Outcome: Miss, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode page: %w", err)}
	}

	return Result{Outcome: Hit, Page: &page, StatusCode: resp.StatusCode}
}
