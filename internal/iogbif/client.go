// Package iogbif implements the OccurrenceClient interface against the
// GBIF occurrence search REST API. This is an impure I/O package: it
// performs network calls, bounded retries and politeness throttling.
package iogbif

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gnames/gnoccur/pkg/config"
	"github.com/gnames/gnoccur/pkg/gnoccur"
	"github.com/gnames/gnoccur/pkg/occurrence"
	"golang.org/x/time/rate"
)

// SleepFunc pauses for d or returns early with the context error.
// Injected by tests to avoid real wall-clock waits.
type SleepFunc func(ctx context.Context, d time.Duration) error

// client implements the OccurrenceClient interface.
type client struct {
	cfg     *config.Config
	http    *http.Client
	limiter *rate.Limiter
	sleep   SleepFunc
}

// Option configures the client. Used by tests to inject transport and
// sleep behavior.
type Option func(*client)

// OptHTTPClient replaces the HTTP client.
func OptHTTPClient(h *http.Client) Option {
	return func(c *client) {
		c.http = h
	}
}

// OptSleep replaces the backoff sleep function.
func OptSleep(fn SleepFunc) Option {
	return func(c *client) {
		c.sleep = fn
	}
}

// New creates an OccurrenceClient for the configured GBIF endpoint.
func New(cfg *config.Config, opts ...Option) gnoccur.OccurrenceClient {
	pageDelay := time.Duration(cfg.GBIF.PageDelayMs) * time.Millisecond
	res := &client{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.GBIF.TimeoutSec) * time.Second,
		},
		// Politeness throttle between bulk pages. Burst 1 lets the
		// first page through immediately.
		limiter: rate.NewLimiter(rate.Every(pageDelay), 1),
		sleep:   defaultSleep,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// SearchOne performs a single bounded search for one species.
func (c *client) SearchOne(
	ctx context.Context,
	q occurrence.SpeciesQuery,
) (*occurrence.SearchPage, error) {
	params := url.Values{}
	params.Set("scientificName", q.ScientificName)
	params.Set("hasCoordinate", "true")
	params.Set("limit", strconv.Itoa(c.cfg.GBIF.PageSize))
	if q.Class != "" {
		params.Set("class", q.Class)
	}

	page, err := c.searchWithRetries(ctx, params)
	if err != nil {
		return nil, SearchFailedError(q.ScientificName, err)
	}
	return page, nil
}

// searchWithRetries runs one search call, retrying transient
// connection failures with exponential backoff: base delay doubling
// after every failed attempt, bounded by MaxAttempts. Any other
// failure class surfaces immediately - retrying a malformed query
// would only hang the batch.
func (c *client) searchWithRetries(
	ctx context.Context,
	params url.Values,
) (*occurrence.SearchPage, error) {
	maxAttempts := c.cfg.GBIF.MaxAttempts
	delay := time.Duration(c.cfg.GBIF.RetryBaseSec) * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		page, err := c.fetchPage(ctx, params)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !isTransient(err) {
			return nil, err
		}

		if attempt < maxAttempts {
			slog.Warn("Transient GBIF failure, retrying",
				"attempt", attempt,
				"max_attempts", maxAttempts,
				"wait", delay.String(),
				"error", err,
			)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			delay *= 2
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

// fetchPage performs one HTTP call and decodes one result page.
func (c *client) fetchPage(
	ctx context.Context,
	params url.Values,
) (*occurrence.SearchPage, error) {
	u := c.cfg.GBIF.APIURL + "/occurrence/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &statusError{code: resp.StatusCode}
	}

	var page occurrence.SearchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("cannot decode GBIF response: %w", err)
	}
	return &page, nil
}

// statusError carries a non-200 HTTP status for failure classification.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GBIF returned HTTP %d", e.code)
}

// isTransient reports whether the failure belongs to the
// transient-connection class worth retrying: connection problems,
// timeouts, and server-side or throttling HTTP statuses.
func isTransient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 ||
			se.code == http.StatusTooManyRequests ||
			se.code == http.StatusRequestTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return false
}
