// Package namegen scrapes randomly generated Japanese names from namegen.jp.
//
// The parser depends on the page keeping its current markup (a
// table.gen-table-1 whose rows carry td.name and td.pron cells). When the page
// changes, every fetch fails with namesource.ErrFetchFailed.
package namegen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"genpi/internal/namesource"
	"genpi/internal/pi/models"
	"genpi/internal/platform/metrics"
)

// DefaultBaseURL is the public generator page.
const DefaultBaseURL = "https://namegen.jp/"

// maxBodyBytes caps how much of the page is read.
const maxBodyBytes = 4 << 20

// Client fetches name lists over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

type Option func(*Client)

// WithHTTPClient replaces the default client, e.g. to set a timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithMetrics records fetch latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// New creates a Client for baseURL. An empty baseURL means DefaultBaseURL.
func New(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		logger:     logger,
		tracer:     otel.Tracer("genpi/namegen"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads one generated page for sex and parses its name table.
func (c *Client) Fetch(ctx context.Context, sex models.Sex) (_ []models.Name, err error) {
	ctx, span := c.tracer.Start(ctx, "namegen.Fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("sex", sex.String())),
	)
	start := time.Now()
	defer func() {
		c.metrics.ObserveFetchLatency(sex.String(), time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "fetch failed")
		}
		span.End()
	}()

	pageURL, err := c.pageURL(sex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", namesource.ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", namesource.ErrFetchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", namesource.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", namesource.ErrFetchFailed, resp.Status)
	}

	names, err := ParseNames(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", namesource.ErrFetchFailed, err)
	}

	span.SetAttributes(attribute.Int("names", len(names)))
	c.logger.DebugContext(ctx, "fetched name list",
		"sex", sex.String(),
		"count", len(names),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return names, nil
}

// pageURL keeps every filter of the generator form at its default so the page
// returns unrestricted Japanese names.
func (c *Client) pageURL(sex models.Sex) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := url.Values{}
	q.Set("country", "japan")
	q.Set("sex", sex.String())
	for _, part := range []string{"middlename", "lastname", "firstname"} {
		q.Set(part, "")
		q.Set(part+"_cond", "fukumu")
		q.Set(part+"_rarity", "")
		q.Set(part+"_rarity_cond", "ika")
	}
	q.Set("lastname_type", "name")
	q.Set("firstname_type", "name")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
