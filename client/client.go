// Package client is a typed client for the stats API. Every call degrades to
// an empty value instead of failing, so dashboard pages always render.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/padraicbc/heatwave/models"
)

// maxBody bounds how much of a response is read.
const maxBody = 16 << 20

// Filter narrows a request. Zero fields are left out of the query string.
type Filter struct {
	EventID int
	Gender  string
	Athlete string
	Year    int
	TypeCat string
}

func (f Filter) values() url.Values {
	q := url.Values{}
	if f.EventID != 0 {
		q.Set("eventId", strconv.Itoa(f.EventID))
	}
	if f.Gender != "" {
		q.Set("gender", f.Gender)
	}
	if f.Athlete != "" {
		q.Set("athlete", f.Athlete)
	}
	if f.Year != 0 {
		q.Set("year", strconv.Itoa(f.Year))
	}
	if f.TypeCat != "" {
		q.Set("typeCat", f.TypeCat)
	}
	return q
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// ErrEnvelope is returned when the API answers with an error envelope.
var ErrEnvelope = errors.New("error envelope")

// Client calls the stats API through a circuit breaker.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	cb      *gobreaker.CircuitBreaker[json.RawMessage]
}

// Option configures a Client.
type Option func(*Client, *gobreaker.Settings)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client, _ *gobreaker.Settings) { c.http = hc }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client, _ *gobreaker.Settings) { c.log = log }
}

// WithBreaker tunes the circuit breaker. failures consecutive failures open
// it; after cooldown one probe request is let through.
func WithBreaker(failures uint32, cooldown time.Duration) Option {
	return func(_ *Client, s *gobreaker.Settings) {
		s.Timeout = cooldown
		s.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		}
	}
}

// New returns a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     zap.NewNop(),
	}

	settings := gobreaker.Settings{
		Name:        "heatwave-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A rejected filter says nothing about the API's health.
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < http.StatusInternalServerError
			}
			return err == nil
		},
	}
	for _, opt := range opts {
		opt(c, &settings)
	}
	settings.OnStateChange = func(name string, from, to gobreaker.State) {
		c.log.Warn("circuit breaker state change",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	c.cb = gobreaker.NewCircuitBreaker[json.RawMessage](settings)
	return c
}

// fetch returns the data field of a success envelope.
func (c *Client) fetch(ctx context.Context, path string, f Filter) (json.RawMessage, error) {
	return c.cb.Execute(func() (json.RawMessage, error) {
		u := c.baseURL + path
		if q := f.values().Encode(); q != "" {
			u += "?" + q
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
			return nil, &StatusError{Code: resp.StatusCode}
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		if err != nil {
			return nil, err
		}
		var env models.Envelope[json.RawMessage]
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		if env.Status != models.StatusSuccess {
			return nil, fmt.Errorf("%w: %s", ErrEnvelope, env.Error)
		}
		return env.Data, nil
	})
}

// get decodes the data of path into T, or returns fallback on any failure.
func get[T any](ctx context.Context, c *Client, path string, f Filter, fallback T) T {
	data, err := c.fetch(ctx, path, f)
	if err != nil {
		c.log.Warn("api request failed, using fallback", zap.String("path", path), zap.Error(err))
		return fallback
	}
	if len(data) == 0 || string(data) == "null" {
		return fallback
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		c.log.Warn("api response undecodable, using fallback", zap.String("path", path), zap.Error(err))
		return fallback
	}
	return out
}

func list[T any](ctx context.Context, c *Client, path string, f Filter) []T {
	out := get(ctx, c, path, f, []T{})
	if out == nil {
		return []T{}
	}
	return out
}
