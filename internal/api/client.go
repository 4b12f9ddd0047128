//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"gist/feedsync/internal/model"
	"gist/feedsync/pkg/logger"
	"gist/feedsync/pkg/network"
)

const defaultTimeout = 20 * time.Second

// Client talks to the feed server. Every method is a single request; none
// of them retry.
type Client interface {
	ListEntries(ctx context.Context) ([]model.Entry, error)
	ListFeeds(ctx context.Context) ([]model.Feed, error)
	AddFeed(ctx context.Context, link string) (model.Feed, error)
	// UpdateFeed posts the edited feed to the resource keyed by the
	// original link; the link itself may be part of the edit.
	UpdateFeed(ctx context.Context, original model.OriginalFeed, edited model.Feed) (model.Feed, error)
	UpdateEntry(ctx context.Context, entry model.Entry, patch model.EntryPatch) (model.Entry, error)
	MyFeed(ctx context.Context) (*gofeed.Feed, error)
}

type Option func(*client)

// WithTimestampUnit selects how EntryWire.Updated is interpreted.
func WithTimestampUnit(u TimestampUnit) Option {
	return func(c *client) { c.unit = u }
}

// WithTimeout bounds each request. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit caps outbound requests per second. Zero or less disables it.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
}

type client struct {
	baseURL       string
	clientFactory *network.ClientFactory
	unit          TimestampUnit
	timeout       time.Duration
	limiter       *rate.Limiter
}

func NewClient(baseURL string, clientFactory *network.ClientFactory, opts ...Option) (Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if clientFactory == nil {
		clientFactory = network.NewClientFactory(nil, nil)
	}
	c := &client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		clientFactory: clientFactory,
		timeout:       defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *client) ListEntries(ctx context.Context) ([]model.Entry, error) {
	var resp entriesResponse
	if err := c.doJSON(ctx, "list entries", http.MethodGet, "/entry", nil, &resp); err != nil {
		return nil, err
	}
	return lo.Map(resp.Entries, func(w EntryWire, _ int) model.Entry {
		return c.unit.entryFromWire(w)
	}), nil
}

func (c *client) ListFeeds(ctx context.Context) ([]model.Feed, error) {
	var resp feedsResponse
	if err := c.doJSON(ctx, "list feeds", http.MethodGet, "/feed", nil, &resp); err != nil {
		return nil, err
	}
	return lo.Map(resp.Feeds, func(w FeedWire, _ int) model.Feed {
		return feedFromWire(w)
	}), nil
}

func (c *client) AddFeed(ctx context.Context, link string) (model.Feed, error) {
	var resp FeedWire
	if err := c.doJSON(ctx, "add feed", http.MethodPost, "/feed", addFeedRequest{Link: link}, &resp); err != nil {
		return model.Feed{}, err
	}
	return feedFromWire(resp), nil
}

func (c *client) UpdateFeed(ctx context.Context, original model.OriginalFeed, edited model.Feed) (model.Feed, error) {
	var resp FeedWire
	path := "/feed/" + url.PathEscape(original.Feed.Link)
	if err := c.doJSON(ctx, "update feed", http.MethodPost, path, feedToWire(edited), &resp); err != nil {
		return model.Feed{}, err
	}
	return feedFromWire(resp), nil
}

func (c *client) UpdateEntry(ctx context.Context, entry model.Entry, patch model.EntryPatch) (model.Entry, error) {
	var resp EntryWire
	path := "/entry/" + url.PathEscape(entry.Link)
	if err := c.doJSON(ctx, "update entry", http.MethodPost, path, entryPatchBody(patch), &resp); err != nil {
		return model.Entry{}, err
	}
	return c.unit.entryFromWire(resp), nil
}

func (c *client) MyFeed(ctx context.Context) (*gofeed.Feed, error) {
	const op = "my feed"
	body, err := c.do(ctx, op, http.MethodGet, "/myfeed/atom", nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return feed, nil
}

func (c *client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var payload io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		payload = bytes.NewReader(data)
	}

	body, err := c.do(ctx, op, method, path, payload)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// do sends the request and returns the body of a 2xx response. The caller
// closes it.
func (c *client) do(ctx context.Context, op, method, path string, payload io.Reader) (io.ReadCloser, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.clientFactory.NewHTTPClient(ctx, c.timeout).Do(req)
	if err != nil {
		logger.Warn("request failed", "module", "api", "action", "request", "resource", op, "result", "failed", "method", method, "error", err)
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		logger.Warn("request failed", "module", "api", "action", "request", "resource", op, "result", "failed", "method", method, "status", resp.StatusCode)
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode}
	}
	logger.Debug("request done", "module", "api", "action", "request", "resource", op, "result", "ok", "method", method, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	return resp.Body, nil
}
