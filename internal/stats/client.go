package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rileyhilliard/lbdash/internal/errors"
	"github.com/rileyhilliard/lbdash/internal/logger"
)

// maxBodyBytes bounds how much of a stats response is read.
const maxBodyBytes = 4 << 20

// Fetcher retrieves the current snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// Client polls a stats endpoint over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	log      logger.Logger
	now      func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets a per-request timeout. It applies to the HTTP client
// in use after all options run, on a copy. Zero leaves the client's own
// timeout alone.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a client for the given endpoint URL.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{},
		log:      logger.Noop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// Endpoint returns the URL this client polls.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch performs a single GET of the endpoint and decodes the snapshot.
// Transport failures and non-2xx responses return an ErrFetch error;
// undecodable or invalid bodies return an ErrDecode error.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("Invalid stats endpoint: %s", c.endpoint),
			"Use an absolute URL like http://localhost:5000/stats")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("fetch %s: %v", c.endpoint, err)
		return nil, errors.Wrap(err, "Stats endpoint unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		c.log.Debug("fetch %s: status %d", c.endpoint, resp.StatusCode)
		return nil, errors.New(errors.ErrFetch,
			fmt.Sprintf("Stats endpoint returned %s", resp.Status), "")
	}

	snap, err := Decode(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.log.Debug("decode %s: %v", c.endpoint, err)
		return nil, err
	}
	snap.FetchedAt = c.now()
	return snap, nil
}

// Decode reads a snapshot document from r and validates it.
func Decode(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDecode,
			"Malformed stats body", "")
	}
	if err := snap.validate(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDecode,
			"Invalid stats body", "")
	}
	return &snap, nil
}
