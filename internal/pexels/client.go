// Package pexels is the videos.Client for the Pexels API.
package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"

	"github.com/vidhub/backend/internal/videos"
)

const (
	DefaultBaseURL = "https://api.pexels.com"
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 4 << 10
)

// Client talks to the Pexels video endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ videos.Client = (*Client)(nil)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(strings.TrimSpace(raw), "/")
	}
}

// WithTimeout bounds every request made by the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 && c.httpClient != nil {
			clone := *c.httpClient
			clone.Timeout = timeout
			c.httpClient = &clone
		}
	}
}

// New returns a Client authenticating with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("pexels: api key is required")
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: newTransport(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return c, nil
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 50
	t.MaxIdleConnsPerHost = 50
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 10 * time.Second
	return t
}

// Name implements videos.Client.
func (c *Client) Name() string {
	return "Pexels"
}

// Popular implements videos.Client.
func (c *Client) Popular(ctx context.Context, params videos.Params) ([]videos.VideoRecord, error) {
	var resp listResponse
	if err := c.get(ctx, "/videos/popular", pagingQuery(params), &resp); err != nil {
		return nil, fmt.Errorf("pexels popular: %w", err)
	}
	return toRecords(resp.Videos), nil
}

// Search implements videos.Client.
func (c *Client) Search(ctx context.Context, query string, params videos.Params) (videos.SearchPage, error) {
	q := pagingQuery(params)
	q.Set("query", query)
	if token := sizeToken(params.Size); token != "" {
		q.Set("size", token)
	}
	if params.Locale != "" {
		q.Set("locale", params.Locale)
	}

	var resp listResponse
	if err := c.get(ctx, "/videos/search", q, &resp); err != nil {
		return videos.SearchPage{}, fmt.Errorf("pexels search: %w", err)
	}
	return videos.SearchPage{Videos: toRecords(resp.Videos), TotalResults: resp.TotalResults}, nil
}

// Find implements videos.Client. A 404 is reported as videos.ErrNotFound; an
// empty payload is reported as None.
func (c *Client) Find(ctx context.Context, id string) (mo.Option[videos.VideoRecord], error) {
	var resp video
	if err := c.get(ctx, "/videos/videos/"+url.PathEscape(id), nil, &resp); err != nil {
		var status *StatusError
		if errors.As(err, &status) && status.Code == http.StatusNotFound {
			err = videos.ErrNotFound
		}
		return mo.None[videos.VideoRecord](), fmt.Errorf("pexels find %s: %w", id, err)
	}
	if resp.ID == 0 {
		return mo.None[videos.VideoRecord](), nil
	}
	return mo.Some(resp.toRecord()), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %w", videos.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %w", videos.ErrMalformedResponse, err)
	}
	return nil
}

// StatusError is a non-2xx response from the API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pexels returned status %d: %s", e.Code, e.Body)
}

func pagingQuery(params videos.Params) url.Values {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(params.PerPage))
	}
	return q
}

func classifyTransport(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case isTimeout(err):
		return fmt.Errorf("%w: %w", videos.ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %w", videos.ErrConnection, err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
