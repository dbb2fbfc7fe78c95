// Package search queries a remote free-tag search endpoint.
//
// The endpoint answers GET {base}?{param}={text} with a JSON body of the form
// {"tags": [{"term": "%23fun", "count": 4}, ...]}. Terms arrive
// percent-encoded and are decoded before they are returned.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultEndpoint is the Webmaker MakeAPI tag search.
const DefaultEndpoint = "https://makeapi.webmaker.org/api/20130724/make/tags"

// DefaultParam is the query parameter carrying the partial text.
const DefaultParam = "t"

// DefaultTimeout bounds a single search round trip.
const DefaultTimeout = 5 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

var (
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("unexpected status")
	// ErrMalformed is returned when the body is not the expected JSON shape.
	ErrMalformed = errors.New("malformed response")
)

// Record is one tag as returned by the endpoint.
type Record struct {
	Term  string `json:"term"`
	Count int    `json:"count,omitempty"`
}

// Tag is a decoded search result. Raw keeps the record as received.
type Tag struct {
	Term string `json:"term"`
	Raw  Record `json:"raw"`
}

type response struct {
	Tags *[]Record `json:"tags"`
}

// Searcher finds free-form tags matching a fragment.
type Searcher interface {
	Search(ctx context.Context, text string) ([]Tag, error)
}

// Client is the HTTP Searcher.
type Client struct {
	httpClient *http.Client
	endpoint   string
	param      string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets the base URL.
func WithEndpoint(u string) Option {
	return func(c *Client) { c.endpoint = u }
}

// WithParam sets the query parameter name.
func WithParam(p string) Option {
	return func(c *Client) { c.param = p }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient creates a Client for the default endpoint unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		endpoint:   DefaultEndpoint,
		param:      DefaultParam,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search issues one request for text and returns the decoded tags in the
// order the endpoint sent them.
func (c *Client) Search(ctx context.Context, text string) ([]Tag, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	q := u.Query()
	q.Set(c.param, text)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching tags: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d from %s", ErrStatus, resp.StatusCode, u.Host)
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if r.Tags == nil {
		return nil, fmt.Errorf("%w: missing tags field", ErrMalformed)
	}

	tags := make([]Tag, 0, len(*r.Tags))
	for _, rec := range *r.Tags {
		tags = append(tags, Tag{Term: Decode(rec.Term), Raw: rec})
	}
	return tags, nil
}

// Decode undoes percent-encoding in a term. '+' is kept literally, and a
// term that is not valid percent-encoding is returned unchanged.
func Decode(term string) string {
	s, err := url.PathUnescape(term)
	if err != nil {
		return term
	}
	return s
}
