package acs

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/acs-demographics/internal/fetcher"
)

// Rows is a decoded ACS response: the header row and the data rows beneath it.
type Rows struct {
	Header []string
	Data   [][]string
}

// Len returns the number of data rows.
func (r *Rows) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Data)
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the Census Data API root (tests point it at httptest servers).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithAPIKey sets the key used when a query carries none.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// Client issues ACS queries through a fetcher.
type Client struct {
	f       fetcher.Fetcher
	baseURL string
	apiKey  string
}

// NewClient creates a Client that downloads through f.
func NewClient(f fetcher.Fetcher, opts ...Option) *Client {
	c := &Client{
		f:       f,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client queries.
func (c *Client) BaseURL() string { return c.baseURL }

// URL renders q against the client's base URL, filling in the default key.
func (c *Client) URL(q Query) string {
	if q.Key == "" {
		q.Key = c.apiKey
	}
	return q.URL(c.baseURL)
}

// Get issues exactly one request for q and decodes the row list. Errors from the fetcher
// are returned as-is.
func (c *Client) Get(ctx context.Context, q Query) (*Rows, error) {
	zap.L().Debug("acs query",
		zap.Int("year", q.Year),
		zap.String("family", q.Family.String()),
		zap.Strings("fields", q.Fields),
		zap.String("for", q.Scope.For),
		zap.String("in", q.Scope.In),
	)

	body, err := c.f.Download(ctx, c.URL(q))
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, eris.Wrap(err, "acs: read response")
	}
	return parseRows(data)
}

func parseRows(data []byte) (*Rows, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Rows{}, nil
	}

	raw, err := fetcher.DecodeJSONRows(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "acs: parse response")
	}
	if len(raw) == 0 {
		return &Rows{}, nil
	}
	return &Rows{Header: raw[0], Data: raw[1:]}, nil
}
