package micropub

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/mfe/internal/mf2"
)

// maxBodySize bounds how much of a response is read.
const maxBodySize = 4 << 20

// DefaultTimeout bounds a whole source query, including reading the body.
const DefaultTimeout = 30 * time.Second

// Client queries a Micropub endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for endpoint. When tok is non-nil every request
// carries it as a bearer token.
func NewClient(ctx context.Context, endpoint string, tok *oauth2.Token, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	httpClient := &http.Client{Timeout: DefaultTimeout}
	if tok != nil {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
		httpClient.Timeout = DefaultTimeout
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// WithTimeout replaces the request timeout of c and returns c.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.httpClient.Timeout = d
	return c
}

// Source fetches the source of the post at postURL (q=source) and decodes it.
func (c *Client) Source(ctx context.Context, postURL string) (mf2.Entry, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return mf2.Entry{}, fmt.Errorf("invalid micropub endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("q", "source")
	q.Set("url", postURL)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return mf2.Entry{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("micropub source query", "endpoint", c.endpoint, "url", postURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mf2.Entry{}, fmt.Errorf("micropub request failed: %w", err)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	resp.Body.Close()
	if err != nil {
		return mf2.Entry{}, fmt.Errorf("reading response body: %w", err)
	}
	c.logger.Debug("micropub response", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode != http.StatusOK {
		return mf2.Entry{}, fmt.Errorf("micropub error %d: %s", resp.StatusCode, string(body))
	}

	entry, err := mf2.ParseEntry(body)
	if err != nil {
		return mf2.Entry{}, fmt.Errorf("decoding micropub response: %w", err)
	}
	return entry, nil
}
