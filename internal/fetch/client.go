package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aman-cerp/docsearch-mcp/pkg/version"
)

// userAgent and the accompanying Accept headers mimic a real browser
// request, grounded on TheFozid-go-llama's web parser tools, since several
// documentation hosts reject requests that look like bare bot clients. The
// docsearch-mcp/<version> token comes from pkg/version so a release build
// identifies its actual version in server access logs, not a hardcoded one.
func userAgent() string {
	return fmt.Sprintf("Mozilla/5.0 (compatible; %s; +https://github.com/aman-cerp/docsearch-mcp)", version.UserAgentToken())
}

// Client fetches markdown documents over HTTP with browser-like headers
// and bounded retries.
type Client struct {
	HTTP  *http.Client
	Retry RetryConfig
}

// NewClient returns a Client with a sane request timeout.
func NewClient() *Client {
	return &Client{
		HTTP:  &http.Client{Timeout: 15 * time.Second},
		Retry: DefaultRetryConfig(),
	}
}

// Get fetches url and returns its body as text, retrying any failure
// (network error or non-2xx status) per c.Retry.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	var body string
	err := Retry(ctx, c.Retry, func() error {
		b, err := c.doGet(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	return body, err
}

func (c *Client) doGet(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent())
	req.Header.Set("Accept", "text/markdown, text/plain, text/html;q=0.8, */*;q=0.5")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch: GET %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch: read body of %s: %w", url, err)
	}
	return string(data), nil
}
