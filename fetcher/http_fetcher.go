package fetcher

import (
	"context"
	"io"
	"net/http"

	"github.com/rotisserie/eris"

	"quotes-scraper/config"
)

// HTTPFetcher implements the Fetcher interface with a plain net/http client
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a new HTTPFetcher. A zero timeout leaves the client without one.
func NewHTTPFetcher(cfg config.FetcherConfig) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// Fetch implements the Fetcher interface
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "create request for %s", url)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "get %s", url)
	}
	defer resp.Body.Close() //nolint:errcheck

	out := &Response{URL: url, StatusCode: resp.StatusCode}
	if !out.OK() {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return out, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "read body of %s", url)
	}
	out.Body = body
	return out, nil
}
