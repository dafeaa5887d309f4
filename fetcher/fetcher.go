package fetcher

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"

	"quotes-scraper/config"
)

// Fetcher interface defines the contract for fetching implementations
type Fetcher interface {
	// Fetch performs one GET for url. Any HTTP status is reported through the
	// Response; only transport failures are returned as errors.
	Fetch(ctx context.Context, url string) (*Response, error)
}

// Response is the outcome of a single page request
type Response struct {
	URL        string
	StatusCode int
	Body       []byte // raw body, set only for 200 OK
}

// OK reports whether the page was served with status 200
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// New creates the fetcher selected by cfg.Engine
func New(cfg config.FetcherConfig) (Fetcher, error) {
	switch cfg.Engine {
	case config.EngineHTTP, "":
		return NewHTTPFetcher(cfg), nil
	case config.EngineColly:
		return NewCollyFetcher(cfg), nil
	default:
		return nil, eris.Wrapf(config.ErrInvalidConfig, "unknown fetcher engine %q", cfg.Engine)
	}
}
