package fetcher

import (
	"context"
	"net/http"

	"github.com/gocolly/colly/v2"
	"github.com/rotisserie/eris"

	"quotes-scraper/config"
)

// CollyFetcher implements the Fetcher interface using colly
type CollyFetcher struct {
	collector *colly.Collector
}

// NewCollyFetcher creates a new CollyFetcher instance
func NewCollyFetcher(cfg config.FetcherConfig) *CollyFetcher {
	opts := []colly.CollectorOption{
		// pagination may legitimately ask for the same URL in a later run
		colly.AllowURLRevisit(),
		// non-2xx pages come back through OnResponse instead of as errors
		colly.ParseHTTPErrorResponse(),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(cfg.UserAgent))
	}

	c := colly.NewCollector(opts...)
	if cfg.Timeout > 0 {
		c.SetRequestTimeout(cfg.Timeout)
	}

	return &CollyFetcher{
		collector: c,
	}
}

// Fetch implements the Fetcher interface
func (cf *CollyFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrapf(err, "get %s", url)
	}

	// a clone shares transport and settings but has no callbacks, so each
	// fetch gets its own OnResponse
	c := cf.collector.Clone()
	// colly builds every request with the collector's context
	c.Context = ctx

	var out *Response
	c.OnResponse(func(r *colly.Response) {
		out = &Response{URL: url, StatusCode: r.StatusCode}
		if r.StatusCode == http.StatusOK {
			out.Body = r.Body
		}
	})

	if err := c.Visit(url); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, eris.Wrapf(ctxErr, "get %s", url)
		}
		return nil, eris.Wrapf(err, "get %s", url)
	}
	c.Wait()

	if out == nil {
		return nil, eris.Errorf("get %s: no response received", url)
	}
	return out, nil
}
