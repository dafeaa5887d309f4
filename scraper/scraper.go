package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"quotes-scraper/config"
	"quotes-scraper/fetcher"
	"quotes-scraper/filter"
	"quotes-scraper/models"
)

// ErrPageUnavailable is returned for non-200 pages when FailOnUnavailable is set
var ErrPageUnavailable = eris.New("page unavailable")

// QuoteParser turns one page of HTML into quotes
type QuoteParser interface {
	ParseQuotes(html []byte) ([]models.Quote, error)
}

// Options tune the pagination loop
type Options struct {
	BaseURL           string
	Delay             time.Duration // minimum spacing between page requests, 0 disables
	MaxPages          int           // 0 means no bound
	FailOnUnavailable bool
}

// OptionsFromConfig maps the config onto scraper options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:           cfg.BaseURL,
		Delay:             cfg.Scraper.Delay,
		MaxPages:          cfg.Scraper.MaxPages,
		FailOnUnavailable: cfg.Scraper.FailOnUnavailable,
	}
}

// Summary describes a finished run
type Summary struct {
	RunID   string
	Quotes  []models.Quote // after filtering, in page then document order
	Scraped int            // quotes extracted before filtering
	Pages   int            // pages that yielded quotes
	Last    *PageResult    // page that ended pagination, nil when MaxPages was reached
	Elapsed time.Duration
}

// Scraper walks the numbered listing pages until one comes back without quotes
type Scraper struct {
	fetcher fetcher.Fetcher
	parser  QuoteParser
	filter  *filter.Filter
	pacer   *rate.Limiter
	opts    Options
	log     logrus.FieldLogger
}

// New creates a Scraper. A nil filter keeps every quote.
func New(f fetcher.Fetcher, p QuoteParser, flt *filter.Filter, opts Options, log logrus.FieldLogger) *Scraper {
	if flt == nil {
		flt = filter.NewFilter(config.FilterConfig{})
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}
	return &Scraper{
		fetcher: f,
		parser:  p,
		filter:  flt,
		pacer:   newPacer(opts.Delay),
		opts:    opts,
		log:     log,
	}
}

// newPacer hands out one request slot per delay; the first slot is free
func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// PageURL returns the URL of page n
func (s *Scraper) PageURL(n int) string {
	return fmt.Sprintf("%spage/%d/", s.opts.BaseURL, n)
}

// ScrapePage fetches and parses page n. Non-200 responses are reported as
// OutcomeUnavailable without parsing; transport and parse failures are errors.
func (s *Scraper) ScrapePage(ctx context.Context, n int) (PageResult, error) {
	url := s.PageURL(n)

	resp, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return PageResult{}, eris.Wrapf(err, "fetch page %d", n)
	}

	res := PageResult{Number: n, URL: url, StatusCode: resp.StatusCode}
	if !resp.OK() {
		res.Outcome = OutcomeUnavailable
		return res, nil
	}

	quotes, err := s.parser.ParseQuotes(resp.Body)
	if err != nil {
		return PageResult{}, eris.Wrapf(err, "parse page %d", n)
	}

	res.Quotes = quotes
	if len(quotes) == 0 {
		res.Outcome = OutcomeExhausted
	} else {
		res.Outcome = OutcomeQuotes
	}
	return res, nil
}

// ScrapeAll scrapes page 1, 2, ... until a page yields no quotes and returns
// everything collected. Nothing is kept when an error aborts the run.
func (s *Scraper) ScrapeAll(ctx context.Context) (*Summary, error) {
	start := time.Now()
	sum := &Summary{RunID: uuid.NewString()}
	log := s.log.WithField("run_id", sum.RunID)

	var all []models.Quote
	for page := 1; ; page++ {
		if s.opts.MaxPages > 0 && page > s.opts.MaxPages {
			log.WithField("max_pages", s.opts.MaxPages).Info("Page limit reached")
			break
		}

		if err := s.pacer.Wait(ctx); err != nil {
			return nil, eris.Wrapf(err, "wait before page %d", page)
		}

		res, err := s.ScrapePage(ctx, page)
		if err != nil {
			return nil, err
		}

		entry := log.WithFields(logrus.Fields{
			"page":   page,
			"url":    res.URL,
			"status": res.StatusCode,
		})

		if res.Done() {
			if res.Outcome == OutcomeUnavailable && s.opts.FailOnUnavailable {
				return nil, eris.Wrapf(ErrPageUnavailable, "page %d returned status %d", page, res.StatusCode)
			}
			entry.WithField("outcome", res.Outcome).Info("Pagination finished")
			sum.Last = &res
			break
		}

		entry.WithField("quotes", len(res.Quotes)).Info("Scraped page")
		all = append(all, res.Quotes...)
		sum.Pages++
	}

	sum.Scraped = len(all)
	sum.Quotes = s.filter.ApplyFilters(all)
	sum.Elapsed = time.Since(start)

	log.WithFields(logrus.Fields{
		"pages":   sum.Pages,
		"scraped": sum.Scraped,
		"kept":    len(sum.Quotes),
		"elapsed": sum.Elapsed.Round(time.Millisecond).String(),
	}).Info("Scraping completed")

	return sum, nil
}
