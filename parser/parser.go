package parser

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"quotes-scraper/config"
	"quotes-scraper/models"
)

// ErrMissingElement is returned when a quote block lacks its text or author element
var ErrMissingElement = eris.New("quote block is missing a required element")

// Selectors are the CSS selectors used to locate quote data
type Selectors struct {
	Quote  string
	Text   string
	Author string
	Tag    string
}

// DefaultSelectors match the markup of quotes.toscrape.com
func DefaultSelectors() Selectors {
	return Selectors{
		Quote:  ".quote",
		Text:   ".text",
		Author: ".author",
		Tag:    ".tag",
	}
}

// Parser extracts quotes from listing page HTML
type Parser struct {
	sel     Selectors
	skipBad bool
	log     logrus.FieldLogger
}

// NewParser creates a new Parser instance. With skipMissing set, quote blocks
// lacking text or author are dropped with a warning instead of failing the page.
func NewParser(sel Selectors, skipMissing bool, log logrus.FieldLogger) *Parser {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Parser{
		sel:     sel,
		skipBad: skipMissing,
		log:     log,
	}
}

// FromConfig builds a Parser from the parser section of the config
func FromConfig(cfg config.ParserConfig, log logrus.FieldLogger) *Parser {
	return NewParser(Selectors{
		Quote:  cfg.QuoteSelector,
		Text:   cfg.TextSelector,
		Author: cfg.AuthorSelector,
		Tag:    cfg.TagSelector,
	}, cfg.OnMissing == config.OnMissingSkip, log)
}

// ParseQuotes extracts quotes from HTML content in document order.
// A page without quote blocks yields an empty result and no error.
func (p *Parser) ParseQuotes(html []byte) ([]models.Quote, error) {
	if len(bytes.TrimSpace(html)) == 0 {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "failed to parse HTML")
	}

	var quotes []models.Quote
	var parseErr error

	doc.Find(p.sel.Quote).EachWithBreak(func(i int, s *goquery.Selection) bool {
		quote, err := p.extractQuote(i, s)
		if err != nil {
			if p.skipBad {
				p.log.WithError(err).WithField("block", i).Warn("Skipping incomplete quote block")
				return true
			}
			parseErr = err
			return false
		}
		quotes = append(quotes, quote)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return quotes, nil
}

// extractQuote extracts a single quote from a quote block
func (p *Parser) extractQuote(i int, s *goquery.Selection) (models.Quote, error) {
	text, err := p.requiredText(i, s, p.sel.Text)
	if err != nil {
		return models.Quote{}, err
	}
	author, err := p.requiredText(i, s, p.sel.Author)
	if err != nil {
		return models.Quote{}, err
	}

	tags := models.Tags{}
	s.Find(p.sel.Tag).Each(func(_ int, tag *goquery.Selection) {
		tags = append(tags, strings.TrimSpace(tag.Text()))
	})

	return models.Quote{
		Text:   text,
		Author: author,
		Tags:   tags,
	}, nil
}

// requiredText returns the trimmed text of the first element matching selector
func (p *Parser) requiredText(i int, s *goquery.Selection, selector string) (string, error) {
	el := s.Find(selector).First()
	if el.Length() == 0 {
		return "", eris.Wrapf(ErrMissingElement, "quote block %d: no element matches %q", i, selector)
	}
	return strings.TrimSpace(el.Text()), nil
}
