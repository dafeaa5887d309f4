package scraper

import "quotes-scraper/models"

// Outcome classifies a fetched page
type Outcome int

const (
	// OutcomeQuotes means the page was served and held at least one quote
	OutcomeQuotes Outcome = iota
	// OutcomeExhausted means the page was served but held no quotes: the real end
	OutcomeExhausted
	// OutcomeUnavailable means the server answered with a non-200 status
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQuotes:
		return "quotes"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// PageResult is what one page contributed to a run
type PageResult struct {
	Number     int
	URL        string
	StatusCode int
	Quotes     []models.Quote
	Outcome    Outcome
}

// Done reports whether this page ends pagination
func (r PageResult) Done() bool {
	return r.Outcome != OutcomeQuotes
}
