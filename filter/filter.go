package filter

import (
	"strings"

	"quotes-scraper/config"
	"quotes-scraper/models"
)

// Filter applies filter criteria to quotes
type Filter struct {
	authors map[string]bool
	tags    map[string]bool
}

// NewFilter creates a new Filter instance. Empty criteria match everything.
func NewFilter(cfg config.FilterConfig) *Filter {
	f := &Filter{
		authors: make(map[string]bool),
		tags:    make(map[string]bool),
	}
	for _, a := range cfg.Authors {
		if a = strings.TrimSpace(a); a != "" {
			f.authors[strings.ToLower(a)] = true
		}
	}
	for _, t := range cfg.Tags {
		if t = strings.TrimSpace(t); t != "" {
			f.tags[t] = true
		}
	}
	return f
}

// Active reports whether any criteria are set
func (f *Filter) Active() bool {
	return len(f.authors) > 0 || len(f.tags) > 0
}

// ApplyFilters filters quotes based on the configuration, keeping their order
func (f *Filter) ApplyFilters(quotes []models.Quote) []models.Quote {
	if !f.Active() {
		return quotes
	}

	filtered := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if f.matchesFilters(q) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// matchesFilters checks if a quote matches all filter criteria
func (f *Filter) matchesFilters(q models.Quote) bool {
	// Author: case-insensitive, any of
	if len(f.authors) > 0 && !f.authors[strings.ToLower(q.Author)] {
		return false
	}

	if len(f.tags) == 0 {
		return true
	}

	// Tags: exact match, any of
	for _, tag := range q.Tags {
		if f.tags[tag] {
			return true
		}
	}
	return false
}
