package models

// Quote represents one quote block scraped from a listing page
type Quote struct {
	Text   string
	Author string
	Tags   Tags
}

// Tags is the ordered list of tags attached to a quote, as they appear on the page.
// Duplicates are kept.
type Tags []string

