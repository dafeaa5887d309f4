package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quotes-scraper/config"
	"quotes-scraper/models"
)

var sample = []models.Quote{
	{Text: "1", Author: "Albert Einstein", Tags: models.Tags{"change", "thinking"}},
	{Text: "2", Author: "J.K. Rowling", Tags: models.Tags{"abilities", "choices"}},
	{Text: "3", Author: "Albert Einstein", Tags: models.Tags{"inspirational", "life"}},
	{Text: "4", Author: "Jane Austen", Tags: nil},
	{Text: "5", Author: "Anonymous", Tags: models.Tags{"change", "change"}},
}

func texts(quotes []models.Quote) []string {
	out := make([]string, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q.Text)
	}
	return out
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.FilterConfig
		expected []string
	}{
		{"no criteria keeps all", config.FilterConfig{}, []string{"1", "2", "3", "4", "5"}},
		{"blank criteria keeps all", config.FilterConfig{Authors: []string{" "}, Tags: []string{""}}, []string{"1", "2", "3", "4", "5"}},
		{"author case-insensitive", config.FilterConfig{Authors: []string{"albert einstein"}}, []string{"1", "3"}},
		{"several authors", config.FilterConfig{Authors: []string{"Jane Austen", "J.K. Rowling"}}, []string{"2", "4"}},
		{"any tag", config.FilterConfig{Tags: []string{"life", "choices"}}, []string{"2", "3"}},
		{"author and tag", config.FilterConfig{Authors: []string{"Albert Einstein"}, Tags: []string{"life"}}, []string{"3"}},
		{"no match", config.FilterConfig{Tags: []string{"humor"}}, []string{}},
		{"tag match is exact", config.FilterConfig{Tags: []string{"Life", "think"}}, []string{}},
		{"nil tags never match a tag filter", config.FilterConfig{Authors: []string{"Jane Austen"}, Tags: []string{"life"}}, []string{}},
		{"duplicate tag kept once", config.FilterConfig{Tags: []string{"change"}}, []string{"1", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFilter(tt.cfg).ApplyFilters(sample)
			assert.Equal(t, tt.expected, texts(got))
		})
	}
}

func TestActive(t *testing.T) {
	assert.False(t, NewFilter(config.FilterConfig{}).Active())
	assert.True(t, NewFilter(config.FilterConfig{Tags: []string{"x"}}).Active())
}
