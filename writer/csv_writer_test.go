package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotes-scraper/config"
	"quotes-scraper/models"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteQuotes_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.csv")

	require.NoError(t, NewCSVWriter(PythonList, false).WriteQuotes(path, nil))
	assert.Equal(t, "text,author,tags\n", readFile(t, path))
}

func TestWriteQuotes_Rows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.csv")
	quotes := []models.Quote{
		{Text: "A", Author: "X", Tags: models.Tags{"t1"}},
		{Text: "B", Author: "Y", Tags: models.Tags{}},
	}

	require.NoError(t, NewCSVWriter(PythonList, false).WriteQuotes(path, quotes))
	assert.Equal(t, "text,author,tags\nA,X,['t1']\nB,Y,[]\n", readFile(t, path))
}

func TestWriteQuotes_Quoting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.csv")
	quotes := []models.Quote{
		{Text: `He said "hi", then left`, Author: "Doe, Jane", Tags: models.Tags{"a", "b"}},
		{Text: "line one\nline two", Author: "Z", Tags: nil},
	}

	require.NoError(t, NewCSVWriter(PythonList, false).WriteQuotes(path, quotes))

	content := readFile(t, path)
	assert.Equal(t, "text,author,tags\n"+
		`"He said ""hi"", then left","Doe, Jane","['a', 'b']"`+"\n"+
		"\"line one\nline two\",Z,[]\n", content)

	// and it reads back through a standard CSV reader
	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"text", "author", "tags"}, records[0])
	assert.Equal(t, []string{`He said "hi", then left`, "Doe, Jane", "['a', 'b']"}, records[1])
	assert.Equal(t, []string{"line one\nline two", "Z", "[]"}, records[2])
}

func TestWriteQuotes_TruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale data\n", 100)), 0o644))

	require.NoError(t, NewCSVWriter(nil, false).WriteQuotes(path, []models.Quote{{Text: "A", Author: "X"}}))
	assert.Equal(t, "text,author,tags\nA,X,[]\n", readFile(t, path))
}

func TestWriteQuotes_CRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.csv")

	require.NoError(t, NewCSVWriter(PythonList, true).WriteQuotes(path, []models.Quote{{Text: "A", Author: "X"}}))
	assert.Equal(t, "text,author,tags\r\nA,X,[]\r\n", readFile(t, path))
}

func TestWriteQuotes_FromConfigFormats(t *testing.T) {
	tests := []struct {
		format   string
		expected string
	}{
		{config.TagsFormatPython, "text,author,tags\nA,X,\"['t1', 't2']\"\n"},
		{config.TagsFormatJSON, "text,author,tags\nA,X,\"[\"\"t1\"\",\"\"t2\"\"]\"\n"},
		{config.TagsFormatSemicolon, "text,author,tags\nA,X,t1;t2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w, err := FromConfig(config.OutputConfig{TagsFormat: tt.format})
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "quotes.csv")
			require.NoError(t, w.WriteQuotes(path, []models.Quote{{Text: "A", Author: "X", Tags: models.Tags{"t1", "t2"}}}))
			assert.Equal(t, tt.expected, readFile(t, path))
		})
	}
}

func TestWriteQuotes_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "quotes.csv")

	err := NewCSVWriter(PythonList, false).WriteQuotes(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}
