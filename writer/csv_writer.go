package writer

import (
	"encoding/csv"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"quotes-scraper/config"
	"quotes-scraper/models"
)

// quoteRow is the on-disk shape of one quote; the tags cell is pre-encoded
type quoteRow struct {
	Text   string `csv:"text"`
	Author string `csv:"author"`
	Tags   string `csv:"tags"`
}

// CSVWriter handles writing quotes to a CSV file
type CSVWriter struct {
	encodeTags TagsEncoder
	crlf       bool
}

// NewCSVWriter creates a new CSV writer
func NewCSVWriter(encodeTags TagsEncoder, crlf bool) *CSVWriter {
	if encodeTags == nil {
		encodeTags = PythonList
	}
	return &CSVWriter{
		encodeTags: encodeTags,
		crlf:       crlf,
	}
}

// FromConfig builds a CSVWriter from the output section of the config
func FromConfig(cfg config.OutputConfig) (*CSVWriter, error) {
	enc, err := TagsEncoderFor(cfg.TagsFormat)
	if err != nil {
		return nil, err
	}
	return NewCSVWriter(enc, cfg.CRLF), nil
}

// WriteQuotes truncates or creates path and writes the header followed by one
// row per quote, in order. The file is flushed and closed before returning.
func (w *CSVWriter) WriteQuotes(path string, quotes []models.Quote) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = eris.Wrapf(cerr, "close %s", path)
		}
	}()

	cw := csv.NewWriter(file)
	cw.UseCRLF = w.crlf

	enc := csvutil.NewEncoder(cw)
	enc.AutoHeader = false
	if err := enc.EncodeHeader(quoteRow{}); err != nil {
		return eris.Wrap(err, "write header")
	}

	for i, q := range quotes {
		tags, err := w.encodeTags(q.Tags)
		if err != nil {
			return eris.Wrapf(err, "encode tags of quote %d", i)
		}
		row := quoteRow{Text: q.Text, Author: q.Author, Tags: tags}
		if err := enc.Encode(row); err != nil {
			return eris.Wrapf(err, "write quote %d", i)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrapf(err, "flush %s", path)
	}
	return nil
}
