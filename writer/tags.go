package writer

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"

	"quotes-scraper/config"
	"quotes-scraper/models"
)

// TagsEncoder renders a tag list into a single CSV cell
type TagsEncoder func(models.Tags) (string, error)

// TagsEncoderFor returns the encoder for a configured tags format
func TagsEncoderFor(format string) (TagsEncoder, error) {
	switch format {
	case config.TagsFormatPython, "":
		return PythonList, nil
	case config.TagsFormatJSON:
		return JSONList, nil
	case config.TagsFormatSemicolon:
		return SemicolonList, nil
	default:
		return nil, eris.Wrapf(config.ErrInvalidConfig, "unknown tags format %q", format)
	}
}

// PythonList renders tags the way Python prints a list of str: ['a', 'b']
func PythonList(tags models.Tags) (string, error) {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, tag := range tags {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(pythonRepr(tag))
	}
	sb.WriteByte(']')
	return sb.String(), nil
}

// JSONList renders tags as a JSON array of strings
func JSONList(tags models.Tags) (string, error) {
	if tags == nil {
		tags = models.Tags{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", eris.Wrap(err, "marshal tags")
	}
	return string(b), nil
}

// SemicolonList joins tags with ';'
func SemicolonList(tags models.Tags) (string, error) {
	return strings.Join(tags, ";"), nil
}

// pythonRepr quotes s like Python's repr(str): single quotes unless the string
// holds a single quote and no double quote.
func pythonRepr(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var sb strings.Builder
	sb.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case !unicode.IsPrint(r):
			writeRuneEscape(&sb, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteRune(quote)
	return sb.String()
}

// writeRuneEscape writes r as the shortest of \xNN, \uNNNN or \UNNNNNNNN
func writeRuneEscape(sb *strings.Builder, r rune) {
	switch {
	case r <= 0xff:
		fmt.Fprintf(sb, `\x%02x`, r)
	case r <= 0xffff:
		fmt.Fprintf(sb, `\u%04x`, r)
	default:
		fmt.Fprintf(sb, `\U%08x`, r)
	}
}
