package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotes-scraper/config"
	"quotes-scraper/models"
)

func TestPythonList(t *testing.T) {
	tests := []struct {
		name     string
		tags     models.Tags
		expected string
	}{
		{"nil", nil, "[]"},
		{"empty", models.Tags{}, "[]"},
		{"single", models.Tags{"t1"}, "['t1']"},
		{"several", models.Tags{"change", "deep-thoughts", "thinking"}, "['change', 'deep-thoughts', 'thinking']"},
		{"duplicates", models.Tags{"a", "a"}, "['a', 'a']"},
		{"apostrophe switches quote", models.Tags{"it's"}, `["it's"]`},
		{"both quotes escapes single", models.Tags{`it's "x"`}, `['it\'s "x"']`},
		{"double quote only", models.Tags{`say "hi"`}, `['say "hi"']`},
		{"backslash", models.Tags{`a\b`}, `['a\\b']`},
		{"control chars", models.Tags{"a\nb\tc\x01"}, `['a\nb\tc\x01']`},
		{"unicode kept", models.Tags{"été"}, "['été']"},
		{"c1 control", models.Tags{"a\u0085b"}, `['a\x85b']`},
		{"no-break space", models.Tags{"a\u00a0b"}, `['a\xa0b']`},
		{"zero width space", models.Tags{"a\u200bb"}, `['a\u200bb']`},
		{"astral format char", models.Tags{"a\U000e0001b"}, `['a\U000e0001b']`},
		{"emoji kept", models.Tags{"ok👍"}, "['ok👍']"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PythonList(tt.tags)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestJSONList(t *testing.T) {
	got, err := JSONList(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	got, err = JSONList(models.Tags{"a", `b"c`})
	require.NoError(t, err)
	assert.Equal(t, `["a","b\"c"]`, got)
}

func TestSemicolonList(t *testing.T) {
	got, err := SemicolonList(models.Tags{"love", "life"})
	require.NoError(t, err)
	assert.Equal(t, "love;life", got)

	got, err = SemicolonList(nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestTagsEncoderFor(t *testing.T) {
	for _, format := range []string{config.TagsFormatPython, config.TagsFormatJSON, config.TagsFormatSemicolon, ""} {
		enc, err := TagsEncoderFor(format)
		require.NoError(t, err, format)
		assert.NotNil(t, enc)
	}

	_, err := TagsEncoderFor("xml")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
