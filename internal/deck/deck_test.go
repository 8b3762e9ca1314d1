package deck

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/karuta/internal/card"
)

func TestParse(t *testing.T) {
	t.Run("reads rows in order", func(t *testing.T) {
		input := "ひらがな,script\nあ,あおい空\nい,いぬが走る\n"
		cards, err := Parse(strings.NewReader(input), "test.csv")
		require.NoError(t, err)
		assert.Equal(t, []card.Card{
			{Prompt: "あ", Clue: "あおい空"},
			{Prompt: "い", Clue: "いぬが走る"},
		}, cards)
	})

	t.Run("column order and extra columns", func(t *testing.T) {
		input := "note,script,ひらがな\nx,あおい空,あ\n"
		cards, err := Parse(strings.NewReader(input), "test.csv")
		require.NoError(t, err)
		assert.Equal(t, []card.Card{{Prompt: "あ", Clue: "あおい空"}}, cards)
	})

	t.Run("byte order mark", func(t *testing.T) {
		input := "\ufeffひらがな,script\nあ,あおい空\n"
		cards, err := Parse(strings.NewReader(input), "bom.csv")
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})

	t.Run("decomposed kana are normalized", func(t *testing.T) {
		// が written as か + combining voiced sound mark
		input := "ひらがな,script\nか\u3099, か\u3099っこう \n"
		cards, err := Parse(strings.NewReader(input), "nfd.csv")
		require.NoError(t, err)
		assert.Equal(t, card.Card{Prompt: "が", Clue: "がっこう"}, cards[0])
	})

	t.Run("quoted fields", func(t *testing.T) {
		input := "ひらがな,script\nあ,\"あめ、ふる\"\n"
		cards, err := Parse(strings.NewReader(input), "q.csv")
		require.NoError(t, err)
		assert.Equal(t, "あめ、ふる", cards[0].Clue)
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		reason string
	}{
		{"empty file", "", 0, "file is empty"},
		{"missing clue column", "ひらがな,text\nあ,あめ\n", 1, "missing column script"},
		{"missing both columns", "a,b\n1,2\n", 1, "missing column ひらがな, script"},
		{"header only", "ひらがな,script\n", 0, "no cards"},
		{"empty prompt", "ひらがな,script\nあ,あめ\n,いぬ\n", 3, "empty ひらがな"},
		{"short row", "ひらがな,script\nあ\n", 2, "empty script"},
		{"bare quote", "ひらがな,script\nあ,あ\"め\n", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "bad.csv")
			require.Error(t, err)

			var dsErr *DatasetError
			require.True(t, errors.As(err, &dsErr), "expected DatasetError, got %T", err)
			assert.Equal(t, "bad.csv", dsErr.Path)
			assert.Equal(t, tt.line, dsErr.Line)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, dsErr.Reason)
			}
		})
	}
}

func TestDatasetErrorMessage(t *testing.T) {
	err := &DatasetError{Path: "words.csv", Line: 4, Reason: "empty script"}
	assert.Equal(t, "invalid dataset words.csv (line 4): empty script", err.Error())

	err = &DatasetError{Reason: "no cards"}
	assert.Equal(t, "invalid dataset: no cards", err.Error())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("ひらがな,script\nあ,あおい空\n"), 0644))

	cards, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []card.Card{{Prompt: "あ", Clue: "あおい空"}}, cards)

	_, err = LoadFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDefault(t *testing.T) {
	cards := Default()
	require.NotEmpty(t, cards)
	for _, c := range cards {
		assert.True(t, c.Valid(), "card %v", c)
	}

	// Callers get their own copy
	cards[0] = card.Card{}
	assert.True(t, Default()[0].Valid())

	parsed, err := Parse(strings.NewReader(string(DefaultCSV())), DefaultName)
	require.NoError(t, err)
	assert.Equal(t, Default(), parsed)
}
