package validator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, input string) ValidationResults {
	t.Helper()
	results, err := NewValidator("test.csv").ValidateReader(strings.NewReader(input))
	require.NoError(t, err)
	return results
}

func TestValidDataset(t *testing.T) {
	results := validate(t, "ひらがな,script\nあ,あおい空\nい,いぬが走る\n")
	assert.Empty(t, results.Errors)
	assert.Empty(t, results.Warnings)
	assert.Equal(t, 2, results.Cards)
}

func TestValidatorCollectsAllErrors(t *testing.T) {
	results := validate(t, "ひらがな,script\n,あおい空\nい,\nう,うた\n,\n")

	assert.Equal(t, []string{
		"line 2: ひらがな is empty",
		"line 3: script is empty",
		"line 5: ひらがな is empty",
		"line 5: script is empty",
	}, results.Errors)
	assert.Equal(t, 1, results.Cards)
}

func TestValidatorHeader(t *testing.T) {
	results := validate(t, "kana,script\nあ,あおい空\n")
	assert.Equal(t, []string{"line 1: missing column ひらがな"}, results.Errors)

	results = validate(t, "ひらがな,script,memo\nあ,あおい空,x\n")
	assert.Empty(t, results.Errors)
	assert.Equal(t, []string{"line 1: extra columns are ignored: memo"}, results.Warnings)
}

func TestValidatorEmpty(t *testing.T) {
	assert.Equal(t, []string{"file is empty"}, validate(t, "").Errors)
	assert.Equal(t, []string{"no cards found"}, validate(t, "ひらがな,script\n").Errors)
}

func TestValidatorWarnings(t *testing.T) {
	t.Run("duplicate prompt", func(t *testing.T) {
		results := validate(t, "ひらがな,script\nあ,あおい空\nい,いぬ\nあ,あめ\n")
		assert.Empty(t, results.Errors)
		assert.Equal(t, []string{`line 4: duplicate ひらがな "あ" (first on line 2)`}, results.Warnings)
		assert.Equal(t, 3, results.Cards)
	})

	t.Run("decomposed text", func(t *testing.T) {
		results := validate(t, "ひらがな,script\nか\u3099,がっこう\n")
		assert.Empty(t, results.Errors)
		require.Len(t, results.Warnings, 1)
		assert.Contains(t, results.Warnings[0], "line 2")
		assert.Contains(t, results.Warnings[0], "not NFC normalized")
	})
}

func TestValidatorMalformedQuoting(t *testing.T) {
	results := validate(t, "ひらがな,script\nあ,あおい空\nい,い\"ぬ\n")
	require.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], "bare \"")
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("ひらがな,script\nあ,あおい空\n"), 0644))

	results, err := NewValidator(path).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assert.Equal(t, 1, results.Cards)

	_, err = NewValidator(filepath.Join(dir, "missing.csv")).Validate()
	assert.Error(t, err)
}

func TestValidatorReuse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("ひらがな,script\nあ,あおい空\nあ,あめ\n,いぬ\n"), 0644))

	v := NewValidator(path)
	first, err := v.Validate()
	require.NoError(t, err)
	second, err := v.Validate()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, second.Cards)
	assert.Len(t, second.Errors, 1)
	assert.Equal(t, []string{`line 3: duplicate ひらがな "あ" (first on line 2)`}, second.Warnings)
}
