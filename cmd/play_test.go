package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/karuta/internal/card"
	"github.com/arcanaland/karuta/internal/config"
	"github.com/arcanaland/karuta/internal/deck"
	"github.com/arcanaland/karuta/internal/narrator"
)

func setupLibrary(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	library := config.GetDeckLibraryPath()
	require.NoError(t, os.MkdirAll(library, 0755))
	return library
}

func TestLoadCards(t *testing.T) {
	library := setupLibrary(t)
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	require.NoError(t, os.WriteFile(filepath.Join(library, "animals.csv"),
		[]byte("ひらがな,script\nい,いぬ\nね,ねこ\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(library, "broken.csv"),
		[]byte("ひらがな,script\nい,\n"), 0644))

	t.Run("named deck", func(t *testing.T) {
		name, cards := loadCards("animals", config.Default(), logger)
		assert.Equal(t, "animals", name)
		assert.Equal(t, []card.Card{{Prompt: "い", Clue: "いぬ"}, {Prompt: "ね", Clue: "ねこ"}}, cards)
	})

	t.Run("default deck from config", func(t *testing.T) {
		cfg := config.Default()
		cfg.DefaultDeck = "animals"
		name, cards := loadCards("", cfg, logger)
		assert.Equal(t, "animals", name)
		assert.Len(t, cards, 2)
	})

	t.Run("bundled deck when nothing is configured", func(t *testing.T) {
		name, cards := loadCards("", config.Default(), logger)
		assert.Equal(t, deck.DefaultName, name)
		assert.Equal(t, deck.Default(), cards)
	})

	t.Run("malformed deck falls back to bundled deck", func(t *testing.T) {
		name, cards := loadCards("broken", config.Default(), logger)
		assert.Equal(t, deck.DefaultName, name)
		assert.Equal(t, deck.Default(), cards)
	})

	t.Run("missing deck falls back to bundled deck", func(t *testing.T) {
		name, _ := loadCards("plants", config.Default(), logger)
		assert.Equal(t, deck.DefaultName, name)
	})
}

func TestNarrationOptions(t *testing.T) {
	newCmd := func() *cobra.Command {
		c := &cobra.Command{}
		c.Flags().Float64("rate", 0, "")
		c.Flags().Float64("volume", 0, "")
		return c
	}
	cfg := config.Default()
	cfg.Narrator.Rate = 0.8

	assert.Equal(t, narrator.Options{Rate: 0.8, Volume: 1.0}, narrationOptions(newCmd(), cfg))

	c := newCmd()
	require.NoError(t, c.Flags().Set("rate", "1.5"))
	require.NoError(t, c.Flags().Set("volume", "0"))
	assert.Equal(t, narrator.Options{Rate: 1.5, Volume: 0}, narrationOptions(c, cfg))
}

func TestNewNarratorMuted(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	c := &cobra.Command{}
	c.Flags().Bool("mute", false, "")
	require.NoError(t, c.Flags().Set("mute", "true"))

	_, ok := newNarrator(c, config.Default(), logger).(*narrator.Silent)
	assert.True(t, ok)

	cfg := config.Default()
	cfg.Narrator.Command = "karuta-test-no-such-speech-program"
	_, ok = newNarrator(&cobra.Command{}, cfg, logger).(*narrator.Silent)
	assert.True(t, ok, "missing program falls back to silent")
}
