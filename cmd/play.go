package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/karuta/internal/card"
	"github.com/arcanaland/karuta/internal/config"
	"github.com/arcanaland/karuta/internal/deck"
	"github.com/arcanaland/karuta/internal/narrator"
	"github.com/arcanaland/karuta/internal/randutil"
	"github.com/arcanaland/karuta/internal/session"
	"github.com/arcanaland/karuta/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [deck]",
	Short: "Play karuta, drawing and reading cards aloud",
	Long: `Play draws yomifuda one at a time without replacement and reads each
one aloud until the deck is exhausted.

The deck can be given as an argument or with --deck, and is looked up in
your deck library (XDG_DATA_HOME/karuta/decks) or as a path. Without either,
the default deck from your config is used, and if none is set the bundled
deck.

When stdin and stdout are a terminal an interactive screen is shown;
otherwise (or with --plain) commands are read line by line:
  n, draw    draw a new card
  r, replay  read the current card again
  x, reset   put all cards back
  q, quit    stop

Examples:
  karuta play
  karuta play animals
  karuta play --deck ./words.csv --rate 0.8
  printf 'n\nn\nq\n' | karuta play --mute`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	RootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("deck", "d", "", "Specify a deck from your deck library or a path to a CSV file")
	playCmd.Flags().Float64("rate", 0, "Speech rate multiplier (default from config)")
	playCmd.Flags().Float64("volume", 0, "Speech volume from 0 to 1 (default from config)")
	playCmd.Flags().Bool("mute", false, "Do not run the speech program")
	playCmd.Flags().Int64("seed", 0, "Seed for reproducible draws")
	playCmd.Flags().Bool("plain", false, "Use the line-oriented shell even on a terminal")
}

func runPlay(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	interactive := !plain && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	logger, closeLog, err := newLogger(cmd, interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	deckFlag, _ := cmd.Flags().GetString("deck")
	if len(args) > 0 {
		deckFlag = args[0]
	}
	deckName, cards := loadCards(deckFlag, cfg, logger)

	var opts []deck.Option
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetInt64("seed")
		opts = append(opts, deck.WithRand(randutil.New(seed)))
	}

	s := session.New(deck.NewStore(opts...), logger)
	if err := s.LoadDataset(cards); err != nil {
		return err
	}

	n := newNarrator(cmd, cfg, logger)
	narrationOpts := narrationOptions(cmd, cfg)

	if interactive {
		model := tui.NewModel(s, n, narrationOpts, deckName, logger)
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := tui.NewPlain(s, n, narrationOpts, os.Stdout, logger)
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		p.Width = min(width, 80)
	}
	if err := p.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// loadCards resolves and loads the requested deck. A deck that is missing or
// malformed is reported and the bundled deck is used instead.
func loadCards(deckName string, cfg *config.Config, logger *log.Logger) (string, []card.Card) {
	if deckName == "" {
		deckName = cfg.DefaultDeck
	}
	if deckName == "" {
		return deck.DefaultName, deck.Default()
	}

	deckPath, err := config.GetDeckPath(deckName)
	if err == nil {
		var cards []card.Card
		cards, err = deck.LoadFile(deckPath)
		if err == nil {
			logger.Debug("Deck loaded", "path", deckPath, "cards", len(cards))
			return strings.TrimSuffix(filepath.Base(deckPath), ".csv"), cards
		}
	}

	logger.Warn("Falling back to bundled deck", "deck", deckName, "error", err)
	fmt.Fprintf(os.Stderr, "%s %v\n", color.YellowString("Warning:"), err)
	fmt.Fprintf(os.Stderr, "Using the bundled deck instead.\n")
	return deck.DefaultName, deck.Default()
}

// newNarrator returns the configured speech program, or a silent narrator
// when muted or when the program is not installed.
func newNarrator(cmd *cobra.Command, cfg *config.Config, logger *log.Logger) narrator.Narrator {
	mute, _ := cmd.Flags().GetBool("mute")
	if mute || cfg.Narrator.Command == "" {
		return narrator.NewSilent(logger)
	}

	c := narrator.NewCommand(cfg.Narrator.Command, cfg.Narrator.Args, cfg.Narrator.Language, logger, quartz.NewReal())
	if !c.Available() {
		logger.Warn("Speech program not found, narration is muted", "command", cfg.Narrator.Command)
		fmt.Fprintf(os.Stderr, "%s %s not found, cards will not be read aloud\n",
			color.YellowString("Warning:"), cfg.Narrator.Command)
		return narrator.NewSilent(logger)
	}
	return c
}

// narrationOptions takes rate and volume from the config unless given as flags
func narrationOptions(cmd *cobra.Command, cfg *config.Config) narrator.Options {
	opts := narrator.Options{Rate: cfg.Narrator.Rate, Volume: cfg.Narrator.Volume}
	if cmd.Flags().Changed("rate") {
		opts.Rate, _ = cmd.Flags().GetFloat64("rate")
	}
	if cmd.Flags().Changed("volume") {
		opts.Volume, _ = cmd.Flags().GetFloat64("volume")
	}
	return opts
}
