package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/karuta/internal/config"
	"github.com/arcanaland/karuta/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage karuta decks in your deck library",
	Long:  `Commands for managing karuta decks in your deck library.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listDecks(os.Stdout, config.GetDeckLibraryPath())
	},
}

// listDecks prints every deck in the library with its card count, marking
// the default deck
func listDecks(w io.Writer, libraryPath string) error {
	// Check if deck library exists
	if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
		fmt.Fprintf(w, "Deck library at %s does not exist.\n", libraryPath)
		fmt.Fprintln(w, "Run 'karuta deck init' to create it.")
		return nil
	}

	// Resolve symlinks so a linked library is read from its target
	libraryPath, err := filepath.EvalSymlinks(libraryPath)
	if err != nil {
		return fmt.Errorf("error resolving deck library path: %w", err)
	}

	defaultDeck, err := config.GetDefaultDeck()
	if err != nil {
		return fmt.Errorf("error getting default deck: %w", err)
	}
	defaultDeck = strings.TrimSuffix(defaultDeck, ".csv")

	entries, err := os.ReadDir(libraryPath)
	if err != nil {
		return fmt.Errorf("error reading deck library: %w", err)
	}

	found := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".csv")
		cards, err := deck.LoadFile(filepath.Join(libraryPath, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "  %s %s\n", name, color.RedString("(invalid: %v)", err))
			continue
		}
		found++

		if name == defaultDeck {
			fmt.Fprintf(w, "* %s (%d cards) %s\n", color.HiWhiteString("%s", name), len(cards), color.CyanString("[DEFAULT]"))
		} else {
			fmt.Fprintf(w, "  %s (%d cards)\n", name, len(cards))
		}
	}

	if found == 0 {
		fmt.Fprintln(w, "No decks found in your deck library.")
		fmt.Fprintln(w, "You can add decks by copying CSV files to:", libraryPath)
	}
	return nil
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_name]",
	Short: "Set the default deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckName := args[0]

		deckPath, err := config.GetDeckPath(deckName)
		if err != nil {
			return err
		}

		// Try to load the deck to make sure it's valid
		if _, err := deck.LoadFile(deckPath); err != nil {
			return fmt.Errorf("not a valid deck: %w", err)
		}

		if err := config.SetDefaultDeck(deckName); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}

		fmt.Printf("Default deck set to: %s\n", deckName)
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library with the bundled deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetDeckLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}
		fmt.Println("Deck library initialized at:", libraryPath)

		defaultPath := filepath.Join(libraryPath, deck.DefaultName+".csv")
		if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
			if err := os.WriteFile(defaultPath, deck.DefaultCSV(), 0644); err != nil {
				return fmt.Errorf("error writing bundled deck: %w", err)
			}
			fmt.Println("Bundled deck written to:", defaultPath)
		}
		fmt.Println("You can now add decks by copying CSV files to this directory.")

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}
		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckInitCmd)
}
