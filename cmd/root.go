package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "karuta",
	Short: "Hiragana karuta game with spoken yomifuda",
	Long: `Karuta draws yomifuda (reading cards) from a deck of hiragana/phrase pairs
and reads each one aloud until the deck runs out.

Decks are CSV files with the columns "ひらがな" and "script". They live in
your deck library (XDG_DATA_HOME/karuta/decks) or anywhere on disk.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	RootCmd.PersistentFlags().String("log-file", "", "Write logs to a file instead of stderr")
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// newLogger builds the logger for a command. When quiet is set and no log
// file was requested, logs are discarded so they do not draw over the TUI.
// The returned function closes the log file.
func newLogger(cmd *cobra.Command, quiet bool) (*log.Logger, func(), error) {
	debug, _ := cmd.Flags().GetBool("debug")
	logFile, _ := cmd.Flags().GetString("log-file")

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	var out io.Writer = os.Stderr
	closer := func() {}

	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
			}
		}
	case quiet:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return logger, closer, nil
}
