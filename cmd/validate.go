package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/karuta/internal/config"
	"github.com/arcanaland/karuta/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [deck...]",
	Short: "Validate karuta deck files",
	Long: `Validate checks that deck CSV files have the "ひらがな" and "script" columns
and that every row has both a key and a phrase. It also warns about duplicate
keys, text that is not NFC normalized, and extra columns.

Decks are looked up in your deck library or as paths.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := make([]validator.ValidationResults, len(args))
		paths := make([]string, len(args))

		var g errgroup.Group
		g.SetLimit(4)
		for i, name := range args {
			g.Go(func() error {
				path, err := config.GetDeckPath(name)
				if err != nil {
					return err
				}
				paths[i] = path

				res, err := validator.NewValidator(path).Validate()
				if err != nil {
					return fmt.Errorf("validation error: %w", err)
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		failed := 0
		for i, res := range results {
			if !printResults(paths[i], res) {
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("validation failed for %d of %d decks", failed, len(args))
		}
		return nil
	},
}

// printResults displays the results for one deck and reports whether it is valid
func printResults(path string, results validator.ValidationResults) bool {
	fmt.Printf("Validation Results: %s\n", path)
	fmt.Println("-------------------")

	valid := len(results.Errors) == 0
	if valid {
		fmt.Printf("%s Deck '%s' is valid (%d cards).\n", color.GreenString("✅"), path, results.Cards)
	} else {
		fmt.Printf("%s Deck '%s' has %d validation errors:\n", color.RedString("❌"), path, len(results.Errors))
		for i, err := range results.Errors {
			fmt.Printf("%d. %s\n", i+1, err)
		}
	}

	if len(results.Warnings) > 0 {
		fmt.Println(color.YellowString("\nWarnings:"))
		for i, warn := range results.Warnings {
			fmt.Printf("%d. %s\n", i+1, warn)
		}
	}
	fmt.Println()

	return valid
}
