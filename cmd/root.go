package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "hearthstone-cards",
	Short: "Hearthstone legendary card browser",
	Long: `Web front-end for the Hearthstone card API.

For a class name it looks up the legendary cards costing 7 to 10 mana,
resolves their type, rarity, set and class names from the metadata
endpoints, and renders the result as an HTML table. Tokens, card queries
and metadata tables are cached with a fixed TTL.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
