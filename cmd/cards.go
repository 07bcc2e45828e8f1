package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mselser95/hearthstone-cards/internal/app"
	"github.com/mselser95/hearthstone-cards/internal/cardtable"
	"github.com/mselser95/hearthstone-cards/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var cardsCmd = &cobra.Command{
	Use:   "cards <class>",
	Short: "Print the legendary card table for a class",
	Long:  `Fetches the same joined card table the web server renders and prints it as text, for debugging.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCards,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(cardsCmd)
	cardsCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Overall request timeout")
}

func runCards(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	defer application.Close()

	rows, err := application.Lookup(ctx, args[0])
	if err != nil {
		return fmt.Errorf("lookup %s: %w", args[0], err)
	}

	return printCards(cmd.OutOrStdout(), args[0], rows)
}

func printCards(w io.Writer, class string, rows []cardtable.Row) error {
	if len(rows) == 0 {
		fmt.Fprintf(w, "No legendary cards found for %s.\n", class)
		return nil
	}

	err := cardtable.RenderText(w, rows)
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d cards\n", len(rows))
	return nil
}
