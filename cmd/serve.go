package cmd

import (
	"fmt"

	"github.com/mselser95/hearthstone-cards/internal/app"
	"github.com/mselser95/hearthstone-cards/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the card web server",
	Long: `Starts the HTTP server, which will:
1. Answer GET / with a greeting
2. Render GET /{class} as an HTML table of legendary cards
3. Serve GET /api/cards/{class} as JSON
4. Expose /health, /ready and /metrics

Use --port to override HTTP_PORT.`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Listen port (overrides HTTP_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	port, _ := cmd.Flags().GetString("port")
	if port != "" {
		cfg.HTTPPort = port
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

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
