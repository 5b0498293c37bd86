package main

import (
	"context"
	"os"

	"go-empedge/internal/dashboard"
	"go-empedge/internal/dashboard/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultAPIURL = "http://localhost:3000"

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiURL  string
		logFile string
	)

	cmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "Browse and edit employees from the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(logFile)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			ctrl := dashboard.NewController(dashboard.NewClient(apiURL), logger)
			_, err = tea.NewProgram(tui.New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	env := os.Getenv("EMPEDGE_API_URL")
	if env == "" {
		env = defaultAPIURL
	}
	cmd.Flags().StringVar(&apiURL, "api", env, "employees API base URL (env EMPEDGE_API_URL)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of discarding them")

	return cmd
}

// newLogger never writes to the terminal the program draws on.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
