package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ragbot/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "ragbot",
	Short:        "ragbot — retrieval-grounded Q&A over your own documents",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `ragbot ingests a folder of documents into a local vector index and
answers questions about them, over HTTP or straight from the terminal.
Configuration lives at ~/.ragbot/config.yaml; secrets go in ~/.ragbot/.env.`,
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig wraps config.Load with a first-run hint.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w\nRun 'ragbot init' first.", err)
	}
	return cfg, nil
}
