package cmd

import (
	"github.com/spf13/cobra"

	"ragbot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question-answering API over HTTP",
	Long: `Start the HTTP server with POST /ask and GET /health.

The index is loaded lazily on the first question; when index_fetch_url is
configured, missing artifacts are fetched from there before the first load.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var flagServeAddr string

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (overrides listen_addr from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	answerer, err := newAnswerer(cfg)
	if err != nil {
		return err
	}

	addr := cfg.ListenAddr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}
	return server.New(answerer).ListenAndServe(addr)
}
