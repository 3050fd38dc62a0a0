package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ragbot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap ~/.ragbot with a default config and .env template",
	Long: `Initialize the ragbot home directory at ~/.ragbot/.

Writes config.yaml with sensible defaults (if missing), a .env template for
API keys, and creates the source and index directories. Existing files are
left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	appDir, err := config.AppDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", appDir, err)
	}
	printOK("", fmt.Sprintf("ragbot directory ready: %s", appDir))

	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	envPath, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf(".env template ready: %s", envPath))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	for _, dir := range []string{cfg.SourceDir, cfg.IndexDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	printOK("", fmt.Sprintf("Source directory: %s", cfg.SourceDir))
	printOK("", fmt.Sprintf("Index directory:  %s", cfg.IndexDir))

	fmt.Println("\n✓  ragbot init complete. Drop documents into the source directory and run 'ragbot ingest'.")
	return nil
}
