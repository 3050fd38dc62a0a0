package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ragbot/internal/config"
	"ragbot/internal/index"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration, credentials and index health",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printSection("Configuration")
	printInfo("", fmt.Sprintf("listen addr:  %s", cfg.ListenAddr))
	printInfo("", fmt.Sprintf("source dir:   %s", cfg.SourceDir))
	printInfo("", fmt.Sprintf("index dir:    %s", cfg.IndexDir))
	if cfg.IndexFetchURL != "" {
		printInfo("", fmt.Sprintf("index fetch:  %s", cfg.IndexFetchURL))
	}
	printInfo("", fmt.Sprintf("embedding:    %s", cfg.Embedding.Model))
	printInfo("", fmt.Sprintf("llm:          %s (temperature %g, max tokens %d)",
		cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.MaxTokens))
	printInfo("", fmt.Sprintf("chunking:     %d words, %d overlap", cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap))
	printInfo("", fmt.Sprintf("retrieval:    top %d", cfg.Retrieval.TopK))

	printSection("Credentials")
	for _, key := range []string{"RAGBOT_EMBEDDINGS_API_KEY", "RAGBOT_LLM_API_KEY"} {
		v, err := config.GetConfigValue(key)
		if err != nil {
			return err
		}
		if v == "" {
			printMiss("", fmt.Sprintf("%s not set", key))
		} else {
			printOK("", fmt.Sprintf("%s set", key))
		}
	}

	printSection("Index")
	idx, status, err := index.Load(cfg.IndexDir)
	switch status {
	case index.StatusReady:
		m := idx.Manifest
		printOK("", fmt.Sprintf("ready: %d chunks, dim %d", idx.Len(), m.Dim))
		printInfo("", fmt.Sprintf("model:    %s", m.ModelID))
		printInfo("", fmt.Sprintf("created:  %s", m.CreatedAt))
		printInfo("", fmt.Sprintf("chunking: %d words, %d overlap", m.ChunkSize, m.ChunkOverlap))
	case index.StatusAbsent:
		printMiss("", fmt.Sprintf("no index at %s  (run: ragbot ingest)", cfg.IndexDir))
	case index.StatusCorrupt:
		printErr("", fmt.Sprintf("index is corrupt: %v", err))
		printErr("", "rebuild it with: ragbot ingest --force")
	}
	return nil
}
