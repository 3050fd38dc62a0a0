package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"ragbot/internal/config"
	"ragbot/internal/index"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the vector index from the source documents",
	Long: `Scan the source directory, chunk and embed every eligible document and
write a fresh vector index. The new index is built in a staging directory and
swapped into place atomically, so a running server never sees a half-written
index.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

var (
	flagIngestSource   string
	flagIngestDoc      string
	flagIngestForce    bool
	flagIngestNoProg   bool
	flagIngestLockWait time.Duration
)

func init() {
	ingestCmd.Flags().StringVar(&flagIngestSource, "source", "", "Override the configured source directory")
	ingestCmd.Flags().StringVar(&flagIngestDoc, "doc", "", "Restrict ingestion to one document (path relative to the source directory)")
	ingestCmd.Flags().BoolVar(&flagIngestForce, "force", false, "Replace an existing index")
	ingestCmd.Flags().BoolVar(&flagIngestNoProg, "no-progress", false, "Disable the progress bar")
	ingestCmd.Flags().DurationVar(&flagIngestLockWait, "lock-wait", 5*time.Second, "How long to wait for a concurrent ingest to finish")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagIngestSource != "" {
		cfg.SourceDir, err = config.ExpandPath(flagIngestSource)
		if err != nil {
			return err
		}
	}

	_, unlock, err := acquireIngestLock(flagIngestLockWait)
	if err != nil {
		return err
	}
	defer unlock()

	if !flagIngestForce {
		if _, status, _ := index.Load(cfg.IndexDir); status != index.StatusAbsent {
			return fmt.Errorf("an index already exists at %s; re-run with --force to replace it", cfg.IndexDir)
		}
	}

	prov, err := newEmbeddingsProvider(cfg)
	if err != nil {
		return err
	}

	appDir, err := config.AppDir()
	if err != nil {
		return err
	}
	staging, err := os.MkdirTemp(appDir, "ingest-*")
	if err != nil {
		return fmt.Errorf("cannot create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	printInfo("", fmt.Sprintf("Ingesting from %s", cfg.SourceDir))
	start := time.Now()

	idx, err := index.Build(cmd.Context(), prov, index.BuildOptions{
		SourceDir:    cfg.SourceDir,
		OutDir:       staging,
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
		ChunkSize:    cfg.Chunking.ChunkSize,
		ChunkOverlap: cfg.Chunking.ChunkOverlap,
		Doc:          flagIngestDoc,
		Progress:     newIngestProgress(!flagIngestNoProg),
	})
	if err != nil {
		return err
	}

	if err := index.AtomicSwap(staging, cfg.IndexDir); err != nil {
		return fmt.Errorf("cannot install new index: %w", err)
	}

	printOK("", fmt.Sprintf("Index ready: %d chunks, dim %d, model %s  (%s)",
		idx.Len(), idx.Manifest.Dim, idx.Manifest.ModelID, time.Since(start).Round(time.Millisecond)))
	printOK("", fmt.Sprintf("Installed at %s", cfg.IndexDir))
	return nil
}

// acquireIngestLock obtains the per-user ingest lock so two ingest runs never
// race on the index directory.
func acquireIngestLock(timeout time.Duration) (*flock.Flock, func(), error) {
	appDir, err := config.AppDir()
	if err != nil {
		return nil, func() {}, err
	}
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return nil, func() {}, err
	}
	lockPath := filepath.Join(appDir, "ingest.lock")
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, func() {}, fmt.Errorf("cannot acquire ingest lock: %w", err)
		}
		if locked {
			return l, func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, func() {}, fmt.Errorf("another ingest is in progress (lock: %s)", lockPath)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
