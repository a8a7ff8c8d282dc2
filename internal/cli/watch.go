package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"codex/config"
	"codex/internal/adapter/chunker"
	"codex/internal/adapter/corpus"
	"codex/internal/adapter/embedding"
	"codex/internal/usecase"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the index automatically when the corpus changes",
	Long: `Watch the corpus directory and rebuild the index after markdown
files change. Rapid bursts of changes are coalesced into one rebuild.

Example:
  codex watch --debounce 3s`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "quiet period before rebuilding")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := corpusDir()
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("corpus directory does not exist: %w", err)
	}

	if err := config.EnsureCacheDir(rootDir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	embedder, err := embedding.FromConfig(cfg.Embedding, logger)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	builder := usecase.NewBuilder(
		corpus.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes),
		chunker.NewMarkdownChunker(cfg.Chunk.TargetWords, cfg.Chunk.OverlapWords),
		embedder,
		cfg.Embedding.BatchSize,
		config.IndexPath(rootDir), config.MetaPath(rootDir),
		logger,
	)

	rebuild := func() {
		result, err := builder.Build(path, nil)
		if err != nil {
			logger.Error("rebuild failed", "err", err)
			return
		}
		logger.Info("index rebuilt", "documents", result.Documents, "chunks", result.Chunks)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the corpus tree, including directories added later.
	addDirs := func(root string) error {
		return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return watcher.Add(p)
			}
			return nil
		})
	}
	if err := addDirs(path); err != nil {
		return fmt.Errorf("failed to watch corpus directory: %w", err)
	}

	fmt.Printf("Watching %s (debounce %s). Press Ctrl+C to stop.\n", path, watchDebounce)
	rebuild()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addDirs(event.Name)
				}
			}
			if !strings.HasSuffix(strings.ToLower(event.Name), ".md") {
				continue
			}
			logger.Debug("corpus change", "op", event.Op.String(), "file", event.Name)
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-timer.C:
			rebuild()
		case <-sig:
			fmt.Println("\nStopping.")
			return nil
		}
	}
}
