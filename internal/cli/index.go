package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"codex/config"
	"codex/internal/adapter/chunker"
	"codex/internal/adapter/corpus"
	"codex/internal/adapter/embedding"
	"codex/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build the vector index from the markdown corpus",
	Long: `Chunk every markdown document in the corpus directory, embed the
chunks, and persist the index under .codex/cache. Rebuilds replace the
previous index wholesale.

Examples:
  codex index                  # Index the configured corpus directory
  codex index ./docs           # Index a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := corpusDir()
	if len(args) > 0 {
		path = args[0]
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("corpus directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("corpus path is not a directory: %s", path)
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

	fmt.Printf("Indexing %s...\n", path)

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	result, err := builder.Build(path, progress)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("\nIndexing complete:\n")
	fmt.Printf("  Documents: %d\n", result.Documents)
	fmt.Printf("  Chunks:    %d\n", result.Chunks)
	fmt.Printf("  Dimension: %d\n", result.Dimension)
	fmt.Printf("  Model:     %s\n", result.Model)
	fmt.Printf("\nIndex stored at: %s\n", config.IndexPath(rootDir))
	return nil
}
