package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"codex/config"
	"codex/internal/adapter/embedding"
	"codex/internal/domain"
	"codex/internal/usecase"
)

var (
	queryText       string
	queryTopK       int
	queryJSON       bool
	queryReflective bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the index without generating an answer",
	Long: `Run retrieval on its own and show the ranked chunks with their
scores. Useful for inspecting what context an answer would be built on.

Examples:
  codex query -q "leadership style"
  codex query -q "career goals" --top-k 8 --json
  codex query -q "what did you learn" --reflective`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.Flags().BoolVar(&queryReflective, "reflective", false, "boost self-reflection documents")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	embedder, err := embedding.FromConfig(cfg.Embedding, logger)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	retriever := usecase.NewRetriever(embedder, cfg.Retrieve,
		config.IndexPath(rootDir), config.MetaPath(rootDir), logger)

	result := retriever.Retrieve(queryText, queryTopK, queryReflective)

	if queryJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if result.Failed() {
		if result.ErrCode == domain.ErrCodeMissingIndex {
			return domain.ErrMissingIndex
		}
		return fmt.Errorf("retrieval failed (%s): %s", result.ErrCode, result.ErrMsg)
	}

	if result.Count == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results for: %s\n", result.Count, queryText)
	fmt.Printf("Confidence: max=%.3f avg=%.3f\n\n", result.MaxScore, result.AvgScore)
	for i, r := range result.Results {
		fmt.Printf("--- [%d] %s # %s (score: %.3f) ---\n", i+1, r.Source, r.Heading, r.Score)
		text := r.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}
	return nil
}
