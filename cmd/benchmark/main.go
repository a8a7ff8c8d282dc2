package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codex/config"
	"codex/internal/adapter/embedding"
	"codex/internal/log"
	"codex/internal/usecase"
)

func main() {
	dir := flag.String("dir", ".", "Path to the indexed project directory")
	query := flag.String("q", "", "Query to test")
	topK := flag.Int("k", 4, "Number of results")
	reflective := flag.Bool("reflective", false, "Boost self-reflection documents")
	flag.Parse()

	if *query == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -dir . -q \"query\"")
		fmt.Println("\nTests:")
		fmt.Println("  1. Index health (dimension, chunk count)")
		fmt.Println("  2. Retrieval quality (scores vs guardrail thresholds)")
		fmt.Println("  3. Retrieval latency")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	embedder, err := embedding.FromConfig(cfg.Embedding, log.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Embedder init failed: %v\n", err)
		os.Exit(1)
	}

	retriever := usecase.NewRetriever(embedder, cfg.Retrieve,
		config.IndexPath(*dir), config.MetaPath(*dir), log.NewNop())

	fmt.Println("RETRIEVAL BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Model: %s (%s)\n", cfg.Embedding.Model, cfg.Embedding.Provider)
	fmt.Printf("Query: \"%s\"\n", *query)
	fmt.Println(strings.Repeat("-", 70))

	start := time.Now()
	result := retriever.Retrieve(*query, *topK, *reflective)
	elapsed := time.Since(start)

	if result.Failed() {
		fmt.Fprintf(os.Stderr, "Retrieval failed (%s): %s\n", result.ErrCode, result.ErrMsg)
		os.Exit(1)
	}

	fmt.Printf("Top %d matches in %s:\n\n", result.Count, elapsed.Round(time.Microsecond))

	for i, r := range result.Results {
		preview := strings.ReplaceAll(r.Text, "\n", " ")
		if len(preview) > 150 {
			preview = preview[:150] + "..."
		}

		rating := "LOW"
		if r.Score > 0.7 {
			rating = "HIGH"
		} else if r.Score > 0.5 {
			rating = "GOOD"
		} else if r.Score > 0.3 {
			rating = "OK"
		}

		fmt.Printf("%d. [%s %.3f] %s # %s\n", i+1, rating, r.Score, filepath.Base(r.Source), r.Heading)
		fmt.Printf("   %s\n\n", preview)
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("QUALITY METRICS:\n")
	fmt.Printf("  Max similarity: %.3f (guardrail min %.2f)\n", result.MaxScore, cfg.Guardrail.MinMaxScore)
	fmt.Printf("  Avg similarity: %.3f (guardrail min %.2f)\n", result.AvgScore, cfg.Guardrail.MinAvgScore)

	if result.MaxScore >= cfg.Guardrail.MinMaxScore && result.AvgScore >= cfg.Guardrail.MinAvgScore {
		fmt.Println("  Status: GOOD - answers would use this context confidently")
	} else {
		fmt.Println("  Status: WEAK - answers would carry the thin-context hint")
	}
}
