package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"codex/config"
	"codex/internal/adapter/embedding"
	"codex/internal/adapter/llm"
	"codex/internal/adapter/persona"
	"codex/internal/adapter/prompts"
	"codex/internal/adapter/qlog"
	"codex/internal/usecase"
)

var (
	askQuestion    string
	askMode        string
	askReflective  bool
	askTemperature float32
	askShowSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a question and get a grounded first-person answer",
	Long: `Retrieve context for the question, compose the persona prompt, and
generate an answer in the subject's voice.

Examples:
  codex ask -q "What's your leadership style?"
  codex ask -q "Tell me a war story" --mode Storytelling
  codex ask -q "What did last year teach you?" --reflective`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer (required)")
	askCmd.Flags().StringVarP(&askMode, "mode", "m", "Interview", "response mode")
	askCmd.Flags().BoolVar(&askReflective, "reflective", false, "boost self-reflection documents")
	askCmd.Flags().Float32VarP(&askTemperature, "temperature", "t", 0, "sampling temperature (default from config)")
	askCmd.Flags().BoolVar(&askShowSources, "sources", true, "show retrieved sources with the answer")
	askCmd.MarkFlagRequired("question")
}

func runAsk(cmd *cobra.Command, args []string) error {
	asker, err := newAsker()
	if err != nil {
		return err
	}

	temperature := cfg.Generation.Temperature
	if cmd.Flags().Changed("temperature") {
		temperature = askTemperature
	}

	answer, err := asker.Ask(askQuestion, askMode, askReflective, temperature)
	if err != nil {
		return err
	}

	if askShowSources && answer.Retrieval.Count > 0 {
		fmt.Println("Retrieved context:")
		for _, r := range answer.Retrieval.Results {
			fmt.Printf("  %.3f  %s # %s\n", r.Score, filepath.Base(r.Source), r.Heading)
		}
		fmt.Println()
	}

	fmt.Println(answer.Text)

	if askShowSources && answer.Sources != "" {
		fmt.Printf("\nSources: %s\n", answer.Sources)
	}
	if len(answer.Related) > 0 {
		fmt.Println("\nYou could also ask:")
		for _, q := range answer.Related {
			fmt.Printf("  - %s\n", q)
		}
	}
	return nil
}

// newAsker wires the full ask pipeline from configuration.
func newAsker() (*usecase.Asker, error) {
	embedder, err := embedding.FromConfig(cfg.Embedding, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	retriever := usecase.NewRetriever(embedder, cfg.Retrieve,
		config.IndexPath(rootDir), config.MetaPath(rootDir), logger)

	profile, err := persona.Load(profilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to load persona profile: %w", err)
	}

	generator, err := llm.NewOpenAIGenerator(cfg.Generation.APIKeyEnv, cfg.Generation.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	qlogCfg := cfg.QLog
	if qlogCfg.Dir != "" && !filepath.IsAbs(qlogCfg.Dir) {
		qlogCfg.Dir = filepath.Join(rootDir, qlogCfg.Dir)
	}

	promptsDir := cfg.Prompts.Dir
	if promptsDir != "" && !filepath.IsAbs(promptsDir) {
		promptsDir = filepath.Join(rootDir, promptsDir)
	}

	return usecase.NewAsker(
		retriever,
		usecase.NewComposer(cfg.Guardrail),
		prompts.NewStore(promptsDir),
		profile,
		generator,
		qlog.NewRecorder(qlogCfg, logger),
		cfg.Generation,
		logger,
	), nil
}
