package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codex/config"
	"codex/internal/log"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	logger  log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "codex",
	Short: "Personal knowledge assistant - answer questions about one person from their documents",
	Long: `Codex indexes a personal markdown corpus and answers questions about
its subject in their own voice, grounded in the retrieved documents.

Example usage:
  codex index                      # Build the index from the corpus directory
  codex query -q "leadership"      # Inspect what retrieval finds
  codex ask -q "What drives you?"  # Generate a grounded first-person answer`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = log.New(cfg.Logging.Level)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./codex.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

// corpusDir resolves the configured corpus directory against the root.
func corpusDir() string {
	dir := cfg.Corpus.Dir
	if dir == "" {
		dir = "data"
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(rootDir, dir)
}

// profilePath resolves the configured persona profile path against the root.
func profilePath() string {
	path := cfg.Persona.ProfilePath
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}
