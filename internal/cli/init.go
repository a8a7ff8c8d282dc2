package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codex/config"
)

const starterProfile = `name: Your Name
title: Your Title
summary: One paragraph about who you are professionally.
voice:
  tone: warm, direct
  sentence_length: medium
  forbid: []
  signature_phrases: []
values: []
strengths: []
growth_areas: []
culture: []
debugging_style: ""
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter config and persona profile",
	Long: `Write codex.yaml with the default configuration and a starter
persona profile into the corpus directory. Existing files are left
untouched.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfgPath := filepath.Join(rootDir, "codex.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists: %s\n", cfgPath)
	} else {
		if err := config.DefaultConfig().Save(cfgPath); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("Wrote %s\n", cfgPath)
	}

	profile := profilePath()
	if profile == "" {
		return nil
	}
	if _, err := os.Stat(profile); err == nil {
		fmt.Printf("Profile already exists: %s\n", profile)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(profile), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	if err := os.WriteFile(profile, []byte(starterProfile), 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	fmt.Printf("Wrote %s\n", profile)

	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Put markdown documents under %s\n", corpusDir())
	fmt.Printf("  2. Run 'codex index'\n")
	fmt.Printf("  3. Run 'codex ask -q \"...\"'\n")
	return nil
}
