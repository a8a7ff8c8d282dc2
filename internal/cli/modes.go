package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codex/internal/adapter/prompts"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the available response modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, mode := range prompts.Modes() {
			fmt.Println(mode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}
