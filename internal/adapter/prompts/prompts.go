// Package prompts serves the base system instructions and the named
// mode directives. Defaults ship embedded in the binary; a directory
// override lets deployments edit prompt text without rebuilding.
package prompts

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"codex/internal/domain"
)

//go:embed prompts/*.txt
var embedded embed.FS

// modeFiles maps mode names to their prompt files, mirroring the mode
// picker exposed by the UI collaborator.
var modeFiles = map[string]string{
	"Interview":    "mode_interview.txt",
	"Storytelling": "mode_storytelling.txt",
	"Fast Facts":   "mode_fastfacts.txt",
	"Humble Brag":  "mode_humblebrag.txt",
	"Reflective":   "mode_reflective.txt",
	"Humorous":     "mode_humorous.txt",
}

// Store resolves prompt texts, preferring overrideDir when set.
type Store struct {
	overrideDir string
}

func NewStore(overrideDir string) *Store {
	return &Store{overrideDir: overrideDir}
}

// System returns the base system instructions.
func (s *Store) System() (string, error) {
	return s.read("system_base.txt")
}

// Mode returns the directive text for a named response mode. An
// unknown mode name is a configuration error.
func (s *Store) Mode(name string) (string, error) {
	file, ok := modeFiles[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown mode %q", domain.ErrConfig, name)
	}
	return s.read(file)
}

// Modes lists the available mode names.
func Modes() []string {
	return []string{"Interview", "Storytelling", "Fast Facts", "Humble Brag", "Reflective", "Humorous"}
}

func (s *Store) read(file string) (string, error) {
	if s.overrideDir != "" {
		data, err := os.ReadFile(filepath.Join(s.overrideDir, file))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		// Fall through to the embedded default.
	}

	data, err := embedded.ReadFile("prompts/" + file)
	if err != nil {
		return "", fmt.Errorf("embedded prompt missing: %w", err)
	}
	return string(data), nil
}
