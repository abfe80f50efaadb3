package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultPromptDir is the subdirectory within the user's home directory.
const defaultPromptDir = ".config/pitstop/prompts"

// LoadPromptContent resolves the configured prompt file and reads it.
// An empty path yields fallback. A relative path is tried against the working
// directory first, then against ~/.config/pitstop/prompts/.
func LoadPromptContent(configuredPath, fallback string) (string, error) {
	if configuredPath == "" {
		return fallback, nil
	}

	candidates := []string{configuredPath}
	if !filepath.IsAbs(configuredPath) {
		if homeDir, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(homeDir, defaultPromptDir, configuredPath))
		}
	}

	for _, path := range candidates {
		promptBytes, err := os.ReadFile(path)
		if err == nil {
			return string(promptBytes), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read prompt file '%s': %w", path, err)
		}
	}
	return "", fmt.Errorf("prompt file '%s' not found (looked in %v)", configuredPath, candidates)
}
