package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlayFile is the on-disk shape of a registry overlay.
type overlayFile struct {
	Components []ComponentSpec `yaml:"components"`
}

/**
 * Load a component registry from a YAML overlay file
 * @param {string} path - Overlay file path
 * @returns {(*Registry, error)} Returns registry built from the file's
 * component list, validated like the builtin set
 * @description
 * - The overlay replaces the builtin registry wholesale; it is externally
 *   supplied static configuration, read once at startup
 * @throws
 * - File reading errors
 * - YAML unmarshaling errors
 * - Dependency graph validation errors
 */
func LoadOverlay(path string) (*Registry, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry overlay: %w", err)
	}

	var file overlayFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("failed to parse registry overlay: %w", err)
	}
	if len(file.Components) == 0 {
		return nil, fmt.Errorf("registry overlay '%s' defines no components", path)
	}

	return NewFromSpecs(file.Components)
}

// Load returns the overlay registry when a path is configured, the builtin
// registry otherwise.
func Load(overlayPath string) (*Registry, error) {
	if overlayPath == "" {
		return New(), nil
	}
	return LoadOverlay(overlayPath)
}
