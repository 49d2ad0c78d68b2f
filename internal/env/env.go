package env

import (
	"os"
	"path/filepath"
	"runtime"
)

// Version is overridden at build time via -ldflags
var Version = "0.1.0"

// (default: %USERPROFILE%/.stackforge on Windows, $HOME/.stackforge on Linux)
var StackforgeDir string = GetStackforgeDir()

/**
 * Get stackforge directory path
 * @returns {string} Returns stackforge directory path
 */
func GetStackforgeDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".stackforge")
}

// Containerized reports whether the process appears to run inside a container
func Containerized() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}

// Platform returns the runtime platform identifier
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
