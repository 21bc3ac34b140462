package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns ~/.docsearch-mcp/logs, falling back to a temp
// directory when the home directory can't be resolved.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".docsearch-mcp", "logs")
	}
	return filepath.Join(home, ".docsearch-mcp", "logs")
}

// DefaultLogPath returns the default server log file path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "server.log")
}

// EnsureLogDir creates the log directory if it doesn't already exist.
func EnsureLogDir() error {
	return os.MkdirAll(DefaultLogDir(), 0o755)
}
