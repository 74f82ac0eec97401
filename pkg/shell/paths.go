package shell

import (
	"fmt"
	"os"
	"path/filepath"
)

// Returns the default path of the history database,
// $XDG_STATE_HOME/yle/db.bolt or ~/.local/state/yle/db.bolt. The directory is
// created if it doesn't exist.
func dbPath() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine state directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	dir = filepath.Join(dir, "yle")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "db.bolt"), nil
}
