// Package config loads and validates paysnap settings through viper.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// memoryDSN is SQLite's in-memory database name. It is never expanded.
const memoryDSN = ":memory:"

// ExpandPath resolves a leading ~ to the home directory and then expands
// $VAR references.
func ExpandPath(path string) string {
	if path == "" || path == memoryDSN {
		return path
	}

	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath places the ledger under $XDG_DATA_HOME when it is set
// and ~/.local/share otherwise.
func DefaultDatabasePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "paysnap", "ledger.db")
	}
	return "~/.local/share/paysnap/ledger.db"
}
