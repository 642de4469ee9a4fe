// Package filex resolves where the client keeps its local files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir returns <user config dir>/<appName>, creating it with owner-only
// permissions. When the platform has no user config directory the current
// working directory is used as the base.
func DataDir(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		if base, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
	}
	return EnsureDir(filepath.Join(base, appName))
}

// EnsureDir creates dir (and parents) if needed and returns it.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// Resolve returns p unchanged when it is absolute, and p joined to dir
// otherwise.
func Resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
