package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"yt2audio/domain/audio"
)

// Checker implements audio.FileChecker and audio.FileRemover using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the file exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir returns true if path is an existing directory
func (c *Checker) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Remove deletes a file. A file that is already gone is not an error.
func (c *Checker) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// Ensure Checker implements the domain ports
var (
	_ audio.FileChecker = (*Checker)(nil)
	_ audio.FileRemover = (*Checker)(nil)
)
