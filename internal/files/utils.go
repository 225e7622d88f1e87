package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath replaces a leading "~" with the home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ValidatePath fails unless path is an existing regular file.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return fmt.Errorf("path stat error: %w", err)
	case info.IsDir():
		return fmt.Errorf("path %q is a directory, not a file", path)
	case !info.Mode().IsRegular():
		return fmt.Errorf("path %q is not a regular file", path)
	}
	return nil
}

// ResolveInputFile expands path and checks that it is a readable regular file.
func ResolveInputFile(path string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %q: %w", path, err)
	}
	if err := ValidatePath(expanded); err != nil {
		return "", err
	}
	return expanded, nil
}
