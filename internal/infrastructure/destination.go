package infrastructure

import (
	"fmt"
	"os"
)

// EnsureOutputDir creates dir and any missing parents. An existing directory
// is not an error.
func EnsureOutputDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory not configured")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
