// Package validation checks user-supplied command inputs before the
// pipeline touches them.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsValidPath checks if a given path exists and is accessible.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidInputFormat checks if the given message-export format is supported.
func IsValidInputFormat(format string) error {
	switch strings.ToLower(format) {
	case "csv", "xml":
		return nil
	default:
		return fmt.Errorf("unsupported input format: %s. Supported formats are 'csv', 'xml'", format)
	}
}

// HasValidExtension checks that a file carries one of the given extensions.
func HasValidExtension(path string, extensions ...string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range extensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("unsupported file extension %q for %s", ext, path)
}
