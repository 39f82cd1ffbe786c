package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alevsk/argocd-migrate/internal/types"
)

// ErrInvalidName is returned when an application name cannot be used as a file name
var ErrInvalidName = errors.New("application name is not a valid file name")

// OutputPath returns the file an application named name is written to
func OutputPath(outputDir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(outputDir, name+".json"), nil
}

// WriteJSON writes out to path as indented JSON, creating parent directories
// as needed. Non-ASCII characters are written literally.
func WriteJSON(out *types.MigrationOutput, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
