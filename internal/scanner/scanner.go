// Package scanner discovers YAML files below a directory.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// Options holds configuration for a scan
type Options struct {
	// InputDir is the directory to scan
	InputDir string
	// Recursive enables descending into subdirectories
	Recursive bool
}

// Result holds the outcome of a scan
type Result struct {
	// Root is the absolute path that was scanned
	Root string
	// Files are the absolute paths of discovered YAML files, sorted and unique
	Files []string
	// Errors are per-entry problems hit while walking, such as permission denied
	Errors []string
}

// Count returns the number of YAML files found
func (r *Result) Count() int {
	return len(r.Files)
}

// HasErrors reports whether any entry could not be read
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// JSONArray returns the discovered paths in the form used for JSON output
func (r *Result) JSONArray() []string {
	if r.Files == nil {
		return []string{}
	}
	return r.Files
}

// Error types for scan operations
var (
	ErrNotExist     = errors.New("directory does not exist")
	ErrNotDirectory = errors.New("path is not a directory")
)

// Scan walks opts.InputDir and collects YAML files. Hidden files and
// directories are skipped at any depth and symbolic links to directories are
// never followed. Errors on individual entries are recorded in the result;
// only an unusable root returns an error.
func Scan(ctx context.Context, opts *Options) (*Result, error) {
	root, err := filepath.Abs(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", opts.InputDir, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, opts.InputDir)
		}
		return nil, fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, opts.InputDir)
	}

	// WalkDir does not descend into a root that is itself a symlink
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	result := &Result{Root: root}
	err = filepath.WalkDir(root, buildWalkFunc(ctx, root, opts.Recursive, result))
	if err != nil {
		return nil, err
	}

	slices.Sort(result.Files)
	result.Files = slices.Compact(result.Files)
	return result, nil
}

// buildWalkFunc creates a WalkDirFunc that records YAML files and entry errors in result
func buildWalkFunc(ctx context.Context, root string, recursive bool, result *Result) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			result.Errors = append(result.Errors, describe(path, err))
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			result.Errors = append(result.Errors, describe(path, err))
			return nil
		}

		if d.IsDir() {
			if !recursive || IsHidden(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if IsHidden(rel) || !IsYAMLFile(path) {
			return nil
		}

		// Symlinks to files are listed by their own path; links to
		// directories are neither listed nor descended.
		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				result.Errors = append(result.Errors, describe(path, err))
				return nil
			}
			if target.IsDir() {
				return nil
			}
		}

		result.Files = append(result.Files, path)
		return nil
	}
}

func describe(path string, err error) string {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Sprintf("Permission denied: %s", path)
	}
	return fmt.Sprintf("Error accessing %s: %v", path, err)
}
