package scanner

import (
	"path/filepath"
	"strings"
)

// IsYAMLFile reports whether path has a .yaml or .yml extension, ignoring case
func IsYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// IsHidden reports whether any element of rel starts with a dot.
// rel is expected to be relative to the scan root.
func IsHidden(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == "." || part == ".." || part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
