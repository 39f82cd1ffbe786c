package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

// testHelper provides common test utilities for scanner tests
type testHelper struct {
	t *testing.T
}

// newTestHelper creates a new test helper
func newTestHelper(t *testing.T) *testHelper {
	return &testHelper{t: t}
}

// createTree creates a temporary directory with the given files and returns
// its resolved absolute path
func (h *testHelper) createTree(files map[string]string) string {
	tmpDir, err := filepath.EvalSymlinks(h.t.TempDir())
	if err != nil {
		h.t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	for name, content := range files {
		path := filepath.Join(tmpDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			h.t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			h.t.Fatalf("Failed to write file %s: %v", name, err)
		}
	}

	return tmpDir
}

// abs joins a slash separated relative path onto root
func (h *testHelper) abs(root string, rel ...string) []string {
	out := make([]string, 0, len(rel))
	for _, r := range rel {
		out = append(out, filepath.Join(root, filepath.FromSlash(r)))
	}
	return out
}
