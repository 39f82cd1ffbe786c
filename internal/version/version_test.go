package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand("argocd-test")
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), err
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand("argocd-scan")
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "Print the version number of argocd-scan", cmd.Short)
}

func TestVersionOutput(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		out, err := run(t)
		require.NoError(t, err)
		assert.Equal(t, "dev (built: unknown commit: none)\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "-o", "json")
		require.NoError(t, err)
		var info Info
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, Get(), info)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, "--output", "yaml")
		require.NoError(t, err)
		var info Info
		require.NoError(t, yaml.Unmarshal([]byte(out), &info))
		assert.Equal(t, Get(), info)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "-o", "xml")
		assert.ErrorContains(t, err, "unknown output format")
	})
}
