// Package version provides the version subcommand shared by both binaries.
// The build variables are set at link time with
// -ldflags "-X github.com/alevsk/argocd-migrate/internal/version.version=...".
package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// Get returns the build information of the running binary
func Get() Info {
	return Info{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// NewCommand returns a version subcommand for the binary called name
func NewCommand(name string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Print the version number of %s", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := Get()

			out := cmd.OutOrStdout()
			switch output {
			case "json":
				jsonOutput, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("error formatting version to JSON: %w", err)
				}
				fmt.Fprintln(out, string(jsonOutput))
			case "yaml":
				yamlOutput, err := yaml.Marshal(info)
				if err != nil {
					return fmt.Errorf("error formatting version to YAML: %w", err)
				}
				fmt.Fprint(out, string(yamlOutput))
			case "plain":
				fmt.Fprintf(out, "%s (built: %s commit: %s)\n", info.Version, info.Date, info.Commit)
			default:
				return fmt.Errorf("unknown output format: %q (expected plain, json or yaml)", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "plain", "output format (plain, json, yaml)")
	return cmd
}
