package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alevsk/argocd-migrate/internal/batch"
	"github.com/alevsk/argocd-migrate/internal/config"
	"github.com/alevsk/argocd-migrate/internal/formatter"
	"github.com/alevsk/argocd-migrate/internal/logger"
	"github.com/alevsk/argocd-migrate/internal/mapper"
	"github.com/alevsk/argocd-migrate/internal/types"
	"github.com/alevsk/argocd-migrate/internal/version"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errReported signals a failure whose details were already printed
var errReported = errors.New("errors reported")

type parseFlags struct {
	file       string
	directory  string
	outputDir  string
	configPath string
	quiet      bool
	json       bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	f := &parseFlags{}
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:   "argocd-parse",
		Short: "Parse ArgoCD Application manifests into migration JSON",
		Long: `argocd-parse validates ArgoCD Application (argoproj.io/v1alpha1) manifests
and writes one normalized JSON document per application for migration planning.

Examples:
  # Parse a single file
  argocd-parse --file app.yaml --output-dir ./output

  # Parse every manifest below a directory
  argocd-parse --directory ./manifests --output-dir ./output

  # Apply cluster mappings and default labels
  argocd-parse --file app.yaml --config config.json

  # Machine readable summary for automation
  argocd-parse --directory ./manifests --json`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(f.configPath)
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			*cfg = *loaded

			// flags override config due to highest precedence
			if f.debug {
				cfg.Debug = true
			}
			if cmd.Flags().Changed("output-dir") {
				cfg.OutputDir = f.outputDir
			}

			logger.Init(cfg)

			if cfg.Path != "" {
				logger.Debug().Msgf("Using config file: %s", cfg.Path)
			} else {
				logger.Debug().Msg("Using default configuration")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				text.DisableColors()
			}

			opts := &batch.Options{
				OutputDir: cfg.OutputDir,
				Tables: mapper.Tables{
					ClusterMappings: cfg.ClusterMappings,
					DefaultLabels:   cfg.DefaultLabels,
				},
			}
			if f.file != "" {
				return parseFile(cmd, f, opts)
			}
			return parseDirectory(cmd, f, opts)
		},
	}

	persistent := cmd.PersistentFlags()
	persistent.StringVarP(&f.configPath, "config", "c", "", "path to a JSON or YAML config file with clusterMappings and defaultLabels")
	persistent.BoolVar(&f.debug, "debug", false, "enable verbose logging and additional debug information")

	flags := cmd.Flags()
	flags.StringVarP(&f.file, "file", "f", "", "ArgoCD Application manifest to parse")
	flags.StringVarP(&f.directory, "directory", "d", "", "directory of manifests to parse recursively")
	flags.StringVarP(&f.outputDir, "output-dir", "o", config.DefaultOutputDir, "directory for JSON output, created if missing")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "suppress progress output")
	flags.BoolVar(&f.json, "json", false, "print a JSON summary for automation (directory mode)")
	cmd.MarkFlagsMutuallyExclusive("file", "directory")
	cmd.MarkFlagsOneRequired("file", "directory")
	_ = cmd.MarkFlagFilename("file", "yaml", "yml")
	_ = cmd.MarkFlagDirname("directory")
	_ = cmd.MarkFlagDirname("output-dir")

	cmd.AddCommand(version.NewCommand("argocd-parse"))
	return cmd
}

func parseFile(cmd *cobra.Command, f *parseFlags, opts *batch.Options) error {
	out := cmd.OutOrStdout()

	path, err := filepath.Abs(f.file)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", f.file, err)
	}

	if !f.quiet {
		fmt.Fprintf(out, "%s %s\n", text.FgCyan.Sprint("Parsing:"), path)
	}

	result := batch.ParseAndWrite(path, opts)
	if result.Succeeded() {
		if !f.quiet {
			fmt.Fprintf(out, "%s Successfully parsed: %s\n", text.FgGreen.Sprint("✓"), *result.ApplicationName)
			fmt.Fprintf(out, "%s %s\n", text.Faint.Sprint("Output:"), *result.OutputPath)
		}
		return nil
	}

	fmt.Fprintf(out, "%s Failed to parse: %s\n", text.FgRed.Sprint("✗"), path)
	if len(result.Errors) > 0 {
		fmt.Fprint(out, "\n"+formatter.FormatErrors(result))
	}
	return errReported
}

func parseDirectory(cmd *cobra.Command, f *parseFlags, opts *batch.Options) error {
	out := cmd.OutOrStdout()

	dir, err := filepath.Abs(f.directory)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", f.directory, err)
	}

	files, err := batch.FindYAMLFiles(dir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		logger.Warn().Str("dir", dir).Msg("no YAML files found")
		if f.json {
			return printJSON(out, batch.Process(nil, opts))
		}
		if !f.quiet {
			fmt.Fprintln(out, text.FgYellow.Sprintf("No YAML files found in %s", dir))
		}
		return nil
	}

	interactive := !f.quiet && !f.json
	var display *progressDisplay
	if interactive {
		fmt.Fprintln(out, text.FgCyan.Sprintf("Found %d YAML file(s) in %s", len(files), dir))
		fmt.Fprintln(out)

		display = newProgressDisplay(out, len(files), isTerminal(out) && len(files) > 1)
		opts.Progress = display.Report
	}

	summary := batch.Process(files, opts)
	if display != nil {
		display.Wait()
	}

	switch {
	case f.json:
		if err := printJSON(out, summary); err != nil {
			return err
		}
	case !f.quiet:
		fmt.Fprint(out, formatter.FormatBatchSummary(summary, true))
	}

	if summary.Failed > 0 {
		return errReported
	}
	return nil
}

func printJSON(out io.Writer, summary *types.BatchSummary) error {
	report, err := formatter.FormatBatchJSON(summary)
	if err != nil {
		return err
	}
	fmt.Fprint(out, report)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// execute runs cmd and returns the process exit code
func execute(cmd *cobra.Command) int {
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
