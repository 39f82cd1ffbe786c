package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alevsk/argocd-migrate/internal/config"
	"github.com/alevsk/argocd-migrate/internal/formatter"
	"github.com/alevsk/argocd-migrate/internal/logger"
	"github.com/alevsk/argocd-migrate/internal/scanner"
	"github.com/alevsk/argocd-migrate/internal/version"
	"github.com/spf13/cobra"
)

// errReported signals a failure whose details were already printed
var errReported = errors.New("errors reported")

type scanFlags struct {
	inputDir  string
	recursive bool
	format    string
	verbosity string
	debug     bool
}

func newRootCmd() *cobra.Command {
	f := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "argocd-scan",
		Short: "Find ArgoCD Application manifests in a directory",
		Long: `argocd-scan discovers YAML files (.yaml and .yml) below a directory.
Hidden files and directories are skipped. Paths are printed to stdout and
errors to stderr.

Examples:
  # Scan a single directory
  argocd-scan --input-dir ./applications

  # Recursive scan with JSON output
  argocd-scan -i ./apps -r -f json

  # List every file found
  argocd-scan -i ./apps -v verbose`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			if f.debug {
				cfg.Debug = true
			}
			logger.Init(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, f)
		},
	}

	cmd.PersistentFlags().BoolVar(&f.debug, "debug", false, "enable verbose logging and additional debug information")

	flags := cmd.Flags()
	flags.StringVarP(&f.inputDir, "input-dir", "i", "", "directory to scan for YAML files (required)")
	flags.BoolVarP(&f.recursive, "recursive", "r", false, "scan subdirectories")
	flags.StringVarP(&f.format, "format", "f", string(formatter.TypeHuman), "output format (json, human)")
	flags.StringVarP(&f.verbosity, "verbosity", "v", string(formatter.VerbosityInfo), "output verbosity (quiet, info, verbose)")
	_ = cmd.MarkFlagRequired("input-dir")
	_ = cmd.MarkFlagDirname("input-dir")

	cmd.AddCommand(version.NewCommand("argocd-scan"))
	return cmd
}

func runScan(cmd *cobra.Command, f *scanFlags) error {
	format, err := formatter.ParseType(f.format)
	if err != nil {
		return err
	}
	verbosity, err := formatter.ParseVerbosity(f.verbosity)
	if err != nil {
		return err
	}

	logger.Debug().Str("dir", f.inputDir).Bool("recursive", f.recursive).Msg("scanning")

	result, err := scanner.Scan(cmd.Context(), &scanner.Options{
		InputDir:  f.inputDir,
		Recursive: f.recursive,
	})
	if err != nil {
		return err
	}

	out, err := formatter.FormatScan(result, format, verbosity)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	for _, e := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", e)
	}
	if result.HasErrors() {
		return errReported
	}
	return nil
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
