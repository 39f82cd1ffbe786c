// Package batch runs the load, validate, map and write pipeline over one or
// many manifest files. Every file is isolated: a failure of any kind is
// recorded on that file's result and processing moves on to the next one.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alevsk/argocd-migrate/internal/logger"
	"github.com/alevsk/argocd-migrate/internal/manifest"
	"github.com/alevsk/argocd-migrate/internal/mapper"
	"github.com/alevsk/argocd-migrate/internal/scanner"
	"github.com/alevsk/argocd-migrate/internal/types"
	"github.com/alevsk/argocd-migrate/internal/validator"
)

// Options holds configuration for batch processing
type Options struct {
	// OutputDir is where <name>.json files are written
	OutputDir string
	// Tables are the cluster mappings and default labels applied to every file
	Tables mapper.Tables
	// Progress, when set, is called after each file with its result
	Progress func(path string, result types.ParseResult)
}

// Parse loads, validates and transforms a single manifest without writing it
func Parse(path string, tables mapper.Tables) (*types.MigrationOutput, error) {
	doc, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}

	app, err := validator.Validate(doc)
	if err != nil {
		if !validator.IsApplication(doc) {
			logger.Debug().Str("file", path).Msg("document is not an argoproj.io/v1alpha1 Application")
		}
		return nil, err
	}

	out, collisions := mapper.Transform(app, tables)
	for _, c := range collisions {
		logger.Warn().
			Str("file", path).
			Str("key", c.Target).
			Str("kept", c.Kept).
			Str("dropped", c.Dropped).
			Msg("annotation keys normalize to the same name")
	}
	return out, nil
}

// ParseAndWrite parses the manifest at path and writes its output document.
// It never returns an error: failures are reported on the result.
func ParseAndWrite(path string, opts *Options) (result types.ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Str("file", path).Interface("panic", r).Msg("recovered while processing manifest")
			result = failure(path, types.ValidationError{
				ErrorType: types.ErrorTypeUnexpected,
				Message:   fmt.Sprintf("Panic: %v", r),
			})
		}
	}()

	out, err := Parse(path, opts.Tables)
	if err != nil {
		return failure(path, classify(err)...)
	}

	outputPath, err := OutputPath(opts.OutputDir, out.Metadata.Name)
	if err != nil {
		return failure(path, classify(err)...)
	}
	if err := WriteJSON(out, outputPath); err != nil {
		return failure(path, classify(err)...)
	}

	return types.ParseResult{
		FilePath:        path,
		Status:          types.StatusSuccess,
		OutputPath:      types.StringPtr(outputPath),
		ApplicationName: types.StringPtr(out.Metadata.Name),
		Errors:          []types.ValidationError{},
	}
}

// Process handles files in order and returns the aggregate summary
func Process(files []string, opts *Options) *types.BatchSummary {
	summary := &types.BatchSummary{
		Results: make([]types.ParseResult, 0, len(files)),
	}

	for _, path := range files {
		logger.Debug().Str("file", path).Msg("processing manifest")

		result := ParseAndWrite(path, opts)
		summary.Results = append(summary.Results, result)

		if opts.Progress != nil {
			opts.Progress(path, result)
		}
	}

	summary.Total = len(files)
	for _, r := range summary.Results {
		switch r.Status {
		case types.StatusSuccess:
			summary.Successful++
		case types.StatusFailed:
			summary.Failed++
		default:
			summary.Skipped++
		}
	}
	return summary
}

// FindYAMLFiles returns every YAML file below dir, recursively, sorted
func FindYAMLFiles(dir string) ([]string, error) {
	result, err := scanner.Scan(context.Background(), &scanner.Options{InputDir: dir, Recursive: true})
	if err != nil {
		return nil, err
	}
	for _, e := range result.Errors {
		logger.Warn().Str("dir", dir).Msg(e)
	}
	return result.Files, nil
}

func failure(path string, errs ...types.ValidationError) types.ParseResult {
	return types.ParseResult{
		FilePath: path,
		Status:   types.StatusFailed,
		Errors:   errs,
	}
}

// classify turns a pipeline error into the entries recorded on a failed result
func classify(err error) []types.ValidationError {
	var docErr *manifest.DocumentError
	if errors.As(err, &docErr) {
		return []types.ValidationError{{
			ErrorType: types.ErrorTypeDocument,
			Message:   docErr.Message,
		}}
	}

	var verrs validator.Errors
	if errors.As(err, &verrs) {
		out := make([]types.ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, types.ValidationError{
				ErrorType: types.ErrorTypeValidation,
				Field:     types.StringPtr(fe.Field),
				Message:   fe.Message,
			})
		}
		return out
	}

	return []types.ValidationError{{
		ErrorType: types.ErrorTypeUnexpected,
		Message:   fmt.Sprintf("%s: %v", category(err), err),
	}}
}

// category names the class of an unexpected error
func category(err error) string {
	var synErr *manifest.SyntaxError
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &synErr):
		return "SyntaxError"
	case errors.Is(err, fs.ErrNotExist):
		return "NotFoundError"
	case errors.Is(err, fs.ErrPermission):
		return "PermissionError"
	case errors.Is(err, ErrInvalidName):
		return "InvalidNameError"
	case errors.As(err, &pathErr), errors.Is(err, os.ErrClosed):
		return "IOError"
	default:
		return "Error"
	}
}
