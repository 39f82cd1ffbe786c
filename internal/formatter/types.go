package formatter

import "fmt"

// Type represents the type of formatter
type Type string

const (
	// TypeJSON formats data as JSON
	TypeJSON Type = "json"
	// TypeHuman formats data as text and tables for a terminal
	TypeHuman Type = "human"
)

// Verbosity controls how much human readable output is produced
type Verbosity string

const (
	// VerbosityQuiet prints nothing but errors
	VerbosityQuiet Verbosity = "quiet"
	// VerbosityInfo prints a one line summary
	VerbosityInfo Verbosity = "info"
	// VerbosityVerbose prints every discovered file
	VerbosityVerbose Verbosity = "verbose"
)

// ParseType converts a string to a Type
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeJSON, TypeHuman:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown output format: %q (expected json or human)", s)
	}
}

// ParseVerbosity converts a string to a Verbosity
func ParseVerbosity(s string) (Verbosity, error) {
	switch Verbosity(s) {
	case VerbosityQuiet, VerbosityInfo, VerbosityVerbose:
		return Verbosity(s), nil
	default:
		return "", fmt.Errorf("unknown verbosity: %q (expected quiet, info or verbose)", s)
	}
}
