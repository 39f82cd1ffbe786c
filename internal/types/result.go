package types

// Status represents the outcome of processing a single manifest file
type Status string

const (
	// StatusSuccess means the manifest was parsed and its output written
	StatusSuccess Status = "success"
	// StatusFailed means the manifest could not be parsed or written
	StatusFailed Status = "failed"
	// StatusSkipped is reserved for files that were intentionally not processed
	StatusSkipped Status = "skipped"
)

// Error type codes recorded on a ValidationError
const (
	ErrorTypeDocument   = "YAML_DOCUMENT_ERROR"
	ErrorTypeValidation = "VALIDATION_ERROR"
	ErrorTypeUnexpected = "UNEXPECTED_ERROR"
)

// ValidationError describes a single problem found while processing a manifest
type ValidationError struct {
	// ErrorType is one of the ErrorType* codes
	ErrorType string `json:"type"`
	// Field is the dotted path of the offending field, nil for document level errors
	Field *string `json:"field"`
	// Message is a human readable description of the problem
	Message string `json:"message"`
}

// ParseResult is the outcome of processing one input file
type ParseResult struct {
	FilePath        string            `json:"file"`
	Status          Status            `json:"status"`
	OutputPath      *string           `json:"output"`
	ApplicationName *string           `json:"application_name"`
	Errors          []ValidationError `json:"errors"`
}

// Succeeded reports whether the file was parsed and written
func (r ParseResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// BatchSummary aggregates the results of processing many files
type BatchSummary struct {
	Total      int           `json:"total"`
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Skipped    int           `json:"skipped"`
	Results    []ParseResult `json:"-"`
}

// SuccessRate returns the percentage of successful files, 0 when nothing was processed
func (s *BatchSummary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Successful) / float64(s.Total) * 100
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
