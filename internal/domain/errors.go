package domain

import (
	"errors"
	"fmt"
	"time"
)

// APIError represents a standardized error response
type APIError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for different failure scenarios
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeExternalAPI       = "EXTERNAL_API_ERROR"
	ErrCodeExtraction        = "EXTRACTION_ERROR"
	ErrCodeCBCNotFound       = "CBC_NOT_FOUND"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FILE_FORMAT"
	ErrCodeSIICalculation    = "SII_CALCULATION_ERROR"
	ErrCodeRateLimit         = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalServer    = "INTERNAL_SERVER_ERROR"
)

// NewAPIError creates a new APIError with timestamp
func NewAPIError(code, message, details, requestID string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

// Sentinel errors for the extraction and calculation pipeline.
var (
	// ErrCBCNotFound means a document was read successfully but no CBC
	// panel could be located in it.
	ErrCBCNotFound = errors.New("no blood test values found in document")

	// ErrNotFound means a stored record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrZeroLymphocytes means the SII denominator is zero.
	ErrZeroLymphocytes = errors.New("lymphocytes absolute count is zero")
)

// ExtractionError wraps a failure while reading text or values out of a
// document. Stage identifies the pipeline step that failed.
type ExtractionError struct {
	Stage   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed at %s: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("extraction failed at %s: %s", e.Stage, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates an ExtractionError for the given stage.
func NewExtractionError(stage, message string, err error) *ExtractionError {
	return &ExtractionError{Stage: stage, Message: message, Err: err}
}

// UnsupportedFormatError means the uploaded file extension or content type
// is not one the pipeline can process.
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

// Error implements the error interface
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for file %q", e.Extension, e.Filename)
}

// SIICalculationError means the index could not be computed from the
// extracted values. Field names the offending analyte when relevant.
type SIICalculationError struct {
	Field   AnalyteField
	Message string
	Err     error
}

// Error implements the error interface
func (e *SIICalculationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("SII calculation: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("SII calculation: %s", e.Message)
}

// Unwrap returns the underlying cause.
func (e *SIICalculationError) Unwrap() error {
	return e.Err
}

// NewMissingFieldError reports an analyte required by the SII formula
// that was absent from the extracted result.
func NewMissingFieldError(f AnalyteField) *SIICalculationError {
	return &SIICalculationError{Field: f, Message: "required field is missing"}
}

// NewNonPositiveError reports an analyte whose extracted value cannot
// physically be zero or negative.
func NewNonPositiveError(f AnalyteField, v float64) *SIICalculationError {
	return &SIICalculationError{Field: f, Message: fmt.Sprintf("value %g must be positive", v)}
}
