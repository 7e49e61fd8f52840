package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors with a stable code and
// a user-facing message. The UI layer renders Message; Cause is for logs.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error taxonomy. Row-level parse failures and missing fields are not in
// here on purpose: a malformed row is skipped and a missing field is
// explicit absence; neither ever stops a pipeline.
var (
	// ErrSourceUnavailable: a required sheet, section or sentinel row is
	// missing. Stops that document's pipeline only.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrExportFailure: the spreadsheet-write collaborator failed. The
	// computed in-memory table is preserved so export can be retried.
	ErrExportFailure = errors.New("export failed")

	ErrInvalidInput = errors.New("invalid input")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// SourceUnavailable builds the user-facing diagnostic for a missing
// input structure. Callers pair it with an empty result, never a panic.
func SourceUnavailable(format string, args ...any) error {
	return NewAppError("SOURCE_UNAVAILABLE", fmt.Sprintf(format, args...), ErrSourceUnavailable)
}

func ExportFailure(cause error) error {
	return NewAppError("EXPORT_FAILURE", "could not write workbook", errors.Join(ErrExportFailure, cause))
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
