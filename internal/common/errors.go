package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
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

// Common application errors
var (
	// ErrInvalidImage marks a bad upload: missing, wrong extension, oversized,
	// or undecodable. Surfaced to the caller, never retried.
	ErrInvalidImage = errors.New("invalid image")

	// ErrOCRProcessing marks an OCR-stage failure: provider returned failure,
	// or the image was unusable after validation.
	ErrOCRProcessing = errors.New("ocr processing failed")

	// ErrNoProvider means no registered OCR provider is available. It chains
	// to ErrOCRProcessing so callers can treat it as a processing failure.
	ErrNoProvider = fmt.Errorf("no ocr provider available: %w", ErrOCRProcessing)

	ErrInvalidInput = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// InvalidImageError builds an AppError chained to ErrInvalidImage so callers
// can branch with errors.Is.
func InvalidImageError(message string) error {
	return NewAppError("INVALID_IMAGE", message, ErrInvalidImage)
}

func InvalidImageErrorf(format string, args ...interface{}) error {
	return InvalidImageError(fmt.Sprintf(format, args...))
}

// ProcessingError builds an AppError chained to ErrOCRProcessing.
func ProcessingError(message string) error {
	return NewAppError("OCR_PROCESSING", message, ErrOCRProcessing)
}

func ProcessingErrorf(format string, args ...interface{}) error {
	return ProcessingError(fmt.Sprintf(format, args...))
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
