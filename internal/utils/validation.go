package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateOutputFile checks that an export destination is a file path with an allowed extension
func ValidateOutputFile(output string, allowedExts []string) error {
	if strings.TrimSpace(output) == "" {
		return &ValidationError{
			Field:   "outputPath",
			Message: "output path is required",
		}
	}
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return &ValidationError{
			Field:   "outputPath",
			Message: fmt.Sprintf("output path must be a file, not a directory: %s", output),
		}
	}
	if err := ValidateFileExtension(output, allowedExts); err != nil {
		return &ValidationError{
			Field:   "outputPath",
			Message: err.(*ValidationError).Message,
		}
	}
	return nil
}

// ValidateFileExtension checks if a file has one of the allowed extensions
func ValidateFileExtension(filePath string, allowedExts []string) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, allowedExt := range allowedExts {
		if ext == allowedExt {
			return nil
		}
	}
	return &ValidationError{
		Field:   "extension",
		Message: fmt.Sprintf("file extension %q not allowed. Allowed extensions: %v", ext, allowedExts),
	}
}

// ValidateRange checks that an integer setting lies within [min, max]
func ValidateRange(field string, value, min, max int) error {
	if value < min || value > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d, got %d", min, max, value),
		}
	}
	return nil
}
