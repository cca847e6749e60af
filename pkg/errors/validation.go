package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateColor checks that a required color option is present.
//
// Colors are opaque to burst: any non-empty value is passed through to the
// rendering surface untouched. Only emptiness and control characters are
// rejected, the latter because they cannot survive SVG attribute encoding.
func ValidateColor(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return New(ErrCodeInvalidConfig, "colors: %s is required", field)
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "colors: %s contains control characters", field)
		}
	}
	return nil
}

// ValidateWidth checks a container width given on the command line or over
// HTTP. It must be a finite number no smaller than zero.
func ValidateWidth(width float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) || width < 0 {
		return New(ErrCodeInvalidInput, "width must be a finite non-negative number, got %v", width)
	}
	return nil
}

// ValidateDataPath validates a data file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes
func ValidateDataPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "data path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}

	return nil
}

// ValidateFormats checks every requested output format against valid.
func ValidateFormats(formats []string, valid map[string]bool) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range formats {
		if !valid[f] {
			return New(ErrCodeInvalidFormat, "unsupported format: %q", f)
		}
	}
	return nil
}
