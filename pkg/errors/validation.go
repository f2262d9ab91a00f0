package errors

import (
	"strings"
	"unicode"
)

// ValidateTopN validates a retention count. Zero is allowed and yields an
// empty selection.
func ValidateTopN(name string, n int) error {
	if n < 0 {
		return New(ErrCodeInvalidConfig, "%s must be a non-negative integer, got %d", name, n)
	}
	return nil
}

// ValidateColumnName validates a record column name.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateColumnName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidColumn, "column name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidColumn, "column name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidColumn, "column name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a local input or output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFocus validates a focus country. The empty string means no focus.
func ValidateFocus(country string) error {
	if country != strings.TrimSpace(country) {
		return New(ErrCodeInvalidConfig, "focus %q has surrounding whitespace and can never match a sanitized country", country)
	}
	return nil
}
