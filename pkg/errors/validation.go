package errors

import (
	"slices"
	"strings"
	"unicode"
)

// ValidatePath validates a workspace or output path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateFormat checks that format is one of supported. Comparison is
// case-sensitive; callers normalize first.
func ValidateFormat(format string, supported []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(supported, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (must be one of: %s)", format, strings.Join(supported, ", "))
	}
	return nil
}

// ValidateFormats validates every entry of formats and rejects duplicates.
func ValidateFormats(formats, supported []string) error {
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		if err := ValidateFormat(f, supported); err != nil {
			return err
		}
		if seen[f] {
			return New(ErrCodeInvalidFormat, "duplicate format %q", f)
		}
		seen[f] = true
	}
	return nil
}
