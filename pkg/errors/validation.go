package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// MaxPrecision is the largest number of decimal places accepted for rounding
// results. float64 carries roughly 15 significant decimal digits.
const MaxPrecision = 15

// inputNameRegex matches identifiers usable as input names in expressions.
var inputNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateInputName validates the name of a graph input as used in
// expressions, scenario files and --set flags.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 64 characters
//   - Must start with a letter or underscore, followed by letters, digits or underscores
func ValidateInputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "input name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "input name too long (max 64 characters)")
	}

	if !inputNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid input name: %q", name)
	}

	return nil
}

// ValidateScenarioPath validates the path of a scenario file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must have a .toml extension
func ValidateScenarioPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "scenario path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		return New(ErrCodeInvalidPath, "scenario file must have a .toml extension: %q", path)
	}

	return nil
}

// ValidatePrecision validates a number of decimal places used for rounding.
func ValidatePrecision(p int) error {
	if p < 0 || p > MaxPrecision {
		return New(ErrCodeInvalidInput, "precision must be between 0 and %d, got %d", MaxPrecision, p)
	}
	return nil
}
