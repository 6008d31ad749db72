package errors

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ValidateVariant checks name against the supported layout variants.
func ValidateVariant(name string, valid []string) error {
	for _, v := range valid {
		if v == name {
			return nil
		}
	}
	return New(ErrCodeInvalidVariant, "invalid variant: %q (must be one of: %s)", name, strings.Join(valid, ", "))
}

// ValidateFormat checks an output format against the supported set.
func ValidateFormat(format string, valid []string) error {
	for _, v := range valid {
		if v == format {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(valid, ", "))
}

// ValidateExtent rejects non-finite or negative extents. Zero is allowed:
// the layout engine returns an empty result for it.
//
// Validation rules:
//   - No NaN or infinite values
//   - No negative values
//   - Maximum of 1e9 units per axis
func ValidateExtent(name string, v float64) error {
	const maxExtent = 1e9
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidExtent, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidExtent, "%s cannot be negative (got %v)", name, v)
	}
	if v > maxExtent {
		return New(ErrCodeInvalidExtent, "%s too large (max %g)", name, float64(maxExtent))
	}
	return nil
}

// ParseSeed parses a decimal or 0x-prefixed hexadecimal seed.
func ParseSeed(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, New(ErrCodeInvalidSeed, "seed cannot be empty")
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidSeed, err, "invalid seed %q", s)
	}
	return v, nil
}

// ValidatePath validates a user-supplied output or config path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
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
