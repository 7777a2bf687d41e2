package errors

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Limits applied at the boundary (flags, config, HTTP query). The generator
// itself accepts any input and degrades to pass-through.
const (
	MaxCanvasSize = 20000
	MaxScale      = 16

	// MaxCandidates caps the split positions per frame. The rectangle
	// count, and with it the work per iteration, grows with the square of
	// the candidate count.
	MaxCandidates = 400
)

// ValidateCanvasSize checks that size is a finite positive number no larger
// than MaxCanvasSize.
func ValidateCanvasSize(size float64) error {
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return New(ErrCodeInvalidCanvas, "canvas size must be a finite number")
	}
	if size <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas size must be positive, got %g", size)
	}
	if size > MaxCanvasSize {
		return New(ErrCodeInvalidCanvas, "canvas size too large (max %d), got %g", MaxCanvasSize, size)
	}
	return nil
}

// ValidateStep checks the candidate spacing. A step larger than the canvas
// is allowed and yields a single candidate position.
func ValidateStep(step int) error {
	if step <= 0 {
		return New(ErrCodeInvalidStep, "step must be positive, got %d", step)
	}
	return nil
}

// ValidateCandidates checks that a canvas of the given size and step does
// not produce more than MaxCandidates split positions. A non-positive step
// is left to ValidateStep.
func ValidateCandidates(size float64, step int) error {
	if step <= 0 {
		return nil
	}
	if n := math.Ceil(size / float64(step)); n > MaxCandidates {
		return New(ErrCodeInvalidStep,
			"step %d yields %g split positions on a %g canvas (max %d); use step >= %g",
			step, n, size, MaxCandidates, math.Ceil(size/MaxCandidates))
	}
	return nil
}

// ValidateThreshold checks that a probability threshold lies in [0, 1].
// name identifies the threshold in the error message.
func ValidateThreshold(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidThreshold, "%s must be between 0 and 1, got %g", name, v)
	}
	return nil
}

// ValidateStrokeWidth checks the rectangle outline width.
func ValidateStrokeWidth(w float64) error {
	if math.IsNaN(w) || w < 0 {
		return New(ErrCodeInvalidInput, "stroke width cannot be negative, got %g", w)
	}
	return nil
}

// ValidateScale checks the raster scale factor.
func ValidateScale(s float64) error {
	if math.IsNaN(s) || s <= 0 || s > MaxScale {
		return New(ErrCodeInvalidInput, "scale must be in (0, %d], got %g", MaxScale, s)
	}
	return nil
}

// ParseSeed parses a decimal seed as supplied on the command line or in a
// query string.
func ParseSeed(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, New(ErrCodeInvalidSeed, "seed cannot be empty")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, New(ErrCodeInvalidSeed, "invalid seed %q: must be a non-negative integer", s)
	}
	return v, nil
}

// ValidateHexColor checks a "#rrggbb" or "#rgb" colour string.
func ValidateHexColor(s string) error {
	if !strings.HasPrefix(s, "#") {
		return New(ErrCodeInvalidColor, "colour %q must start with #", s)
	}
	digits := s[1:]
	if len(digits) != 6 && len(digits) != 3 {
		return New(ErrCodeInvalidColor, "colour %q must have 3 or 6 hex digits", s)
	}
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return New(ErrCodeInvalidColor, "colour %q contains non-hex digit %q", s, r)
		}
	}
	return nil
}

// ValidateFilePrefix validates a snapshot/output file prefix. It must be a
// plain basename so generated names stay inside the target directory.
//
// Validation rules:
//   - Prefix cannot be empty
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateFilePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidPath, "file prefix cannot be empty")
	}

	const maxPrefixLength = 128
	if len(prefix) > maxPrefixLength {
		return New(ErrCodeInvalidPath, "file prefix too long (max %d characters)", maxPrefixLength)
	}

	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file prefix contains invalid characters")
		}
	}

	if strings.ContainsAny(prefix, "/\\") {
		return New(ErrCodeInvalidPath, "file prefix cannot contain path separators")
	}
	if strings.Contains(prefix, "..") {
		return New(ErrCodeInvalidPath, "file prefix cannot contain path traversal sequences (..)")
	}

	return nil
}
