package errors

import (
	"math"
	"regexp"
)

// methodNameRegex matches shape method names.
var methodNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateMethodName checks a shape method name: a letter followed by up to
// 63 letters, digits, dashes or underscores.
func ValidateMethodName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "method name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "method name too long (max 64 characters)")
	}
	if !methodNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid method name: %q", name)
	}
	return nil
}

// ValidateSize validates a canvas size. Both dimensions must be finite and
// strictly positive.
func ValidateSize(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "size must be finite, got %vx%v", width, height)
		}
		if v <= 0 {
			return New(ErrCodeInvalidInput, "size must be positive, got %vx%v", width, height)
		}
	}
	return nil
}

// ValidateScale validates a scale factor. Zero is allowed (the shape
// collapses); negative and non-finite values are not.
func ValidateScale(s float64) error {
	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
		return New(ErrCodeInvalidInput, "scale must be a finite number >= 0, got %v", s)
	}
	return nil
}
