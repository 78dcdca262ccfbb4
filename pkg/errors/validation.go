package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxAssetIDLength is the longest identifier accepted for assets and events.
const MaxAssetIDLength = 128

// ValidateAssetID validates an asset or event identifier loaded from an
// external source (portfolio files, API requests).
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only identifiers
//   - No control characters
//   - Maximum length of MaxAssetIDLength bytes
func ValidateAssetID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "asset id cannot be empty")
	}

	if len(id) > MaxAssetIDLength {
		return New(ErrCodeInvalidInput, "asset id too long (max %d characters)", MaxAssetIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "asset id contains invalid control characters")
		}
	}

	return nil
}

// ValidateStrength checks that a relationship strength is a normalized
// value in [0, 1]. NaN is rejected.
func ValidateStrength(strength float64) error {
	if math.IsNaN(strength) || strength < 0 || strength > 1 {
		return New(ErrCodeInvalidStrength, "strength %v outside [0, 1]", strength)
	}
	return nil
}

// ValidateImpactScore checks that a regulatory event impact lies in [-1, 1].
func ValidateImpactScore(score float64) error {
	if math.IsNaN(score) || score < -1 || score > 1 {
		return New(ErrCodeInvalidInput, "impact score %v outside [-1, 1]", score)
	}
	return nil
}
