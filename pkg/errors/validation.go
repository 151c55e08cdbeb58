package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// maxDivisions bounds grid dimensions so a typo cannot request billions of cells.
const maxDivisions = 2000

// ValidatePaletteName checks that a palette name is a plausible identifier.
// It does not check that the palette exists; that is the registry's job.
func ValidatePaletteName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPalette, "palette name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidPalette, "palette name too long (max 64 characters)")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return New(ErrCodeInvalidPalette, "palette name contains invalid character %q", r)
		}
	}
	return nil
}

// ValidateDivisions checks grid dimensions for the R and theta axes.
func ValidateDivisions(nR, nTheta int) error {
	if nR <= 0 || nTheta <= 0 {
		return New(ErrCodeInvalidInput, "divisions must be positive (got %d×%d)", nR, nTheta)
	}
	if nR > maxDivisions || nTheta > maxDivisions {
		return New(ErrCodeInvalidInput, "divisions too large (max %d per axis)", maxDivisions)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
func ValidateOutputPath(path string) error {
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
	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}
	return nil
}

// ValidateRedisURL validates a redis connection URL.
// Only redis:// and rediss:// schemes are accepted.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "redis URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid redis URL")
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return New(ErrCodeInvalidInput, "redis URL must use redis:// or rediss:// scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "redis URL must have a host")
	}
	return nil
}
