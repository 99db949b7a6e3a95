package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxOwnerLength bounds the owner name stamped on every node.
const maxOwnerLength = 64

// ValidateOwner validates the owner name written into every node's "user" field.
//
// Owners must be non-empty, at most 64 characters, and free of whitespace
// and control characters, since front-ends use the value as a lookup key.
func ValidateOwner(owner string) error {
	if owner == "" {
		return New(ErrCodeInvalidConfig, "owner cannot be empty")
	}
	if len(owner) > maxOwnerLength {
		return New(ErrCodeInvalidConfig, "owner too long (max %d characters)", maxOwnerLength)
	}
	for _, r := range owner {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidConfig, "owner contains invalid characters: %q", owner)
		}
	}
	return nil
}

// ValidateFormat checks that format is one of the allowed values.
func ValidateFormat(format string, allowed []string) error {
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "invalid format: %s (must be %s)", format, strings.Join(allowed, " or "))
	}
	return nil
}
