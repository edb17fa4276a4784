package domain

import (
	"strings"

	"github.com/google/uuid"
)

// IsValidID reports whether the string is a syntactically valid resource
// identifier. Identifiers are store-assigned UUIDs; rejecting malformed ones
// up front keeps store lookup errors from surfacing as internal failures.
func IsValidID(id string) bool {
	if len(id) != 36 || strings.Count(id, "-") != 4 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// NewID generates a fresh resource identifier.
func NewID() string {
	return uuid.NewString()
}
