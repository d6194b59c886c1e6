package util

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength  = 16
)

// NewID returns a random identifier for videos, comments and notifications
func NewID() (string, error) {
	return gonanoid.Generate(idCharset, idLength)
}

// IsID reports whether s has the shape of an identifier made by NewID.
// Used to reject malformed IDs before touching the store.
func IsID(s string) bool {
	if len(s) != idLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}

	return true
}
