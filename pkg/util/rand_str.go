// Package util contains small helpers used across the application
package util

import gonanoid "github.com/matoous/go-nanoid/v2"

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandStr returns n random letters. Safe for concurrent use, panics only if
// the system's random source fails.
func RandStr(n int) string {
	return gonanoid.MustGenerate(letters, n)
}
