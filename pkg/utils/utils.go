package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

// IsValidKey checks that a storage key is safe to use as a file name
func IsValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// KeyFromFilename extracts the storage key from a "<key>.json" file name.
// ok is false for temp files and names that are not valid keys.
func KeyFromFilename(filename string) (key string, ok bool) {
	if !strings.HasSuffix(filename, ".json") {
		return "", false
	}
	key = strings.TrimSuffix(filename, ".json")
	if !IsValidKey(key) {
		return "", false
	}
	return key, true
}

// GenerateSessionID generates a random session ID
func GenerateSessionID() string {
	return uuid.NewString()
}

// ShortID returns the first 8 hex characters of a random UUID
func ShortID() string {
	return strings.ReplaceAll(uuid.NewString()[:8], "-", "")
}
