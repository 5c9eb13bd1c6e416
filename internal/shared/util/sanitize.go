package util

import (
	"errors"
	"path"
	"strings"
)

var ErrInvalidKey = errors.New("invalid object key")

// CleanObjectKey normalizes a slash-separated storage key and rejects
// traversal, absolute and empty keys.
func CleanObjectKey(key string) (string, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if raw == "" || strings.HasPrefix(raw, "/") {
		return "", ErrInvalidKey
	}
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return "", ErrInvalidKey
		}
	}
	clean := path.Clean(raw)
	if clean == "." {
		return "", ErrInvalidKey
	}
	return clean, nil
}

// NormalizeEmail lowercases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
