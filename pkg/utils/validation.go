package utils

import (
	"fmt"
	"strings"
)

// IsHTTPURL reports whether s starts with http:// or https://.
// The empty string is not a valid URL.
func IsHTTPURL(s string) bool {
	if s == "" {
		return false
	}
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ValidateURL trims and validates a URL string, returning a normalized value
// or an error if the URL is empty or not an http(s) URL.
func ValidateURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("URL is required")
	}
	if !IsHTTPURL(s) {
		return "", fmt.Errorf("URL must start with http:// or https://")
	}
	return s, nil
}
