package urls

// TruncateURL truncates a URL to the specified max length
func TruncateURL(url string, maxLen int) string {
	if len(url) <= maxLen {
		return url
	}
	return url[:maxLen-3] + "..."
}

// FormatActive renders the active flag for tables
func FormatActive(active bool) string {
	if active {
		return "yes"
	}
	return "no"
}
