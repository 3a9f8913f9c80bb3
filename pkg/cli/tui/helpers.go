package tui

import (
	"fmt"
	"strings"

	"url-admin/pkg/models"
)

// renderLoadingState renders a standard loading message
func renderLoadingState(message string) string {
	return infoStyle.Render(message) + "\n"
}

// renderActiveBadge renders the active flag of a record
func renderActiveBadge(active bool) string {
	if active {
		return activeBadgeStyle.Render("[active]  ")
	}
	return inactiveBadgeStyle.Render("[inactive]")
}

// renderURLRow renders one record of the list with its selection marker
func renderURLRow(rec models.URLRecord, selected bool, maxWidth int) string {
	marker := " "
	if selected {
		marker = selectedMarkerStyle.Render("→")
	}

	width := maxWidth - 16
	if width < 20 {
		width = 20
	}
	url := truncateURL(rec.URL, width)

	style := urlStyle
	switch {
	case selected:
		style = selectedStyle
	case !rec.Active:
		style = inactiveURLStyle
	}

	return fmt.Sprintf("%s %s %s\n", marker, renderActiveBadge(rec.Active), style.Render(url))
}

// truncateURL truncates a URL to the specified max length
func truncateURL(url string, maxLen int) string {
	if len(url) <= maxLen {
		return url
	}
	return url[:maxLen-3] + "..."
}

// handleListNavigation handles common navigation keys for list views (up/down/j/k)
// Returns the new selected index and whether navigation occurred
func handleListNavigation(key string, selected int, total int) (newSelected int, handled bool) {
	switch key {
	case "up", "k":
		if selected > 0 {
			return selected - 1, true
		}
		return selected, true
	case "down", "j":
		if selected < total-1 {
			return selected + 1, true
		}
		return selected, true
	}
	return selected, false
}

// clampSelection keeps selected inside a list of total items
func clampSelection(selected, total int) int {
	if selected >= total {
		selected = total - 1
	}
	if selected < 0 {
		selected = 0
	}
	return selected
}

// isSpaceKey matches the space bar across key string forms
func isSpaceKey(key string) bool {
	return key == " " || key == "space"
}

// renderInlineError renders an error message inline (without full error view formatting)
func renderInlineError(msg string) string {
	if msg == "" {
		return ""
	}
	return renderError(msg)
}

// yesNo renders a boolean for form fields
func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// padRight pads s with spaces to width
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
