package tui

import (
	"fmt"
	"strings"
)

// HelpItem represents a single keyboard shortcut and its description
type HelpItem struct {
	Key         string
	Description string
}

// CommonHelpContent returns help for keys that work everywhere
func CommonHelpContent() string {
	items := []HelpItem{
		{"?", "Toggle help"},
		{"Ctrl+L", "Log out"},
		{"Ctrl+C", "Quit"},
	}
	return renderHelpItems(items)
}

// LoginHelpContent returns help for the login form
func LoginHelpContent() string {
	items := []HelpItem{
		{"Tab / Shift+Tab", "Switch between username and password"},
		{"Enter", "Log in"},
		{"Ctrl+C", "Quit"},
	}
	return renderHelpItems(items)
}

// DashboardHelpContent returns help for the URL list
func DashboardHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Navigate URL list"},
		{"PgUp / PgDn", "Scroll"},
		{"a", "Add a URL (Space toggles active, Enter saves, Esc cancels)"},
		{"e", "Edit selected URL (Tab toggles active, Enter saves, Esc cancels)"},
		{"Space", "Toggle active on selected URL"},
		{"d", "Delete selected URL"},
		{"t", "Fetch one random active URL"},
		{"r", "Refresh"},
		{"x", "Dismiss error"},
	}
	return renderHelpItems(items) + "\n" + CommonHelpContent()
}

// renderHelpItems formats help items into a readable string
func renderHelpItems(items []HelpItem) string {
	var b strings.Builder
	for _, item := range items {
		keyStyle := boldStyle.Foreground(colorPrimary)
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(padRight(item.Key, 15)),
			item.Description))
	}
	return b.String()
}
