package urls

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"url-admin/pkg/models"
)

// FormatTableOutput formats URL records as a table for CLI output. IDs are
// printed in full so they can be passed to --delete.
func FormatTableOutput(records []models.URLRecord) string {
	if len(records) == 0 {
		return "No URLs found.\n"
	}

	var b strings.Builder

	// Header
	b.WriteString("\n")
	b.WriteString(renderHeader())
	b.WriteString("\n")

	// Table
	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tURL\tActive")
	fmt.Fprintln(w, strings.Repeat("─", 36)+"\t"+strings.Repeat("─", 50)+"\t"+strings.Repeat("─", 6))

	active := 0
	for _, rec := range records {
		if rec.Active {
			active++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			rec.ID,
			TruncateURL(rec.URL, 50),
			FormatActive(rec.Active),
		)
	}

	w.Flush()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %d URL(s), %d active\n", len(records), active))

	return b.String()
}

// FormatSuccessMessage formats a success message for URL creation
func FormatSuccessMessage(rec *models.URLRecord) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("✓ URL created successfully!\n")
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  ID:     %s\n", rec.ID))
	b.WriteString(fmt.Sprintf("  URL:    %s\n", rec.URL))
	b.WriteString(fmt.Sprintf("  Active: %s\n", FormatActive(rec.Active)))
	b.WriteString("\n")

	return b.String()
}

// FormatErrorMessage formats an error message consistently
func FormatErrorMessage(err error) string {
	return fmt.Sprintf("❌ Error: %v\n", err)
}

// renderHeader renders a styled header
func renderHeader() string {
	return "Managed URLs"
}

// WriteTo writes formatted output to w, defaulting to stdout
func WriteTo(w io.Writer, content string) {
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprint(w, content)
}

// WriteToStderr writes formatted output to stderr
func WriteToStderr(content string) {
	fmt.Fprint(os.Stderr, content)
}
