package export

import (
	"fmt"
	"strings"

	"newsbrief/internal/domain"
)

// Markdown renders a summary and its sources as a Markdown document.
func Markdown(summary *domain.Summary) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Summary for: %s\n\n", summary.Query)
	b.WriteString(summary.Text)
	b.WriteString("\n\n## Sources\n\n")

	for _, c := range summary.Citations {
		fmt.Fprintf(&b, "%d. [%s](%s)", c.Index, c.Title, c.URL)
		if c.Source != "" {
			fmt.Fprintf(&b, " (%s)", c.Source)
		}
		b.WriteString("\n")
	}

	return []byte(b.String())
}
