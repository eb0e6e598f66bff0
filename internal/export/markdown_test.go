package export

import (
	"strings"
	"testing"

	"newsbrief/internal/domain"
)

func sampleSummary() *domain.Summary {
	return &domain.Summary{
		Query: "market news",
		Text:  "Stocks rose sharply [1]. Bonds fell [2].",
		Citations: []domain.Citation{
			{Index: 1, Title: "Markets Rally", URL: "https://example.com/markets", Source: "Example Wire"},
			{Index: 2, Title: "Bonds Fall", URL: "https://example.com/bonds"},
		},
	}
}

func TestMarkdownRendersSummaryAndSources(t *testing.T) {
	out := string(Markdown(sampleSummary()))

	if !strings.Contains(out, "# Summary for: market news") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "Stocks rose sharply [1].") {
		t.Errorf("missing summary body:\n%s", out)
	}
	if !strings.Contains(out, "1. [Markets Rally](https://example.com/markets) (Example Wire)") {
		t.Errorf("missing first source line:\n%s", out)
	}
	// A citation with no source name renders without the parenthetical.
	if !strings.Contains(out, "2. [Bonds Fall](https://example.com/bonds)\n") {
		t.Errorf("missing second source line:\n%s", out)
	}
}

func TestPDFProducesDocument(t *testing.T) {
	data, err := PDF(sampleSummary())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 || !strings.HasPrefix(string(data), "%PDF-") {
		t.Errorf("output does not look like a PDF (%d bytes)", len(data))
	}
}
