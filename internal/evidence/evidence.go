package evidence

import (
	"fmt"
	"strings"

	"newsbrief/internal/domain"
	"newsbrief/internal/port"
)

// Placeholder is substituted when a retrieved chunk's parent record
// has vanished from the corpus since the index was built.
const Placeholder = "(passage text unavailable)"

// wrapWidth matches the generous wrapping the prompt was tuned with;
// evidence passages stay on long lines rather than fragmenting facts.
const wrapWidth = 500

// Assembler re-joins retrieved metadata with chunk text and formats
// the numbered evidence block plus the citation map. The re-join is a
// deliberate indirection: the vector index stores no text payloads.
type Assembler struct {
	store port.ArticleStore
}

// NewAssembler creates an evidence assembler over the article corpus.
func NewAssembler(store port.ArticleStore) *Assembler {
	return &Assembler{store: store}
}

// Enrich attaches chunk text to each search result, substituting the
// placeholder when the lookup fails. It never errors; a stale index
// yields degraded evidence, not a failed run.
func (a *Assembler) Enrich(results []domain.SearchResult) []domain.RetrievedPassage {
	passages := make([]domain.RetrievedPassage, 0, len(results))
	for _, r := range results {
		text, ok := a.store.ChunkText(r.Meta.DocID, r.Meta.ChunkIndex)
		if !ok {
			text = Placeholder
		}
		passages = append(passages, domain.RetrievedPassage{
			SearchResult: r,
			Text:         text,
		})
	}
	return passages
}

// Build formats the 1-indexed evidence block and the parallel citation
// map. Numbering follows retrieval rank order.
func (a *Assembler) Build(passages []domain.RetrievedPassage) (string, []domain.Citation) {
	var lines []string
	citations := make([]domain.Citation, 0, len(passages))

	for i, p := range passages {
		n := i + 1
		title := p.Meta.Title
		if title == "" {
			title = "Untitled"
		}

		header := fmt.Sprintf("[%d] (%s) %s — %s — chunk:%d",
			n, p.Meta.Source, title, p.Meta.PublishedAt, p.Meta.ChunkIndex)
		lines = append(lines, header)
		lines = append(lines, wrapText(p.Text, wrapWidth))
		lines = append(lines, "")

		citations = append(citations, domain.Citation{
			Index:  n,
			Title:  title,
			URL:    p.Meta.URL,
			Source: p.Meta.Source,
		})
	}

	return strings.Join(lines, "\n"), citations
}

// wrapText greedily wraps words to at most width runes per line.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
