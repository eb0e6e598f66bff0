package usecase

import (
	"fmt"

	"newsbrief/internal/domain"
	"newsbrief/internal/evidence"
	"newsbrief/internal/port"
	"newsbrief/internal/prompt"
)

// SummarizeUseCase runs the full RAG pipeline: retrieve, enrich with
// chunk text, build evidence and prompt, call the generation backend,
// and package the result. The pipeline is strictly linear; the first
// component failure aborts the run and surfaces its error.
type SummarizeUseCase struct {
	queries   *QueryUseCase
	assembler *evidence.Assembler
	prompts   *prompt.Builder
	generator port.Generator
}

// NewSummarizeUseCase creates a summarize use case.
func NewSummarizeUseCase(
	queries *QueryUseCase,
	assembler *evidence.Assembler,
	prompts *prompt.Builder,
	generator port.Generator,
) *SummarizeUseCase {
	return &SummarizeUseCase{
		queries:   queries,
		assembler: assembler,
		prompts:   prompts,
		generator: generator,
	}
}

// Run produces a cited summary for the query from the top-k retrieved
// passages.
func (u *SummarizeUseCase) Run(query string, k int) (*domain.Summary, error) {
	results, err := u.queries.Query(query, k)
	if err != nil {
		return nil, err
	}

	passages := u.assembler.Enrich(results)
	block, citations := u.assembler.Build(passages)

	promptText, err := u.prompts.Summary(query, block)
	if err != nil {
		return nil, err
	}

	gen, err := u.generator.Generate(promptText)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return &domain.Summary{
		Query:     query,
		Text:      gen.Text,
		Raw:       gen.Raw,
		Citations: citations,
		Retrieved: passages,
	}, nil
}
