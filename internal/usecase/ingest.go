package usecase

import (
	"fmt"
	"strings"

	"newsbrief/internal/adapter/store"
	"newsbrief/internal/domain"
	"newsbrief/internal/port"
)

// IngestUseCase fetches news for a query, extracts full article text,
// chunks it, and persists one record per article.
type IngestUseCase struct {
	fetcher   port.NewsFetcher
	extractor port.Extractor
	chunker   port.Chunker
	articles  port.ArticleStore
}

// NewIngestUseCase creates an ingest use case.
func NewIngestUseCase(
	fetcher port.NewsFetcher,
	extractor port.Extractor,
	chunker port.Chunker,
	articles port.ArticleStore,
) *IngestUseCase {
	return &IngestUseCase{
		fetcher:   fetcher,
		extractor: extractor,
		chunker:   chunker,
		articles:  articles,
	}
}

// IngestResult contains the results of one ingestion run.
type IngestResult struct {
	Ingested []domain.Article
	Skipped  int
	Warnings []string
}

// Ingest fetches up to maxArticles articles from the last fromDays
// days and stores a chunked record for each one with usable text.
// Extraction failures fall back to the API-provided snippet; articles
// with no text at all are skipped with a warning, not a failure.
func (u *IngestUseCase) Ingest(query string, fromDays, maxArticles int) (*IngestResult, error) {
	raw, err := u.fetcher.Fetch(query, fromDays, maxArticles)
	if err != nil {
		return nil, fmt.Errorf("news fetch failed: %w", err)
	}

	result := &IngestResult{}

	for _, art := range raw {
		if art.URL == "" {
			result.Skipped++
			continue
		}
		docID := store.DocIDFromURL(art.URL)

		title := art.Title
		published := art.PublishedAt
		fullText := ""

		extracted, err := u.extractor.Extract(art.URL)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("extraction failed for %s: %v", art.URL, err))
		} else {
			fullText = extracted.Text
			if extracted.Title != "" {
				title = extracted.Title
			}
			if extracted.Published != "" {
				published = extracted.Published
			}
		}

		// Scraping is best effort: fall back to whatever the news API
		// already gave us.
		if fullText == "" {
			fullText = art.Content
		}
		if fullText == "" {
			fullText = art.Description
		}
		if strings.TrimSpace(fullText) == "" {
			result.Skipped++
			continue
		}

		record := domain.Article{
			DocID:       docID,
			Title:       title,
			URL:         art.URL,
			Source:      art.Source,
			PublishedAt: published,
			Chunks:      u.chunker.Chunk(fullText),
		}

		if err := u.articles.Put(record); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("failed to store %s: %v", art.URL, err))
			continue
		}
		result.Ingested = append(result.Ingested, record)
	}

	return result, nil
}
