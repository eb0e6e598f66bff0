package port

import "newsbrief/internal/domain"

// ArticleStore persists one record per ingested article.
type ArticleStore interface {
	Put(article domain.Article) error

	Get(docID string) (domain.Article, error)

	// List returns all readable records in stable (path) order.
	// Unreadable records are skipped, not fatal.
	List() ([]domain.Article, error)

	// ChunkText looks up a chunk by (article identifier, position).
	// The second return is false when the record or position is gone,
	// so callers can substitute a placeholder instead of failing.
	ChunkText(docID string, index int) (string, bool)
}
