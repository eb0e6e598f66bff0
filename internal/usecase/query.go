package usecase

import (
	"fmt"

	"newsbrief/internal/adapter/index"
	"newsbrief/internal/domain"
	"newsbrief/internal/port"
)

// QueryUseCase embeds a query and runs a nearest-neighbor search
// against the persisted index bundle.
type QueryUseCase struct {
	embedder  port.Embedder
	indexPath string
}

// NewQueryUseCase creates a query use case.
func NewQueryUseCase(embedder port.Embedder, indexPath string) *QueryUseCase {
	return &QueryUseCase{embedder: embedder, indexPath: indexPath}
}

// Query returns the k nearest chunks to the query text, ranked from 1
// with non-decreasing distance. Each call loads the bundle fresh; runs
// never share mutable state. The bundle records the embedding model it
// was built with, and a mismatch with the configured embedder is an
// error: mixing embedding spaces silently produces meaningless
// distances.
func (u *QueryUseCase) Query(query string, k int) ([]domain.SearchResult, error) {
	idx, err := index.Open(u.indexPath)
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	if idx.ModelName() != u.embedder.ModelName() {
		return nil, fmt.Errorf("index was built with embedding model %q but %q is configured: rebuild the index",
			idx.ModelName(), u.embedder.ModelName())
	}

	embeddings, err := u.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}

	return idx.Search(embeddings[0], k)
}
