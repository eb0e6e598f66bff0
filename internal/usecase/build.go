package usecase

import (
	"fmt"

	"newsbrief/internal/adapter/index"
	"newsbrief/internal/domain"
	"newsbrief/internal/port"
)

// BuildUseCase embeds the full chunk corpus and rebuilds the search
// index bundle. Every build is a full rebuild from the current corpus;
// there is no incremental path.
type BuildUseCase struct {
	articles  port.ArticleStore
	embedder  port.Embedder
	batchSize int
	progress  func(done, total int)
}

// NewBuildUseCase creates a build use case. progress may be nil.
func NewBuildUseCase(articles port.ArticleStore, embedder port.Embedder, batchSize int, progress func(done, total int)) *BuildUseCase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BuildUseCase{
		articles:  articles,
		embedder:  embedder,
		batchSize: batchSize,
		progress:  progress,
	}
}

// BuildResult contains the results of one index build.
type BuildResult struct {
	Articles  int
	Chunks    int
	Dimension int
	IndexPath string
}

// Build collects every chunk of every record in stable corpus order,
// embeds them, and writes the index bundle to indexPath. Vector i and
// metadata i always describe the same chunk. An empty corpus is a
// fail-fast error pointing at the missing ingest step.
func (u *BuildUseCase) Build(indexPath string) (*BuildResult, error) {
	records, err := u.articles.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list article corpus: %w", err)
	}

	var texts []string
	var metas []domain.ChunkMeta
	for _, rec := range records {
		for i, chunk := range rec.Chunks {
			texts = append(texts, chunk)
			metas = append(metas, domain.ChunkMeta{
				DocID:       rec.DocID,
				Title:       rec.Title,
				URL:         rec.URL,
				Source:      rec.Source,
				PublishedAt: rec.PublishedAt,
				ChunkIndex:  i,
			})
		}
	}

	if len(texts) == 0 {
		return nil, fmt.Errorf("no chunks in corpus: run ingest first")
	}

	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += u.batchSize {
		end := i + u.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := u.embedder.Embed(texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("embedding failed at chunk %d: %w", i, err)
		}
		vectors = append(vectors, batch...)
		if u.progress != nil {
			u.progress(end, len(texts))
		}
	}

	if err := index.Build(indexPath, u.embedder.ModelName(), vectors, metas); err != nil {
		return nil, err
	}

	return &BuildResult{
		Articles:  len(records),
		Chunks:    len(texts),
		Dimension: u.embedder.Dimension(),
		IndexPath: indexPath,
	}, nil
}
