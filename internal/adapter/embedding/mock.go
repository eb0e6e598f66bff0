package embedding

// MockEmbedder produces deterministic character-derived vectors so
// tests and offline runs work without a model server. Identical texts
// embed identically, so nearest-neighbor checks stay meaningful.
type MockEmbedder struct {
	dimension int
}

// NewMockEmbedder creates a mock embedder with the given dimension.
func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

// Embed maps each rune of the input onto one vector component.
func (e *MockEmbedder) Embed(texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = make([]float32, e.dimension)
		for j, r := range texts[i] {
			if j < e.dimension {
				embeddings[i][j] = float32(r) / 1000.0
			}
		}
	}
	return embeddings, nil
}

// Dimension returns the embedding vector dimension.
func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

// ModelName returns the name of the embedding model.
func (e *MockEmbedder) ModelName() string {
	return "mock"
}
