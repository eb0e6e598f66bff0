package port

// Embedder generates vector embeddings for text.
//
// Embedding-space compatibility is mandatory: the query engine must use
// the same model the index was built with, or distances are meaningless.
type Embedder interface {
	// Embed generates embeddings for the given texts.
	// Returns a slice of vectors, one per input text, in input order.
	Embed(texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
