package port

// Chunker splits article text into retrieval-sized pieces.
type Chunker interface {
	Chunk(text string) []string
}
