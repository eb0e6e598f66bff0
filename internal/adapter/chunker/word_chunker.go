package chunker

import (
	"fmt"
	"strings"
)

// WordChunker splits text into overlapping fixed-size word windows.
// Each chunk after the first starts size-overlap words after the
// previous chunk's start; the final chunk may be shorter than the
// window.
type WordChunker struct {
	size    int
	overlap int
}

// NewWordChunker creates a word-window chunker. overlap >= size would
// stop the window from ever advancing, so it is rejected here as a
// configuration error.
func NewWordChunker(size, overlap int) (*WordChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", overlap, size)
	}
	return &WordChunker{size: size, overlap: overlap}, nil
}

// Chunk splits text into word windows. Whitespace runs collapse the
// same way strings.Fields does, so reassembling the chunks with the
// overlaps removed yields the original word sequence.
func (c *WordChunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.size - c.overlap
	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + c.size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}

// Size returns the window size in words.
func (c *WordChunker) Size() int { return c.size }

// Overlap returns the window overlap in words.
func (c *WordChunker) Overlap() int { return c.overlap }
