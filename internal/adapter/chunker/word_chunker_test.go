package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func TestWordChunkerReconstruction(t *testing.T) {
	// Removing the overlap from every chunk after the first must give
	// back the original word sequence in order.
	words := make([]string, 0, 113)
	for i := 0; i < 113; i++ {
		words = append(words, fmt.Sprintf("w%d", i))
	}
	text := strings.Join(words, " ")

	c, err := NewWordChunker(20, 5)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	var rebuilt []string
	for i, chunk := range chunks {
		cw := strings.Fields(chunk)
		if i == 0 {
			rebuilt = append(rebuilt, cw...)
			continue
		}
		if len(cw) < c.Overlap() {
			t.Fatalf("chunk %d has %d words, smaller than the overlap %d", i, len(cw), c.Overlap())
		}
		rebuilt = append(rebuilt, cw[c.Overlap():]...)
	}

	if strings.Join(rebuilt, " ") != text {
		t.Errorf("reconstructed sequence differs from original:\n got %q\nwant %q",
			strings.Join(rebuilt, " "), text)
	}
}

func TestWordChunkerWindowAdvance(t *testing.T) {
	c, err := NewWordChunker(5, 2)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Chunk("a b c d e f g h i j k")
	for i, chunk := range chunks {
		n := len(strings.Fields(chunk))
		if n > 5 {
			t.Errorf("chunk %d has %d words, window is 5", i, n)
		}
	}

	// Consecutive chunks start size-overlap words apart.
	if len(chunks) >= 2 {
		first := strings.Fields(chunks[0])
		second := strings.Fields(chunks[1])
		if second[0] != first[3] {
			t.Errorf("second chunk starts at %q, expected %q", second[0], first[3])
		}
	}
}

func TestWordChunkerShortFinalChunk(t *testing.T) {
	c, err := NewWordChunker(4, 1)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Chunk("one two three four five")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if got := chunks[1]; got != "four five" {
		t.Errorf("final chunk = %q, want %q", got, "four five")
	}
}

func TestWordChunkerOverlapGuard(t *testing.T) {
	if _, err := NewWordChunker(10, 10); err == nil {
		t.Error("overlap == size must be rejected, the window would never advance")
	}
	if _, err := NewWordChunker(10, 15); err == nil {
		t.Error("overlap > size must be rejected")
	}
	if _, err := NewWordChunker(0, 0); err == nil {
		t.Error("zero window size must be rejected")
	}
}

func TestWordChunkerEmptyText(t *testing.T) {
	c, err := NewWordChunker(10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if chunks := c.Chunk("   \n\t  "); chunks != nil {
		t.Errorf("expected no chunks for whitespace-only text, got %v", chunks)
	}
}
