package domain

// Article is one ingested news article plus its chunked text.
// Records are immutable once written; DocID is derived from the URL,
// so re-ingesting the same article overwrites an identical record.
type Article struct {
	DocID       string   `json:"doc_id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Source      string   `json:"source"`
	PublishedAt string   `json:"publishedAt"`
	Chunks      []string `json:"chunks"`
}

// ChunkMeta is the positional metadata stored alongside each embedding
// vector. It deliberately does not carry the chunk text; evidence
// assembly re-joins text by (DocID, ChunkIndex) against the corpus.
type ChunkMeta struct {
	DocID       string `json:"doc_id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	ChunkIndex  int    `json:"chunk_index"`
}

// SearchResult is one ranked nearest-neighbor hit. Rank starts at 1;
// lower Distance means more similar.
type SearchResult struct {
	Rank     int       `json:"rank"`
	Distance float64   `json:"score"`
	Meta     ChunkMeta `json:"metadata"`
}

// RetrievedPassage is a search result enriched with its chunk text.
type RetrievedPassage struct {
	SearchResult
	Text string `json:"chunk_text"`
}

// Citation maps an evidence ordinal to its source attributes.
type Citation struct {
	Index  int    `json:"idx"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Summary is the packaged result of one RAG run.
type Summary struct {
	Query     string             `json:"query"`
	Text      string             `json:"summary_text"`
	Raw       string             `json:"raw_response"`
	Citations []Citation         `json:"sources"`
	Retrieved []RetrievedPassage `json:"retrieved"`
}
