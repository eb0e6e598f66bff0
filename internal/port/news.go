package port

// NewsArticle is raw article metadata as returned by the news search
// API, before extraction and chunking.
type NewsArticle struct {
	Source      string
	Author      string
	Title       string
	Description string
	Content     string
	URL         string
	PublishedAt string
}

// NewsFetcher queries a news search API for a keyword and time window.
type NewsFetcher interface {
	Fetch(query string, fromDays, pageSize int) ([]NewsArticle, error)
}

// ExtractResult is the parsed content of one article page.
type ExtractResult struct {
	Title     string
	Byline    string
	Published string
	Text      string
}

// Extractor downloads and parses full article text from a URL.
type Extractor interface {
	Extract(url string) (ExtractResult, error)
}
