package extract

import (
	"fmt"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"newsbrief/internal/port"
)

const defaultUserAgent = "newsbrief/1.0 (+article extraction)"

// ReadabilityExtractor downloads an article page over plain HTTP and
// pulls out the main content with readability. Failures come back as
// errors with a reason, so the caller can decide to fall back to the
// API-provided snippet instead of treating every miss the same.
type ReadabilityExtractor struct {
	client    *http.Client
	userAgent string
}

// NewReadabilityExtractor creates an extractor with the given request
// timeout.
func NewReadabilityExtractor(timeout time.Duration) *ReadabilityExtractor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ReadabilityExtractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// Extract fetches the URL and parses title, byline, publish time and
// full text.
func (e *ReadabilityExtractor) Extract(link string) (port.ExtractResult, error) {
	if strings.TrimSpace(link) == "" {
		return port.ExtractResult{}, fmt.Errorf("empty article url")
	}

	u, err := neturl.Parse(link)
	if err != nil {
		return port.ExtractResult{}, fmt.Errorf("invalid article url %q: %w", link, err)
	}

	req, err := http.NewRequest("GET", link, nil)
	if err != nil {
		return port.ExtractResult{}, err
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return port.ExtractResult{}, fmt.Errorf("failed to download article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return port.ExtractResult{}, fmt.Errorf("article download returned status %d", resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, u)
	if err != nil {
		return port.ExtractResult{}, fmt.Errorf("readability parse failed: %w", err)
	}

	result := port.ExtractResult{
		Title:  article.Title,
		Byline: article.Byline,
		Text:   strings.TrimSpace(article.TextContent),
	}
	if article.PublishedTime != nil {
		result.Published = article.PublishedTime.UTC().Format(time.RFC3339)
	}

	if result.Text == "" {
		return result, fmt.Errorf("no text extracted from %s", link)
	}
	return result, nil
}
