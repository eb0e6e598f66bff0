package newsapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"newsbrief/internal/port"
)

// DefaultEndpoint is NewsAPI's keyword search endpoint.
const DefaultEndpoint = "https://newsapi.org/v2/everything"

// Client queries NewsAPI for recent articles matching a keyword.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
	now      func() time.Time
}

type article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []article `json:"articles"`
}

// NewClient creates a NewsAPI client. endpoint may be empty for the
// production API; tests point it at a local server.
func NewClient(apiKey, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		now:      time.Now,
	}
}

// Fetch returns articles for the query published in the last fromDays
// days, most relevant first. HTTP and decode failures are hard errors;
// there is no retry.
func (c *Client) Fetch(query string, fromDays, pageSize int) ([]port.NewsArticle, error) {
	if fromDays < 1 {
		fromDays = 1
	}
	from := c.now().UTC().AddDate(0, 0, -fromDays).Format("2006-01-02")

	params := url.Values{}
	params.Set("q", query)
	params.Set("from", from)
	params.Set("language", "en")
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	params.Set("sortBy", "relevancy")
	params.Set("apiKey", c.apiKey)

	resp, err := c.client.Get(c.endpoint + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi error: %s", resp.Status)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode newsapi response: %w", err)
	}

	out := make([]port.NewsArticle, 0, len(result.Articles))
	for _, a := range result.Articles {
		out = append(out, port.NewsArticle{
			Source:      a.Source.Name,
			Author:      a.Author,
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}
	return out, nil
}
