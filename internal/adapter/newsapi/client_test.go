package newsapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleResponse = `{
	"status": "ok",
	"totalResults": 2,
	"articles": [
		{
			"source": {"id": null, "name": "Example Wire"},
			"author": "A. Reporter",
			"title": "Markets Rally",
			"description": "Stocks rose.",
			"content": "Stocks rose sharply on Monday...",
			"url": "https://example.com/markets",
			"publishedAt": "2024-06-01T10:00:00Z"
		},
		{
			"source": {"id": null, "name": "Other Wire"},
			"author": "",
			"title": "Bonds Fall",
			"description": "",
			"content": "",
			"url": "https://example.com/bonds",
			"publishedAt": "2024-06-01T11:00:00Z"
		}
	]
}`

func TestFetchQueryParameters(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient("secret-key", srv.URL)
	c.now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }

	if _, err := c.Fetch("markets", 3, 10); err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"q":        "markets",
		"from":     "2024-06-07",
		"language": "en",
		"pageSize": "10",
		"sortBy":   "relevancy",
		"apiKey":   "secret-key",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query param %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestFetchDecodesArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL)
	articles, err := c.Fetch("markets", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	a := articles[0]
	if a.Source != "Example Wire" || a.Title != "Markets Rally" ||
		a.URL != "https://example.com/markets" || a.PublishedAt != "2024-06-01T10:00:00Z" {
		t.Errorf("decoded article mismatch: %+v", a)
	}
}

func TestFetchClampsFromDays(t *testing.T) {
	var from string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		from = r.URL.Query().Get("from")
		w.Write([]byte(`{"status":"ok","totalResults":0,"articles":[]}`))
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL)
	c.now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }

	if _, err := c.Fetch("markets", 0, 10); err != nil {
		t.Fatal(err)
	}
	if from != "2024-06-09" {
		t.Errorf("from = %q, want one day back", from)
	}
}

func TestFetchHTTPErrorIsHard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error","code":"apiKeyInvalid"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad-key", srv.URL)
	if _, err := c.Fetch("markets", 1, 10); err == nil {
		t.Error("non-200 status must be a hard error")
	}
}
