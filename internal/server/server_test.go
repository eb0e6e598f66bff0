package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"newsbrief/internal/domain"
)

func stubSummary(query string) *domain.Summary {
	return &domain.Summary{
		Query: query,
		Text:  "Stocks rose sharply [1].",
		Raw:   `{"response":"Stocks rose sharply [1]."}`,
		Citations: []domain.Citation{
			{Index: 1, Title: "Markets Rally", URL: "https://example.com/markets", Source: "Example Wire"},
		},
		Retrieved: []domain.RetrievedPassage{
			{
				SearchResult: domain.SearchResult{
					Rank:     1,
					Distance: 0.5,
					Meta:     domain.ChunkMeta{DocID: "doc1", Title: "Markets Rally", ChunkIndex: 0},
				},
				Text: "stocks rose sharply",
			},
		},
	}
}

func postForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersForm(t *testing.T) {
	s, err := New(func(string, int, int) (*domain.Summary, error) { return nil, nil }, 5, 512)
	if err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="query"`) || !strings.Contains(body, `name="top_k"`) ||
		!strings.Contains(body, `name="max_tokens"`) {
		t.Errorf("form fields missing:\n%s", body)
	}
	// The max-tokens field is prefilled with the configured default.
	if !strings.Contains(body, `name="max_tokens" value="512"`) {
		t.Errorf("max_tokens default not prefilled:\n%s", body)
	}
}

func TestSummarizeRendersResult(t *testing.T) {
	var gotQuery string
	var gotTopK, gotMaxTokens int
	s, err := New(func(q string, k, m int) (*domain.Summary, error) {
		gotQuery, gotTopK, gotMaxTokens = q, k, m
		return stubSummary(q), nil
	}, 5, 512)
	if err != nil {
		t.Fatal(err)
	}

	rec := postForm(t, s, "/summarize", url.Values{
		"query":      {"market news"},
		"top_k":      {"3"},
		"max_tokens": {"256"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /summarize = %d", rec.Code)
	}
	if gotQuery != "market news" || gotTopK != 3 || gotMaxTokens != 256 {
		t.Errorf("pipeline called with %q/%d/%d", gotQuery, gotTopK, gotMaxTokens)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Stocks rose sharply [1].") {
		t.Errorf("summary text missing:\n%s", body)
	}
	if !strings.Contains(body, "https://example.com/markets") {
		t.Errorf("citation missing:\n%s", body)
	}
	if !strings.Contains(body, "stocks rose sharply") {
		t.Errorf("retrieved evidence missing:\n%s", body)
	}
	if !strings.Contains(body, "Raw backend output") {
		t.Errorf("raw output panel missing:\n%s", body)
	}
	if !strings.Contains(body, "Stocks rose sharply [1].&#34;}") {
		t.Errorf("raw response body missing:\n%s", body)
	}
}

func TestSummarizeMaxTokensDefault(t *testing.T) {
	var gotMaxTokens int
	s, err := New(func(q string, k, m int) (*domain.Summary, error) {
		gotMaxTokens = m
		return stubSummary(q), nil
	}, 5, 512)
	if err != nil {
		t.Fatal(err)
	}

	// No max_tokens field and an unparseable one both fall back to the
	// configured default.
	postForm(t, s, "/summarize", url.Values{"query": {"market news"}})
	if gotMaxTokens != 512 {
		t.Errorf("absent max_tokens = %d, want default 512", gotMaxTokens)
	}

	postForm(t, s, "/summarize", url.Values{"query": {"market news"}, "max_tokens": {"lots"}})
	if gotMaxTokens != 512 {
		t.Errorf("unparseable max_tokens = %d, want default 512", gotMaxTokens)
	}
}

func TestSummarizePipelineErrorRendersOnPage(t *testing.T) {
	s, err := New(func(string, int, int) (*domain.Summary, error) {
		return nil, errors.New("index bundle not found at index_data/index.db: run index first")
	}, 5, 512)
	if err != nil {
		t.Fatal(err)
	}

	rec := postForm(t, s, "/summarize", url.Values{"query": {"anything"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("pipeline errors must render as a page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "run index first") {
		t.Errorf("error message missing:\n%s", rec.Body.String())
	}
}

func TestSummarizeEmptyQueryRejected(t *testing.T) {
	s, err := New(func(string, int, int) (*domain.Summary, error) {
		t.Error("pipeline must not run for an empty query")
		return nil, nil
	}, 5, 512)
	if err != nil {
		t.Fatal(err)
	}

	rec := postForm(t, s, "/summarize", url.Values{"query": {"   "}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty query = %d, want 400", rec.Code)
	}
}

func TestExportBeforeFirstRun(t *testing.T) {
	s, err := New(func(string, int, int) (*domain.Summary, error) { return nil, nil }, 5, 512)
	if err != nil {
		t.Fatal(err)
	}

	if rec := get(t, s, "/export/pdf"); rec.Code != http.StatusNotFound {
		t.Errorf("PDF export with no prior run = %d, want 404", rec.Code)
	}
	if rec := get(t, s, "/export/md"); rec.Code != http.StatusNotFound {
		t.Errorf("Markdown export with no prior run = %d, want 404", rec.Code)
	}
}

func TestExportAfterRun(t *testing.T) {
	s, err := New(func(q string, k, m int) (*domain.Summary, error) { return stubSummary(q), nil }, 5, 512)
	if err != nil {
		t.Fatal(err)
	}
	postForm(t, s, "/summarize", url.Values{"query": {"market news"}})

	rec := get(t, s, "/export/md")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /export/md = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "# Summary for: market news") {
		t.Errorf("markdown export body:\n%s", rec.Body.String())
	}

	rec = get(t, s, "/export/pdf")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /export/pdf = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("PDF export does not look like a PDF")
	}
}

func TestHealthz(t *testing.T) {
	s, err := New(func(string, int, int) (*domain.Summary, error) { return nil, nil }, 5, 512)
	if err != nil {
		t.Fatal(err)
	}
	if rec := get(t, s, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d", rec.Code)
	}
}
