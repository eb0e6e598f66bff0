package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"newsbrief/internal/domain"
	"newsbrief/internal/export"
)

//go:embed templates/page.html
var pageTemplates embed.FS

// RunFunc executes one RAG run for the web UI. maxTokens caps the
// generation backend's output for this run.
type RunFunc func(query string, topK, maxTokens int) (*domain.Summary, error)

// Server is the interactive surface: a single-page form that runs the
// pipeline and shows the summary, citations and evidence, with PDF and
// Markdown export of the most recent run. Pipeline errors render as a
// message on the page; they never take the server down.
type Server struct {
	e                *echo.Echo
	run              RunFunc
	defaultTopK      int
	defaultMaxTokens int
	page             *template.Template

	// The last run is cached for export; this is a single-user surface
	// by design, so one slot is enough.
	mu   sync.Mutex
	last *domain.Summary
}

type pageData struct {
	Query     string
	TopK      int
	MaxTokens int
	Error     string
	Result    *domain.Summary
}

// New creates the web server around a pipeline run function.
func New(run RunFunc, defaultTopK, defaultMaxTokens int) (*Server, error) {
	page, err := template.ParseFS(pageTemplates, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	s := &Server{
		run:              run,
		defaultTopK:      defaultTopK,
		defaultMaxTokens: defaultMaxTokens,
		page:             page,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.GET("/", s.handleIndex)
	e.POST("/summarize", s.handleSummarize)
	e.GET("/export/pdf", s.handleExportPDF)
	e.GET("/export/md", s.handleExportMarkdown)
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	s.e = e
	return s, nil
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}

func (s *Server) render(c echo.Context, code int, data pageData) error {
	if data.TopK == 0 {
		data.TopK = s.defaultTopK
	}
	if data.MaxTokens == 0 {
		data.MaxTokens = s.defaultMaxTokens
	}
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}

func (s *Server) handleIndex(c echo.Context) error {
	return s.render(c, http.StatusOK, pageData{})
}

func (s *Server) handleSummarize(c echo.Context) error {
	query := strings.TrimSpace(c.FormValue("query"))
	if query == "" {
		return s.render(c, http.StatusBadRequest, pageData{Error: "Please enter a query."})
	}

	topK := s.defaultTopK
	if v, err := strconv.Atoi(c.FormValue("top_k")); err == nil && v > 0 {
		topK = v
	}
	maxTokens := s.defaultMaxTokens
	if v, err := strconv.Atoi(c.FormValue("max_tokens")); err == nil && v > 0 {
		maxTokens = v
	}

	summary, err := s.run(query, topK, maxTokens)
	if err != nil {
		return s.render(c, http.StatusOK, pageData{
			Query:     query,
			TopK:      topK,
			MaxTokens: maxTokens,
			Error:     fmt.Sprintf("Pipeline failed: %v", err),
		})
	}

	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()

	return s.render(c, http.StatusOK, pageData{
		Query:     query,
		TopK:      topK,
		MaxTokens: maxTokens,
		Result:    summary,
	})
}

func (s *Server) lastSummary() *domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Server) handleExportPDF(c echo.Context) error {
	summary := s.lastSummary()
	if summary == nil {
		return s.render(c, http.StatusNotFound, pageData{Error: "Nothing to export yet: run a summary first."})
	}

	data, err := export.PDF(summary)
	if err != nil {
		return s.render(c, http.StatusInternalServerError, pageData{Error: fmt.Sprintf("PDF export failed: %v", err)})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="summary.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func (s *Server) handleExportMarkdown(c echo.Context) error {
	summary := s.lastSummary()
	if summary == nil {
		return s.render(c, http.StatusNotFound, pageData{Error: "Nothing to export yet: run a summary first."})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="summary.md"`)
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", export.Markdown(summary))
}
