package store

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"newsbrief/internal/domain"
)

// ArticleStore persists one JSON record per article in a data
// directory, named by the article's URL-derived identifier.
type ArticleStore struct {
	dir string
}

// NewArticleStore creates a store rooted at dir, creating it if needed.
func NewArticleStore(dir string) (*ArticleStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &ArticleStore{dir: dir}, nil
}

// DocIDFromURL derives the record identifier from the canonical
// article URL. Same URL, same identifier, so ingestion dedups by URL.
func DocIDFromURL(url string) string {
	sum := sha1.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

func (s *ArticleStore) path(docID string) string {
	return filepath.Join(s.dir, docID+".json")
}

// Put writes the article record to <docID>.json.
func (s *ArticleStore) Put(article domain.Article) error {
	if article.DocID == "" {
		return fmt.Errorf("article has no doc_id")
	}
	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(article.DocID), data, 0644)
}

// Get reads one record by identifier.
func (s *ArticleStore) Get(docID string) (domain.Article, error) {
	var article domain.Article
	data, err := os.ReadFile(s.path(docID))
	if err != nil {
		return article, fmt.Errorf("article record not found: %s: %w", docID, err)
	}
	if err := json.Unmarshal(data, &article); err != nil {
		return article, fmt.Errorf("failed to parse article record %s: %w", docID, err)
	}
	return article, nil
}

// List returns every readable record, in sorted path order so that
// index builds see a stable corpus ordering. Unreadable or corrupted
// records are skipped.
func (s *ArticleStore) List() ([]domain.Article, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match("*.json", e.Name()); ok {
			paths = append(paths, filepath.Join(s.dir, e.Name()))
		}
	}
	sort.Strings(paths)

	var articles []domain.Article
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var article domain.Article
		if err := json.Unmarshal(data, &article); err != nil {
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// ChunkText looks up a chunk by (article identifier, position). The
// second return is false when the record is missing or the position is
// out of range; callers substitute a placeholder instead of failing.
func (s *ArticleStore) ChunkText(docID string, index int) (string, bool) {
	article, err := s.Get(docID)
	if err != nil {
		return "", false
	}
	if index < 0 || index >= len(article.Chunks) {
		return "", false
	}
	return article.Chunks[index], true
}
