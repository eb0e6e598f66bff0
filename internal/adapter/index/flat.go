package index

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"go.etcd.io/bbolt"

	"newsbrief/internal/domain"
)

var (
	bucketVectors  = []byte("vectors")
	bucketMeta     = []byte("meta")
	bucketManifest = []byte("manifest")
	keyManifest    = []byte("info")
)

// manifest records what the bundle was built with so that queries can
// detect an embedding-model mismatch before computing distances.
type manifest struct {
	Dimension int    `json:"dimension"`
	Count     int    `json:"count"`
	Model     string `json:"model"`
}

// FlatIndex is an exact brute-force Euclidean-distance index. Vectors
// and metadata live in one bbolt bundle keyed by position, so vector i
// and metadata i always describe the same chunk. The whole bundle is
// mirrored in memory for search.
type FlatIndex struct {
	db *bbolt.DB

	mu      sync.RWMutex
	dim     int
	model   string
	vectors [][]float32
	metas   []domain.ChunkMeta
}

// Build writes a new index bundle for the given corpus. Vectors and
// metadata must be the same length and in the same order as the chunk
// corpus fed to the embedder. The bundle is written to a temp file and
// renamed over path, so a concurrent reader never observes a partial
// index.
func Build(path, model string, vectors [][]float32, metas []domain.ChunkMeta) error {
	if len(vectors) == 0 {
		return fmt.Errorf("refusing to build an empty index: no chunks in corpus, run ingest first")
	}
	if len(vectors) != len(metas) {
		return fmt.Errorf("vector/metadata length mismatch: %d vectors, %d metadata entries", len(vectors), len(metas))
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), dim)
		}
	}

	tmp := path + ".tmp"
	os.Remove(tmp)

	db, err := bbolt.Open(tmp, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create index bundle: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		vb, err := tx.CreateBucketIfNotExists(bucketVectors)
		if err != nil {
			return err
		}
		mb, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		fb, err := tx.CreateBucketIfNotExists(bucketManifest)
		if err != nil {
			return err
		}

		for i := range vectors {
			key := positionKey(i)
			if err := vb.Put(key, encodeVector(vectors[i])); err != nil {
				return err
			}
			data, err := json.Marshal(metas[i])
			if err != nil {
				return err
			}
			if err := mb.Put(key, data); err != nil {
				return err
			}
		}

		info, err := json.Marshal(manifest{Dimension: dim, Count: len(vectors), Model: model})
		if err != nil {
			return err
		}
		return fb.Put(keyManifest, info)
	})
	if err != nil {
		db.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write index bundle: %w", err)
	}
	if err := db.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to swap index bundle into place: %w", err)
	}
	return nil
}

// Open loads an existing index bundle into memory.
func Open(path string) (*FlatIndex, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("index bundle not found at %s: run index first", path)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open index bundle: %w", err)
	}

	idx := &FlatIndex{db: db}
	if err := idx.load(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

func (x *FlatIndex) load() error {
	return x.db.View(func(tx *bbolt.Tx) error {
		fb := tx.Bucket(bucketManifest)
		if fb == nil {
			return fmt.Errorf("index bundle has no manifest")
		}
		var info manifest
		if err := json.Unmarshal(fb.Get(keyManifest), &info); err != nil {
			return fmt.Errorf("failed to parse index manifest: %w", err)
		}
		x.dim = info.Dimension
		x.model = info.Model

		x.vectors = make([][]float32, 0, info.Count)
		x.metas = make([]domain.ChunkMeta, 0, info.Count)

		vb := tx.Bucket(bucketVectors)
		mb := tx.Bucket(bucketMeta)
		if vb == nil || mb == nil {
			return fmt.Errorf("index bundle is missing vector or metadata buckets")
		}

		for i := 0; i < info.Count; i++ {
			key := positionKey(i)
			raw := vb.Get(key)
			if raw == nil {
				return fmt.Errorf("index bundle is missing vector %d", i)
			}
			vec, err := decodeVector(raw, x.dim)
			if err != nil {
				return fmt.Errorf("vector %d: %w", i, err)
			}

			var meta domain.ChunkMeta
			if err := json.Unmarshal(mb.Get(key), &meta); err != nil {
				return fmt.Errorf("metadata %d: %w", i, err)
			}
			x.vectors = append(x.vectors, vec)
			x.metas = append(x.metas, meta)
		}
		return nil
	})
}

// Search returns the k nearest vectors to the query by Euclidean
// distance, ranked from 1 with non-decreasing distance. k larger than
// the corpus is truncated to the corpus size.
func (x *FlatIndex) Search(query []float32, k int) ([]domain.SearchResult, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if len(query) != x.dim {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", x.dim, len(query))
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", k)
	}
	if len(x.vectors) == 0 {
		return nil, nil
	}

	type scored struct {
		pos  int
		dist float64
	}
	scores := make([]scored, len(x.vectors))
	for i, v := range x.vectors {
		scores[i] = scored{pos: i, dist: euclideanDistance(query, v)}
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].dist < scores[j].dist
	})

	if k > len(scores) {
		k = len(scores)
	}

	results := make([]domain.SearchResult, k)
	for i := 0; i < k; i++ {
		results[i] = domain.SearchResult{
			Rank:     i + 1,
			Distance: scores[i].dist,
			Meta:     x.metas[scores[i].pos],
		}
	}
	return results, nil
}

// Count returns the number of indexed vectors.
func (x *FlatIndex) Count() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.vectors)
}

// Dimension returns the embedding dimension the bundle was built with.
func (x *FlatIndex) Dimension() int { return x.dim }

// ModelName returns the embedding model the bundle was built with.
func (x *FlatIndex) ModelName() string { return x.model }

// Metadata returns the metadata entry at position i.
func (x *FlatIndex) Metadata(i int) (domain.ChunkMeta, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if i < 0 || i >= len(x.metas) {
		return domain.ChunkMeta{}, fmt.Errorf("metadata position %d out of range [0,%d)", i, len(x.metas))
	}
	return x.metas[i], nil
}

// Close releases the underlying bundle.
func (x *FlatIndex) Close() error {
	return x.db.Close()
}

func euclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

func positionKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(raw []byte, dim int) ([]float32, error) {
	if len(raw) != 4*dim {
		return nil, fmt.Errorf("vector payload is %d bytes, expected %d", len(raw), 4*dim)
	}
	v := make([]float32, dim)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return v, nil
}
