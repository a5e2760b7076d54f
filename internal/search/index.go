package search

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// Index wraps a bleve index of item documents.
//
// All methods are safe for concurrent use; Rebuild takes the write lock.
type Index struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the index.
type Options struct {
	DataPath string       // Directory for index storage
	Logger   *slog.Logger // Uses a discard logger if nil
	InMemory bool         // Skip disk entirely (tests)
}

// mappingVersion changes whenever buildIndexMapping changes. A mismatch
// on open forces a fresh index.
const mappingVersion = "1"

// Open creates or opens the index under opts.DataPath. A corrupted index or
// one written with an older mapping is discarded and recreated empty; the
// caller repopulates it.
func Open(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if opts.InMemory {
		idx, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create in-memory index: %w", err)
		}
		return &Index{index: idx, logger: logger}, nil
	}

	indexPath := filepath.Join(opts.DataPath, "items.bleve")
	versionPath := filepath.Join(opts.DataPath, "items.version")

	var idx bleve.Index
	if _, err := os.Stat(indexPath); err == nil {
		version, readErr := os.ReadFile(versionPath)
		switch {
		case readErr != nil || string(version) != mappingVersion:
			logger.Info("search mapping changed, recreating index",
				"old_version", string(version),
				"new_version", mappingVersion,
			)
		default:
			idx, err = bleve.Open(indexPath)
			if err != nil {
				logger.Warn("failed to open existing index, recreating", "path", indexPath, "error", err)
				idx = nil
			}
		}
	}

	if idx == nil {
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("remove old index: %w", err)
		}
		if err := os.MkdirAll(opts.DataPath, 0o755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
		var err error
		idx, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); err != nil {
			logger.Warn("failed to write search version file", "error", err)
		}
		logger.Info("created search index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened search index", "path", indexPath)
	}

	return &Index{index: idx, path: indexPath, logger: logger}, nil
}

// Close releases the index.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Put indexes or replaces one document.
func (s *Index) Put(doc *ItemDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Index(doc.ID, doc.ToMap())
}

// PutAll indexes documents in batches of 500.
func (s *Index) PutAll(docs []*ItemDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 500
	for start := 0; start < len(docs); start += batchSize {
		end := min(start+batchSize, len(docs))

		batch := s.index.NewBatch()
		for _, doc := range docs[start:end] {
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}

// DocumentCount returns the number of indexed documents.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Reset drops every document, leaving an empty index with the current mapping.
func (s *Index) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}

	var (
		idx bleve.Index
		err error
	)
	if s.path == "" {
		idx, err = bleve.NewMemOnly(buildIndexMapping())
	} else {
		if err = os.RemoveAll(s.path); err != nil {
			return fmt.Errorf("remove index: %w", err)
		}
		idx, err = bleve.New(s.path, buildIndexMapping())
	}
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	s.index = idx
	s.logger.Info("reset search index", "path", s.path)
	return nil
}
