package protocol

import (
	"fmt"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/pyselect/internal/engine/buffer"
	"github.com/dshills/pyselect/internal/project"
)

// DefaultCacheSize is the number of documents cached when none is set.
const DefaultCacheSize = 64

// docKey identifies one version of a file on disk.
type docKey struct {
	path    string
	modTime time.Time
	size    int64
}

// DocumentCache keeps decoded documents for recently used file versions.
// It is safe for concurrent use.
type DocumentCache struct {
	cache   *lru.Cache[docKey, *buffer.Snapshot]
	maxSize int64
}

// NewDocumentCache creates a cache holding up to size documents. Files
// larger than maxFileSize are refused; zero uses project.DefaultMaxFileSize.
func NewDocumentCache(size int, maxFileSize int64) (*DocumentCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[docKey, *buffer.Snapshot](size)
	if err != nil {
		return nil, fmt.Errorf("create document cache: %w", err)
	}
	return &DocumentCache{cache: c, maxSize: maxFileSize}, nil
}

// Get returns the document at path, reading it when the cached version is
// missing or out of date.
func (c *DocumentCache) Get(path string) (*buffer.Snapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	key := docKey{path: path, modTime: info.ModTime(), size: info.Size()}

	if snap, ok := c.cache.Get(key); ok {
		return snap, nil
	}

	snap, err := project.ReadDocument(path, c.maxSize)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, snap)
	return snap, nil
}

// Len returns the number of cached documents.
func (c *DocumentCache) Len() int {
	return c.cache.Len()
}

// Purge empties the cache.
func (c *DocumentCache) Purge() {
	c.cache.Purge()
}
