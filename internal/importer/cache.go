package importer

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"niptreport/internal/log"
	"niptreport/internal/model"
)

// LoadFunc parses the workbook at path
type LoadFunc func(path string, info os.FileInfo) (*model.Table, error)

// cacheKey file identity: absolute path plus modification signature
type cacheKey struct {
	path    string
	size    int64
	modTime time.Time
}

// CacheStats hit/miss counters
type CacheStats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
}

// Cache memoizes the normalized table of one source file.
// Every Get stats the file; the workbook is reparsed only when the signature
// changes or after Invalidate. Failed loads are never cached.
type Cache struct {
	path   string
	load   LoadFunc
	logger *log.Logger

	mu    sync.Mutex
	key   cacheKey
	table *model.Table
	stats CacheStats
}

// NewCache creates a memo over loader for the file at path
func NewCache(path string, loader *Loader, logger *log.Logger) *Cache {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if loader == nil {
		loader = NewLoader(logger)
	}
	return &Cache{
		path:   path,
		load:   loader.LoadFile,
		logger: log.OrDiscard(logger).WithComponent(log.ComponentCache),
	}
}

// Path absolute path of the cached source
func (c *Cache) Path() string {
	return c.path
}

// Get returns the cached table or loads it
func (c *Cache) Get() (*model.Table, error) {
	info, err := statSource(c.path)
	if err != nil {
		c.Invalidate()
		return nil, err
	}
	key := cacheKey{path: c.path, size: info.Size(), modTime: info.ModTime()}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table != nil && c.key == key {
		c.stats.Hits++
		return c.table, nil
	}

	table, err := c.load(c.path, info)
	if err != nil {
		return nil, err
	}
	c.stats.Misses++
	c.key = key
	c.table = table
	c.logger.Debug("cache filled", log.FieldFile, c.path, log.FieldLoadID, table.LoadID)
	return table, nil
}

// Invalidate drops the cached table
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table != nil {
		c.logger.Debug("cache invalidated", log.FieldFile, c.path, log.FieldLoadID, c.table.LoadID)
	}
	c.table = nil
	c.key = cacheKey{}
}

// Cached reports whether a table is currently memoized
func (c *Cache) Cached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table != nil
}

// Stats returns a snapshot of the counters
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
