// Package assets handles asset lookup across search roots and caching.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when no search root holds the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager resolves slash-separated asset paths against a list of roots.
// Roots are searched in reverse order (last added = highest priority).
type Manager struct {
	roots []fs.FS
	names []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates an asset manager over the given directories.
func NewManager(dirs ...string) *Manager {
	m := &Manager{cache: NewCache()}
	for _, d := range dirs {
		m.AddRoot(d)
	}
	return m
}

// AddRoot adds a directory on the local filesystem as a search root.
func (m *Manager) AddRoot(dir string) {
	m.AddFS(dir, os.DirFS(dir))
}

// AddFS adds an arbitrary filesystem as a search root.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.roots = append(m.roots, fsys)
	m.names = append(m.names, name)
	m.mu.Unlock()
}

// Roots returns the root names in search order.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.names))
	for i := len(m.names) - 1; i >= 0; i-- {
		out = append(out, m.names[i])
	}
	return out
}

// Load reads a file from the first root that has it.
func (m *Manager) Load(name string) ([]byte, error) {
	key, err := normalize(name)
	if err != nil {
		return nil, err
	}

	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.roots[i], key)
		if err == nil {
			m.cache.Set(key, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", key, m.names[i], err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Exists reports whether any root holds the file.
func (m *Manager) Exists(name string) bool {
	key, err := normalize(name)
	if err != nil {
		return false
	}
	if _, ok := m.cache.Peek(key); ok {
		return true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.roots {
		if _, err := fs.Stat(r, key); err == nil {
			return true
		}
	}
	return false
}

// Close drops all roots and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.names = nil
	m.cache.Clear()
}

// Cache exposes the byte cache, mostly for stats.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// normalize converts OS separators and rejects paths that escape a root.
func normalize(name string) (string, error) {
	p := path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "/"))
	if !fs.ValidPath(p) || p == "." {
		return "", fmt.Errorf("invalid asset path %q", name)
	}
	return p, nil
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache and counts the lookup.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Peek retrieves an item without touching the stats.
func (c *Cache) Peek(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.data[key]
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
