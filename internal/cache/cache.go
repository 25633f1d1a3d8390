package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dshills/redline/internal/review"
)

// Entry is one cached backend response.
type Entry struct {
	Key       string            `json:"key"`
	Issues    []review.RawIssue `json:"issues"`
	CreatedAt time.Time         `json:"createdAt"`
	TTL       int               `json:"ttl"`
}

// Cache is a file-based cache of raw review responses, keyed on the model
// and the exact document text. A hit lets the watch loop skip the backend
// for unchanged documents. Resolved diagnostics are never cached; only the
// model's raw output is.
type Cache struct {
	dir        string
	ttlSeconds int
	enabled    bool
}

// New creates a cache. If dir is empty, the platform cache directory is
// used.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}
	if dir == "" {
		d, err := defaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{dir: dir, ttlSeconds: ttlSeconds, enabled: true}, nil
}

// Key derives the cache key for one review request.
func Key(model string, port int, docText string) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%s", model, port, docText)))
	return fmt.Sprintf("%x", h)
}

// Get returns the cached issues for a key, or false on miss or expiry.
func (c *Cache) Get(key string) ([]review.RawIssue, bool) {
	if !c.enabled {
		return nil, false
	}
	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if c.ttlSeconds > 0 && time.Since(entry.CreatedAt) > time.Duration(c.ttlSeconds)*time.Second {
		os.Remove(c.entryPath(key))
		return nil, false
	}
	return entry.Issues, true
}

// Put stores a backend response under the key.
func (c *Cache) Put(key string, issues []review.RawIssue) error {
	if !c.enabled {
		return nil
	}
	entry := Entry{
		Key:       key,
		Issues:    issues,
		CreatedAt: time.Now(),
		TTL:       c.ttlSeconds,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	return os.WriteFile(c.entryPath(key), data, 0o644)
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.enabled || c.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			os.Remove(filepath.Join(c.dir, e.Name()))
		}
	}
	return nil
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string { return c.dir }

// Enabled reports whether caching is active.
func (c *Cache) Enabled() bool { return c.enabled }

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func defaultCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "redline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "redline"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "redline", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "redline", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "redline"), nil
	}
}
