package assets

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/alnah/go-tutorialsite/internal/fileutil"
)

// ImageCache stores optimized image bytes in a SQLite file.
type ImageCache struct {
	db *sql.DB
}

// OpenImageCache opens (or creates) the cache database at path, creating
// parent directories as needed.
func OpenImageCache(path string) (*ImageCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageCache, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageCache, err)
	}
	// One connection: workers serialize on the cache, never on SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrImageCache, err)
	}

	c := &ImageCache{db: db}
	if err := c.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *ImageCache) ensureSchema() error {
	_, err := c.db.Exec(`
CREATE TABLE IF NOT EXISTS images (
    key TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    created_at TEXT NOT NULL
);
`)
	if err != nil {
		return fmt.Errorf("%w: schema: %v", ErrImageCache, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (c *ImageCache) Close() error {
	return c.db.Close()
}

// Get returns the cached bytes for key and whether they were present.
func (c *ImageCache) Get(key string) ([]byte, bool, error) {
	var data []byte
	err := c.db.QueryRow(`SELECT data FROM images WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get: %v", ErrImageCache, err)
	}
	return data, true, nil
}

// Put stores data under key, replacing any previous entry.
func (c *ImageCache) Put(key string, data []byte) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO images (key, data, created_at) VALUES (?, ?, ?)`,
		key, data, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: put: %v", ErrImageCache, err)
	}
	return nil
}

// CacheKey identifies an optimization result: same extension, settings, and
// content always produce the same key.
func CacheKey(ext string, opts ImageOptions, content []byte) string {
	h := sha256.New()
	h.Write([]byte(ext))
	h.Write([]byte{0})
	h.Write([]byte(opts.String()))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// CachingOptimizer serves repeat optimizations from an ImageCache.
// Cache failures are logged and fall through to the wrapped optimizer.
type CachingOptimizer struct {
	next   *ImageOptimizer
	cache  *ImageCache
	logger *zap.Logger
}

// NewCachingOptimizer wraps next with cache. A nil logger disables logging.
func NewCachingOptimizer(next *ImageOptimizer, cache *ImageCache, logger *zap.Logger) *CachingOptimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingOptimizer{next: next, cache: cache, logger: logger}
}

// Optimize returns cached bytes when present, otherwise optimizes and stores.
func (c *CachingOptimizer) Optimize(ext string, data []byte) ([]byte, error) {
	key := CacheKey(ext, c.next.Options(), data)

	cached, ok, err := c.cache.Get(key)
	if err != nil {
		c.logger.Warn("image cache read failed", zap.Error(err))
	}
	if ok {
		c.logger.Debug("image cache hit", zap.String("ext", ext), zap.Int("bytes", len(cached)))
		return cached, nil
	}

	out, err := c.next.Optimize(ext, data)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Put(key, out); err != nil {
		c.logger.Warn("image cache write failed", zap.Error(err))
	}
	return out, nil
}

// Compile-time interface check.
var _ Optimizer = (*CachingOptimizer)(nil)
