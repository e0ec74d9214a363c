// Package cache holds recently computed analyses in process memory so
// that re-uploads of the same report skip extraction and OCR entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/sii-blood-analyzer/internal/domain"
)

const (
	// DefaultMaxEntries bounds memory use; one entry is a few KB.
	DefaultMaxEntries = 512
	// DefaultTTL keeps entries long enough to cover a user re-checking
	// the same report within a session.
	DefaultTTL = 30 * time.Minute
)

// ResultCache is an LRU cache of finished analyses keyed by document
// content and cancer code. A disabled cache is a valid value whose
// operations are no-ops.
type ResultCache struct {
	lru     *expirable.LRU[string, *domain.AnalysisResult]
	logger  *logrus.Logger
	enabled bool
}

// NewResultCache builds a cache from configuration. Size and TTL fall
// back to defaults when unset.
func NewResultCache(cfg domain.CacheConfig, logger *logrus.Logger) *ResultCache {
	if logger == nil {
		logger = logrus.New()
	}
	if !cfg.Enabled {
		return &ResultCache{logger: logger}
	}

	size := cfg.MaxEntries
	if size <= 0 {
		size = DefaultMaxEntries
	}
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &ResultCache{
		lru:     expirable.NewLRU[string, *domain.AnalysisResult](size, nil, ttl),
		logger:  logger,
		enabled: true,
	}
}

// Key derives the cache key from document bytes and the requested
// cancer code. The same file analyzed for a different cancer yields a
// different key because the classification differs.
func Key(content []byte, cancerCode string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(cancerCode))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached analysis for key, if present and unexpired.
func (c *ResultCache) Get(key string) (*domain.AnalysisResult, bool) {
	if !c.enabled {
		return nil, false
	}
	result, ok := c.lru.Get(key)
	if ok {
		c.logger.WithField("key", key[:12]).Debug("Analysis cache hit")
	}
	return result, ok
}

// Put stores a finished analysis under key.
func (c *ResultCache) Put(key string, result *domain.AnalysisResult) {
	if !c.enabled || result == nil {
		return
	}
	c.lru.Add(key, result)
}

// Len reports the number of live entries.
func (c *ResultCache) Len() int {
	if !c.enabled {
		return 0
	}
	return c.lru.Len()
}

// Purge drops every entry.
func (c *ResultCache) Purge() {
	if c.enabled {
		c.lru.Purge()
	}
}
