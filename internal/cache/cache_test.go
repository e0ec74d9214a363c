package cache

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sii-blood-analyzer/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestKeyDependsOnContentAndCode(t *testing.T) {
	base := Key([]byte("report"), "C50")

	assert.Equal(t, base, Key([]byte("report"), "C50"))
	assert.NotEqual(t, base, Key([]byte("report"), "C34"))
	assert.NotEqual(t, base, Key([]byte("other report"), "C50"))
	assert.NotEqual(t, Key([]byte("ab"), "c"), Key([]byte("a"), "bc"))
}

func TestPutGet(t *testing.T) {
	c := NewResultCache(domain.CacheConfig{
		Enabled:    true,
		MaxEntries: 4,
		DefaultTTL: time.Minute,
	}, testLogger())

	key := Key([]byte("report"), "C50")
	_, ok := c.Get(key)
	assert.False(t, ok)

	result := &domain.AnalysisResult{ID: "analysis-1"}
	c.Put(key, result)

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "analysis-1", got.ID)
	assert.Equal(t, 1, c.Len())
}

func TestEvictionAtCapacity(t *testing.T) {
	c := NewResultCache(domain.CacheConfig{
		Enabled:    true,
		MaxEntries: 2,
		DefaultTTL: time.Minute,
	}, testLogger())

	c.Put("a", &domain.AnalysisResult{ID: "a"})
	c.Put("b", &domain.AnalysisResult{ID: "b"})
	c.Put("c", &domain.AnalysisResult{ID: "c"})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := NewResultCache(domain.CacheConfig{Enabled: false}, testLogger())

	c.Put("key", &domain.AnalysisResult{ID: "x"})
	_, ok := c.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	c.Purge()
}

func TestPurge(t *testing.T) {
	c := NewResultCache(domain.CacheConfig{Enabled: true}, testLogger())
	c.Put("key", &domain.AnalysisResult{ID: "x"})
	require.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}
