package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
)

// FingerprintCache remembers the content hash of every file written during
// this process so watch mode can skip rewriting unchanged output.
type FingerprintCache struct {
	entries map[string]string
	metrics Metrics
	mutex   sync.RWMutex
}

type Metrics struct {
	Hits          int64
	Misses        int64
	Invalidations int64
	TotalEntries  int
}

var (
	globalCache *FingerprintCache
	cacheOnce   sync.Once
)

func GetCache() *FingerprintCache {
	cacheOnce.Do(func() {
		globalCache = NewFingerprintCache()
	})
	return globalCache
}

func NewFingerprintCache() *FingerprintCache {
	return &FingerprintCache{
		entries: make(map[string]string),
	}
}

func fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Changed reports whether the content differs from the last write recorded
// for this path.
func (fc *FingerprintCache) Changed(path, content string) bool {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	hash, exists := fc.entries[path]
	if exists && hash == fingerprint(content) {
		fc.metrics.Hits++
		logger.Debug("Cache hit for %s, content unchanged", path)
		return false
	}
	fc.metrics.Misses++
	return true
}

func (fc *FingerprintCache) Update(path, content string) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	fc.entries[path] = fingerprint(content)
}

func (fc *FingerprintCache) Invalidate(path string) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	if _, exists := fc.entries[path]; exists {
		delete(fc.entries, path)
		fc.metrics.Invalidations++
		logger.Debug("Invalidated cache entry for %s", path)
	}
}

func (fc *FingerprintCache) Clear() {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	count := len(fc.entries)
	fc.entries = make(map[string]string)
	fc.metrics.Invalidations += int64(count)
	logger.Debug("Cleared fingerprint cache, invalidated %d entries", count)
}

func (fc *FingerprintCache) GetMetrics() Metrics {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()

	metrics := fc.metrics
	metrics.TotalEntries = len(fc.entries)
	return metrics
}

func (fc *FingerprintCache) LogStats() {
	metrics := fc.GetMetrics()
	logger.Debug("Cache stats: Hits=%d, Misses=%d, Total Entries=%d, Invalidations=%d",
		metrics.Hits, metrics.Misses, metrics.TotalEntries, metrics.Invalidations)
}
