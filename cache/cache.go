// Package cache provides translation caching implementations.
package cache

import "time"

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}

// Stats describes the observable state of a cache.
type Stats struct {
	Size        int           `json:"size"`
	Capacity    int           `json:"capacity"`
	Hits        uint64        `json:"hits"`
	Misses      uint64        `json:"misses"`
	Evictions   uint64        `json:"evictions"`
	Expirations uint64        `json:"expirations"`
	HitRate     float64       `json:"hit_rate"`
	TTL         time.Duration `json:"ttl"`
}

// StatsReporter is implemented by caches that track usage statistics.
type StatsReporter interface {
	Stats() Stats
}
