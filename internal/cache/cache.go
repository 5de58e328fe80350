package cache

import (
	"fmt"
	"strings"
	"time"
)

// Package cache provides a local read-through cache for GET response bodies.

// Cache stores response bodies keyed by full request URL.
type Cache interface {
	Close() error
	Get(key string) ([]byte, bool, error)
	Put(key string, body []byte) error
}

// Options controls retention characteristics for concrete cache implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 5 * time.Minute
	defaultCleanupInterval = time.Hour
)

// NewCache creates the configured cache backend.
func NewCache(typ, path string, opts Options) (Cache, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopCache{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt cache requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unknown cache type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

// noopCache never stores anything; it exists so callers can disable caching
// without branching.
type noopCache struct{}

func (noopCache) Close() error                     { return nil }
func (noopCache) Get(string) ([]byte, bool, error) { return nil, false, nil }
func (noopCache) Put(string, []byte) error         { return nil }
