// Package cache implements the multi-tier package cache: a bloom filter for negative
// lookups, an in-memory LRU, and content-addressed files on disk.
package cache

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options configures a Cache.
type Options struct {
	Dir            string
	MemoryEntries  int
	FilterCapacity uint
	FilterFPRate   float64
	DiskWorkers    int
}

// OptionsFromConfig maps the cache section of the configuration.
func OptionsFromConfig(cfg domain.CacheConfig) Options {
	return Options{
		Dir:            cfg.Dir,
		MemoryEntries:  cfg.MemoryEntries,
		FilterCapacity: cfg.FilterCapacity,
		FilterFPRate:   cfg.FilterFPRate,
		DiskWorkers:    cfg.DiskWorkers,
	}
}

// Cache implements ports.Cache. Lookups go filter, memory, disk; writes go disk, memory, filter.
type Cache struct {
	memory *lru.Cache[domain.ContentHash, []byte]
	filter *filter
	disk   *disk
	logger ports.Logger

	filterRejects atomic.Uint64
	memoryHits    atomic.Uint64
	diskHits      atomic.Uint64
	misses        atomic.Uint64

	popMu      sync.Mutex
	popularity map[string]int
}

// New creates a Cache rooted at opts.Dir, creating the directory if needed.
func New(opts Options, logger ports.Logger) (*Cache, error) {
	if opts.Dir == "" {
		return nil, zerr.With(domain.ErrInvalidConfig, "field", "cache.dir")
	}
	if opts.MemoryEntries <= 0 {
		opts.MemoryEntries = 100
	}
	if opts.FilterCapacity == 0 {
		opts.FilterCapacity = 10_000
	}
	if opts.FilterFPRate <= 0 || opts.FilterFPRate >= 1 {
		opts.FilterFPRate = 0.01
	}

	memory, err := lru.New[domain.ContentHash, []byte](opts.MemoryEntries)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}
	d, err := newDisk(opts.Dir, opts.DiskWorkers)
	if err != nil {
		return nil, err
	}

	return &Cache{
		memory:     memory,
		filter:     newFilter(opts.FilterCapacity, opts.FilterFPRate),
		disk:       d,
		logger:     logger,
		popularity: make(map[string]int),
	}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.disk.root
}

// Get looks up hash. A miss is not an error; disk I/O failures are.
func (c *Cache) Get(ctx context.Context, hash domain.ContentHash) (domain.CacheHit, error) {
	if c.filter.rejects(hash) {
		c.filterRejects.Add(1)
		c.misses.Add(1)
		return domain.MissHit, nil
	}

	if data, ok := c.memory.Get(hash); ok {
		c.memoryHits.Add(1)
		return domain.CacheHit{Tier: domain.TierMemory, Data: data}, nil
	}

	data, err := c.disk.read(ctx, hash)
	if err != nil {
		return domain.CacheHit{}, err
	}
	if data == nil {
		c.misses.Add(1)
		return domain.MissHit, nil
	}

	c.memory.Add(hash, data)
	c.filter.add(hash)
	c.diskHits.Add(1)
	c.logger.Debug("cache disk hit promoted", "hash", hash.String(), "bytes", len(data))
	return domain.CacheHit{Tier: domain.TierDisk, Data: data}, nil
}

// Put stores data under hash. The disk write completes before the entry becomes visible in memory.
func (c *Cache) Put(ctx context.Context, hash domain.ContentHash, data []byte) error {
	if err := c.disk.write(ctx, hash, data); err != nil {
		return err
	}
	c.memory.Add(hash, data)
	c.filter.add(hash)
	return nil
}

// CheckMany partitions hashes into cached and missing, preserving input order.
func (c *Cache) CheckMany(ctx context.Context, hashes []domain.ContentHash) (cached, missing []domain.ContentHash, err error) {
	for _, h := range hashes {
		if c.filter.rejects(h) {
			missing = append(missing, h)
			continue
		}
		if c.memory.Contains(h) {
			cached = append(cached, h)
			continue
		}
		ok, err := c.disk.exists(ctx, h)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			c.filter.add(h)
			cached = append(cached, h)
		} else {
			missing = append(missing, h)
		}
	}
	return cached, missing, nil
}

// Warm marks every disk entry in the filter and makes its negative answers authoritative.
func (c *Cache) Warm(ctx context.Context) error {
	entries, err := c.disk.scan(ctx)
	if err != nil {
		return err
	}
	n := 0
	for _, e := range entries {
		if e.temp {
			continue
		}
		c.filter.add(e.hash)
		n++
	}
	c.filter.setWarm()
	c.logger.Debug("cache filter warmed", "entries", n)
	return nil
}

// Clean removes entries not modified within keepDays, plus stale temp files.
// Removed entries are dropped from memory; the filter keeps them and falls through to disk.
func (c *Cache) Clean(ctx context.Context, keepDays int) (int, error) {
	entries, err := c.disk.scan(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-time.Duration(max(keepDays, 0)) * 24 * time.Hour)

	removed := 0
	for _, e := range entries {
		if !e.modTime.Before(cutoff) {
			continue
		}
		if err := c.disk.remove(ctx, e.name); err != nil {
			return removed, err
		}
		if e.temp {
			continue
		}
		c.memory.Remove(e.hash)
		removed++
	}
	c.logger.Info("cache cleaned", "removed", removed, "keep_days", keepDays)
	return removed, nil
}

// Stats returns occupancy and hit counters.
func (c *Cache) Stats(ctx context.Context) (domain.CacheStats, error) {
	entries, err := c.disk.scan(ctx)
	if err != nil {
		return domain.CacheStats{}, err
	}
	stats := domain.CacheStats{
		MemoryEntries: c.memory.Len(),
		FilterWarm:    c.filter.isWarm(),
		FilterRejects: c.filterRejects.Load(),
		MemoryHits:    c.memoryHits.Load(),
		DiskHits:      c.diskHits.Load(),
		Misses:        c.misses.Load(),
	}
	for _, e := range entries {
		if e.temp {
			continue
		}
		stats.DiskEntries++
		stats.TotalBytes += e.size
	}
	return stats, nil
}

// RecordPopularity increments the request count of name and returns it.
func (c *Cache) RecordPopularity(name string) int {
	c.popMu.Lock()
	defer c.popMu.Unlock()
	c.popularity[name]++
	return c.popularity[name]
}

// Popular returns up to n names, most requested first, ties by name.
func (c *Cache) Popular(n int) []string {
	c.popMu.Lock()
	defer c.popMu.Unlock()

	names := make([]string, 0, len(c.popularity))
	for name := range c.popularity {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if d := cmp.Compare(c.popularity[b], c.popularity[a]); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})
	if n >= 0 && n < len(names) {
		names = names[:n]
	}
	return names
}
