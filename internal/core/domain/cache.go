package domain

// Tier names the cache layer that answered a lookup.
type Tier int

const (
	// TierMiss means no layer had the entry.
	TierMiss Tier = iota
	// TierMemory means the entry came from the in-process LRU.
	TierMemory
	// TierDisk means the entry was read from the cache directory.
	TierDisk
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierMemory:
		return "memory"
	case TierDisk:
		return "disk"
	default:
		return "miss"
	}
}

// CacheHit is the result of a cache lookup. Data is nil for TierMiss.
type CacheHit struct {
	Tier Tier
	Data []byte
}

// Hit reports whether the lookup found data.
func (h CacheHit) Hit() bool {
	return h.Tier != TierMiss
}

// MissHit is the CacheHit returned when nothing is cached.
var MissHit = CacheHit{Tier: TierMiss}

// CacheStats is a snapshot of cache occupancy and counters since process start.
type CacheStats struct {
	MemoryEntries int    `json:"memory_entries"`
	DiskEntries   int    `json:"disk_entries"`
	TotalBytes    int64  `json:"total_bytes"`
	FilterWarm    bool   `json:"filter_warm"`
	FilterRejects uint64 `json:"filter_rejects"`
	MemoryHits    uint64 `json:"memory_hits"`
	DiskHits      uint64 `json:"disk_hits"`
	Misses        uint64 `json:"misses"`
}

// CacheFileExt is the extension of disk tier entries.
const CacheFileExt = ".dxp"

// CacheFileName returns the disk tier file name for h.
func CacheFileName(h ContentHash) string {
	return h.String() + CacheFileExt
}
