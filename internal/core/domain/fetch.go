package domain

import "time"

// FetchResult describes how one resolved package was obtained.
type FetchResult struct {
	Package ResolvedPackage `json:"package"`
	Hash    ContentHash     `json:"hash"`
	Tier    Tier            `json:"tier"`
	Size    int             `json:"size"`
	Dest    string          `json:"dest"`
	Audit   AuditResult     `json:"audit"`
	Err     error           `json:"-"`
}

// Cached reports whether the bytes were served by the cache.
func (r FetchResult) Cached() bool {
	return r.Tier != TierMiss
}

// FetchReport summarizes a fetch of a whole graph.
type FetchReport struct {
	Packages        int           `json:"packages"`
	Cached          int           `json:"cached"`
	Downloaded      int           `json:"downloaded"`
	Failed          int           `json:"failed"`
	BytesDownloaded int64         `json:"bytes_downloaded"`
	Duration        time.Duration `json:"duration"`
	Results         []FetchResult `json:"results"`
}

// Pins maps name@version to a known ContentHash, typically read from a lockfile.
type Pins map[string]ContentHash

// Lookup returns the pinned hash for pkg.
func (p Pins) Lookup(pkg ResolvedPackage) (ContentHash, bool) {
	if p == nil {
		return 0, false
	}
	h, ok := p[pkg.Key()]
	return h, ok
}
