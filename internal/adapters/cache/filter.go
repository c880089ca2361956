package cache

import (
	"encoding/binary"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"go.trai.ch/pkgcore/internal/core/domain"
)

// filter is the probabilistic negative-lookup tier. It is not persisted:
// until warm, a negative answer is not authoritative.
type filter struct {
	mu    sync.RWMutex
	bloom *bloom.BloomFilter
	warm  bool
}

func newFilter(capacity uint, fpRate float64) *filter {
	return &filter{bloom: bloom.NewWithEstimates(capacity, fpRate)}
}

func filterKey(h domain.ContentHash) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, 8), uint64(h))
}

func (f *filter) add(h domain.ContentHash) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bloom.Add(filterKey(h))
}

// rejects reports whether h is certainly absent.
func (f *filter) rejects(h domain.ContentHash) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.warm && !f.bloom.Test(filterKey(h))
}

func (f *filter) setWarm() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.warm = true
}

func (f *filter) isWarm() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.warm
}
