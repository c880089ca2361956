package cache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
)

const tempPrefix = ".tmp-"

// disk is the persistent tier. Every filesystem call runs on a bounded pool of workers.
type disk struct {
	root string
	sem  *semaphore.Weighted
}

func newDisk(root string, workers int) (*disk, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", root)
	}
	return &disk{root: root, sem: semaphore.NewWeighted(int64(max(workers, 1)))}, nil
}

// do runs fn once a worker is free. It returns ctx.Err() if ctx ends first.
func (d *disk) do(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer d.sem.Release(1)
	return fn()
}

func (d *disk) path(h domain.ContentHash) string {
	return filepath.Join(d.root, domain.CacheFileName(h))
}

// read returns the entry for h, or nil with no error if it does not exist.
func (d *disk) read(ctx context.Context, h domain.ContentHash) ([]byte, error) {
	var data []byte
	err := d.do(ctx, func() error {
		b, err := os.ReadFile(d.path(h))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "hash", h.String())
		}
		data = b
		return nil
	})
	return data, err
}

func (d *disk) exists(ctx context.Context, h domain.ContentHash) (bool, error) {
	var found bool
	err := d.do(ctx, func() error {
		_, err := os.Stat(d.path(h))
		switch {
		case err == nil:
			found = true
			return nil
		case errors.Is(err, fs.ErrNotExist):
			return nil
		default:
			return zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "hash", h.String())
		}
	})
	return found, err
}

// write stores data via a temp file in the cache root and an atomic rename,
// so concurrent writers and readers never observe a partial entry.
func (d *disk) write(ctx context.Context, h domain.ContentHash, data []byte) error {
	return d.do(ctx, func() error {
		target := d.path(h)
		tmp, err := os.CreateTemp(d.root, tempPrefix+h.String()+"-*")
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "hash", h.String())
		}
		tmpName := tmp.Name()
		cleanup := func(cause error) error {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
			return zerr.With(zerr.Wrap(cause, domain.ErrCacheWriteFailed.Error()), "hash", h.String())
		}

		if _, err := tmp.Write(data); err != nil {
			return cleanup(err)
		}
		if err := tmp.Chmod(0o644); err != nil {
			return cleanup(err)
		}
		if err := tmp.Close(); err != nil {
			_ = os.Remove(tmpName)
			return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "hash", h.String())
		}
		if err := os.Rename(tmpName, target); err != nil {
			_ = os.Remove(tmpName)
			return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "hash", h.String())
		}
		return nil
	})
}

type diskEntry struct {
	hash    domain.ContentHash
	name    string
	size    int64
	modTime time.Time
	temp    bool
}

// scan lists cache entries and leftover temp files. Unrelated files are ignored.
func (d *disk) scan(ctx context.Context) ([]diskEntry, error) {
	var out []diskEntry
	err := d.do(ctx, func() error {
		entries, err := os.ReadDir(d.root)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheScanFailed.Error()), "path", d.root)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			isTemp := strings.HasPrefix(name, tempPrefix)
			var h domain.ContentHash
			if !isTemp {
				stem, ok := strings.CutSuffix(name, domain.CacheFileExt)
				if !ok {
					continue
				}
				if h, err = domain.ParseContentHash(stem); err != nil {
					continue
				}
			}
			info, err := e.Info()
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return zerr.With(zerr.Wrap(err, domain.ErrCacheScanFailed.Error()), "path", name)
			}
			out = append(out, diskEntry{hash: h, name: name, size: info.Size(), modTime: info.ModTime(), temp: isTemp})
		}
		return nil
	})
	return out, err
}

func (d *disk) remove(ctx context.Context, name string) error {
	return d.do(ctx, func() error {
		err := os.Remove(filepath.Join(d.root, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", name)
		}
		return nil
	})
}
