package registry

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
	"go.trai.ch/zerr"
)

// metaStore keeps abbreviated metadata on disk, one JSON file per package name.
// Entries older than ttl are removed when read.
type metaStore struct {
	dir    string
	ttl    time.Duration
	now    func() time.Time
	logger ports.Logger
}

func newMetaStore(dir string, ttl time.Duration, logger ports.Logger) (*metaStore, error) {
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", dir)
	}
	return &metaStore{dir: dir, ttl: ttl, now: time.Now, logger: logger}, nil
}

// fileName flattens scoped names so every package maps to one file in dir.
func fileName(name string) string {
	return strings.ReplaceAll(name, "/", "__") + ".json"
}

// get returns the stored metadata, or nil if absent or expired.
func (s *metaStore) get(name string) (*domain.Metadata, error) {
	path := filepath.Join(s.dir, fileName(name))

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path)
	}
	if s.ttl > 0 && s.now().Sub(info.ModTime()) > s.ttl {
		_ = os.Remove(path)
		return nil, nil
	}

	//nolint:gosec // Path is derived from the store directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path)
	}

	var meta domain.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		s.logger.Warn("dropping corrupt metadata cache entry", "path", path, "error", err)
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(rmErr, domain.ErrCacheWriteFailed.Error()), "path", path)
		}
		return nil, nil
	}
	return &meta, nil
}

func (s *metaStore) put(name string, meta *domain.Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-meta-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "package", name)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "package", name)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "package", name)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, fileName(name))); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "package", name)
	}
	return nil
}
