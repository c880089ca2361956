// Package config provides the configuration and manifest loaders for pkgcore.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the config file looked up when no path is given.
const DefaultFilename = "pkgcore.yaml"

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct{}

// NewLoader creates a FileConfigLoader.
func NewLoader() ports.ConfigLoader {
	return &FileConfigLoader{}
}

// Load reads the configuration at path.
func (l *FileConfigLoader) Load(path string) (domain.Config, error) {
	return Load(path)
}

// Load reads a YAML configuration file on top of domain.DefaultConfig.
// Fields absent from the file keep their defaults; a missing file yields the defaults.
func Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if path == "" {
		path = DefaultFilename
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}
	return cfg, nil
}

type manifest struct {
	Name                 string            `json:"name"`
	Dependencies         map[string]string `json:"dependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// LoadManifest reads the dependencies object of a package.json file.
// Optional dependencies are included only when includeOptional is set.
func LoadManifest(path string, includeOptional bool) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	deps := make(map[string]string, len(m.Dependencies)+len(m.OptionalDependencies))
	for name, c := range m.Dependencies {
		deps[name] = c
	}
	if includeOptional {
		for name, c := range m.OptionalDependencies {
			if _, ok := deps[name]; !ok {
				deps[name] = c
			}
		}
	}
	return deps, nil
}

type pathKey struct{}

// WithPath returns a context carrying the config file path for the config node.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey{}, path)
}

// PathFromContext returns the config path carried by ctx, or DefaultFilename.
func PathFromContext(ctx context.Context) string {
	if p, ok := ctx.Value(pathKey{}).(string); ok && p != "" {
		return p
	}
	return DefaultFilename
}
