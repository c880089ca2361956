package domain

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultRegistryURL is the public npm registry.
const DefaultRegistryURL = "https://registry.npmjs.org"

// Duration is a time.Duration that decodes from Go duration strings in YAML.
type Duration time.Duration

// UnmarshalYAML accepts "30s", "24h" and plain integers (nanoseconds).
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		var n int64
		if errInt := node.Decode(&n); errInt != nil {
			return zerr.With(zerr.Wrap(err, "invalid duration"), "value", s)
		}
		parsed = time.Duration(n)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full runtime configuration.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Cache    CacheConfig    `yaml:"cache"`
	Security SecurityConfig `yaml:"security"`
	Resolver ResolverConfig `yaml:"resolver"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Log      LogConfig      `yaml:"log"`
}

// RegistryConfig configures the registry client.
type RegistryConfig struct {
	URL         string   `yaml:"url"`
	Timeout     Duration `yaml:"timeout"`
	Concurrency int      `yaml:"concurrency"`
	MetadataTTL Duration `yaml:"metadata_ttl"`
	MetadataDir string   `yaml:"metadata_dir"`
	// Refresh bypasses cached metadata on reads.
	Refresh bool `yaml:"refresh"`
}

// CacheConfig configures the multi-tier cache.
type CacheConfig struct {
	Dir            string  `yaml:"dir"`
	MemoryEntries  int     `yaml:"memory_entries"`
	FilterCapacity uint    `yaml:"filter_capacity"`
	FilterFPRate   float64 `yaml:"filter_fp_rate"`
	DiskWorkers    int     `yaml:"disk_workers"`
	WarmOnStart    bool    `yaml:"warm_on_start"`
}

// SecurityConfig configures the capabilities used for installs.
type SecurityConfig struct {
	MaxPackageSize uint64   `yaml:"max_package_size"`
	AllowScripts   bool     `yaml:"allow_scripts"`
	ExtraHosts     []string `yaml:"extra_hosts"`
}

// ResolverConfig configures dependency resolution.
type ResolverConfig struct {
	ConflictPolicy  ConflictPolicy `yaml:"conflict_policy"`
	MaxPackages     int            `yaml:"max_packages"`
	IncludeOptional bool           `yaml:"include_optional"`
}

// FetchConfig configures tarball downloads.
type FetchConfig struct {
	Concurrency int      `yaml:"concurrency"`
	Retries     int      `yaml:"retries"`
	RetryDelay  Duration `yaml:"retry_delay"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	root := filepath.Join(base, "pkgcore")
	return Config{
		Registry: RegistryConfig{
			URL:         DefaultRegistryURL,
			Timeout:     Duration(30 * time.Second),
			Concurrency: 32,
			MetadataTTL: Duration(24 * time.Hour),
			MetadataDir: filepath.Join(root, "metadata"),
		},
		Cache: CacheConfig{
			Dir:            filepath.Join(root, "packages"),
			MemoryEntries:  100,
			FilterCapacity: 10_000,
			FilterFPRate:   0.01,
			DiskWorkers:    4,
		},
		Security: SecurityConfig{
			MaxPackageSize: DefaultMaxPackageSize,
		},
		Resolver: ResolverConfig{
			ConflictPolicy: ConflictError,
			MaxPackages:    10_000,
		},
		Fetch: FetchConfig{
			Concurrency: 20,
			Retries:     3,
			RetryDelay:  Duration(100 * time.Millisecond),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate checks value ranges and returns ErrInvalidConfig naming the first bad field.
func (c Config) Validate() error {
	invalid := func(field string, value any) error {
		return zerr.With(zerr.With(ErrInvalidConfig, "field", field), "value", value)
	}
	switch {
	case c.Registry.URL == "":
		return invalid("registry.url", c.Registry.URL)
	case c.Registry.Timeout <= 0:
		return invalid("registry.timeout", c.Registry.Timeout.Std())
	case c.Registry.Concurrency <= 0:
		return invalid("registry.concurrency", c.Registry.Concurrency)
	case c.Registry.MetadataTTL < 0:
		return invalid("registry.metadata_ttl", c.Registry.MetadataTTL.Std())
	case c.Cache.Dir == "":
		return invalid("cache.dir", c.Cache.Dir)
	case c.Cache.MemoryEntries <= 0:
		return invalid("cache.memory_entries", c.Cache.MemoryEntries)
	case c.Cache.FilterCapacity == 0:
		return invalid("cache.filter_capacity", c.Cache.FilterCapacity)
	case c.Cache.FilterFPRate <= 0 || c.Cache.FilterFPRate >= 1:
		return invalid("cache.filter_fp_rate", c.Cache.FilterFPRate)
	case c.Cache.DiskWorkers <= 0:
		return invalid("cache.disk_workers", c.Cache.DiskWorkers)
	case c.Security.MaxPackageSize == 0:
		return invalid("security.max_package_size", c.Security.MaxPackageSize)
	case c.Resolver.ConflictPolicy.Validate() != nil:
		return invalid("resolver.conflict_policy", string(c.Resolver.ConflictPolicy))
	case c.Resolver.MaxPackages <= 0:
		return invalid("resolver.max_packages", c.Resolver.MaxPackages)
	case c.Fetch.Concurrency <= 0:
		return invalid("fetch.concurrency", c.Fetch.Concurrency)
	case c.Fetch.Retries <= 0:
		return invalid("fetch.retries", c.Fetch.Retries)
	case c.Fetch.RetryDelay < 0:
		return invalid("fetch.retry_delay", c.Fetch.RetryDelay.Std())
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return invalid("log.level", c.Log.Level)
	}
}

// InstallCapabilities returns the capabilities for installing into dest.
// The registry host is always allowed.
func (c Config) InstallCapabilities(dest string, registryHost string) Capabilities {
	return ForInstall(dest).
		WithNetworkHosts(registryHost).
		WithNetworkHosts(c.Security.ExtraHosts...).
		WithMaxPackageSize(c.Security.MaxPackageSize).
		WithScripts(c.Security.AllowScripts)
}
