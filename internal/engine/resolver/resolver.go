// Package resolver turns declared dependencies into a resolved package graph.
package resolver

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultMaxPackages bounds a walk when Options.MaxPackages is unset.
const DefaultMaxPackages = 10_000

// Options configures a Resolver.
type Options struct {
	Policy          domain.ConflictPolicy
	MaxPackages     int
	IncludeOptional bool
}

// OptionsFromConfig maps the resolver section of the configuration.
func OptionsFromConfig(cfg domain.ResolverConfig) Options {
	return Options{
		Policy:          cfg.ConflictPolicy,
		MaxPackages:     cfg.MaxPackages,
		IncludeOptional: cfg.IncludeOptional,
	}
}

// Resolver walks dependencies breadth-first, one node at a time.
type Resolver struct {
	registry  ports.Registry
	telemetry ports.Telemetry
	logger    ports.Logger
	opts      Options
}

// New creates a Resolver.
func New(registry ports.Registry, telemetry ports.Telemetry, logger ports.Logger, opts Options) *Resolver {
	if opts.MaxPackages <= 0 {
		opts.MaxPackages = DefaultMaxPackages
	}
	return &Resolver{
		registry:  registry,
		telemetry: telemetry,
		logger:    logger,
		opts:      opts,
	}
}

type workItem struct {
	name       string
	constraint string
	parent     string
	optional   bool
}

func (w workItem) key() string {
	return w.name + "@" + w.constraint
}

// Resolve walks deps transitively. Any error aborts the walk and no graph is returned.
func (r *Resolver) Resolve(ctx context.Context, deps map[string]string) (*domain.ResolvedGraph, error) {
	graph, err := domain.NewResolvedGraph(r.opts.Policy)
	if err != nil {
		return nil, err
	}

	visited := make(map[string]struct{})
	var queue []workItem
	for _, name := range slices.Sorted(maps.Keys(deps)) {
		queue = append(queue, workItem{name: name, constraint: deps[name]})
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := queue[0]
		queue = queue[1:]
		if _, seen := visited[item.key()]; seen {
			continue
		}
		visited[item.key()] = struct{}{}

		pkg, err := r.resolveOne(ctx, item)
		if err != nil {
			if item.optional && ctx.Err() == nil {
				r.logger.Warn("skipping optional dependency", "package", item.name,
					"constraint", item.constraint, "required_by", item.parent, "error", err)
				continue
			}
			return nil, err
		}

		if err := graph.Add(pkg); err != nil {
			return nil, err
		}
		if graph.Len() > r.opts.MaxPackages {
			return nil, zerr.With(domain.ErrResolutionLimit, "max_packages", r.opts.MaxPackages)
		}

		queue = r.enqueue(queue, visited, pkg, item)
	}

	r.logger.Info("resolution complete", "packages", graph.Len())
	return graph, nil
}

func (r *Resolver) resolveOne(ctx context.Context, item workItem) (pkg domain.ResolvedPackage, err error) {
	var opts []ports.VertexOption
	if item.parent != "" {
		opts = append(opts, ports.WithInputs(vertexName(item.parent)))
	}
	ctx, vertex := r.telemetry.Record(ctx, vertexName(item.key()), opts...)
	defer func() { vertex.Complete(err) }()

	meta, err := r.registry.GetAbbreviated(ctx, item.name)
	if err != nil {
		return domain.ResolvedPackage{}, err
	}

	version, err := Solve(item.name, item.constraint, meta)
	if err != nil {
		return domain.ResolvedPackage{}, err
	}

	pkg = domain.NewResolvedPackage(item.name, version)
	r.logger.Debug("resolved package", "package", item.name, "constraint", item.constraint, "version", pkg.Version)
	vertex.Log(domain.LogLevelDebug, "selected "+pkg.Version)
	return pkg, nil
}

// enqueue appends the manifest dependencies of the resolved version, sorted by name.
// With IncludeOptional, optional dependencies are walked too and may fail without aborting.
func (r *Resolver) enqueue(queue []workItem, visited map[string]struct{}, pkg domain.ResolvedPackage, from workItem) []workItem {
	deps := pkg.Dependencies
	if r.opts.IncludeOptional && len(pkg.OptionalDependencies) > 0 {
		deps = maps.Clone(pkg.Dependencies)
		maps.Copy(deps, pkg.OptionalDependencies)
	}

	for _, name := range slices.Sorted(maps.Keys(deps)) {
		_, optional := pkg.OptionalDependencies[name]
		child := workItem{
			name:       name,
			constraint: deps[name],
			parent:     from.key(),
			optional:   from.optional || (r.opts.IncludeOptional && optional),
		}
		if _, seen := visited[child.key()]; seen {
			continue
		}
		queue = append(queue, child)
	}
	return queue
}

// Solve picks the version of meta that satisfies constraint. In order: "latest", "*" and ""
// follow the latest dist-tag; an exact published version is taken as is; a dist-tag name
// follows that tag; anything else is a semver range and selects the highest match.
func Solve(name, constraint string, meta *domain.Metadata) (domain.VersionMetadata, error) {
	raw := strings.TrimSpace(constraint)

	if raw == "" || raw == "*" || raw == domain.LatestTag {
		latest, ok := meta.DistTags[domain.LatestTag]
		if !ok {
			return domain.VersionMetadata{}, domain.NewPackageError(domain.ErrNoLatestTag, name, nil)
		}
		return lookup(name, latest, meta)
	}

	// Published keys win before parsing, so non-semver keys stay selectable.
	if v, ok := meta.Versions[raw]; ok {
		return v, nil
	}

	c, err := domain.ParseConstraint(raw)
	if err != nil {
		return domain.VersionMetadata{}, domain.NewPackageError(domain.ErrInvalidConstraint, name, err)
	}

	if tagged, ok := meta.DistTags[raw]; ok {
		return lookup(name, tagged, meta)
	}

	var (
		best    *semver.Version
		bestKey string
	)
	for key := range meta.Versions {
		v, err := semver.NewVersion(key)
		if err != nil || !c.Matches(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestKey = v, key
		}
	}
	if best == nil {
		return domain.VersionMetadata{}, domain.NewPackageError(domain.ErrConstraintUnsatisfiable, name,
			fmt.Errorf("constraint %q matches none of %d published versions", constraint, len(meta.Versions)))
	}
	return meta.Versions[bestKey], nil
}

func lookup(name, version string, meta *domain.Metadata) (domain.VersionMetadata, error) {
	v, ok := meta.Versions[version]
	if !ok {
		return domain.VersionMetadata{}, domain.NewPackageError(domain.ErrVersionNotFound, name,
			fmt.Errorf("version %s", version))
	}
	return v, nil
}

func vertexName(key string) string {
	return "resolve " + key
}
