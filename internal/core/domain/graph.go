package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// ConflictPolicy decides which version Get returns when a name resolved to more than one version.
type ConflictPolicy string

const (
	// ConflictHighest returns the greatest resolved version.
	ConflictHighest ConflictPolicy = "highest"
	// ConflictFirst returns the version that was inserted first.
	ConflictFirst ConflictPolicy = "first"
	// ConflictError rejects a second distinct version of a name.
	ConflictError ConflictPolicy = "error"
)

// ParseConflictPolicy validates a policy name. The empty string is rejected.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	p := ConflictPolicy(strings.ToLower(strings.TrimSpace(s)))
	if err := p.Validate(); err != nil {
		return "", zerr.With(err, "policy", s)
	}
	return p, nil
}

// Validate reports ErrConflictPolicyRequired for any value other than the three known policies.
func (p ConflictPolicy) Validate() error {
	switch p {
	case ConflictHighest, ConflictFirst, ConflictError:
		return nil
	default:
		return ErrConflictPolicyRequired
	}
}

// ResolvedGraph is the output of resolution: the ordered set of resolved packages.
// Lookup by name maps to every distinct version resolved for that name.
type ResolvedGraph struct {
	policy   ConflictPolicy
	packages []ResolvedPackage
	byName   map[string][]int
}

// NewResolvedGraph creates an empty graph governed by policy.
func NewResolvedGraph(policy ConflictPolicy) (*ResolvedGraph, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &ResolvedGraph{
		policy: policy,
		byName: make(map[string][]int),
	}, nil
}

// Policy returns the graph's conflict policy.
func (g *ResolvedGraph) Policy() ConflictPolicy {
	return g.policy
}

// Add inserts pkg. Re-adding an already present name@version is a no-op.
func (g *ResolvedGraph) Add(pkg ResolvedPackage) error {
	idxs := g.byName[pkg.Name]
	for _, i := range idxs {
		if g.packages[i].Version == pkg.Version {
			return nil
		}
	}
	if len(idxs) > 0 && g.policy == ConflictError {
		return NewPackageError(ErrVersionConflict, pkg.Name,
			fmt.Errorf("already resolved %s, refusing %s", g.packages[idxs[0]].Version, pkg.Version))
	}
	g.byName[pkg.Name] = append(idxs, len(g.packages))
	g.packages = append(g.packages, pkg)
	return nil
}

// Get returns the package selected for name under the graph's policy.
func (g *ResolvedGraph) Get(name string) (ResolvedPackage, bool) {
	idxs := g.byName[name]
	if len(idxs) == 0 {
		return ResolvedPackage{}, false
	}
	if g.policy != ConflictHighest || len(idxs) == 1 {
		return g.packages[idxs[0]], true
	}

	best := idxs[0]
	bestVer, _ := semver.NewVersion(g.packages[best].Version)
	for _, i := range idxs[1:] {
		v, err := semver.NewVersion(g.packages[i].Version)
		if err != nil {
			continue
		}
		if bestVer == nil || v.GreaterThan(bestVer) {
			best, bestVer = i, v
		}
	}
	return g.packages[best], true
}

// Versions returns every distinct version resolved for name, in insertion order.
func (g *ResolvedGraph) Versions(name string) []string {
	idxs := g.byName[name]
	out := make([]string, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, g.packages[i].Version)
	}
	return out
}

// Packages returns the resolved packages in insertion order.
func (g *ResolvedGraph) Packages() []ResolvedPackage {
	return slices.Clone(g.packages)
}

// Names returns the distinct package names, sorted.
func (g *ResolvedGraph) Names() []string {
	names := make([]string, 0, len(g.byName))
	for n := range g.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of resolved packages.
func (g *ResolvedGraph) Len() int {
	return len(g.packages)
}
