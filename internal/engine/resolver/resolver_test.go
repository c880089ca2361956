package resolver_test

import (
	"context"
	"errors"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgcore/internal/adapters/logger"
	"go.trai.ch/pkgcore/internal/adapters/telemetry"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports/mocks"
	"go.trai.ch/pkgcore/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

// release is one published version and its dependencies.
type release struct {
	version  string
	deps     map[string]string
	optional map[string]string
}

func doc(name, latest string, releases ...release) *domain.Metadata {
	m := &domain.Metadata{
		Name:     name,
		DistTags: map[string]string{},
		Versions: map[string]domain.VersionMetadata{},
	}
	if latest != "" {
		m.DistTags["latest"] = latest
	}
	for _, r := range releases {
		m.Versions[r.version] = domain.VersionMetadata{
			Name:                 name,
			Version:              r.version,
			Dependencies:         r.deps,
			OptionalDependencies: r.optional,
			Dist:                 domain.Dist{Tarball: "https://registry.test/" + name + "-" + r.version + ".tgz"},
		}
	}
	return m
}

// fakeRegistry serves docs from a map; unknown names are not found.
func fakeRegistry(ctrl *gomock.Controller, docs ...*domain.Metadata) *mocks.MockRegistry {
	byName := make(map[string]*domain.Metadata, len(docs))
	for _, d := range docs {
		byName[d.Name] = d
	}
	reg := mocks.NewMockRegistry(ctrl)
	reg.EXPECT().GetAbbreviated(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, name string) (*domain.Metadata, error) {
			if d, ok := byName[name]; ok {
				return d, nil
			}
			return nil, domain.NewPackageError(domain.ErrPackageNotFound, name, nil)
		}).AnyTimes()
	return reg
}

func newResolver(reg *mocks.MockRegistry, opts resolver.Options) *resolver.Resolver {
	if opts.Policy == "" {
		opts.Policy = domain.ConflictHighest
	}
	return resolver.New(reg, telemetry.NewNoop(), logger.NewNop(), opts)
}

func lodash() *domain.Metadata {
	return doc("lodash", "4.17.21",
		release{version: "4.16.6"},
		release{version: "4.17.0"},
		release{version: "4.17.20"},
		release{version: "4.17.21"},
		release{version: "5.0.0-beta.1"},
	)
}

func TestResolve_CaretPicksHighestMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newResolver(fakeRegistry(ctrl, lodash()), resolver.Options{})

	graph, err := r.Resolve(context.Background(), map[string]string{"lodash": "^4.17.0"})
	require.NoError(t, err)
	require.Equal(t, 1, graph.Len())

	pkg, ok := graph.Get("lodash")
	require.True(t, ok)
	assert.Equal(t, "4.17.21", pkg.Version)
	assert.Equal(t, "https://registry.test/lodash-4.17.21.tgz", pkg.TarballURL)
}

func TestResolve_ConstraintForms(t *testing.T) {
	next := lodash()
	next.DistTags["next"] = "5.0.0-beta.1"

	tests := []struct {
		constraint string
		want       string
	}{
		{constraint: "", want: "4.17.21"},
		{constraint: "*", want: "4.17.21"},
		{constraint: "latest", want: "4.17.21"},
		{constraint: "4.17.20", want: "4.17.20"},
		{constraint: "~4.16.0", want: "4.16.6"},
		{constraint: ">=4.0.0 <4.17.5", want: "4.17.0"},
		{constraint: "next", want: "5.0.0-beta.1"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			r := newResolver(fakeRegistry(ctrl, next), resolver.Options{})

			graph, err := r.Resolve(context.Background(), map[string]string{"lodash": tt.constraint})
			require.NoError(t, err)
			pkg, _ := graph.Get("lodash")
			assert.Equal(t, tt.want, pkg.Version)
		})
	}
}

func TestResolve_Transitive(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := fakeRegistry(ctrl,
		doc("express", "4.18.2", release{version: "4.18.2", deps: map[string]string{"debug": "2.6.9", "qs": "^6.11.0"}}),
		doc("debug", "4.3.4", release{version: "2.6.9", deps: map[string]string{"ms": "2.0.0"}}, release{version: "4.3.4"}),
		doc("qs", "6.11.2", release{version: "6.11.0"}, release{version: "6.11.2"}),
		doc("ms", "2.1.3", release{version: "2.0.0"}, release{version: "2.1.3"}),
	)
	r := newResolver(reg, resolver.Options{})

	graph, err := r.Resolve(context.Background(), map[string]string{"express": "^4.18.0"})
	require.NoError(t, err)
	assert.Equal(t, []string{"debug", "express", "ms", "qs"}, graph.Names())

	ms, _ := graph.Get("ms")
	assert.Equal(t, "2.0.0", ms.Version)
	debug, _ := graph.Get("debug")
	assert.Equal(t, map[string]string{"ms": "2.0.0"}, debug.Dependencies)
}

func TestResolve_VisitedByConstraintLiteral(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistry(ctrl)

	docs := map[string]*domain.Metadata{
		"a":      doc("a", "1.0.0", release{version: "1.0.0", deps: map[string]string{"shared": "^1.0.0"}}),
		"b":      doc("b", "1.0.0", release{version: "1.0.0", deps: map[string]string{"shared": "^1.0.0"}}),
		"shared": doc("shared", "1.0.0", release{version: "1.0.0"}),
	}
	reg.EXPECT().GetAbbreviated(gomock.Any(), "a").Return(docs["a"], nil).Times(1)
	reg.EXPECT().GetAbbreviated(gomock.Any(), "b").Return(docs["b"], nil).Times(1)
	reg.EXPECT().GetAbbreviated(gomock.Any(), "shared").Return(docs["shared"], nil).Times(1)

	graph, err := newResolver(reg, resolver.Options{}).Resolve(context.Background(), map[string]string{"a": "1.0.0", "b": "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, 3, graph.Len())
}

func diamond() []*domain.Metadata {
	return []*domain.Metadata{
		doc("a", "1.0.0", release{version: "1.0.0", deps: map[string]string{"c": "~1.0.0"}}),
		doc("b", "1.0.0", release{version: "1.0.0", deps: map[string]string{"c": "^1.0.0"}}),
		doc("c", "1.2.0", release{version: "1.0.0"}, release{version: "1.0.5"}, release{version: "1.2.0"}),
	}
}

func TestResolve_DivergentDiamond(t *testing.T) {
	deps := map[string]string{"a": "^1.0.0", "b": "^1.0.0"}

	t.Run("highest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newResolver(fakeRegistry(ctrl, diamond()...), resolver.Options{Policy: domain.ConflictHighest})

		graph, err := r.Resolve(context.Background(), deps)
		require.NoError(t, err)
		assert.Equal(t, []string{"1.0.5", "1.2.0"}, graph.Versions("c"))
		c, _ := graph.Get("c")
		assert.Equal(t, "1.2.0", c.Version)
	})

	t.Run("first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newResolver(fakeRegistry(ctrl, diamond()...), resolver.Options{Policy: domain.ConflictFirst})

		graph, err := r.Resolve(context.Background(), deps)
		require.NoError(t, err)
		c, _ := graph.Get("c")
		assert.Equal(t, "1.0.5", c.Version)
	})

	t.Run("error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newResolver(fakeRegistry(ctrl, diamond()...), resolver.Options{Policy: domain.ConflictError})

		graph, err := r.Resolve(context.Background(), deps)
		require.ErrorIs(t, err, domain.ErrVersionConflict)
		assert.Nil(t, graph)

		var perr *domain.PackageError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "c", perr.Package)
	})
}

func TestResolve_ConvergentDiamondIsOneNode(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := diamond()
	docs[0].Versions["1.0.0"].Dependencies["c"] = "^1.0.0"
	r := newResolver(fakeRegistry(ctrl, docs...), resolver.Options{Policy: domain.ConflictError})

	graph, err := r.Resolve(context.Background(), map[string]string{"a": "1.0.0", "b": "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.2.0"}, graph.Versions("c"))
}

func TestResolve_ErrorsAbortWithoutGraph(t *testing.T) {
	tests := []struct {
		name string
		deps map[string]string
		kind error
		text string
	}{
		{name: "missing package", deps: map[string]string{"lodash": "^4.0.0", "nope": "1.0.0"}, kind: domain.ErrPackageNotFound, text: "nope"},
		{name: "unsatisfiable", deps: map[string]string{"lodash": "^9.0.0"}, kind: domain.ErrConstraintUnsatisfiable, text: "^9.0.0"},
		{name: "invalid constraint", deps: map[string]string{"lodash": "not a range!"}, kind: domain.ErrInvalidConstraint, text: "lodash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			r := newResolver(fakeRegistry(ctrl, lodash()), resolver.Options{})

			graph, err := r.Resolve(context.Background(), tt.deps)
			require.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.text)
			assert.Nil(t, graph)
		})
	}
}

func TestResolve_NoLatestTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newResolver(fakeRegistry(ctrl, doc("untagged", "", release{version: "1.0.0"})), resolver.Options{})

	_, err := r.Resolve(context.Background(), map[string]string{"untagged": "*"})
	require.ErrorIs(t, err, domain.ErrNoLatestTag)
}

func TestResolve_MaxPackages(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := fakeRegistry(ctrl,
		doc("a", "1.0.0", release{version: "1.0.0"}),
		doc("b", "1.0.0", release{version: "1.0.0"}),
	)
	r := newResolver(reg, resolver.Options{MaxPackages: 1})

	_, err := r.Resolve(context.Background(), map[string]string{"a": "1.0.0", "b": "1.0.0"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrResolutionLimit.Error())
}

func TestResolve_OptionalDependencies(t *testing.T) {
	chokidar := func() *domain.Metadata {
		return doc("chokidar", "3.5.3", release{
			version:  "3.5.3",
			deps:     map[string]string{"fsevents": "~2.3.2", "braces": "~3.0.2"},
			optional: map[string]string{"fsevents": "~2.3.2"},
		})
	}
	braces := doc("braces", "3.0.2", release{version: "3.0.2"})

	t.Run("included failures are skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newResolver(fakeRegistry(ctrl, chokidar(), braces), resolver.Options{IncludeOptional: true})

		graph, err := r.Resolve(context.Background(), map[string]string{"chokidar": "^3.5.0"})
		require.NoError(t, err)
		assert.Equal(t, []string{"braces", "chokidar"}, graph.Names())
	})

	t.Run("required when not included", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newResolver(fakeRegistry(ctrl, chokidar(), braces), resolver.Options{})

		_, err := r.Resolve(context.Background(), map[string]string{"chokidar": "^3.5.0"})
		require.ErrorIs(t, err, domain.ErrPackageNotFound)
	})

	t.Run("optional only entries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		manifest := chokidar()
		v := manifest.Versions["3.5.3"]
		v.Dependencies = maps.Clone(v.Dependencies)
		delete(v.Dependencies, "fsevents")
		manifest.Versions["3.5.3"] = v

		r := newResolver(fakeRegistry(ctrl, manifest, braces), resolver.Options{})
		graph, err := r.Resolve(context.Background(), map[string]string{"chokidar": "^3.5.0"})
		require.NoError(t, err)
		assert.Equal(t, 2, graph.Len())
	})
}

func TestResolve_RequiresPolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := resolver.New(mocks.NewMockRegistry(ctrl), telemetry.NewNoop(), logger.NewNop(), resolver.Options{})

	_, err := r.Resolve(context.Background(), map[string]string{"a": "1"})
	require.ErrorIs(t, err, domain.ErrConflictPolicyRequired)
}

func TestResolve_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newResolver(mocks.NewMockRegistry(ctrl), resolver.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, map[string]string{"lodash": "^4.0.0"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolve_RecordsVertices(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := fakeRegistry(ctrl,
		doc("a", "1.0.0", release{version: "1.0.0", deps: map[string]string{"b": "^1.0.0"}}),
		doc("b", "1.1.0", release{version: "1.1.0"}),
	)
	tel := telemetry.NewMemory()
	r := resolver.New(reg, tel, logger.NewNop(), resolver.Options{Policy: domain.ConflictError})

	_, err := r.Resolve(context.Background(), map[string]string{"a": "1.0.0"})
	require.NoError(t, err)

	parent, ok := tel.Find("resolve a@1.0.0")
	require.True(t, ok)
	assert.Equal(t, domain.VertexStatusCompleted, parent.Status)

	child, ok := tel.Find("resolve b@^1.0.0")
	require.True(t, ok)
	assert.Equal(t, []string{"resolve a@1.0.0"}, child.Inputs)
	assert.Contains(t, child.Output, "selected 1.1.0")
}

func TestSolve_Direct(t *testing.T) {
	v, err := resolver.Solve("lodash", "4.x", lodash())
	require.NoError(t, err)
	assert.Equal(t, "4.17.21", v.Version, "prereleases are excluded from ranges")
}

func TestSolve_PublishedKeyWinsBeforeParsing(t *testing.T) {
	meta := doc("legacy", "1.0.0",
		release{version: "1.0.0"},
		release{version: "1.0.0_beta"},
	)

	v, err := resolver.Solve("legacy", "1.0.0_beta", meta)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0_beta", v.Version)

	_, err = resolver.Solve("legacy", "1.0.1_beta", meta)
	require.ErrorIs(t, err, domain.ErrInvalidConstraint)
}
