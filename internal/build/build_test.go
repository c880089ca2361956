package build_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pkgcore/internal/build"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := build.Version, build.Commit, build.Date
	t.Cleanup(func() {
		build.Version, build.Commit, build.Date = origVersion, origCommit, origDate
	})

	build.Version, build.Commit, build.Date = "1.2.0", "", ""
	assert.Equal(t, "1.2.0", build.String())

	build.Commit = "abc123"
	assert.Equal(t, "1.2.0 (abc123)", build.String())

	build.Date = "2026-10-01"
	assert.Equal(t, "1.2.0 (abc123, 2026-10-01)", build.String())
}
