package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pkgcore/internal/core/domain"
)

func TestDefaultCapabilities(t *testing.T) {
	c := domain.DefaultCapabilities()
	assert.Equal(t, domain.DefaultMaxPackageSize, c.MaxPackageSize())
	assert.False(t, c.AllowScripts())
	assert.True(t, c.CanAccessNetwork("registry.npmjs.org"))
	assert.True(t, c.CanAccessNetwork("Registry.NPMJS.org:443"))
	assert.False(t, c.CanAccessNetwork("evil.example"))
	assert.False(t, c.CanWrite("/tmp"))
}

func TestForInstall_PathContainment(t *testing.T) {
	root := filepath.Join(t.TempDir(), "node_modules")
	c := domain.ForInstall(root)

	assert.True(t, c.CanWrite(root))
	assert.True(t, c.CanWrite(filepath.Join(root, "lodash")))
	assert.True(t, c.CanRead(filepath.Join(root, "@scope", "pkg")))
	assert.False(t, c.CanWrite(root+"bar"), "sibling sharing a prefix is outside")
	assert.False(t, c.CanWrite(filepath.Dir(root)))
	assert.False(t, c.CanWrite(filepath.Join(root, "..", "escape")))
}

func TestCapabilities_WithCopies(t *testing.T) {
	base := domain.DefaultCapabilities()

	derived := base.WithNetworkHosts("mirror.example", "MIRROR.example").
		WithMaxPackageSize(10).
		WithScripts(true).
		WithWritePaths("/srv/out")

	assert.True(t, derived.CanAccessNetwork("mirror.example"))
	assert.Len(t, derived.NetworkHosts(), 2)
	assert.Equal(t, uint64(10), derived.MaxPackageSize())
	assert.True(t, derived.AllowScripts())
	assert.True(t, derived.CanWrite("/srv/out/x"))

	assert.False(t, base.CanAccessNetwork("mirror.example"), "base must be unchanged")
	assert.Equal(t, domain.DefaultMaxPackageSize, base.MaxPackageSize())
	assert.False(t, base.AllowScripts())
	assert.False(t, base.CanWrite("/srv/out/x"))
}

func TestAuditResult_Blocked(t *testing.T) {
	clean := domain.AuditResult{Passed: true}
	assert.False(t, clean.Blocked())

	critical := domain.AuditResult{
		Passed:    true,
		RiskScore: 40,
		Issues: []domain.SecurityIssue{
			{Severity: domain.SeverityCritical, Category: domain.CategoryPathTraversal},
		},
	}
	assert.True(t, critical.HasCritical())
	assert.True(t, critical.Blocked(), "critical blocks below the score threshold")
	assert.True(t, critical.HasCategory(domain.CategoryPathTraversal))
	assert.False(t, critical.HasCategory(domain.CategoryExcessiveSize))

	failed := domain.AuditResult{Passed: false, RiskScore: 55}
	assert.True(t, failed.Blocked())
}

func TestAuditResult_Merge(t *testing.T) {
	a := domain.NewAuditResult([]domain.SecurityIssue{{Severity: domain.SeverityHigh, Category: domain.CategoryExcessiveSize}}, 30)
	b := domain.NewAuditResult([]domain.SecurityIssue{{Severity: domain.SeverityHigh, Category: domain.CategoryPermissionDenied}}, 25)
	assert.True(t, a.Passed)
	assert.True(t, b.Passed)

	merged := a.Merge(b)
	assert.Equal(t, 55, merged.RiskScore)
	assert.False(t, merged.Passed)
	assert.Len(t, merged.Issues, 2)

	capped := domain.NewAuditResult(nil, 140)
	assert.Equal(t, domain.MaxRiskScore, capped.RiskScore)
}
