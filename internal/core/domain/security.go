package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Severity grades a SecurityIssue.
type Severity int

const (
	// SeverityLow is informational.
	SeverityLow Severity = iota
	// SeverityMedium warrants a warning.
	SeverityMedium
	// SeverityHigh contributes heavily to the risk score.
	SeverityHigh
	// SeverityCritical blocks the package regardless of score.
	SeverityCritical
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Category classifies a SecurityIssue.
type Category string

const (
	CategoryPathTraversal       Category = "path_traversal"
	CategoryIntegrityViolation  Category = "integrity_violation"
	CategoryExcessiveSize       Category = "excessive_size"
	CategorySuspiciousScript    Category = "suspicious_script"
	CategoryUnauthorizedNetwork Category = "unauthorized_network"
	CategoryPermissionDenied    Category = "permission_denied"
)

// SecurityIssue is one finding of an audit.
type SecurityIssue struct {
	Severity    Severity `json:"severity"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
}

// AuditResult is the verdict for one artifact. It is computed fresh on every audit.
type AuditResult struct {
	Passed    bool            `json:"passed"`
	Issues    []SecurityIssue `json:"issues,omitempty"`
	RiskScore int             `json:"risk_score"`
}

const (
	// RiskThreshold is the score at which an audit fails.
	RiskThreshold = 50
	// MaxRiskScore caps the sum of issue weights.
	MaxRiskScore = 100
)

// NewAuditResult caps score and derives Passed from it.
func NewAuditResult(issues []SecurityIssue, score int) AuditResult {
	score = min(score, MaxRiskScore)
	return AuditResult{
		Passed:    score < RiskThreshold,
		Issues:    issues,
		RiskScore: score,
	}
}

// Merge combines r and o into one verdict.
func (r AuditResult) Merge(o AuditResult) AuditResult {
	issues := make([]SecurityIssue, 0, len(r.Issues)+len(o.Issues))
	issues = append(issues, r.Issues...)
	issues = append(issues, o.Issues...)
	return NewAuditResult(issues, r.RiskScore+o.RiskScore)
}

// HasCritical reports whether any issue is Critical.
func (r AuditResult) HasCritical() bool {
	return slices.ContainsFunc(r.Issues, func(i SecurityIssue) bool {
		return i.Severity == SeverityCritical
	})
}

// Blocked reports whether the artifact must not be installed.
// A Critical issue blocks even when the score stays below the threshold.
func (r AuditResult) Blocked() bool {
	return !r.Passed || r.HasCritical()
}

// HasCategory reports whether any issue belongs to c.
func (r AuditResult) HasCategory(c Category) bool {
	return slices.ContainsFunc(r.Issues, func(i SecurityIssue) bool {
		return i.Category == c
	})
}

// DefaultMaxPackageSize is the size limit of DefaultCapabilities (100 MiB).
const DefaultMaxPackageSize uint64 = 100 * 1024 * 1024

// DefaultRegistryHost is the only network host of DefaultCapabilities.
const DefaultRegistryHost = "registry.npmjs.org"

// Capabilities is the permission set an audit is checked against.
// Values are immutable; With* methods return modified copies.
type Capabilities struct {
	readPaths      []string
	writePaths     []string
	networkHosts   []string
	allowScripts   bool
	maxPackageSize uint64
}

// DefaultCapabilities allows the npm registry host, no scripts, no paths and 100 MiB packages.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		networkHosts:   []string{DefaultRegistryHost},
		maxPackageSize: DefaultMaxPackageSize,
	}
}

// ForInstall extends DefaultCapabilities with read and write access to dir.
func ForInstall(dir string) Capabilities {
	c := DefaultCapabilities()
	clean := filepath.Clean(dir)
	c.readPaths = []string{clean}
	c.writePaths = []string{clean}
	return c
}

// WithNetworkHosts returns a copy that additionally allows hosts.
func (c Capabilities) WithNetworkHosts(hosts ...string) Capabilities {
	out := c.clone()
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" && !slices.Contains(out.networkHosts, h) {
			out.networkHosts = append(out.networkHosts, h)
		}
	}
	return out
}

// WithReadPaths returns a copy that additionally allows reading below paths.
func (c Capabilities) WithReadPaths(paths ...string) Capabilities {
	out := c.clone()
	for _, p := range paths {
		out.readPaths = append(out.readPaths, filepath.Clean(p))
	}
	return out
}

// WithWritePaths returns a copy that additionally allows writing below paths.
func (c Capabilities) WithWritePaths(paths ...string) Capabilities {
	out := c.clone()
	for _, p := range paths {
		out.writePaths = append(out.writePaths, filepath.Clean(p))
	}
	return out
}

// WithMaxPackageSize returns a copy with a different size limit.
func (c Capabilities) WithMaxPackageSize(n uint64) Capabilities {
	out := c.clone()
	out.maxPackageSize = n
	return out
}

// WithScripts returns a copy with install scripts allowed or disallowed.
func (c Capabilities) WithScripts(allow bool) Capabilities {
	out := c.clone()
	out.allowScripts = allow
	return out
}

// MaxPackageSize returns the size limit in bytes.
func (c Capabilities) MaxPackageSize() uint64 { return c.maxPackageSize }

// AllowScripts reports whether install scripts are permitted.
func (c Capabilities) AllowScripts() bool { return c.allowScripts }

// NetworkHosts returns a copy of the host allow-list.
func (c Capabilities) NetworkHosts() []string { return slices.Clone(c.networkHosts) }

// CanRead reports whether path lies at or below a read path.
func (c Capabilities) CanRead(path string) bool {
	return withinAny(c.readPaths, path)
}

// CanWrite reports whether path lies at or below a write path.
func (c Capabilities) CanWrite(path string) bool {
	return withinAny(c.writePaths, path)
}

// CanAccessNetwork reports whether host is in the allow-list. Comparison is case-insensitive
// and ignores a trailing port.
func (c Capabilities) CanAccessNetwork(host string) bool {
	host = strings.ToLower(host)
	if h, _, ok := strings.Cut(host, ":"); ok && !strings.Contains(h, "[") {
		host = h
	}
	return slices.Contains(c.networkHosts, host)
}

func (c Capabilities) clone() Capabilities {
	return Capabilities{
		readPaths:      slices.Clone(c.readPaths),
		writePaths:     slices.Clone(c.writePaths),
		networkHosts:   slices.Clone(c.networkHosts),
		allowScripts:   c.allowScripts,
		maxPackageSize: c.maxPackageSize,
	}
}

// withinAny compares path components, so /tmp/foo does not contain /tmp/foobar.
func withinAny(roots []string, path string) bool {
	target := filepath.Clean(path)
	for _, root := range roots {
		rel, err := filepath.Rel(root, target)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// PackageDest returns the install destination of a package below root.
// The name is not cleaned, so traversal segments stay visible to an audit.
func PackageDest(root, name string) string {
	return filepath.Clean(root) + string(filepath.Separator) + filepath.FromSlash(name)
}
