// Package security implements capability-based auditing and integrity verification of package artifacts.
package security

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // registry shasums are sha1
	_ "crypto/sha256" // registers sha256 for go-digest
	_ "crypto/sha512" // registers sha384 and sha512 for go-digest
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/pkgcore/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	weightPathTraversal = 40
	weightExcessiveSize = 30
	weightPermission    = 25
	weightScripts       = 10
)

// Auditor implements ports.Auditor for one fixed set of capabilities.
type Auditor struct {
	caps domain.Capabilities
}

// NewAuditor creates an Auditor bound to caps.
func NewAuditor(caps domain.Capabilities) *Auditor {
	return &Auditor{caps: caps}
}

// Capabilities returns the permission set of the auditor.
func (a *Auditor) Capabilities() domain.Capabilities {
	return a.caps
}

// AuditPackage scores path and size. Weights add up and are capped at 100.
func (a *Auditor) AuditPackage(path string, expected domain.ContentHash, size uint64) domain.AuditResult {
	var issues []domain.SecurityIssue
	score := 0

	if !a.isSafePath(path) {
		issues = append(issues, domain.SecurityIssue{
			Severity:    domain.SeverityCritical,
			Category:    domain.CategoryPathTraversal,
			Description: fmt.Sprintf("path traversal attempt detected: %s (content %s)", path, expected),
		})
		score += weightPathTraversal
	}

	if limit := a.caps.MaxPackageSize(); size > limit {
		issues = append(issues, domain.SecurityIssue{
			Severity:    domain.SeverityHigh,
			Category:    domain.CategoryExcessiveSize,
			Description: fmt.Sprintf("package size %d exceeds limit %d", size, limit),
		})
		score += weightExcessiveSize
	}

	if !a.caps.CanWrite(path) {
		issues = append(issues, domain.SecurityIssue{
			Severity:    domain.SeverityHigh,
			Category:    domain.CategoryPermissionDenied,
			Description: fmt.Sprintf("no write permission for %s", path),
		})
		score += weightPermission
	}

	return domain.NewAuditResult(issues, score)
}

func (a *Auditor) isSafePath(path string) bool {
	if strings.Contains(path, "..") || strings.Contains(path, "~") {
		return false
	}
	return a.caps.CanWrite(path)
}

// AuditScripts reports an install script as suspicious unless scripts are allowed.
func (a *Auditor) AuditScripts(name string, hasInstallScript bool) domain.AuditResult {
	if !hasInstallScript || a.caps.AllowScripts() {
		return domain.NewAuditResult(nil, 0)
	}
	return domain.NewAuditResult([]domain.SecurityIssue{{
		Severity:    domain.SeverityMedium,
		Category:    domain.CategorySuspiciousScript,
		Description: fmt.Sprintf("%s declares install scripts, which are not allowed and will not run", name),
	}}, weightScripts)
}

// VerifyIntegrity recomputes the content hash of data and compares it with expected.
func (a *Auditor) VerifyIntegrity(data []byte, expected domain.ContentHash) error {
	if actual := domain.HashBytes(data); actual != expected {
		return &domain.IntegrityError{Expected: expected.String(), Actual: actual.String()}
	}
	return nil
}

// VerifyRegistryDigest checks data against an SRI integrity string (preferred) or a hex sha1 shasum.
// With neither present there is nothing to verify.
func (a *Auditor) VerifyRegistryDigest(data []byte, shasum, integrity string) error {
	if integrity != "" {
		return verifySRI(data, integrity)
	}
	if shasum == "" {
		return nil
	}
	sum := sha1.Sum(data) //nolint:gosec // registry shasums are sha1
	actual := hex.EncodeToString(sum[:])
	if !strings.EqualFold(actual, shasum) {
		return &domain.IntegrityError{Expected: "sha1:" + strings.ToLower(shasum), Actual: "sha1:" + actual}
	}
	return nil
}

// verifySRI accepts space-separated "algo-base64" entries and succeeds if any supported entry matches.
func verifySRI(data []byte, integrity string) error {
	var lastErr error
	for _, entry := range strings.Fields(integrity) {
		algo, encoded, ok := strings.Cut(entry, "-")
		if !ok {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			lastErr = zerr.With(zerr.Wrap(err, domain.ErrIntegrityMismatch.Error()), "integrity", entry)
			continue
		}

		var matched bool
		var actual string
		switch algo {
		case "sha512", "sha384", "sha256":
			d := digest.NewDigestFromEncoded(digest.Algorithm(algo), hex.EncodeToString(raw))
			if err := d.Validate(); err != nil {
				lastErr = zerr.With(zerr.Wrap(err, domain.ErrIntegrityMismatch.Error()), "integrity", entry)
				continue
			}
			verifier := d.Verifier()
			_, _ = verifier.Write(data)
			matched = verifier.Verified()
			actual = d.Algorithm().FromBytes(data).String()
		case "sha1":
			sum := sha1.Sum(data) //nolint:gosec // legacy SRI entries
			matched = bytes.Equal(sum[:], raw)
			actual = "sha1:" + hex.EncodeToString(sum[:])
		default:
			continue
		}

		if matched {
			return nil
		}
		lastErr = &domain.IntegrityError{Expected: algo + ":" + hex.EncodeToString(raw), Actual: actual}
	}
	if lastErr == nil {
		return zerr.With(zerr.New("no supported integrity algorithm"), "integrity", integrity)
	}
	return lastErr
}

// CheckNetworkAccess rejects hosts outside the allow-list.
func (a *Auditor) CheckNetworkAccess(host string) error {
	if !a.caps.CanAccessNetwork(host) {
		return zerr.With(domain.ErrNetworkDenied, "host", host)
	}
	return nil
}

// CheckURL extracts the host of rawURL and applies CheckNetworkAccess.
func (a *Auditor) CheckURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		if err == nil {
			err = domain.ErrInvalidURL
		}
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidURL.Error()), "url", rawURL)
	}
	return a.CheckNetworkAccess(u.Hostname())
}

// Factory implements ports.AuditorFactory.
type Factory struct{}

// NewFactory creates a Factory.
func NewFactory() ports.AuditorFactory {
	return Factory{}
}

// ForCapabilities returns an Auditor bound to caps.
func (Factory) ForCapabilities(caps domain.Capabilities) ports.Auditor {
	return NewAuditor(caps)
}
