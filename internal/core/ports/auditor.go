package ports

import "go.trai.ch/pkgcore/internal/core/domain"

// Auditor defines the interface for checking artifacts against a fixed set of capabilities.
//
//go:generate go run go.uber.org/mock/mockgen -source=auditor.go -destination=mocks/mock_auditor.go -package=mocks
type Auditor interface {
	// AuditPackage scores the destination path and size of an artifact.
	AuditPackage(path string, expected domain.ContentHash, size uint64) domain.AuditResult

	// AuditScripts reports install scripts that the capabilities do not allow.
	AuditScripts(name string, hasInstallScript bool) domain.AuditResult

	// VerifyIntegrity recomputes the content hash of data and compares it with expected.
	VerifyIntegrity(data []byte, expected domain.ContentHash) error

	// VerifyRegistryDigest checks data against the registry-provided integrity or shasum.
	VerifyRegistryDigest(data []byte, shasum, integrity string) error

	// CheckNetworkAccess rejects hosts outside the allow-list.
	CheckNetworkAccess(host string) error

	// CheckURL extracts the host of rawURL and applies CheckNetworkAccess.
	CheckURL(rawURL string) error

	// Capabilities returns the permission set the auditor checks against.
	Capabilities() domain.Capabilities
}

// AuditorFactory builds auditors bound to explicit capabilities.
type AuditorFactory interface {
	ForCapabilities(caps domain.Capabilities) Auditor
}
