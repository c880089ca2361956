package domain

import (
	"errors"
	"fmt"
	"io"

	"go.trai.ch/zerr"
)

var (
	// ErrNetwork is returned for transport failures and unexpected non-2xx registry responses.
	ErrNetwork = zerr.New("network error")

	// ErrPackageNotFound is returned when the registry has no package with the requested name.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrParse is returned when a registry response body cannot be decoded.
	ErrParse = zerr.New("failed to parse registry response")

	// ErrDownloadFailed is returned when a tarball endpoint answers with a non-2xx status.
	ErrDownloadFailed = zerr.New("tarball download failed")

	// ErrInvalidConstraint is returned when a constraint string is not a valid semver range.
	ErrInvalidConstraint = zerr.New("invalid version constraint")

	// ErrConstraintUnsatisfiable is returned when no published version matches a constraint.
	ErrConstraintUnsatisfiable = zerr.New("no matching version found for constraint")

	// ErrNoLatestTag is returned when a package has no "latest" dist-tag.
	ErrNoLatestTag = zerr.New("no 'latest' dist-tag found")

	// ErrVersionNotFound is returned when a solved version is missing from the metadata.
	ErrVersionNotFound = zerr.New("version not found in metadata")

	// ErrVersionConflict is returned when two versions of one package resolve under the error-on-conflict policy.
	ErrVersionConflict = zerr.New("conflicting versions resolved for package")

	// ErrConflictPolicyRequired is returned when a resolved graph is built without a conflict policy.
	ErrConflictPolicyRequired = zerr.New("a conflict policy must be configured, expected 'highest', 'first' or 'error'")

	// ErrResolutionLimit is returned when resolution exceeds the configured package limit.
	ErrResolutionLimit = zerr.New("resolution exceeded maximum package count")

	// ErrIntegrityMismatch is returned when content does not hash to the expected value.
	ErrIntegrityMismatch = zerr.New("integrity check failed")

	// ErrSecurityViolation is returned when an audit blocks a package.
	ErrSecurityViolation = zerr.New("security audit blocked package")

	// ErrNetworkDenied is returned when a host is not in the capability allow-list.
	ErrNetworkDenied = zerr.New("network access denied for host")

	// ErrInvalidURL is returned when a tarball URL cannot be parsed.
	ErrInvalidURL = zerr.New("invalid url")

	// ErrInvalidHash is returned when a content hash string is not 16 hex digits.
	ErrInvalidHash = zerr.New("invalid content hash")

	// ErrCacheCreateFailed is returned when the cache root cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheReadFailed is returned when a disk cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache entry")

	// ErrCacheWriteFailed is returned when a disk cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheScanFailed is returned when the cache root cannot be listed.
	ErrCacheScanFailed = zerr.New("failed to scan cache directory")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrManifestReadFailed is returned when a package manifest cannot be read or decoded.
	ErrManifestReadFailed = zerr.New("failed to read package manifest")

	// ErrInvalidDependencySpec is returned when a dependency argument is not of the form name@constraint.
	ErrInvalidDependencySpec = zerr.New("invalid dependency specification, expected format: name@constraint")

	// ErrNoDependencies is returned when an operation is started without any dependency.
	ErrNoDependencies = zerr.New("no dependencies specified")
)

// PackageError ties a taxonomy error to the package it concerns.
// It unwraps to both Kind and the underlying cause, so errors.Is matches either.
type PackageError struct {
	Kind    error
	Package string
	Err     error
}

// NewPackageError creates a PackageError. err may be nil.
func NewPackageError(kind error, pkg string, err error) *PackageError {
	return &PackageError{Kind: kind, Package: pkg, Err: err}
}

func (e *PackageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Package)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Package, e.Err)
}

// Format renders %+v as a zerr report with the package as an attribute.
func (e *PackageError) Format(s fmt.State, verb rune) {
	formatReport(s, verb, e.Error(), e.report)
}

func (e *PackageError) report() error {
	err := e.Kind
	if e.Err != nil {
		err = zerr.Wrap(e.Err, e.Kind.Error())
	}
	return zerr.With(err, "package", e.Package)
}

// Unwrap returns the taxonomy kind and the cause.
func (e *PackageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IntegrityError reports a content hash mismatch. It is never recoverable.
type IntegrityError struct {
	Package  string
	Expected string
	Actual   string
}

func (e *IntegrityError) Error() string {
	if e.Package == "" {
		return fmt.Sprintf("%s: expected %s, got %s", ErrIntegrityMismatch, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s for %s: expected %s, got %s", ErrIntegrityMismatch, e.Package, e.Expected, e.Actual)
}

// Format renders %+v as a zerr report with the package and both hashes as attributes.
func (e *IntegrityError) Format(s fmt.State, verb rune) {
	formatReport(s, verb, e.Error(), e.report)
}

func (e *IntegrityError) report() error {
	err := zerr.With(ErrIntegrityMismatch, "expected", e.Expected)
	err = zerr.With(err, "actual", e.Actual)
	if e.Package != "" {
		err = zerr.With(err, "package", e.Package)
	}
	return err
}

// Unwrap returns ErrIntegrityMismatch.
func (e *IntegrityError) Unwrap() error { return ErrIntegrityMismatch }

func formatReport(s fmt.State, verb rune, msg string, report func() error) {
	switch {
	case verb == 'v' && s.Flag('+'):
		_, _ = fmt.Fprintf(s, "%+v", report())
	case verb == 'q':
		_, _ = fmt.Fprintf(s, "%q", msg)
	default:
		_, _ = io.WriteString(s, msg)
	}
}

// RetryableError marks a transient failure, such as a transport error or a 5xx response.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the transient cause.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether any error in err's chain is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}
