package domain

import (
	"maps"

	"github.com/Masterminds/semver/v3"
)

// PackageID uniquely identifies one resolved artifact.
type PackageID struct {
	Name    string
	Version *semver.Version
}

// String returns name@version.
func (id PackageID) String() string {
	if id.Version == nil {
		return id.Name
	}
	return id.Name + "@" + id.Version.Original()
}

// ResolvedPackage is one node of a ResolvedGraph.
type ResolvedPackage struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	TarballURL       string            `json:"tarball_url"`
	Shasum           string            `json:"shasum,omitempty"`
	Integrity        string            `json:"integrity,omitempty"`
	HasInstallScript bool              `json:"has_install_script,omitempty"`
	Dependencies     map[string]string `json:"dependencies"`

	OptionalDependencies map[string]string `json:"optional_dependencies,omitempty"`
}

// NewResolvedPackage builds a ResolvedPackage from the metadata of the chosen version.
func NewResolvedPackage(name string, v VersionMetadata) ResolvedPackage {
	deps := maps.Clone(v.Dependencies)
	if deps == nil {
		deps = make(map[string]string)
	}
	return ResolvedPackage{
		Name:             name,
		Version:          v.Version,
		TarballURL:       v.Dist.Tarball,
		Shasum:           v.Dist.Shasum,
		Integrity:        v.Dist.Integrity,
		HasInstallScript: v.HasInstallScript,
		Dependencies:     deps,

		OptionalDependencies: maps.Clone(v.OptionalDependencies),
	}
}

// ID returns the PackageID of the package. The version is nil if it is not valid semver.
func (p ResolvedPackage) ID() PackageID {
	v, _ := semver.NewVersion(p.Version)
	return PackageID{Name: p.Name, Version: v}
}

// Key returns name@version.
func (p ResolvedPackage) Key() string {
	return p.Name + "@" + p.Version
}

// Dist holds tarball location and registry-provided checksums.
type Dist struct {
	Tarball      string `json:"tarball"`
	Shasum       string `json:"shasum"`
	Integrity    string `json:"integrity,omitempty"`
	FileCount    int    `json:"fileCount,omitempty"`
	UnpackedSize uint64 `json:"unpackedSize,omitempty"`
}

// VersionMetadata describes one published version in abbreviated metadata.
type VersionMetadata struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty"`
	HasInstallScript     bool              `json:"hasInstallScript,omitempty"`
	Dist                 Dist              `json:"dist"`
}

// Metadata is the abbreviated registry document used during resolution.
type Metadata struct {
	Name     string                     `json:"name"`
	Modified string                     `json:"modified,omitempty"`
	DistTags map[string]string          `json:"dist-tags"`
	Versions map[string]VersionMetadata `json:"versions"`
}

// FullVersionMetadata describes one published version in the full registry document.
type FullVersionMetadata struct {
	VersionMetadata

	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	Description     string            `json:"description,omitempty"`
	License         any               `json:"license,omitempty"`
	Main            string            `json:"main,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
}

// FullMetadata is the complete registry document for a package.
type FullMetadata struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description,omitempty"`
	DistTags    map[string]string              `json:"dist-tags"`
	Versions    map[string]FullVersionMetadata `json:"versions"`
	Time        map[string]string              `json:"time,omitempty"`
}
