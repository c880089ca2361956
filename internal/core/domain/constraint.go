package domain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// ConstraintKind tags the variant held by a VersionConstraint.
type ConstraintKind int

const (
	// ConstraintExact pins one version ("1.2.3").
	ConstraintExact ConstraintKind = iota
	// ConstraintRange is any other semver range expression (">=1 <2", "1.x || 2.x").
	ConstraintRange
	// ConstraintCaret allows changes that keep the left-most non-zero component ("^1.2.3").
	ConstraintCaret
	// ConstraintTilde allows patch-level changes ("~1.2.3").
	ConstraintTilde
	// ConstraintLatest follows the "latest" dist-tag ("", "*", "latest").
	ConstraintLatest
	// ConstraintTag follows a named dist-tag ("next", "beta").
	ConstraintTag
)

// String returns the lowercase kind name.
func (k ConstraintKind) String() string {
	switch k {
	case ConstraintExact:
		return "exact"
	case ConstraintRange:
		return "range"
	case ConstraintCaret:
		return "caret"
	case ConstraintTilde:
		return "tilde"
	case ConstraintLatest:
		return "latest"
	case ConstraintTag:
		return "tag"
	default:
		return "unknown"
	}
}

// VersionConstraint is a parsed dependency constraint.
// Version is set for Exact, Caret and Tilde. Min and Max bound the accepted
// versions (Max exclusive for Caret and Tilde, inclusive for hyphen ranges)
// when they can be derived. Tag is set for ConstraintTag.
type VersionConstraint struct {
	Kind    ConstraintKind
	Raw     string
	Version *semver.Version
	Min     *semver.Version
	Max     *semver.Version
	Tag     string

	constraints *semver.Constraints
}

// LatestTag is the dist-tag that Latest constraints follow.
const LatestTag = "latest"

// ParseConstraint classifies and compiles a constraint string.
func ParseConstraint(raw string) (VersionConstraint, error) {
	s := strings.TrimSpace(raw)
	c := VersionConstraint{Raw: raw}

	switch {
	case s == "" || s == "*" || s == LatestTag:
		c.Kind = ConstraintLatest
		c.Tag = LatestTag
		return c, nil
	case strings.HasPrefix(s, "^"):
		if v, err := semver.NewVersion(strings.TrimSpace(s[1:])); err == nil && isSingleTerm(s[1:]) {
			c.Kind = ConstraintCaret
			c.Version = v
			c.Min = v
			c.Max = caretCeiling(v, strings.TrimSpace(s[1:]))
		}
	case strings.HasPrefix(s, "~") && !strings.HasPrefix(s, "~>"):
		if v, err := semver.NewVersion(strings.TrimSpace(s[1:])); err == nil && isSingleTerm(s[1:]) {
			c.Kind = ConstraintTilde
			c.Version = v
			c.Min = v
			c.Max = tildeCeiling(v, strings.TrimSpace(s[1:]))
		}
	default:
		if v, err := semver.StrictNewVersion(strings.TrimPrefix(strings.TrimPrefix(s, "="), "v")); err == nil {
			c.Kind = ConstraintExact
			c.Version = v
			c.Min = v
			c.Max = v
		} else if isTagName(s) {
			c.Kind = ConstraintTag
			c.Tag = s
			return c, nil
		}
	}

	compiled, err := semver.NewConstraint(s)
	if err != nil {
		return VersionConstraint{}, zerr.With(zerr.Wrap(err, ErrInvalidConstraint.Error()), "constraint", raw)
	}
	c.constraints = compiled

	if c.Version == nil {
		c.Kind = ConstraintRange
		c.Min, c.Max = rangeBounds(s)
	}
	return c, nil
}

// Matches reports whether v satisfies the constraint.
// Latest matches every version; Tag matches none, since tags are resolved by name.
func (c VersionConstraint) Matches(v *semver.Version) bool {
	switch c.Kind {
	case ConstraintLatest:
		return true
	case ConstraintTag:
		return false
	case ConstraintExact:
		return c.Version.Equal(v)
	default:
		return c.constraints != nil && c.constraints.Check(v)
	}
}

// String returns the raw constraint.
func (c VersionConstraint) String() string { return c.Raw }

func isSingleTerm(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !strings.ContainsAny(s, " ,|<>=")
}

// caretCeiling returns the exclusive upper bound of ^v, following npm:
// ^1.2.3 < 2.0.0, ^0.2.3 < 0.3.0, ^0.0.3 < 0.0.4.
func caretCeiling(v *semver.Version, original string) *semver.Version {
	parts := strings.Count(strings.TrimPrefix(original, "v"), ".") + 1
	var next semver.Version
	switch {
	case v.Major() > 0 || parts == 1:
		next = v.IncMajor()
	case v.Minor() > 0 || parts == 2:
		next = v.IncMinor()
	default:
		next = v.IncPatch()
	}
	return &next
}

// tildeCeiling returns the exclusive upper bound of ~v: ~1.2.3 < 1.3.0, ~1 < 2.0.0.
func tildeCeiling(v *semver.Version, original string) *semver.Version {
	var next semver.Version
	if strings.Count(strings.TrimPrefix(original, "v"), ".") == 0 {
		next = v.IncMajor()
	} else {
		next = v.IncMinor()
	}
	return &next
}

// rangeBounds derives bounds for "a - b" and ">=a <b" forms. Other forms yield nil bounds.
func rangeBounds(s string) (lo, hi *semver.Version) {
	if strings.Contains(s, "||") {
		return nil, nil
	}
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) == 3 && fields[1] == "-" {
		lo, _ = semver.NewVersion(fields[0])
		hi, _ = semver.NewVersion(fields[2])
		return lo, hi
	}
	for _, f := range fields {
		switch {
		case strings.HasPrefix(f, ">="):
			lo, _ = semver.NewVersion(f[2:])
		case strings.HasPrefix(f, ">"):
			lo, _ = semver.NewVersion(f[1:])
		case strings.HasPrefix(f, "<="):
			hi, _ = semver.NewVersion(f[2:])
		case strings.HasPrefix(f, "<"):
			hi, _ = semver.NewVersion(f[1:])
		}
	}
	return lo, hi
}

// isTagName reports whether s looks like a dist-tag rather than a range.
func isTagName(s string) bool {
	if s == "" {
		return false
	}
	first := s[0]
	if (first == 'x' || first == 'X') && (len(s) == 1 || s[1] == '.') {
		return false
	}
	if (first < 'a' || first > 'z') && (first < 'A' || first > 'Z') {
		return false
	}
	if (first == 'v' || first == 'V') && len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
		return false
	}
	for i := 1; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_', ch == '.':
		default:
			return false
		}
	}
	return true
}
