package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/pkgcore/internal/adapters/config"
	"go.trai.ch/pkgcore/internal/core/domain"
	"go.trai.ch/zerr"
)

// ParseDependency splits name@constraint. A bare name resolves the latest version.
// Scoped names keep their leading @, as in @types/node@^20.
func ParseDependency(spec string) (name, constraint string, err error) {
	at := strings.LastIndex(spec, "@")
	if at <= 0 {
		name, constraint = spec, "latest"
	} else {
		name, constraint = spec[:at], spec[at+1:]
	}

	if !validName(name) || strings.TrimSpace(constraint) == "" {
		return "", "", zerr.With(domain.ErrInvalidDependencySpec, "spec", spec)
	}
	return name, constraint, nil
}

func validName(name string) bool {
	if name == "" || strings.ContainsAny(name, " \t") {
		return false
	}
	if !strings.HasPrefix(name, "@") {
		return !strings.Contains(name, "/")
	}
	scope, pkg, ok := strings.Cut(name[1:], "/")
	return ok && scope != "" && pkg != "" && !strings.Contains(pkg, "/")
}

func addDependencyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("manifest", "m", "", "Read dependencies from a package.json file")
	cmd.Flags().Bool("optional", false, "Include optionalDependencies from the manifest")
}

// dependencies merges the manifest dependencies with the positional specs.
// Positional specs override the manifest.
func dependencies(cmd *cobra.Command, args []string) (map[string]string, error) {
	deps := make(map[string]string, len(args))

	manifest, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return nil, err
	}
	if manifest != "" {
		optional, err := cmd.Flags().GetBool("optional")
		if err != nil {
			return nil, err
		}
		fromFile, err := config.LoadManifest(manifest, optional)
		if err != nil {
			return nil, err
		}
		for name, c := range fromFile {
			deps[name] = c
		}
	}

	for _, arg := range args {
		name, c, err := ParseDependency(arg)
		if err != nil {
			return nil, err
		}
		deps[name] = c
	}
	return deps, nil
}
