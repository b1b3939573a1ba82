package pipeline

import (
	"path/filepath"
	"regexp"
	"strings"
)

// packageDirPattern matches "<root>/packages/<name>" where name may be scoped.
// The greedy prefix makes the innermost packages directory win.
var packageDirPattern = regexp.MustCompile(`^(.+/packages/)(@[a-z\-]+/[a-z\-]+|[a-z\-]+)(/|$)`)

// PackageLocation is the monorepo package owning a directory
type PackageLocation struct {
	MonorepoRoot string // path up to and including "packages/"
	PackageName  string
}

// FindPackageLocation detects the package owning directory
func FindPackageLocation(directory string) (PackageLocation, bool) {
	matches := packageDirPattern.FindStringSubmatch(filepath.ToSlash(directory))
	if matches == nil {
		return PackageLocation{}, false
	}
	return PackageLocation{MonorepoRoot: matches[1], PackageName: matches[2]}, true
}

// FixImports rewrites imports of the file's own package name into paths
// relative to directory. Code outside a packages directory is returned unchanged.
func FixImports(directory, code string) string {
	location, ok := FindPackageLocation(directory)
	if !ok {
		return code
	}

	specifier := regexp.MustCompile(`from '(` + regexp.QuoteMeta(location.PackageName) + `.*)';`)
	return specifier.ReplaceAllStringFunc(code, func(match string) string {
		target := specifier.FindStringSubmatch(match)[1]
		return "from '" + relativeImportPath(directory, location.MonorepoRoot+target) + "';"
	})
}

// relativeImportPath returns dest relative to directory with an explicit "./"
// so that it is not resolved as a node module
func relativeImportPath(directory, dest string) string {
	rel, err := filepath.Rel(directory, filepath.FromSlash(dest))
	if err != nil {
		return dest
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		rel = ""
	}
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}
