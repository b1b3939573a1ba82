package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSourcePattern matches the JavaScript and TypeScript sources the engine understands
const DefaultSourcePattern = "**/*.{js,jsx,mjs,cjs,es6,es,ts,tsx}"

// ignoredDirs are never descended into while looking for sources
var ignoredDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	".next":        true,
	".cache":       true,
}

// IsSourceFile checks if a file matches the default source pattern
func IsSourceFile(filename string) bool {
	matched, err := doublestar.Match(DefaultSourcePattern, filepath.ToSlash(filename))
	return err == nil && matched
}

// IsIgnoredPath reports whether any directory of path (relative to root) is ignored
func IsIgnoredPath(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if ignoredDirs[segment] || (strings.HasPrefix(segment, ".") && segment != "." && segment != "..") {
			return true
		}
	}
	return false
}

// FindSourceFiles recursively finds all files under root matching one of patterns.
// DefaultSourcePattern is used when no pattern is given.
func FindSourceFiles(root string, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultSourcePattern}
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if IsIgnoredPath(filepath.Dir(match)) || seen[match] {
				continue
			}
			seen[match] = true
			files = append(files, filepath.Join(root, filepath.FromSlash(match)))
		}
	}
	return files, nil
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
