// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultManifestName is the conventional file name for a freeze manifest.
const DefaultManifestName = "manifest.hcl"

// MatchFiles returns the files directly inside dir whose base name matches
// the given glob pattern. The scan is non-recursive: entries in
// subdirectories are never considered. Matches are returned in the order
// the glob enumeration yields them (lexical order), and directories whose
// names happen to match the pattern are filtered out.
func MatchFiles(dir string, pattern string) ([]string, error) {
	if pattern == "" {
		panic("pattern must not be empty")
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			continue
		}
		files = append(files, m)
	}

	return files, nil
}

// ResolveManifest resolves a user-supplied manifest argument to a concrete
// manifest file. A path naming a regular file is returned as-is; a path
// naming a directory resolves to the DefaultManifestName inside it. Any
// stat failure is returned to the caller untouched.
func ResolveManifest(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}

	candidate := filepath.Join(path, DefaultManifestName)
	if _, err := os.Stat(candidate); err != nil {
		return "", fmt.Errorf("directory %s contains no %s: %w", path, DefaultManifestName, err)
	}
	return candidate, nil
}
