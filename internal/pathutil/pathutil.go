// Package pathutil provides path hierarchy helpers used by the action
// resolver and scheduler. Paths are compared after filepath.Clean; a
// path never equals its own ancestor.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Depth returns the number of ancestor segments of path, matching the
// priority key used throughout the planner: "/a/b/c" has depth 3
// (/a/b, /a, /), "a/b/c" has depth 2 (a/b, a) plus the implicit "."
// making 3, and both "/" and "." have depth 0.
func Depth(path string) int {
	cleaned := filepath.Clean(path)
	if cleaned == "/" || cleaned == "." {
		return 0
	}
	n := strings.Count(cleaned, string(filepath.Separator))
	if filepath.IsAbs(cleaned) {
		return n
	}
	// relative paths also count "." as an ancestor
	return n + 1
}

// Ancestors returns the ancestors of path ordered nearest to farthest,
// ending with "/" for absolute paths or "." for relative paths.
// The path itself is not included.
func Ancestors(path string) []string {
	cleaned := filepath.Clean(path)
	if cleaned == "/" || cleaned == "." {
		return nil
	}

	var out []string
	current := cleaned
	for {
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		out = append(out, parent)
		if parent == "/" || parent == "." {
			break
		}
		current = parent
	}
	return out
}

// IsAncestor reports whether ancestor strictly contains path.
func IsAncestor(ancestor, path string) bool {
	ancestor = filepath.Clean(ancestor)
	path = filepath.Clean(path)
	if ancestor == path {
		return false
	}
	if ancestor == "/" {
		return strings.HasPrefix(path, "/")
	}
	return strings.HasPrefix(path, ancestor+string(filepath.Separator))
}
