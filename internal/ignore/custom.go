package ignore

import (
	"path/filepath"
	"strings"
)

// DefaultPatterns are the built-in exclusions applied to every scan unless
// the user disables them. They cover VCS metadata, dependency and build
// output directories, editor state, and lock files.
var DefaultPatterns = []string{
	".git",
	".svn",
	".hg",
	".DS_Store",
	".idea",
	".vscode",
	".venv",
	"__pycache__",
	"node_modules",
	"vendor",
	"target",
	"dist",
	"build",
	"out",
	"coverage",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Cargo.lock",
	"go.sum",
	"*.min.js",
	"*.map",
}

// MatchAnyCustom tests relPath against each pattern in order and returns the
// first pattern that matches.
func MatchAnyCustom(relPath string, patterns []string) (string, bool) {
	for _, pattern := range patterns {
		if MatchCustom(relPath, pattern) {
			return pattern, true
		}
	}
	return "", false
}

// MatchCustom implements the wildcard matching used for user-supplied and
// built-in pattern lists. A single-component pattern matches if any path
// component matches it; a multi-component pattern must match a contiguous
// run of path components. Matching is case-sensitive.
func MatchCustom(relPath, pattern string) bool {
	components := strings.Split(filepath.ToSlash(relPath), "/")
	parts := strings.Split(filepath.ToSlash(pattern), "/")

	if len(parts) == 1 {
		for _, component := range components {
			if wildcardMatch(component, parts[0]) {
				return true
			}
		}
		return false
	}

	if len(parts) > len(components) {
		return false
	}
	for start := 0; start <= len(components)-len(parts); start++ {
		matched := true
		for i, part := range parts {
			if !wildcardMatch(components[start+i], part) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// wildcardMatch matches one path component against one pattern part.
// Supported forms: bare "*" (anything), "*text*" (substring), "*text"
// (suffix), "text*" (prefix), and plain text (exact).
func wildcardMatch(component, part string) bool {
	switch {
	case part == "*":
		return true
	case strings.HasPrefix(part, "*") && strings.HasSuffix(part, "*"):
		return strings.Contains(component, part[1:len(part)-1])
	case strings.HasPrefix(part, "*"):
		return strings.HasSuffix(component, part[1:])
	case strings.HasSuffix(part, "*"):
		return strings.HasPrefix(component, part[:len(part)-1])
	default:
		return component == part
	}
}
