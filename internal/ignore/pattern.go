// Package ignore implements hierarchical gitignore-style filtering: pattern
// parsing, per-pattern matching, a nesting-ordered context stack, and the
// richer wildcard matching used for user-supplied pattern lists.
package ignore

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreFileName is the per-directory ignore file the walk picks up.
const IgnoreFileName = ".gitignore"

// Pattern is one parsed ignore-file pattern. Immutable once parsed.
type Pattern struct {
	Text     string
	Negated  bool // leading "!"
	DirOnly  bool // trailing "/"
	Anchored bool // leading "/"
}

// ParsePatterns reads ignore-file text into an ordered pattern list.
// Blank lines and "#" comments are discarded; a line that is empty after
// stripping its markers is invalid and dropped.
func ParsePatterns(r io.Reader) []Pattern {
	var patterns []Pattern

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p := Pattern{Text: line}
		if strings.HasPrefix(p.Text, "!") {
			p.Negated = true
			p.Text = p.Text[1:]
		}
		if strings.HasSuffix(p.Text, "/") {
			p.DirOnly = true
			p.Text = strings.TrimSuffix(p.Text, "/")
		}
		if strings.HasPrefix(p.Text, "/") {
			p.Anchored = true
			p.Text = p.Text[1:]
		}
		if p.Text == "" {
			continue
		}
		patterns = append(patterns, p)
	}

	return patterns
}

// LoadPatternFile parses the ignore file at path. A missing file is not an
// error: it yields an empty pattern list.
func LoadPatternFile(path string) ([]Pattern, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	return ParsePatterns(file), nil
}

// Matches evaluates the pattern against a path relative to the pattern's
// ignore context. Evaluation is case-sensitive.
//
// Anchored patterns match from the path root; directory-only anchored
// patterns additionally require a component boundary right after the
// pattern text. Unanchored patterns are tested against every path
// component independently: directory-only needs exact component equality,
// otherwise a component prefix suffices.
func (p Pattern) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)

	if p.Anchored {
		if p.DirOnly {
			return relPath == p.Text || strings.HasPrefix(relPath, p.Text+"/")
		}
		return strings.HasPrefix(relPath, p.Text)
	}

	for _, component := range strings.Split(relPath, "/") {
		if p.DirOnly {
			if component == p.Text {
				return true
			}
		} else if strings.HasPrefix(component, p.Text) {
			return true
		}
	}
	return false
}
