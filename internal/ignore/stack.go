package ignore

import (
	"path/filepath"
	"strings"
)

// ignoreContext binds a parsed pattern list to the absolute directory whose
// ignore file supplied it.
type ignoreContext struct {
	base     string
	patterns []Pattern
}

// ContextStack holds ignore contexts ordered from outermost to innermost
// directory. Decisions follow gitignore semantics: all applicable contexts
// are consulted in nesting order and the last matching pattern wins, so a
// deeper context can negate a shallower one.
type ContextStack struct {
	contexts []ignoreContext
}

func NewContextStack() *ContextStack {
	return &ContextStack{}
}

// Push adds a context for the given absolute directory. Empty pattern lists
// are skipped; they cannot affect any decision.
func (s *ContextStack) Push(base string, patterns []Pattern) {
	if len(patterns) == 0 {
		return
	}
	s.contexts = append(s.contexts, ignoreContext{base: base, patterns: patterns})
}

// PopTo removes contexts that do not apply to the given absolute directory,
// i.e. whose base is neither dir itself nor an ancestor of it. Contexts are
// pushed in walk order, so popping from the top is sufficient.
func (s *ContextStack) PopTo(dir string) {
	for len(s.contexts) > 0 {
		top := s.contexts[len(s.contexts)-1]
		if top.base == dir || isAncestor(top.base, dir) {
			return
		}
		s.contexts = s.contexts[:len(s.contexts)-1]
	}
}

// Depth returns the number of active contexts.
func (s *ContextStack) Depth() int {
	return len(s.contexts)
}

// Decide evaluates the absolute path against every applicable context in
// nesting order. It returns the text of the deciding pattern, whether the
// path ends up ignored, and whether any pattern matched at all. When no
// pattern matches, the path is not ignored.
func (s *ContextStack) Decide(absPath string) (pattern string, ignored, matched bool) {
	for _, ctx := range s.contexts {
		if !isAncestor(ctx.base, absPath) {
			continue
		}
		rel, err := filepath.Rel(ctx.base, absPath)
		if err != nil {
			continue
		}
		for _, p := range ctx.patterns {
			if p.Matches(rel) {
				pattern = p.Text
				ignored = !p.Negated
				matched = true
			}
		}
	}
	return pattern, ignored, matched
}

func isAncestor(base, path string) bool {
	return strings.HasPrefix(path, base+string(filepath.Separator))
}
