package ignore

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, lines ...string) []Pattern {
	t.Helper()
	return ParsePatterns(strings.NewReader(strings.Join(lines, "\n")))
}

func TestContextStack_Decide(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "repo")

	stack := NewContextStack()
	stack.Push(root, parse(t, "secret.txt", "build/"))

	t.Run("no match means not ignored", func(t *testing.T) {
		_, ignored, matched := stack.Decide(filepath.Join(root, "src", "main.go"))
		assert.False(t, matched)
		assert.False(t, ignored)
	})

	t.Run("match ignores and reports the pattern", func(t *testing.T) {
		pattern, ignored, matched := stack.Decide(filepath.Join(root, "conf", "secret.txt"))
		require.True(t, matched)
		assert.True(t, ignored)
		assert.Equal(t, "secret.txt", pattern)
	})

	t.Run("directory-only pattern catches contents", func(t *testing.T) {
		_, ignored, matched := stack.Decide(filepath.Join(root, "build", "out.o"))
		require.True(t, matched)
		assert.True(t, ignored)
	})
}

func TestContextStack_DeeperContextWins(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "repo")
	sub := filepath.Join(root, "docs")

	stack := NewContextStack()
	stack.Push(root, parse(t, "README.md"))
	stack.Push(sub, parse(t, "!README.md"))

	pattern, ignored, matched := stack.Decide(filepath.Join(sub, "README.md"))
	require.True(t, matched)
	assert.False(t, ignored, "deeper negation must reverse the shallower match")
	assert.Equal(t, "README.md", pattern)

	// Outside the subdirectory the negation does not apply.
	_, ignored, matched = stack.Decide(filepath.Join(root, "README.md"))
	require.True(t, matched)
	assert.True(t, ignored)
}

func TestContextStack_OrderWithinContextMatters(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "repo")

	ignoreThenNegate := NewContextStack()
	ignoreThenNegate.Push(root, parse(t, "debug.log", "!debug.log"))
	_, ignored, matched := ignoreThenNegate.Decide(filepath.Join(root, "debug.log"))
	require.True(t, matched)
	assert.False(t, ignored)

	negateThenIgnore := NewContextStack()
	negateThenIgnore.Push(root, parse(t, "!debug.log", "debug.log"))
	_, ignored, matched = negateThenIgnore.Decide(filepath.Join(root, "debug.log"))
	require.True(t, matched)
	assert.True(t, ignored, "last match wins, so the later pattern re-ignores")
}

func TestContextStack_PopTo(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "repo")
	sub := filepath.Join(root, "internal")
	sibling := filepath.Join(root, "cmd")

	stack := NewContextStack()
	stack.Push(root, parse(t, "scratch"))
	stack.Push(sub, parse(t, "testdata/"))
	require.Equal(t, 2, stack.Depth())

	// Moving to a sibling directory drops the subdirectory context.
	stack.PopTo(sibling)
	assert.Equal(t, 1, stack.Depth())

	_, _, matched := stack.Decide(filepath.Join(sibling, "testdata", "x.json"))
	assert.False(t, matched)

	// The root context still applies.
	_, ignored, matched := stack.Decide(filepath.Join(sibling, "scratch"))
	require.True(t, matched)
	assert.True(t, ignored)

	stack.PopTo(filepath.Join(string(filepath.Separator), "elsewhere"))
	assert.Equal(t, 0, stack.Depth())
}

func TestContextStack_EmptyPushIsSkipped(t *testing.T) {
	stack := NewContextStack()
	stack.Push(filepath.Join(string(filepath.Separator), "repo"), nil)
	assert.Equal(t, 0, stack.Depth())
}
