package processor

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"log/slog"

	"github.com/petrarca/context-scanner/internal/config"
	"github.com/petrarca/context-scanner/internal/progress"
	"github.com/petrarca/context-scanner/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(settings *config.Settings) *Processor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(settings, logger, nil)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func includedPaths(result *scan.ProcessResult) []string {
	paths := make([]string, 0, len(result.Included))
	for _, rec := range result.Included {
		paths = append(paths, rec.Path)
	}
	return paths
}

func findExcluded(result *scan.ProcessResult, suffix string) (scan.ExcludedFile, bool) {
	for _, ex := range result.Excluded {
		if strings.HasSuffix(ex.Path, suffix) {
			return ex, true
		}
	}
	return scan.ExcludedFile{}, false
}

func TestProcessTarget_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", strings.Repeat("x", 100))
	writeFile(t, dir, "node_modules/pkg.json", `{"name":"pkg"}`)
	writeFile(t, dir, ".gitignore", "node_modules\n")

	p := newTestProcessor(config.DefaultSettings())
	result, total, err := p.ProcessTarget(dir, 0)
	require.NoError(t, err)

	require.Len(t, result.Included, 1)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "a.js")), result.Included[0].Path)
	assert.Equal(t, 35, result.Included[0].Tokens) // 100 bytes * 0.35
	assert.Equal(t, 35, total)
	assert.Equal(t, []scan.Language{scan.LangJavaScript}, result.LanguageList())

	excluded, ok := findExcluded(result, "node_modules/pkg.json")
	require.True(t, ok)
	assert.Equal(t, scan.ReasonIgnored, excluded.Reason.Kind)
	assert.Equal(t, "node_modules", excluded.Reason.Pattern)
}

func TestProcessTarget_BinaryExcluded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blob.js", "\x00\x00\x00\x00\x00\x00binary")
	writeFile(t, dir, "logo.png", "not really an image, but the type is non-text")

	p := newTestProcessor(config.DefaultSettings())
	result, _, err := p.ProcessTarget(dir, 0)
	require.NoError(t, err)

	assert.Empty(t, result.Included)

	for _, suffix := range []string{"blob.js", "logo.png"} {
		excluded, ok := findExcluded(result, suffix)
		require.True(t, ok, suffix)
		assert.Equal(t, scan.ReasonBinary, excluded.Reason.Kind, suffix)
	}
}

func TestProcessTarget_UnknownType(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.xyz123", "some text payload")

	t.Run("excluded by default", func(t *testing.T) {
		p := newTestProcessor(config.DefaultSettings())
		result, _, err := p.ProcessTarget(dir, 0)
		require.NoError(t, err)

		assert.Empty(t, result.Included)
		excluded, ok := findExcluded(result, "data.xyz123")
		require.True(t, ok)
		assert.Equal(t, scan.ReasonUnknownType, excluded.Reason.Kind)
	})

	t.Run("kept with language filter disabled", func(t *testing.T) {
		settings := config.DefaultSettings()
		settings.DisableLanguageFilter = true

		p := newTestProcessor(settings)
		result, _, err := p.ProcessTarget(dir, 0)
		require.NoError(t, err)

		require.Len(t, result.Included, 1)
		assert.True(t, result.Included[0].Type.IsUnknown())
	})
}

func TestProcessTarget_ExtensionAllowList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")
	writeFile(t, dir, "script.py", "print('hi')\n")

	settings := config.DefaultSettings()
	settings.Extensions = []string{".go"}

	p := newTestProcessor(settings)
	result, _, err := p.ProcessTarget(dir, 0)
	require.NoError(t, err)

	require.Len(t, result.Included, 1)
	assert.True(t, strings.HasSuffix(result.Included[0].Path, "main.go"))

	excluded, ok := findExcluded(result, "script.py")
	require.True(t, ok)
	assert.Equal(t, scan.ReasonIgnored, excluded.Reason.Kind)
	assert.Contains(t, excluded.Reason.Pattern, "extensions=")
}

func TestProcessTarget_ConfigFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "key: value\n")
	writeFile(t, dir, "main.go", "package main\n")

	t.Run("config kept by default", func(t *testing.T) {
		p := newTestProcessor(config.DefaultSettings())
		result, _, err := p.ProcessTarget(dir, 0)
		require.NoError(t, err)
		assert.Len(t, result.Included, 2)
	})

	t.Run("config excluded when filter enabled", func(t *testing.T) {
		settings := config.DefaultSettings()
		settings.DisableConfigFilter = false

		p := newTestProcessor(settings)
		result, _, err := p.ProcessTarget(dir, 0)
		require.NoError(t, err)

		require.Len(t, result.Included, 1)
		excluded, ok := findExcluded(result, "config.yaml")
		require.True(t, ok)
		assert.Equal(t, scan.ReasonConfiguration, excluded.Reason.Kind)
	})
}

func TestProcessTarget_DeeperNegationWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "README.md\n")
	writeFile(t, dir, "README.md", "# root readme\n")
	writeFile(t, dir, "docs/.gitignore", "!README.md\n")
	writeFile(t, dir, "docs/README.md", "# docs readme\n")

	p := newTestProcessor(config.DefaultSettings())
	result, _, err := p.ProcessTarget(dir, 0)
	require.NoError(t, err)

	require.Len(t, result.Included, 1)
	assert.True(t, strings.HasSuffix(result.Included[0].Path, "docs/README.md"))

	require.Len(t, result.Excluded, 1)
	excluded := result.Excluded[0]
	assert.True(t, strings.HasSuffix(excluded.Path, "README.md"))
	assert.False(t, strings.HasSuffix(excluded.Path, "docs/README.md"))
	assert.Equal(t, scan.ReasonIgnored, excluded.Reason.Kind)
	assert.Equal(t, "README.md", excluded.Reason.Pattern)
}

func TestProcessTarget_DotFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "SECRET=1\n")
	writeFile(t, dir, "main.go", "package main\n")

	t.Run("dot-files skipped silently", func(t *testing.T) {
		p := newTestProcessor(config.DefaultSettings())
		result, _, err := p.ProcessTarget(dir, 0)
		require.NoError(t, err)

		require.Len(t, result.Included, 1)
		_, found := findExcluded(result, ".env")
		assert.False(t, found, "skipped dot-files are not recorded at all")
	})

	t.Run("opt-in brings them back", func(t *testing.T) {
		settings := config.DefaultSettings()
		settings.IncludeDotFiles = []string{".env"}

		p := newTestProcessor(settings)
		result, _, err := p.ProcessTarget(dir, 0)
		require.NoError(t, err)
		assert.Len(t, result.Included, 2)
	})
}

func TestProcessTarget_TokenBudget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", strings.Repeat("x", 100)) // 25 tokens
	writeFile(t, dir, "b.go", strings.Repeat("y", 100)) // 25 tokens

	settings := config.DefaultSettings()
	settings.MaxTokens = 30

	p := newTestProcessor(settings)
	result, total, err := p.ProcessTarget(dir, 0)
	require.NoError(t, err)

	// Walk order is lexical, so a.go fits and b.go would exceed the budget.
	// The walk stops; b.go is neither included nor excluded.
	require.Len(t, result.Included, 1)
	assert.True(t, strings.HasSuffix(result.Included[0].Path, "a.go"))
	assert.Equal(t, 25, total)
	assert.Empty(t, result.Excluded)
}

func TestProcessTarget_ExplicitFileBypassesFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "# readme\n")

	settings := config.DefaultSettings()
	settings.IgnorePatterns = []string{"*.md"}

	p := newTestProcessor(settings)
	result, _, err := p.ProcessTarget(filepath.Join(dir, "README.md"), 0)
	require.NoError(t, err)

	require.Len(t, result.Included, 1)
	assert.True(t, strings.HasSuffix(result.Included[0].Path, "README.md"))
	assert.Empty(t, result.Excluded)
}

func TestProcessTarget_ExplicitFileStillChecksBinary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")

	p := newTestProcessor(config.DefaultSettings())
	result, _, err := p.ProcessTarget(filepath.Join(dir, "README.md"), 0)
	require.NoError(t, err)

	assert.Empty(t, result.Included)
	require.Len(t, result.Excluded, 1)
	assert.Equal(t, scan.ReasonBinary, result.Excluded[0].Reason.Kind)
}

func TestProcessTarget_ExplicitFileBudgetApplies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", strings.Repeat("x", 1000)) // 250 tokens

	settings := config.DefaultSettings()
	settings.MaxTokens = 100

	p := newTestProcessor(settings)
	result, total, err := p.ProcessTarget(filepath.Join(dir, "notes.txt"), 0)
	require.NoError(t, err)

	assert.Empty(t, result.Included)
	assert.Empty(t, result.Excluded)
	assert.Zero(t, total)
}

func TestProcessTarget_MissingTarget(t *testing.T) {
	p := newTestProcessor(config.DefaultSettings())
	_, _, err := p.ProcessTarget(filepath.Join(t.TempDir(), "absent"), 0)
	assert.Error(t, err)
}

func TestProcessTarget_EmptyFileIncluded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.go", "")

	p := newTestProcessor(config.DefaultSettings())
	result, total, err := p.ProcessTarget(dir, 0)
	require.NoError(t, err)

	require.Len(t, result.Included, 1)
	assert.Zero(t, result.Included[0].Tokens)
	assert.Zero(t, total)
}

type eventRecorder struct {
	events []progress.Event
}

func (h *eventRecorder) Handle(event progress.Event) {
	h.events = append(h.events, event)
}

func (h *eventRecorder) ofType(eventType progress.EventType) []progress.Event {
	var matched []progress.Event
	for _, event := range h.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

func TestProcessTarget_DirectoryLeaveEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sub/.gitignore", "secret.txt\n")
	writeFile(t, dir, "sub/f.go", "package sub\n")
	writeFile(t, dir, "zz/g.go", "package zz\n")

	recorder := &eventRecorder{}
	prog := progress.New(true, recorder)
	prog.EnableTimings()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New(config.DefaultSettings(), logger, prog)
	_, _, err := p.ProcessTarget(dir, 0)
	require.NoError(t, err)

	entered := recorder.ofType(progress.EventEnterDirectory)
	left := recorder.ofType(progress.EventLeaveDirectory)
	require.Len(t, entered, 3)
	require.Len(t, left, 3)

	// Every entered directory is left exactly once, with a measured duration.
	leftPaths := make(map[string]struct{})
	for _, event := range left {
		leftPaths[event.Path] = struct{}{}
		assert.Positive(t, event.Duration, event.Path)
	}
	for _, event := range entered {
		assert.Contains(t, leftPaths, event.Path)
	}

	contextLeft := recorder.ofType(progress.EventIgnoreContextLeave)
	require.Len(t, contextLeft, 1)
	assert.Equal(t, filepath.Join(dir, "sub"), contextLeft[0].Path)
}

func TestProcessTarget_ScanCompleteDuration(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n")

	recorder := &eventRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New(config.DefaultSettings(), logger, progress.New(true, recorder))
	_, _, err := p.ProcessTarget(dir, 0)
	require.NoError(t, err)

	complete := recorder.ofType(progress.EventScanComplete)
	require.Len(t, complete, 1)
	assert.Equal(t, 1, complete[0].FileCount)
	assert.Positive(t, complete[0].Duration)
}

func TestProcessTarget_NonRegularTarget(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "ipc.sock")
	listener, err := net.Listen("unix", socket)
	if err != nil {
		t.Skipf("cannot create unix socket: %v", err)
	}
	defer listener.Close()

	p := newTestProcessor(config.DefaultSettings())
	_, _, err = p.ProcessTarget(socket, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither a regular file nor a directory")
}
