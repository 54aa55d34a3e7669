// Package processor walks scan targets and applies the filter chain:
// binary detection, type classification, hierarchical ignore patterns,
// the extension allow-list, config filtering and the token budget.
package processor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/petrarca/context-scanner/internal/config"
	"github.com/petrarca/context-scanner/internal/detect"
	"github.com/petrarca/context-scanner/internal/ignore"
	"github.com/petrarca/context-scanner/internal/progress"
	"github.com/petrarca/context-scanner/internal/scan"
	"github.com/petrarca/context-scanner/internal/token"
)

// Processor scans targets according to the configured filters. One
// Processor handles all targets of a run so that the token budget is
// enforced globally.
type Processor struct {
	settings *config.Settings
	logger   *slog.Logger
	progress *progress.Progress

	customPatterns []string
	extensions     []string
	dotFiles       map[string]struct{}
}

// New creates a processor. The logger must not be nil; progress may be.
func New(settings *config.Settings, logger *slog.Logger, prog *progress.Progress) *Processor {
	if prog == nil {
		prog = progress.New(false, progress.NullHandler{})
	}

	dotFiles := make(map[string]struct{}, len(settings.IncludeDotFiles))
	for _, name := range settings.IncludeDotFiles {
		dotFiles[name] = struct{}{}
	}

	return &Processor{
		settings:       settings,
		logger:         logger,
		progress:       prog,
		customPatterns: settings.EffectiveIgnorePatterns(ignore.DefaultPatterns),
		extensions:     settings.NormalizedExtensions(),
		dotFiles:       dotFiles,
	}
}

// ProcessTarget scans one target path, which may be a directory to walk or
// an explicitly named file. runningTokens is the token total accumulated by
// earlier targets; the updated total is returned alongside the result.
func (p *Processor) ProcessTarget(target string, runningTokens int) (*scan.ProcessResult, int, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, runningTokens, fmt.Errorf("cannot access target %s: %w", target, err)
	}

	result := scan.NewProcessResult()
	if info.IsDir() {
		runningTokens, err = p.walkDirectory(target, result, runningTokens)
		return result, runningTokens, err
	}
	if !info.Mode().IsRegular() {
		return nil, runningTokens, fmt.Errorf("target %s is neither a regular file nor a directory (mode %s)", target, info.Mode())
	}

	runningTokens = p.processExplicitFile(target, result, runningTokens)
	return result, runningTokens, nil
}

// openDir tracks a directory the walk has entered but not yet left, so
// leave events can be emitted once the walk moves past it.
type openDir struct {
	abs     string
	display string
	context bool
}

// walkDirectory runs the filter chain over every file under root. Ignored
// directories are still descended so their files appear in the excluded
// list with the matching pattern recorded; dot-directories are pruned
// outright unless opted back in.
func (p *Processor) walkDirectory(root string, result *scan.ProcessResult, runningTokens int) (int, error) {
	cleanRoot := filepath.Clean(root)
	absRoot, err := filepath.Abs(cleanRoot)
	if err != nil {
		return runningTokens, fmt.Errorf("cannot resolve target %s: %w", root, err)
	}

	stack := ignore.NewContextStack()
	var fileCount, dirCount int
	walkStart := time.Now()

	// WalkDir has no leave hook, so open directories are tracked here and
	// left once the walk reaches a path outside them.
	var open []openDir
	leaveTo := func(abs string) {
		for len(open) > 0 {
			top := open[len(open)-1]
			if top.abs == abs || strings.HasPrefix(abs, top.abs+string(filepath.Separator)) {
				return
			}
			if top.context {
				p.progress.IgnoreContextLeave(top.display)
			}
			p.progress.LeaveDirectory(top.display)
			open = open[:len(open)-1]
		}
	}

	err = filepath.WalkDir(cleanRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			p.logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(cleanRoot, path)
		if err != nil {
			return err
		}
		absPath := filepath.Join(absRoot, rel)

		if d.IsDir() {
			if path != cleanRoot && p.skipDotName(d.Name()) {
				return fs.SkipDir
			}

			leaveTo(absPath)
			stack.PopTo(absPath)
			dirCount++
			p.progress.EnterDirectory(path)

			pushed := false
			patterns, err := ignore.LoadPatternFile(filepath.Join(path, ignore.IgnoreFileName))
			if err != nil {
				p.logger.Warn("cannot read ignore file", "dir", path, "error", err)
			} else if len(patterns) > 0 {
				stack.Push(absPath, patterns)
				pushed = true
				p.progress.IgnoreContextEnter(path, len(patterns))
			}
			open = append(open, openDir{abs: absPath, display: path, context: pushed})
			return nil
		}

		if p.skipDotName(d.Name()) {
			return nil
		}

		leaveTo(filepath.Dir(absPath))
		stack.PopTo(filepath.Dir(absPath))
		fileCount++

		recordPath := filepath.ToSlash(filepath.Join(cleanRoot, rel))

		content, err := os.ReadFile(path)
		if err != nil {
			p.logger.Warn("cannot read file", "path", path, "error", err)
			return nil
		}

		if reason, excluded := p.excludeWalkedFile(rel, absPath, content, stack); excluded {
			result.AddExcluded(recordPath, reason)
			p.progress.FileExcluded(recordPath, reason.String())
			return nil
		}

		tokens := token.Estimate(content, detect.Classify(rel))
		if p.settings.MaxTokens > 0 && runningTokens+tokens > p.settings.MaxTokens {
			p.logger.Info("token budget reached, stopping walk",
				"target", root, "budget", p.settings.MaxTokens, "accumulated", runningTokens)
			return fs.SkipAll
		}

		result.AddIncluded(scan.NewFileRecord(recordPath, content, tokens, detect.Classify(rel)))
		runningTokens += tokens
		p.progress.FileIncluded(recordPath, tokens)
		return nil
	})
	if err != nil {
		return runningTokens, fmt.Errorf("walking %s: %w", root, err)
	}

	// Directories still open when the walk ends are left innermost-first.
	for i := len(open) - 1; i >= 0; i-- {
		if open[i].context {
			p.progress.IgnoreContextLeave(open[i].display)
		}
		p.progress.LeaveDirectory(open[i].display)
	}

	p.progress.ScanComplete(fileCount, dirCount, time.Since(walkStart))
	return runningTokens, nil
}

// excludeWalkedFile evaluates the exclusion chain for a file discovered by
// walking. First match wins; the order is fixed.
func (p *Processor) excludeWalkedFile(rel, absPath string, content []byte, stack *ignore.ContextStack) (scan.ExclusionReason, bool) {
	// 1. Binary content. Non-text additional types (images, archives, ...)
	// are treated as binary without inspecting their bytes.
	fileType := detect.Classify(rel)
	if fileType.Kind == scan.KindAdditional && fileType.Additional.NonText() {
		return scan.Binary(), true
	}
	if detect.IsBinary(content) {
		return scan.Binary(), true
	}

	// 2. Unknown type, unless the language filter is disabled.
	if fileType.IsUnknown() && !p.settings.DisableLanguageFilter {
		return scan.UnknownFileType(), true
	}

	// 3. Ignore patterns: user and built-in patterns first, then the
	// hierarchical ignore-file contexts.
	if pattern, ok := ignore.MatchAnyCustom(rel, p.customPatterns); ok {
		return scan.Ignored(pattern), true
	}
	if pattern, ignored, matched := stack.Decide(absPath); matched && ignored {
		return scan.Ignored(pattern), true
	}

	// 4. Extension allow-list.
	if len(p.extensions) > 0 && !p.extensionAllowed(rel) {
		return scan.Ignored("extensions=" + strings.Join(p.extensions, ",")), true
	}

	// 5. Configuration files, only when config filtering is enabled.
	if fileType.IsConfiguration() && !p.settings.DisableConfigFilter {
		return scan.Configuration(), true
	}

	return scan.ExclusionReason{}, false
}

// processExplicitFile handles a target naming a file directly. Ignore
// patterns, type classification and the config filter are bypassed; binary
// detection and the token budget still apply.
func (p *Processor) processExplicitFile(target string, result *scan.ProcessResult, runningTokens int) int {
	recordPath := filepath.ToSlash(filepath.Clean(target))

	content, err := os.ReadFile(target)
	if err != nil {
		p.logger.Warn("cannot read file", "path", target, "error", err)
		return runningTokens
	}

	if detect.IsBinary(content) {
		result.AddExcluded(recordPath, scan.Binary())
		p.progress.FileExcluded(recordPath, scan.Binary().String())
		return runningTokens
	}

	fileType := detect.Classify(target)
	tokens := token.Estimate(content, fileType)
	if p.settings.MaxTokens > 0 && runningTokens+tokens > p.settings.MaxTokens {
		p.logger.Info("token budget reached, skipping explicit file",
			"path", target, "budget", p.settings.MaxTokens, "accumulated", runningTokens)
		return runningTokens
	}

	result.AddIncluded(scan.NewFileRecord(recordPath, content, tokens, fileType))
	runningTokens += tokens
	p.progress.FileIncluded(recordPath, tokens)
	return runningTokens
}

// skipDotName reports whether a dot-named entry should be skipped. Entries
// listed in the include_dotfiles opt-in stay visible.
func (p *Processor) skipDotName(name string) bool {
	if !strings.HasPrefix(name, ".") {
		return false
	}
	_, optedIn := p.dotFiles[name]
	return !optedIn
}

func (p *Processor) extensionAllowed(rel string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(rel)), ".")
	for _, allowed := range p.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
