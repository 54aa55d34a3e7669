// Package aggregator orchestrates a scan run: it processes every target,
// merges the per-target results into one deduplicated set, applies the
// token anomaly filter over the merged whole, and assembles scan metadata.
package aggregator

import (
	"os"
	"path/filepath"
	"time"

	"log/slog"

	"github.com/petrarca/context-scanner/internal/codestats"
	"github.com/petrarca/context-scanner/internal/config"
	"github.com/petrarca/context-scanner/internal/git"
	"github.com/petrarca/context-scanner/internal/license"
	"github.com/petrarca/context-scanner/internal/metadata"
	"github.com/petrarca/context-scanner/internal/processor"
	"github.com/petrarca/context-scanner/internal/progress"
	"github.com/petrarca/context-scanner/internal/scan"
	"github.com/petrarca/context-scanner/internal/token"
)

// Aggregator runs the full scan pipeline over a list of targets.
type Aggregator struct {
	settings *config.Settings
	logger   *slog.Logger
	progress *progress.Progress
	version  string
}

// New creates an aggregator. version is recorded in the scan metadata.
func New(settings *config.Settings, logger *slog.Logger, prog *progress.Progress, version string) *Aggregator {
	if prog == nil {
		prog = progress.New(false, progress.NullHandler{})
	}
	return &Aggregator{
		settings: settings,
		logger:   logger,
		progress: prog,
		version:  version,
	}
}

// Run scans all targets sequentially and returns the merged result plus
// metadata. Targets default to the current directory. A target-level error
// aborts the run; per-file errors were already handled inside the walk.
func (a *Aggregator) Run(targets []string) (*scan.ProcessResult, *metadata.ScanMetadata, error) {
	if len(targets) == 0 {
		targets = []string{"."}
	}

	start := time.Now()
	proc := processor.New(a.settings, a.logger, a.progress)

	merged := scan.NewProcessResult()
	includedSeen := make(map[string]struct{})
	runningTokens := 0

	for _, target := range targets {
		a.progress.ScanStart(target, a.settings.IgnorePatterns)

		result, total, err := proc.ProcessTarget(target, runningTokens)
		if err != nil {
			return nil, nil, err
		}
		runningTokens = total

		// Records move into the merged result; the per-target result is
		// discarded afterwards, never read again.
		for _, rec := range result.Included {
			if _, ok := includedSeen[rec.Path]; ok {
				continue
			}
			includedSeen[rec.Path] = struct{}{}
			merged.AddIncluded(rec)
		}
		for _, ex := range result.Excluded {
			merged.AddExcluded(ex.Path, ex.Reason)
		}
	}

	a.dedupeExcluded(merged, includedSeen)

	if !a.settings.DisableTokenFilter {
		token.FilterAnomalies(merged)
	}

	merged.SortByPath()

	meta := a.buildMetadata(targets, merged)
	meta.SetDuration(time.Since(start))

	a.logger.Info("scan complete",
		"targets", len(targets),
		"included", len(merged.Included),
		"excluded", len(merged.Excluded),
		"tokens", merged.TotalTokens())

	return merged, meta, nil
}

// dedupeExcluded drops excluded entries whose path was included by any
// target, and collapses repeats. A path named both by a walk and an
// explicit file target must end up included only.
func (a *Aggregator) dedupeExcluded(merged *scan.ProcessResult, includedSeen map[string]struct{}) {
	seen := make(map[string]struct{}, len(merged.Excluded))
	kept := merged.Excluded[:0]
	for _, ex := range merged.Excluded {
		if _, ok := includedSeen[ex.Path]; ok {
			continue
		}
		if _, ok := seen[ex.Path]; ok {
			continue
		}
		seen[ex.Path] = struct{}{}
		kept = append(kept, ex)
	}
	merged.Excluded = kept
}

func (a *Aggregator) buildMetadata(targets []string, merged *scan.ProcessResult) *metadata.ScanMetadata {
	meta := metadata.New(targets, a.version)
	meta.SetResult(merged)

	root := targetRoot(targets[0])
	repoInfo := git.Lookup(root)
	meta.SetRepository(git.RepoName(root, repoInfo), repoInfo)
	meta.Licenses = license.DetectInDirectory(root)

	if a.settings.CodeStats {
		collector := codestats.NewCollector()
		for _, rec := range merged.Included {
			collector.ProcessFile(rec.Path, rec.Content)
		}
		meta.CodeStats = collector.Stats()
	}

	return meta
}

// targetRoot resolves the directory a target lives in, for repository and
// license detection.
func targetRoot(target string) string {
	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		return target
	}
	return filepath.Dir(target)
}
