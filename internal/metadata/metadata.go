// Package metadata describes a scan execution for structured output formats.
package metadata

import (
	"path/filepath"
	"time"

	"github.com/petrarca/context-scanner/internal/codestats"
	"github.com/petrarca/context-scanner/internal/git"
	"github.com/petrarca/context-scanner/internal/license"
	"github.com/petrarca/context-scanner/internal/scan"
)

// ScanMetadata contains information about the scan execution
type ScanMetadata struct {
	Timestamp       string               `json:"timestamp"`
	ToolVersion     string               `json:"tool_version"`
	Targets         []string             `json:"targets"`
	RepoName        string               `json:"repo_name,omitempty"`
	Repository      *git.RepoInfo        `json:"repository,omitempty"`
	Licenses        []license.Match      `json:"licenses,omitempty"`
	DurationMs      int64                `json:"duration_ms,omitempty"`
	FileCount       int                  `json:"file_count"`
	ExcludedCount   int                  `json:"excluded_count"`
	TotalTokens     int                  `json:"total_tokens"`
	TotalLines      int                  `json:"total_lines"`
	Languages       []string             `json:"languages,omitempty"`
	AdditionalTypes []string             `json:"additional_types,omitempty"`
	CodeStats       *codestats.CodeStats `json:"code_stats,omitempty"`
	Properties      map[string]any       `json:"properties,omitempty"`
}

// New creates scan metadata for the given targets. Target paths are recorded
// absolute so output files remain interpretable away from the invocation.
func New(targets []string, version string) *ScanMetadata {
	absTargets := make([]string, 0, len(targets))
	for _, target := range targets {
		abs, err := filepath.Abs(target)
		if err != nil {
			abs = target
		}
		absTargets = append(absTargets, abs)
	}

	return &ScanMetadata{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		ToolVersion: version,
		Targets:     absTargets,
	}
}

// SetDuration sets the scan duration in milliseconds
func (m *ScanMetadata) SetDuration(duration time.Duration) {
	m.DurationMs = duration.Milliseconds()
}

// SetResult fills the counters derived from the merged scan result.
func (m *ScanMetadata) SetResult(result *scan.ProcessResult) {
	m.FileCount = len(result.Included)
	m.ExcludedCount = len(result.Excluded)
	m.TotalTokens = result.TotalTokens()

	m.TotalLines = 0
	for _, rec := range result.Included {
		m.TotalLines += rec.Lines
	}

	m.Languages = nil
	for _, lang := range result.LanguageList() {
		m.Languages = append(m.Languages, string(lang))
	}
	m.AdditionalTypes = nil
	for _, t := range result.AdditionalTypeList() {
		m.AdditionalTypes = append(m.AdditionalTypes, string(t))
	}
}

// SetRepository records git information and the derived repo name.
func (m *ScanMetadata) SetRepository(name string, info *git.RepoInfo) {
	m.RepoName = name
	m.Repository = info
}

// SetProperties sets custom properties from configuration
func (m *ScanMetadata) SetProperties(properties map[string]any) {
	if len(properties) > 0 {
		m.Properties = properties
	}
}
