// Package codestats provides code statistics (lines of code, comments,
// blanks, complexity) over the included files of a scan.
package codestats

import (
	"math"
	"sort"
	"sync"

	"github.com/boyter/scc/v3/processor"
	"github.com/go-enry/go-enry/v2"
)

var initOnce sync.Once

// round2 rounds a float to 2 decimal places
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Stats holds code statistics for a language or total
type Stats struct {
	Lines      int64 `json:"lines"`
	Code       int64 `json:"code"`
	Comments   int64 `json:"comments"`
	Blanks     int64 `json:"blanks"`
	Complexity int64 `json:"complexity"`
	Files      int   `json:"files"`
}

func (s *Stats) add(job *processor.FileJob) {
	s.Lines += job.Lines
	s.Code += job.Code
	s.Comments += job.Comment
	s.Blanks += job.Blank
	s.Complexity += job.Complexity
	s.Files++
}

// LanguageStats holds stats for a specific language
type LanguageStats struct {
	Language   string `json:"language"`
	Lines      int64  `json:"lines"`
	Code       int64  `json:"code"`
	Comments   int64  `json:"comments"`
	Blanks     int64  `json:"blanks"`
	Complexity int64  `json:"complexity"`
	Files      int    `json:"files"`
}

// OtherStats holds statistics for files the counter cannot analyze
type OtherStats struct {
	Lines int64 `json:"lines"`
	Files int   `json:"files"`
}

// OtherLanguageStats holds per-language stats for unanalyzed files
type OtherLanguageStats struct {
	Language string `json:"language"`
	Lines    int64  `json:"lines"`
	Files    int    `json:"files"`
}

// PrimaryLanguage is a programming language carrying a significant share of
// the scanned lines
type PrimaryLanguage struct {
	Language string  `json:"language"`
	Pct      float64 `json:"pct"`
}

// Metrics holds derived code metrics (programming languages only)
type Metrics struct {
	CommentRatio     float64           `json:"comment_ratio"` // comments / code
	CodeDensity      float64           `json:"code_density"`  // code / lines
	AvgFileSize      float64           `json:"avg_file_size"` // lines / files
	PrimaryLanguages []PrimaryLanguage `json:"primary_languages,omitempty"`
}

// CodeStats is the aggregated outcome of a collection run
type CodeStats struct {
	Total      Stats                `json:"total"`
	ByLanguage []LanguageStats      `json:"by_language"` // sorted by lines descending
	Other      OtherStats           `json:"other"`
	OtherLangs []OtherLanguageStats `json:"other_by_language,omitempty"`
	Metrics    *Metrics             `json:"metrics,omitempty"`
}

const (
	primaryLanguageThreshold = 0.01
	maxPrimaryLanguages      = 5
)

// Collector aggregates per-file counts. Safe for concurrent use.
type Collector struct {
	mu              sync.Mutex
	total           Stats
	otherTotal      OtherStats
	byLanguage      map[string]*Stats
	otherByLanguage map[string]*OtherStats
}

func NewCollector() *Collector {
	return &Collector{
		byLanguage:      make(map[string]*Stats),
		otherByLanguage: make(map[string]*OtherStats),
	}
}

// ProcessFile counts one file. Language grouping uses enry detection on the
// filename and content; files the counter has no grammar for land in the
// unanalyzed bucket with line counts only.
func (c *Collector) ProcessFile(filename string, content []byte) {
	if len(content) == 0 {
		return
	}

	initOnce.Do(processor.ProcessConstants)

	language := enry.GetLanguage(filename, content)
	if language == "" {
		language = "Other"
	}

	sccLangs, _ := processor.DetectLanguage(filename)
	sccLang := ""
	if len(sccLangs) > 0 {
		sccLang = sccLangs[0]
	}

	job := &processor.FileJob{
		Filename: filename,
		Language: sccLang,
		Content:  content,
		Bytes:    int64(len(content)),
	}
	processor.CountStats(job)

	c.mu.Lock()
	defer c.mu.Unlock()

	if sccLang != "" {
		c.total.add(job)
		if _, ok := c.byLanguage[language]; !ok {
			c.byLanguage[language] = &Stats{}
		}
		c.byLanguage[language].add(job)
		return
	}

	c.otherTotal.Lines += job.Lines
	c.otherTotal.Files++
	if _, ok := c.otherByLanguage[language]; !ok {
		c.otherByLanguage[language] = &OtherStats{}
	}
	c.otherByLanguage[language].Lines += job.Lines
	c.otherByLanguage[language].Files++
}

// Stats returns the aggregated statistics collected so far.
func (c *Collector) Stats() *CodeStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	byLanguage := make([]LanguageStats, 0, len(c.byLanguage))
	for language, s := range c.byLanguage {
		byLanguage = append(byLanguage, LanguageStats{
			Language:   language,
			Lines:      s.Lines,
			Code:       s.Code,
			Comments:   s.Comments,
			Blanks:     s.Blanks,
			Complexity: s.Complexity,
			Files:      s.Files,
		})
	}
	sort.Slice(byLanguage, func(i, j int) bool {
		if byLanguage[i].Lines != byLanguage[j].Lines {
			return byLanguage[i].Lines > byLanguage[j].Lines
		}
		return byLanguage[i].Language < byLanguage[j].Language
	})

	otherLangs := make([]OtherLanguageStats, 0, len(c.otherByLanguage))
	for language, s := range c.otherByLanguage {
		otherLangs = append(otherLangs, OtherLanguageStats{
			Language: language,
			Lines:    s.Lines,
			Files:    s.Files,
		})
	}
	sort.Slice(otherLangs, func(i, j int) bool {
		if otherLangs[i].Lines != otherLangs[j].Lines {
			return otherLangs[i].Lines > otherLangs[j].Lines
		}
		return otherLangs[i].Language < otherLangs[j].Language
	})

	return &CodeStats{
		Total:      c.total,
		ByLanguage: byLanguage,
		Other:      c.otherTotal,
		OtherLangs: otherLangs,
		Metrics:    c.metricsLocked(byLanguage),
	}
}

// metricsLocked derives ratios over programming languages only. Caller must
// hold the mutex.
func (c *Collector) metricsLocked(byLanguage []LanguageStats) *Metrics {
	var prog Stats
	var progLangs []LanguageStats
	for _, ls := range byLanguage {
		if enry.GetLanguageType(ls.Language) != enry.Programming {
			continue
		}
		prog.Lines += ls.Lines
		prog.Code += ls.Code
		prog.Comments += ls.Comments
		prog.Files += ls.Files
		progLangs = append(progLangs, ls)
	}
	if prog.Files == 0 {
		return nil
	}

	m := &Metrics{}
	if prog.Code > 0 {
		m.CommentRatio = round2(float64(prog.Comments) / float64(prog.Code))
	}
	if prog.Lines > 0 {
		m.CodeDensity = round2(float64(prog.Code) / float64(prog.Lines))
	}
	m.AvgFileSize = round2(float64(prog.Lines) / float64(prog.Files))

	for i, ls := range progLangs {
		if i >= maxPrimaryLanguages {
			break
		}
		pct := round2(float64(ls.Lines) / float64(prog.Lines))
		if pct < primaryLanguageThreshold {
			break // sorted by lines, the rest are smaller
		}
		m.PrimaryLanguages = append(m.PrimaryLanguages, PrimaryLanguage{Language: ls.Language, Pct: pct})
	}

	return m
}
