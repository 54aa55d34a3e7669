package scan

import (
	"bytes"
	"sort"
)

// FileRecord is one included file: its relative path, owned content, and
// derived counts. Content is owned by whichever ProcessResult currently
// holds the record; transfers between results are moves, not copies.
type FileRecord struct {
	Path    string // slash-separated, relative to the invocation
	Content []byte
	Tokens  int
	Lines   int // newline count + 1
	Type    FileType
}

// NewFileRecord builds a record from content, computing the line count.
func NewFileRecord(path string, content []byte, tokens int, fileType FileType) FileRecord {
	return FileRecord{
		Path:    path,
		Content: content,
		Tokens:  tokens,
		Lines:   bytes.Count(content, []byte{'\n'}) + 1,
		Type:    fileType,
	}
}

// ExcludedFile pairs a path with the single reason it was excluded.
type ExcludedFile struct {
	Path   string
	Reason ExclusionReason
}

// ProcessResult is the outcome of processing one target, or the merged
// outcome of the whole run. A path appears in exactly one of Included or
// Excluded.
type ProcessResult struct {
	Included        []FileRecord
	Excluded        []ExcludedFile
	Languages       map[Language]struct{}
	AdditionalTypes map[AdditionalType]struct{}
}

// NewProcessResult returns an empty result.
func NewProcessResult() *ProcessResult {
	return &ProcessResult{
		Languages:       make(map[Language]struct{}),
		AdditionalTypes: make(map[AdditionalType]struct{}),
	}
}

// AddIncluded appends a record and registers its type in the distinct sets.
func (r *ProcessResult) AddIncluded(rec FileRecord) {
	r.Included = append(r.Included, rec)
	switch rec.Type.Kind {
	case KindLanguage:
		r.Languages[rec.Type.Language] = struct{}{}
	case KindAdditional:
		r.AdditionalTypes[rec.Type.Additional] = struct{}{}
	}
}

// AddExcluded appends an excluded path with its reason.
func (r *ProcessResult) AddExcluded(path string, reason ExclusionReason) {
	r.Excluded = append(r.Excluded, ExcludedFile{Path: path, Reason: reason})
}

// TotalTokens sums the token estimates of the included files.
func (r *ProcessResult) TotalTokens() int {
	total := 0
	for _, rec := range r.Included {
		total += rec.Tokens
	}
	return total
}

// SortByPath orders both lists by path. Directory enumeration order is not
// guaranteed, so presentation sorts for determinism.
func (r *ProcessResult) SortByPath() {
	sort.Slice(r.Included, func(i, j int) bool {
		return r.Included[i].Path < r.Included[j].Path
	})
	sort.Slice(r.Excluded, func(i, j int) bool {
		return r.Excluded[i].Path < r.Excluded[j].Path
	})
}

// LanguageList returns the distinct languages, sorted.
func (r *ProcessResult) LanguageList() []Language {
	langs := make([]Language, 0, len(r.Languages))
	for l := range r.Languages {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// AdditionalTypeList returns the distinct additional types, sorted.
func (r *ProcessResult) AdditionalTypeList() []AdditionalType {
	types := make([]AdditionalType, 0, len(r.AdditionalTypes))
	for t := range r.AdditionalTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
