package format

import (
	"encoding/json"
	"io"

	"github.com/petrarca/context-scanner/internal/metadata"
	"github.com/petrarca/context-scanner/internal/scan"
)

// JSONFormatter renders the result, including full scan metadata, as JSON.
type JSONFormatter struct {
	Pretty bool
}

type jsonDocument struct {
	Metadata *metadata.ScanMetadata `json:"metadata,omitempty"`
	Files    []jsonFile             `json:"files"`
	Excluded []jsonExcluded         `json:"excluded"`
}

type jsonFile struct {
	Path    string `json:"path"`
	Type    string `json:"type"`
	Lines   int    `json:"lines"`
	Tokens  int    `json:"tokens"`
	Content string `json:"content"`
}

type jsonExcluded struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

func (f *JSONFormatter) Format(w io.Writer, result *scan.ProcessResult, meta *metadata.ScanMetadata) error {
	doc := jsonDocument{
		Metadata: meta,
		Files:    make([]jsonFile, 0, len(result.Included)),
		Excluded: make([]jsonExcluded, 0, len(result.Excluded)),
	}

	for _, rec := range result.Included {
		doc.Files = append(doc.Files, jsonFile{
			Path:    rec.Path,
			Type:    rec.Type.String(),
			Lines:   rec.Lines,
			Tokens:  rec.Tokens,
			Content: string(rec.Content),
		})
	}
	for _, ex := range result.Excluded {
		doc.Excluded = append(doc.Excluded, jsonExcluded{
			Path:   ex.Path,
			Reason: ex.Reason.Label(),
			Detail: ex.Reason.String(),
		})
	}

	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(doc)
}
