package format

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/petrarca/context-scanner/internal/metadata"
	"github.com/petrarca/context-scanner/internal/scan"
)

// XMLFormatter renders the result as structured markup with file content
// in CDATA sections.
type XMLFormatter struct{}

type xmlDocument struct {
	XMLName  xml.Name      `xml:"context"`
	RepoName string        `xml:"repo,attr,omitempty"`
	Tokens   int           `xml:"tokens,attr"`
	Files    []xmlFile     `xml:"files>file"`
	Excluded []xmlExcluded `xml:"excluded>file,omitempty"`
}

type xmlFile struct {
	Path    string `xml:"path,attr"`
	Type    string `xml:"type,attr"`
	Lines   int    `xml:"lines,attr"`
	Tokens  int    `xml:"tokens,attr"`
	Content string `xml:",cdata"`
}

type xmlExcluded struct {
	Path    string `xml:"path,attr"`
	Reason  string `xml:"reason,attr"`
	Pattern string `xml:"pattern,attr,omitempty"`
}

func (f *XMLFormatter) Format(w io.Writer, result *scan.ProcessResult, meta *metadata.ScanMetadata) error {
	doc := xmlDocument{Tokens: result.TotalTokens()}
	if meta != nil {
		doc.RepoName = meta.RepoName
	}

	for _, rec := range result.Included {
		doc.Files = append(doc.Files, xmlFile{
			Path:    rec.Path,
			Type:    rec.Type.String(),
			Lines:   rec.Lines,
			Tokens:  rec.Tokens,
			Content: string(rec.Content),
		})
	}
	for _, ex := range result.Excluded {
		doc.Excluded = append(doc.Excluded, xmlExcluded{
			Path:    ex.Path,
			Reason:  ex.Reason.Label(),
			Pattern: ex.Reason.Pattern,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
