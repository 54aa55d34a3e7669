// Package format renders a merged scan result for consumption: structured
// XML, machine-readable JSON with metadata, markdown code blocks, or a
// plain delimiter-based context format. Formatters are read-only
// projections of the result.
package format

import (
	"fmt"
	"io"

	"github.com/petrarca/context-scanner/internal/config"
	"github.com/petrarca/context-scanner/internal/metadata"
	"github.com/petrarca/context-scanner/internal/scan"
)

// Formatter renders a scan result to a writer.
type Formatter interface {
	Format(w io.Writer, result *scan.ProcessResult, meta *metadata.ScanMetadata) error
}

// New returns the formatter for a format name from config.
func New(name string, pretty bool) (Formatter, error) {
	switch name {
	case config.FormatXML:
		return &XMLFormatter{}, nil
	case config.FormatJSON:
		return &JSONFormatter{Pretty: pretty}, nil
	case config.FormatMarkdown:
		return &MarkdownFormatter{}, nil
	case config.FormatContext:
		return &ContextFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}
