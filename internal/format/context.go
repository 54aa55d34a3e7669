package format

import (
	"fmt"
	"io"

	"github.com/petrarca/context-scanner/internal/metadata"
	"github.com/petrarca/context-scanner/internal/scan"
)

// ContextFormatter renders a minimal delimiter-based format: one header
// line per file, then its raw content. The cheapest format in tokens.
type ContextFormatter struct{}

func (f *ContextFormatter) Format(w io.Writer, result *scan.ProcessResult, meta *metadata.ScanMetadata) error {
	for i, rec := range result.Included {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "--- %s ---\n", rec.Path); err != nil {
			return err
		}
		if _, err := w.Write(rec.Content); err != nil {
			return err
		}
		if len(rec.Content) > 0 && rec.Content[len(rec.Content)-1] != '\n' {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
