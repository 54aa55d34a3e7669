package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/petrarca/context-scanner/internal/metadata"
	"github.com/petrarca/context-scanner/internal/scan"
)

// MarkdownFormatter renders each included file as a fenced code block with
// a language hint.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, result *scan.ProcessResult, meta *metadata.ScanMetadata) error {
	title := "Context"
	if meta != nil && meta.RepoName != "" {
		title = meta.RepoName
	}
	if _, err := fmt.Fprintf(w, "# %s\n\n", title); err != nil {
		return err
	}

	for _, rec := range result.Included {
		fence := fenceFor(rec.Content)
		if _, err := fmt.Fprintf(w, "## %s\n\n%s%s\n%s\n%s\n\n",
			rec.Path, fence, fenceHint(rec),
			strings.TrimRight(string(rec.Content), "\n"), fence); err != nil {
			return err
		}
	}

	return nil
}

// fenceHint picks the code-fence language tag. Classified files use their
// type name; for unknown files enry takes a guess from path and content.
func fenceHint(rec scan.FileRecord) string {
	if !rec.Type.IsUnknown() {
		return rec.Type.String()
	}
	if language := enry.GetLanguage(rec.Path, rec.Content); language != "" {
		return strings.ToLower(language)
	}
	return ""
}

// fenceFor widens the fence when the content itself contains backtick runs.
func fenceFor(content []byte) string {
	fence := "```"
	for strings.Contains(string(content), fence) {
		fence += "`"
	}
	return fence
}
