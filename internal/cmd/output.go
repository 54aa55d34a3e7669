package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/petrarca/context-scanner/internal/config"
	"github.com/petrarca/context-scanner/internal/format"
	"github.com/petrarca/context-scanner/internal/metadata"
	"github.com/petrarca/context-scanner/internal/progress"
	"github.com/petrarca/context-scanner/internal/scan"
)

// writeOutput renders the result once and delivers it to the configured
// destinations. Clipboard replaces stdout; an output file is written in
// addition to the clipboard when both are requested.
func writeOutput(formatter format.Formatter, result *scan.ProcessResult, meta *metadata.ScanMetadata, settings *config.Settings, prog *progress.Progress) error {
	var buf bytes.Buffer
	if err := formatter.Format(&buf, result, meta); err != nil {
		return err
	}

	if settings.Clipboard {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Output copied to clipboard")
	}

	if settings.OutputFile != "" {
		prog.FileWriting(settings.OutputFile)
		if err := os.WriteFile(settings.OutputFile, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", settings.OutputFile, err)
		}
		prog.FileWritten(settings.OutputFile)
		return nil
	}

	if settings.Clipboard {
		return nil
	}

	_, err := os.Stdout.Write(buf.Bytes())
	return err
}

var (
	summaryLabelStyle = lipgloss.NewStyle().Bold(true)
	summaryValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// printSummary writes a short human-readable run summary to w. Styling is
// applied only when w is a terminal.
func printSummary(w io.Writer, result *scan.ProcessResult, meta *metadata.ScanMetadata, settings *config.Settings) {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	label := func(s string) string {
		if styled {
			return summaryLabelStyle.Render(s)
		}
		return s
	}
	value := func(s string) string {
		if styled {
			return summaryValueStyle.Render(s)
		}
		return s
	}

	if meta.RepoName != "" {
		fmt.Fprintf(w, "%s %s\n", label("Repository:"), value(meta.RepoName))
	}
	fmt.Fprintf(w, "%s %s included, %s excluded\n", label("Files:"),
		value(fmt.Sprintf("%d", len(result.Included))),
		value(fmt.Sprintf("%d", len(result.Excluded))))
	fmt.Fprintf(w, "%s %s\n", label("Tokens:"), value(fmt.Sprintf("%d", result.TotalTokens())))
	fmt.Fprintf(w, "%s %s\n", label("Duration:"),
		value((time.Duration(meta.DurationMs) * time.Millisecond).String()))
	if settings.OutputFile != "" {
		fmt.Fprintf(w, "%s %s\n", label("Output:"), value(settings.OutputFile))
	}
}
