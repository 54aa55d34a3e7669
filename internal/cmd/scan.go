package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/petrarca/context-scanner/internal/aggregator"
	"github.com/petrarca/context-scanner/internal/config"
	"github.com/petrarca/context-scanner/internal/format"
	"github.com/petrarca/context-scanner/internal/progress"
	"github.com/spf13/cobra"
)

var settings *config.Settings

var scanCmd = &cobra.Command{
	Use:   "scan [target...]",
	Short: "Scan targets and emit their content as one context document",
	Long: `Scan walks every target (directories recursively, files directly),
applies ignore patterns, binary detection and token filters, and writes
the included file contents plus metadata to stdout, a file or the
clipboard. Multiple targets share one token budget and one result.`,
	Args: cobra.ArbitraryArgs,
	Run:  runScan,
}

func init() {
	// Load settings from environment first so env values become flag
	// defaults and show up in --help.
	settings = config.LoadSettings()

	flags := scanCmd.Flags()
	flags.StringVarP(&settings.OutputFile, "output", "o", settings.OutputFile, "Output file path (default: stdout, \"-\" forces stdout)")
	flags.StringVarP(&settings.Format, "format", "f", settings.Format, "Output format: xml, json, markdown or context")
	flags.BoolVarP(&settings.Clipboard, "clipboard", "c", false, "Copy the output to the system clipboard instead of stdout")
	flags.BoolVar(&settings.PrettyPrint, "pretty", settings.PrettyPrint, "Indent structured output formats")

	flags.StringSliceVarP(&settings.IgnorePatterns, "exclude", "e", settings.IgnorePatterns, "Additional exclude patterns (repeatable or comma-separated)")
	flags.BoolVar(&settings.NoDefaultPatterns, "no-default-patterns", false, "Do not apply the built-in exclude patterns")
	flags.StringSliceVar(&settings.Extensions, "extensions", settings.Extensions, "Restrict included files to these extensions")
	flags.StringSliceVar(&settings.IncludeDotFiles, "include-dotfiles", nil, "Dot-file basenames to include despite the leading dot")

	flags.Bool("filter-config", false, "Exclude configuration files (yaml, toml, lockfiles, ...)")
	flags.BoolVar(&settings.DisableTokenFilter, "no-token-filter", false, "Disable the statistical token anomaly filter")
	flags.BoolVar(&settings.DisableLanguageFilter, "no-language-filter", false, "Include files whose type is not recognized")
	flags.IntVar(&settings.MaxTokens, "max-tokens", settings.MaxTokens, "Global token budget across all targets (0 = unlimited)")

	flags.BoolVar(&settings.CodeStats, "code-stats", settings.CodeStats, "Collect per-language code statistics into the metadata")
	flags.BoolVarP(&settings.Verbose, "verbose", "v", settings.Verbose, "Report per-file progress on stderr")
	flags.BoolVar(&settings.TraceTimings, "trace-timings", false, "Report per-directory scan timings (implies --verbose)")

	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&settings.LogFormat, "log-format", settings.LogFormat, "Log format: text or json")
	flags.StringVar(&settings.LogFile, "log-file", settings.LogFile, "Write logs to a file instead of stderr")

	rootCmd.AddCommand(scanCmd)
}

// configureLogging applies the logging flags and returns the logger used
// for the rest of the run.
func configureLogging(cmd *cobra.Command) *slog.Logger {
	if logLevel, _ := cmd.Flags().GetString("log-level"); logLevel != "" {
		level, err := parseLogLevel(logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v, keeping %s\n", err, settings.LogLevel)
		} else {
			settings.LogLevel = level
		}
	}
	return settings.ConfigureLogger()
}

// parseLogLevel converts a string log level to slog.Level
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// scanTargets cleans up the positional arguments. No arguments means the
// current directory.
func scanTargets(args []string) []string {
	targets := make([]string, 0, len(args))
	for _, arg := range args {
		if arg = strings.TrimSpace(arg); arg != "" {
			targets = append(targets, arg)
		}
	}
	if len(targets) == 0 {
		targets = []string{"."}
	}
	return targets
}

// projectDir resolves the directory the project config is looked up in:
// the first target itself, or its parent when the target is a file.
func projectDir(target string) string {
	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		return target
	}
	return filepath.Dir(target)
}

func runScan(cmd *cobra.Command, args []string) {
	logger := configureLogging(cmd)
	targets := scanTargets(args)

	// -o - means stdout, same as no -o at all
	if settings.OutputFile == "-" {
		settings.OutputFile = ""
	}

	// The config filter is off by default, so the flag is inverted into
	// the settings field only when given.
	if cmd.Flags().Changed("filter-config") {
		filterConfig, _ := cmd.Flags().GetBool("filter-config")
		settings.DisableConfigFilter = !filterConfig
	}

	project, err := config.LoadProjectConfig(projectDir(targets[0]))
	if err != nil {
		logger.Error("Invalid project config", "error", err)
		os.Exit(1)
	}
	project.ApplyTo(settings)

	if err := settings.Validate(); err != nil {
		logger.Error("Invalid settings", "error", err)
		os.Exit(1)
	}

	prog := progress.New(settings.Verbose || settings.TraceTimings, progress.NewSimpleHandler(os.Stderr))
	if settings.TraceTimings {
		prog.EnableTimings()
	}

	result, meta, err := aggregator.New(settings, logger, prog, Version).Run(targets)
	if err != nil {
		logger.Error("Scan failed", "error", err)
		os.Exit(1)
	}
	if project != nil {
		meta.SetProperties(project.Properties)
	}

	formatter, err := format.New(settings.Format, settings.PrettyPrint)
	if err != nil {
		logger.Error("Invalid output format", "error", err)
		os.Exit(1)
	}

	if err := writeOutput(formatter, result, meta, settings, prog); err != nil {
		logger.Error("Failed to write output", "error", err)
		os.Exit(1)
	}

	printSummary(os.Stderr, result, meta, settings)
}
