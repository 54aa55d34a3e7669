// Package config holds scanner configuration: defaults, environment
// overrides, the optional per-project config file, and validation.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
)

// Output formats supported by the scan command.
const (
	FormatXML      = "xml"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatContext  = "context"
)

// Settings holds all scanner configuration
type Settings struct {
	// Output settings
	OutputFile  string // empty = stdout
	Format      string
	Clipboard   bool
	PrettyPrint bool

	// Scan behavior
	IgnorePatterns    []string // user-supplied, merged with the built-in defaults
	NoDefaultPatterns bool
	Extensions        []string // allow-list, leading dot optional
	IncludeDotFiles   []string // dot-file basenames opted back in

	// DisableConfigFilter defaults to true: config-category files are kept
	// unless filtering is explicitly requested. The opposite default of the
	// other disable flags.
	DisableConfigFilter   bool
	DisableTokenFilter    bool
	DisableLanguageFilter bool

	MaxTokens int // global token budget, 0 = unlimited

	CodeStats    bool
	Verbose      bool
	TraceTimings bool

	// Logging
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string // Optional: write logs to file instead of stderr
}

// DefaultSettings returns default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Format:              FormatXML,
		PrettyPrint:         true,
		DisableConfigFilter: true,
		LogLevel:            slog.LevelError,
		LogFormat:           "text",
	}
}

// LoadSettings creates settings from defaults and applies environment
// variable overrides.
func LoadSettings() *Settings {
	settings := DefaultSettings()

	if outputFile := os.Getenv("CONTEXT_SCANNER_OUTPUT"); outputFile != "" {
		settings.OutputFile = outputFile
	}

	if format := os.Getenv("CONTEXT_SCANNER_FORMAT"); format != "" {
		settings.Format = format
	}

	if patterns := os.Getenv("CONTEXT_SCANNER_EXCLUDE"); patterns != "" {
		settings.IgnorePatterns = splitList(patterns)
	}

	if extensions := os.Getenv("CONTEXT_SCANNER_EXTENSIONS"); extensions != "" {
		settings.Extensions = splitList(extensions)
	}

	if maxTokens := os.Getenv("CONTEXT_SCANNER_MAX_TOKENS"); maxTokens != "" {
		if n, err := strconv.Atoi(maxTokens); err == nil && n >= 0 {
			settings.MaxTokens = n
		}
	}

	if logLevel := os.Getenv("CONTEXT_SCANNER_LOG_LEVEL"); logLevel != "" {
		if level, err := parseLogLevel(logLevel); err == nil {
			settings.LogLevel = level
		}
	}

	if logFormat := os.Getenv("CONTEXT_SCANNER_LOG_FORMAT"); logFormat != "" {
		settings.LogFormat = logFormat
	}

	if logFile := os.Getenv("CONTEXT_SCANNER_LOG_FILE"); logFile != "" {
		settings.LogFile = logFile
	}

	if verbose := os.Getenv("CONTEXT_SCANNER_VERBOSE"); verbose != "" {
		settings.Verbose = strings.ToLower(verbose) == "true"
	}

	if codeStats := os.Getenv("CONTEXT_SCANNER_CODE_STATS"); codeStats != "" {
		settings.CodeStats = strings.ToLower(codeStats) == "true"
	}

	return settings
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// parseLogLevel converts string log level to slog.Level
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

// ConfigureLogger sets up the global logger based on settings
func (s *Settings) ConfigureLogger() *slog.Logger {
	var output io.Writer = os.Stderr
	if s.LogFile != "" {
		file, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Cannot open log file %s: %v\n", s.LogFile, err)
		} else {
			output = file
		}
	}

	opts := &slog.HandlerOptions{Level: s.LogLevel}

	var handler slog.Handler
	if s.LogFormat == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// Validate checks if settings are valid
func (s *Settings) Validate() error {
	switch s.Format {
	case FormatXML, FormatJSON, FormatMarkdown, FormatContext:
	default:
		return fmt.Errorf("unknown output format %q (expected %s, %s, %s or %s)",
			s.Format, FormatXML, FormatJSON, FormatMarkdown, FormatContext)
	}

	if s.MaxTokens < 0 {
		return fmt.Errorf("max tokens must not be negative, got %d", s.MaxTokens)
	}

	for _, pattern := range s.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (expected text or json)", s.LogFormat)
	}

	return nil
}

// EffectiveIgnorePatterns returns the user patterns merged with the built-in
// default list, deduplicated, defaults first. The caller supplies the
// defaults so this package stays free of filtering logic.
func (s *Settings) EffectiveIgnorePatterns(defaults []string) []string {
	var merged []string
	seen := make(map[string]struct{})

	add := func(patterns []string) {
		for _, p := range patterns {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			merged = append(merged, p)
		}
	}

	if !s.NoDefaultPatterns {
		add(defaults)
	}
	add(s.IgnorePatterns)

	return merged
}

// NormalizedExtensions returns the allow-list lowercased with leading dots
// stripped, ready for comparison against path extensions.
func (s *Settings) NormalizedExtensions() []string {
	if len(s.Extensions) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(s.Extensions))
	for _, ext := range s.Extensions {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext != "" {
			normalized = append(normalized, ext)
		}
	}
	return normalized
}
