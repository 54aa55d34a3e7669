package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/petrarca/context-scanner/internal/validation"
	"gopkg.in/yaml.v3"
)

// ProjectConfigName is the per-project configuration file looked up in the
// first target directory.
const ProjectConfigName = ".context-scanner.yml"

// ProjectConfig represents the .context-scanner.yml configuration file.
// Everything in it can also be set on the command line; CLI values win.
type ProjectConfig struct {
	Exclude         []string       `yaml:"exclude,omitempty"`
	Extensions      []string       `yaml:"extensions,omitempty"`
	IncludeDotFiles []string       `yaml:"include_dotfiles,omitempty"`
	MaxTokens       *int           `yaml:"max_tokens,omitempty"`
	Output          *OutputConfig  `yaml:"output,omitempty"`
	Options         *OptionsConfig `yaml:"options,omitempty"`
	Properties      map[string]any `yaml:"properties,omitempty"`
}

// OutputConfig defines output settings
type OutputConfig struct {
	File   string `yaml:"file,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// OptionsConfig defines scanner behavior toggles
type OptionsConfig struct {
	FilterConfig          *bool `yaml:"filter_config,omitempty"`
	DisableTokenFilter    *bool `yaml:"disable_token_filter,omitempty"`
	DisableLanguageFilter *bool `yaml:"disable_language_filter,omitempty"`
	NoDefaultPatterns     *bool `yaml:"no_default_patterns,omitempty"`
	CodeStats             *bool `yaml:"code_stats,omitempty"`
}

// LoadProjectConfig loads .context-scanner.yml from the given directory.
// A missing file is not an error and yields nil. The file is validated
// against the embedded schema before parsing, so typos in option names
// surface as errors instead of being silently dropped.
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ProjectConfigName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	if err := validation.ValidateYAML(validation.ProjectConfigSchema, data); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	var config ProjectConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	return &config, nil
}

// ApplyTo overlays the project config onto settings, without overriding
// values the CLI already set. Lists are merged; scalars only fill defaults.
func (c *ProjectConfig) ApplyTo(s *Settings) {
	if c == nil {
		return
	}

	s.IgnorePatterns = append(s.IgnorePatterns, c.Exclude...)
	s.IncludeDotFiles = append(s.IncludeDotFiles, c.IncludeDotFiles...)

	if len(s.Extensions) == 0 {
		s.Extensions = append(s.Extensions, c.Extensions...)
	}

	if c.MaxTokens != nil && s.MaxTokens == 0 {
		s.MaxTokens = *c.MaxTokens
	}

	if c.Output != nil {
		if s.OutputFile == "" {
			s.OutputFile = c.Output.File
		}
		if c.Output.Format != "" && s.Format == DefaultSettings().Format {
			s.Format = c.Output.Format
		}
	}

	if c.Options != nil {
		if c.Options.FilterConfig != nil {
			s.DisableConfigFilter = !*c.Options.FilterConfig
		}
		if c.Options.DisableTokenFilter != nil {
			s.DisableTokenFilter = *c.Options.DisableTokenFilter
		}
		if c.Options.DisableLanguageFilter != nil {
			s.DisableLanguageFilter = *c.Options.DisableLanguageFilter
		}
		if c.Options.NoDefaultPatterns != nil {
			s.NoDefaultPatterns = *c.Options.NoDefaultPatterns
		}
		if c.Options.CodeStats != nil {
			s.CodeStats = *c.Options.CodeStats
		}
	}
}
