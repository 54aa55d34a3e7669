package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is the tool version, overridable at build time via ldflags.
var Version = "0.9.0"

var rootCmd = &cobra.Command{
	Use:   "context-scanner",
	Short: "Collect source files into an LLM-ready context document",
	Long: `context-scanner walks one or more targets, filters out binaries,
generated artifacts and oversized files, estimates token counts and emits
the surviving file contents plus scan metadata in a single document.`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
