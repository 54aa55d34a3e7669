// Package token provides heuristic token estimation for LLM context sizing
// and statistical outlier filtering over estimated counts.
package token

import (
	"math"

	"github.com/petrarca/context-scanner/internal/scan"
)

// Per-family bytes-to-tokens multipliers. These are calibration constants,
// not a tokenizer: dense syntaxes tokenize heavier per byte than whitespace-
// heavy ones.
const (
	multiplierScript  = 0.35 // JS/TS family
	multiplierPython  = 0.30
	multiplierManaged = 0.28 // JVM and .NET family
	multiplierNative  = 0.25
	multiplierZig     = 0.24
	multiplierYAML    = 0.27
	multiplierDefault = 0.25
)

var languageMultipliers = map[scan.Language]float64{
	scan.LangJavaScript: multiplierScript,
	scan.LangTypeScript: multiplierScript,
	scan.LangPython:     multiplierPython,
	scan.LangJava:       multiplierManaged,
	scan.LangCSharp:     multiplierManaged,
	scan.LangKotlin:     multiplierManaged,
	scan.LangScala:      multiplierManaged,
	scan.LangC:          multiplierNative,
	scan.LangCpp:        multiplierNative,
	scan.LangRust:       multiplierNative,
	scan.LangGo:         multiplierNative,
	scan.LangZig:        multiplierZig,
}

// Estimate approximates the token count of content as round(len * multiplier)
// with a per-language-family multiplier. It is intentionally rough; real
// tokenization depends on the model.
func Estimate(content []byte, fileType scan.FileType) int {
	return int(math.Round(float64(len(content)) * multiplierFor(fileType)))
}

func multiplierFor(fileType scan.FileType) float64 {
	switch fileType.Kind {
	case scan.KindLanguage:
		if m, ok := languageMultipliers[fileType.Language]; ok {
			return m
		}
	case scan.KindAdditional:
		if fileType.Additional == scan.TypeYAML {
			return multiplierYAML
		}
	}
	return multiplierDefault
}
