package token

import (
	"bytes"
	"testing"

	"github.com/petrarca/context-scanner/internal/scan"
	"github.com/stretchr/testify/assert"
)

func TestEstimate_Multipliers(t *testing.T) {
	content := bytes.Repeat([]byte{'x'}, 1000)

	tests := []struct {
		name     string
		fileType scan.FileType
		want     int
	}{
		{"javascript", scan.LanguageType(scan.LangJavaScript), 350},
		{"typescript", scan.LanguageType(scan.LangTypeScript), 350},
		{"python", scan.LanguageType(scan.LangPython), 300},
		{"java", scan.LanguageType(scan.LangJava), 280},
		{"csharp", scan.LanguageType(scan.LangCSharp), 280},
		{"go", scan.LanguageType(scan.LangGo), 250},
		{"rust", scan.LanguageType(scan.LangRust), 250},
		{"zig", scan.LanguageType(scan.LangZig), 240},
		{"yaml", scan.AdditionalFileType(scan.TypeYAML), 270},
		{"markdown uses default", scan.AdditionalFileType(scan.TypeMarkdown), 250},
		{"unknown uses default", scan.UnknownType(), 250},
		{"unmapped language uses default", scan.LanguageType(scan.LangLua), 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Estimate(content, tt.fileType))
		})
	}
}

func TestEstimate_Rounding(t *testing.T) {
	// 3 bytes of python: 3 * 0.30 = 0.9 rounds to 1.
	assert.Equal(t, 1, Estimate([]byte("abc"), scan.LanguageType(scan.LangPython)))
	// 1 byte of go: 0.25 rounds to 0.
	assert.Equal(t, 0, Estimate([]byte("a"), scan.LanguageType(scan.LangGo)))
	assert.Equal(t, 0, Estimate(nil, scan.LanguageType(scan.LangGo)))
}

func TestEstimate_Monotonic(t *testing.T) {
	ft := scan.LanguageType(scan.LangPython)
	prev := -1
	for size := 0; size <= 4096; size += 512 {
		got := Estimate(bytes.Repeat([]byte{'x'}, size), ft)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}
