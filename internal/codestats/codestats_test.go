package codestats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goSample = `package main

import "fmt"

// main prints a greeting.
func main() {
	fmt.Println("hello")
}
`

const pySample = `# entry point
def main():
    print("hello")


main()
`

func TestCollector_ProcessFile(t *testing.T) {
	c := NewCollector()
	c.ProcessFile("main.go", []byte(goSample))
	c.ProcessFile("app.py", []byte(pySample))

	stats := c.Stats()

	assert.Equal(t, 2, stats.Total.Files)
	assert.Greater(t, stats.Total.Lines, int64(0))
	assert.Greater(t, stats.Total.Code, int64(0))
	assert.Greater(t, stats.Total.Comments, int64(0))

	require.Len(t, stats.ByLanguage, 2)
	languages := []string{stats.ByLanguage[0].Language, stats.ByLanguage[1].Language}
	assert.Contains(t, languages, "Go")
	assert.Contains(t, languages, "Python")
}

func TestCollector_SortedByLinesDescending(t *testing.T) {
	c := NewCollector()
	c.ProcessFile("big.go", []byte(goSample+goSample+goSample))
	c.ProcessFile("small.py", []byte(pySample))

	stats := c.Stats()
	require.Len(t, stats.ByLanguage, 2)
	assert.Equal(t, "Go", stats.ByLanguage[0].Language)
	assert.GreaterOrEqual(t, stats.ByLanguage[0].Lines, stats.ByLanguage[1].Lines)
}

func TestCollector_EmptyContentSkipped(t *testing.T) {
	c := NewCollector()
	c.ProcessFile("empty.go", nil)

	stats := c.Stats()
	assert.Equal(t, 0, stats.Total.Files)
	assert.Empty(t, stats.ByLanguage)
}

func TestCollector_Metrics(t *testing.T) {
	c := NewCollector()
	c.ProcessFile("main.go", []byte(goSample))

	stats := c.Stats()
	require.NotNil(t, stats.Metrics)
	assert.Greater(t, stats.Metrics.CodeDensity, 0.0)
	require.NotEmpty(t, stats.Metrics.PrimaryLanguages)
	assert.Equal(t, "Go", stats.Metrics.PrimaryLanguages[0].Language)
	assert.InDelta(t, 1.0, stats.Metrics.PrimaryLanguages[0].Pct, 0.001)
}
