// Package license detects the license of scanned targets for the scan
// metadata block.
package license

import (
	"math"
	"sort"

	"github.com/go-enry/go-license-detector/v4/licensedb"
	"github.com/go-enry/go-license-detector/v4/licensedb/filer"
)

// Match represents a detected license with metadata
type Match struct {
	License    string  `json:"license"`
	Confidence float64 `json:"confidence"`
	File       string  `json:"file,omitempty"`
}

// minConfidence filters out the long tail of weak matches the database
// reports for any LICENSE-shaped file.
const minConfidence = 0.9

// DetectInDirectory detects licenses from LICENSE-type files in a directory.
// Only matches above the confidence floor are returned, strongest first.
// Detection failures (no license file, unreadable directory) yield nil.
func DetectInDirectory(dirPath string) []Match {
	fs, err := filer.FromDirectory(dirPath)
	if err != nil {
		return nil
	}

	results, err := licensedb.Detect(fs)
	if err != nil {
		return nil
	}

	var matches []Match
	for licenseID, result := range results {
		if result.Confidence > minConfidence {
			matches = append(matches, Match{
				License:    licenseID,
				Confidence: math.Round(float64(result.Confidence)*100) / 100,
				File:       result.File,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].License < matches[j].License
	})

	return matches
}
