// Package detect classifies file content (binary vs text) and file paths
// (programming language, additional type, or unknown).
package detect

import "bytes"

// magicSignatures are well-known file signatures checked at offset 0.
// Any match classifies the buffer as binary without sampling.
var magicSignatures = [][]byte{
	{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, // PNG
	{0x47, 0x49, 0x46, 0x38},                         // GIF
	{0xFF, 0xD8, 0xFF},                               // JPEG
	{0x50, 0x4B, 0x03, 0x04},                         // ZIP (also jar, docx, ...)
	{0x1F, 0x8B},                                     // GZIP
	{0x7F, 0x45, 0x4C, 0x46},                         // ELF
	{0x4D, 0x5A},                                     // DOS/PE
	{0x25, 0x50, 0x44, 0x46},                         // PDF
}

const (
	sampleSize        = 8 * 1024
	nullByteThreshold = 0.10
	nonPrintThreshold = 0.30
)

// IsBinary reports whether the buffer holds binary content. It checks the
// magic-number table first, then samples up to the first 8 KiB for the
// fraction of null bytes and of non-printable bytes (control characters
// other than \n, \r, \t, plus DEL). Empty content is never binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	for _, sig := range magicSignatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}

	sample := data
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	var nulls, nonPrintable int
	for _, b := range sample {
		if b == 0 {
			nulls++
		}
		if isNonPrintable(b) {
			nonPrintable++
		}
	}

	n := float64(len(sample))
	if float64(nulls)/n > nullByteThreshold {
		return true
	}
	return float64(nonPrintable)/n > nonPrintThreshold
}

func isNonPrintable(b byte) bool {
	if b == '\n' || b == '\r' || b == '\t' {
		return false
	}
	return b < 0x20 || b == 0x7F
}
