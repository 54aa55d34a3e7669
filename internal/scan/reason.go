package scan

import "fmt"

// ReasonKind discriminates the exclusion reason variants. Keeping this a
// closed enum (rather than free-form strings) lets switches over reasons
// stay exhaustive.
type ReasonKind int

const (
	// ReasonIgnored means an ignore pattern matched the path.
	ReasonIgnored ReasonKind = iota
	// ReasonUnknownType means the file's type could not be classified and
	// the language filter is active.
	ReasonUnknownType
	// ReasonConfiguration means the file is a config-category type and
	// config filtering is enabled.
	ReasonConfiguration
	// ReasonTokenAnomaly means the file was a statistical outlier by
	// token count in the merged result.
	ReasonTokenAnomaly
	// ReasonBinary means binary content was detected.
	ReasonBinary
)

// ExclusionReason records why a file was excluded. Exactly one reason is
// recorded per excluded file; payload fields are only set for the kinds
// that carry them.
type ExclusionReason struct {
	Kind    ReasonKind
	Pattern string // ReasonIgnored: the matching pattern text

	// ReasonTokenAnomaly payload
	Tokens    int
	Threshold int
	Mean      float64
	StdDev    float64
}

// Ignored returns an exclusion reason for an ignore-pattern match.
func Ignored(pattern string) ExclusionReason {
	return ExclusionReason{Kind: ReasonIgnored, Pattern: pattern}
}

// UnknownFileType returns an exclusion reason for unclassifiable files.
func UnknownFileType() ExclusionReason {
	return ExclusionReason{Kind: ReasonUnknownType}
}

// Configuration returns an exclusion reason for filtered config files.
func Configuration() ExclusionReason {
	return ExclusionReason{Kind: ReasonConfiguration}
}

// Binary returns an exclusion reason for binary content.
func Binary() ExclusionReason {
	return ExclusionReason{Kind: ReasonBinary}
}

// TokenAnomaly returns an exclusion reason for statistical outliers.
func TokenAnomaly(tokens, threshold int, mean, stddev float64) ExclusionReason {
	return ExclusionReason{
		Kind:      ReasonTokenAnomaly,
		Tokens:    tokens,
		Threshold: threshold,
		Mean:      mean,
		StdDev:    stddev,
	}
}

// Label returns the stable machine-readable name of the reason kind.
func (r ExclusionReason) Label() string {
	switch r.Kind {
	case ReasonIgnored:
		return "ignored"
	case ReasonUnknownType:
		return "unknown_type"
	case ReasonConfiguration:
		return "configuration"
	case ReasonTokenAnomaly:
		return "token_anomaly"
	case ReasonBinary:
		return "binary"
	}
	return "unknown"
}

// String returns a human-readable description of the reason.
func (r ExclusionReason) String() string {
	switch r.Kind {
	case ReasonIgnored:
		return fmt.Sprintf("ignored (pattern: %s)", r.Pattern)
	case ReasonUnknownType:
		return "unknown file type"
	case ReasonConfiguration:
		return "configuration file"
	case ReasonTokenAnomaly:
		return fmt.Sprintf("token anomaly (%d tokens, threshold %d, mean %.1f, stddev %.1f)",
			r.Tokens, r.Threshold, r.Mean, r.StdDev)
	case ReasonBinary:
		return "binary content"
	}
	return "unknown"
}
