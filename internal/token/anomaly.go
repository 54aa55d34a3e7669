package token

import (
	"math"

	"github.com/petrarca/context-scanner/internal/scan"
)

const (
	// anomalyActivationTotal is the total token count below which the
	// anomaly filter does not run at all.
	anomalyActivationTotal = 50000

	// anomalyAbsoluteFloor is the per-file count a file must exceed, in
	// addition to the statistical threshold, before it can be excluded.
	// It keeps small corpora from penalizing their relatively largest file.
	anomalyAbsoluteFloor = 10000

	anomalyStdDevFactor = 2.0
)

// FilterAnomalies moves statistical outliers from result.Included to
// result.Excluded with a TokenAnomaly reason. A file is an outlier iff its
// token count exceeds both mean + 2*stddev (population stddev) and the
// absolute floor. The filter is a no-op when the total included token count
// is at or below the activation threshold. It is meant to run exactly once,
// over the merged result of all targets.
func FilterAnomalies(result *scan.ProcessResult) {
	if len(result.Included) == 0 || result.TotalTokens() <= anomalyActivationTotal {
		return
	}

	mean, stddev := meanStdDev(result.Included)
	threshold := mean + anomalyStdDevFactor*stddev

	kept := result.Included[:0]
	for _, file := range result.Included {
		if float64(file.Tokens) > threshold && file.Tokens > anomalyAbsoluteFloor {
			result.AddExcluded(file.Path, scan.TokenAnomaly(file.Tokens, int(math.Round(threshold)), mean, stddev))
			continue
		}
		kept = append(kept, file)
	}
	result.Included = kept
}

func meanStdDev(files []scan.FileRecord) (mean, stddev float64) {
	n := float64(len(files))
	var sum float64
	for _, f := range files {
		sum += float64(f.Tokens)
	}
	mean = sum / n

	var variance float64
	for _, f := range files {
		d := float64(f.Tokens) - mean
		variance += d * d
	}
	variance /= n

	return mean, math.Sqrt(variance)
}
