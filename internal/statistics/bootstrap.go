package statistics

import (
	"math"
	"math/rand/v2"
	"sort"
)

// ConfidenceInterval is a percentile bootstrap interval around a sample mean.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	Resamples       int     `json:"resamples"`
}

// DefaultBootstrapResamples is the number of resamples BootstrapMeanCI draws.
const DefaultBootstrapResamples = 10000

// bootstrapSeed fixes the resampling stream so a report is reproducible.
const bootstrapSeed = 0x6c65616476616c

// BootstrapMeanCI resamples values with replacement and returns the
// percentile interval of the resampled means at level, e.g. 0.95. Equal
// input always gives an equal interval. Fewer than two values give a
// degenerate interval at the mean with zero resamples.
func BootstrapMeanCI(values []float64, level float64) ConfidenceInterval {
	rng := rand.New(rand.NewPCG(bootstrapSeed, uint64(len(values))))
	return bootstrapMeanCI(values, level, DefaultBootstrapResamples, rng)
}

func bootstrapMeanCI(values []float64, level float64, resamples int, rng *rand.Rand) ConfidenceInterval {
	m := mean(values)
	n := len(values)
	if n < 2 || resamples < 1 {
		return ConfidenceInterval{Lower: m, Upper: m, Mean: m, ConfidenceLevel: level}
	}

	means := make([]float64, resamples)
	for i := range means {
		sum := 0.0
		for range n {
			sum += values[rng.IntN(n)]
		}
		means[i] = sum / float64(n)
	}
	sort.Float64s(means)

	alpha := 1 - level
	lo := int(math.Floor(alpha / 2 * float64(resamples)))
	hi := min(int(math.Floor((1-alpha/2)*float64(resamples))), resamples-1)

	return ConfidenceInterval{
		Lower:           means[lo],
		Upper:           means[hi],
		Mean:            m,
		ConfidenceLevel: level,
		Resamples:       resamples,
	}
}

// AbsoluteErrors returns |predicted[i] - actual[i]| for each pair.
// Returns nil for empty or mismatched input.
func AbsoluteErrors(predicted, actual []float64) []float64 {
	if len(predicted) != len(actual) || len(predicted) == 0 {
		return nil
	}
	out := make([]float64, len(predicted))
	for i := range predicted {
		out[i] = math.Abs(predicted[i] - actual[i])
	}
	return out
}
