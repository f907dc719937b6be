package statistics

import "math"

// MeanAbsoluteError returns sum(|predicted - actual|) / n.
// Returns 0 for empty or mismatched input.
func MeanAbsoluteError(predicted, actual []float64) float64 {
	if len(predicted) != len(actual) || len(predicted) == 0 {
		return 0
	}
	sum := 0.0
	for i := range predicted {
		sum += math.Abs(predicted[i] - actual[i])
	}
	return sum / float64(len(predicted))
}

// RootMeanSquareError returns sqrt(sum((predicted - actual)^2) / n).
// Returns 0 for empty or mismatched input.
func RootMeanSquareError(predicted, actual []float64) float64 {
	if len(predicted) != len(actual) || len(predicted) == 0 {
		return 0
	}
	sum := 0.0
	for i := range predicted {
		d := predicted[i] - actual[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(predicted)))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
