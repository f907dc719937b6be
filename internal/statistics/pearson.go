package statistics

import "math"

// PearsonResult holds a correlation coefficient and its two-tailed p-value.
type PearsonResult struct {
	R      float64 `json:"r"`
	PValue float64 `json:"p_value"`
	N      int     `json:"n"`
}

// MinCorrelationSamples is the smallest n for which r is defined here.
const MinCorrelationSamples = 3

// PearsonCorrelation computes Pearson's r with a two-tailed p-value from the
// Student t distribution with n-2 degrees of freedom.
// Returns {R: 0, PValue: 1} when n < 3, the lengths differ, or either series
// has zero variance.
func PearsonCorrelation(x, y []float64) PearsonResult {
	n := len(x)
	if n != len(y) || n < MinCorrelationSamples {
		return PearsonResult{R: 0, PValue: 1, N: n}
	}

	meanX, meanY := mean(x), mean(y)
	var sumXY, sumX2, sumY2 float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumXY += dx * dy
		sumX2 += dx * dx
		sumY2 += dy * dy
	}
	if sumX2 == 0 || sumY2 == 0 {
		return PearsonResult{R: 0, PValue: 1, N: n}
	}

	r := sumXY / math.Sqrt(sumX2*sumY2)
	r = math.Max(-1, math.Min(1, r))

	return PearsonResult{R: r, PValue: correlationPValue(r, n), N: n}
}

// correlationPValue converts r into a t statistic and returns the two-tailed
// p-value.
func correlationPValue(r float64, n int) float64 {
	df := float64(n - 2)
	denom := 1 - r*r
	if denom <= 0 {
		return 0
	}
	t := math.Abs(r) * math.Sqrt(df/denom)
	return tDistributionPValue(t, df)
}

// tDistributionPValue returns P(|T| >= t) for Student's t with df degrees of
// freedom. Above 100 df the normal approximation is used.
func tDistributionPValue(t, df float64) float64 {
	var p float64
	if df > 100 {
		p = 2 * (1 - normalCDF(t))
	} else {
		p = regularizedIncompleteBeta(df/(df+t*t), df/2, 0.5)
	}
	return clamp01(p)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 1
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
