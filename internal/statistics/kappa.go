package statistics

import "math"

// KappaResult holds a chance-corrected agreement coefficient.
type KappaResult struct {
	Kappa             float64 `json:"kappa"`
	Interpretation    string  `json:"interpretation"`
	ObservedAgreement float64 `json:"observed_agreement"`
	ExpectedAgreement float64 `json:"expected_agreement"`
}

// InsufficientData labels results computed from empty or unpaired input.
const InsufficientData = "Insufficient data"

func insufficientKappa() KappaResult {
	return KappaResult{Interpretation: InsufficientData}
}

// CohensKappa computes Cohen's kappa between two raters:
//
//	k = (Po - Pe) / (1 - Pe)
//
// Kappa is 1 when Pe is 1 (both raters used a single identical category).
func CohensKappa(predicted, actual []Category) KappaResult {
	n := len(predicted)
	if n != len(actual) || n == 0 {
		return insufficientKappa()
	}

	var agreements int
	var rows, cols [3]int
	for i := range predicted {
		p, a := predicted[i].index(), actual[i].index()
		if p == a {
			agreements++
		}
		rows[p]++
		cols[a]++
	}

	fn := float64(n)
	po := float64(agreements) / fn
	pe := 0.0
	for k := range Categories {
		pe += (float64(rows[k]) / fn) * (float64(cols[k]) / fn)
	}

	return newKappaResult(po, pe)
}

// WeightedKappa computes quadratic-weighted kappa over the ordinal scale.
// Weights are w[i][j] = 1 - (i-j)^2 / (k-1)^2, so a hot/warm disagreement
// keeps more credit than a hot/cold one.
func WeightedKappa(predicted, actual []Category) KappaResult {
	n := len(predicted)
	if n != len(actual) || n == 0 {
		return insufficientKappa()
	}

	k := len(Categories)
	var observed [3][3]float64
	var rows, cols [3]float64
	for i := range predicted {
		p, a := predicted[i].index(), actual[i].index()
		observed[p][a]++
		rows[p]++
		cols[a]++
	}

	fn := float64(n)
	denom := float64((k - 1) * (k - 1))
	po, pe := 0.0, 0.0
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			w := 1 - float64((i-j)*(i-j))/denom
			expected := rows[i] * cols[j] / fn
			po += w * observed[i][j] / fn
			pe += w * expected / fn
		}
	}

	return newKappaResult(po, pe)
}

func newKappaResult(po, pe float64) KappaResult {
	kappa := 1.0
	if pe != 1 {
		kappa = (po - pe) / (1 - pe)
	}
	if math.IsNaN(kappa) {
		kappa = 0
	}
	return KappaResult{
		Kappa:             kappa,
		Interpretation:    InterpretKappa(kappa),
		ObservedAgreement: po,
		ExpectedAgreement: pe,
	}
}

// InterpretKappa labels a kappa value using the Landis & Koch (1977) scale.
func InterpretKappa(k float64) string {
	switch {
	case k < 0:
		return "Poor (less than chance)"
	case k < 0.21:
		return "Slight"
	case k < 0.41:
		return "Fair"
	case k < 0.61:
		return "Moderate"
	case k < 0.81:
		return "Substantial"
	default:
		return "Almost Perfect"
	}
}
