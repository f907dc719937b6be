package statistics

import "math"

// normalCDF is the standard normal CDF using the Abramowitz & Stegun 7.1.26
// approximation of erf (max error 1.5e-7).
func normalCDF(z float64) float64 {
	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)

	sign := 1.0
	if z < 0 {
		sign = -1.0
	}
	x := math.Abs(z) / math.Sqrt2

	t := 1.0 / (1.0 + p*x)
	y := 1.0 - ((((a5*t+a4)*t+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)

	return 0.5 * (1.0 + sign*y)
}

const (
	betaMaxIterations = 200
	betaEpsilon       = 1e-12
	betaTiny          = 1e-300
)

// regularizedIncompleteBeta returns I_x(a, b).
func regularizedIncompleteBeta(x, a, b float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	lnFront := logGamma(a+b) - logGamma(a) - logGamma(b) + a*math.Log(x) + b*math.Log1p(-x)
	front := math.Exp(lnFront)

	// The continued fraction converges fast only below the mean of the
	// distribution; use I_x(a,b) = 1 - I_{1-x}(b,a) above it.
	if x < (a+1)/(a+b+2) {
		return front * betaContinuedFraction(x, a, b) / a
	}
	return 1 - front*betaContinuedFraction(1-x, b, a)/b
}

// betaContinuedFraction evaluates the incomplete beta continued fraction with
// the modified Lentz method.
func betaContinuedFraction(x, a, b float64) float64 {
	qab := a + b
	qap := a + 1
	qam := a - 1

	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < betaTiny {
		d = betaTiny
	}
	d = 1 / d
	h := d

	for m := 1; m <= betaMaxIterations; m++ {
		fm := float64(m)
		m2 := 2 * fm

		aa := fm * (b - fm) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < betaTiny {
			d = betaTiny
		}
		c = 1 + aa/c
		if math.Abs(c) < betaTiny {
			c = betaTiny
		}
		d = 1 / d
		h *= d * c

		aa = -(a + fm) * (qab + fm) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < betaTiny {
			d = betaTiny
		}
		c = 1 + aa/c
		if math.Abs(c) < betaTiny {
			c = betaTiny
		}
		d = 1 / d
		del := d * c
		h *= del

		if math.Abs(del-1) < betaEpsilon {
			break
		}
	}
	return h
}

var lanczosCoefficients = [...]float64{
	0.99999999999980993,
	676.5203681218851,
	-1259.1392167224028,
	771.32342877765313,
	-176.61502916214059,
	12.507343278686905,
	-0.13857109526572012,
	9.9843695780195716e-6,
	1.5056327351493116e-7,
}

// logGamma is ln Γ(z) via the Lanczos approximation (g = 7), with the
// reflection formula below 0.5.
func logGamma(z float64) float64 {
	const g = 7
	if z < 0.5 {
		return math.Log(math.Pi/math.Abs(math.Sin(math.Pi*z))) - logGamma(1-z)
	}

	z--
	x := lanczosCoefficients[0]
	for i := 1; i < g+2; i++ {
		x += lanczosCoefficients[i] / (z + float64(i))
	}

	t := z + g + 0.5
	return 0.5*math.Log(2*math.Pi) + (z+0.5)*math.Log(t) - t + math.Log(x)
}
