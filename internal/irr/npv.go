package irr

import "math"

// NPV discounts flows at rate. flows[0] is undiscounted (t=0).
func NPV(rate float64, flows []float64) float64 {
	if rate <= -1 {
		return math.NaN()
	}
	v := 0.0
	d := 1.0
	for _, cf := range flows {
		v += cf / d
		d *= 1 + rate
	}
	return v
}

// npvDerivative is d NPV / d rate.
func npvDerivative(rate float64, flows []float64) float64 {
	v := 0.0
	for t, cf := range flows {
		if t == 0 {
			continue
		}
		v -= float64(t) * cf / math.Pow(1+rate, float64(t+1))
	}
	return v
}

// newtonStep runs Newton-Raphson from guess until |step| < tol.
func newtonStep(flows []float64, guess, tol float64, maxIter int) (float64, error) {
	r := guess
	for i := 0; i < maxIter; i++ {
		f := NPV(r, flows)
		df := npvDerivative(r, flows)
		if math.IsNaN(f) || math.IsNaN(df) {
			return 0, ErrNoConvergence
		}
		if df == 0 {
			return 0, ErrFlatDerivative
		}
		next := r - f/df
		if next <= -1 || math.IsInf(next, 0) || math.IsNaN(next) {
			return 0, ErrNoConvergence
		}
		if math.Abs(next-r) < tol {
			return next, nil
		}
		r = next
	}
	return 0, ErrNoConvergence
}
