package irr

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// EigenSolver finds every root of the NPV polynomial at once.
//
// With x = 1/(1+r), NPV(r) = sum_t flows[t] * x^t. The roots in x are the
// eigenvalues of the polynomial's companion matrix. Real roots with x > 0 map
// to rates r > -1; among those the rate closest to zero is returned, then
// refined with a few Newton steps.
type EigenSolver struct {
	Params Params
}

func (s *EigenSolver) Name() string { return "eigen" }

func (s *EigenSolver) Solve(flows []float64) (float64, error) {
	if allZero(flows) {
		return 0, ErrAllZero
	}
	p := s.Params.withDefaults()

	roots, err := polyRoots(flows)
	if err != nil {
		return 0, err
	}

	best := math.NaN()
	for _, z := range roots {
		if math.Abs(imag(z)) > 1e-8*math.Max(1, cmplx.Abs(z)) {
			continue
		}
		x := real(z)
		if x <= 0 {
			continue
		}
		r := 1/x - 1
		if math.IsNaN(best) || math.Abs(r) < math.Abs(best) {
			best = r
		}
	}
	if math.IsNaN(best) {
		return 0, ErrNoRealRoot
	}

	if polished, err := newtonStep(flows, best, p.Tolerance, p.MaxIterations); err == nil &&
		math.Abs(polished-best) < 1e-3 {
		return polished, nil
	}
	return best, nil
}

// polyRoots returns the roots of sum_k c[k] * x^k, dropping roots at x = 0.
func polyRoots(c []float64) ([]complex128, error) {
	hi := len(c) - 1
	for hi >= 0 && c[hi] == 0 {
		hi--
	}
	lo := 0
	for lo <= hi && c[lo] == 0 {
		lo++
	}
	if hi < 0 {
		return nil, ErrAllZero
	}
	c = c[lo : hi+1]
	deg := len(c) - 1
	if deg == 0 {
		return nil, ErrNoRealRoot
	}

	lead := c[deg]
	a := mat.NewDense(deg, deg, nil)
	for j := 0; j < deg; j++ {
		a.Set(0, j, -c[deg-1-j]/lead)
	}
	for i := 1; i < deg; i++ {
		a.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return nil, fmt.Errorf("eigen decomposition of %dx%d companion matrix failed", deg, deg)
	}
	return eig.Values(nil), nil
}
