package irr

// NewtonSolver iterates Newton-Raphson on the NPV function from Params.Guess.
// It is fast but may land on a different root than EigenSolver when several exist.
type NewtonSolver struct {
	Params Params
}

func (s *NewtonSolver) Name() string { return "newton" }

func (s *NewtonSolver) Solve(flows []float64) (float64, error) {
	if len(flows) < 2 {
		return 0, ErrNoRealRoot
	}
	if allZero(flows) {
		return 0, ErrAllZero
	}
	p := s.Params.withDefaults()
	return newtonStep(flows, p.Guess, p.Tolerance, p.MaxIterations)
}
