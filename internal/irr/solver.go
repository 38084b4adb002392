package irr

import (
	"errors"
	"fmt"
)

var (
	ErrAllZero        = errors.New("all cash flows are zero")
	ErrNoRealRoot     = errors.New("no real rate above -100% solves NPV = 0")
	ErrNoConvergence  = errors.New("rate iteration did not converge")
	ErrFlatDerivative = errors.New("NPV derivative vanished")
)

const (
	DefaultTolerance     = 1e-7
	DefaultMaxIterations = 100
	DefaultGuess         = 0.1
)

// Solver finds the internal rate of return of a cash-flow vector.
// flows[0] is the t=0 flow (normally -investment).
type Solver interface {
	Name() string
	Solve(flows []float64) (float64, error)
}

// Params tunes a solver. Zero values fall back to the package defaults.
type Params struct {
	Tolerance     float64
	MaxIterations int
	Guess         float64
}

func (p Params) withDefaults() Params {
	if p.Tolerance <= 0 {
		p.Tolerance = DefaultTolerance
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = DefaultMaxIterations
	}
	if p.Guess == 0 {
		p.Guess = DefaultGuess
	}
	return p
}

// Names lists the registered solver names; the first is the default.
func Names() []string { return []string{"eigen", "newton"} }

// New builds a solver by name. An empty name selects the eigen solver.
func New(name string, p Params) (Solver, error) {
	p = p.withDefaults()
	switch name {
	case "", "eigen":
		return &EigenSolver{Params: p}, nil
	case "newton":
		return &NewtonSolver{Params: p}, nil
	default:
		return nil, fmt.Errorf("unsupported irr solver: %q", name)
	}
}

// Default returns the eigen solver with default params.
func Default() Solver {
	return &EigenSolver{Params: Params{}.withDefaults()}
}

func allZero(flows []float64) bool {
	for _, v := range flows {
		if v != 0 {
			return false
		}
	}
	return true
}
