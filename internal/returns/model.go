package returns

import (
	"errors"
	"math"

	"art-returns/internal/irr"
	"art-returns/internal/model"

	"go.uber.org/zap"
)

// Options configures a Model. Zero values select the eigen solver and a no-op logger.
type Options struct {
	Solver irr.Solver
	Logger *zap.Logger
}

// Model answers return questions over one immutable set of inputs.
//
// Assumption lookups are strict and return errors. Cash-flow retrieval and IRR
// are permissive: failures are logged and degrade to zero so a live display
// always has a number to show.
type Model struct {
	assumptions *model.AssumptionsTable
	cashflow    *model.CashflowSchedule
	scenario    *model.ScenarioGrid
	solver      irr.Solver
	log         *zap.Logger
}

func New(in model.Inputs, opts Options) (*Model, error) {
	if in.Assumptions == nil {
		return nil, errors.New("assumptions table is nil")
	}
	m := &Model{
		assumptions: in.Assumptions,
		cashflow:    in.Cashflow,
		scenario:    in.Scenario,
		solver:      opts.Solver,
		log:         opts.Logger,
	}
	if m.solver == nil {
		m.solver = irr.Default()
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	return m, nil
}

// SolverName reports which IRR solver the model uses.
func (m *Model) SolverName() string { return m.solver.Name() }

// Series returns the period values of an assumption row.
func (m *Model) Series(kind model.AssumptionKind) (model.Series, error) {
	return m.assumptions.Series(kind)
}

// PredictPrimaryRevenue is primary unit price × primary sales area per period.
func (m *Model) PredictPrimaryRevenue() (model.Series, error) {
	return m.revenue(model.PrimaryUnitPrice)
}

// PredictSecondaryRevenue is secondary unit price × primary sales area per period.
// Secondary volume is assumed equal to primary volume; the secondary release
// assumption is not used.
func (m *Model) PredictSecondaryRevenue() (model.Series, error) {
	return m.revenue(model.SecondaryUnitPrice)
}

func (m *Model) revenue(priceKind model.AssumptionKind) (model.Series, error) {
	price, err := m.assumptions.Series(priceKind)
	if err != nil {
		return model.Series{}, err
	}
	volume, err := m.assumptions.Series(model.PrimarySalesArea)
	if err != nil {
		return model.Series{}, err
	}
	return price.Mul(volume), nil
}

// Cashflow returns per-period net profit. Non-numeric entries read as 0; a
// missing or malformed net-profit row reads as all zeros. Never fails.
func (m *Model) Cashflow() model.Series {
	values, issues, err := m.cashflow.NetProfit()
	if err != nil {
		m.log.Warn("cashflow unavailable, using zeros", zap.Error(err))
		return model.Series{}
	}
	for _, is := range issues {
		m.log.Warn("cashflow value coerced to zero",
			zap.String("period", model.PeriodLabels[is.Period]),
			zap.String("value", is.Value),
			zap.Error(is.Err))
	}
	return values
}

// Flows builds [-investment, cf1..cf5].
func (m *Model) Flows(investment float64) []float64 {
	return flows(investment, m.Cashflow())
}

func flows(investment float64, cf model.Series) []float64 {
	out := make([]float64, 0, model.Periods+1)
	out = append(out, -investment)
	return append(out, cf[:]...)
}

// IRR returns the internal rate of return as a fraction (0.12 = 12%).
// It returns 0 when no rate exists or the solver fails.
func (m *Model) IRR(investment float64) float64 {
	rate, _ := m.irr(investment, m.Cashflow())
	return rate
}

// irr reports ok=false whenever the returned 0 is a stand-in for an undefined rate.
func (m *Model) irr(investment float64, cf model.Series) (rate float64, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			m.log.Error("irr solver panicked",
				zap.Float64("investment", investment),
				zap.Any("panic", rec))
			rate, ok = 0, false
		}
	}()
	fl := flows(investment, cf)
	r, err := m.solver.Solve(fl)
	if err != nil {
		if !errors.Is(err, irr.ErrAllZero) {
			m.log.Warn("irr undefined, reporting 0",
				zap.String("solver", m.solver.Name()),
				zap.Float64("investment", investment),
				zap.Error(err))
		}
		return 0, false
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		m.log.Warn("irr not finite, reporting 0",
			zap.Float64("investment", investment),
			zap.Float64("rate", r))
		return 0, false
	}
	return r, true
}

// NPV discounts [-investment, cf1..cf5] at rate.
func (m *Model) NPV(rate, investment float64) float64 {
	return irr.NPV(rate, m.Flows(investment))
}

// PaybackPeriod scans cumulative net profit and returns the first 1-indexed
// period where it reaches investment, or model.NoPayback.
func (m *Model) PaybackPeriod(investment float64) model.Payback {
	return payback(investment, m.Cashflow())
}

func payback(investment float64, cf model.Series) model.Payback {
	cum := 0.0
	for i, p := range cf {
		cum += p
		if cum >= investment {
			return model.Payback(i + 1)
		}
	}
	return model.NoPayback
}

// ScenarioRevenueMatrix returns the stored scenario grid as a numeric table.
// It is a copy; nothing is recomputed.
func (m *Model) ScenarioRevenueMatrix() model.RevenueMatrix {
	return m.scenario.Matrix()
}

// IRRPoint is one entry of an IRR-versus-investment sweep.
// IRRPercent is 0 when Defined is false.
type IRRPoint struct {
	Investment float64 `json:"investment"`
	IRRPercent float64 `json:"irr_percent"`
	Defined    bool    `json:"defined"`
}

// IRRVsInvestment computes IRR (in percent) for each candidate investment, in
// input order. A failure for one entry yields an undefined 0 for that entry only.
func (m *Model) IRRVsInvestment(investments []float64) []IRRPoint {
	cf := m.Cashflow()
	out := make([]IRRPoint, len(investments))
	for i, inv := range investments {
		rate, ok := m.irr(inv, cf)
		out[i] = IRRPoint{Investment: inv, IRRPercent: rate * 100, Defined: ok}
	}
	return out
}
