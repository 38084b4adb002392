package returns

import (
	"art-returns/internal/irr"
	"art-returns/internal/model"
)

// ProjectionRow is one period of an evaluation.
// This is the primary artifact for "what happens" year by year.
type ProjectionRow struct {
	Period int // 1-based
	Label  string

	PrimaryUnitPrice   float64
	PrimarySalesArea   float64
	SecondaryUnitPrice float64

	PrimaryRevenue   float64
	SecondaryRevenue float64

	NetProfit    float64
	CumNetProfit float64

	// Discounted at the evaluation's IRR; these sum to the investment when IRR is defined.
	DiscountFactor      float64
	DiscountedNetProfit float64
}

type Evaluation struct {
	Investment float64
	Solver     string

	IRR        float64
	IRRPercent float64
	IRRDefined bool
	Payback    model.Payback

	Rows []ProjectionRow

	PrimaryRevenue   model.Series
	SecondaryRevenue model.Series
	NetProfit        model.Series

	TotalPrimaryRevenue   float64
	TotalSecondaryRevenue float64
	TotalNetProfit        float64

	Scenario model.RevenueMatrix
}

// Evaluate runs every query for one investment amount. Revenue lookups stay
// strict; cash-flow and IRR stay permissive.
func (m *Model) Evaluate(investment float64) (*Evaluation, error) {
	price, err := m.assumptions.Series(model.PrimaryUnitPrice)
	if err != nil {
		return nil, err
	}
	area, err := m.assumptions.Series(model.PrimarySalesArea)
	if err != nil {
		return nil, err
	}
	secPrice, err := m.assumptions.Series(model.SecondaryUnitPrice)
	if err != nil {
		return nil, err
	}
	primary := price.Mul(area)
	secondary := secPrice.Mul(area)

	cf := m.Cashflow()
	rate, defined := m.irr(investment, cf)
	cum := cf.Cumulative()

	rows := make([]ProjectionRow, model.Periods)
	df := 1.0
	for i := 0; i < model.Periods; i++ {
		df /= 1 + rate
		rows[i] = ProjectionRow{
			Period:              i + 1,
			Label:               model.PeriodLabels[i],
			PrimaryUnitPrice:    price[i],
			PrimarySalesArea:    area[i],
			SecondaryUnitPrice:  secPrice[i],
			PrimaryRevenue:      primary[i],
			SecondaryRevenue:    secondary[i],
			NetProfit:           cf[i],
			CumNetProfit:        cum[i],
			DiscountFactor:      df,
			DiscountedNetProfit: cf[i] * df,
		}
	}

	return &Evaluation{
		Investment:            investment,
		Solver:                m.solver.Name(),
		IRR:                   rate,
		IRRPercent:            rate * 100,
		IRRDefined:            defined,
		Payback:               payback(investment, cf),
		Rows:                  rows,
		PrimaryRevenue:        primary,
		SecondaryRevenue:      secondary,
		NetProfit:             cf,
		TotalPrimaryRevenue:   primary.Total(),
		TotalSecondaryRevenue: secondary.Total(),
		TotalNetProfit:        cf.Total(),
		Scenario:              m.ScenarioRevenueMatrix(),
	}, nil
}

// NPVAtIRR is the residual NPV of the evaluation's flows at its own IRR.
// It is close to zero whenever the IRR is defined.
func (e *Evaluation) NPVAtIRR() float64 {
	fl := flows(e.Investment, e.NetProfit)
	return irr.NPV(e.IRR, fl)
}
