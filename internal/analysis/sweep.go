package analysis

import (
	"math"

	"art-returns/internal/model"
	"art-returns/internal/returns"

	"github.com/montanaflynn/stats"
)

// SweepSummary is a compact description of an IRR-versus-investment curve.
// Points with an undefined IRR are counted but excluded from every statistic.
type SweepSummary struct {
	Count   int `json:"count"`
	Defined int `json:"defined"`

	MinIRRPercent    float64 `json:"min_irr_percent"`
	MaxIRRPercent    float64 `json:"max_irr_percent"`
	MeanIRRPercent   float64 `json:"mean_irr_percent"`
	MedianIRRPercent float64 `json:"median_irr_percent"`
	P05IRRPercent    float64 `json:"p05_irr_percent"`
	P95IRRPercent    float64 `json:"p95_irr_percent"`

	// BestInvestment is the investment with the highest IRR (first on ties).
	BestInvestment float64 `json:"best_investment"`

	// BreakEvenInvestment is the largest swept investment whose IRR is still >= 0.
	// Only meaningful when BreaksEven is set.
	BreaksEven          bool    `json:"breaks_even"`
	BreakEvenInvestment float64 `json:"break_even_investment"`
}

func SummarizeSweep(points []returns.IRRPoint) SweepSummary {
	var s SweepSummary
	if len(points) == 0 {
		return s
	}
	s.Count = len(points)

	vals := make(stats.Float64Data, 0, len(points))
	best := math.Inf(-1)
	for _, p := range points {
		if !p.Defined {
			continue
		}
		vals = append(vals, p.IRRPercent)
		if p.IRRPercent > best {
			best = p.IRRPercent
			s.BestInvestment = p.Investment
		}
		if p.IRRPercent >= 0 && (!s.BreaksEven || p.Investment > s.BreakEvenInvestment) {
			s.BreaksEven = true
			s.BreakEvenInvestment = p.Investment
		}
	}
	s.Defined = len(vals)
	if s.Defined == 0 {
		return s
	}

	s.MinIRRPercent, _ = vals.Min()
	s.MaxIRRPercent, _ = vals.Max()
	s.MeanIRRPercent, _ = vals.Mean()
	s.MedianIRRPercent, _ = vals.Median()
	s.P05IRRPercent = percentile(vals, 5)
	s.P95IRRPercent = percentile(vals, 95)
	return s
}

// GridSummary describes the spread of a scenario revenue matrix.
type GridSummary struct {
	Cells int `json:"cells"`

	MinRevenue  float64 `json:"min_revenue"`
	MaxRevenue  float64 `json:"max_revenue"`
	MeanRevenue float64 `json:"mean_revenue"`
	P05Revenue  float64 `json:"p05_revenue"`
	P95Revenue  float64 `json:"p95_revenue"`

	// SpreadP95P05 is a quick sensitivity measure of the sweep.
	SpreadP95P05 float64 `json:"spread_p95_p05"`
}

func SummarizeGrid(m model.RevenueMatrix) GridSummary {
	vals := stats.Float64Data(m.Flatten())
	g := GridSummary{Cells: len(vals)}
	if len(vals) == 0 {
		return g
	}
	g.MinRevenue, _ = vals.Min()
	g.MaxRevenue, _ = vals.Max()
	g.MeanRevenue, _ = vals.Mean()
	g.P05Revenue = percentile(vals, 5)
	g.P95Revenue = percentile(vals, 95)
	g.SpreadP95P05 = g.P95Revenue - g.P05Revenue
	return g
}

// percentile uses the nearest-rank method, which is defined for any non-empty input.
func percentile(vals stats.Float64Data, pct float64) float64 {
	p, err := stats.PercentileNearestRank(vals, pct)
	if err != nil {
		return 0
	}
	return p
}
