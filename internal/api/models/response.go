package models

import (
	"art-returns/internal/analysis"
	"art-returns/internal/model"
	"art-returns/internal/returns"
)

// EvaluationResponse represents the response from an evaluation
type EvaluationResponse struct {
	ID      string            `json:"id,omitempty"`
	Summary EvaluationSummary `json:"summary"`
	Series  SeriesBlock       `json:"series"`
	Rows    []ProjectionRow   `json:"rows"`

	Scenario model.RevenueMatrix `json:"scenario"`
}

// EvaluationSummary contains the headline figures
type EvaluationSummary struct {
	Investment    float64 `json:"investment"`
	Solver        string  `json:"solver"`
	IRR           float64 `json:"irr"`
	IRRPercent    float64 `json:"irr_percent"`
	IRRDefined    bool    `json:"irr_defined"`   // false when irr is a stand-in 0
	PaybackPeriod int     `json:"payback_period"` // 0 = no payback
	PaybackLabel  string  `json:"payback_label"`  // "Y3"; empty when not recovered

	TotalPrimaryRevenue   float64 `json:"total_primary_revenue"`
	TotalSecondaryRevenue float64 `json:"total_secondary_revenue"`
	TotalNetProfit        float64 `json:"total_net_profit"`
}

// SeriesBlock carries the per-period series, Y1..Y5
type SeriesBlock struct {
	Periods          []string  `json:"periods"`
	PrimaryRevenue   []float64 `json:"primary_revenue"`
	SecondaryRevenue []float64 `json:"secondary_revenue"`
	NetProfit        []float64 `json:"net_profit"`
}

// ProjectionRow represents one period of the projection
type ProjectionRow struct {
	Period              int     `json:"period"`
	Label               string  `json:"label"`
	PrimaryUnitPrice    float64 `json:"primary_unit_price"`
	PrimarySalesArea    float64 `json:"primary_sales_area"`
	SecondaryUnitPrice  float64 `json:"secondary_unit_price"`
	PrimaryRevenue      float64 `json:"primary_revenue"`
	SecondaryRevenue    float64 `json:"secondary_revenue"`
	NetProfit           float64 `json:"net_profit"`
	CumNetProfit        float64 `json:"cum_net_profit"`
	DiscountFactor      float64 `json:"discount_factor"`
	DiscountedNetProfit float64 `json:"discounted_net_profit"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult         `json:"comparison"`
	Ranking    []analysis.RankedVariation `json:"ranking"`
	Skipped    []SkippedVariation         `json:"skipped,omitempty"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name    string            `json:"name"`
	Summary EvaluationSummary `json:"summary"`
}

// SkippedVariation records a variation whose inputs were rejected
type SkippedVariation struct {
	Name  string      `json:"name"`
	Error ErrorDetail `json:"error"`
}

// SweepResponse represents the IRR-versus-investment curve
type SweepResponse struct {
	Points  []returns.IRRPoint    `json:"points"`
	Summary analysis.SweepSummary `json:"summary"`
}

// ScenarioResponse represents the stored revenue grid
type ScenarioResponse struct {
	Matrix  model.RevenueMatrix  `json:"matrix"`
	Summary analysis.GridSummary `json:"summary"`
}

// AssumptionInfo describes one assumption row the model understands
type AssumptionInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Unit  string `json:"unit"`
}

// PresetInfo represents information about an assumptions preset
type PresetInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	File        string `json:"file"`
	Rows        int    `json:"rows"`
}

// SolverInfo represents information about an IRR solver
type SolverInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a solver parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewEvaluationResponse flattens an evaluation for JSON output
func NewEvaluationResponse(id string, ev *returns.Evaluation) EvaluationResponse {
	rows := make([]ProjectionRow, len(ev.Rows))
	for i, r := range ev.Rows {
		rows[i] = ProjectionRow{
			Period:              r.Period,
			Label:               r.Label,
			PrimaryUnitPrice:    r.PrimaryUnitPrice,
			PrimarySalesArea:    r.PrimarySalesArea,
			SecondaryUnitPrice:  r.SecondaryUnitPrice,
			PrimaryRevenue:      r.PrimaryRevenue,
			SecondaryRevenue:    r.SecondaryRevenue,
			NetProfit:           r.NetProfit,
			CumNetProfit:        r.CumNetProfit,
			DiscountFactor:      r.DiscountFactor,
			DiscountedNetProfit: r.DiscountedNetProfit,
		}
	}
	return EvaluationResponse{
		ID:      id,
		Summary: NewEvaluationSummary(ev),
		Series: SeriesBlock{
			Periods:          model.PeriodLabels[:],
			PrimaryRevenue:   ev.PrimaryRevenue.Slice(),
			SecondaryRevenue: ev.SecondaryRevenue.Slice(),
			NetProfit:        ev.NetProfit.Slice(),
		},
		Rows:     rows,
		Scenario: ev.Scenario,
	}
}

func NewEvaluationSummary(ev *returns.Evaluation) EvaluationSummary {
	return EvaluationSummary{
		Investment:            ev.Investment,
		Solver:                ev.Solver,
		IRR:                   ev.IRR,
		IRRPercent:            ev.IRRPercent,
		IRRDefined:            ev.IRRDefined,
		PaybackPeriod:         int(ev.Payback),
		PaybackLabel:          ev.Payback.Label(),
		TotalPrimaryRevenue:   ev.TotalPrimaryRevenue,
		TotalSecondaryRevenue: ev.TotalSecondaryRevenue,
		TotalNetProfit:        ev.TotalNetProfit,
	}
}
