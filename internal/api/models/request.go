package models

import "art-returns/internal/model"

// InputsRequest carries the model inputs shared by every evaluation endpoint.
// When Preset is set, its assumption rows are the base and Assumptions override
// them row by row.
type InputsRequest struct {
	Preset      string                `json:"preset,omitempty"`
	Assumptions []model.RawAssumption `json:"assumptions,omitempty"`
	Cashflow    CashflowInput         `json:"cashflow"`
	Scenario    ScenarioInput         `json:"scenario,omitempty"`
	Solver      SolverInput           `json:"solver,omitempty"`
}

// CashflowInput is the per-period net profit row. Entries may be numbers or
// strings; anything non-numeric reads as zero.
type CashflowInput struct {
	NetProfit []model.Cell `json:"net_profit"`
}

// ScenarioInput defines the price × area sensitivity sweep. Zero values fall
// back to 5 levels over price 30..70 and area 1000..2000.
type ScenarioInput struct {
	PriceSteps int     `json:"price_steps,omitempty"`
	AreaSteps  int     `json:"area_steps,omitempty"`
	PriceMin   float64 `json:"price_min,omitempty"`
	PriceMax   float64 `json:"price_max,omitempty"`
	AreaMin    float64 `json:"area_min,omitempty"`
	AreaMax    float64 `json:"area_max,omitempty"`
}

// SolverInput selects the IRR solver and its parameters
type SolverInput struct {
	Name   string                 `json:"name,omitempty"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// EvaluateRequest represents the request body for POST /api/v1/evaluate
type EvaluateRequest struct {
	InputsRequest
	Investment float64 `json:"investment"` // default: 2500
}

// CompareRequest evaluates several variations of one base request
type CompareRequest struct {
	Base       EvaluateRequest `json:"base" binding:"required"`
	Variations []Variation     `json:"variations" binding:"required,min=1,dive"`
}

// Variation overrides parts of the base request. Zero values keep the base.
type Variation struct {
	Name        string                `json:"name" binding:"required"`
	Assumptions []model.RawAssumption `json:"assumptions,omitempty"`
	Cashflow    *CashflowInput        `json:"cashflow,omitempty"`
	Investment  float64               `json:"investment,omitempty"`
	Solver      *SolverInput          `json:"solver,omitempty"`
}

// SweepRequest represents the request body for POST /api/v1/sweep.
// Investments wins over Min/Max/Steps when both are given.
type SweepRequest struct {
	InputsRequest
	Investments []float64 `json:"investments,omitempty"`
	Min         float64   `json:"min,omitempty"`
	Max         float64   `json:"max,omitempty"`
	Steps       int       `json:"steps,omitempty"`
}

// ScenarioRequest represents the request body for POST /api/v1/scenario
type ScenarioRequest struct {
	Scenario ScenarioInput `json:"scenario"`
}
