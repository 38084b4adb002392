package model

import (
	"fmt"
	"math"
	"strings"
)

// NetProfitLabel is the label of the cash-flow row the model reads.
const NetProfitLabel = "net profit"

// CashflowRow is one labelled row of raw per-period values.
type CashflowRow struct {
	Label  string `yaml:"label" json:"label"`
	Values []Cell `yaml:"values" json:"values"`
}

// CashflowSchedule holds per-period net profit (not cumulative).
// Values are kept raw; coercion happens on read so malformed input can
// degrade to zeros instead of failing the caller.
type CashflowSchedule struct {
	Rows []CashflowRow `yaml:"rows" json:"rows"`
}

// NewCashflowSchedule builds a single net-profit row from raw cells.
func NewCashflowSchedule(values ...Cell) *CashflowSchedule {
	cp := make([]Cell, len(values))
	copy(cp, values)
	return &CashflowSchedule{Rows: []CashflowRow{{Label: NetProfitLabel, Values: cp}}}
}

// NetProfitSchedule builds a schedule from already-numeric values.
func NetProfitSchedule(values Series) *CashflowSchedule {
	return NewCashflowSchedule(CellsFromSeries(values)...)
}

// CoercionIssue describes one value that was replaced by zero.
type CoercionIssue struct {
	Period int
	Value  string
	Err    error
}

// NetProfit returns the net-profit row as numbers. Missing, blank or non-numeric
// entries read as 0 and are reported in issues. A structural problem (no row,
// wrong number of periods) returns an error; callers that must not fail
// substitute zeros.
func (s *CashflowSchedule) NetProfit() (Series, []CoercionIssue, error) {
	if s == nil {
		return Series{}, nil, fmt.Errorf("cashflow schedule is nil")
	}
	var row *CashflowRow
	for i := range s.Rows {
		if strings.EqualFold(strings.TrimSpace(s.Rows[i].Label), NetProfitLabel) {
			row = &s.Rows[i]
			break
		}
	}
	if row == nil {
		return Series{}, nil, fmt.Errorf("cashflow row %q not found", NetProfitLabel)
	}
	if len(row.Values) != Periods {
		return Series{}, nil, fmt.Errorf("cashflow row %q: expected %d values, got %d", NetProfitLabel, Periods, len(row.Values))
	}

	var out Series
	var issues []CoercionIssue
	for i, c := range row.Values {
		if strings.TrimSpace(string(c)) == "" {
			issues = append(issues, CoercionIssue{Period: i, Value: string(c), Err: fmt.Errorf("missing value")})
			continue
		}
		v, err := c.Float()
		if err != nil {
			issues = append(issues, CoercionIssue{Period: i, Value: string(c), Err: err})
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			issues = append(issues, CoercionIssue{Period: i, Value: string(c), Err: fmt.Errorf("non-finite value")})
			continue
		}
		out[i] = v
	}
	return out, issues, nil
}
