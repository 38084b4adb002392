package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// AssumptionKind enumerates the named assumption rows the model understands.
// Keep the keys stable; they appear in YAML configs, JSON requests and CSV output.
type AssumptionKind int

const (
	PrimaryUnitPrice AssumptionKind = iota
	PrimarySalesArea
	SecondaryUnitPrice
	SecondaryRelease
	SecondaryAuctionRate
	DerivativeRevenue
	PrimaryProcurementCost
	SecondarySalesCost
	TeamAdminCost
	MarketingCost
	OtherOperatingCost
	DerivativeCost
	IncomeTaxRate

	numAssumptionKinds
)

type kindInfo struct {
	key   string
	label string
	unit  string
}

var kindInfos = [numAssumptionKinds]kindInfo{
	PrimaryUnitPrice:       {"primary_unit_price", "Primary market unit price", "CNY/sq chi"},
	PrimarySalesArea:       {"primary_sales_area", "Primary market sales area (year)", "sq chi"},
	SecondaryUnitPrice:     {"secondary_unit_price", "Secondary market unit price", "CNY/sq chi"},
	SecondaryRelease:       {"secondary_release", "Secondary market estimated release (year)", "sq chi"},
	SecondaryAuctionRate:   {"secondary_auction_rate", "Secondary market auction clearance rate", "%"},
	DerivativeRevenue:      {"derivative_revenue", "Derivative / crossover revenue", "10k CNY"},
	PrimaryProcurementCost: {"primary_procurement_cost", "Primary market procurement cost", "%"},
	SecondarySalesCost:     {"secondary_sales_cost", "Secondary market sales cost", "%"},
	TeamAdminCost:          {"team_admin_cost", "Team and administration", "10k CNY"},
	MarketingCost:          {"marketing_cost", "Marketing", "10k CNY"},
	OtherOperatingCost:     {"other_operating_cost", "Other operating", "10k CNY"},
	DerivativeCost:         {"derivative_cost", "Derivative cost", "%"},
	IncomeTaxRate:          {"income_tax_rate", "Income tax rate", "%"},
}

// AllAssumptionKinds returns every kind in display order.
func AllAssumptionKinds() []AssumptionKind {
	out := make([]AssumptionKind, 0, numAssumptionKinds)
	for k := AssumptionKind(0); k < numAssumptionKinds; k++ {
		out = append(out, k)
	}
	return out
}

func (k AssumptionKind) valid() bool { return k >= 0 && k < numAssumptionKinds }

// Key is the stable machine identifier, e.g. "primary_unit_price".
func (k AssumptionKind) Key() string {
	if !k.valid() {
		return fmt.Sprintf("assumption(%d)", int(k))
	}
	return kindInfos[k].key
}

func (k AssumptionKind) String() string { return k.Key() }

// Label is the human-readable row title.
func (k AssumptionKind) Label() string {
	if !k.valid() {
		return k.Key()
	}
	return kindInfos[k].label
}

func (k AssumptionKind) Unit() string {
	if !k.valid() {
		return ""
	}
	return kindInfos[k].unit
}

// ParseAssumptionKind accepts either the key or the display label (case-insensitive).
func ParseAssumptionKind(s string) (AssumptionKind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for k := AssumptionKind(0); k < numAssumptionKinds; k++ {
		if needle == kindInfos[k].key || needle == strings.ToLower(kindInfos[k].label) {
			return k, nil
		}
	}
	return 0, &NotFoundError{Kind: "assumption", Label: s}
}

// AssumptionRow is one labelled row of the assumptions table.
type AssumptionRow struct {
	Kind   AssumptionKind
	Values Series
	Note   string
}

// Total is the row's "T" column.
func (r AssumptionRow) Total() float64 { return r.Values.Total() }

// AssumptionsTable is an ordered, immutable collection of assumption rows.
// Duplicate kinds are allowed; lookups return the first match.
type AssumptionsTable struct {
	rows []AssumptionRow
}

func NewAssumptionsTable(rows ...AssumptionRow) *AssumptionsTable {
	cp := make([]AssumptionRow, len(rows))
	copy(cp, rows)
	return &AssumptionsTable{rows: cp}
}

// Rows returns a copy of the rows in insertion order.
func (t *AssumptionsTable) Rows() []AssumptionRow {
	if t == nil {
		return nil
	}
	out := make([]AssumptionRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// Series returns the period values of the first row matching kind.
func (t *AssumptionsTable) Series(kind AssumptionKind) (Series, error) {
	if t != nil {
		for _, r := range t.rows {
			if r.Kind == kind {
				return r.Values, nil
			}
		}
	}
	return Series{}, &NotFoundError{Kind: "assumption", Label: kind.Key()}
}

// Lookup resolves a textual label (key or display label) and returns its series.
func (t *AssumptionsTable) Lookup(label string) (Series, error) {
	kind, err := ParseAssumptionKind(label)
	if err != nil {
		return Series{}, err
	}
	return t.Series(kind)
}

// RawAssumption is an assumption row as supplied by a config file or request.
type RawAssumption struct {
	Label  string `yaml:"label" json:"label"`
	Values []Cell `yaml:"values" json:"values"`
	Note   string `yaml:"note,omitempty" json:"note,omitempty"`
}

var errNonFinite = errors.New("value is not finite")

// ParseAssumptions converts raw rows into a table. Conversion is strict:
// every label must be known and every value must be a finite number.
func ParseAssumptions(raw []RawAssumption) (*AssumptionsTable, error) {
	rows := make([]AssumptionRow, 0, len(raw))
	for i, r := range raw {
		kind, err := ParseAssumptionKind(r.Label)
		if err != nil {
			return nil, fmt.Errorf("assumption row %d: %w", i, err)
		}
		if len(r.Values) != Periods {
			return nil, &ConversionError{
				Label:  r.Label,
				Period: -1,
				Err:    fmt.Errorf("expected %d values, got %d", Periods, len(r.Values)),
			}
		}
		row := AssumptionRow{Kind: kind, Note: r.Note}
		for p, c := range r.Values {
			v, err := c.Float()
			if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
				err = errNonFinite
			}
			if err != nil {
				return nil, &ConversionError{Label: r.Label, Period: p, Value: string(c), Err: err}
			}
			row.Values[p] = v
		}
		rows = append(rows, row)
	}
	return NewAssumptionsTable(rows...), nil
}

// RawRows converts the table back into raw rows (used for reports and cache output).
func (t *AssumptionsTable) RawRows() []RawAssumption {
	rows := t.Rows()
	out := make([]RawAssumption, len(rows))
	for i, r := range rows {
		out[i] = RawAssumption{
			Label:  r.Kind.Key(),
			Values: CellsFromSeries(r.Values),
			Note:   r.Note,
		}
	}
	return out
}
