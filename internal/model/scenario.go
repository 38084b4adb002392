package model

import (
	"fmt"
	"math"
	"strconv"
)

// ScenarioGrid is a stored revenue lookup table over a price × area sweep.
// Rows are price levels, columns are area levels; both axes are strictly ascending.
// Once built the table is only read, never recomputed.
type ScenarioGrid struct {
	prices []float64
	areas  []float64
	cells  [][]float64
}

// RevenueMatrix is a detached numeric copy of a scenario grid.
type RevenueMatrix struct {
	Prices []float64   `json:"prices"`
	Areas  []float64   `json:"areas"`
	Values [][]float64 `json:"values"` // Values[i][j] = revenue at Prices[i], Areas[j]
}

// Rows returns the number of price levels.
func (m RevenueMatrix) Rows() int { return len(m.Prices) }

// Cols returns the number of area levels.
func (m RevenueMatrix) Cols() int { return len(m.Areas) }

// Flatten returns every cell in row-major order.
func (m RevenueMatrix) Flatten() []float64 {
	out := make([]float64, 0, len(m.Prices)*len(m.Areas))
	for _, row := range m.Values {
		out = append(out, row...)
	}
	return out
}

// BuildScenarioGrid stores price*area for every (price, area) pair.
func BuildScenarioGrid(prices, areas []float64) (*ScenarioGrid, error) {
	if err := validateAxis("price", prices); err != nil {
		return nil, err
	}
	if err := validateAxis("area", areas); err != nil {
		return nil, err
	}
	cells := make([][]float64, len(prices))
	for i, p := range prices {
		cells[i] = make([]float64, len(areas))
		for j, a := range areas {
			cells[i][j] = p * a
		}
	}
	return &ScenarioGrid{
		prices: append([]float64(nil), prices...),
		areas:  append([]float64(nil), areas...),
		cells:  cells,
	}, nil
}

// NewScenarioGrid adopts an explicit revenue table. cells must have one row per
// price level and one column per area level.
func NewScenarioGrid(prices, areas []float64, cells [][]float64) (*ScenarioGrid, error) {
	if err := validateAxis("price", prices); err != nil {
		return nil, err
	}
	if err := validateAxis("area", areas); err != nil {
		return nil, err
	}
	if len(cells) != len(prices) {
		return nil, fmt.Errorf("%w: %d rows for %d price levels", ErrGridShape, len(cells), len(prices))
	}
	cp := make([][]float64, len(cells))
	for i, row := range cells {
		if len(row) != len(areas) {
			return nil, fmt.Errorf("%w: row %d has %d cells for %d area levels", ErrGridShape, i, len(row), len(areas))
		}
		cp[i] = append([]float64(nil), row...)
	}
	return &ScenarioGrid{
		prices: append([]float64(nil), prices...),
		areas:  append([]float64(nil), areas...),
		cells:  cp,
	}, nil
}

func validateAxis(name string, levels []float64) error {
	if len(levels) == 0 {
		return fmt.Errorf("%s: %w", name, ErrAxisEmpty)
	}
	for i, v := range levels {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s level %d is not finite", name, i)
		}
		if i > 0 && v <= levels[i-1] {
			return fmt.Errorf("%s: %w (%g after %g)", name, ErrAxisOrder, v, levels[i-1])
		}
	}
	return nil
}

// Dims returns (price levels, area levels).
func (g *ScenarioGrid) Dims() (int, int) {
	if g == nil {
		return 0, 0
	}
	return len(g.prices), len(g.areas)
}

// Cell returns the stored revenue at an exact (price, area) level pair.
func (g *ScenarioGrid) Cell(price, area float64) (float64, error) {
	if g == nil {
		return 0, &NotFoundError{Kind: "price level", Label: formatLevel(price)}
	}
	i := levelIndex(g.prices, price)
	if i < 0 {
		return 0, &NotFoundError{Kind: "price level", Label: formatLevel(price)}
	}
	j := levelIndex(g.areas, area)
	if j < 0 {
		return 0, &NotFoundError{Kind: "area level", Label: formatLevel(area)}
	}
	return g.cells[i][j], nil
}

// Matrix returns a detached copy of the stored table.
func (g *ScenarioGrid) Matrix() RevenueMatrix {
	if g == nil {
		return RevenueMatrix{Prices: []float64{}, Areas: []float64{}, Values: [][]float64{}}
	}
	vals := make([][]float64, len(g.cells))
	for i, row := range g.cells {
		vals[i] = append([]float64(nil), row...)
	}
	return RevenueMatrix{
		Prices: append([]float64(nil), g.prices...),
		Areas:  append([]float64(nil), g.areas...),
		Values: vals,
	}
}

// levelIndex matches levels with a relative tolerance so values produced by
// the same linspace call round-trip through JSON.
func levelIndex(levels []float64, v float64) int {
	for i, l := range levels {
		if l == v || math.Abs(l-v) <= 1e-9*math.Max(math.Abs(l), 1) {
			return i
		}
	}
	return -1
}

func formatLevel(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
