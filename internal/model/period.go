package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Periods is the fixed model horizon (Y1..Y5).
const Periods = 5

// PeriodLabels are the column headers used in reports and API output.
var PeriodLabels = [Periods]string{"Y1", "Y2", "Y3", "Y4", "Y5"}

// Series holds one value per period.
type Series [Periods]float64

// Total is the "T" column: the sum across all periods.
func (s Series) Total() float64 {
	t := 0.0
	for _, v := range s {
		t += v
	}
	return t
}

// Mul returns the element-wise product of s and o.
func (s Series) Mul(o Series) Series {
	var out Series
	for i := range s {
		out[i] = s[i] * o[i]
	}
	return out
}

// Cumulative returns the running sum of s.
func (s Series) Cumulative() Series {
	var out Series
	cum := 0.0
	for i, v := range s {
		cum += v
		out[i] = cum
	}
	return out
}

// Slice returns a copy of s as a slice (convenient for JSON and stats helpers).
func (s Series) Slice() []float64 {
	out := make([]float64, Periods)
	copy(out, s[:])
	return out
}

// Cell is a raw input value as typed by the user.
// It accepts JSON numbers, JSON strings, null and any YAML scalar.
type Cell string

func (c *Cell) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*c = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Cell(s)
		return nil
	}
	*c = Cell(raw)
	return nil
}

// Float parses the cell strictly.
func (c Cell) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(c)), 64)
}

// NumberCell formats a float as a Cell.
func NumberCell(v float64) Cell {
	return Cell(strconv.FormatFloat(v, 'f', -1, 64))
}

// CellsFromSeries converts numeric values back into raw cells.
func CellsFromSeries(s Series) []Cell {
	out := make([]Cell, Periods)
	for i, v := range s {
		out[i] = NumberCell(v)
	}
	return out
}
