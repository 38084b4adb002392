package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"art-returns/internal/model"
)

// Spreadsheet exports use one row per series: label, Y1..Y5 and optional
// trailing columns (total, note). A header row whose first cell is empty or
// "label" is skipped.

// LoadAssumptionsCSV reads raw assumption rows. Cells are kept as text;
// model.ParseAssumptions does the strict numeric conversion.
func LoadAssumptionsCSV(path string) ([]model.RawAssumption, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	out := make([]model.RawAssumption, 0, len(records))
	for i, rec := range records {
		if len(rec) < 1+model.Periods {
			return nil, fmt.Errorf("%s line %d: expected label and %d values, got %d fields", path, i+1, model.Periods, len(rec))
		}
		row := model.RawAssumption{Label: strings.TrimSpace(rec[0])}
		for _, v := range rec[1 : 1+model.Periods] {
			row.Values = append(row.Values, model.Cell(v))
		}
		// Column 7 is the derived total and is recomputed, column 8 is the note.
		if len(rec) > 2+model.Periods {
			row.Note = strings.TrimSpace(rec[2+model.Periods])
		}
		out = append(out, row)
	}
	return out, nil
}

// LoadCashflowCSV reads every row as a labelled cash-flow row. Short rows are
// kept as-is; the model decides how to treat a malformed net-profit row.
func LoadCashflowCSV(path string) (*model.CashflowSchedule, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	s := &model.CashflowSchedule{}
	for _, rec := range records {
		row := model.CashflowRow{Label: strings.TrimSpace(rec[0])}
		end := len(rec)
		if end > 1+model.Periods {
			end = 1 + model.Periods
		}
		for _, v := range rec[1:end] {
			row.Values = append(row.Values, model.Cell(v))
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := records[:0]
	for i, rec := range records {
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		first := strings.ToLower(strings.TrimSpace(rec[0]))
		if i == 0 && (first == "" || first == "label") {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
