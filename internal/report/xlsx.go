package report

import (
	"fmt"

	"art-returns/internal/model"
	"art-returns/internal/returns"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary     = "Summary"
	SheetAssumptions = "Assumptions"
	SheetProjection  = "Projection"
	SheetScenario    = "Scenario"
	SheetSweep       = "Sweep"
)

// Report bundles everything a workbook export can contain. Assumptions and
// Sweep are optional.
type Report struct {
	Assumptions *model.AssumptionsTable
	Evaluation  *returns.Evaluation
	Sweep       []returns.IRRPoint
}

// SaveWorkbook builds the workbook and writes it to path.
func SaveWorkbook(path string, r Report) error {
	f, err := BuildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// BuildWorkbook lays the report out one sheet per table. The caller owns the
// returned file and must Close it.
func BuildWorkbook(r Report) (*excelize.File, error) {
	if r.Evaluation == nil {
		return nil, fmt.Errorf("report has no evaluation")
	}
	f := excelize.NewFile()
	ok := false
	defer func() {
		if !ok {
			f.Close()
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	if err := writeSummary(f, r.Evaluation); err != nil {
		return nil, err
	}
	if r.Assumptions != nil {
		if err := writeAssumptions(f, r.Assumptions); err != nil {
			return nil, err
		}
	}
	if err := writeProjection(f, r.Evaluation, money); err != nil {
		return nil, err
	}
	if err := writeScenario(f, r.Evaluation.Scenario, money); err != nil {
		return nil, err
	}
	if len(r.Sweep) > 0 {
		if err := writeSweep(f, r.Sweep); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	ok = true
	return f, nil
}

func writeSummary(f *excelize.File, ev *returns.Evaluation) error {
	rows := [][]any{
		{"Investment", ev.Investment},
		{"Solver", ev.Solver},
		{"IRR (%)", ev.IRRPercent},
		{"Payback period", ev.Payback.String()},
		{"Total primary revenue", ev.TotalPrimaryRevenue},
		{"Total secondary revenue", ev.TotalSecondaryRevenue},
		{"Total net profit", ev.TotalNetProfit},
	}
	return setRows(f, SheetSummary, 1, rows)
}

func writeAssumptions(f *excelize.File, t *model.AssumptionsTable) error {
	if _, err := f.NewSheet(SheetAssumptions); err != nil {
		return err
	}
	header := []any{"Key", "Label", "Unit"}
	for _, l := range model.PeriodLabels {
		header = append(header, l)
	}
	header = append(header, "T", "Note")

	rows := [][]any{header}
	for _, r := range t.Rows() {
		row := []any{r.Kind.Key(), r.Kind.Label(), r.Kind.Unit()}
		for _, v := range r.Values {
			row = append(row, v)
		}
		row = append(row, r.Total(), r.Note)
		rows = append(rows, row)
	}
	return setRows(f, SheetAssumptions, 1, rows)
}

func writeProjection(f *excelize.File, ev *returns.Evaluation, money int) error {
	if _, err := f.NewSheet(SheetProjection); err != nil {
		return err
	}
	rows := [][]any{{
		"Period", "Primary unit price", "Primary sales area", "Secondary unit price",
		"Primary revenue", "Secondary revenue", "Net profit", "Cumulative net profit",
		"Discount factor", "Discounted net profit",
	}}
	for _, r := range ev.Rows {
		rows = append(rows, []any{
			r.Label, r.PrimaryUnitPrice, r.PrimarySalesArea, r.SecondaryUnitPrice,
			r.PrimaryRevenue, r.SecondaryRevenue, r.NetProfit, r.CumNetProfit,
			r.DiscountFactor, r.DiscountedNetProfit,
		})
	}
	rows = append(rows, []any{
		"T", nil, nil, nil,
		ev.TotalPrimaryRevenue, ev.TotalSecondaryRevenue, ev.TotalNetProfit,
	})
	if err := setRows(f, SheetProjection, 1, rows); err != nil {
		return err
	}
	last := len(rows)
	if err := f.SetCellStyle(SheetProjection, "E2", fmt.Sprintf("H%d", last), money); err != nil {
		return err
	}
	return f.SetCellStyle(SheetProjection, "J2", fmt.Sprintf("J%d", last), money)
}

func writeScenario(f *excelize.File, m model.RevenueMatrix, money int) error {
	if _, err := f.NewSheet(SheetScenario); err != nil {
		return err
	}
	header := []any{"price \\ area"}
	for _, a := range m.Areas {
		header = append(header, a)
	}
	rows := [][]any{header}
	for i, p := range m.Prices {
		row := []any{p}
		for _, v := range m.Values[i] {
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	if err := setRows(f, SheetScenario, 1, rows); err != nil {
		return err
	}
	if m.Rows() == 0 || m.Cols() == 0 {
		return nil
	}

	topLeft, err := excelize.CoordinatesToCellName(2, 2)
	if err != nil {
		return err
	}
	bottomRight, err := excelize.CoordinatesToCellName(m.Cols()+1, m.Rows()+1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetScenario, topLeft, bottomRight, money); err != nil {
		return err
	}
	return f.SetConditionalFormat(SheetScenario, topLeft+":"+bottomRight, []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "min",
		MidType:  "percentile",
		MidValue: "50",
		MaxType:  "max",
		MinColor: "#F8696B",
		MidColor: "#FFEB84",
		MaxColor: "#63BE7B",
	}})
}

func writeSweep(f *excelize.File, points []returns.IRRPoint) error {
	if _, err := f.NewSheet(SheetSweep); err != nil {
		return err
	}
	rows := [][]any{{"Investment", "IRR (%)"}}
	for _, p := range points {
		var irr any
		if p.Defined {
			irr = p.IRRPercent
		}
		rows = append(rows, []any{p.Investment, irr})
	}
	return setRows(f, SheetSweep, 1, rows)
}

func setRows(f *excelize.File, sheet string, startRow int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
