package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"path/filepath"
	"testing"

	"art-returns/internal/model"
	"art-returns/internal/returns"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fixture(t *testing.T) (*model.AssumptionsTable, *returns.Evaluation, []returns.IRRPoint) {
	t.Helper()
	table := model.NewAssumptionsTable(
		model.AssumptionRow{Kind: model.PrimaryUnitPrice, Values: model.Series{50, 55, 60, 65, 70}},
		model.AssumptionRow{Kind: model.PrimarySalesArea, Values: model.Series{1000, 1200, 1400, 1600, 1800}},
		model.AssumptionRow{Kind: model.SecondaryUnitPrice, Values: model.Series{80, 85, 90, 95, 100}, Note: "auction"},
	)
	grid, err := model.BuildScenarioGrid([]float64{30, 50}, []float64{1000, 2000})
	require.NoError(t, err)

	m, err := returns.New(model.Inputs{
		Assumptions: table,
		Cashflow:    model.NetProfitSchedule(model.Series{200, 300, 300, 300, 300}),
		Scenario:    grid,
	}, returns.Options{})
	require.NoError(t, err)

	ev, err := m.Evaluate(1000)
	require.NoError(t, err)
	return table, ev, m.IRRVsInvestment([]float64{500, 1000, 1500})
}

func readCSV(t *testing.T, b *bytes.Buffer) [][]string {
	t.Helper()
	recs, err := csv.NewReader(b).ReadAll()
	require.NoError(t, err)
	return recs
}

func TestWriteProjectionCSV(t *testing.T) {
	_, ev, _ := fixture(t)
	var buf bytes.Buffer
	require.NoError(t, WriteProjectionCSV(&buf, ev))

	recs := readCSV(t, &buf)
	require.Len(t, recs, 1+model.Periods)
	assert.Equal(t, "period", recs[0][0])
	assert.Equal(t, []string{"1", "Y1", "50.00", "1000", "80.00", "50000.00", "80000.00", "200.00", "200.00"}, recs[1][:9])
	assert.Equal(t, "1400.00", recs[5][8])
}

func TestWriteScenarioCSV(t *testing.T) {
	_, ev, _ := fixture(t)
	var buf bytes.Buffer
	require.NoError(t, WriteScenarioCSV(&buf, ev.Scenario))

	recs := readCSV(t, &buf)
	assert.Equal(t, [][]string{
		{"price\\area", "1000", "2000"},
		{"30", "30000.00", "60000.00"},
		{"50", "50000.00", "100000.00"},
	}, recs)
}

func TestWriteSweepCSV(t *testing.T) {
	_, _, pts := fixture(t)
	var buf bytes.Buffer
	require.NoError(t, WriteSweepCSV(&buf, pts))

	recs := readCSV(t, &buf)
	require.Len(t, recs, 4)
	assert.Equal(t, []string{"investment", "irr_percent"}, recs[0])
	assert.Equal(t, "1000.00", recs[2][0])
}

func TestWriteSweepCSV_UndefinedAndNonFinite(t *testing.T) {
	pts := []returns.IRRPoint{
		{Investment: 1000},
		{Investment: math.NaN(), IRRPercent: math.Inf(1), Defined: true},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteSweepCSV(&buf, pts))

	recs := readCSV(t, &buf)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"1000.00", ""}, recs[1])
	assert.Equal(t, []string{"NaN", "+Inf"}, recs[2])
}

func TestSaveCSV(t *testing.T) {
	_, _, pts := fixture(t)
	p := filepath.Join(t.TempDir(), "sweep.csv")
	require.NoError(t, SaveCSV(p, func(w io.Writer) error { return WriteSweepCSV(w, pts) }))
}

func TestSaveWorkbook(t *testing.T) {
	table, ev, pts := fixture(t)
	p := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, SaveWorkbook(p, Report{Assumptions: table, Evaluation: ev, Sweep: pts}))

	f, err := excelize.OpenFile(p)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetAssumptions, SheetProjection, SheetScenario, SheetSweep}, f.GetSheetList())

	v, err := f.GetCellValue(SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "4", v)

	v, err = f.GetCellValue(SheetAssumptions, "A4")
	require.NoError(t, err)
	assert.Equal(t, "secondary_unit_price", v)

	rows, err := f.GetRows(SheetScenario)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	cf, err := f.GetConditionalFormats(SheetScenario)
	require.NoError(t, err)
	assert.Contains(t, cf, "B2:C3")
}

func TestBuildWorkbook_OptionalSheets(t *testing.T) {
	_, ev, _ := fixture(t)
	f, err := BuildWorkbook(Report{Evaluation: ev})
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetSummary, SheetProjection, SheetScenario}, f.GetSheetList())

	_, err = BuildWorkbook(Report{})
	assert.Error(t, err)
}
