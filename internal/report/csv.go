package report

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"art-returns/internal/model"
	"art-returns/internal/returns"

	"github.com/shopspring/decimal"
)

// SaveCSV creates path and hands it to write.
func SaveCSV(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func WriteProjectionCSV(out io.Writer, ev *returns.Evaluation) error {
	w := csv.NewWriter(out)

	header := []string{
		"period",
		"label",
		"primary_unit_price",
		"primary_sales_area",
		"secondary_unit_price",
		"primary_revenue",
		"secondary_revenue",
		"net_profit",
		"cum_net_profit",
		"discount_factor",
		"discounted_net_profit",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ev.Rows {
		row := []string{
			strconv.Itoa(r.Period),
			r.Label,
			fmtMoney(r.PrimaryUnitPrice),
			fmtFloat(r.PrimarySalesArea),
			fmtMoney(r.SecondaryUnitPrice),
			fmtMoney(r.PrimaryRevenue),
			fmtMoney(r.SecondaryRevenue),
			fmtMoney(r.NetProfit),
			fmtMoney(r.CumNetProfit),
			fmtFloat(r.DiscountFactor),
			fmtMoney(r.DiscountedNetProfit),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteScenarioCSV writes the revenue matrix with area levels across and price
// levels down.
func WriteScenarioCSV(out io.Writer, m model.RevenueMatrix) error {
	w := csv.NewWriter(out)

	header := make([]string, 0, len(m.Areas)+1)
	header = append(header, "price\\area")
	for _, a := range m.Areas {
		header = append(header, fmtFloat(a))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, p := range m.Prices {
		row := make([]string, 0, len(m.Areas)+1)
		row = append(row, fmtFloat(p))
		for _, v := range m.Values[i] {
			row = append(row, fmtMoney(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func WriteSweepCSV(out io.Writer, points []returns.IRRPoint) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"investment", "irr_percent"}); err != nil {
		return err
	}
	for _, p := range points {
		irr := ""
		if p.Defined {
			irr = fmtPercent(p.IRRPercent)
		}
		if err := w.Write([]string{fmtMoney(p.Investment), irr}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// decimal panics on NaN and Inf; those fall back to strconv.
func fmtMoney(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmtFloat(x)
	}
	return decimal.NewFromFloat(x).StringFixed(2)
}

func fmtPercent(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmtFloat(x)
	}
	return decimal.NewFromFloat(x).StringFixed(4)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
