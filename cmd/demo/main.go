package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"art-returns/internal/analysis"
	"art-returns/internal/config"
	"art-returns/internal/model"
	"art-returns/internal/report"
	"art-returns/internal/returns"

	"go.uber.org/zap"
)

// Demo:
// - Build an assumptions table, a cash-flow schedule and a scenario grid in code
// - Evaluate one investment and sweep a range of investments
// - Print how the pieces fit together
func main() {
	investment := flag.Float64("investment", config.DefaultInvestment, "Initial investment")
	solverName := flag.String("solver", "eigen", "IRR solver (eigen|newton)")
	outCSV := flag.String("out", "", "Optional path to write the projection CSV (e.g. results/projection.csv)")
	verbose := flag.Bool("v", false, "Log cash-flow coercions and IRR fallbacks")
	flag.Parse()

	// Illustrative figures; money in the units of each row.
	assumptions := model.NewAssumptionsTable(
		row(model.PrimaryUnitPrice, 3.0, 3.3, 3.6, 4.0, 4.4),
		row(model.PrimarySalesArea, 120, 150, 180, 210, 240),
		row(model.SecondaryUnitPrice, 4.5, 5.0, 5.6, 6.2, 6.9),
		row(model.SecondaryRelease, 0, 30, 45, 60, 75),
		row(model.SecondaryAuctionRate, 0, 60, 65, 70, 70),
		row(model.DerivativeRevenue, 0, 10, 20, 30, 40),
		row(model.PrimaryProcurementCost, 50, 50, 48, 46, 45),
		row(model.SecondarySalesCost, 12, 12, 12, 12, 12),
		row(model.TeamAdminCost, 60, 65, 70, 75, 80),
		row(model.MarketingCost, 30, 30, 35, 35, 40),
		row(model.OtherOperatingCost, 10, 10, 10, 10, 10),
		row(model.DerivativeCost, 40, 40, 40, 40, 40),
		row(model.IncomeTaxRate, 25, 25, 25, 25, 25),
	)

	// One blank entry shows the permissive cash-flow path: it reads as zero.
	cashflow := model.NewCashflowSchedule("-150", "420", "", "980", "1350")

	// Zero scenario settings pick up the default 5x5 grid.
	cfg := &config.Config{Solver: config.SolverConfig{Name: *solverName}}
	cfg.Investment.Amount = *investment
	cfg.ApplyDefaults()
	grid, err := cfg.Scenario.Grid()
	if err != nil {
		panic(err)
	}
	solver, err := cfg.Solver.Build()
	if err != nil {
		panic(err)
	}

	log := zap.NewNop()
	if *verbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	}

	m, err := returns.New(model.Inputs{
		Assumptions: assumptions,
		Cashflow:    cashflow,
		Scenario:    grid,
	}, returns.Options{Solver: solver, Logger: log})
	if err != nil {
		panic(err)
	}

	ev, err := m.Evaluate(*investment)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Solver=%s  Investment=%.2f\n", ev.Solver, ev.Investment)
	fmt.Printf("IRR=%.4f%%  Payback=%s  NPV@IRR=%.6f\n\n", ev.IRRPercent, ev.Payback, ev.NPVAtIRR())

	for _, r := range ev.Rows {
		fmt.Printf(
			"%s price=%5.2f area=%6.1f  primary=%8.2f  secondary=%8.2f  profit=%8.2f  cum=%8.2f  disc=%8.2f\n",
			r.Label,
			r.PrimaryUnitPrice,
			r.PrimarySalesArea,
			r.PrimaryRevenue,
			r.SecondaryRevenue,
			r.NetProfit,
			r.CumNetProfit,
			r.DiscountedNetProfit,
		)
	}

	points := m.IRRVsInvestment(cfg.Sweep.Investments())
	fmt.Println("\nIRR vs investment:")
	for _, p := range points {
		if !p.Defined {
			fmt.Printf("  %10.2f  %9s\n", p.Investment, "n/a")
			continue
		}
		fmt.Printf("  %10.2f  %8.4f%%\n", p.Investment, p.IRRPercent)
	}
	s := analysis.SummarizeSweep(points)
	fmt.Printf("  median=%.4f%%  best at %.2f\n", s.MedianIRRPercent, s.BestInvestment)

	g := analysis.SummarizeGrid(ev.Scenario)
	fmt.Printf("\nScenario grid %dx%d, revenue %.0f..%.0f\n",
		ev.Scenario.Rows(), ev.Scenario.Cols(), g.MinRevenue, g.MaxRevenue)

	if *outCSV != "" {
		if err := os.MkdirAll(filepath.Dir(*outCSV), 0o755); err != nil {
			panic(err)
		}
		err := report.SaveCSV(*outCSV, func(w io.Writer) error {
			return report.WriteProjectionCSV(w, ev)
		})
		if err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}
}

func row(kind model.AssumptionKind, values ...float64) model.AssumptionRow {
	var s model.Series
	copy(s[:], values)
	return model.AssumptionRow{Kind: kind, Values: s}
}
