package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"art-returns/internal/analysis"
	"art-returns/internal/config"
	"art-returns/internal/data"
	"art-returns/internal/logger"
	"art-returns/internal/model"
	"art-returns/internal/report"
	"art-returns/internal/returns"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "evaluate":
		cmdEvaluate(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	case "scenario":
		cmdScenario(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli evaluate --config examples/config.yaml [--investment 2500] [--out results] [--xlsx results/report.xlsx]")
	fmt.Println("  cli sweep --config examples/config.yaml [--min 1000 --max 5000 --steps 9]")
	fmt.Println("  cli scenario --config examples/config.yaml")
	fmt.Println("")
	fmt.Println("inputs:")
	fmt.Println("  --assumptions-csv and --cashflow-csv read label,Y1..Y5 rows and override the YAML config")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - non-numeric cash-flow entries count as zero and are logged")
	fmt.Println("  - IRR is reported as 0 when no rate solves the cash flows")
}

// inputFlags are shared by every subcommand.
type inputFlags struct {
	cfgPath        *string
	assumptionsCSV *string
	cashflowCSV    *string
	solver         *string
}

func addInputFlags(fs *flag.FlagSet) inputFlags {
	return inputFlags{
		cfgPath:        fs.String("config", "", "Path to YAML config"),
		assumptionsCSV: fs.String("assumptions-csv", "", "Optional: assumptions table as CSV (label,Y1..Y5[,T,note])"),
		cashflowCSV:    fs.String("cashflow-csv", "", "Optional: cash-flow rows as CSV; the 'net profit' row is used"),
		solver:         fs.String("solver", "", "Optional: IRR solver override (eigen|newton)"),
	}
}

// load builds a validated config and the model inputs from flags.
func (f inputFlags) load(investment float64) (*config.Config, model.Inputs) {
	if *f.cfgPath == "" && *f.assumptionsCSV == "" {
		fmt.Println("--config or --assumptions-csv is required")
		os.Exit(2)
	}

	cfg := &config.Config{}
	if *f.cfgPath != "" {
		loaded, err := config.LoadUnchecked(*f.cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}
	if *f.assumptionsCSV != "" {
		rows, err := data.LoadAssumptionsCSV(*f.assumptionsCSV)
		if err != nil {
			panic(err)
		}
		cfg.Assumptions = config.MergeAssumptions(cfg.Assumptions, rows)
	}
	if *f.solver != "" {
		cfg.Solver.Name = *f.solver
	}
	if investment > 0 {
		cfg.Investment.Amount = investment
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	in, err := cfg.Inputs()
	if err != nil {
		panic(err)
	}
	if *f.cashflowCSV != "" {
		sched, err := data.LoadCashflowCSV(*f.cashflowCSV)
		if err != nil {
			panic(err)
		}
		in.Cashflow = sched
	}
	return cfg, in
}

func newModel(cfg *config.Config, in model.Inputs) *returns.Model {
	log, err := logger.New("development")
	if err != nil {
		panic(err)
	}
	solver, err := cfg.Solver.Build()
	if err != nil {
		panic(err)
	}
	m, err := returns.New(in, returns.Options{Solver: solver, Logger: log})
	if err != nil {
		panic(err)
	}
	return m
}

func cmdEvaluate(args []string) {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	inputs := addInputFlags(fs)
	investment := fs.Float64("investment", 0, "Initial investment (default from config, else 2500)")
	outDir := fs.String("out", "results", "Output directory for projection/scenario/sweep CSVs (empty to skip)")
	xlsxPath := fs.String("xlsx", "", "Optional path to write an XLSX workbook")
	_ = fs.Parse(args)

	cfg, in := inputs.load(*investment)
	m := newModel(cfg, in)

	ev, err := m.Evaluate(cfg.Investment.Amount)
	if err != nil {
		panic(err)
	}
	sweep := m.IRRVsInvestment(cfg.Sweep.Investments())

	printEvaluation(ev)

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			panic(err)
		}
		writes := map[string]func(io.Writer) error{
			"projection.csv": func(w io.Writer) error { return report.WriteProjectionCSV(w, ev) },
			"scenario.csv":   func(w io.Writer) error { return report.WriteScenarioCSV(w, ev.Scenario) },
			"sweep.csv":      func(w io.Writer) error { return report.WriteSweepCSV(w, sweep) },
		}
		for _, name := range []string{"projection.csv", "scenario.csv", "sweep.csv"} {
			path := filepath.Join(*outDir, name)
			if err := report.SaveCSV(path, writes[name]); err != nil {
				panic(err)
			}
			fmt.Printf("Wrote %s\n", path)
		}
	}

	if *xlsxPath != "" {
		if err := os.MkdirAll(filepath.Dir(*xlsxPath), 0o755); err != nil {
			panic(err)
		}
		err := report.SaveWorkbook(*xlsxPath, report.Report{
			Assumptions: in.Assumptions,
			Evaluation:  ev,
			Sweep:       sweep,
		})
		if err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %s\n", *xlsxPath)
	}
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	inputs := addInputFlags(fs)
	lo := fs.Float64("min", 0, "Smallest investment (default 50% of the configured amount)")
	hi := fs.Float64("max", 0, "Largest investment (default 150% of the configured amount)")
	steps := fs.Int("steps", 0, "Number of evenly spaced investments")
	_ = fs.Parse(args)

	cfg, in := inputs.load(0)
	if *lo > 0 {
		cfg.Sweep.Min = *lo
	}
	if *hi > 0 {
		cfg.Sweep.Max = *hi
	}
	if *steps > 0 {
		cfg.Sweep.Steps = *steps
	}
	if cfg.Sweep.Min > cfg.Sweep.Max {
		fmt.Println("--min must be <= --max")
		os.Exit(2)
	}

	points := newModel(cfg, in).IRRVsInvestment(cfg.Sweep.Investments())

	fmt.Printf("%-16s %-10s\n", "investment", "irr%")
	for _, p := range points {
		if !p.Defined {
			fmt.Printf("%-16.2f %-10s\n", p.Investment, "n/a")
			continue
		}
		fmt.Printf("%-16.2f %-10.4f\n", p.Investment, p.IRRPercent)
	}

	s := analysis.SummarizeSweep(points)
	if s.Defined == 0 {
		fmt.Println("\nIRR undefined for every investment")
		return
	}
	fmt.Printf("\nIRR%% min=%.4f median=%.4f max=%.4f (p05=%.4f p95=%.4f)\n",
		s.MinIRRPercent, s.MedianIRRPercent, s.MaxIRRPercent, s.P05IRRPercent, s.P95IRRPercent)
	fmt.Printf("Best IRR at investment %.2f\n", s.BestInvestment)
	if s.BreaksEven {
		fmt.Printf("Largest investment with IRR >= 0: %.2f\n", s.BreakEvenInvestment)
	} else {
		fmt.Println("No swept investment breaks even")
	}
}

func cmdScenario(args []string) {
	fs := flag.NewFlagSet("scenario", flag.ExitOnError)
	inputs := addInputFlags(fs)
	_ = fs.Parse(args)

	cfg, in := inputs.load(0)
	m := newModel(cfg, in).ScenarioRevenueMatrix()

	fmt.Printf("%-12s", "price\\area")
	for _, a := range m.Areas {
		fmt.Printf(" %14.2f", a)
	}
	fmt.Println()
	for i, p := range m.Prices {
		fmt.Printf("%-12.2f", p)
		for _, v := range m.Values[i] {
			fmt.Printf(" %14.2f", v)
		}
		fmt.Println()
	}

	g := analysis.SummarizeGrid(m)
	fmt.Printf("\n%d cells, revenue %.2f..%.2f, p95-p05 spread %.2f\n",
		g.Cells, g.MinRevenue, g.MaxRevenue, g.SpreadP95P05)
}

func printEvaluation(ev *returns.Evaluation) {
	payback := ev.Payback.Label()
	if payback == "" {
		payback = ev.Payback.String()
	}
	fmt.Printf("Solver:      %s\n", ev.Solver)
	fmt.Printf("Investment:  %.2f\n", ev.Investment)
	fmt.Printf("IRR:         %.4f%%\n", ev.IRRPercent)
	fmt.Printf("Payback:     %s\n\n", payback)

	fmt.Printf("%-6s %16s %16s %14s %14s\n", "period", "primary_rev", "secondary_rev", "net_profit", "cum_profit")
	for _, r := range ev.Rows {
		fmt.Printf("%-6s %16.2f %16.2f %14.2f %14.2f\n",
			r.Label, r.PrimaryRevenue, r.SecondaryRevenue, r.NetProfit, r.CumNetProfit)
	}
	fmt.Printf("%-6s %16.2f %16.2f %14.2f\n", "T",
		ev.TotalPrimaryRevenue, ev.TotalSecondaryRevenue, ev.TotalNetProfit)
	fmt.Println(strings.Repeat("-", 72))
}
