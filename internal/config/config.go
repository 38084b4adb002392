package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"art-returns/internal/irr"
	"art-returns/internal/model"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

// Scenario and investment bounds offered to users.
const (
	MinLevels = 3
	MaxLevels = 10

	DefaultLevels   = 5
	DefaultPriceMin = 30
	DefaultPriceMax = 70
	DefaultAreaMin  = 1000
	DefaultAreaMax  = 2000

	DefaultInvestment    = 2500
	DefaultInvestmentMin = 1000
	DefaultInvestmentMax = 10_000_000

	DefaultSweepSteps = 11
)

// Config is the on-disk configuration shape (YAML) of one evaluation.
type Config struct {
	// Optional: load assumption rows from a preset file (e.g. examples/presets/*.yaml).
	// Rows listed under Assumptions override preset rows with the same label.
	AssumptionsFile string                `yaml:"assumptions_file"`
	Assumptions     []model.RawAssumption `yaml:"assumptions"`
	Cashflow        CashflowConfig        `yaml:"cashflow"`
	Scenario        ScenarioConfig        `yaml:"scenario"`
	Investment      InvestmentConfig      `yaml:"investment"`
	Sweep           SweepConfig           `yaml:"sweep"`
	Solver          SolverConfig          `yaml:"solver"`
}

type CashflowConfig struct {
	NetProfit []model.Cell `yaml:"net_profit"`
}

// ScenarioConfig describes the price × area sensitivity sweep.
// Units: price in 10k CNY per sq chi, area in sq chi.
type ScenarioConfig struct {
	PriceSteps int     `yaml:"price_steps"`
	AreaSteps  int     `yaml:"area_steps"`
	PriceMin   float64 `yaml:"price_min"`
	PriceMax   float64 `yaml:"price_max"`
	AreaMin    float64 `yaml:"area_min"`
	AreaMax    float64 `yaml:"area_max"`
}

type InvestmentConfig struct {
	Amount float64 `yaml:"amount"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// SweepConfig controls the IRR-versus-investment curve. When Min/Max are zero
// the sweep spans 50%..150% of the investment amount.
type SweepConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

type SolverConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

// PresetFile is the shape of an assumptions preset on disk.
type PresetFile struct {
	Name        string                `yaml:"name"`
	Description string                `yaml:"description"`
	Assumptions []model.RawAssumption `yaml:"assumptions"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.AssumptionsFile != "" {
		presetPath := c.AssumptionsFile
		if !filepath.IsAbs(presetPath) {
			// Prefer paths relative to the config file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), presetPath)
			if _, err := os.Stat(cand); err == nil {
				presetPath = cand
			}
		}
		preset, err := LoadPreset(presetPath)
		if err != nil {
			return nil, err
		}
		c.Assumptions = MergeAssumptions(preset.Assumptions, c.Assumptions)
	}
	return &c, nil
}

// LoadPreset reads an assumptions preset file.
func LoadPreset(path string) (*PresetFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p PresetFile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return &p, nil
}

// ApplyDefaults fills zero-valued scenario, investment and sweep settings.
func (c *Config) ApplyDefaults() {
	s := &c.Scenario
	if s.PriceSteps == 0 {
		s.PriceSteps = DefaultLevels
	}
	if s.AreaSteps == 0 {
		s.AreaSteps = DefaultLevels
	}
	if s.PriceMin == 0 && s.PriceMax == 0 {
		s.PriceMin, s.PriceMax = DefaultPriceMin, DefaultPriceMax
	}
	if s.AreaMin == 0 && s.AreaMax == 0 {
		s.AreaMin, s.AreaMax = DefaultAreaMin, DefaultAreaMax
	}

	inv := &c.Investment
	if inv.Min == 0 && inv.Max == 0 {
		inv.Min, inv.Max = DefaultInvestmentMin, DefaultInvestmentMax
	}
	if inv.Amount == 0 {
		inv.Amount = DefaultInvestment
	}

	if c.Sweep.Steps == 0 {
		c.Sweep.Steps = DefaultSweepSteps
	}
	if c.Sweep.Min == 0 && c.Sweep.Max == 0 {
		c.Sweep.Min = inv.Amount * 0.5
		c.Sweep.Max = inv.Amount * 1.5
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Assumptions) == 0 {
		return errors.New("assumptions are required")
	}
	// Validate assumption rows by constructing the table.
	if _, err := model.ParseAssumptions(c.Assumptions); err != nil {
		return fmt.Errorf("assumptions invalid: %w", err)
	}
	if err := c.Scenario.Validate(); err != nil {
		return fmt.Errorf("scenario config invalid: %w", err)
	}
	if err := c.Investment.Validate(); err != nil {
		return fmt.Errorf("investment config invalid: %w", err)
	}
	if c.Sweep.Steps < 1 {
		return errors.New("sweep.steps must be >= 1")
	}
	if !(c.Sweep.Min <= c.Sweep.Max) {
		return errors.New("sweep.min must be <= sweep.max")
	}
	if _, err := c.Solver.Build(); err != nil {
		return err
	}
	return nil
}

func (s ScenarioConfig) Validate() error {
	if s.PriceSteps < MinLevels || s.PriceSteps > MaxLevels {
		return fmt.Errorf("price_steps must be in [%d, %d], got %d", MinLevels, MaxLevels, s.PriceSteps)
	}
	if s.AreaSteps < MinLevels || s.AreaSteps > MaxLevels {
		return fmt.Errorf("area_steps must be in [%d, %d], got %d", MinLevels, MaxLevels, s.AreaSteps)
	}
	if !(s.PriceMin < s.PriceMax) {
		return errors.New("price_min must be < price_max")
	}
	if !(s.AreaMin < s.AreaMax) {
		return errors.New("area_min must be < area_max")
	}
	return nil
}

// Levels returns evenly spaced price and area levels, bounds included.
func (s ScenarioConfig) Levels() (prices, areas []float64) {
	prices = floats.Span(make([]float64, s.PriceSteps), s.PriceMin, s.PriceMax)
	areas = floats.Span(make([]float64, s.AreaSteps), s.AreaMin, s.AreaMax)
	return prices, areas
}

// Grid builds the stored scenario grid for this sweep.
func (s ScenarioConfig) Grid() (*model.ScenarioGrid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	prices, areas := s.Levels()
	return model.BuildScenarioGrid(prices, areas)
}

func (i InvestmentConfig) Validate() error {
	if !(i.Min > 0 && i.Min <= i.Max) {
		return errors.New("investment bounds must satisfy 0 < min <= max")
	}
	return i.Check(i.Amount)
}

// Check reports whether amount lies within the configured bounds. NaN never does.
func (i InvestmentConfig) Check(amount float64) error {
	if !(amount >= i.Min && amount <= i.Max) {
		return fmt.Errorf("investment %.2f outside allowed range [%.0f, %.0f]", amount, i.Min, i.Max)
	}
	return nil
}

// Investments returns the swept investment amounts in ascending order.
func (s SweepConfig) Investments() []float64 {
	if s.Steps <= 1 || s.Min == s.Max {
		return []float64{s.Min}
	}
	return floats.Span(make([]float64, s.Steps), s.Min, s.Max)
}

// Build constructs the configured IRR solver.
func (s SolverConfig) Build() (irr.Solver, error) {
	return irr.New(s.Name, irr.Params{
		Tolerance:     mustNum(s.Params, "tolerance", 0),
		MaxIterations: int(mustNum(s.Params, "max_iterations", 0)),
		Guess:         mustNum(s.Params, "guess", 0),
	})
}

// Inputs builds the three model tables from the config.
func (c *Config) Inputs() (model.Inputs, error) {
	assumptions, err := model.ParseAssumptions(c.Assumptions)
	if err != nil {
		return model.Inputs{}, err
	}
	grid, err := c.Scenario.Grid()
	if err != nil {
		return model.Inputs{}, err
	}
	return model.Inputs{
		Assumptions: assumptions,
		Cashflow:    model.NewCashflowSchedule(c.Cashflow.NetProfit...),
		Scenario:    grid,
	}, nil
}

// MergeAssumptions overlays override rows onto base. A row in override replaces
// the base row with the same assumption kind; new kinds are appended in order.
func MergeAssumptions(base, override []model.RawAssumption) []model.RawAssumption {
	out := make([]model.RawAssumption, len(base))
	copy(out, base)
	index := map[model.AssumptionKind]int{}
	for i, r := range out {
		if k, err := model.ParseAssumptionKind(r.Label); err == nil {
			if _, seen := index[k]; !seen {
				index[k] = i
			}
		}
	}
	for _, r := range override {
		k, err := model.ParseAssumptionKind(r.Label)
		if err == nil {
			if i, ok := index[k]; ok {
				out[i] = r
				continue
			}
			index[k] = len(out)
		}
		// Unknown labels are kept so Validate reports them.
		out = append(out, r)
	}
	return out
}

func mustNum(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		}
	}
	return def
}
