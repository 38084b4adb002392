package handlers

import (
	"fmt"
	"net/http"

	"art-returns/internal/analysis"
	"art-returns/internal/api/models"
	"art-returns/internal/config"
	"art-returns/internal/data"
	"art-returns/internal/model"
	"art-returns/internal/report"
	"art-returns/internal/returns"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxSweepPoints caps the number of investments one sweep request may ask for.
const MaxSweepPoints = 500

// EvaluationHandler handles evaluation-related requests
type EvaluationHandler struct {
	presets *PresetHandler
	cache   *data.EvaluationCache
	log     *zap.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(presets *PresetHandler, cache *data.EvaluationCache, log *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		presets: presets,
		cache:   cache,
		log:     log,
	}
}

// Evaluate handles POST /api/v1/evaluate
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	var req models.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	ev, assumptions, err := h.evaluate(req)
	if err != nil {
		writeError(c, err)
		return
	}

	id := h.cache.Put(ev, assumptions)
	h.log.Debug("evaluation stored",
		zap.String("id", id),
		zap.Float64("investment", ev.Investment),
		zap.Float64("irr_percent", ev.IRRPercent))

	c.JSON(http.StatusOK, models.NewEvaluationResponse(id, ev))
}

// GetEvaluation handles GET /api/v1/evaluations/:id
func (h *EvaluationHandler) GetEvaluation(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.NewEvaluationResponse(entry.ID, entry.Evaluation))
}

// ExportEvaluation handles GET /api/v1/evaluations/:id/export?format=csv|xlsx
func (h *EvaluationHandler) ExportEvaluation(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}

	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "projection-"+entry.ID+".csv"))
		c.Header("Content-Type", "text/csv")
		c.Status(http.StatusOK)
		if err := report.WriteProjectionCSV(c.Writer, entry.Evaluation); err != nil {
			h.log.Error("csv export failed", zap.String("id", entry.ID), zap.Error(err))
		}
	case "xlsx":
		f, err := report.BuildWorkbook(report.Report{
			Assumptions: entry.Assumptions,
			Evaluation:  entry.Evaluation,
		})
		if err != nil {
			h.log.Error("workbook export failed", zap.String("id", entry.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
			})
			return
		}
		defer f.Close()
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "evaluation-"+entry.ID+".xlsx"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := f.Write(c.Writer); err != nil {
			h.log.Error("workbook export failed", zap.String("id", entry.ID), zap.Error(err))
		}
	default:
		badRequest(c, "INVALID_REQUEST", fmt.Errorf("unsupported export format %q (want csv or xlsx)", format))
	}
}

// CompareEvaluations handles POST /api/v1/evaluate/compare
func (h *EvaluationHandler) CompareEvaluations(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	resp := models.CompareResponse{
		Comparison: make([]models.ComparisonResult, 0, len(req.Variations)),
	}
	variations := make([]analysis.Variation, 0, len(req.Variations))

	for _, v := range req.Variations {
		ev, _, err := h.evaluate(mergeVariation(req.Base, v))
		if err != nil {
			_, detail := classify(err)
			resp.Skipped = append(resp.Skipped, models.SkippedVariation{Name: v.Name, Error: detail})
			continue
		}
		resp.Comparison = append(resp.Comparison, models.ComparisonResult{
			Name:    v.Name,
			Summary: models.NewEvaluationSummary(ev),
		})
		variations = append(variations, analysis.Variation{Name: v.Name, Evaluation: ev})
	}
	resp.Ranking = analysis.RankByIRR(variations)

	c.JSON(http.StatusOK, resp)
}

// Sweep handles POST /api/v1/sweep
func (h *EvaluationHandler) Sweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	cfg, err := h.buildConfig(req.InputsRequest)
	if err != nil {
		writeError(c, err)
		return
	}
	cfg.Sweep = config.SweepConfig{Min: req.Min, Max: req.Max, Steps: req.Steps}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		writeError(c, err)
		return
	}

	investments := req.Investments
	if len(investments) == 0 {
		investments = cfg.Sweep.Investments()
	}
	if len(investments) > MaxSweepPoints {
		badRequest(c, "INVALID_REQUEST", fmt.Errorf("sweep has %d points, at most %d allowed", len(investments), MaxSweepPoints))
		return
	}

	m, _, err := h.buildModel(cfg)
	if err != nil {
		writeError(c, err)
		return
	}
	points := m.IRRVsInvestment(investments)

	c.JSON(http.StatusOK, models.SweepResponse{
		Points:  points,
		Summary: analysis.SummarizeSweep(points),
	})
}

// Scenario handles POST /api/v1/scenario
func (h *EvaluationHandler) Scenario(c *gin.Context) {
	var req models.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	cfg := &config.Config{Scenario: scenarioConfig(req.Scenario)}
	cfg.ApplyDefaults()
	grid, err := cfg.Scenario.Grid()
	if err != nil {
		writeError(c, err)
		return
	}

	m := grid.Matrix()
	c.JSON(http.StatusOK, models.ScenarioResponse{
		Matrix:  m,
		Summary: analysis.SummarizeGrid(m),
	})
}

// Helper methods

func (h *EvaluationHandler) lookup(c *gin.Context) (*data.CacheEntry, bool) {
	id := c.Param("id")
	entry, ok := h.cache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: fmt.Sprintf("evaluation %q not found or expired", id),
			},
		})
		return nil, false
	}
	return entry, true
}

func (h *EvaluationHandler) evaluate(req models.EvaluateRequest) (*returns.Evaluation, *model.AssumptionsTable, error) {
	cfg, err := h.buildConfig(req.InputsRequest)
	if err != nil {
		return nil, nil, err
	}
	cfg.Investment.Amount = req.Investment
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	m, in, err := h.buildModel(cfg)
	if err != nil {
		return nil, nil, err
	}
	ev, err := m.Evaluate(cfg.Investment.Amount)
	if err != nil {
		return nil, nil, err
	}
	return ev, in.Assumptions, nil
}

// buildConfig converts request inputs into an unvalidated config. A named
// preset supplies the base assumption rows.
func (h *EvaluationHandler) buildConfig(req models.InputsRequest) (*config.Config, error) {
	cfg := &config.Config{
		Assumptions: req.Assumptions,
		Cashflow:    config.CashflowConfig{NetProfit: req.Cashflow.NetProfit},
		Scenario:    scenarioConfig(req.Scenario),
		Solver: config.SolverConfig{
			Name:   req.Solver.Name,
			Params: req.Solver.Params,
		},
	}

	if req.Preset != "" {
		preset, err := h.presets.Load(req.Preset)
		if err != nil {
			return nil, err
		}
		cfg.Assumptions = config.MergeAssumptions(preset.Assumptions, req.Assumptions)
	}
	return cfg, nil
}

func (h *EvaluationHandler) buildModel(cfg *config.Config) (*returns.Model, model.Inputs, error) {
	in, err := cfg.Inputs()
	if err != nil {
		return nil, model.Inputs{}, err
	}
	solver, err := cfg.Solver.Build()
	if err != nil {
		return nil, model.Inputs{}, err
	}
	m, err := returns.New(in, returns.Options{Solver: solver, Logger: h.log})
	if err != nil {
		return nil, model.Inputs{}, err
	}
	return m, in, nil
}

func scenarioConfig(s models.ScenarioInput) config.ScenarioConfig {
	return config.ScenarioConfig{
		PriceSteps: s.PriceSteps,
		AreaSteps:  s.AreaSteps,
		PriceMin:   s.PriceMin,
		PriceMax:   s.PriceMax,
		AreaMin:    s.AreaMin,
		AreaMax:    s.AreaMax,
	}
}

// mergeVariation overlays a variation onto the base request. Assumption rows
// replace base rows of the same kind; other fields replace wholesale.
func mergeVariation(base models.EvaluateRequest, v models.Variation) models.EvaluateRequest {
	merged := base
	if len(v.Assumptions) > 0 {
		merged.Assumptions = config.MergeAssumptions(base.Assumptions, v.Assumptions)
	}
	if v.Cashflow != nil {
		merged.Cashflow = *v.Cashflow
	}
	if v.Investment != 0 {
		merged.Investment = v.Investment
	}
	if v.Solver != nil {
		merged.Solver = *v.Solver
	}
	return merged
}
