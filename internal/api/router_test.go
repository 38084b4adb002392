package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"art-returns/internal/api/models"
	"art-returns/internal/config"
	"art-returns/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const baselinePreset = `name: Baseline
description: Steady primary market growth
assumptions:
  - label: primary_unit_price
    values: [50, 55, 60, 65, 70]
  - label: primary_sales_area
    values: [1000, 1200, 1400, 1600, 1800]
  - label: secondary_unit_price
    values: [80, 85, 90, 95, 100]
`

const evaluateBody = `{
  "assumptions": [
    {"label": "primary_unit_price", "values": [50, 55, 60, 65, 70]},
    {"label": "primary_sales_area", "values": [1000, 1200, 1400, 1600, 1800]},
    {"label": "secondary_unit_price", "values": [80, 85, 90, 95, 100]}
  ],
  "cashflow": {"net_profit": [200, 300, 300, 300, 300]},
  "investment": 1000
}`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "baseline.yaml"), []byte(baselinePreset), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a preset"), 0o644))

	cfg := &config.ServerConfig{
		PresetDir:   dir,
		CacheTTL:    time.Minute,
		CORSOrigins: []string{"*"},
	}
	return NewRouter(cfg, data.NewEvaluationCache(cfg.CacheTTL), zap.NewNop())
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	w := do(newTestRouter(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestEvaluate_AndFetchByID(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/evaluate", evaluateBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.EvaluationResponse](t, w)

	require.NotEmpty(t, resp.ID)
	assert.Equal(t, "eigen", resp.Summary.Solver)
	assert.Equal(t, 4, resp.Summary.PaybackPeriod)
	assert.Equal(t, "Y4", resp.Summary.PaybackLabel)
	assert.Greater(t, resp.Summary.IRRPercent, 11.0)
	assert.Less(t, resp.Summary.IRRPercent, 12.0)
	assert.True(t, resp.Summary.IRRDefined)
	assert.Equal(t, []float64{50000, 66000, 84000, 104000, 126000}, resp.Series.PrimaryRevenue)
	assert.Equal(t, 80000.0, resp.Series.SecondaryRevenue[0])
	assert.Len(t, resp.Rows, 5)
	assert.Equal(t, 1400.0, resp.Rows[4].CumNetProfit)
	assert.Len(t, resp.Scenario.Prices, config.DefaultLevels)
	assert.Equal(t, 30000.0, resp.Scenario.Values[0][0])

	w = do(r, http.MethodGet, "/api/v1/evaluations/"+resp.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	again := decode[models.EvaluationResponse](t, w)
	assert.Equal(t, resp.Summary, again.Summary)
}

func TestGetEvaluation_NotFound(t *testing.T) {
	r := newTestRouter(t)
	for _, id := range []string{"3f2b8c1e-0000-4000-8000-000000000000", "nope"} {
		w := do(r, http.MethodGet, "/api/v1/evaluations/"+id, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decode[models.ErrorResponse](t, w).Error.Code)
	}
}

func TestExportEvaluation(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/v1/evaluate", evaluateBody)
	require.Equal(t, http.StatusOK, w.Code)
	id := decode[models.EvaluationResponse](t, w).ID

	w = do(r, http.MethodGet, "/api/v1/evaluations/"+id+"/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "period,label,"))

	w = do(r, http.MethodGet, "/api/v1/evaluations/"+id+"/export?format=xlsx", "")
	require.Equal(t, http.StatusOK, w.Code)
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Assumptions")

	w = do(r, http.MethodGet, "/api/v1/evaluations/"+id+"/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{
			name: "malformed json",
			body: `{"assumptions": [`,
			code: "INVALID_REQUEST",
		},
		{
			name: "non-numeric assumption",
			body: `{"assumptions":[{"label":"primary_unit_price","values":[1,"abc",3,4,5]}],"cashflow":{"net_profit":[1,1,1,1,1]},"investment":1000}`,
			code: "CONVERSION_ERROR",
		},
		{
			name: "non-finite assumption",
			body: `{"assumptions":[{"label":"primary_unit_price","values":[1,"NaN",3,4,5]}],"cashflow":{"net_profit":[1,1,1,1,1]},"investment":1000}`,
			code: "CONVERSION_ERROR",
		},
		{
			name: "unknown assumption label",
			body: `{"assumptions":[{"label":"gallery_rent","values":[1,2,3,4,5]}],"investment":1000}`,
			code: "ASSUMPTION_NOT_FOUND",
		},
		{
			name: "missing primary unit price",
			body: `{"assumptions":[{"label":"primary_sales_area","values":[1,2,3,4,5]}],"investment":1000}`,
			code: "ASSUMPTION_NOT_FOUND",
		},
		{
			name: "investment below range",
			body: `{"assumptions":[{"label":"primary_unit_price","values":[1,2,3,4,5]}],"investment":500}`,
			code: "INVALID_CONFIG",
		},
		{
			name: "unknown solver",
			body: `{"assumptions":[{"label":"primary_unit_price","values":[1,2,3,4,5]}],"solver":{"name":"bisect"}}`,
			code: "INVALID_CONFIG",
		},
		{
			name: "unknown preset",
			body: `{"preset":"bullish","investment":1000}`,
			code: "INVALID_CONFIG",
		},
	}

	r := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/v1/evaluate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode[models.ErrorResponse](t, w).Error.Code)
		})
	}
}

func TestEvaluate_ConversionErrorDetails(t *testing.T) {
	body := `{"assumptions":[{"label":"primary_unit_price","values":[1,"abc",3,4,5]}],"investment":1000}`
	w := do(newTestRouter(t), http.MethodPost, "/api/v1/evaluate", body)
	detail := decode[models.ErrorResponse](t, w).Error
	assert.Equal(t, "primary_unit_price", detail.Details["label"])
	assert.Equal(t, "Y2", detail.Details["period"])
	assert.Equal(t, "abc", detail.Details["value"])
}

func TestEvaluate_PermissiveCashflow(t *testing.T) {
	body := strings.Replace(evaluateBody, `[200, 300, 300, 300, 300]`, `[200, "n/a", 300, null, 300]`, 1)
	w := do(newTestRouter(t), http.MethodPost, "/api/v1/evaluate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.EvaluationResponse](t, w)
	assert.Equal(t, []float64{200, 0, 300, 0, 300}, resp.Series.NetProfit)
	assert.Equal(t, 0, resp.Summary.PaybackPeriod)
	assert.Equal(t, "", resp.Summary.PaybackLabel)
}

func TestEvaluate_WithPreset(t *testing.T) {
	body := `{
	  "preset": "baseline",
	  "assumptions": [{"label": "Secondary market unit price", "values": [10, 10, 10, 10, 10]}],
	  "cashflow": {"net_profit": [200, 300, 300, 300, 300]},
	  "investment": 1000
	}`
	w := do(newTestRouter(t), http.MethodPost, "/api/v1/evaluate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.EvaluationResponse](t, w)
	assert.Equal(t, 10000.0, resp.Series.SecondaryRevenue[0])
	assert.Equal(t, 50000.0, resp.Series.PrimaryRevenue[0])
}

func TestCompareEvaluations(t *testing.T) {
	body := `{
	  "base": ` + evaluateBody + `,
	  "variations": [
	    {"name": "as-is"},
	    {"name": "strong", "cashflow": {"net_profit": [500, 500, 500, 500, 500]}},
	    {"name": "broken", "assumptions": [{"label": "primary_unit_price", "values": ["x", 1, 1, 1, 1]}]}
	  ]
	}`
	w := do(newTestRouter(t), http.MethodPost, "/api/v1/evaluate/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.CompareResponse](t, w)

	require.Len(t, resp.Comparison, 2)
	require.Len(t, resp.Ranking, 2)
	assert.Equal(t, "strong", resp.Ranking[0].Name)
	assert.Equal(t, 1, resp.Ranking[0].Rank)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "broken", resp.Skipped[0].Name)
	assert.Equal(t, "CONVERSION_ERROR", resp.Skipped[0].Error.Code)
}

func TestCompareEvaluations_RequiresVariations(t *testing.T) {
	w := do(newTestRouter(t), http.MethodPost, "/api/v1/evaluate/compare", `{"base": `+evaluateBody+`, "variations": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSweep_AllLossesNeverBreakEven(t *testing.T) {
	body := strings.Replace(evaluateBody, `[200, 300, 300, 300, 300]`, `[-100, -100, -100, -100, -100]`, 1)
	body = strings.Replace(body, `"investment": 1000`, `"investments": [1000, 2000]`, 1)

	w := do(newTestRouter(t), http.MethodPost, "/api/v1/sweep", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.SweepResponse](t, w)

	require.Len(t, resp.Points, 2)
	assert.False(t, resp.Points[0].Defined)
	assert.False(t, resp.Points[1].Defined)
	assert.Equal(t, 0, resp.Summary.Defined)
	assert.False(t, resp.Summary.BreaksEven)
}

func TestSweep(t *testing.T) {
	r := newTestRouter(t)
	body := strings.Replace(evaluateBody, `"investment": 1000`, `"min": 1000, "max": 2000, "steps": 3`, 1)

	w := do(r, http.MethodPost, "/api/v1/sweep", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.SweepResponse](t, w)

	require.Len(t, resp.Points, 3)
	assert.Equal(t, []float64{1000, 1500, 2000}, []float64{resp.Points[0].Investment, resp.Points[1].Investment, resp.Points[2].Investment})
	assert.Greater(t, resp.Points[0].IRRPercent, resp.Points[2].IRRPercent)
	assert.Equal(t, 3, resp.Summary.Count)
	assert.Equal(t, 1000.0, resp.Summary.BestInvestment)

	explicit := strings.Replace(evaluateBody, `"investment": 1000`, `"investments": [2000, 1000]`, 1)
	w = do(r, http.MethodPost, "/api/v1/sweep", explicit)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[models.SweepResponse](t, w)
	require.Len(t, resp.Points, 2)
	assert.Equal(t, 2000.0, resp.Points[0].Investment)

	tooMany := strings.Replace(evaluateBody, `"investment": 1000`, `"min": 1000, "max": 2000, "steps": 501`, 1)
	w = do(r, http.MethodPost, "/api/v1/sweep", tooMany)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScenario(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/scenario", `{"scenario": {}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.ScenarioResponse](t, w)
	assert.Equal(t, []float64{30, 40, 50, 60, 70}, resp.Matrix.Prices)
	assert.Equal(t, []float64{1000, 1250, 1500, 1750, 2000}, resp.Matrix.Areas)
	assert.Equal(t, 70.0*2000, resp.Matrix.Values[4][4])
	assert.Equal(t, 25, resp.Summary.Cells)

	w = do(r, http.MethodPost, "/api/v1/scenario", `{"scenario": {"price_steps": 2}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CONFIG", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestListings(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/assumptions", "")
	require.Equal(t, http.StatusOK, w.Code)
	a := decode[struct {
		Periods     []string                `json:"periods"`
		Assumptions []models.AssumptionInfo `json:"assumptions"`
	}](t, w)
	assert.Len(t, a.Assumptions, 13)
	assert.Equal(t, "primary_unit_price", a.Assumptions[0].Key)
	assert.Equal(t, []string{"Y1", "Y2", "Y3", "Y4", "Y5"}, a.Periods)

	w = do(r, http.MethodGet, "/api/v1/solvers", "")
	require.Equal(t, http.StatusOK, w.Code)
	s := decode[struct {
		Solvers []models.SolverInfo `json:"solvers"`
	}](t, w)
	require.Len(t, s.Solvers, 2)
	assert.Equal(t, "eigen", s.Solvers[0].Name)
	assert.Len(t, s.Solvers[1].Parameters, 3)

	w = do(r, http.MethodGet, "/api/v1/presets", "")
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[struct {
		Presets []models.PresetInfo `json:"presets"`
	}](t, w)
	require.Len(t, p.Presets, 1)
	assert.Equal(t, "baseline", p.Presets[0].ID)
	assert.Equal(t, "Baseline", p.Presets[0].Name)
	assert.Equal(t, 3, p.Presets[0].Rows)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/evaluate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
