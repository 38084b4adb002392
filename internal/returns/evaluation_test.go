package returns

import (
	"errors"
	"testing"

	"art-returns/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	m := newModel(t, model.NetProfitSchedule(model.Series{400, 400, 400, 0, 0}))

	ev, err := m.Evaluate(1000)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, ev.Investment)
	assert.Equal(t, "eigen", ev.Solver)
	assert.Equal(t, model.Payback(3), ev.Payback)
	assert.InDelta(t, ev.IRR*100, ev.IRRPercent, 1e-12)
	assert.True(t, ev.IRRDefined)
	assert.InDelta(t, 0, ev.NPVAtIRR(), 1e-6)

	require.Len(t, ev.Rows, model.Periods)
	assert.Equal(t, "Y1", ev.Rows[0].Label)
	assert.Equal(t, 1200.0, ev.Rows[2].CumNetProfit)
	assert.Equal(t, 30.0, ev.Rows[2].PrimaryRevenue)
	assert.Equal(t, 150.0, ev.TotalPrimaryRevenue)
	assert.Equal(t, 10.0, ev.TotalSecondaryRevenue)
	assert.Equal(t, 1200.0, ev.TotalNetProfit)

	discounted := 0.0
	for _, r := range ev.Rows {
		discounted += r.DiscountedNetProfit
	}
	assert.InDelta(t, 1000, discounted, 1e-6)

	assert.Equal(t, 2, ev.Scenario.Rows())
}

func TestEvaluate_UndefinedIRRStillEvaluates(t *testing.T) {
	m := newModel(t, model.NewCashflowSchedule("x", "y"))

	ev, err := m.Evaluate(1000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ev.IRR)
	assert.False(t, ev.IRRDefined)
	assert.Equal(t, model.NoPayback, ev.Payback)
	assert.Equal(t, 1.0, ev.Rows[4].DiscountFactor)
}

func TestEvaluate_MissingSecondaryPriceIsStrict(t *testing.T) {
	m, err := New(model.Inputs{
		Assumptions: model.NewAssumptionsTable(
			model.AssumptionRow{Kind: model.PrimaryUnitPrice, Values: model.Series{10, 20, 30, 40, 50}},
			model.AssumptionRow{Kind: model.PrimarySalesArea, Values: model.Series{1, 1, 1, 1, 1}},
		),
		Cashflow: model.NetProfitSchedule(model.Series{400, 400, 400, 0, 0}),
	}, Options{})
	require.NoError(t, err)

	ev, err := m.Evaluate(1000)
	assert.Nil(t, ev)
	var nf *model.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "secondary_unit_price", nf.Label)
}
