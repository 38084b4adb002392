package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScenarioGrid(t *testing.T) {
	g, err := BuildScenarioGrid([]float64{10, 20}, []float64{100, 200})
	require.NoError(t, err)

	rows, cols := g.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)

	v, err := g.Cell(10, 100)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)

	v, err = g.Cell(20, 200)
	require.NoError(t, err)
	assert.Equal(t, 4000.0, v)

	m := g.Matrix()
	assert.Equal(t, [][]float64{{1000, 2000}, {2000, 4000}}, m.Values)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 2, m.Cols())
}

func TestBuildScenarioGrid_AxisValidation(t *testing.T) {
	_, err := BuildScenarioGrid(nil, []float64{1})
	assert.True(t, errors.Is(err, ErrAxisEmpty))

	_, err = BuildScenarioGrid([]float64{1, 1}, []float64{1})
	assert.True(t, errors.Is(err, ErrAxisOrder))

	_, err = BuildScenarioGrid([]float64{1, 2}, []float64{3, 2})
	assert.True(t, errors.Is(err, ErrAxisOrder))
}

func TestScenarioGrid_CellUnknownLevel(t *testing.T) {
	g, err := BuildScenarioGrid([]float64{10, 20}, []float64{100, 200})
	require.NoError(t, err)

	_, err = g.Cell(15, 100)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "price level", nf.Kind)

	_, err = g.Cell(10, 150)
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "area level", nf.Kind)
}

func TestNewScenarioGrid_StoredTableIsNotRecomputed(t *testing.T) {
	g, err := NewScenarioGrid([]float64{1, 2}, []float64{10, 20}, [][]float64{{7, 8}, {9, 10}})
	require.NoError(t, err)

	v, err := g.Cell(2, 10)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
}

func TestNewScenarioGrid_RejectsRaggedTable(t *testing.T) {
	_, err := NewScenarioGrid([]float64{1, 2}, []float64{10, 20}, [][]float64{{7, 8}, {9}})
	assert.True(t, errors.Is(err, ErrGridShape))

	_, err = NewScenarioGrid([]float64{1, 2}, []float64{10, 20}, [][]float64{{7, 8}})
	assert.True(t, errors.Is(err, ErrGridShape))
}

func TestScenarioGrid_MatrixIsACopy(t *testing.T) {
	g, err := BuildScenarioGrid([]float64{1}, []float64{2})
	require.NoError(t, err)

	m := g.Matrix()
	m.Values[0][0] = 99

	v, err := g.Cell(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestNilScenarioGrid(t *testing.T) {
	var g *ScenarioGrid
	m := g.Matrix()
	assert.Empty(t, m.Values)
	_, err := g.Cell(1, 1)
	assert.Error(t, err)
}

func TestPayback(t *testing.T) {
	assert.Equal(t, "3", Payback(3).String())
	assert.Equal(t, "Y3", Payback(3).Label())
	assert.True(t, Payback(1).Recovered())
	assert.False(t, NoPayback.Recovered())
	assert.Equal(t, "no payback", NoPayback.String())
	assert.Equal(t, "", NoPayback.Label())
}

func TestPayback_TextRoundTrip(t *testing.T) {
	for _, p := range []Payback{NoPayback, 1, 5} {
		b, err := p.MarshalText()
		require.NoError(t, err)
		var got Payback
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, p, got)
	}
	var p Payback
	assert.Error(t, p.UnmarshalText([]byte("7")))
	assert.Error(t, p.UnmarshalText([]byte("soon")))
}
