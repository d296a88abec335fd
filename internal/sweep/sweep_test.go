package sweep

// ============================================================================
// Price Sweep Tests
// Responsibilities: grid construction, order preservation under the worker
// pool, and break-even detection
// ============================================================================

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahyunlee00299/tagsim/internal/tea"
)

func sweepInputs() tea.Inputs {
	return tea.Inputs{
		InstalledCost: 2_000_000,
		PowerKW:       150,
		WaterLPerHr:   1000,
		GalactoseKg:   100,
		FormateKg:     20,
		LaborHours:    2,
		ProductKg:     80,
	}
}

func TestGridIsInclusive(t *testing.T) {
	grid, err := Grid(3.0, 8.0, 0.5)
	require.NoError(t, err)
	require.Len(t, grid, 11)
	assert.True(t, grid[0].Equal(decimal.NewFromFloat(3.0)))
	assert.True(t, grid[10].Equal(decimal.NewFromFloat(8.0)))

	single, err := Grid(5.0, 5.0, 1.0)
	require.NoError(t, err)
	require.Len(t, single, 1)
}

func TestGridValidation(t *testing.T) {
	_, err := Grid(3.0, 8.0, 0)
	require.ErrorIs(t, err, ErrBadGrid)

	_, err = Grid(8.0, 3.0, 0.5)
	require.ErrorIs(t, err, ErrBadGrid)
}

func TestRunPreservesGridOrder(t *testing.T) {
	grid, err := Grid(1.0, 10.0, 0.25)
	require.NoError(t, err)

	points, err := Run(tea.DefaultParameters(), sweepInputs(), grid, 8)
	require.NoError(t, err)
	require.Len(t, points, len(grid))

	for i, pt := range points {
		assert.True(t, pt.Price.Equal(grid[i]), "point %d", i)
	}

	// Higher price never lowers the NPV.
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Analysis.NPV.GreaterThanOrEqual(points[i-1].Analysis.NPV))
	}
}

func TestRunDefaultsWorkerCount(t *testing.T) {
	grid, err := Grid(4.0, 6.0, 1.0)
	require.NoError(t, err)

	points, err := Run(tea.DefaultParameters(), sweepInputs(), grid, 0)
	require.NoError(t, err)
	assert.Len(t, points, 3)
}

func TestRunRejectsEmptyGrid(t *testing.T) {
	_, err := Run(tea.DefaultParameters(), sweepInputs(), nil, 4)
	require.ErrorIs(t, err, ErrNoPoints)
}

func TestRunPropagatesAnalysisError(t *testing.T) {
	params := tea.DefaultParameters()
	params.ProjectYears = 0

	grid, err := Grid(4.0, 6.0, 1.0)
	require.NoError(t, err)

	_, err = Run(params, sweepInputs(), grid, 2)
	require.ErrorIs(t, err, tea.ErrInvalidParameters)
}

func TestBreakEven(t *testing.T) {
	grid, err := Grid(0.5, 12.0, 0.5)
	require.NoError(t, err)

	points, err := Run(tea.DefaultParameters(), sweepInputs(), grid, 4)
	require.NoError(t, err)

	price, ok := BreakEven(points)
	require.True(t, ok)
	assert.True(t, price.GreaterThan(decimal.Zero))

	// Everything below the break-even price stays under water.
	for _, pt := range points {
		if pt.Price.LessThan(price) {
			assert.True(t, pt.Analysis.NPV.LessThan(decimal.Zero), pt.Price.String())
		}
	}

	// A grid that never reaches profitability has no break-even point.
	low, err := Run(tea.DefaultParameters(), sweepInputs(),
		[]decimal.Decimal{decimal.NewFromFloat(0.01)}, 1)
	require.NoError(t, err)
	_, ok = BreakEven(low)
	assert.False(t, ok)
}
