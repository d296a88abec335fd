// ============================================================================
// End-to-End Pipeline Tests
// ============================================================================
//
// Package: test/integration
// File: pipeline_test.go
// Purpose: Exercise the full campaign path for both process routes
//
// Each test assembles a preset, simulates the complete train (compressor,
// bioreactor, cell separation, three polishing columns, dryer), then runs
// the profitability analysis and the price sweep on the simulated numbers.
// The persisted JSON results are round-tripped through a temp file.
//
// ============================================================================

package integration

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahyunlee00299/tagsim/internal/report"
	"github.com/jahyunlee00299/tagsim/internal/scenario"
	"github.com/jahyunlee00299/tagsim/internal/sweep"
	"github.com/jahyunlee00299/tagsim/internal/tea"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
)

func TestEndToEndRouteA(t *testing.T) {
	reg := thermo.Default()
	preset, err := scenario.Lookup("pilot-1000L")
	require.NoError(t, err)

	campaign, err := scenario.BuildRouteA(preset, reg)
	require.NoError(t, err)

	res, err := campaign.System.Simulate()
	require.NoError(t, err)

	// The pilot preset is fully modeled: no degradations expected.
	assert.Empty(t, res.Warnings)
	assert.Greater(t, res.TotalPurchase, 0.0)
	assert.Greater(t, res.TotalInstalled, res.TotalPurchase)
	assert.Greater(t, res.TotalPowerKW, 0.0)

	// Dried product leaves the train at the preset conversion less the
	// downstream recovery losses.
	product := campaign.Dryer.ProductMassFlow()
	fedSugar := campaign.Feed.ComponentMassFlow(thermo.Galactose)
	require.Greater(t, product, 0.0)
	assert.Less(t, product, fedSugar)
	assert.Greater(t, product, fedSugar*0.7)

	in := campaign.TEAInputs(res)
	analysis, err := tea.Analyze(tea.DefaultParameters(), in)
	require.NoError(t, err)
	assert.False(t, analysis.TotalCapital.IsZero())
	assert.False(t, math.IsNaN(analysis.IRR))
}

func TestEndToEndRouteB(t *testing.T) {
	reg := thermo.Default()
	preset, err := scenario.Lookup("pilot-1000L")
	require.NoError(t, err)

	campaign, err := scenario.BuildRouteB(preset, reg)
	require.NoError(t, err)

	res, err := campaign.System.Simulate()
	require.NoError(t, err)

	// Hydrolysis and neutralization precede the reactor.
	_, ok := campaign.System.Unit("hydrolysis")
	require.True(t, ok)
	_, ok = campaign.System.Unit("neutralization")
	require.True(t, ok)

	assert.Greater(t, campaign.Dryer.ProductMassFlow(), 0.0)

	in := campaign.TEAInputs(res)
	assert.Greater(t, in.BiomassKg, 0.0)
	assert.Zero(t, in.GalactoseKg)

	_, err = tea.Analyze(tea.DefaultParameters(), in)
	require.NoError(t, err)
}

func TestEveryPresetSimulates(t *testing.T) {
	reg := thermo.Default()
	for _, preset := range scenario.Presets() {
		campaign, err := scenario.BuildRouteA(preset, reg)
		require.NoError(t, err, preset.Name)

		res, err := campaign.System.Simulate()
		require.NoError(t, err, preset.Name)
		assert.Greater(t, res.TotalInstalled, 0.0, preset.Name)
		assert.Greater(t, campaign.Dryer.ProductMassFlow(), 0.0, preset.Name)
	}
}

func TestPriceSweepOverSimulatedCampaign(t *testing.T) {
	reg := thermo.Default()
	preset, err := scenario.Lookup("pilot-1000L")
	require.NoError(t, err)

	campaign, err := scenario.BuildRouteA(preset, reg)
	require.NoError(t, err)
	res, err := campaign.System.Simulate()
	require.NoError(t, err)

	prices, err := sweep.Grid(10.0, 200.0, 10.0)
	require.NoError(t, err)

	points, err := sweep.Run(tea.DefaultParameters(), campaign.TEAInputs(res), prices, 4)
	require.NoError(t, err)
	require.Len(t, points, len(prices))

	// NPV rises monotonically with the selling price.
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Analysis.NPV.GreaterThan(points[i-1].Analysis.NPV))
	}

	// A pilot-scale plant carries its full crew on a trickle of product,
	// so the break-even price sits far above commodity sweetener pricing.
	be, ok := sweep.BreakEven(points)
	require.True(t, ok)
	assert.True(t, be.GreaterThan(points[0].Price))
	for _, pt := range points {
		if pt.Price.LessThan(be) {
			assert.True(t, pt.Analysis.NPV.LessThan(decimal.Zero), pt.Price.String())
		}
	}
}

func TestResultsPersistenceRoundTrip(t *testing.T) {
	reg := thermo.Default()
	preset, err := scenario.Lookup("pilot-1000L")
	require.NoError(t, err)

	campaign, err := scenario.BuildRouteA(preset, reg)
	require.NoError(t, err)
	res, err := campaign.System.Simulate()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "results.json")
	collected := report.Collect(campaign.System, res)
	require.NoError(t, report.Save(path, collected))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded report.Results
	require.NoError(t, json.Unmarshal(data, &loaded))

	assert.Equal(t, collected.System, loaded.System)
	assert.InDelta(t, collected.Installed, loaded.Installed, 1e-9)
	assert.Len(t, loaded.Design, len(collected.Design))

	// No stray temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
