package flowsheet

// ============================================================================
// Flowsheet Tests
// Responsibilities: train wiring validation, pass aggregation, and the
// observer hooks
// ============================================================================

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahyunlee00299/tagsim/internal/oxygen"
	"github.com/jahyunlee00299/tagsim/internal/reaction"
	"github.com/jahyunlee00299/tagsim/internal/stream"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
	"github.com/jahyunlee00299/tagsim/internal/unitops"
)

func testTrain(t *testing.T) (*unitops.BatchBioreactor, *unitops.CellSeparator) {
	t.Helper()
	reg := thermo.Default()
	net, err := reaction.TagatoseNetwork(reg, 0.98)
	require.NoError(t, err)

	feed := stream.New("feed", reg)
	feed.SetComponentFlow(thermo.Galactose, 416.7)
	feed.SetComponentFlow(thermo.Formate, 437.5)
	feed.SetComponentFlow(thermo.NAD, 416.7)
	feed.SetComponentFlow(thermo.Water, 50000)
	feed.MassFlowFromKg(thermo.Cells, 20)

	reactor, err := unitops.NewBatchBioreactor("R101",
		unitops.ReactorConfig{Tau: 24, Count: 2}, net, oxygen.ForcedAeration{}, reg, feed, nil)
	require.NoError(t, err)

	separator, err := unitops.NewCellSeparator("S101", reg, reactor.Effluent(), nil)
	require.NoError(t, err)
	return reactor, separator
}

func TestNewSystemRejectsForwardReference(t *testing.T) {
	reactor, separator := testTrain(t)

	// The separator consumes the reactor effluent, so it cannot come
	// first.
	_, err := NewSystem("backwards", separator, reactor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consumes")

	_, err = NewSystem("empty")
	require.Error(t, err)
}

func TestSimulateAggregates(t *testing.T) {
	reactor, separator := testTrain(t)
	sys, err := NewSystem("train", reactor, separator)
	require.NoError(t, err)

	res, err := sys.Simulate()
	require.NoError(t, err)

	assert.Equal(t, "train", res.System)
	assert.Greater(t, res.TotalPurchase, 0.0)
	assert.Greater(t, res.TotalInstalled, res.TotalPurchase)
	assert.Greater(t, res.TotalPowerKW, 0.0)
	assert.Empty(t, res.Warnings)

	// The separator saw the reacted broth, not the raw feed.
	assert.Greater(t, separator.Clarified().ComponentFlow(thermo.Tagatose), 0.0)
}

type recordingObserver struct {
	units       int
	simulations int
	last        Results
}

func (o *recordingObserver) UnitCompleted(string, int)     { o.units++ }
func (o *recordingObserver) SimulationCompleted(r Results) { o.simulations++; o.last = r }

func TestObserverHooks(t *testing.T) {
	reactor, separator := testTrain(t)
	sys, err := NewSystem("train", reactor, separator)
	require.NoError(t, err)

	obs := &recordingObserver{}
	sys.SetObserver(obs)

	res, err := sys.Simulate()
	require.NoError(t, err)

	assert.Equal(t, 2, obs.units)
	assert.Equal(t, 1, obs.simulations)
	assert.Equal(t, res.TotalPurchase, obs.last.TotalPurchase)
}

func TestSimulateIsRepeatable(t *testing.T) {
	reactor, separator := testTrain(t)
	sys, err := NewSystem("train", reactor, separator)
	require.NoError(t, err)

	first, err := sys.Simulate()
	require.NoError(t, err)
	second, err := sys.Simulate()
	require.NoError(t, err)

	assert.InDelta(t, first.TotalPurchase, second.TotalPurchase, 1e-9)
	assert.Equal(t, 2, sys.Passes())
}

func TestUnitLookup(t *testing.T) {
	reactor, separator := testTrain(t)
	sys, err := NewSystem("train", reactor, separator)
	require.NoError(t, err)

	u, ok := sys.Unit("S101")
	require.True(t, ok)
	assert.Equal(t, "S101", u.ID())

	_, ok = sys.Unit("nope")
	assert.False(t, ok)
}
