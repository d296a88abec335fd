package sizing

// ============================================================================
// Batch Sizing Tests
// Responsibilities: spec validation, count/volume mutual exclusivity, the
// count formula and its volume inverse, bound enforcement, auto-selection
// ============================================================================

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpec(t *testing.T) *Spec {
	t.Helper()
	spec, err := NewSpec(24, 3, 0.9, DefaultNMin, DefaultNMax)
	require.NoError(t, err)
	return spec
}

func TestNewSpecValidation(t *testing.T) {
	_, err := NewSpec(0, 3, 0.9, 2, 36)
	require.ErrorIs(t, err, ErrTiming)

	_, err = NewSpec(24, -1, 0.9, 2, 36)
	require.ErrorIs(t, err, ErrTiming)

	_, err = NewSpec(24, 3, 0, 2, 36)
	require.ErrorIs(t, err, ErrWorkingFraction)

	_, err = NewSpec(24, 3, 1.1, 2, 36)
	require.ErrorIs(t, err, ErrWorkingFraction)

	_, err = NewSpec(24, 3, 0.9, 1, 36)
	require.ErrorIs(t, err, ErrBounds)

	_, err = NewSpec(24, 3, 0.9, 4, 3)
	require.ErrorIs(t, err, ErrBounds)
}

func TestCountVolumeMutualExclusivity(t *testing.T) {
	spec := newTestSpec(t)

	require.NoError(t, spec.SetCount(4))
	err := spec.SetTargetVolume(50)
	require.ErrorIs(t, err, ErrCountVolumeConflict)

	spec.ClearCount()
	require.NoError(t, spec.SetTargetVolume(50))
	err = spec.SetCount(4)
	require.ErrorIs(t, err, ErrCountVolumeConflict)

	spec.ClearTargetVolume()
	require.NoError(t, spec.SetCount(4))
}

func TestSetterRangeChecks(t *testing.T) {
	spec := newTestSpec(t)

	// Counts of one or less are rejected at assignment.
	require.ErrorIs(t, spec.SetCount(1), ErrCountTooSmall)
	require.ErrorIs(t, spec.SetCount(0), ErrCountTooSmall)
	require.ErrorIs(t, spec.SetCount(-3), ErrCountTooSmall)

	// So are volumes of 1 m3 or less.
	require.ErrorIs(t, spec.SetTargetVolume(1), ErrVolumeTooSmall)
	require.ErrorIs(t, spec.SetTargetVolume(0.5), ErrVolumeTooSmall)

	// And counts under the configured minimum.
	tight, err := NewSpec(24, 3, 0.9, 4, 36)
	require.NoError(t, err)
	require.ErrorIs(t, tight.SetCount(3), ErrCountBelowMinimum)
}

func TestDesignRequiresBasis(t *testing.T) {
	spec := newTestSpec(t)
	_, err := spec.Design(1.0)
	require.ErrorIs(t, err, ErrNoBasis)
}

// TestTargetVolumeCountFormula covers the reference case: 1 m3/hr, 24 hr
// reaction, 3 hr turnaround, 90% working volume, 50 m3 target. The raw
// count (1.6) floors at the minimum of two reactors.
func TestTargetVolumeCountFormula(t *testing.T) {
	spec := newTestSpec(t)
	require.NoError(t, spec.SetTargetVolume(50))

	res, err := spec.Design(1.0)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Count)
	assert.InDelta(t, 27, res.CycleTime, 1e-9)
	assert.InDelta(t, 27, res.LoadingTime, 1e-9) // cycle / (N-1)
	assert.InDelta(t, 51, res.BatchTime, 1e-9)   // tau + loading
	assert.InDelta(t, 30, res.DeadTime, 1e-9)    // tau0 + loading
	assert.InDelta(t, 0.5, res.Recirculation, 1e-9)
	assert.InDelta(t, 30, res.ReactorVolume, 1e-9) // v0*cycle/((N-1)*V_wf)
}

func TestCountCeiling(t *testing.T) {
	spec := newTestSpec(t)
	require.NoError(t, spec.SetTargetVolume(10))

	// raw = 3/10/0.9*27 + 1 = 10; exact integers do not round up.
	res, err := spec.Design(3.0)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Count)

	// Slightly more throughput pushes past the integer boundary.
	res, err = spec.Design(3.01)
	require.NoError(t, err)
	assert.Equal(t, 11, res.Count)
}

func TestInfeasibleAboveMaximum(t *testing.T) {
	spec := newTestSpec(t)
	require.NoError(t, spec.SetTargetVolume(2))

	_, err := spec.Design(10.0)
	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Equal(t, DefaultNMax, infeasible.Max)
	assert.Greater(t, infeasible.Required, DefaultNMax)
	assert.Contains(t, infeasible.Error(), "increase the target volume")
}

// TestVolumeFormulaInvertsCount checks the two modes agree: sizing at a
// fixed count yields the per-reactor volume that, used as a target,
// reproduces that count.
func TestVolumeFormulaInvertsCount(t *testing.T) {
	fixed := newTestSpec(t)
	require.NoError(t, fixed.SetCount(5))
	res, err := fixed.Design(4.0)
	require.NoError(t, err)

	byVolume := newTestSpec(t)
	require.NoError(t, byVolume.SetTargetVolume(res.ReactorVolume))
	res2, err := byVolume.Design(4.0)
	require.NoError(t, err)
	assert.Equal(t, 5, res2.Count)
}

func TestAutoSelect(t *testing.T) {
	spec := newTestSpec(t)

	// Synthetic unimodal cost with a minimum at six reactors.
	costOf := func(r Result) float64 {
		d := float64(r.Count - 6)
		return 1000 + d*d
	}
	res, err := spec.AutoSelect(2.0, costOf)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Count)

	// Monotonically increasing cost stays at the minimum count.
	res, err = spec.AutoSelect(2.0, func(r Result) float64 { return float64(r.Count) })
	require.NoError(t, err)
	assert.Equal(t, DefaultNMin, res.Count)

	// The search never exceeds the maximum even on a decreasing curve.
	res, err = spec.AutoSelect(2.0, func(r Result) float64 { return -float64(r.Count) })
	require.NoError(t, err)
	assert.Equal(t, DefaultNMax, res.Count)

	_, err = spec.AutoSelect(2.0, nil)
	require.Error(t, err)
}

func TestFixedCountDesign(t *testing.T) {
	spec := newTestSpec(t)
	require.NoError(t, spec.SetCount(3))

	res, err := spec.Design(1.0)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.InDelta(t, 27.0/2, res.LoadingTime, 1e-9)
	assert.InDelta(t, 1.0*27/(2*0.9), res.ReactorVolume, 1e-9)
	assert.InDelta(t, 1.0/3, res.Recirculation, 1e-9)
}

func TestInfeasibleErrorUnwrapsAsItself(t *testing.T) {
	err := error(&InfeasibleError{Required: 40, Max: 36})
	var infeasible *InfeasibleError
	assert.True(t, errors.As(err, &infeasible))
}
