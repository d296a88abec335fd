package tea

// ============================================================================
// Techno-Economic Analysis Tests
// Responsibilities: capital and operating cost arithmetic, the revenue
// blend, NPV/IRR/payback, and the sentinel conventions
// ============================================================================

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInputs() Inputs {
	return Inputs{
		InstalledCost: 2_000_000,
		PowerKW:       150,
		WaterLPerHr:   1000,
		GalactoseKg:   100,
		FormateKg:     20,
		LaborHours:    2,
		ProductKg:     80,
	}
}

func TestParameterValidation(t *testing.T) {
	p := DefaultParameters()
	p.ProjectYears = 0
	_, err := Analyze(p, testInputs())
	require.ErrorIs(t, err, ErrInvalidParameters)

	p = DefaultParameters()
	p.OperatingHours = 0
	_, err = Analyze(p, testInputs())
	require.ErrorIs(t, err, ErrInvalidParameters)

	p = DefaultParameters()
	p.DiscountRate = decimal.Zero
	_, err = Analyze(p, testInputs())
	require.ErrorIs(t, err, ErrInvalidParameters)
}

func TestCapitalStructure(t *testing.T) {
	a, err := Analyze(DefaultParameters(), testInputs())
	require.NoError(t, err)

	// fixed = installed * 1.40; working = fixed * 0.15
	assert.InDelta(t, 2_800_000, mustFloat(a.FixedCapital), 1e-6)
	assert.InDelta(t, 420_000, mustFloat(a.WorkingCapital), 1e-6)
	assert.True(t, a.TotalCapital.Equal(a.FixedCapital.Add(a.WorkingCapital)))
}

func TestOperatingCosts(t *testing.T) {
	p := DefaultParameters()
	a, err := Analyze(p, testInputs())
	require.NoError(t, err)

	// utilities = (150 kW * 0.12 + 1000 L * 0.002) * 7500 hr
	assert.InDelta(t, (150*0.12+1000*0.002)*7500, mustFloat(a.Utilities), 1e-6)

	// raw material = (100 kg * 2.0 + 20 kg * 0.3) * 7500 hr
	assert.InDelta(t, (100*2.0+20*0.3)*7500, mustFloat(a.RawMaterial), 1e-6)

	// labor = 2 crew-hours * 50 USD/hr * 7500 hr
	assert.InDelta(t, 750_000, mustFloat(a.Labor), 1e-6)

	// maintenance 4% and misc 2% of fixed capital
	assert.InDelta(t, 112_000, mustFloat(a.Maintenance), 1e-6)
	assert.InDelta(t, 56_000, mustFloat(a.Misc), 1e-6)

	sum := a.Utilities.Add(a.RawMaterial).Add(a.Labor).Add(a.Maintenance).Add(a.Misc)
	assert.True(t, a.TotalOpex.Equal(sum))
}

func TestRevenueBlend(t *testing.T) {
	// Half crystal at 1.20x, half syrup at 0.95x: effective 1.075x.
	got := effectivePrice(decimal.NewFromFloat(5.0))
	assert.InDelta(t, 5.375, mustFloat(got), 1e-9)
}

func TestProfitabilityOfViablePlant(t *testing.T) {
	p := DefaultParameters()
	p.TagatosePrice = decimal.NewFromFloat(8.0)
	a, err := Analyze(p, testInputs())
	require.NoError(t, err)

	require.True(t, a.Profit.GreaterThan(decimal.Zero), a.Profit.String())
	assert.True(t, a.NPV.GreaterThan(decimal.Zero))
	assert.Greater(t, a.IRR, 0.0)
	assert.False(t, math.IsInf(a.PaybackYears, 1))
	assert.InDelta(t, mustFloat(a.TotalCapital)/mustFloat(a.Profit), a.PaybackYears, 1e-9)

	// At the IRR the NPV of the same flows is (numerically) zero.
	c := mustFloat(a.TotalCapital)
	profit := mustFloat(a.Profit)
	npvAtIRR := -c
	for y := 1; y <= p.ProjectYears; y++ {
		npvAtIRR += profit / math.Pow(1+a.IRR, float64(y))
	}
	assert.InDelta(t, 0, npvAtIRR/c, 1e-6)
}

func TestUnprofitableSentinels(t *testing.T) {
	p := DefaultParameters()
	p.TagatosePrice = decimal.NewFromFloat(0.10)
	a, err := Analyze(p, testInputs())
	require.NoError(t, err)

	// Sentinels, not errors: the sweep crosses this region.
	require.True(t, a.Profit.LessThan(decimal.Zero))
	assert.True(t, math.IsInf(a.PaybackYears, 1))
	assert.Zero(t, a.IRR)
	assert.True(t, a.NPV.LessThan(decimal.Zero))
}

func TestNPVDiscounting(t *testing.T) {
	// Hand-checkable case: 1000 upfront, 200/yr for 2 years at 10%.
	capital := decimal.NewFromInt(1000)
	profit := decimal.NewFromInt(200)
	rate := decimal.NewFromFloat(0.10)

	got := npv(capital, profit, rate, 2)
	want := -1000 + 200/1.1 + 200/1.21
	f, _ := got.Float64()
	assert.InDelta(t, want, f, 1e-9)
}

func TestRouteBUsesBiomassPricing(t *testing.T) {
	p := DefaultParameters()
	in := testInputs()
	in.GalactoseKg = 0
	in.BiomassKg = 168 // biomass equivalent of the purchased sugar

	a, err := Analyze(p, in)
	require.NoError(t, err)

	assert.InDelta(t, (168*0.35+20*0.3)*7500, mustFloat(a.RawMaterial), 1e-6)
}

func mustFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
