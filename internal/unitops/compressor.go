package unitops

import (
	"fmt"
	"math"

	"github.com/jahyunlee00299/tagsim/internal/costing"
	"github.com/jahyunlee00299/tagsim/internal/stream"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
	"github.com/jahyunlee00299/tagsim/pkg/types"
)

// Compressor defaults.
const (
	DefaultCompressorEff  = 0.72    // isentropic-to-shaft efficiency
	DefaultDischargeRatio = 3.0     // discharge over suction pressure
	OxygenFractionInAir   = 0.20946 // mol fraction
)

// OxygenCompressor supplies compressed air to a forced-aeration reactor.
// It reads the oxygen demand from a reference stream (the reactor feed's
// O2 component) and produces the matching air stream; power follows the
// isothermal compression model, which is adequate for intercooled
// multistage machines.
type OxygenCompressor struct {
	base
	demand *stream.Stream // stream whose O2 flow sets the demand
	air    *stream.Stream
	reg    *thermo.Registry

	ratio float64
	eff   float64
}

// NewOxygenCompressor builds a compressor driven by the O2 flow of the
// demand stream. Zero ratio/efficiency select the defaults.
func NewOxygenCompressor(id string, reg *thermo.Registry, demand *stream.Stream, ratio, eff float64) (*OxygenCompressor, error) {
	if demand == nil {
		return nil, fmt.Errorf("%w: %s demand", ErrMissingStream, id)
	}
	if ratio == 0 {
		ratio = DefaultDischargeRatio
	}
	if eff == 0 {
		eff = DefaultCompressorEff
	}
	if ratio <= 1 {
		return nil, fmt.Errorf("unitops: %s pressure ratio must exceed 1, got %g", id, ratio)
	}
	if eff <= 0 || eff > 1 {
		return nil, fmt.Errorf("%w: efficiency %g", ErrFraction, eff)
	}
	air := stream.New(id+"_air", reg)
	air.SetPhase(stream.Gas)
	return &OxygenCompressor{
		base:   newBase(id, []*stream.Stream{demand}, []*stream.Stream{air}),
		demand: demand,
		air:    air,
		reg:    reg,
		ratio:  ratio,
		eff:    eff,
	}, nil
}

// Air returns the compressed-air outlet.
func (u *OxygenCompressor) Air() *stream.Stream { return u.air }

func (u *OxygenCompressor) Setup() error {
	u.setup = true
	return nil
}

// Run sizes the air flow so its O2 content matches the demand stream's O2
// component. Nitrogen comes along in atmospheric proportion.
func (u *OxygenCompressor) Run() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.resetPass()
	o2 := u.demand.ComponentFlow(thermo.O2)
	if o2 < 0 {
		o2 = 0
	}
	u.air.Empty()
	u.air.SetPhase(stream.Gas)
	u.air.SetTemperature(u.demand.Temperature())
	u.air.SetPressure(u.demand.Pressure() * u.ratio)
	u.air.SetComponentFlow(thermo.O2, o2)
	u.air.SetComponentFlow(thermo.N2, o2*(1-OxygenFractionInAir)/OxygenFractionInAir)
	return nil
}

// Design computes the isothermal shaft power:
// W = n R T ln(ratio) / eff, reported in kW.
func (u *OxygenCompressor) Design() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	molPerSec := u.air.TotalMolarFlow() / 3600
	powerKW := molPerSec * thermo.GasConstant * u.air.Temperature() * math.Log(u.ratio) / u.eff / 1000
	u.design = types.DesignResults{
		types.KeyOxygenDemand: u.air.ComponentFlow(thermo.O2),
		types.KeyAirFlow:      u.air.TotalMassFlow(),
		types.KeyPower:        powerKW,
	}
	return nil
}

func (u *OxygenCompressor) Cost() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	breakdown, err := costing.Evaluate(costing.CompressorItems(), u.design, 1, 0)
	if err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.costs = breakdown
	return nil
}
