// ============================================================================
// Feedstock Hydrolysis Train
// ============================================================================
//
// The low-cost feedstock route generates D-galactose on site instead of
// buying it: galactan-rich biomass is acid hydrolyzed, then the acidic
// hydrolysate is neutralized with caustic before entering the reactor
// train. Purchased-galactose flowsheets skip both units.
//
// ============================================================================

package unitops

import (
	"fmt"

	"github.com/jahyunlee00299/tagsim/internal/costing"
	"github.com/jahyunlee00299/tagsim/internal/stream"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
	"github.com/jahyunlee00299/tagsim/pkg/types"
)

// Hydrolysis defaults from the feedstock characterization.
const (
	DefaultGalactanContent  = 0.70 // mass fraction of hydrolyzable galactan
	DefaultHydrolysisYield  = 0.85 // galactose yield on galactan
	DefaultNeutralRecovery  = 0.92 // sugar recovery through neutralization
	DefaultNeutralWaterKeep = 0.98 // water retained through neutralization
)

// AcidHydrolysis converts the galactan fraction of a biomass feed into
// free galactose. The unhydrolyzed residue stays in the outlet as biomass;
// sulfuric acid passes through to be neutralized downstream.
type AcidHydrolysis struct {
	base
	feed        *stream.Stream
	hydrolysate *stream.Stream
	reg         *thermo.Registry

	galactan float64
	yield    float64
}

// NewAcidHydrolysis builds the hydrolysis step. Zero content/yield select
// the defaults.
func NewAcidHydrolysis(id string, reg *thermo.Registry, feed *stream.Stream, galactan, yield float64) (*AcidHydrolysis, error) {
	if feed == nil {
		return nil, fmt.Errorf("%w: %s feed", ErrMissingStream, id)
	}
	if galactan == 0 {
		galactan = DefaultGalactanContent
	}
	if yield == 0 {
		yield = DefaultHydrolysisYield
	}
	if !validFraction(galactan) {
		return nil, fmt.Errorf("%w: galactan content %g", ErrFraction, galactan)
	}
	if !validFraction(yield) {
		return nil, fmt.Errorf("%w: hydrolysis yield %g", ErrFraction, yield)
	}
	out := stream.New(id+"_hydrolysate", reg)
	return &AcidHydrolysis{
		base:        newBase(id, []*stream.Stream{feed}, []*stream.Stream{out}),
		feed:        feed,
		hydrolysate: out,
		reg:         reg,
		galactan:    galactan,
		yield:       yield,
	}, nil
}

// Hydrolysate returns the acidic sugar outlet.
func (u *AcidHydrolysis) Hydrolysate() *stream.Stream { return u.hydrolysate }

func (u *AcidHydrolysis) Setup() error {
	u.setup = true
	return nil
}

func (u *AcidHydrolysis) Run() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.resetPass()
	u.hydrolysate.CopyFrom(u.feed)

	biomassKg := u.hydrolysate.ComponentMassFlow(thermo.Biomass)
	if biomassKg == 0 {
		u.warn(types.Warning{
			Species: thermo.Biomass,
			Reason:  types.SpeciesNotModeled,
			Detail:  "no biomass in hydrolysis feed; pass-through",
		})
		return nil
	}
	hydrolyzedKg := biomassKg * u.galactan * u.yield
	if !u.hydrolysate.MassFlowFromKg(thermo.Galactose, hydrolyzedKg+u.hydrolysate.ComponentMassFlow(thermo.Galactose)) {
		u.warn(types.Warning{
			Species: thermo.Galactose,
			Reason:  types.SpeciesNotModeled,
			Detail:  "galactose not modeled; hydrolysis product dropped",
		})
		return nil
	}
	u.hydrolysate.MassFlowFromKg(thermo.Biomass, biomassKg-hydrolyzedKg)
	return nil
}

func (u *AcidHydrolysis) Design() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.design = types.DesignResults{
		types.KeyFeedMassFlow: u.feed.TotalMassFlow(),
	}
	return nil
}

func (u *AcidHydrolysis) Cost() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	breakdown, err := costing.Evaluate(costing.HydrolysisItems(), u.design, 1, 0)
	if err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.costs = breakdown
	return nil
}

// Neutralization quenches residual sulfuric acid with caustic:
// H2SO4 + 2 NaOH -> Na2SO4 + 2 H2O. Some sugar and water are lost with
// the precipitated salt purge.
type Neutralization struct {
	base
	feed      *stream.Stream
	neutral   *stream.Stream
	reg       *thermo.Registry
	recovery  float64
	waterKeep float64
}

// NewNeutralization builds the neutralization step. Zero fractions select
// the defaults.
func NewNeutralization(id string, reg *thermo.Registry, feed *stream.Stream, recovery, waterKeep float64) (*Neutralization, error) {
	if feed == nil {
		return nil, fmt.Errorf("%w: %s feed", ErrMissingStream, id)
	}
	if recovery == 0 {
		recovery = DefaultNeutralRecovery
	}
	if waterKeep == 0 {
		waterKeep = DefaultNeutralWaterKeep
	}
	if !validFraction(recovery) {
		return nil, fmt.Errorf("%w: recovery %g", ErrFraction, recovery)
	}
	if !validFraction(waterKeep) {
		return nil, fmt.Errorf("%w: water retention %g", ErrFraction, waterKeep)
	}
	out := stream.New(id+"_neutral", reg)
	return &Neutralization{
		base:      newBase(id, []*stream.Stream{feed}, []*stream.Stream{out}),
		feed:      feed,
		neutral:   out,
		reg:       reg,
		recovery:  recovery,
		waterKeep: waterKeep,
	}, nil
}

// Neutral returns the neutralized outlet.
func (u *Neutralization) Neutral() *stream.Stream { return u.neutral }

func (u *Neutralization) Setup() error {
	u.setup = true
	return nil
}

func (u *Neutralization) Run() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.resetPass()
	u.neutral.CopyFrom(u.feed)

	acid := u.neutral.ComponentFlow(thermo.H2SO4)
	if acid > 0 {
		u.neutral.SetComponentFlow(thermo.H2SO4, 0)
		u.neutral.AddComponentFlow(thermo.NaOH, -2*acid)
		u.neutral.AddComponentFlow(thermo.Na2SO4, acid)
		u.neutral.AddComponentFlow(thermo.Water, 2*acid)
	}
	for _, sp := range u.neutral.Components() {
		if u.reg.IsSugar(sp) {
			u.neutral.SetComponentFlow(sp, u.neutral.ComponentFlow(sp)*u.recovery)
		}
	}
	u.neutral.SetComponentFlow(thermo.Water, u.neutral.ComponentFlow(thermo.Water)*u.waterKeep)
	return nil
}

func (u *Neutralization) Design() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.design = types.DesignResults{
		types.KeyFeedMassFlow: u.feed.TotalMassFlow(),
	}
	return nil
}

func (u *Neutralization) Cost() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	breakdown, err := costing.Evaluate(costing.NeutralizationItems(), u.design, 1, 0)
	if err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.costs = breakdown
	return nil
}
