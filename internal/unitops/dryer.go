package unitops

import (
	"fmt"

	"github.com/jahyunlee00299/tagsim/internal/costing"
	"github.com/jahyunlee00299/tagsim/internal/stream"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
	"github.com/jahyunlee00299/tagsim/pkg/types"
)

// Dryer defaults from the pilot crystallization/drying step.
const (
	DefaultDryerRecovery = 0.95
	DefaultDryerMoisture = 0.03 // product moisture, mass fraction
)

// Dryer produces the crystalline product: sugars leave in the solid
// product at the recovery fraction, with residual moisture set by the
// target spec; everything else, sugar losses included, goes out with the
// exhaust vapor.
type Dryer struct {
	base
	feed    *stream.Stream
	product *stream.Stream
	exhaust *stream.Stream
	reg     *thermo.Registry

	recovery float64
	moisture float64
}

// NewDryer builds a dryer. Zero recovery/moisture select the defaults.
func NewDryer(id string, reg *thermo.Registry, feed *stream.Stream, recovery, moisture float64) (*Dryer, error) {
	if feed == nil {
		return nil, fmt.Errorf("%w: %s feed", ErrMissingStream, id)
	}
	if recovery == 0 {
		recovery = DefaultDryerRecovery
	}
	if moisture == 0 {
		moisture = DefaultDryerMoisture
	}
	if !validFraction(recovery) {
		return nil, fmt.Errorf("%w: recovery %g", ErrFraction, recovery)
	}
	if moisture < 0 || moisture >= 1 {
		return nil, fmt.Errorf("%w: moisture %g", ErrFraction, moisture)
	}
	product := stream.New(id+"_product", reg)
	exhaust := stream.New(id+"_exhaust", reg)
	return &Dryer{
		base:     newBase(id, []*stream.Stream{feed}, []*stream.Stream{product, exhaust}),
		feed:     feed,
		product:  product,
		exhaust:  exhaust,
		reg:      reg,
		recovery: recovery,
		moisture: moisture,
	}, nil
}

// Product returns the dried solid outlet.
func (u *Dryer) Product() *stream.Stream { return u.product }

// Exhaust returns the vapor outlet.
func (u *Dryer) Exhaust() *stream.Stream { return u.exhaust }

// ProductMassFlow returns the dried product rate (kg/hr) after the most
// recent Run, moisture included.
func (u *Dryer) ProductMassFlow() float64 { return u.product.TotalMassFlow() }

func (u *Dryer) Setup() error {
	u.setup = true
	return nil
}

func (u *Dryer) Run() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.resetPass()
	u.product.Empty()
	u.product.SetPhase(stream.Solid)
	u.product.SetTemperature(u.feed.Temperature())
	u.product.SetPressure(u.feed.Pressure())
	u.exhaust.CopyFrom(u.feed)
	u.exhaust.SetPhase(stream.Gas)

	var solidsMass float64
	for _, sp := range u.feed.Components() {
		if !u.reg.IsSugar(sp) {
			continue
		}
		kept := u.feed.ComponentFlow(sp) * u.recovery
		u.product.SetComponentFlow(sp, kept)
		u.exhaust.AddComponentFlow(sp, -kept)
		solidsMass += u.product.ComponentMassFlow(sp)
	}

	// Residual moisture: water mass = solids * x/(1-x) for target
	// moisture fraction x of the total product mass.
	waterMass := solidsMass * u.moisture / (1 - u.moisture)
	available := u.exhaust.ComponentMassFlow(thermo.Water)
	if waterMass > available {
		waterMass = available
	}
	if waterMass > 0 {
		u.product.MassFlowFromKg(thermo.Water, waterMass)
		u.exhaust.AddComponentFlow(thermo.Water, -u.product.ComponentFlow(thermo.Water))
	}
	return nil
}

func (u *Dryer) Design() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.design = types.DesignResults{
		types.KeyFeedMassFlow: u.feed.TotalMassFlow(),
	}
	return nil
}

func (u *Dryer) Cost() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	breakdown, err := costing.Evaluate(costing.DryerItems(), u.design, 1, 0)
	if err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.costs = breakdown
	return nil
}
