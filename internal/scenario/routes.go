// ============================================================================
// Process Routes
// ============================================================================
//
// Route A buys food-grade D-galactose and feeds it straight to the
// bioconversion train. Route B starts from galactan-rich biomass and makes
// its own galactose by acid hydrolysis, paying for two extra units and a
// salt load instead of the sugar premium. Both routes share the reactor
// and purification train.
//
// ============================================================================

package scenario

import (
	"fmt"

	"github.com/jahyunlee00299/tagsim/internal/flowsheet"
	"github.com/jahyunlee00299/tagsim/internal/reaction"
	"github.com/jahyunlee00299/tagsim/internal/stream"
	"github.com/jahyunlee00299/tagsim/internal/tea"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
	"github.com/jahyunlee00299/tagsim/internal/unitops"
)

// Route B feedstock assumptions.
const (
	biomassGalactanContent = unitops.DefaultGalactanContent
	biomassHydrolysisYield = unitops.DefaultHydrolysisYield

	// AcidLoadMolPerKgBiomass is the sulfuric acid charge of the
	// hydrolysis step.
	AcidLoadMolPerKgBiomass = 0.5

	// DefaultCrewHours is the crewed labor per operating hour for the
	// pilot-scale train.
	DefaultCrewHours = 2.0
)

// Campaign is one assembled, ready-to-simulate route.
type Campaign struct {
	Preset Preset
	System *flowsheet.System

	Feed    *stream.Stream
	Reactor *unitops.BatchBioreactor
	Dryer   *unitops.Dryer

	routeB    bool
	biomassKg float64 // kg/hr purchased biomass, route B only
}

// BuildRouteA assembles the purchased-galactose flowsheet for a preset.
func BuildRouteA(p Preset, reg *thermo.Registry) (*Campaign, error) {
	feed, err := p.Feed(reg)
	if err != nil {
		return nil, err
	}
	return assemble(p, reg, feed, nil, 0)
}

// BuildRouteB assembles the biomass-hydrolysis flowsheet: the preset's
// galactose comes from hydrolyzed biomass instead of the feed.
func BuildRouteB(p Preset, reg *thermo.Registry) (*Campaign, error) {
	feed, err := p.Feed(reg)
	if err != nil {
		return nil, err
	}

	// Replace the purchased sugar with its biomass equivalent plus the
	// acid charge; hydrolysis regenerates the galactose in-line.
	galKg := feed.ComponentMassFlow(thermo.Galactose)
	biomassKg := galKg / (biomassGalactanContent * biomassHydrolysisYield)
	raw := stream.New(p.Name+"_biomass_feed", reg)
	raw.CopyFrom(feed)
	raw.SetComponentFlow(thermo.Galactose, 0)
	raw.MassFlowFromKg(thermo.Biomass, biomassKg)
	raw.SetComponentFlow(thermo.H2SO4, biomassKg*AcidLoadMolPerKgBiomass)
	raw.SetComponentFlow(thermo.NaOH, 2*biomassKg*AcidLoadMolPerKgBiomass)

	hydrolysis, err := unitops.NewAcidHydrolysis("hydrolysis", reg, raw, 0, 0)
	if err != nil {
		return nil, err
	}
	neutralization, err := unitops.NewNeutralization("neutralization", reg, hydrolysis.Hydrolysate(), 0, 0)
	if err != nil {
		return nil, err
	}

	c, err := assemble(p, reg, neutralization.Neutral(),
		[]unitops.Operation{hydrolysis, neutralization}, biomassKg)
	if err != nil {
		return nil, err
	}
	c.Feed = raw
	return c, nil
}

// assemble wires the shared reactor and purification train behind an
// arbitrary head section.
func assemble(p Preset, reg *thermo.Registry, reactorFeed *stream.Stream,
	head []unitops.Operation, biomassKg float64) (*Campaign, error) {

	policy, err := p.Policy()
	if err != nil {
		return nil, err
	}
	network, err := reaction.TagatoseNetwork(reg, p.Conversion)
	if err != nil {
		return nil, err
	}

	units := append([]unitops.Operation{}, head...)

	// Forced aeration gets a compressor sized off the stoichiometric
	// demand; passive transfer aspirates through the headspace instead.
	var air *stream.Stream
	if p.Aeration == AerationForced {
		demand := stream.New(p.Name+"_o2_demand", reg)
		demand.SetComponentFlow(thermo.O2, p.OxygenDemand(reactorFeed))
		compressor, err := unitops.NewOxygenCompressor("compressor", reg, demand, 0, 0)
		if err != nil {
			return nil, err
		}
		air = compressor.Air()
		units = append(units, compressor)
	}

	reactor, err := unitops.NewBatchBioreactor("bioreactor", p.ReactorConfig(), network, policy, reg, reactorFeed, air)
	if err != nil {
		return nil, err
	}
	separator, err := unitops.NewCellSeparator("cell_separator", reg, reactor.Effluent(), nil)
	if err != nil {
		return nil, err
	}
	decolor, err := unitops.NewDecolorization("decolorization", reg, separator.Clarified())
	if err != nil {
		return nil, err
	}
	desalt, err := unitops.NewDesalting("desalting", reg, decolor.Product())
	if err != nil {
		return nil, err
	}
	polish, err := unitops.NewAnionExchange("anion_exchange", reg, desalt.Product())
	if err != nil {
		return nil, err
	}
	dryer, err := unitops.NewDryer("dryer", reg, polish.Product(), 0, 0)
	if err != nil {
		return nil, err
	}
	units = append(units, reactor, separator, decolor, desalt, polish, dryer)

	name := p.Name + "_route_a"
	if len(head) > 0 {
		name = p.Name + "_route_b"
	}
	system, err := flowsheet.NewSystem(name, units...)
	if err != nil {
		return nil, err
	}

	return &Campaign{
		Preset:    p,
		System:    system,
		Feed:      reactorFeed,
		Reactor:   reactor,
		Dryer:     dryer,
		routeB:    len(head) > 0,
		biomassKg: biomassKg,
	}, nil
}

// TEAInputs extracts the economic inputs from a simulated campaign. Call
// after System.Simulate; it reads the post-pass stream state.
func (c *Campaign) TEAInputs(res flowsheet.Results) tea.Inputs {
	in := tea.Inputs{
		InstalledCost: res.TotalInstalled,
		PowerKW:       res.TotalPowerKW,
		WaterLPerHr:   c.Feed.ComponentMassFlow(thermo.Water), // 1 kg ~ 1 L
		FormateKg:     c.Feed.ComponentMassFlow(thermo.Formate),
		LaborHours:    DefaultCrewHours,
		ProductKg:     c.Dryer.ProductMassFlow(),
	}
	if c.routeB {
		in.BiomassKg = c.biomassKg
	} else {
		in.GalactoseKg = c.Feed.ComponentMassFlow(thermo.Galactose)
	}
	return in
}

// Describe renders a one-line summary for logs.
func (c *Campaign) Describe() string {
	route := "A (purchased galactose)"
	if c.routeB {
		route = "B (biomass hydrolysis)"
	}
	return fmt.Sprintf("%s route %s, %s", c.Preset.Name, route, c.Reactor.AerationPolicy().Describe())
}
