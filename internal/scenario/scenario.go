// ============================================================================
// Scenario Presets - Pilot Campaign Definitions
// ============================================================================
//
// Package: internal/scenario
// Purpose: Name the validated operating points and translate them into
//          feed streams and reactor configurations
//
// Feed convention:
//   Presets are stated per batch (a volume and concentrations); flows are
//   the per-batch amounts divided by the cycle time (tau + tau0). This
//   keeps the sizing math consistent: a fixed two-reactor train at the
//   preset volume reproduces the preset batch.
//
// ============================================================================

package scenario

import (
	"fmt"

	"github.com/jahyunlee00299/tagsim/internal/oxygen"
	"github.com/jahyunlee00299/tagsim/internal/stream"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
	"github.com/jahyunlee00299/tagsim/internal/unitops"
)

// FormateExcess is the molar overfeed of the electron donor.
const FormateExcess = 0.05

// AerationMode selects the oxygen-supply strategy of a preset.
type AerationMode string

const (
	AerationForced          AerationMode = "forced"
	AerationTransferLimited AerationMode = "transfer-limited"
)

// Preset is one named operating point.
type Preset struct {
	Name        string
	Description string

	VolumeL        float64 // working batch volume
	AnaerobicHours float64
	AerobicHours   float64
	TurnaroundHrs  float64

	GalactoseGPerL float64
	CellsGPerL     float64
	NADmM          float64
	NADPmM         float64
	Conversion     float64

	Aeration AerationMode
	Tier     oxygen.Tier // transfer-limited only
}

// ReactionHours is the total in-reactor time.
func (p Preset) ReactionHours() float64 { return p.AnaerobicHours + p.AerobicHours }

// CycleHours is reaction plus turnaround.
func (p Preset) CycleHours() float64 { return p.ReactionHours() + p.TurnaroundHrs }

// Presets returns the named operating points, the validated pilot point
// first.
func Presets() []Preset {
	return []Preset{
		{
			Name:           "pilot-1000L",
			Description:    "validated pilot campaign, forced aeration",
			VolumeL:        1000,
			AnaerobicHours: 16,
			AerobicHours:   8,
			TurnaroundHrs:  3,
			GalactoseGPerL: 110,
			CellsGPerL:     20,
			NADmM:          1.0,
			NADPmM:         0.1,
			Conversion:     0.98,
			Aeration:       AerationForced,
		},
		{
			Name:           "shake-flask-500L",
			Description:    "scaled shake-flask conditions, passive transfer",
			VolumeL:        500,
			AnaerobicHours: 24,
			AerobicHours:   12,
			TurnaroundHrs:  3,
			GalactoseGPerL: 150,
			CellsGPerL:     50,
			NADmM:          3.0,
			NADPmM:         0.3,
			Conversion:     0.85,
			Aeration:       AerationTransferLimited,
			Tier:           oxygen.TierMedium,
		},
		{
			Name:           "early-150gL",
			Description:    "historical high-loading run before cofactor tuning",
			VolumeL:        1000,
			AnaerobicHours: 20,
			AerobicHours:   12,
			TurnaroundHrs:  3,
			GalactoseGPerL: 150,
			CellsGPerL:     30,
			NADmM:          1.0,
			NADPmM:         0.1,
			Conversion:     0.80,
			Aeration:       AerationTransferLimited,
			Tier:           oxygen.TierLow,
		},
	}
}

// Lookup finds a preset by name.
func Lookup(name string) (Preset, error) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("scenario: unknown preset %q", name)
}

// Policy builds the preset's oxygen policy.
func (p Preset) Policy() (oxygen.Policy, error) {
	switch p.Aeration {
	case AerationForced:
		return oxygen.ForcedAeration{}, nil
	case AerationTransferLimited:
		return oxygen.NewTransferLimitedTier(p.Tier)
	default:
		return nil, fmt.Errorf("scenario: preset %q has unknown aeration mode %q", p.Name, p.Aeration)
	}
}

// ReactorConfig builds the preset's reactor configuration for a fixed
// two-reactor pilot train.
func (p Preset) ReactorConfig() unitops.ReactorConfig {
	return unitops.ReactorConfig{
		Tau:   p.ReactionHours(),
		Tau0:  p.TurnaroundHrs,
		Count: 2,
	}
}

// Feed builds the preset's reactor feed stream. Amounts are per batch,
// converted to hourly flows over the cycle time.
func (p Preset) Feed(reg *thermo.Registry) (*stream.Stream, error) {
	hours := p.CycleHours()
	if hours <= 0 {
		return nil, fmt.Errorf("scenario: preset %q has no cycle time", p.Name)
	}
	feed := stream.New(p.Name+"_feed", reg)

	galKg := p.VolumeL * p.GalactoseGPerL / 1000 / hours
	if !feed.MassFlowFromKg(thermo.Galactose, galKg) {
		return nil, fmt.Errorf("scenario: galactose not modeled in registry")
	}
	galMol := feed.ComponentFlow(thermo.Galactose)
	feed.SetComponentFlow(thermo.Formate, galMol*(1+FormateExcess))

	// Broth water at 1 kg/L.
	feed.MassFlowFromKg(thermo.Water, p.VolumeL/hours)
	feed.MassFlowFromKg(thermo.Cells, p.VolumeL*p.CellsGPerL/1000/hours)
	feed.SetComponentFlow(thermo.NAD, p.NADmM/1000*p.VolumeL/hours)
	feed.SetComponentFlow(thermo.NADP, p.NADPmM/1000*p.VolumeL/hours)
	return feed, nil
}

// OxygenDemand returns the stoichiometric O2 requirement (mol/hr) of the
// preset: a quarter mole per mole of NADH turned over, which at full
// conversion equals a quarter of the galactose fed.
func (p Preset) OxygenDemand(feed *stream.Stream) float64 {
	return 0.25 * feed.ComponentFlow(thermo.Galactose) * p.Conversion
}
