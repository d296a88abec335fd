package reaction

import "github.com/jahyunlee00299/tagsim/internal/thermo"

// Stage names of the whole-cell tagatose cascade.
const (
	StageAnaerobicReduction = "anaerobic-reduction"
	StageAerobicOxidation   = "aerobic-oxidation"
	StageCofactorRegen      = "cofactor-regeneration"
)

// TagatoseStages builds the three-stage whole-cell cascade:
//
//	Stage 1 (anaerobic): Galactose + Formate -> Galactitol + CO2
//	  (the NADP+ + Formate -> CO2 + NADPH shuttle is folded into the
//	   same conversion; formate carries both roles)
//	Stage 2 (aerobic):   Galactitol + NAD+ -> Tagatose + NADH
//	Stage 3 (regen):     NADH + 0.25 O2 -> NAD+ + 0.5 H2O
//
// At 100% conversion per stage the cascade collapses to the overall
// stoichiometry Galactose + Formate + 0.25 O2 -> Tagatose + CO2 + 0.5 H2O.
func TagatoseStages(conv1, conv2, conv3 float64) []Stage {
	return []Stage{
		{
			Name:        StageAnaerobicReduction,
			Basis:       Term{Species: thermo.Galactose, Coeff: 1},
			Coreactants: []Term{{Species: thermo.Formate, Coeff: 1}},
			Products: []Term{
				{Species: thermo.Galactitol, Coeff: 1},
				{Species: thermo.CO2, Coeff: 1},
			},
			Conversion: conv1,
		},
		{
			Name:        StageAerobicOxidation,
			Basis:       Term{Species: thermo.Galactitol, Coeff: 1},
			Coreactants: []Term{{Species: thermo.NAD, Coeff: 1}},
			Products: []Term{
				{Species: thermo.Tagatose, Coeff: 1},
				{Species: thermo.NADH, Coeff: 1},
			},
			Conversion: conv2,
		},
		{
			Name:        StageCofactorRegen,
			Basis:       Term{Species: thermo.NADH, Coeff: 1},
			Coreactants: []Term{{Species: thermo.O2, Coeff: 0.25}},
			Products: []Term{
				{Species: thermo.NAD, Coeff: 1},
				{Species: thermo.Water, Coeff: 0.5},
			},
			Conversion: conv3,
		},
	}
}

// TagatoseNetwork is a convenience constructor for the default cascade
// with a uniform conversion at every stage.
func TagatoseNetwork(reg *thermo.Registry, conversion float64) (*Network, error) {
	return NewNetwork(reg, TagatoseStages(conversion, conversion, conversion)...)
}
