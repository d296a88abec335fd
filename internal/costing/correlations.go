package costing

import "github.com/jahyunlee00299/tagsim/pkg/types"

// NREL batch-bioreactor cost correlations (Humbird et al., NREL/TP-5100-
// 47764), as used for the whole-cell train. Sizes are per reactor except
// the clean-in-place skid, which serves the whole train.
func BioreactorItems() []Item {
	return []Item{
		{
			Name:       "Reactors",
			SizeDriver: types.KeyReactorVolume,
			BaseCost:   844000, RefSize: 3785, Exponent: 0.5,
			BareModule: 1.5, BaseCE: 521.9,
			PerReactor: true,
		},
		{
			Name:       "Agitators",
			SizeDriver: types.KeyReactorVolume,
			BaseCost:   52500, RefSize: 3785, Exponent: 0.5,
			BareModule: 1.5, BaseCE: 521.9, RefPowerKW: 22.371,
			PerReactor: true,
		},
		{
			Name:       "Cleaning in place",
			SizeDriver: types.KeyReactorVolume,
			BaseCost:   421000, RefSize: 3785, Exponent: 0.6,
			BareModule: 1.8, BaseCE: 521.9,
		},
		{
			Name:       "Heat exchangers",
			SizeDriver: types.KeyReactorDuty,
			BaseCost:   23900, RefSize: 20920000, Exponent: 0.7,
			BareModule: 2.2, BaseCE: 522,
			PerReactor: true, Magnitude: true,
		},
		{
			Name:       "Recirculation pumps",
			SizeDriver: types.KeyRecirculation,
			BaseCost:   47200, RefSize: 77.22216, Exponent: 0.8,
			BareModule: 2.3, BaseCE: 522, RefPowerKW: 30,
			PerReactor: true,
		},
	}
}

// CentrifugeItems covers the disc-stack cell separator, scaled on feed
// throughput.
func CentrifugeItems() []Item {
	return []Item{
		{
			Name:       "Disc-stack centrifuge",
			SizeDriver: types.KeyFeedMassFlow,
			BaseCost:   195000, RefSize: 20000, Exponent: 0.6,
			BareModule: 2.0, BaseCE: 521.9, RefPowerKW: 45,
		},
	}
}

// CarbonColumnItems covers the activated-carbon decolorization column.
func CarbonColumnItems() []Item {
	return []Item{
		{
			Name:       "Activated carbon column",
			SizeDriver: types.KeyFeedMassFlow,
			BaseCost:   98000, RefSize: 15000, Exponent: 0.6,
			BareModule: 1.8, BaseCE: 521.9,
		},
	}
}

// IonExchangeItems covers the mixed-bed desalting and anion-exchange
// polishing columns. Both use the same vessel correlation.
func IonExchangeItems() []Item {
	return []Item{
		{
			Name:       "Ion exchange column",
			SizeDriver: types.KeyFeedMassFlow,
			BaseCost:   125000, RefSize: 15000, Exponent: 0.6,
			BareModule: 1.8, BaseCE: 521.9, RefPowerKW: 5,
		},
	}
}

// DryerItems covers the spray dryer, scaled on evaporative load via the
// feed mass flow.
func DryerItems() []Item {
	return []Item{
		{
			Name:       "Spray dryer",
			SizeDriver: types.KeyFeedMassFlow,
			BaseCost:   555000, RefSize: 10000, Exponent: 0.6,
			BareModule: 2.06, BaseCE: 521.9, RefPowerKW: 120,
		},
	}
}

// HydrolysisItems covers the acid hydrolysis reactor and its downstream
// neutralization tank.
func HydrolysisItems() []Item {
	return []Item{
		{
			Name:       "Hydrolysis reactor",
			SizeDriver: types.KeyFeedMassFlow,
			BaseCost:   310000, RefSize: 25000, Exponent: 0.6,
			BareModule: 2.0, BaseCE: 521.9, RefPowerKW: 35,
		},
	}
}

// NeutralizationItems covers the agitated neutralization tank.
func NeutralizationItems() []Item {
	return []Item{
		{
			Name:       "Neutralization tank",
			SizeDriver: types.KeyFeedMassFlow,
			BaseCost:   86000, RefSize: 25000, Exponent: 0.6,
			BareModule: 1.7, BaseCE: 521.9, RefPowerKW: 10,
		},
	}
}

// CompressorItems covers the aeration air compressor, scaled on shaft
// power.
func CompressorItems() []Item {
	return []Item{
		{
			Name:       "Air compressor",
			SizeDriver: types.KeyPower,
			BaseCost:   240000, RefSize: 250, Exponent: 0.7,
			BareModule: 2.15, BaseCE: 521.9, RefPowerKW: 250,
		},
	}
}
