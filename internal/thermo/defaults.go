package thermo

// Canonical species names used throughout the tagatose process model.
const (
	Water         = "Water"
	Galactose     = "Galactose"
	Tagatose      = "Tagatose"
	Galactitol    = "Galactitol"
	Glucose       = "Glucose"
	Formate       = "Formate"
	SodiumFormate = "SodiumFormate"
	CO2           = "CO2"
	O2            = "O2"
	N2            = "N2"
	NAD           = "NAD"
	NADH          = "NADH"
	NADP          = "NADP"
	NADPH         = "NADPH"
	H2SO4         = "H2SO4"
	NaOH          = "NaOH"
	Na2SO4        = "Na2SO4"
	LevulinicAcid = "LevulinicAcid"
	FormicAcid    = "FormicAcid"
	Biomass       = "Biomass" // red algae feedstock, dry basis
	Cells         = "Cells"   // whole-cell biocatalyst, dry cell weight
)

// defaultSpecies lists every component the tagatose process tracks,
// with standard NIST/PubChem molecular weights. Cells and Biomass use
// lumped placeholder weights; they only move through splits, never
// through molar stoichiometry.
var defaultSpecies = []Species{
	{Name: Water, MW: 18.015},
	{Name: Galactose, MW: 180.156, Sugar: true},
	{Name: Tagatose, MW: 180.156, Sugar: true},
	{Name: Galactitol, MW: 182.172, Sugar: true},
	{Name: Glucose, MW: 180.156, Sugar: true},
	{Name: Formate, MW: 45.017},
	{Name: SodiumFormate, MW: 68.007},
	{Name: CO2, MW: 44.009, Gas: true},
	{Name: O2, MW: 31.998, Gas: true},
	{Name: N2, MW: 28.014, Gas: true},
	{Name: NAD, MW: 663.43},
	{Name: NADH, MW: 665.44},
	{Name: NADP, MW: 743.41},
	{Name: NADPH, MW: 745.42},
	{Name: H2SO4, MW: 98.079},
	{Name: NaOH, MW: 39.997},
	{Name: Na2SO4, MW: 142.04},
	{Name: LevulinicAcid, MW: 116.116},
	{Name: FormicAcid, MW: 46.026},
	{Name: Biomass, MW: 1000},
	{Name: Cells, MW: 1000},
}

// Default returns the full tagatose-process registry.
func Default() *Registry {
	reg, err := NewRegistry(defaultSpecies...)
	if err != nil {
		// defaultSpecies is a compile-time table; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return reg
}

// Minimal returns the reduced registry used when the full species set is
// unavailable: water, glucose and the two neutralization chemicals. It
// exists so the degradation paths (species-not-modeled warnings) stay
// reachable in tests and in partially configured deployments.
func Minimal() *Registry {
	reg, err := NewRegistry(
		Species{Name: Water, MW: 18.015},
		Species{Name: Glucose, MW: 180.156, Sugar: true},
		Species{Name: H2SO4, MW: 98.079},
		Species{Name: NaOH, MW: 39.997},
	)
	if err != nil {
		panic(err)
	}
	return reg
}
