package thermo

// Simplified solution properties for aqueous sugar streams. These are
// deliberately rough: the model optimizes material balance fidelity, not
// thermodynamic accuracy.

const (
	// densities in kg/m3
	waterDensity = 1000.0
	sugarDensity = 1600.0

	// WaterHeatCapacity is the constant heat capacity used for all
	// aqueous streams (kJ/kg/K).
	WaterHeatCapacity = 4.18

	// GasConstant is R in J/mol/K.
	GasConstant = 8.314
)

// SugarSolutionDensity estimates the density (kg/m3) of an aqueous sugar
// solution by linear interpolation between water and solid sugar.
func SugarSolutionDensity(sugarMassFraction float64) float64 {
	if sugarMassFraction < 0 {
		sugarMassFraction = 0
	}
	if sugarMassFraction > 1 {
		sugarMassFraction = 1
	}
	return waterDensity + (sugarDensity-waterDensity)*sugarMassFraction
}
