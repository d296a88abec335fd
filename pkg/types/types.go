// Package types defines the shared domain model used across the tagsim
// simulation packages.
package types

// WarningReason classifies a non-fatal material-balance degradation.
type WarningReason string

const (
	// SpeciesNotModeled indicates a reaction referenced a species that is
	// absent from the active registry. The contribution of that species
	// is dropped from the balance.
	SpeciesNotModeled WarningReason = "species_not_modeled"

	// StageSkipped indicates an entire reaction stage was skipped because
	// its basis reactant is not modeled.
	StageSkipped WarningReason = "stage_skipped"
)

// Warning records a degradation that was absorbed instead of raised.
// Simulations never abort on these; they are surfaced so an incomplete
// mass balance cannot masquerade as a complete one.
type Warning struct {
	Unit    string        `json:"unit,omitempty"`
	Stage   string        `json:"stage,omitempty"`
	Species string        `json:"species,omitempty"`
	Reason  WarningReason `json:"reason"`
	Detail  string        `json:"detail,omitempty"`
}

// DesignResults maps a named design quantity to its value. Keys follow
// the equipment vendor convention ("Reactor volume", "Cycle time", ...).
type DesignResults map[string]float64

// Design result keys shared between sizing, costing, and reporting.
const (
	KeyReactorVolume = "Reactor volume"          // m3
	KeyNumReactors   = "Number of reactors"      // -
	KeyCycleTime     = "Cycle time"              // hr
	KeyBatchTime     = "Batch time"              // hr
	KeyLoadingTime   = "Loading time"            // hr
	KeyDeadTime      = "Total dead time"         // hr
	KeyReactorDuty   = "Reactor duty"            // kJ/hr
	KeyRecirculation = "Recirculation flow rate" // m3/hr
	KeyKLa           = "kLa"                     // 1/hr
	KeyNADRegenRate  = "NAD regeneration rate"   // 1/hr
	KeyPower         = "Power"                   // kW
	KeyFeedMassFlow  = "Feed mass flow"          // kg/hr
	KeyOxygenDemand  = "Oxygen demand"           // mol/hr
	KeyAirFlow       = "Air requirement"         // kg/hr
)
