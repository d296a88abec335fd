// ============================================================================
// Species Registry - Simplified Property Source
// ============================================================================
//
// Package: internal/thermo
// Purpose: Chemical species registry with simplified physical properties
//
// Property philosophy:
//   Aqueous sugar solutions with water-like behavior. Material balance is
//   the primary concern; energy balance is simplified (no phase equilibria).
//   - Molecular weights: standard NIST values
//   - Liquid density: linear sugar-fraction interpolation
//   - Heat capacity: constant 4.18 kJ/kg/K (water-like)
//
// The registry is injected into every stream and unit operation. There is
// no process-wide default; a unit only ever sees the registry it was
// constructed with.
//
// ============================================================================

package thermo

import (
	"errors"
	"fmt"
	"sort"
)

// Predefined errors
var (
	// ErrDuplicateSpecies indicates the same species was registered twice
	ErrDuplicateSpecies = errors.New("thermo: duplicate species")

	// ErrInvalidSpecies indicates a species definition with a missing name
	// or non-positive molecular weight
	ErrInvalidSpecies = errors.New("thermo: invalid species definition")
)

// Species is one chemical component with the minimal property set the
// material balance needs.
type Species struct {
	Name  string  // canonical component name, e.g. "Galactose"
	MW    float64 // molecular weight (g/mol)
	Gas   bool    // leaves the reactor through the vent
	Sugar bool    // contributes to sugar-solution density correction
}

// Registry is an immutable set of modeled species. Lookups for species
// outside the set succeed with ok=false; callers branch on Has rather
// than recovering from an error.
type Registry struct {
	byName map[string]Species
}

// NewRegistry builds a registry from explicit species definitions.
func NewRegistry(species ...Species) (*Registry, error) {
	byName := make(map[string]Species, len(species))
	for _, sp := range species {
		if sp.Name == "" || sp.MW <= 0 {
			return nil, fmt.Errorf("%w: name=%q MW=%g", ErrInvalidSpecies, sp.Name, sp.MW)
		}
		if _, exists := byName[sp.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSpecies, sp.Name)
		}
		byName[sp.Name] = sp
	}
	return &Registry{byName: byName}, nil
}

// Has reports whether the species is modeled.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// MW returns the molecular weight (g/mol) of a species. ok is false for
// species outside the registry; the returned weight is then zero.
func (r *Registry) MW(name string) (float64, bool) {
	sp, ok := r.byName[name]
	return sp.MW, ok
}

// IsGas reports whether the species partitions to the vent.
func (r *Registry) IsGas(name string) bool {
	return r.byName[name].Gas
}

// IsSugar reports whether the species counts toward the sugar mass
// fraction used in density estimation.
func (r *Registry) IsSugar(name string) bool {
	return r.byName[name].Sugar
}

// Names returns the modeled species names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of modeled species.
func (r *Registry) Len() int { return len(r.byName) }
