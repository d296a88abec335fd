// ============================================================================
// Cost Correlation Framework - Power-Law Equipment Costing
// ============================================================================
//
// Package: internal/costing
// Purpose: Evaluate purchase and installed equipment costs from power-law
//          scaling correlations
//
// Correlation form (per item):
//   purchase  = base * (size/refSize)^exponent * (CE/baseCE) [* N]
//   installed = purchase * bareModuleFactor
//   power     = refPowerKW * (size/refSize) [* N]
//
// Size drivers are named design quantities ("Reactor volume", ...). Items
// are immutable once registered; every costing pass evaluates them fresh
// against the current design results. A missing size driver is a
// configuration error and aborts the pass.
//
// ============================================================================

package costing

import (
	"errors"
	"fmt"
	"math"
)

// Predefined errors
var (
	// ErrMissingDriver indicates a size driver absent from design results
	ErrMissingDriver = errors.New("costing: size driver missing from design results")

	// ErrInvalidItem indicates an item with non-positive base cost,
	// reference size, or bare-module factor
	ErrInvalidItem = errors.New("costing: invalid cost item definition")
)

// DefaultCE is the Chemical Engineering Plant Cost Index the model
// escalates to when no index is supplied.
const DefaultCE = 567.5

// Item is one power-law cost correlation, immutable per equipment
// definition.
type Item struct {
	Name       string  // equipment name, e.g. "Agitators"
	SizeDriver string  // design-result key the correlation scales on
	BaseCost   float64 // purchase cost at the reference size (USD)
	RefSize    float64 // reference size in the driver's units
	Exponent   float64 // power-law scale exponent
	BareModule float64 // installed-cost multiplier
	BaseCE     float64 // CE index the base cost was quoted at
	RefPowerKW float64 // electric load at the reference size (kW)
	PerReactor bool    // multiply by reactor count
	Magnitude  bool    // scale on |size| (e.g. heat duty sign-agnostic)
}

// Validate checks the correlation definition.
func (it Item) Validate() error {
	if it.Name == "" || it.SizeDriver == "" {
		return fmt.Errorf("%w: %q needs a name and size driver", ErrInvalidItem, it.Name)
	}
	if it.BaseCost <= 0 || it.RefSize <= 0 || it.BareModule <= 0 || it.BaseCE <= 0 {
		return fmt.Errorf("%w: %q has non-positive base cost, reference size, bare-module factor or CE index",
			ErrInvalidItem, it.Name)
	}
	return nil
}

// Breakdown is the evaluated cost of one item.
type Breakdown struct {
	Name      string
	Purchase  float64 // USD
	Installed float64 // USD (purchase * bare module)
	PowerKW   float64 // electric load
}

// Evaluate computes the breakdown of every item against the current
// design results. n is the reactor count applied to PerReactor items;
// ce is the target CE index (DefaultCE when <= 0).
func Evaluate(items []Item, design map[string]float64, n int, ce float64) ([]Breakdown, error) {
	if ce <= 0 {
		ce = DefaultCE
	}
	if n < 1 {
		n = 1
	}
	out := make([]Breakdown, 0, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
		size, ok := design[it.SizeDriver]
		if !ok {
			return nil, fmt.Errorf("%w: item %q needs %q", ErrMissingDriver, it.Name, it.SizeDriver)
		}
		if it.Magnitude {
			size = math.Abs(size)
		}
		ratio := size / it.RefSize
		if ratio < 0 {
			ratio = 0
		}
		mult := 1.0
		if it.PerReactor {
			mult = float64(n)
		}
		purchase := it.BaseCost * math.Pow(ratio, it.Exponent) * (ce / it.BaseCE) * mult
		out = append(out, Breakdown{
			Name:      it.Name,
			Purchase:  purchase,
			Installed: purchase * it.BareModule,
			PowerKW:   it.RefPowerKW * ratio * mult,
		})
	}
	return out, nil
}

// TotalPurchase sums the purchase costs of a breakdown.
func TotalPurchase(b []Breakdown) float64 {
	var total float64
	for _, item := range b {
		total += item.Purchase
	}
	return total
}

// TotalInstalled sums the installed costs of a breakdown.
func TotalInstalled(b []Breakdown) float64 {
	var total float64
	for _, item := range b {
		total += item.Installed
	}
	return total
}

// TotalPowerKW sums the electric load of a breakdown.
func TotalPowerKW(b []Breakdown) float64 {
	var total float64
	for _, item := range b {
		total += item.PowerKW
	}
	return total
}
