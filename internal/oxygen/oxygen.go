// ============================================================================
// Oxygen Transfer - Cofactor Regeneration Gating
// ============================================================================
//
// Package: internal/oxygen
// Purpose: Map an oxygen-transfer capability to the NAD(P)+ regeneration
//          efficiency it can sustain
//
// Under-aeration is modeled as a first-order limiter on reaction
// completeness, not a hard failure: the regeneration stage still runs,
// scaled by a dimensionless efficiency factor. The factor is a
// piecewise-constant step function of kLa rather than a mass-transfer
// ODE; this is a deliberate simplification of shaking-flask behavior.
//
// Two aeration strategies exist as distinct policy types:
//   - TransferLimited: passive diffusion, factor from the kLa lookup
//   - ForcedAeration:  compressed air supply, factor is unity always
//
// ============================================================================

package oxygen

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrUnknownTier indicates an unrecognized named kLa tier
	ErrUnknownTier = errors.New("oxygen: unknown transfer tier")

	// ErrInvalidKLa indicates a non-positive transfer coefficient
	ErrInvalidKLa = errors.New("oxygen: kLa must be positive")
)

// Tier is a named oxygen-transfer preset for shaking-flask conditions.
type Tier string

const (
	TierLow    Tier = "low"    // low agitation
	TierMedium Tier = "medium" // standard agitation
	TierHigh   Tier = "high"   // high agitation
)

// tierKLa maps each preset to its transfer coefficient (1/hr).
var tierKLa = map[Tier]float64{
	TierLow:    50,
	TierMedium: 75,
	TierHigh:   100,
}

// Step-function thresholds for the efficiency factor.
const (
	fullTransferKLa    = 100 // at or above: full regeneration
	partialTransferKLa = 75  // at or above: partial regeneration
	partialFactor      = 0.85
	limitedFactor      = 0.7
)

// Policy computes the effective cofactor-regeneration behavior of one
// aeration strategy.
type Policy interface {
	// EfficiencyFactor is the dimensionless multiplier applied to the
	// nominal (oxygen-unlimited) regeneration conversion.
	EfficiencyFactor() float64

	// RegenerationRate is the effective NAD+ regeneration rate (1/hr)
	// given the nominal efficiency, reported in design results.
	RegenerationRate(nominalEfficiency float64) float64

	// Describe names the strategy for reports.
	Describe() string
}

// TransferLimited models passive diffusion with a fixed transfer
// coefficient. The zero value is invalid; use a constructor.
type TransferLimited struct {
	kLa  float64
	tier Tier // empty when constructed from an explicit coefficient
}

// NewTransferLimited builds a policy from an explicit kLa (1/hr).
func NewTransferLimited(kLa float64) (TransferLimited, error) {
	if kLa <= 0 {
		return TransferLimited{}, fmt.Errorf("%w: got %g", ErrInvalidKLa, kLa)
	}
	return TransferLimited{kLa: kLa}, nil
}

// NewTransferLimitedTier builds a policy from a named tier.
func NewTransferLimitedTier(t Tier) (TransferLimited, error) {
	kLa, ok := tierKLa[t]
	if !ok {
		return TransferLimited{}, fmt.Errorf("%w: %q (want low, medium or high)", ErrUnknownTier, t)
	}
	return TransferLimited{kLa: kLa, tier: t}, nil
}

// KLa returns the transfer coefficient (1/hr).
func (p TransferLimited) KLa() float64 { return p.kLa }

// EfficiencyFactor implements the step function:
// kLa >= 100 -> 1.0, 75 <= kLa < 100 -> 0.85, kLa < 75 -> 0.7.
func (p TransferLimited) EfficiencyFactor() float64 {
	switch {
	case p.kLa >= fullTransferKLa:
		return 1.0
	case p.kLa >= partialTransferKLa:
		return partialFactor
	default:
		return limitedFactor
	}
}

// RegenerationRate returns kLa * nominal * factor (1/hr).
func (p TransferLimited) RegenerationRate(nominalEfficiency float64) float64 {
	return p.kLa * nominalEfficiency * p.EfficiencyFactor()
}

// Describe names the tier or the explicit coefficient.
func (p TransferLimited) Describe() string {
	if p.tier != "" {
		return fmt.Sprintf("transfer-limited (%s, kLa=%.0f 1/hr)", p.tier, p.kLa)
	}
	return fmt.Sprintf("transfer-limited (kLa=%.0f 1/hr)", p.kLa)
}

// ForcedAeration models a compressed-air supply that keeps the broth
// oxygen-saturated: regeneration never limits, regardless of any
// coefficient. This is a different reactor variant, not a parameter of
// the transfer-limited model.
type ForcedAeration struct{}

// EfficiencyFactor is unity unconditionally.
func (ForcedAeration) EfficiencyFactor() float64 { return 1.0 }

// RegenerationRate returns the nominal rate unscaled. With forced
// aeration the rate is biology-limited, not transfer-limited, so no kLa
// multiplier applies; the nominal efficiency is reported as a fraction
// per hour basis for comparability.
func (ForcedAeration) RegenerationRate(nominalEfficiency float64) float64 {
	return fullTransferKLa * nominalEfficiency
}

// Describe names the strategy.
func (ForcedAeration) Describe() string { return "forced aeration (compressed air)" }
