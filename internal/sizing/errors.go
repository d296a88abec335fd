package sizing

// ============================================================================
// Sizing Error Definitions
// Purpose: Fail-fast validation errors for batch reactor sizing
// ============================================================================

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrCountVolumeConflict indicates both a reactor count and a target
	// volume were supplied; the two are mutually exclusive
	ErrCountVolumeConflict = errors.New("sizing: reactor count and target volume are mutually exclusive")

	// ErrCountTooSmall indicates a reactor count of one or less
	ErrCountTooSmall = errors.New("sizing: reactor count must be greater than 1")

	// ErrCountBelowMinimum indicates a reactor count under the configured minimum
	ErrCountBelowMinimum = errors.New("sizing: reactor count below configured minimum")

	// ErrVolumeTooSmall indicates a target volume of 1 m3 or less
	ErrVolumeTooSmall = errors.New("sizing: target reactor volume must be greater than 1 m3")

	// ErrWorkingFraction indicates a working-volume fraction outside (0,1]
	ErrWorkingFraction = errors.New("sizing: working-volume fraction must be within (0,1]")

	// ErrNoBasis indicates a design pass without count, volume, or auto-select
	ErrNoBasis = errors.New("sizing: neither reactor count nor target volume is set")

	// ErrBounds indicates an inconsistent Nmin/Nmax configuration
	ErrBounds = errors.New("sizing: invalid reactor count bounds")

	// ErrTiming indicates a non-positive reaction or negative turnaround time
	ErrTiming = errors.New("sizing: invalid batch timing")
)

// InfeasibleError reports a target-volume design that needs more reactors
// than the configured maximum. This is a hard validation failure, never a
// silent clamp.
type InfeasibleError struct {
	Required int // reactor count the target volume demands
	Max      int // configured maximum
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf(
		"sizing: required reactor count %d exceeds maximum %d; increase the target volume or reduce the reaction time",
		e.Required, e.Max)
}
