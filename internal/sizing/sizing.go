// ============================================================================
// Batch Reactor Sizing
// ============================================================================
//
// Package: internal/sizing
// Purpose: Translate throughput and batch timing into reactor volume and
//          count, or validate a user-supplied count/volume
//
// Three mutually exclusive modes, selected by what is set on the Spec:
//   1. Fixed count:   use the supplied count; size each reactor from
//                     throughput
//   2. Target volume: N = ceil(v0/V/V_wf * (tau+tau0) + 1), floored at
//                     Nmin, hard error above Nmax
//   3. Auto-select:   discrete hill-climb from Nmin while purchase cost
//                     strictly decreases (assumes a unimodal cost curve)
//
// Derived quantities (every mode):
//   cycle time   = tau + tau0
//   loading time = cycle / (N-1)      (staggered filling across reactors)
//   batch time   = tau + loading
//   dead time    = tau0 + loading
//   volume       = v0 * cycle / ((N-1) * V_wf)   per reactor
//   recirc flow  = v0 / N                        per reactor
//
// The volume expression is the exact inverse of the target-volume count
// formula, so the two modes agree with each other.
//
// Everything is recomputed fresh on every call: throughput, timing, and
// count may all change between simulation passes, so nothing is cached.
//
// ============================================================================

package sizing

import (
	"fmt"
	"math"
)

// Default count bounds, following NREL batch-train practice.
const (
	DefaultNMin = 2
	DefaultNMax = 36
)

// Spec holds the sizing basis of one batch reactor train. Count and
// target volume are managed through setters that enforce their mutual
// exclusivity at the point of assignment.
type Spec struct {
	reactionTime    float64 // tau (hr)
	turnaroundTime  float64 // tau0: cleaning and unloading (hr)
	workingFraction float64 // V_wf in (0,1]
	nMin, nMax      int

	count        int     // 0 = unset
	targetVolume float64 // 0 = unset, m3
}

// NewSpec validates the timing parameters and bounds and returns a spec
// with neither count nor volume set.
func NewSpec(reactionTime, turnaroundTime, workingFraction float64, nMin, nMax int) (*Spec, error) {
	if reactionTime <= 0 || turnaroundTime < 0 {
		return nil, fmt.Errorf("%w: tau=%g hr, tau0=%g hr", ErrTiming, reactionTime, turnaroundTime)
	}
	if workingFraction <= 0 || workingFraction > 1 {
		return nil, fmt.Errorf("%w: got %g", ErrWorkingFraction, workingFraction)
	}
	if nMin < 2 || nMax < nMin {
		return nil, fmt.Errorf("%w: min=%d max=%d", ErrBounds, nMin, nMax)
	}
	return &Spec{
		reactionTime:    reactionTime,
		turnaroundTime:  turnaroundTime,
		workingFraction: workingFraction,
		nMin:            nMin,
		nMax:            nMax,
	}, nil
}

// SetCount fixes the reactor count. It rejects counts of one or less,
// counts under the configured minimum, and any assignment while a target
// volume is set.
func (s *Spec) SetCount(n int) error {
	if n <= 1 {
		return fmt.Errorf("%w: got %d", ErrCountTooSmall, n)
	}
	if n < s.nMin {
		return fmt.Errorf("%w: got %d, minimum %d", ErrCountBelowMinimum, n, s.nMin)
	}
	if s.targetVolume != 0 {
		return fmt.Errorf("%w: target volume %g m3 is already set", ErrCountVolumeConflict, s.targetVolume)
	}
	s.count = n
	return nil
}

// ClearCount unsets the reactor count. Never fails.
func (s *Spec) ClearCount() { s.count = 0 }

// Count returns the fixed reactor count, 0 when unset.
func (s *Spec) Count() int { return s.count }

// SetTargetVolume fixes the per-reactor target volume (m3). It rejects
// volumes of 1 m3 or less and any assignment while a count is set.
func (s *Spec) SetTargetVolume(v float64) error {
	if v <= 1 {
		return fmt.Errorf("%w: got %g", ErrVolumeTooSmall, v)
	}
	if s.count != 0 {
		return fmt.Errorf("%w: reactor count %d is already set", ErrCountVolumeConflict, s.count)
	}
	s.targetVolume = v
	return nil
}

// ClearTargetVolume unsets the target volume. Never fails.
func (s *Spec) ClearTargetVolume() { s.targetVolume = 0 }

// TargetVolume returns the target per-reactor volume (m3), 0 when unset.
func (s *Spec) TargetVolume() float64 { return s.targetVolume }

// ReactionTime returns tau (hr).
func (s *Spec) ReactionTime() float64 { return s.reactionTime }

// TurnaroundTime returns tau0 (hr).
func (s *Spec) TurnaroundTime() float64 { return s.turnaroundTime }

// WorkingFraction returns V_wf.
func (s *Spec) WorkingFraction() float64 { return s.workingFraction }

// Bounds returns the configured (min, max) reactor counts.
func (s *Spec) Bounds() (int, int) { return s.nMin, s.nMax }

// CycleTime returns tau + tau0 (hr).
func (s *Spec) CycleTime() float64 { return s.reactionTime + s.turnaroundTime }

// Result is one complete sizing outcome.
type Result struct {
	Count         int
	ReactorVolume float64 // per reactor, m3
	CycleTime     float64 // hr
	LoadingTime   float64 // hr
	BatchTime     float64 // hr
	DeadTime      float64 // hr
	Recirculation float64 // per reactor, m3/hr
}

// Design computes the sizing for a volumetric throughput v0 (m3/hr),
// using whichever of count or target volume is set.
func (s *Spec) Design(v0 float64) (Result, error) {
	switch {
	case s.targetVolume != 0:
		n, err := s.countForVolume(v0)
		if err != nil {
			return Result{}, err
		}
		return s.resultFor(v0, n), nil
	case s.count != 0:
		return s.resultFor(v0, s.count), nil
	default:
		return Result{}, ErrNoBasis
	}
}

// countForVolume computes N = ceil(v0/V/V_wf * cycle + 1), floored at
// Nmin. Exceeding Nmax is a hard error, not a clamp.
func (s *Spec) countForVolume(v0 float64) (int, error) {
	raw := v0/s.targetVolume/s.workingFraction*s.CycleTime() + 1
	n := s.nMin
	if raw > float64(s.nMin) {
		n = int(math.Ceil(raw))
	}
	if n > s.nMax {
		return 0, &InfeasibleError{Required: n, Max: s.nMax}
	}
	return n, nil
}

// resultFor derives every sizing quantity for a given count.
func (s *Spec) resultFor(v0 float64, n int) Result {
	cycle := s.CycleTime()
	loading := cycle / float64(n-1)
	return Result{
		Count:         n,
		ReactorVolume: v0 * cycle / (float64(n-1) * s.workingFraction),
		CycleTime:     cycle,
		LoadingTime:   loading,
		BatchTime:     s.reactionTime + loading,
		DeadTime:      s.turnaroundTime + loading,
		Recirculation: v0 / float64(n),
	}
}

// AutoSelect finds the reactor count that minimizes purchase cost by
// incrementing the count from Nmin while the cost strictly decreases,
// and returning the sizing at the last improving count.
//
// The search assumes the cost curve is unimodal in the count (per-unit
// economies of scale against parallel-train overhead). On a non-unimodal
// curve it stops at the first local minimum.
func (s *Spec) AutoSelect(v0 float64, costOf func(Result) float64) (Result, error) {
	if costOf == nil {
		return Result{}, fmt.Errorf("sizing: auto-select requires a cost function")
	}
	n := s.nMin
	best := s.resultFor(v0, n)
	bestCost := costOf(best)
	for n < s.nMax {
		candidate := s.resultFor(v0, n+1)
		c := costOf(candidate)
		if c >= bestCost {
			break
		}
		n++
		best, bestCost = candidate, c
	}
	return best, nil
}
