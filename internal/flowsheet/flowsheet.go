// ============================================================================
// Flowsheet - Process Train Coordinator
// ============================================================================
//
// Package: internal/flowsheet
// Purpose: Hold an ordered train of unit operations and drive the
//          simulation passes across them
//
// Ordering contract:
//   Units run strictly in registration order, and a unit may only consume
//   streams produced by earlier units (or external feeds). The constructor
//   rejects a train wired the other way; a forward reference would read
//   stale stream state mid-pass.
//
// Pass semantics:
//   Setup runs once per unit, at system construction time, and is fatal
//   on error. Each Simulate call then runs Run -> Design -> Cost across
//   the train. Simulate is idempotent given unchanged feeds: every unit
//   recomputes from its current inputs.
//
// Failure semantics:
//   Unit warnings (missing species and the like) are aggregated, never
//   fatal. Unit errors abort the pass with the unit named.
//
// ============================================================================

package flowsheet

import (
	"fmt"
	"log/slog"

	"github.com/jahyunlee00299/tagsim/internal/costing"
	"github.com/jahyunlee00299/tagsim/internal/stream"
	"github.com/jahyunlee00299/tagsim/internal/unitops"
	"github.com/jahyunlee00299/tagsim/pkg/types"
)

var log = slog.Default()

// Observer receives simulation lifecycle events. The metrics collector
// implements this; a nil observer is silently skipped.
type Observer interface {
	UnitCompleted(unitID string, warnings int)
	SimulationCompleted(result Results)
}

// System is an ordered train of unit operations sharing a stream graph.
type System struct {
	name     string
	units    []unitops.Operation
	observer Observer
	passes   int
}

// NewSystem validates the train wiring and sets every unit up. Setup
// errors are fatal here; nothing is retried.
func NewSystem(name string, units ...unitops.Operation) (*System, error) {
	if len(units) == 0 {
		return nil, fmt.Errorf("flowsheet: system %q has no units", name)
	}
	if err := checkOrder(units); err != nil {
		return nil, fmt.Errorf("flowsheet: system %q: %w", name, err)
	}
	for _, u := range units {
		if err := u.Setup(); err != nil {
			return nil, fmt.Errorf("flowsheet: system %q setup: %w", name, err)
		}
	}
	log.Info("System assembled", "system", name, "units", len(units))
	return &System{name: name, units: units}, nil
}

// checkOrder verifies producer-before-consumer by stream identity: an
// input owned as an output by a later unit is a forward reference.
func checkOrder(units []unitops.Operation) error {
	producer := make(map[*stream.Stream]int)
	for i, u := range units {
		for _, out := range u.Outs() {
			producer[out] = i
		}
	}
	for i, u := range units {
		for _, in := range u.Ins() {
			if j, ok := producer[in]; ok && j >= i {
				return fmt.Errorf("unit %q consumes %q before unit %q produces it",
					u.ID(), in.Name(), units[j].ID())
			}
		}
	}
	return nil
}

// SetObserver registers the lifecycle observer. Call before Simulate.
func (s *System) SetObserver(obs Observer) { s.observer = obs }

// Name returns the system name.
func (s *System) Name() string { return s.name }

// Units returns the train in execution order.
func (s *System) Units() []unitops.Operation {
	out := make([]unitops.Operation, len(s.units))
	copy(out, s.units)
	return out
}

// Unit looks a unit up by ID.
func (s *System) Unit(id string) (unitops.Operation, bool) {
	for _, u := range s.units {
		if u.ID() == id {
			return u, true
		}
	}
	return nil, false
}

// Results aggregates one simulation pass across the train.
type Results struct {
	System         string
	Warnings       []types.Warning
	TotalPurchase  float64 // USD
	TotalInstalled float64 // USD
	TotalPowerKW   float64
}

// Simulate runs one full Run -> Design -> Cost pass over the train.
func (s *System) Simulate() (Results, error) {
	s.passes++
	res := Results{System: s.name}

	for _, u := range s.units {
		if err := u.Run(); err != nil {
			return Results{}, fmt.Errorf("flowsheet: %w", err)
		}
		if err := u.Design(); err != nil {
			return Results{}, fmt.Errorf("flowsheet: %w", err)
		}
		if err := u.Cost(); err != nil {
			return Results{}, fmt.Errorf("flowsheet: %w", err)
		}

		warnings := u.Warnings()
		res.Warnings = append(res.Warnings, warnings...)
		breakdown := u.CostBreakdown()
		res.TotalPurchase += costing.TotalPurchase(breakdown)
		res.TotalInstalled += costing.TotalInstalled(breakdown)
		res.TotalPowerKW += costing.TotalPowerKW(breakdown)

		if s.observer != nil {
			s.observer.UnitCompleted(u.ID(), len(warnings))
		}
		log.Debug("Unit simulated",
			"system", s.name,
			"unit", u.ID(),
			"warnings", len(warnings))
	}

	if s.observer != nil {
		s.observer.SimulationCompleted(res)
	}
	log.Info("Simulation pass completed",
		"system", s.name,
		"pass", s.passes,
		"purchase_usd", res.TotalPurchase,
		"installed_usd", res.TotalInstalled,
		"warnings", len(res.Warnings))
	return res, nil
}

// Passes returns how many Simulate calls have completed or started.
func (s *System) Passes() int { return s.passes }
