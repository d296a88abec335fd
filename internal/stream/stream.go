// ============================================================================
// Process Stream - Component Flow Container
// ============================================================================
//
// Package: internal/stream
// Purpose: Named container of component molar flows with temperature,
//          pressure and phase, shared between unit operations
//
// Ownership model:
//   A stream has a single writer at any point of a simulation pass: the
//   unit operation that produces it. The consuming unit reads it on the
//   next step. No locking is needed; passes are sequential.
//
// Missing-species policy:
//   Reading a component that is not present returns 0, never an error.
//   Callers cannot distinguish "truly zero" from "not modeled" here;
//   that distinction lives in the reaction engine, which consults the
//   species registry and emits warnings.
//
// ============================================================================

package stream

import (
	"fmt"
	"strings"

	"github.com/jahyunlee00299/tagsim/internal/thermo"
)

// Phase of a stream's bulk contents.
type Phase byte

const (
	Liquid Phase = 'l'
	Gas    Phase = 'g'
	Solid  Phase = 's'
)

// Standard conditions used when a stream is created without explicit T/P.
const (
	DefaultTemperature = 298.15 // K
	DefaultPressure    = 101325 // Pa
)

// Stream holds component molar flows (mol/hr) in insertion order plus the
// scalar state of the stream. Component flows may go negative: the model
// does not enforce non-negativity, by design, so that over-consumption in
// a reaction cascade shows up in the numbers instead of being clamped away.
type Stream struct {
	name  string
	reg   *thermo.Registry
	T     float64 // K
	P     float64 // Pa
	phase Phase

	index map[string]int
	order []string
	flow  []float64 // mol/hr, parallel to order
}

// New creates an empty liquid stream at standard conditions.
func New(name string, reg *thermo.Registry) *Stream {
	return &Stream{
		name:  name,
		reg:   reg,
		T:     DefaultTemperature,
		P:     DefaultPressure,
		phase: Liquid,
		index: make(map[string]int),
	}
}

// Name returns the stream identifier.
func (s *Stream) Name() string { return s.name }

// Registry returns the species registry the stream was built against.
func (s *Stream) Registry() *thermo.Registry { return s.reg }

// Temperature returns T in K.
func (s *Stream) Temperature() float64 { return s.T }

// SetTemperature sets T in K.
func (s *Stream) SetTemperature(t float64) { s.T = t }

// Pressure returns P in Pa.
func (s *Stream) Pressure() float64 { return s.P }

// SetPressure sets P in Pa.
func (s *Stream) SetPressure(p float64) { s.P = p }

// Phase returns the bulk phase.
func (s *Stream) Phase() Phase { return s.phase }

// SetPhase sets the bulk phase.
func (s *Stream) SetPhase(p Phase) { s.phase = p }

// ComponentFlow returns the molar flow (mol/hr) of a component, or 0 when
// the component is not present. It never fails.
func (s *Stream) ComponentFlow(name string) float64 {
	if i, ok := s.index[name]; ok {
		return s.flow[i]
	}
	return 0
}

// SetComponentFlow sets the molar flow (mol/hr) of a component, adding it
// to the stream if needed.
func (s *Stream) SetComponentFlow(name string, mol float64) {
	if i, ok := s.index[name]; ok {
		s.flow[i] = mol
		return
	}
	s.index[name] = len(s.order)
	s.order = append(s.order, name)
	s.flow = append(s.flow, mol)
}

// AddComponentFlow adds delta (mol/hr) to a component's flow.
func (s *Stream) AddComponentFlow(name string, delta float64) {
	s.SetComponentFlow(name, s.ComponentFlow(name)+delta)
}

// Components returns the component names in insertion order.
func (s *Stream) Components() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// TotalMolarFlow returns the total molar flow (mol/hr).
func (s *Stream) TotalMolarFlow() float64 {
	var total float64
	for _, f := range s.flow {
		total += f
	}
	return total
}

// TotalMassFlow returns the total mass flow (kg/hr). Components missing
// from the registry contribute nothing; their mass is not modeled.
func (s *Stream) TotalMassFlow() float64 {
	var total float64
	for i, name := range s.order {
		if mw, ok := s.reg.MW(name); ok {
			total += s.flow[i] * mw / 1000
		}
	}
	return total
}

// ComponentMassFlow returns one component's mass flow (kg/hr), 0 when the
// component is absent or not modeled.
func (s *Stream) ComponentMassFlow(name string) float64 {
	mw, ok := s.reg.MW(name)
	if !ok {
		return 0
	}
	return s.ComponentFlow(name) * mw / 1000
}

// MassFlowFromKg sets a component flow from a mass rate (kg/hr). Returns
// false when the component is not modeled (the flow is left untouched).
func (s *Stream) MassFlowFromKg(name string, kg float64) bool {
	mw, ok := s.reg.MW(name)
	if !ok {
		return false
	}
	s.SetComponentFlow(name, kg*1000/mw)
	return true
}

// TotalVolumetricFlow returns the volumetric flow (m3/hr). Liquid streams
// use the sugar-solution density estimate; gas streams use the ideal gas
// law at stream T and P.
func (s *Stream) TotalVolumetricFlow() float64 {
	if s.phase == Gas {
		// V = n R T / P, with n in mol/hr and V in m3/hr
		return s.TotalMolarFlow() * thermo.GasConstant * s.T / s.P
	}
	mass := s.TotalMassFlow()
	if mass <= 0 {
		return 0
	}
	var sugarMass float64
	for i, name := range s.order {
		if s.reg.IsSugar(name) {
			if mw, ok := s.reg.MW(name); ok {
				sugarMass += s.flow[i] * mw / 1000
			}
		}
	}
	return mass / thermo.SugarSolutionDensity(sugarMass/mass)
}

// Empty removes all component flows; scalar state is kept.
func (s *Stream) Empty() {
	s.index = make(map[string]int)
	s.order = nil
	s.flow = nil
}

// CopyFrom replaces this stream's composition and scalar state with a
// deep copy of other. The name and registry are kept.
func (s *Stream) CopyFrom(other *Stream) {
	s.T = other.T
	s.P = other.P
	s.phase = other.phase
	s.Empty()
	for i, name := range other.order {
		s.SetComponentFlow(name, other.flow[i])
	}
}

// MixFrom replaces this stream's composition with the component-wise sum
// of the sources. Temperature is the molar-flow-weighted average; pressure
// is taken from the first source. A crude mixing rule, adequate for a
// model that does not resolve the energy balance.
func (s *Stream) MixFrom(sources ...*Stream) {
	s.Empty()
	var totalMol, weightedT float64
	for _, src := range sources {
		for i, name := range src.order {
			s.AddComponentFlow(name, src.flow[i])
		}
		mol := src.TotalMolarFlow()
		totalMol += mol
		weightedT += mol * src.T
	}
	if len(sources) > 0 {
		s.P = sources[0].P
	}
	if totalMol > 0 {
		s.T = weightedT / totalMol
	}
}

// ReceiveVent moves every gas-phase component from source into this
// stream, leaving the source fully degassed. The receiving stream becomes
// gas phase at the source's T and P.
func (s *Stream) ReceiveVent(source *Stream) {
	s.Empty()
	s.phase = Gas
	s.T = source.T
	s.P = source.P
	for i, name := range source.order {
		if source.reg.IsGas(name) && source.flow[i] != 0 {
			s.SetComponentFlow(name, source.flow[i])
			source.flow[i] = 0
		}
	}
}

// String renders a compact composition summary for logs and reports.
func (s *Stream) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (T=%.1fK P=%.0fPa", s.name, s.T, s.P)
	for i, name := range s.order {
		if s.flow[i] != 0 {
			fmt.Fprintf(&b, " %s=%.3g", name, s.flow[i])
		}
	}
	b.WriteString(")")
	return b.String()
}
