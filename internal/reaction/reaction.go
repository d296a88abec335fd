// ============================================================================
// Reaction Network Engine - Stoichiometric Conversions
// ============================================================================
//
// Package: internal/reaction
// Purpose: Apply an ordered sequence of stoichiometric conversions to a
//          stream, in place
//
// Extent arithmetic (per stage):
//   amount  = basisFlow * conversion          (mol/hr of basis consumed)
//   extent  = amount / basisCoefficient
//   each co-reactant  -= extent * coefficient
//   each product      += extent * coefficient
//
// Composition:
//   Stages run in order against the *current* stream state, not the
//   original feed. A later stage therefore sees the depleted pools and
//   new products of earlier stages; stage order is part of the network
//   definition, not an implementation detail.
//
// Degradation policy:
//   A species missing from the registry never aborts a pass. If the
//   basis reactant is unmodeled the whole stage is skipped; if a
//   co-reactant or product is unmodeled only that term is dropped. Every
//   drop is reported as a structured warning so the resulting (possibly
//   incomplete) balance is observable.
//
// ============================================================================

package reaction

import (
	"errors"
	"fmt"

	"github.com/jahyunlee00299/tagsim/internal/stream"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
	"github.com/jahyunlee00299/tagsim/pkg/types"
)

// Predefined errors
var (
	// ErrConversionRange indicates a fractional conversion outside [0,1]
	ErrConversionRange = errors.New("reaction: conversion must be within [0,1]")

	// ErrCoefficient indicates a non-positive stoichiometric coefficient
	ErrCoefficient = errors.New("reaction: stoichiometric coefficient must be positive")

	// ErrNoBasis indicates a stage without a basis reactant
	ErrNoBasis = errors.New("reaction: stage has no basis reactant")

	// ErrNilRegistry indicates a network built without a species registry
	ErrNilRegistry = errors.New("reaction: species registry is required")
)

// Term is one species with its stoichiometric coefficient.
type Term struct {
	Species string
	Coeff   float64
}

// Stage is one irreversible stoichiometric transformation. Conversion is
// the fraction of the basis reactant consumed when the stage runs.
type Stage struct {
	Name        string
	Basis       Term   // limiting reactant; extent is computed from it
	Coreactants []Term // consumed alongside the basis
	Products    []Term
	Conversion  float64
}

// Validate checks the stage definition. Configuration errors are fatal;
// they are the caller's mistake, not a runtime condition.
func (st Stage) Validate() error {
	if st.Basis.Species == "" {
		return fmt.Errorf("%w: stage %q", ErrNoBasis, st.Name)
	}
	if st.Conversion < 0 || st.Conversion > 1 {
		return fmt.Errorf("%w: stage %q has conversion %g", ErrConversionRange, st.Name, st.Conversion)
	}
	for _, t := range append(append([]Term{st.Basis}, st.Coreactants...), st.Products...) {
		if t.Coeff <= 0 {
			return fmt.Errorf("%w: stage %q species %q has coefficient %g",
				ErrCoefficient, st.Name, t.Species, t.Coeff)
		}
	}
	return nil
}

// Network is an ordered reaction cascade bound to a species registry.
type Network struct {
	stages []Stage
	reg    *thermo.Registry
}

// NewNetwork validates the stage definitions and builds a network.
func NewNetwork(reg *thermo.Registry, stages ...Stage) (*Network, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	for _, st := range stages {
		if err := st.Validate(); err != nil {
			return nil, err
		}
	}
	n := &Network{reg: reg}
	n.stages = append(n.stages, stages...)
	return n, nil
}

// Stages returns a copy of the stage definitions.
func (n *Network) Stages() []Stage {
	out := make([]Stage, len(n.stages))
	copy(out, n.stages)
	return out
}

// ScaleConversion returns a copy of the network with the named stage's
// conversion multiplied by factor (clamped to [0,1]). Used to gate the
// cofactor-regeneration stage by oxygen-transfer efficiency.
func (n *Network) ScaleConversion(stageName string, factor float64) *Network {
	scaled := &Network{reg: n.reg, stages: make([]Stage, len(n.stages))}
	copy(scaled.stages, n.stages)
	for i := range scaled.stages {
		if scaled.stages[i].Name == stageName {
			x := scaled.stages[i].Conversion * factor
			if x < 0 {
				x = 0
			}
			if x > 1 {
				x = 1
			}
			scaled.stages[i].Conversion = x
		}
	}
	return scaled
}

// Result reports what one Apply pass did.
type Result struct {
	// Extents holds the reaction extent of each stage (mol/hr), indexed
	// like the stage list. A skipped stage has extent 0.
	Extents []float64

	// Warnings lists every dropped contribution.
	Warnings []types.Warning
}

// Apply runs the cascade against the stream, mutating it in place.
// It never fails: degradations come back as warnings.
func (n *Network) Apply(s *stream.Stream) Result {
	res := Result{Extents: make([]float64, len(n.stages))}
	for i, st := range n.stages {
		if !n.reg.Has(st.Basis.Species) {
			res.Warnings = append(res.Warnings, types.Warning{
				Stage:   st.Name,
				Species: st.Basis.Species,
				Reason:  types.StageSkipped,
				Detail:  "basis reactant not modeled; stage contribution dropped",
			})
			continue
		}
		amount := s.ComponentFlow(st.Basis.Species) * st.Conversion
		extent := amount / st.Basis.Coeff
		if extent == 0 {
			continue
		}
		s.AddComponentFlow(st.Basis.Species, -amount)
		for _, t := range st.Coreactants {
			if !n.reg.Has(t.Species) {
				res.Warnings = append(res.Warnings, notModeled(st.Name, t.Species))
				continue
			}
			s.AddComponentFlow(t.Species, -extent*t.Coeff)
		}
		for _, t := range st.Products {
			if !n.reg.Has(t.Species) {
				res.Warnings = append(res.Warnings, notModeled(st.Name, t.Species))
				continue
			}
			s.AddComponentFlow(t.Species, extent*t.Coeff)
		}
		res.Extents[i] = extent
	}
	return res
}

func notModeled(stage, species string) types.Warning {
	return types.Warning{
		Stage:   stage,
		Species: species,
		Reason:  types.SpeciesNotModeled,
		Detail:  "species not modeled; its flow contribution was dropped",
	}
}
