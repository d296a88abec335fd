// ============================================================================
// Unit Operation Shell - Four-Phase Lifecycle
// ============================================================================
//
// Package: internal/unitops
// Purpose: Define the lifecycle every process step follows and the shared
//          plumbing for streams, design results, costs and warnings
//
// Lifecycle:
//   Constructed -> Configured(Setup) -> [Run -> Design -> Cost]*
//
// The bracketed triple repeats once per simulation pass. Re-running is
// idempotent given unchanged inputs: each phase is a pure function of the
// current input-stream state plus the fixed configuration. No state
// carries between passes except that configuration.
//
// Failure semantics:
//   - configuration errors are fatal at construction or Setup
//   - missing chemical species never abort a pass; they degrade to a
//     zero contribution and a recorded warning
//
// ============================================================================

package unitops

import (
	"errors"

	"github.com/jahyunlee00299/tagsim/internal/costing"
	"github.com/jahyunlee00299/tagsim/internal/stream"
	"github.com/jahyunlee00299/tagsim/pkg/types"
)

// Predefined errors
var (
	// ErrNotSetup indicates Run/Design/Cost was called before Setup
	ErrNotSetup = errors.New("unitops: unit has not been set up")

	// ErrMissingStream indicates a unit constructed without a required
	// input stream
	ErrMissingStream = errors.New("unitops: required input stream is nil")

	// ErrFraction indicates a recovery/split/conversion outside [0,1]
	ErrFraction = errors.New("unitops: fraction must be within [0,1]")
)

// Operation is one process step. Streams returned by Ins are borrowed
// references into the flowsheet graph; Outs are owned by the unit and
// rewritten on every pass.
type Operation interface {
	ID() string

	// Setup validates configuration and binds fixed resources. Called
	// once; fatal on configuration errors.
	Setup() error

	// Run mutates the output streams from the input streams.
	Run() error

	// Design computes sizing and duty from the run results.
	Design() error

	// Cost evaluates the cost correlations against the design results.
	Cost() error

	Ins() []*stream.Stream
	Outs() []*stream.Stream

	DesignResults() types.DesignResults
	CostBreakdown() []costing.Breakdown

	// Warnings returns the degradations recorded by the most recent Run.
	Warnings() []types.Warning
}

// base carries the plumbing shared by every unit implementation.
type base struct {
	id       string
	ins      []*stream.Stream
	outs     []*stream.Stream
	design   types.DesignResults
	costs    []costing.Breakdown
	warnings []types.Warning
	setup    bool
}

func newBase(id string, ins, outs []*stream.Stream) base {
	return base{id: id, ins: ins, outs: outs, design: types.DesignResults{}}
}

func (b *base) ID() string                         { return b.id }
func (b *base) Ins() []*stream.Stream              { return b.ins }
func (b *base) Outs() []*stream.Stream             { return b.outs }
func (b *base) DesignResults() types.DesignResults { return b.design }
func (b *base) CostBreakdown() []costing.Breakdown { return b.costs }
func (b *base) Warnings() []types.Warning          { return b.warnings }

// resetPass clears per-pass outputs so repeated passes do not accumulate.
func (b *base) resetPass() {
	b.warnings = nil
}

// warn records a degradation, stamping it with the unit ID.
func (b *base) warn(w types.Warning) {
	w.Unit = b.id
	b.warnings = append(b.warnings, w)
}

// requireSetup guards the per-pass phases.
func (b *base) requireSetup() error {
	if !b.setup {
		return ErrNotSetup
	}
	return nil
}

func validFraction(f float64) bool { return f >= 0 && f <= 1 }
