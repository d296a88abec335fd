package unitops

import (
	"fmt"

	"github.com/jahyunlee00299/tagsim/internal/costing"
	"github.com/jahyunlee00299/tagsim/internal/stream"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
	"github.com/jahyunlee00299/tagsim/pkg/types"
)

// DefaultCellCapture is the fraction of biomass sent to the solids outlet
// by the disc-stack centrifuge.
const DefaultCellCapture = 0.98

// CellSeparator removes whole cells from the reactor effluent. Splits are
// per species: anything without an entry passes entirely to the clarified
// outlet.
type CellSeparator struct {
	base
	feed      *stream.Stream
	clarified *stream.Stream
	solids    *stream.Stream
	splits    map[string]float64 // fraction to solids
}

// NewCellSeparator builds a separator with the given solids splits. A nil
// map defaults to capturing biomass and cells at DefaultCellCapture.
func NewCellSeparator(id string, reg *thermo.Registry, feed *stream.Stream, splits map[string]float64) (*CellSeparator, error) {
	if feed == nil {
		return nil, fmt.Errorf("%w: %s feed", ErrMissingStream, id)
	}
	if splits == nil {
		splits = map[string]float64{
			thermo.Biomass: DefaultCellCapture,
			thermo.Cells:   DefaultCellCapture,
		}
	}
	for sp, f := range splits {
		if !validFraction(f) {
			return nil, fmt.Errorf("%w: split for %q is %g", ErrFraction, sp, f)
		}
	}
	clarified := stream.New(id+"_clarified", reg)
	solids := stream.New(id+"_solids", reg)
	return &CellSeparator{
		base:      newBase(id, []*stream.Stream{feed}, []*stream.Stream{clarified, solids}),
		feed:      feed,
		clarified: clarified,
		solids:    solids,
		splits:    splits,
	}, nil
}

// Clarified returns the cell-free outlet.
func (u *CellSeparator) Clarified() *stream.Stream { return u.clarified }

// Solids returns the cell-paste outlet.
func (u *CellSeparator) Solids() *stream.Stream { return u.solids }

func (u *CellSeparator) Setup() error {
	u.setup = true
	return nil
}

func (u *CellSeparator) Run() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.resetPass()
	u.clarified.CopyFrom(u.feed)
	u.solids.CopyFrom(u.feed)
	u.solids.Empty()
	u.solids.SetPhase(stream.Solid)
	for sp, f := range u.splits {
		total := u.clarified.ComponentFlow(sp)
		if total == 0 {
			continue
		}
		u.solids.SetComponentFlow(sp, total*f)
		u.clarified.SetComponentFlow(sp, total*(1-f))
	}
	return nil
}

func (u *CellSeparator) Design() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.design = types.DesignResults{
		types.KeyFeedMassFlow: u.feed.TotalMassFlow(),
	}
	return nil
}

func (u *CellSeparator) Cost() error {
	if err := u.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	breakdown, err := costing.Evaluate(costing.CentrifugeItems(), u.design, 1, 0)
	if err != nil {
		return fmt.Errorf("%s: %w", u.id, err)
	}
	u.costs = breakdown
	return nil
}
