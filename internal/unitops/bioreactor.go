// ============================================================================
// Whole-Cell Batch Bioreactor
// ============================================================================
//
// Package: internal/unitops
// Purpose: Generic batch bioreactor parameterized by an injected reaction
//          network and an injected aeration policy
//
// Material balance per pass:
//   1. Effluent starts as a copy of the feed, mixed with the air inlet
//   2. The reaction cascade runs in place (stage 3 gated by aeration)
//   3. Gas species move to the vent
//   4. Heat duty = deltaH_rxn * extent of the first (main) stage
//
// There is exactly one reactor type. Process variants differ only in the
// injected network, aeration policy and configuration values; no variant
// subclassing, no shared mutable defaults.
//
// ============================================================================

package unitops

import (
	"fmt"

	"github.com/jahyunlee00299/tagsim/internal/costing"
	"github.com/jahyunlee00299/tagsim/internal/oxygen"
	"github.com/jahyunlee00299/tagsim/internal/reaction"
	"github.com/jahyunlee00299/tagsim/internal/sizing"
	"github.com/jahyunlee00299/tagsim/internal/stream"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
	"github.com/jahyunlee00299/tagsim/pkg/types"
)

// Default reactor operating conditions.
const (
	DefaultReactorT        = 310.15 // K (37 C)
	DefaultReactorP        = 101325 // Pa
	DefaultTurnaround      = 3.0    // hr
	DefaultWorkingFraction = 0.9
	DefaultHeatOfReaction  = -50.0 // kJ/mol basis reacted (mildly exothermic)
	DefaultNominalRegenEff = 0.95  // oxygen-unlimited NAD regeneration efficiency
)

// ReactorConfig is the immutable configuration of one bioreactor unit.
// Exactly one of Count / TargetVolume may be non-zero unless AutoSelect
// is set, in which case both must be zero.
type ReactorConfig struct {
	Tau             float64 // reaction time (hr), required
	Tau0            float64 // turnaround time (hr)
	T               float64 // operating temperature (K)
	P               float64 // operating pressure (Pa)
	WorkingFraction float64 // (0,1]
	NMin, NMax      int
	Count           int     // fixed reactor count (0 = unset)
	TargetVolume    float64 // per-reactor target volume, m3 (0 = unset)
	AutoSelect      bool    // pick the count that minimizes purchase cost

	HeatOfReaction float64 // kJ/mol of main-stage basis reacted
	NominalRegen   float64 // oxygen-unlimited regeneration efficiency (0,1]
	CE             float64 // cost index; 0 uses costing.DefaultCE
}

// withDefaults fills unset fields.
func (c ReactorConfig) withDefaults() ReactorConfig {
	if c.Tau0 == 0 {
		c.Tau0 = DefaultTurnaround
	}
	if c.T == 0 {
		c.T = DefaultReactorT
	}
	if c.P == 0 {
		c.P = DefaultReactorP
	}
	if c.WorkingFraction == 0 {
		c.WorkingFraction = DefaultWorkingFraction
	}
	if c.NMin == 0 {
		c.NMin = sizing.DefaultNMin
	}
	if c.NMax == 0 {
		c.NMax = sizing.DefaultNMax
	}
	if c.HeatOfReaction == 0 {
		c.HeatOfReaction = DefaultHeatOfReaction
	}
	if c.NominalRegen == 0 {
		c.NominalRegen = DefaultNominalRegenEff
	}
	return c
}

// BatchBioreactor is the single reactor type; see the package banner.
type BatchBioreactor struct {
	base
	cfg      ReactorConfig
	network  *reaction.Network
	aeration oxygen.Policy
	reg      *thermo.Registry

	spec      *sizing.Spec
	effective *reaction.Network // aeration-gated copy, bound at Setup
	items     []costing.Item

	feed, air      *stream.Stream
	vent, effluent *stream.Stream
	lastMainExtent float64
	lastSizing     sizing.Result
}

// NewBatchBioreactor wires a reactor from its collaborators. The air
// stream may be nil for anaerobic-only operation. Configuration errors
// surface here or at Setup; never later.
func NewBatchBioreactor(id string, cfg ReactorConfig, net *reaction.Network,
	aeration oxygen.Policy, reg *thermo.Registry, feed, air *stream.Stream) (*BatchBioreactor, error) {

	if feed == nil {
		return nil, fmt.Errorf("%w: %s feed", ErrMissingStream, id)
	}
	if net == nil {
		return nil, fmt.Errorf("unitops: %s requires a reaction network", id)
	}
	if aeration == nil {
		return nil, fmt.Errorf("unitops: %s requires an aeration policy", id)
	}
	cfg = cfg.withDefaults()
	if cfg.NominalRegen <= 0 || cfg.NominalRegen > 1 {
		return nil, fmt.Errorf("%w: nominal regeneration efficiency %g", ErrFraction, cfg.NominalRegen)
	}

	ins := []*stream.Stream{feed}
	if air != nil {
		ins = append(ins, air)
	}
	vent := stream.New(id+"_vent", reg)
	effluent := stream.New(id+"_effluent", reg)

	r := &BatchBioreactor{
		base:     newBase(id, ins, []*stream.Stream{vent, effluent}),
		cfg:      cfg,
		network:  net,
		aeration: aeration,
		reg:      reg,
		feed:     feed,
		air:      air,
		vent:     vent,
		effluent: effluent,
	}
	return r, nil
}

// Vent returns the gas outlet.
func (r *BatchBioreactor) Vent() *stream.Stream { return r.vent }

// Effluent returns the liquid outlet.
func (r *BatchBioreactor) Effluent() *stream.Stream { return r.effluent }

// Config returns the reactor configuration.
func (r *BatchBioreactor) Config() ReactorConfig { return r.cfg }

// Setup validates the sizing basis, gates the regeneration stage by the
// aeration policy, and registers the cost correlations.
func (r *BatchBioreactor) Setup() error {
	spec, err := sizing.NewSpec(r.cfg.Tau, r.cfg.Tau0, r.cfg.WorkingFraction, r.cfg.NMin, r.cfg.NMax)
	if err != nil {
		return fmt.Errorf("%s: %w", r.id, err)
	}
	if r.cfg.AutoSelect && (r.cfg.Count != 0 || r.cfg.TargetVolume != 0) {
		return fmt.Errorf("%s: %w", r.id, sizing.ErrCountVolumeConflict)
	}
	if r.cfg.Count != 0 {
		if err := spec.SetCount(r.cfg.Count); err != nil {
			return fmt.Errorf("%s: %w", r.id, err)
		}
	}
	if r.cfg.TargetVolume != 0 {
		if err := spec.SetTargetVolume(r.cfg.TargetVolume); err != nil {
			return fmt.Errorf("%s: %w", r.id, err)
		}
	}
	if !r.cfg.AutoSelect && r.cfg.Count == 0 && r.cfg.TargetVolume == 0 {
		return fmt.Errorf("%s: %w", r.id, sizing.ErrNoBasis)
	}
	r.spec = spec
	r.effective = r.network.ScaleConversion(
		reaction.StageCofactorRegen, r.aeration.EfficiencyFactor())
	r.items = costing.BioreactorItems()
	r.setup = true
	return nil
}

// Run executes the material balance for one pass.
func (r *BatchBioreactor) Run() error {
	if err := r.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", r.id, err)
	}
	r.resetPass()

	if r.air != nil {
		r.effluent.MixFrom(r.feed, r.air)
	} else {
		r.effluent.CopyFrom(r.feed)
	}
	r.effluent.SetTemperature(r.cfg.T)
	r.effluent.SetPressure(r.cfg.P)
	r.effluent.SetPhase(stream.Liquid)

	res := r.effective.Apply(r.effluent)
	for _, w := range res.Warnings {
		r.warn(w)
	}
	r.lastMainExtent = 0
	if len(res.Extents) > 0 {
		r.lastMainExtent = res.Extents[0]
	}

	r.vent.ReceiveVent(r.effluent)
	return nil
}

// Design sizes the reactor train against the effluent throughput.
// Everything is recomputed from scratch each pass.
func (r *BatchBioreactor) Design() error {
	if err := r.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", r.id, err)
	}
	v0 := r.effluent.TotalVolumetricFlow()
	duty := r.cfg.HeatOfReaction * r.lastMainExtent // kJ/hr

	var (
		result sizing.Result
		err    error
	)
	if r.cfg.AutoSelect {
		result, err = r.spec.AutoSelect(v0, func(candidate sizing.Result) float64 {
			design := r.designMap(candidate, duty)
			breakdown, cerr := costing.Evaluate(r.items, design, candidate.Count, r.cfg.CE)
			if cerr != nil {
				return 0
			}
			return costing.TotalPurchase(breakdown)
		})
	} else {
		result, err = r.spec.Design(v0)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", r.id, err)
	}
	r.lastSizing = result

	r.design = r.designMap(result, duty)
	r.design[types.KeyNADRegenRate] = r.aeration.RegenerationRate(r.cfg.NominalRegen)
	if tl, ok := r.aeration.(oxygen.TransferLimited); ok {
		r.design[types.KeyKLa] = tl.KLa()
	}
	return nil
}

// designMap renders a sizing result as named design quantities.
func (r *BatchBioreactor) designMap(result sizing.Result, duty float64) types.DesignResults {
	return types.DesignResults{
		types.KeyReactorVolume: result.ReactorVolume,
		types.KeyNumReactors:   float64(result.Count),
		types.KeyCycleTime:     result.CycleTime,
		types.KeyBatchTime:     result.BatchTime,
		types.KeyLoadingTime:   result.LoadingTime,
		types.KeyDeadTime:      result.DeadTime,
		types.KeyReactorDuty:   duty,
		types.KeyRecirculation: result.Recirculation,
	}
}

// Cost evaluates the NREL correlations against the current design.
func (r *BatchBioreactor) Cost() error {
	if err := r.requireSetup(); err != nil {
		return fmt.Errorf("%s: %w", r.id, err)
	}
	breakdown, err := costing.Evaluate(r.items, r.design, r.lastSizing.Count, r.cfg.CE)
	if err != nil {
		return fmt.Errorf("%s: %w", r.id, err)
	}
	r.costs = breakdown
	return nil
}

// AerationPolicy returns the injected policy, for reports.
func (r *BatchBioreactor) AerationPolicy() oxygen.Policy { return r.aeration }
