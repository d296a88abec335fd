// ============================================================================
// Techno-Economic Analysis
// ============================================================================
//
// Package: internal/tea
// Purpose: Turn a simulated flowsheet's costs and flows into investment,
//          operating cost, revenue and profitability figures
//
// Money is carried in decimal arithmetic end to end; the only float64
// crossing is the IRR root search, where binary exactness buys nothing.
//
// Sentinel conventions:
//   - payback is +Inf when annual profit is non-positive
//   - IRR is 0 when the cash-flow series never turns positive
// Both are values, not errors: a sweep over selling prices must be able
// to cross the unprofitable region without aborting.
//
// ============================================================================

package tea

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Predefined errors
var (
	// ErrInvalidParameters indicates non-positive project life, discount
	// rate, or operating hours
	ErrInvalidParameters = errors.New("tea: invalid analysis parameters")
)

// Default economic assumptions for the tagatose plant.
var (
	DefaultDiscountRate  = decimal.NewFromFloat(0.10)
	DefaultElectricity   = decimal.NewFromFloat(0.12)  // USD/kWh
	DefaultWaterPrice    = decimal.NewFromFloat(0.002) // USD/L
	DefaultGalactose     = decimal.NewFromFloat(2.0)   // USD/kg, purchased route
	DefaultBiomassPrice  = decimal.NewFromFloat(0.35)  // USD/kg, hydrolysis route
	DefaultFormatePrice  = decimal.NewFromFloat(0.3)   // USD/kg
	DefaultLaborRate     = decimal.NewFromFloat(50)    // USD/hr, crewed
	DefaultTagatosePrice = decimal.NewFromFloat(5.0)   // USD/kg
)

const (
	DefaultProjectYears   = 20
	DefaultOperatingHours = 7500 // hr/yr

	// Investment factors on installed equipment cost.
	IndirectFraction       = 0.40
	WorkingCapitalFraction = 0.15

	// Annual cost factors on fixed capital.
	MaintenanceFraction = 0.04
	MiscFraction        = 0.02

	// Product mix: half crystalline at a premium, half syrup at a
	// discount to the quoted bulk price.
	CrystalFraction = 0.5
	CrystalPremium  = 1.20
	SyrupDiscount   = 0.95
)

// Parameters are the economic assumptions of one analysis.
type Parameters struct {
	ProjectYears   int
	DiscountRate   decimal.Decimal
	OperatingHours float64 // hr/yr

	ElectricityPrice decimal.Decimal // USD/kWh
	WaterPrice       decimal.Decimal // USD/L
	GalactosePrice   decimal.Decimal // USD/kg
	BiomassPrice     decimal.Decimal // USD/kg
	FormatePrice     decimal.Decimal // USD/kg
	LaborRate        decimal.Decimal // USD/hr
	TagatosePrice    decimal.Decimal // USD/kg bulk
}

// DefaultParameters returns the base-case assumptions.
func DefaultParameters() Parameters {
	return Parameters{
		ProjectYears:     DefaultProjectYears,
		DiscountRate:     DefaultDiscountRate,
		OperatingHours:   DefaultOperatingHours,
		ElectricityPrice: DefaultElectricity,
		WaterPrice:       DefaultWaterPrice,
		GalactosePrice:   DefaultGalactose,
		BiomassPrice:     DefaultBiomassPrice,
		FormatePrice:     DefaultFormatePrice,
		LaborRate:        DefaultLaborRate,
		TagatosePrice:    DefaultTagatosePrice,
	}
}

func (p Parameters) validate() error {
	if p.ProjectYears <= 0 {
		return fmt.Errorf("%w: project years %d", ErrInvalidParameters, p.ProjectYears)
	}
	if p.OperatingHours <= 0 {
		return fmt.Errorf("%w: operating hours %g", ErrInvalidParameters, p.OperatingHours)
	}
	if p.DiscountRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: discount rate %s", ErrInvalidParameters, p.DiscountRate)
	}
	return nil
}

// Inputs are the physical results of one simulated flowsheet, per hour of
// operation.
type Inputs struct {
	InstalledCost float64 // USD, total installed equipment
	PowerKW       float64 // total electric load
	WaterLPerHr   float64
	GalactoseKg   float64 // purchased galactose, kg/hr (0 on the biomass route)
	BiomassKg     float64 // purchased biomass, kg/hr (0 on the purchased route)
	FormateKg     float64 // kg/hr
	LaborHours    float64 // crew-hours per operating hour
	ProductKg     float64 // dried tagatose, kg/hr
}

// Analysis is a complete profitability result. Monetary values are annual
// USD unless named otherwise.
type Analysis struct {
	FixedCapital   decimal.Decimal // installed + indirects
	WorkingCapital decimal.Decimal
	TotalCapital   decimal.Decimal

	Utilities   decimal.Decimal
	RawMaterial decimal.Decimal
	Labor       decimal.Decimal
	Maintenance decimal.Decimal
	Misc        decimal.Decimal
	TotalOpex   decimal.Decimal

	Revenue decimal.Decimal
	Profit  decimal.Decimal // revenue - opex

	NPV          decimal.Decimal
	PaybackYears float64 // +Inf when profit <= 0
	IRR          float64 // 0 when no positive cash flow
}

// Analyze runs the full analysis.
func Analyze(p Parameters, in Inputs) (Analysis, error) {
	if err := p.validate(); err != nil {
		return Analysis{}, err
	}

	var a Analysis
	installed := decimal.NewFromFloat(in.InstalledCost)
	a.FixedCapital = installed.Mul(decimal.NewFromFloat(1 + IndirectFraction))
	a.WorkingCapital = a.FixedCapital.Mul(decimal.NewFromFloat(WorkingCapitalFraction))
	a.TotalCapital = a.FixedCapital.Add(a.WorkingCapital)

	hours := decimal.NewFromFloat(p.OperatingHours)
	a.Utilities = decimal.NewFromFloat(in.PowerKW).Mul(p.ElectricityPrice).
		Add(decimal.NewFromFloat(in.WaterLPerHr).Mul(p.WaterPrice)).
		Mul(hours)
	a.RawMaterial = decimal.NewFromFloat(in.GalactoseKg).Mul(p.GalactosePrice).
		Add(decimal.NewFromFloat(in.BiomassKg).Mul(p.BiomassPrice)).
		Add(decimal.NewFromFloat(in.FormateKg).Mul(p.FormatePrice)).
		Mul(hours)
	a.Labor = decimal.NewFromFloat(in.LaborHours).Mul(p.LaborRate).Mul(hours)
	a.Maintenance = a.FixedCapital.Mul(decimal.NewFromFloat(MaintenanceFraction))
	a.Misc = a.FixedCapital.Mul(decimal.NewFromFloat(MiscFraction))
	a.TotalOpex = a.Utilities.Add(a.RawMaterial).Add(a.Labor).Add(a.Maintenance).Add(a.Misc)

	a.Revenue = decimal.NewFromFloat(in.ProductKg).Mul(effectivePrice(p.TagatosePrice)).Mul(hours)
	a.Profit = a.Revenue.Sub(a.TotalOpex)

	a.NPV = npv(a.TotalCapital, a.Profit, p.DiscountRate, p.ProjectYears)
	a.PaybackYears = payback(a.TotalCapital, a.Profit)
	a.IRR = irr(a.TotalCapital, a.Profit, p.ProjectYears)
	return a, nil
}

// effectivePrice blends the crystal premium and syrup discount over the
// product mix.
func effectivePrice(bulk decimal.Decimal) decimal.Decimal {
	crystal := bulk.Mul(decimal.NewFromFloat(CrystalPremium * CrystalFraction))
	syrup := bulk.Mul(decimal.NewFromFloat(SyrupDiscount * (1 - CrystalFraction)))
	return crystal.Add(syrup)
}

// npv discounts a level annual profit against the upfront investment.
func npv(capital, profit, rate decimal.Decimal, years int) decimal.Decimal {
	total := capital.Neg()
	base := decimal.NewFromInt(1).Add(rate)
	for t := 1; t <= years; t++ {
		total = total.Add(profit.Div(base.Pow(decimal.NewFromInt(int64(t)))))
	}
	return total
}

// payback is the simple (undiscounted) payback period in years.
func payback(capital, profit decimal.Decimal) float64 {
	if profit.LessThanOrEqual(decimal.Zero) {
		return math.Inf(1)
	}
	out, _ := capital.Div(profit).Float64()
	return out
}

// irr finds the discount rate zeroing the NPV by bisection. The cash
// flows are a single outlay followed by level profits, so the NPV is
// monotonic in the rate and bisection cannot miss the root. Returns the
// 0 sentinel when the project never pays back.
func irr(capital, profit decimal.Decimal, years int) float64 {
	c, _ := capital.Float64()
	p, _ := profit.Float64()
	if p <= 0 || c <= 0 {
		return 0
	}
	f := func(r float64) float64 {
		total := -c
		for t := 1; t <= years; t++ {
			total += p / math.Pow(1+r, float64(t))
		}
		return total
	}
	lo, hi := 0.0, 10.0
	if f(lo) <= 0 {
		return 0 // unprofitable even undiscounted
	}
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		if f(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
