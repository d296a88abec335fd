// ============================================================================
// Sensitivity Sweep - Parallel Price Scan
// ============================================================================
//
// Package: internal/sweep
// Purpose: Evaluate the profitability analysis over a grid of selling
//          prices, fanning the points out over a fixed worker pool
//
// Each point is independent: the physical simulation is done once and the
// analysis re-prices the same inputs, so points parallelize trivially.
// Results come back in grid order regardless of completion order.
//
// ============================================================================

package sweep

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jahyunlee00299/tagsim/internal/tea"
)

// Predefined errors
var (
	// ErrNoPoints indicates an empty price grid
	ErrNoPoints = errors.New("sweep: price grid is empty")

	// ErrBadGrid indicates a grid definition that cannot terminate
	ErrBadGrid = errors.New("sweep: grid step must be positive and low <= high")
)

// DefaultWorkers is the pool size used when none is given.
const DefaultWorkers = 4

// Point is one evaluated grid point.
type Point struct {
	Price    decimal.Decimal // USD/kg bulk
	Analysis tea.Analysis
}

// Grid builds an inclusive price grid from low to high (USD/kg).
func Grid(low, high, step float64) ([]decimal.Decimal, error) {
	if step <= 0 || low > high {
		return nil, ErrBadGrid
	}
	var out []decimal.Decimal
	d := decimal.NewFromFloat(step)
	for p := decimal.NewFromFloat(low); p.LessThanOrEqual(decimal.NewFromFloat(high)); p = p.Add(d) {
		out = append(out, p)
	}
	return out, nil
}

// Run evaluates the analysis at every price on the grid. workers <= 0
// selects DefaultWorkers. The first analysis error aborts the sweep.
func Run(params tea.Parameters, in tea.Inputs, prices []decimal.Decimal, workers int) ([]Point, error) {
	if len(prices) == 0 {
		return nil, ErrNoPoints
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(prices) {
		workers = len(prices)
	}

	points := make([]Point, len(prices))
	errs := make([]error, len(prices))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				p := params
				p.TagatosePrice = prices[i]
				a, err := tea.Analyze(p, in)
				if err != nil {
					errs[i] = err
					continue
				}
				points[i] = Point{Price: prices[i], Analysis: a}
			}
		}()
	}
	for i := range prices {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

// BreakEven returns the lowest grid price with a non-negative NPV, and
// false when every point is under water.
func BreakEven(points []Point) (decimal.Decimal, bool) {
	for _, pt := range points {
		if pt.Analysis.NPV.GreaterThanOrEqual(decimal.Zero) {
			return pt.Price, true
		}
	}
	return decimal.Zero, false
}
