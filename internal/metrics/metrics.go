// ============================================================================
// Simulation Metrics - Prometheus Instrumentation
// ============================================================================
//
// Package: internal/metrics
// Purpose: Count simulation activity and expose it for scraping
//
// Metric groups:
//
//   1. Counters (cumulative):
//      - tagsim_simulations_total: completed simulation passes
//      - tagsim_unit_runs_total: unit operation passes
//      - tagsim_warnings_total: absorbed material-balance degradations
//      - tagsim_sizing_infeasible_total: reactor-count bound violations
//
//   2. Gauges (last pass):
//      - tagsim_purchase_cost_usd
//      - tagsim_installed_cost_usd
//      - tagsim_power_kw
//
// The collector satisfies flowsheet.Observer, so wiring it is one
// SetObserver call. Construction takes an explicit Registerer; tests pass
// a private registry so repeated constructions never collide.
//
// ============================================================================

package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jahyunlee00299/tagsim/internal/flowsheet"
)

// Collector holds the Prometheus instruments.
type Collector struct {
	simulations      prometheus.Counter
	unitRuns         prometheus.Counter
	warnings         prometheus.Counter
	sizingInfeasible prometheus.Counter

	purchaseCost  prometheus.Gauge
	installedCost prometheus.Gauge
	powerKW       prometheus.Gauge
}

// NewCollector builds and registers the instruments on reg. A nil reg
// uses the default registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		simulations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tagsim_simulations_total",
			Help: "Total number of completed simulation passes",
		}),
		unitRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tagsim_unit_runs_total",
			Help: "Total number of unit operation passes",
		}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tagsim_warnings_total",
			Help: "Total number of absorbed material-balance warnings",
		}),
		sizingInfeasible: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tagsim_sizing_infeasible_total",
			Help: "Total number of reactor sizing bound violations",
		}),
		purchaseCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tagsim_purchase_cost_usd",
			Help: "Total purchase cost of the last simulated pass",
		}),
		installedCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tagsim_installed_cost_usd",
			Help: "Total installed cost of the last simulated pass",
		}),
		powerKW: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tagsim_power_kw",
			Help: "Total electric load of the last simulated pass",
		}),
	}

	reg.MustRegister(c.simulations)
	reg.MustRegister(c.unitRuns)
	reg.MustRegister(c.warnings)
	reg.MustRegister(c.sizingInfeasible)
	reg.MustRegister(c.purchaseCost)
	reg.MustRegister(c.installedCost)
	reg.MustRegister(c.powerKW)

	return c
}

// UnitCompleted implements flowsheet.Observer.
func (c *Collector) UnitCompleted(unitID string, warnings int) {
	c.unitRuns.Inc()
	c.warnings.Add(float64(warnings))
}

// SimulationCompleted implements flowsheet.Observer.
func (c *Collector) SimulationCompleted(result flowsheet.Results) {
	c.simulations.Inc()
	c.purchaseCost.Set(result.TotalPurchase)
	c.installedCost.Set(result.TotalInstalled)
	c.powerKW.Set(result.TotalPowerKW)
}

// RecordSizingInfeasible counts a reactor-count bound violation.
func (c *Collector) RecordSizingInfeasible() {
	c.sizingInfeasible.Inc()
}

// StartServer exposes /metrics on the given port. Blocks.
func StartServer(port int) error {
	http.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, nil)
}
