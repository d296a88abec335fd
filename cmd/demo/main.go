package main

// Demo: assemble and simulate the validated pilot campaign on both
// routes, print the reports, and compare profitability at the default
// selling price.

import (
	"fmt"
	"log"

	"github.com/jahyunlee00299/tagsim/internal/report"
	"github.com/jahyunlee00299/tagsim/internal/scenario"
	"github.com/jahyunlee00299/tagsim/internal/tea"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
)

func main() {
	reg := thermo.Default()
	preset, err := scenario.Lookup("pilot-1000L")
	if err != nil {
		log.Fatalf("Failed to look up preset: %v", err)
	}

	for _, route := range []string{"A", "B"} {
		var campaign *scenario.Campaign
		if route == "A" {
			campaign, err = scenario.BuildRouteA(preset, reg)
		} else {
			campaign, err = scenario.BuildRouteB(preset, reg)
		}
		if err != nil {
			log.Fatalf("Failed to assemble route %s: %v", route, err)
		}

		res, err := campaign.System.Simulate()
		if err != nil {
			log.Fatalf("Simulation failed on route %s: %v", route, err)
		}

		analysis, err := tea.Analyze(tea.DefaultParameters(), campaign.TEAInputs(res))
		if err != nil {
			log.Fatalf("Analysis failed on route %s: %v", route, err)
		}

		fmt.Print(report.Render(campaign.System, res, &analysis))
		fmt.Println()
	}
}
