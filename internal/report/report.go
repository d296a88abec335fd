// ============================================================================
// Simulation Report
// ============================================================================
//
// Package: internal/report
// Purpose: Render a simulated campaign as a plain-text summary and persist
//          the numeric results as JSON
//
// The JSON writer is atomic (temp file + rename) so a crashed run never
// leaves a truncated results file behind.
//
// ============================================================================

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jahyunlee00299/tagsim/internal/flowsheet"
	"github.com/jahyunlee00299/tagsim/internal/tea"
	"github.com/jahyunlee00299/tagsim/pkg/types"
)

const bannerWidth = 70

func banner(b *strings.Builder, title string) {
	b.WriteString(strings.Repeat("=", bannerWidth))
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", bannerWidth))
	b.WriteString("\n")
}

// Render produces the full text report of one simulated pass. The
// analysis is optional; pass nil to report mass balance and costs only.
func Render(sys *flowsheet.System, res flowsheet.Results, analysis *tea.Analysis) string {
	var b strings.Builder
	banner(&b, fmt.Sprintf("SIMULATION REPORT: %s", sys.Name()))

	for _, u := range sys.Units() {
		fmt.Fprintf(&b, "\n[%s]\n", u.ID())
		writeDesign(&b, u.DesignResults())
		for _, item := range u.CostBreakdown() {
			fmt.Fprintf(&b, "  %-28s purchase $%.0f  installed $%.0f", item.Name, item.Purchase, item.Installed)
			if item.PowerKW != 0 {
				fmt.Fprintf(&b, "  %.1f kW", item.PowerKW)
			}
			b.WriteString("\n")
		}
		for _, out := range u.Outs() {
			fmt.Fprintf(&b, "  -> %s\n", out.String())
		}
	}

	b.WriteString("\n")
	banner(&b, "TOTALS")
	fmt.Fprintf(&b, "Purchase cost   $%.0f\n", res.TotalPurchase)
	fmt.Fprintf(&b, "Installed cost  $%.0f\n", res.TotalInstalled)
	fmt.Fprintf(&b, "Electric load   %.1f kW\n", res.TotalPowerKW)

	if len(res.Warnings) > 0 {
		b.WriteString("\n")
		banner(&b, fmt.Sprintf("WARNINGS (%d)", len(res.Warnings)))
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "- unit=%s stage=%s species=%s: %s\n", w.Unit, w.Stage, w.Species, w.Detail)
		}
	}

	if analysis != nil {
		b.WriteString("\n")
		banner(&b, "ECONOMICS")
		fmt.Fprintf(&b, "Fixed capital     $%s\n", analysis.FixedCapital.StringFixed(0))
		fmt.Fprintf(&b, "Working capital   $%s\n", analysis.WorkingCapital.StringFixed(0))
		fmt.Fprintf(&b, "Total investment  $%s\n", analysis.TotalCapital.StringFixed(0))
		fmt.Fprintf(&b, "Annual opex       $%s\n", analysis.TotalOpex.StringFixed(0))
		fmt.Fprintf(&b, "Annual revenue    $%s\n", analysis.Revenue.StringFixed(0))
		fmt.Fprintf(&b, "Annual profit     $%s\n", analysis.Profit.StringFixed(0))
		fmt.Fprintf(&b, "NPV               $%s\n", analysis.NPV.StringFixed(0))
		fmt.Fprintf(&b, "Payback           %.1f yr\n", analysis.PaybackYears)
		fmt.Fprintf(&b, "IRR               %.1f %%\n", analysis.IRR*100)
	}
	return b.String()
}

func writeDesign(b *strings.Builder, design types.DesignResults) {
	keys := make([]string, 0, len(design))
	for k := range design {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "  %-28s %.4g\n", k, design[k])
	}
}

// Results is the persisted shape of one simulated pass.
type Results struct {
	System    string                         `json:"system"`
	Design    map[string]types.DesignResults `json:"design"`
	Warnings  []types.Warning                `json:"warnings,omitempty"`
	Purchase  float64                        `json:"purchase_usd"`
	Installed float64                        `json:"installed_usd"`
	PowerKW   float64                        `json:"power_kw"`
}

// Collect gathers the persisted shape from a simulated system.
func Collect(sys *flowsheet.System, res flowsheet.Results) Results {
	design := make(map[string]types.DesignResults)
	for _, u := range sys.Units() {
		design[u.ID()] = u.DesignResults()
	}
	return Results{
		System:    sys.Name(),
		Design:    design,
		Warnings:  res.Warnings,
		Purchase:  res.TotalPurchase,
		Installed: res.TotalInstalled,
		PowerKW:   res.TotalPowerKW,
	}
}

// Save writes the results as indented JSON, atomically.
func Save(path string, r Results) error {
	jsonBytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("report: failed to marshal results: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, jsonBytes, 0644); err != nil {
		return fmt.Errorf("report: failed to write temp results: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("report: failed to rename results: %w", err)
	}
	return nil
}
