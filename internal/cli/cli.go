// ============================================================================
// Tagsim CLI - Command Line Interface
// ============================================================================
//
// Package: internal/cli
// File: cli.go
// Purpose: Provides the command line interface based on the Cobra framework
//
// Command Structure:
//   tagsim                          # Root command
//   ├── run                         # Simulate a campaign
//   │   ├── --preset, -p            # Named operating point
//   │   ├── --route                 # A (purchased sugar) or B (hydrolysis)
//   │   └── --out, -o               # Save results JSON
//   ├── tea                         # Simulate + profitability + price sweep
//   ├── presets                     # List the named operating points
//   ├── --config, -c                # YAML config file
//   ├── --version                   # Display version information
//   └── --help                      # Display help information
//
// Configuration Management:
//   YAML config file (default: configs/default.yaml) with sections for
//   the simulation (preset, route), the economic assumptions, the price
//   sweep grid, and the metrics endpoint.
//
// ============================================================================

package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jahyunlee00299/tagsim/internal/flowsheet"
	"github.com/jahyunlee00299/tagsim/internal/metrics"
	"github.com/jahyunlee00299/tagsim/internal/report"
	"github.com/jahyunlee00299/tagsim/internal/scenario"
	"github.com/jahyunlee00299/tagsim/internal/sweep"
	"github.com/jahyunlee00299/tagsim/internal/tea"
	"github.com/jahyunlee00299/tagsim/internal/thermo"
)

// Config is the complete configuration structure, mapped from the YAML
// config file.
type Config struct {
	Simulation struct {
		Preset string `yaml:"preset"`
		Route  string `yaml:"route"`
	} `yaml:"simulation"`

	Economics struct {
		TagatosePrice  float64 `yaml:"tagatose_price"`
		ProjectYears   int     `yaml:"project_years"`
		OperatingHours float64 `yaml:"operating_hours"`
		DiscountRate   float64 `yaml:"discount_rate"`
	} `yaml:"economics"`

	Sweep struct {
		Low     float64 `yaml:"low"`
		High    float64 `yaml:"high"`
		Step    float64 `yaml:"step"`
		Workers int     `yaml:"workers"`
	} `yaml:"sweep"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`
}

var configFile string

// BuildCLI assembles the root command.
func BuildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tagsim",
		Short: "Tagsim: D-galactose to D-tagatose process simulator",
		Long: `Tagsim simulates the whole-cell D-tagatose process:
- three-stage bioconversion with oxygen-gated cofactor regeneration
- batch reactor train sizing and NREL equipment costing
- downstream purification to a dried crystalline product
- techno-economic analysis with selling-price sensitivity`,
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "configs/default.yaml", "config file path")

	rootCmd.AddCommand(buildRunCommand())
	rootCmd.AddCommand(buildTeaCommand())
	rootCmd.AddCommand(buildPresetsCommand())

	return rootCmd
}

func buildRunCommand() *cobra.Command {
	var presetName string
	var route string
	var outPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a campaign and print the report",
		Long:  "Assemble the selected preset and route, run one simulation pass, and print the mass balance, design and cost report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCampaign(presetName, route, outPath, false)
		},
	}

	cmd.Flags().StringVarP(&presetName, "preset", "p", "", "preset name (overrides config)")
	cmd.Flags().StringVar(&route, "route", "", "process route: A or B (overrides config)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write results JSON to this path")

	return cmd
}

func buildTeaCommand() *cobra.Command {
	var presetName string
	var route string

	cmd := &cobra.Command{
		Use:   "tea",
		Short: "Simulate and run the techno-economic analysis",
		Long:  "Run one simulation pass, evaluate profitability at the configured selling price, and sweep the price grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCampaign(presetName, route, "", true)
		},
	}

	cmd.Flags().StringVarP(&presetName, "preset", "p", "", "preset name (overrides config)")
	cmd.Flags().StringVar(&route, "route", "", "process route: A or B (overrides config)")

	return cmd
}

func buildPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named operating points",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range scenario.Presets() {
				fmt.Printf("%-20s %s\n", p.Name, p.Description)
				fmt.Printf("  %-18s %.0f L, %.0f+%.0f hr, %.0f g/L galactose, conversion %.0f%%, %s aeration\n",
					"", p.VolumeL, p.AnaerobicHours, p.AerobicHours, p.GalactoseGPerL, p.Conversion*100, p.Aeration)
			}
			return nil
		},
	}
}

func runCampaign(presetName, route, outPath string, withTEA bool) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if presetName == "" {
		presetName = cfg.Simulation.Preset
	}
	if presetName == "" {
		presetName = "pilot-1000L"
	}
	if route == "" {
		route = cfg.Simulation.Route
	}
	if route == "" {
		route = "A"
	}

	preset, err := scenario.Lookup(presetName)
	if err != nil {
		return err
	}

	reg := thermo.Default()

	var campaign *scenario.Campaign
	switch route {
	case "A", "a":
		campaign, err = scenario.BuildRouteA(preset, reg)
	case "B", "b":
		campaign, err = scenario.BuildRouteB(preset, reg)
	default:
		return fmt.Errorf("unknown route %q (want A or B)", route)
	}
	if err != nil {
		return fmt.Errorf("failed to assemble campaign: %w", err)
	}

	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector(nil)
		campaign.System.SetObserver(collector)
		go func() {
			log.Printf("Starting metrics server on :%d\n", cfg.Metrics.Port)
			if err := metrics.StartServer(cfg.Metrics.Port); err != nil {
				log.Printf("Metrics server error: %v\n", err)
			}
		}()
	}

	log.Printf("Simulating %s\n", campaign.Describe())
	res, err := campaign.System.Simulate()
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	var analysis *tea.Analysis
	if withTEA {
		params := teaParameters(cfg)
		a, err := tea.Analyze(params, campaign.TEAInputs(res))
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		analysis = &a
	}

	fmt.Print(report.Render(campaign.System, res, analysis))

	if withTEA {
		if err := printSweep(cfg, campaign, res); err != nil {
			return err
		}
	}
	if outPath != "" {
		if err := report.Save(outPath, report.Collect(campaign.System, res)); err != nil {
			return err
		}
		log.Printf("Results saved to %s\n", outPath)
	}
	return nil
}

func teaParameters(cfg *Config) tea.Parameters {
	params := tea.DefaultParameters()
	if cfg.Economics.TagatosePrice > 0 {
		params.TagatosePrice = decimal.NewFromFloat(cfg.Economics.TagatosePrice)
	}
	if cfg.Economics.ProjectYears > 0 {
		params.ProjectYears = cfg.Economics.ProjectYears
	}
	if cfg.Economics.OperatingHours > 0 {
		params.OperatingHours = cfg.Economics.OperatingHours
	}
	if cfg.Economics.DiscountRate > 0 {
		params.DiscountRate = decimal.NewFromFloat(cfg.Economics.DiscountRate)
	}
	return params
}

func printSweep(cfg *Config, campaign *scenario.Campaign, res flowsheet.Results) error {
	low, high, step := cfg.Sweep.Low, cfg.Sweep.High, cfg.Sweep.Step
	if step <= 0 {
		low, high, step = 3.0, 8.0, 0.5
	}
	prices, err := sweep.Grid(low, high, step)
	if err != nil {
		return fmt.Errorf("bad sweep grid: %w", err)
	}
	points, err := sweep.Run(teaParameters(cfg), campaign.TEAInputs(res), prices, cfg.Sweep.Workers)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	fmt.Println("\nPrice sensitivity (USD/kg bulk):")
	fmt.Printf("%-10s %-16s %-10s %s\n", "price", "NPV", "IRR", "payback")
	for _, pt := range points {
		fmt.Printf("%-10s $%-15s %-10.1f %.1f yr\n",
			pt.Price.StringFixed(2),
			pt.Analysis.NPV.StringFixed(0),
			pt.Analysis.IRR*100,
			pt.Analysis.PaybackYears)
	}
	if be, ok := sweep.BreakEven(points); ok {
		fmt.Printf("Break-even price: $%s/kg\n", be.StringFixed(2))
	} else {
		fmt.Println("No break-even price on the grid")
	}
	return nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// A missing config is not fatal: every field has a flag or a
		// default, so run with the zero config.
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}
