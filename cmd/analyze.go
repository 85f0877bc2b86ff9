package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/config"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/graph"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/loader"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/spf13/cobra"
)

var analyzeFormat string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report the dependency structure of the project",
	Long:  `Builds the dependency graph for the project's behaviours and reports edges, cycles, the initialization order and graph metrics. Cyclic graphs are reported, not failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		logger.Debug("analyze called")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		project, err := loader.Load(cfg.Behaviors)
		if err != nil {
			return err
		}

		_, report := graph.Analyze(project.Units)

		switch analyzeFormat {
		case "json":
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render report: %w", err)
			}
			fmt.Println(string(data))
		case "markdown":
			fmt.Print(report.RenderMarkdown())
		case "console":
			printConsoleReport(report)
		default:
			return fmt.Errorf("unknown format %q (want console, json or markdown)", analyzeFormat)
		}

		return nil
	},
}

func printConsoleReport(report *graph.AnalysisReport) {
	logger.Info("Units: %d, edges: %d", report.Metrics.TotalUnits, report.Metrics.TotalEdges)
	logger.Info("Max in-degree: %d, max out-degree: %d, mean in-degree: %.2f",
		report.Metrics.MaxInDegree, report.Metrics.MaxOutDegree, report.Metrics.MeanInDegree)

	for _, edge := range report.Edges {
		logger.Info("  %s -> %s (%s, %s)", edge.From, edge.To, edge.Kind, edge.Strength)
	}

	if len(report.Order) > 0 {
		logger.Info("Initialization order:")
		for i, unit := range report.Order {
			logger.Info("  %d. %s", i+1, unit)
		}
	}

	for _, cycle := range report.Cycles {
		logger.Warn("[%s cycle] %s", cycle.Severity, cycle.Description)
		for _, resolution := range cycle.Resolutions {
			logger.Info("  resolution: %s", resolution)
		}
	}

	printDiagnostics(report.Diagnostics)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "console", "Output format: console, json or markdown")
}
