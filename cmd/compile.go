package cmd

import (
	"errors"
	"fmt"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/config"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/graph"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/loader"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/organizer"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/pipeline"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile behaviour descriptors into UdonSharp files",
	Long:  `Runs the full pipeline over the project's behaviour descriptors and writes the generated files to the configured output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		logger.Debug("compile called")

		written, err := runCompile()
		if err != nil {
			return err
		}
		logger.Info("Compilation succeeded, %d file(s) written", len(written))
		return nil
	},
}

// runCompile is shared between the compile and watch commands.
func runCompile() ([]string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	project, err := loader.Load(cfg.Behaviors)
	if err != nil {
		return nil, err
	}

	strategy, err := organizer.ParseStrategy(cfg.Codegen.Splitting.Strategy)
	if err != nil {
		return nil, err
	}

	namespace := cfg.Codegen.Namespace
	if project.Namespace != "" {
		namespace = project.Namespace
	}

	result, err := pipeline.Compile(project.Units, pipeline.Options{
		Strategy:         strategy,
		DefaultNamespace: namespace,
		SizeBudget:       cfg.Codegen.Splitting.SizeBudget,
		WarningsAsErrors: cfg.Compiler.WarningsAsErrors,
		TolerateCycles:   cfg.Compiler.ToleratedCycles,
		Helpers:          project.Helpers,
	})
	if err != nil {
		return nil, err
	}

	printDiagnostics(result.Diagnostics())
	if result.Quality != nil {
		printQualityIssues(result)
	}

	if result.Blocking {
		reportFailure(result)
		return nil, fmt.Errorf("compilation failed")
	}

	return pipeline.WriteFiles(result.Files, cfg.Codegen.Output)
}

func printDiagnostics(diags []models.Diagnostic) {
	for _, d := range diags {
		logFor(d.Severity)("[%s] %s: %s", d.Code, d.Behavior, d.Message)
		if d.Suggestion != "" {
			logger.Info("  suggestion: %s", d.Suggestion)
		}
		if d.FixExample != "" {
			logger.Info("  fix:\n%s", d.FixExample)
		}
	}
}

func printQualityIssues(result *pipeline.Result) {
	for _, issue := range result.Quality.Issues {
		logFor(issue.Severity)("[quality/%s] %s: %s", issue.Rule, issue.File, issue.Message)
	}
}

func logFor(severity models.Severity) func(format string, args ...interface{}) {
	switch severity {
	case models.SeverityError:
		return logger.Error
	case models.SeverityWarning:
		return logger.Warn
	default:
		return logger.Info
	}
}

func reportFailure(result *pipeline.Result) {
	var cycleErr *graph.CycleError
	if errors.As(result.Failure, &cycleErr) {
		for _, cycle := range cycleErr.Cycles {
			logger.Error("[%s cycle] %s", cycle.Severity, cycle.Description)
			for _, resolution := range cycle.Resolutions {
				logger.Info("  resolution: %s", resolution)
			}
		}
		return
	}

	var orgErr *organizer.OrganizationError
	if errors.As(result.Failure, &orgErr) {
		logger.Error("[%s] %s", orgErr.Kind, orgErr.Error())
		return
	}

	// Tolerated cycles block code generation without a structural failure.
	if result.Analysis != nil && len(result.Analysis.Cycles) > 0 {
		for _, cycle := range result.Analysis.Cycles {
			logger.Warn("[%s cycle] %s", cycle.Severity, cycle.Description)
			for _, resolution := range cycle.Resolutions {
				logger.Info("  resolution: %s", resolution)
			}
		}
		logger.Error("Code generation refused: dependency cycles present")
		return
	}

	if result.Validation != nil && result.Validation.Blocking {
		logger.Error("Compilation blocked by %d compatibility error(s)", result.Validation.ErrorCount())
	}
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
