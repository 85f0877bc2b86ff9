package pipeline

import (
	"errors"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/graph"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/organizer"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/quality"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/validator"
)

// Options selects the splitting strategy and failure policy for one run.
type Options struct {
	Strategy         organizer.Strategy
	DefaultNamespace string
	SizeBudget       int
	WarningsAsErrors bool
	// TolerateCycles reports dependency cycles as diagnostics in the
	// analysis report instead of a structural failure. Code generation is
	// still refused, so the run stays blocking.
	TolerateCycles bool
	Helpers        []models.Method
}

// Result is the complete outcome of one compilation: every stage's report
// plus the emitted files. Blocking mirrors the CLI exit status.
type Result struct {
	Validation *validator.Result
	Graph      *graph.DependencyGraph
	Analysis   *graph.AnalysisReport
	Files      map[string]*models.GeneratedFile
	Quality    *quality.Report
	Blocking   bool

	// Failure holds the structural error that stopped the run, when one did.
	Failure error
}

// Diagnostics returns every stage's diagnostics in pipeline order.
func (r *Result) Diagnostics() []models.Diagnostic {
	var all []models.Diagnostic
	if r.Validation != nil {
		all = append(all, r.Validation.All()...)
	}
	if r.Analysis != nil {
		all = append(all, r.Analysis.Diagnostics...)
	}
	return all
}

// Compile runs the full pipeline: compatibility validation, dependency
// analysis, file organization and quality validation. Each stage consumes
// the immutable output of the previous one; the run is a single-threaded
// sequence of pure transformations.
func Compile(units []*models.BehaviorUnit, opts Options) (*Result, error) {
	result := &Result{}

	result.Validation = validator.ValidateAll(units)
	if result.Validation.Blocking {
		logger.Debug("Compilation stopped: %d compatibility error(s)", result.Validation.ErrorCount())
		result.Blocking = true
		return result, nil
	}

	g, analysis := graph.Analyze(units)
	result.Graph = g
	result.Analysis = analysis

	if len(analysis.Cycles) > 0 {
		result.Blocking = true
		if opts.TolerateCycles {
			logger.Debug("Tolerating %d dependency cycle(s); reporting without code generation", len(analysis.Cycles))
			return result, nil
		}
		result.Failure = &graph.CycleError{Cycles: analysis.Cycles}
		logger.Debug("Compilation stopped: %d dependency cycle(s)", len(analysis.Cycles))
		return result, nil
	}

	org := organizer.New(organizer.Options{
		DefaultNamespace: opts.DefaultNamespace,
		SizeBudget:       opts.SizeBudget,
		Helpers:          opts.Helpers,
	})
	files, err := org.Split(units, g, opts.Strategy)
	if err != nil {
		var orgErr *organizer.OrganizationError
		if errors.As(err, &orgErr) {
			result.Blocking = true
			result.Failure = orgErr
			return result, nil
		}
		return nil, err
	}
	result.Files = files

	result.Quality = quality.Validate(files)
	if !result.Quality.Passed {
		result.Blocking = true
	}
	if opts.WarningsAsErrors {
		if result.Validation.WarningCount() > 0 || result.Quality.CountBySeverity(models.SeverityWarning) > 0 {
			result.Blocking = true
		}
	}

	logger.Debug("Compiled %d behaviour(s) into %d file(s)", len(units), len(files))
	return result, nil
}
