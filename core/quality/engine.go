package quality

import (
	"fmt"
	"sort"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
)

// Issue is one quality finding in an emitted file.
type Issue struct {
	Rule     string          `json:"rule" yaml:"rule"`
	File     string          `json:"file" yaml:"file"`
	Line     int             `json:"line,omitempty" yaml:"line,omitempty"`
	Severity models.Severity `json:"severity" yaml:"severity"`
	Message  string          `json:"message" yaml:"message"`
}

// Report aggregates quality findings across every emitted file. Passed is
// true when no Error-severity issue exists anywhere.
type Report struct {
	Issues        []Issue        `json:"issues" yaml:"issues"`
	PerFileCounts map[string]int `json:"per_file_counts" yaml:"per_file_counts"`
	Passed        bool           `json:"passed" yaml:"passed"`
}

func (r *Report) CountBySeverity(severity models.Severity) int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			count++
		}
	}
	return count
}

// Validate runs the default rule set over the emitted files. Non-fatal by
// default: callers choose whether issues block output.
func Validate(files map[string]*models.GeneratedFile) *Report {
	return ValidateWith(DefaultRules(), files)
}

func ValidateWith(rules []Rule, files map[string]*models.GeneratedFile) *Report {
	report := &Report{
		PerFileCounts: make(map[string]int, len(files)),
		Passed:        true,
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
		report.PerFileCounts[name] = 0
	}
	sort.Strings(names)

	for _, rule := range rules {
		for _, name := range names {
			file := files[name]
			if !rule.Applies(file) {
				continue
			}
			report.add(rule.Check(file))
		}
		if setRule, ok := rule.(FileSetRule); ok {
			report.add(setRule.CheckAll(files))
		}
	}

	// Annotate each file with its own findings so downstream consumers see
	// them next to the text.
	for _, issue := range report.Issues {
		if file, ok := files[issue.File]; ok {
			file.AppendAnnotation(fmt.Sprintf("[%s] %s: %s", issue.Severity, issue.Rule, issue.Message))
		}
	}

	logger.Debug("Quality validation: %d issue(s) across %d file(s), passed=%t",
		len(report.Issues), len(files), report.Passed)
	return report
}

func (r *Report) add(issues []Issue) {
	for _, issue := range issues {
		r.Issues = append(r.Issues, issue)
		r.PerFileCounts[issue.File]++
		if issue.Severity == models.SeverityError {
			r.Passed = false
		}
	}
}
