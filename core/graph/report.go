package graph

import (
	"fmt"
	"strings"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
)

// AnalysisReport is the dependency analysis handed to the reporting
// collaborator. It carries everything needed to render a message without
// re-deriving it: edges, cycle paths, ordering and per-unit diagnostics.
type AnalysisReport struct {
	Metrics     GraphMetrics            `json:"metrics" yaml:"metrics"`
	Edges       []models.DependencyEdge `json:"edges" yaml:"edges"`
	Cycles      []Cycle                 `json:"cycles,omitempty" yaml:"cycles,omitempty"`
	Order       []string                `json:"initialization_order,omitempty" yaml:"initialization_order,omitempty"`
	Diagnostics []models.Diagnostic     `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Analyze builds the graph for a unit set and assembles the full report.
// A cyclic graph is reported, not failed: the caller decides whether the
// missing order is fatal.
func Analyze(units []*models.BehaviorUnit) (*DependencyGraph, *AnalysisReport) {
	g, diagnostics := Build(units)

	report := &AnalysisReport{
		Metrics:     g.Metrics(),
		Edges:       g.Edges(),
		Diagnostics: diagnostics,
	}

	report.Cycles = g.DetectCycles()
	if len(report.Cycles) == 0 {
		if order, err := g.TopologicalOrder(); err == nil {
			report.Order = order
		}
	}

	return g, report
}

// RenderMarkdown renders the report for the documentation output channel.
func (r *AnalysisReport) RenderMarkdown() string {
	var b strings.Builder
	b.WriteString("# Dependency Analysis\n\n")
	fmt.Fprintf(&b, "- Units: %d\n", r.Metrics.TotalUnits)
	fmt.Fprintf(&b, "- Edges: %d\n", r.Metrics.TotalEdges)
	fmt.Fprintf(&b, "- Max in-degree: %d, max out-degree: %d, mean in-degree: %.2f\n",
		r.Metrics.MaxInDegree, r.Metrics.MaxOutDegree, r.Metrics.MeanInDegree)
	fmt.Fprintf(&b, "- Independent units: %s\n", joinOrNone(r.Metrics.IndependentUnits))
	fmt.Fprintf(&b, "- Leaf units: %s\n", joinOrNone(r.Metrics.LeafUnits))

	if len(r.Order) > 0 {
		b.WriteString("\n## Initialization order\n\n")
		for i, unit := range r.Order {
			fmt.Fprintf(&b, "%d. %s\n", i+1, unit)
		}
	}

	if len(r.Cycles) > 0 {
		b.WriteString("\n## Cycles\n\n")
		for _, c := range r.Cycles {
			fmt.Fprintf(&b, "- **%s**: %s\n", c.Severity, c.Description)
			for _, res := range c.Resolutions {
				fmt.Fprintf(&b, "  - %s\n", res)
			}
		}
	}

	if len(r.Edges) > 0 {
		b.WriteString("\n## Edges\n\n")
		b.WriteString("| From | To | Kind | Strength |\n|---|---|---|---|\n")
		for _, e := range r.Edges {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", e.From, e.To, e.Kind, e.Strength)
		}
	}

	if len(r.Diagnostics) > 0 {
		b.WriteString("\n## Diagnostics\n\n")
		for _, d := range r.Diagnostics {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", d.Severity, d.Code, d.Message)
		}
	}

	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
