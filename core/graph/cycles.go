package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
)

type CycleSeverity int

const (
	CycleMedium CycleSeverity = iota
	CycleHigh
	CycleCritical
)

func (s CycleSeverity) String() string {
	switch s {
	case CycleCritical:
		return "critical"
	case CycleHigh:
		return "high"
	default:
		return "medium"
	}
}

// Cycle is one detected circular dependency. Path is closed: the repeated
// node appears again at the end.
type Cycle struct {
	Path        []string                `json:"path" yaml:"path"`
	Edges       []models.DependencyEdge `json:"edges" yaml:"edges"`
	Severity    CycleSeverity           `json:"severity" yaml:"severity"`
	Description string                  `json:"description" yaml:"description"`
	Resolutions []string                `json:"resolutions" yaml:"resolutions"`
}

// Units returns the distinct units on the cycle.
func (c Cycle) Units() []string {
	if len(c.Path) == 0 {
		return nil
	}
	return c.Path[:len(c.Path)-1]
}

func (c Cycle) Contains(unit string) bool {
	for _, u := range c.Units() {
		if u == unit {
			return true
		}
	}
	return false
}

// CycleError is the typed, fatal result of ordering or organizing a cyclic
// unit set.
type CycleError struct {
	Cycles []Cycle
}

func (e *CycleError) Error() string {
	if len(e.Cycles) == 0 {
		return "dependency graph contains cycles"
	}
	var paths []string
	for _, c := range e.Cycles {
		paths = append(paths, strings.Join(c.Path, " -> "))
	}
	return fmt.Sprintf("dependency graph contains %d cycle(s): %s", len(e.Cycles), strings.Join(paths, "; "))
}

// UnitsOnCycles returns every unit participating in any cycle, sorted.
func (e *CycleError) UnitsOnCycles() []string {
	seen := make(map[string]bool)
	var units []string
	for _, c := range e.Cycles {
		for _, u := range c.Units() {
			if !seen[u] {
				seen[u] = true
				units = append(units, u)
			}
		}
	}
	sort.Strings(units)
	return units
}

// DetectCycles finds circular dependencies with a depth-first traversal and
// a recursion stack. Revisiting a node already on the stack closes a cycle:
// the suffix of the current path from that node, with the node re-appended.
// Every start node not yet fully visited is explored.
func (g *DependencyGraph) DetectCycles() []Cycle {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	seenPaths := make(map[string]bool)
	var cycles []Cycle

	starts := make([]string, len(g.nodes))
	copy(starts, g.nodes)
	sort.Strings(starts)

	var path []string
	var dfs func(node string)
	dfs = func(node string) {
		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, edge := range g.forward[node] {
			if !visited[edge.To] {
				dfs(edge.To)
			} else if onStack[edge.To] {
				if cycle, ok := g.extractCycle(path, edge.To); ok {
					key := strings.Join(cycle.Path, "\x00")
					if !seenPaths[key] {
						seenPaths[key] = true
						cycles = append(cycles, cycle)
					}
				}
			}
		}

		onStack[node] = false
		path = path[:len(path)-1]
	}

	for _, start := range starts {
		if !visited[start] {
			dfs(start)
		}
	}

	if len(cycles) > 0 {
		logger.Debug("Detected %d dependency cycle(s)", len(cycles))
	}
	return cycles
}

func (g *DependencyGraph) extractCycle(path []string, repeated string) (Cycle, bool) {
	start := -1
	for i, node := range path {
		if node == repeated {
			start = i
			break
		}
	}
	if start < 0 {
		return Cycle{}, false
	}

	closed := make([]string, 0, len(path)-start+1)
	closed = append(closed, path[start:]...)
	closed = append(closed, repeated)

	var edges []models.DependencyEdge
	for i := 0; i < len(closed)-1; i++ {
		if edge, ok := g.Edge(closed[i], closed[i+1]); ok {
			edges = append(edges, edge)
		}
	}

	cycle := Cycle{
		Path:     closed,
		Edges:    edges,
		Severity: classifySeverity(edges),
	}
	cycle.Description = describeCycle(cycle)
	cycle.Resolutions = resolutionStrategies(cycle)
	return cycle, true
}

// classifySeverity grades a cycle: Critical when any edge was declared by the
// author, High when the coupling is purely structural, Medium otherwise.
func classifySeverity(edges []models.DependencyEdge) CycleSeverity {
	hasExplicit := false
	hasIncidental := false
	for _, edge := range edges {
		switch edge.Kind {
		case models.EdgeExplicit:
			hasExplicit = true
		case models.EdgeIncidental:
			hasIncidental = true
		}
	}
	if hasExplicit {
		return CycleCritical
	}
	if hasIncidental {
		return CycleHigh
	}
	return CycleMedium
}

func describeCycle(c Cycle) string {
	units := c.Units()
	kind := "structural references between field types"
	for _, edge := range c.Edges {
		if edge.Kind == models.EdgeExplicit {
			kind = "explicitly declared dependencies"
			break
		}
	}
	return fmt.Sprintf(
		"%d behaviours form a dependency cycle (%s) through %s; no initialization order exists for them",
		len(units), strings.Join(c.Path, " -> "), kind,
	)
}

func resolutionStrategies(c Cycle) []string {
	units := c.Units()
	strategies := []string{
		fmt.Sprintf("merge %s into a single behaviour", strings.Join(units, " and ")),
		"introduce a mediator behaviour that both sides depend on instead of each other",
		"move the shared state into a separate behaviour referenced by every unit on the cycle",
	}
	for _, edge := range c.Edges {
		if edge.Kind == models.EdgeIncidental {
			strategies = append(strategies,
				fmt.Sprintf("replace the %s -> %s field reference with a custom event dispatch (weak coupling)", edge.From, edge.To))
			break
		}
	}
	return strategies
}
