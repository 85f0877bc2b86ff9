package graph

import (
	"fmt"
	"sort"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
)

// DependencyGraph holds the directed dependency relation between behaviour
// units. It is rebuilt fully on every compilation run and read-only once
// built; downstream stages share it by reference.
type DependencyGraph struct {
	nodes   []string
	edges   []models.DependencyEdge
	forward map[string][]models.DependencyEdge
	reverse map[string][]models.DependencyEdge
}

func (g *DependencyGraph) Nodes() []string {
	nodes := make([]string, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

func (g *DependencyGraph) Edges() []models.DependencyEdge {
	edges := make([]models.DependencyEdge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// EdgesFrom returns the dependencies of a unit (outgoing edges).
func (g *DependencyGraph) EdgesFrom(name string) []models.DependencyEdge {
	return g.forward[name]
}

// EdgesTo returns the dependents of a unit (incoming edges).
func (g *DependencyGraph) EdgesTo(name string) []models.DependencyEdge {
	return g.reverse[name]
}

func (g *DependencyGraph) HasNode(name string) bool {
	_, ok := g.forward[name]
	return ok
}

func (g *DependencyGraph) Edge(from, to string) (models.DependencyEdge, bool) {
	for _, e := range g.forward[from] {
		if e.To == to {
			return e, true
		}
	}
	return models.DependencyEdge{}, false
}

// Build constructs the graph from a unit set. One explicit edge is emitted
// per declared dependency and one incidental edge per field type resolving to
// another known unit. Self edges are never recorded; edges to unknown targets
// become MissingDependency diagnostics and are dropped from the graph.
func Build(units []*models.BehaviorUnit) (*DependencyGraph, []models.Diagnostic) {
	index := models.NewUnitIndex(units)
	var diagnostics []models.Diagnostic

	g := &DependencyGraph{
		forward: make(map[string][]models.DependencyEdge, len(units)),
		reverse: make(map[string][]models.DependencyEdge, len(units)),
	}
	for _, unit := range units {
		g.nodes = append(g.nodes, unit.Name)
		g.forward[unit.Name] = nil
		g.reverse[unit.Name] = nil
	}

	type edgeKey struct{ from, to string }
	recorded := make(map[edgeKey]int) // index into g.edges

	addEdge := func(unit *models.BehaviorUnit, target string, kind models.EdgeKind) {
		if target == unit.Name {
			logger.Debug("Skipping self dependency on %s", target)
			return
		}
		dep, known := index[target]
		if !known {
			diagnostics = append(diagnostics, models.Diagnostic{
				Severity:   models.SeverityWarning,
				Code:       models.CodeMissingDependency,
				Behavior:   unit.Name,
				Subject:    target,
				Message:    fmt.Sprintf("behaviour '%s' depends on '%s', which is not part of the compiled set", unit.Name, target),
				Suggestion: fmt.Sprintf("add a behaviour named '%s' or remove the dependency", target),
			})
			return
		}

		strength := models.StrengthMedium
		if kind == models.EdgeExplicit || unit.HasNetworking() || dep.HasNetworking() {
			strength = models.StrengthHigh
		}

		key := edgeKey{unit.Name, target}
		if i, exists := recorded[key]; exists {
			// An explicit declaration upgrades an incidental edge.
			if kind == models.EdgeExplicit && g.edges[i].Kind == models.EdgeIncidental {
				g.edges[i].Kind = models.EdgeExplicit
				g.edges[i].Strength = models.StrengthHigh
				g.reindex()
			}
			return
		}

		edge := models.DependencyEdge{From: unit.Name, To: target, Kind: kind, Strength: strength}
		recorded[key] = len(g.edges)
		g.edges = append(g.edges, edge)
	}

	for _, unit := range units {
		for _, dep := range unit.DeclaredDependencies {
			addEdge(unit, dep, models.EdgeExplicit)
		}
		for _, field := range unit.Fields {
			for _, ref := range field.Type.ReferencedUnits() {
				addEdge(unit, ref, models.EdgeIncidental)
			}
		}
	}

	g.reindex()
	logger.Debug("Built dependency graph with %d nodes and %d edges", len(g.nodes), len(g.edges))
	return g, diagnostics
}

func (g *DependencyGraph) reindex() {
	for name := range g.forward {
		g.forward[name] = nil
	}
	for name := range g.reverse {
		g.reverse[name] = nil
	}
	for _, edge := range g.edges {
		g.forward[edge.From] = append(g.forward[edge.From], edge)
		g.reverse[edge.To] = append(g.reverse[edge.To], edge)
	}
}

// TopologicalOrder computes an initialization order with Kahn's algorithm:
// for every edge (from, to), to appears before from. Ordering is
// all-or-nothing: a cyclic graph yields a CycleError, never a partial order.
func (g *DependencyGraph) TopologicalOrder() ([]string, error) {
	depCount := make(map[string]int, len(g.nodes))
	var queue []string

	for _, name := range g.nodes {
		depCount[name] = len(g.forward[name])
		if depCount[name] == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		var released []string
		for _, edge := range g.reverse[current] {
			depCount[edge.From]--
			if depCount[edge.From] == 0 {
				released = append(released, edge.From)
			}
		}
		sort.Strings(released)
		queue = append(queue, released...)
	}

	if len(order) != len(g.nodes) {
		cycles := g.DetectCycles()
		return nil, &CycleError{Cycles: cycles}
	}

	return order, nil
}

// GraphMetrics summarizes the dependency structure of one compiled set.
type GraphMetrics struct {
	TotalUnits       int      `json:"total_units" yaml:"total_units"`
	TotalEdges       int      `json:"total_edges" yaml:"total_edges"`
	MaxInDegree      int      `json:"max_in_degree" yaml:"max_in_degree"`
	MaxOutDegree     int      `json:"max_out_degree" yaml:"max_out_degree"`
	MeanInDegree     float64  `json:"mean_in_degree" yaml:"mean_in_degree"`
	IndependentUnits []string `json:"independent_units" yaml:"independent_units"`
	LeafUnits        []string `json:"leaf_units" yaml:"leaf_units"`
}

func (g *DependencyGraph) Metrics() GraphMetrics {
	metrics := GraphMetrics{
		TotalUnits: len(g.nodes),
		TotalEdges: len(g.edges),
	}

	for _, name := range g.nodes {
		in := len(g.reverse[name])
		out := len(g.forward[name])
		if in > metrics.MaxInDegree {
			metrics.MaxInDegree = in
		}
		if out > metrics.MaxOutDegree {
			metrics.MaxOutDegree = out
		}
		if in == 0 {
			metrics.IndependentUnits = append(metrics.IndependentUnits, name)
		}
		if out == 0 {
			metrics.LeafUnits = append(metrics.LeafUnits, name)
		}
	}
	if len(g.nodes) > 0 {
		metrics.MeanInDegree = float64(len(g.edges)) / float64(len(g.nodes))
	}
	sort.Strings(metrics.IndependentUnits)
	sort.Strings(metrics.LeafUnits)
	return metrics
}
