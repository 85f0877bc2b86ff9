package graph

import (
	"errors"
	"testing"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
)

func unit(name string, deps ...string) *models.BehaviorUnit {
	return &models.BehaviorUnit{
		Name:                 name,
		DeclaredDependencies: deps,
		Implementation:       &models.ImplementationRecord{TraitName: "Behaviour", ClassName: name},
	}
}

func unitWithFieldRef(name, target string) *models.BehaviorUnit {
	u := unit(name)
	u.Fields = append(u.Fields, models.Field{
		Name: "other",
		Type: models.UnitRef(target),
	})
	return u
}

func TestBuildSimpleChain(t *testing.T) {
	units := []*models.BehaviorUnit{unit("A"), unit("B", "A")}
	g, diags := Build(units)

	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if len(g.Edges()) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(g.Edges()))
	}

	edge, ok := g.Edge("B", "A")
	if !ok {
		t.Fatal("expected edge B -> A")
	}
	if edge.Kind != models.EdgeExplicit {
		t.Errorf("expected explicit edge, got %s", edge.Kind)
	}
	if edge.Strength != models.StrengthHigh {
		t.Errorf("explicit edges should be high strength, got %s", edge.Strength)
	}
}

func TestTopologicalOrderSimpleChain(t *testing.T) {
	units := []*models.BehaviorUnit{unit("A"), unit("B", "A")}
	g, _ := Build(units)

	order, err := g.TopologicalOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"A", "B"}
	if len(order) != len(want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestTopologicalOrderRespectsEveryEdge(t *testing.T) {
	units := []*models.BehaviorUnit{
		unit("Hud", "Scores", "Players"),
		unit("Scores", "Players"),
		unit("Players"),
		unit("Doors"),
	}
	g, _ := Build(units)

	order, err := g.TopologicalOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != len(units) {
		t.Fatalf("expected %d units in order, got %d", len(units), len(order))
	}

	position := make(map[string]int)
	for i, name := range order {
		if _, dup := position[name]; dup {
			t.Fatalf("unit %s appears twice in order %v", name, order)
		}
		position[name] = i
	}
	for _, edge := range g.Edges() {
		if position[edge.To] >= position[edge.From] {
			t.Errorf("edge (%s -> %s) violated: %s must come before %s in %v",
				edge.From, edge.To, edge.To, edge.From, order)
		}
	}
}

func TestCyclicGraphReturnsNoOrder(t *testing.T) {
	units := []*models.BehaviorUnit{unit("A", "B"), unit("B", "A")}
	g, _ := Build(units)

	_, err := g.TopologicalOrder()
	if err == nil {
		t.Fatal("expected CycleError for cyclic graph")
	}
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	unitsOnCycles := cycleErr.UnitsOnCycles()
	if len(unitsOnCycles) != 2 {
		t.Fatalf("expected both units on the cycle, got %v", unitsOnCycles)
	}
}

func TestSelfDependencyIsInert(t *testing.T) {
	units := []*models.BehaviorUnit{unit("A", "A")}
	g, diags := Build(units)

	if len(diags) != 0 {
		t.Fatalf("self dependency should not produce diagnostics, got %v", diags)
	}
	if len(g.Edges()) != 0 {
		t.Fatalf("self dependency should not produce edges, got %v", g.Edges())
	}
	if cycles := g.DetectCycles(); len(cycles) != 0 {
		t.Fatalf("self dependency should not produce cycles, got %v", cycles)
	}
}

func TestMissingDependencyIsNonFatal(t *testing.T) {
	units := []*models.BehaviorUnit{unit("C", "Ghost"), unit("D", "C")}
	g, diags := Build(units)

	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", diags)
	}
	d := diags[0]
	if d.Code != models.CodeMissingDependency {
		t.Errorf("expected MissingDependency, got %s", d.Code)
	}
	if d.Behavior != "C" || d.Subject != "Ghost" {
		t.Errorf("diagnostic should name C and Ghost, got %s/%s", d.Behavior, d.Subject)
	}

	// The rest of the graph is unaffected.
	if len(g.Edges()) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(g.Edges()))
	}
	if _, ok := g.Edge("D", "C"); !ok {
		t.Error("expected edge D -> C to survive")
	}
}

func TestIncidentalEdgeFromFieldReference(t *testing.T) {
	units := []*models.BehaviorUnit{unit("Tracker"), unitWithFieldRef("Board", "Tracker")}
	g, _ := Build(units)

	edge, ok := g.Edge("Board", "Tracker")
	if !ok {
		t.Fatal("expected incidental edge Board -> Tracker")
	}
	if edge.Kind != models.EdgeIncidental {
		t.Errorf("expected incidental edge, got %s", edge.Kind)
	}
	if edge.Strength != models.StrengthMedium {
		t.Errorf("expected medium strength, got %s", edge.Strength)
	}
}

func TestNetworkingEndpointRaisesStrength(t *testing.T) {
	tracker := unit("Tracker")
	tracker.Fields = append(tracker.Fields, models.Field{
		Name:       "count",
		Type:       models.Primitive("i32"),
		Attributes: []models.FieldAttribute{{Kind: models.FieldAttrSynced}},
	})
	units := []*models.BehaviorUnit{tracker, unitWithFieldRef("Board", "Tracker")}
	g, _ := Build(units)

	edge, ok := g.Edge("Board", "Tracker")
	if !ok {
		t.Fatal("expected edge Board -> Tracker")
	}
	if edge.Strength != models.StrengthHigh {
		t.Errorf("networking endpoint should raise strength to high, got %s", edge.Strength)
	}
}

func TestExplicitDeclarationUpgradesIncidentalEdge(t *testing.T) {
	board := unitWithFieldRef("Board", "Tracker")
	board.DeclaredDependencies = []string{"Tracker"}
	units := []*models.BehaviorUnit{unit("Tracker"), board}
	g, _ := Build(units)

	if len(g.Edges()) != 1 {
		t.Fatalf("expected deduplicated edge set, got %v", g.Edges())
	}
	edge, _ := g.Edge("Board", "Tracker")
	if edge.Kind != models.EdgeExplicit {
		t.Errorf("explicit declaration should win, got %s", edge.Kind)
	}
}

func TestMetrics(t *testing.T) {
	units := []*models.BehaviorUnit{
		unit("A"),
		unit("B", "A"),
		unit("C", "A"),
		unit("D"),
	}
	g, _ := Build(units)
	m := g.Metrics()

	if m.TotalUnits != 4 || m.TotalEdges != 2 {
		t.Errorf("expected 4 units and 2 edges, got %d/%d", m.TotalUnits, m.TotalEdges)
	}
	if m.MaxInDegree != 2 {
		t.Errorf("A has two dependents, expected max in-degree 2, got %d", m.MaxInDegree)
	}
	if m.MaxOutDegree != 1 {
		t.Errorf("expected max out-degree 1, got %d", m.MaxOutDegree)
	}
	if m.MeanInDegree != 0.5 {
		t.Errorf("expected mean in-degree 0.5, got %f", m.MeanInDegree)
	}

	wantIndependent := []string{"B", "C", "D"}
	if len(m.IndependentUnits) != len(wantIndependent) {
		t.Errorf("expected independent units %v, got %v", wantIndependent, m.IndependentUnits)
	}
	wantLeaves := []string{"A", "D"}
	if len(m.LeafUnits) != len(wantLeaves) {
		t.Errorf("expected leaf units %v, got %v", wantLeaves, m.LeafUnits)
	}
}

func TestAnalyzeProducesOrderForAcyclicSet(t *testing.T) {
	units := []*models.BehaviorUnit{unit("A"), unit("B", "A")}
	_, report := Analyze(units)

	if len(report.Cycles) != 0 {
		t.Fatalf("expected no cycles, got %v", report.Cycles)
	}
	if len(report.Order) != 2 {
		t.Fatalf("expected full order, got %v", report.Order)
	}
	if report.Metrics.TotalUnits != 2 {
		t.Errorf("expected metrics for 2 units, got %d", report.Metrics.TotalUnits)
	}
}

func TestAnalyzeReportsCyclesWithoutOrder(t *testing.T) {
	units := []*models.BehaviorUnit{unit("A", "B"), unit("B", "A")}
	_, report := Analyze(units)

	if len(report.Cycles) == 0 {
		t.Fatal("expected cycles in report")
	}
	if len(report.Order) != 0 {
		t.Fatalf("cyclic set must not get a partial order, got %v", report.Order)
	}
}
