package organizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/emitter"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/graph"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/shared"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/usharp"
)

type Strategy int

const (
	// ByUnit emits one file per unit; standalone helpers go to a shared
	// utility file.
	ByUnit Strategy = iota
	// ByNamespace groups units by declared or default namespace.
	ByNamespace
	// BySize appends units to the current file until the size budget is
	// exceeded. A single unit is never split across files.
	BySize
)

func (s Strategy) String() string {
	switch s {
	case ByNamespace:
		return "by-namespace"
	case BySize:
		return "by-size"
	default:
		return "by-unit"
	}
}

func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "by-unit", "":
		return ByUnit, nil
	case "by-namespace":
		return ByNamespace, nil
	case "by-size":
		return BySize, nil
	default:
		return ByUnit, fmt.Errorf("unknown splitting strategy %q (want by-unit, by-namespace or by-size)", s)
	}
}

// Structural size weights for the by-size strategy, roughly calibrated to
// emitted line counts.
const (
	ClassOverheadWeight = 12
	MethodWeight        = 8
	FieldWeight         = 3
)

// EstimateSize is the structural size estimate of one unit.
func EstimateSize(unit *models.BehaviorUnit) int {
	size := ClassOverheadWeight
	size += MethodWeight * len(unit.Methods)
	size += FieldWeight * len(unit.Fields)
	for _, method := range unit.Methods {
		size += len(method.Body)
	}
	return size
}

const SharedHelpersUnit = "SharedUtilities"

type Options struct {
	DefaultNamespace string
	SizeBudget       int
	// Helpers are top-level functions that belong to no unit.
	Helpers []models.Method
}

type Organizer struct {
	opts    Options
	emitter *emitter.Emitter
}

func New(opts Options) *Organizer {
	if opts.DefaultNamespace == "" {
		opts.DefaultNamespace = "UdonGenerated"
	}
	if opts.SizeBudget <= 0 {
		opts.SizeBudget = 400
	}
	return &Organizer{opts: opts, emitter: emitter.New()}
}

// Split partitions the validated unit set into output files under the chosen
// strategy, emits each file's text and computes its import set. The unit set
// must already be acyclic; Split re-checks and fails fast without emitting
// anything.
func (o *Organizer) Split(units []*models.BehaviorUnit, g *graph.DependencyGraph, strategy Strategy) (map[string]*models.GeneratedFile, error) {
	if cycles := g.DetectCycles(); len(cycles) > 0 {
		err := &OrganizationError{Kind: ErrCircularDependency, Cycles: cycles}
		err.Units = (&graph.CycleError{Cycles: cycles}).UnitsOnCycles()
		return nil, err
	}

	index := models.NewUnitIndex(units)
	if err := checkResolvable(units, index); err != nil {
		return nil, err
	}

	var groups []fileGroup
	var err error
	switch strategy {
	case ByUnit:
		groups = o.splitByUnit(units)
	case ByNamespace:
		groups = o.splitByNamespace(units)
	case BySize:
		groups, err = o.splitBySize(units, g)
		if err != nil {
			return nil, err
		}
	}

	files, err := o.assemble(groups, g, index)
	if err != nil {
		return nil, err
	}

	if err := checkFileCycles(files); err != nil {
		return nil, err
	}

	logger.Debug("Organized %d unit(s) into %d file(s) using %s", len(units), len(files), strategy)
	return files, nil
}

type fileGroup struct {
	name      string
	namespace string
	units     []*models.BehaviorUnit
	helpers   []models.Method
}

func (o *Organizer) namespaceFor(unit *models.BehaviorUnit) string {
	if unit.Namespace != "" {
		return unit.Namespace
	}
	return o.opts.DefaultNamespace
}

func (o *Organizer) splitByUnit(units []*models.BehaviorUnit) []fileGroup {
	var groups []fileGroup
	for _, unit := range units {
		groups = append(groups, fileGroup{
			name:      shared.ToPascal(unit.Name) + ".cs",
			namespace: o.namespaceFor(unit),
			units:     []*models.BehaviorUnit{unit},
		})
	}
	if len(o.opts.Helpers) > 0 {
		groups = append(groups, fileGroup{
			name:      SharedHelpersUnit + ".cs",
			namespace: o.opts.DefaultNamespace,
			helpers:   o.opts.Helpers,
		})
	}
	return groups
}

func (o *Organizer) splitByNamespace(units []*models.BehaviorUnit) []fileGroup {
	byNamespace := make(map[string][]*models.BehaviorUnit)
	var order []string
	for _, unit := range units {
		ns := o.namespaceFor(unit)
		if _, seen := byNamespace[ns]; !seen {
			order = append(order, ns)
		}
		byNamespace[ns] = append(byNamespace[ns], unit)
	}
	sort.Strings(order)

	var groups []fileGroup
	for _, ns := range order {
		group := fileGroup{
			name:      shared.ToPascal(ns) + ".cs",
			namespace: ns,
			units:     byNamespace[ns],
		}
		if ns == o.opts.DefaultNamespace {
			group.helpers = o.opts.Helpers
		}
		groups = append(groups, group)
	}
	if len(o.opts.Helpers) > 0 && len(byNamespace[o.opts.DefaultNamespace]) == 0 {
		groups = append(groups, fileGroup{
			name:      SharedHelpersUnit + ".cs",
			namespace: o.opts.DefaultNamespace,
			helpers:   o.opts.Helpers,
		})
	}
	return groups
}

// splitBySize walks units in topological order so that every file only
// depends on itself or earlier files, which keeps the file-level reference
// graph acyclic by construction.
func (o *Organizer) splitBySize(units []*models.BehaviorUnit, g *graph.DependencyGraph) ([]fileGroup, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		cycleErr := err.(*graph.CycleError)
		return nil, &OrganizationError{
			Kind:   ErrCircularDependency,
			Cycles: cycleErr.Cycles,
			Units:  cycleErr.UnitsOnCycles(),
		}
	}
	index := models.NewUnitIndex(units)

	var groups []fileGroup
	current := fileGroup{namespace: o.opts.DefaultNamespace}
	currentSize := 0
	flush := func() {
		if len(current.units) == 0 {
			return
		}
		current.name = fmt.Sprintf("Behaviours%d.cs", len(groups)+1)
		groups = append(groups, current)
		current = fileGroup{namespace: o.opts.DefaultNamespace}
		currentSize = 0
	}

	for _, name := range order {
		unit := index[name]
		size := EstimateSize(unit)
		if currentSize > 0 && currentSize+size > o.opts.SizeBudget {
			flush()
		}
		current.units = append(current.units, unit)
		currentSize += size
	}
	flush()

	if len(o.opts.Helpers) > 0 {
		groups = append(groups, fileGroup{
			name:      SharedHelpersUnit + ".cs",
			namespace: o.opts.DefaultNamespace,
			helpers:   o.opts.Helpers,
		})
	}
	return groups, nil
}

// checkResolvable verifies every nominal type reference resolves to a known
// unit. Built-ins live in their own TypeRef variant, so any unit reference
// left unresolved here is fatal.
func checkResolvable(units []*models.BehaviorUnit, index models.UnitIndex) error {
	for _, unit := range units {
		for _, ref := range unit.ReferencedUnits() {
			if _, ok := index[ref]; !ok {
				return &OrganizationError{
					Kind:      ErrUnresolvedReference,
					Behavior:  unit.Name,
					Reference: ref,
				}
			}
		}
	}
	return nil
}

func (o *Organizer) assemble(groups []fileGroup, g *graph.DependencyGraph, index models.UnitIndex) (map[string]*models.GeneratedFile, error) {
	// Pascal-folding can map distinct namespaces (game_util, GameUtil) to
	// the same file name. Suffix later collisions so no group silently
	// overwrites an earlier one; groups arrive in sorted order, so the
	// suffixes are deterministic.
	taken := make(map[string]bool, len(groups))
	for i := range groups {
		base := strings.TrimSuffix(groups[i].name, ".cs")
		name := groups[i].name
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s%d.cs", base, n)
		}
		taken[name] = true
		groups[i].name = name
	}

	fileOf := make(map[string]string)      // unit -> file name
	namespaceOf := make(map[string]string) // unit -> namespace
	for _, group := range groups {
		for _, unit := range group.units {
			fileOf[unit.Name] = group.name
			namespaceOf[unit.Name] = group.namespace
		}
	}

	files := make(map[string]*models.GeneratedFile, len(groups))
	for _, group := range groups {
		file := models.NewGeneratedFile(group.name, group.namespace)

		imports := append([]string{}, usharp.MandatoryImports...)
		var classBodies []string

		for _, unit := range group.units {
			body, err := o.emitter.RenderUnit(unit)
			if err != nil {
				return nil, fmt.Errorf("failed to emit behaviour %s: %w", unit.Name, err)
			}
			classBodies = append(classBodies, body)
			file.Units = append(file.Units, unit.Name)

			imports = append(imports, unitImports(unit)...)

			for _, ref := range unitReferences(unit, g) {
				if fileOf[ref] == group.name {
					continue
				}
				file.AddCrossFileDependency(ref)
				if ns := namespaceOf[ref]; ns != "" && ns != group.namespace {
					imports = append(imports, ns)
				}
			}
		}

		if len(group.helpers) > 0 {
			body, err := o.emitter.RenderHelpers(SharedHelpersUnit, group.helpers)
			if err != nil {
				return nil, fmt.Errorf("failed to emit shared helpers: %w", err)
			}
			classBodies = append(classBodies, body)
			for _, helper := range group.helpers {
				for _, param := range helper.Parameters {
					imports = append(imports, typeImports(param.Type)...)
				}
				imports = append(imports, typeImports(helper.ReturnType)...)
			}
		}

		file.SetImports(imports)

		text, err := o.emitter.RenderFile(group.namespace, file.Imports, classBodies)
		if err != nil {
			return nil, fmt.Errorf("failed to assemble file %s: %w", group.name, err)
		}
		file.EmittedText = text
		files[group.name] = file
	}

	return files, nil
}

// unitReferences unions the graph-reachable units with the unit's own
// nominal type references. The graph only carries edges for declared
// dependencies and field types, so method parameter and return types are
// picked up here; both feed the same import and cross-file resolution.
func unitReferences(unit *models.BehaviorUnit, g *graph.DependencyGraph) []string {
	seen := map[string]bool{unit.Name: true}
	var refs []string
	add := func(names []string) {
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				refs = append(refs, name)
			}
		}
	}
	add(transitiveReferences(unit.Name, g))
	add(unit.ReferencedUnits())
	sort.Strings(refs)
	return refs
}

// transitiveReferences follows the dependency graph from one unit and
// returns every unit reachable from it.
func transitiveReferences(name string, g *graph.DependencyGraph) []string {
	visited := map[string]bool{name: true}
	var refs []string
	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, edge := range g.EdgesFrom(current) {
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true
			refs = append(refs, edge.To)
			queue = append(queue, edge.To)
		}
	}
	sort.Strings(refs)
	return refs
}

// unitImports detects container and built-in usage across a unit's fields
// and method signatures.
func unitImports(unit *models.BehaviorUnit) []string {
	var imports []string
	for _, field := range unit.Fields {
		imports = append(imports, typeImports(field.Type)...)
	}
	for _, method := range unit.Methods {
		for _, param := range method.Parameters {
			imports = append(imports, typeImports(param.Type)...)
		}
		imports = append(imports, typeImports(method.ReturnType)...)
	}
	return imports
}

func typeImports(t models.TypeRef) []string {
	var imports []string
	if t.UsesCollections() {
		imports = append(imports, usharp.CollectionsImport)
	}
	for _, name := range builtinNames(t) {
		if ns, ok := usharp.BuiltinNamespace(name); ok {
			imports = append(imports, ns)
		}
	}
	return imports
}

func builtinNames(t models.TypeRef) []string {
	var names []string
	if t.Kind == models.TypeBuiltin {
		names = append(names, t.Name)
	}
	if t.Key != nil {
		names = append(names, builtinNames(*t.Key)...)
	}
	if t.Elem != nil {
		names = append(names, builtinNames(*t.Elem)...)
	}
	return names
}

// checkFileCycles re-validates that no circular file-level reference
// survived the split. ByUnit mirrors the (already acyclic) unit graph and
// BySize packs in topological order, so this mainly guards ByNamespace
// groupings that interleave layers.
func checkFileCycles(files map[string]*models.GeneratedFile) error {
	unitFile := make(map[string]string)
	for name, file := range files {
		for _, unit := range file.Units {
			unitFile[unit] = name
		}
	}

	adjacency := make(map[string]map[string]bool)
	for name, file := range files {
		adjacency[name] = make(map[string]bool)
		for dep := range file.CrossFileDependencies {
			target := unitFile[dep]
			if target != "" && target != name {
				adjacency[name][target] = true
			}
		}
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var cyclic []string

	var dfs func(node string) bool
	dfs = func(node string) bool {
		visited[node] = true
		onStack[node] = true
		for next := range adjacency[node] {
			if !visited[next] {
				if dfs(next) {
					return true
				}
			} else if onStack[next] {
				return true
			}
		}
		onStack[node] = false
		return false
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !visited[name] && dfs(name) {
			cyclic = append(cyclic, name)
		}
	}

	if len(cyclic) > 0 {
		var units []string
		for _, name := range cyclic {
			units = append(units, files[name].Units...)
		}
		sort.Strings(units)
		return &OrganizationError{Kind: ErrCircularDependency, Units: units}
	}
	return nil
}
