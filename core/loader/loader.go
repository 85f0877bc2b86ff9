package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/usharp"
	"gopkg.in/yaml.v3"
)

// Project is one analyzed compilation set as produced by the front-end
// analyzer and serialized to the behaviour descriptor file.
type Project struct {
	Name      string
	Namespace string
	Units     []*models.BehaviorUnit
	Helpers   []models.Method
}

type projectDescriptor struct {
	Project   string             `yaml:"project"`
	Namespace string             `yaml:"namespace"`
	Behaviors []unitDescriptor   `yaml:"behaviors"`
	Helpers   []methodDescriptor `yaml:"helpers"`
}

type unitDescriptor struct {
	Name         string             `yaml:"name"`
	Namespace    string             `yaml:"namespace"`
	Implements   string             `yaml:"implements"`
	SyncMode     string             `yaml:"sync_mode"`
	Dependencies []string           `yaml:"dependencies"`
	Fields       []fieldDescriptor  `yaml:"fields"`
	Methods      []methodDescriptor `yaml:"methods"`
}

type fieldDescriptor struct {
	Name       string          `yaml:"name"`
	Type       string          `yaml:"type"`
	Visibility string          `yaml:"visibility"`
	Default    string          `yaml:"default"`
	Attributes []attributeNode `yaml:"attributes"`
}

type methodDescriptor struct {
	Name    string            `yaml:"name"`
	Event   string            `yaml:"event"`
	Async   bool              `yaml:"async"`
	Params  []paramDescriptor `yaml:"params"`
	Returns string            `yaml:"returns"`
	Body    []string          `yaml:"body"`
}

type paramDescriptor struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// attributeNode accepts either a bare attribute name ("synced") or a
// single-pair mapping carrying a value ("header: Score").
type attributeNode struct {
	Name  string
	Value string
}

func (a *attributeNode) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		a.Name = node.Value
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("attribute mapping must have exactly one key, got %d", len(node.Content)/2)
		}
		a.Name = node.Content[0].Value
		a.Value = node.Content[1].Value
		return nil
	default:
		return fmt.Errorf("attribute must be a name or a single-pair mapping")
	}
}

// Load reads a behaviour descriptor file and converts it to the unit model.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read behaviour descriptors %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Project, error) {
	var desc projectDescriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse behaviour descriptors: %w", err)
	}

	project := &Project{
		Name:      desc.Project,
		Namespace: desc.Namespace,
	}

	for _, ud := range desc.Behaviors {
		unit, err := convertUnit(ud, desc.Namespace)
		if err != nil {
			return nil, err
		}
		project.Units = append(project.Units, unit)
	}

	for _, md := range desc.Helpers {
		helper, err := convertMethod(md)
		if err != nil {
			return nil, fmt.Errorf("helper %s: %w", md.Name, err)
		}
		project.Helpers = append(project.Helpers, helper)
	}

	logger.Debug("Loaded %d behaviour(s) and %d helper(s)", len(project.Units), len(project.Helpers))
	return project, nil
}

func convertUnit(ud unitDescriptor, defaultNamespace string) (*models.BehaviorUnit, error) {
	unit := &models.BehaviorUnit{
		Name:                 ud.Name,
		Namespace:            ud.Namespace,
		DeclaredDependencies: ud.Dependencies,
	}
	if unit.Namespace == "" {
		unit.Namespace = defaultNamespace
	}

	if ud.Implements != "" {
		unit.Implementation = &models.ImplementationRecord{
			TraitName: ud.Implements,
			ClassName: ud.Name,
		}
	}

	switch strings.ToLower(ud.SyncMode) {
	case "", "none":
		if ud.SyncMode != "" {
			unit.Attributes = append(unit.Attributes, models.UnitAttribute{Kind: models.UnitAttrSyncModeNone})
		}
	case "continuous":
		unit.Attributes = append(unit.Attributes, models.UnitAttribute{Kind: models.UnitAttrSyncModeContinuous})
	case "manual":
		unit.Attributes = append(unit.Attributes, models.UnitAttribute{Kind: models.UnitAttrSyncModeManual})
	default:
		return nil, fmt.Errorf("behaviour %s: unknown sync mode %q", ud.Name, ud.SyncMode)
	}

	for _, fd := range ud.Fields {
		field, err := convertField(fd)
		if err != nil {
			return nil, fmt.Errorf("behaviour %s: %w", ud.Name, err)
		}
		unit.Fields = append(unit.Fields, field)
	}

	for _, md := range ud.Methods {
		method, err := convertMethod(md)
		if err != nil {
			return nil, fmt.Errorf("behaviour %s: %w", ud.Name, err)
		}
		unit.Methods = append(unit.Methods, method)
	}

	return unit, nil
}

func convertField(fd fieldDescriptor) (models.Field, error) {
	fieldType, err := ParseType(fd.Type)
	if err != nil {
		return models.Field{}, fmt.Errorf("field %s: %w", fd.Name, err)
	}

	field := models.Field{
		Name:         fd.Name,
		Type:         fieldType,
		DefaultValue: fd.Default,
	}
	if fd.Visibility == "public" {
		field.Visibility = models.VisibilityPublic
	}

	for _, attr := range fd.Attributes {
		switch attr.Name {
		case "public":
			field.Attributes = append(field.Attributes, models.FieldAttribute{Kind: models.FieldAttrPublic})
		case "serialized":
			field.Attributes = append(field.Attributes, models.FieldAttribute{Kind: models.FieldAttrSerialized})
		case "synced":
			field.Attributes = append(field.Attributes, models.FieldAttribute{Kind: models.FieldAttrSynced})
		case "header":
			field.Attributes = append(field.Attributes, models.FieldAttribute{Kind: models.FieldAttrHeader, Value: attr.Value})
		case "tooltip":
			field.Attributes = append(field.Attributes, models.FieldAttribute{Kind: models.FieldAttrTooltip, Value: attr.Value})
		default:
			return models.Field{}, fmt.Errorf("field %s: unknown attribute %q", fd.Name, attr.Name)
		}
	}

	return field, nil
}

func convertMethod(md methodDescriptor) (models.Method, error) {
	method := models.Method{
		Name:       md.Name,
		IsAsync:    md.Async,
		ReturnType: models.Void(),
		Body:       md.Body,
	}

	if md.Returns != "" {
		ret, err := ParseType(md.Returns)
		if err != nil {
			return models.Method{}, fmt.Errorf("method %s: %w", md.Name, err)
		}
		method.ReturnType = ret
	}

	for _, pd := range md.Params {
		paramType, err := ParseType(pd.Type)
		if err != nil {
			return models.Method{}, fmt.Errorf("method %s, param %s: %w", md.Name, pd.Name, err)
		}
		method.Parameters = append(method.Parameters, models.Parameter{Name: pd.Name, Type: paramType})
	}

	if usharp.IsLifecycleMethod(md.Name) {
		method.Attributes = append(method.Attributes, models.MethodAttribute{Kind: models.MethodAttrLifecycle})
	}
	if md.Event != "" {
		method.Attributes = append(method.Attributes, models.MethodAttribute{Kind: models.MethodAttrCustomEvent, Value: md.Event})
	}

	return method, nil
}
