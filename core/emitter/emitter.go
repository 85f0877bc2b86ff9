package emitter

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/shared"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/usharp"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/version"
)

const fileTemplate = `// <auto-generated>
// Generated by wasmrs2usharp {{ .Version }} on {{ datetime .Timestamp }}.
// Do not edit: changes are overwritten on the next compile.
// </auto-generated>
{{ range .Imports }}using {{ . }};
{{ end }}
namespace {{ .Namespace }}
{
{{ .Body }}
}
`

const classTemplate = `{{- if .SyncModeAttr }}{{ .SyncModeAttr }}
{{ end }}public class {{ .ClassName }} : {{ .BaseClass }}
{
{{- range $i, $block := .Blocks }}
{{- if $i }}
{{ end }}
{{ $block }}
{{- end }}
}`

type Emitter struct {
	funcMap template.FuncMap
}

func New() *Emitter {
	return &Emitter{
		funcMap: template.FuncMap{
			"upper":    strings.ToUpper,
			"lower":    strings.ToLower,
			"title":    shared.ToTitle,
			"pascal":   shared.ToPascal,
			"camel":    shared.ToCamel,
			"join":     strings.Join,
			"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
		},
	}
}

func (e *Emitter) render(name, text string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return b.String(), nil
}

// RenderFile wraps already-rendered class bodies in the file shell: header
// comment, using statements and the namespace block.
func (e *Emitter) RenderFile(namespace string, imports []string, classBodies []string) (string, error) {
	body := strings.Join(classBodies, "\n\n")
	body = indent(body, "    ")

	return e.render("file", fileTemplate, struct {
		Version   string
		Timestamp time.Time
		Imports   []string
		Namespace string
		Body      string
	}{
		Version:   version.Version,
		Timestamp: time.Now(),
		Imports:   imports,
		Namespace: namespace,
		Body:      body,
	})
}

// RenderUnit emits the UdonSharp class for one behaviour unit.
func (e *Emitter) RenderUnit(unit *models.BehaviorUnit) (string, error) {
	var blocks []string
	for _, field := range unit.Fields {
		blocks = append(blocks, renderField(field))
	}
	for _, method := range unit.Methods {
		blocks = append(blocks, renderMethod(method))
	}

	syncAttr := ""
	if unit.HasNetworking() {
		syncAttr = fmt.Sprintf("[UdonBehaviourSyncMode(%s)]", unit.SyncMode())
	}

	return e.render("class", classTemplate, struct {
		SyncModeAttr string
		ClassName    string
		BaseClass    string
		Blocks       []string
	}{
		SyncModeAttr: syncAttr,
		ClassName:    shared.ToPascal(unit.Name),
		BaseClass:    usharp.BaseClass,
		Blocks:       blocks,
	})
}

// RenderHelpers collects standalone helper functions into a shared utility
// class. The class takes part in the dependency graph as an ordinary node.
func (e *Emitter) RenderHelpers(className string, helpers []models.Method) (string, error) {
	var blocks []string
	for _, helper := range helpers {
		blocks = append(blocks, renderStaticMethod(helper))
	}

	text, err := e.render("class", classTemplate, struct {
		SyncModeAttr string
		ClassName    string
		BaseClass    string
		Blocks       []string
	}{
		ClassName: shared.ToPascal(className),
		BaseClass: usharp.BaseClass,
		Blocks:    blocks,
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func renderField(field models.Field) string {
	var lines []string

	for _, attr := range field.Attributes {
		switch attr.Kind {
		case models.FieldAttrHeader:
			lines = append(lines, fmt.Sprintf("[Header(%q)]", attr.Value))
		case models.FieldAttrTooltip:
			lines = append(lines, fmt.Sprintf("[Tooltip(%q)]", attr.Value))
		case models.FieldAttrSynced:
			lines = append(lines, "[UdonSynced]")
		case models.FieldAttrSerialized:
			lines = append(lines, "[SerializeField]")
		}
	}

	visibility := "private"
	if field.Visibility == models.VisibilityPublic || field.HasAttribute(models.FieldAttrPublic) {
		visibility = "public"
	}

	initializer := field.DefaultValue
	if initializer == "" {
		initializer = field.Type.DefaultLiteral()
	}

	lines = append(lines, fmt.Sprintf("%s %s %s = %s;",
		visibility, field.Type.CSharpType(), shared.ToCamel(field.Name), initializer))

	return indent(strings.Join(lines, "\n"), "    ")
}

func renderMethod(method models.Method) string {
	var params []string
	for _, p := range method.Parameters {
		params = append(params, fmt.Sprintf("%s %s", p.Type.CSharpType(), shared.ToCamel(p.Name)))
	}

	signature := ""
	switch {
	case usharp.IsLifecycleMethod(method.Name):
		signature = fmt.Sprintf("public override void %s(%s)", method.Name, strings.Join(params, ", "))
	case method.IsCustomEvent():
		signature = fmt.Sprintf("public void %s()", shared.ToPascal(method.Name))
	default:
		signature = fmt.Sprintf("public %s %s(%s)",
			method.ReturnType.CSharpType(), shared.ToPascal(method.Name), strings.Join(params, ", "))
	}

	return renderBody(signature, method.Body)
}

func renderStaticMethod(method models.Method) string {
	var params []string
	for _, p := range method.Parameters {
		params = append(params, fmt.Sprintf("%s %s", p.Type.CSharpType(), shared.ToCamel(p.Name)))
	}
	signature := fmt.Sprintf("public %s %s(%s)",
		method.ReturnType.CSharpType(), shared.ToPascal(method.Name), strings.Join(params, ", "))
	return renderBody(signature, method.Body)
}

func renderBody(signature string, body []string) string {
	var lines []string
	lines = append(lines, signature)
	lines = append(lines, "{")
	for _, stmt := range body {
		lines = append(lines, "    "+stmt)
	}
	lines = append(lines, "}")
	return indent(strings.Join(lines, "\n"), "    ")
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
