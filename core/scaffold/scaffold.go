package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/shared"
)

const configTemplate = `project_name: {{ .Name }}
behaviors: behaviors.yaml

codegen:
  output: UdonGenerated
  namespace: {{ .Namespace }}
  splitting:
    strategy: by-unit
    size_budget: 400

compiler:
  warnings_as_errors: false
`

const behaviorsTemplate = `project: {{ .Name }}
namespace: {{ .Namespace }}

behaviors:
  - name: welcome_sign
    implements: Behaviour
    fields:
      - name: greeting
        type: String
        visibility: public
        default: '"Welcome!"'
        attributes:
          - header: Sign
    methods:
      - name: Start
        body:
          - 'Debug.Log(greeting);'
      - name: OnPlayerJoined
        params:
          - name: player
            type: VRCPlayerApi
        body:
          - 'Debug.Log(player.displayName);'
`

type projectData struct {
	Name      string
	Namespace string
}

// Init writes a starter project config and an example behaviour descriptor
// into dir.
func Init(dir string) error {
	data := projectData{
		Name:      strings.ToLower(filepath.Base(dir)),
		Namespace: shared.ToPascal(filepath.Base(dir)),
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	files := map[string]string{
		"usharp.yaml":    configTemplate,
		"behaviors.yaml": behaviorsTemplate,
	}
	for name, text := range files {
		if err := renderTo(filepath.Join(dir, name), name, text, data); err != nil {
			return err
		}
	}
	return nil
}

func renderTo(path, name, text string, data interface{}) error {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
