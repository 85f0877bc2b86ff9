package models

import "sort"

// GeneratedFile is one emitted output file. It is never mutated after the
// organizer creates it, except to append quality-validator annotations.
type GeneratedFile struct {
	Name                  string
	Namespace             string
	EmittedText           string
	Imports               []string
	Units                 []string
	CrossFileDependencies map[string]bool
	Annotations           []string
}

func NewGeneratedFile(name, namespace string) *GeneratedFile {
	return &GeneratedFile{
		Name:                  name,
		Namespace:             namespace,
		CrossFileDependencies: make(map[string]bool),
	}
}

// SetImports stores a deduplicated, lexicographically sorted import list.
func (f *GeneratedFile) SetImports(imports []string) {
	seen := make(map[string]bool, len(imports))
	var unique []string
	for _, imp := range imports {
		if imp == "" || seen[imp] {
			continue
		}
		seen[imp] = true
		unique = append(unique, imp)
	}
	sort.Strings(unique)
	f.Imports = unique
}

func (f *GeneratedFile) AddCrossFileDependency(unit string) {
	f.CrossFileDependencies[unit] = true
}

func (f *GeneratedFile) AppendAnnotation(text string) {
	f.Annotations = append(f.Annotations, text)
}

// ContainsUnit reports whether the file holds the named unit.
func (f *GeneratedFile) ContainsUnit(name string) bool {
	for _, u := range f.Units {
		if u == name {
			return true
		}
	}
	return false
}
