package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/shared"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/usharp"
)

// Rule is one pluggable post-generation check. Rules are plain values
// collected into an ordered list; adding a rule is a data change.
type Rule interface {
	Name() string
	Applies(file *models.GeneratedFile) bool
	Check(file *models.GeneratedFile) []Issue
}

// FileSetRule is implemented by rules that need to see every file at once,
// such as cross-file event cycle detection.
type FileSetRule interface {
	Rule
	CheckAll(files map[string]*models.GeneratedFile) []Issue
}

func DefaultRules() []Rule {
	return []Rule{
		&balancedSyntaxRule{},
		&baseClassRule{},
		&namingConventionRule{},
		&syncSafetyRule{},
		&nullSafetyRule{},
		&eventCycleRule{},
	}
}

// balancedSyntaxRule checks structural sanity of the emitted text: balanced
// braces and parentheses, plus a heuristic for statements missing their
// semicolon.
type balancedSyntaxRule struct{}

func (r *balancedSyntaxRule) Name() string { return "balanced-syntax" }

func (r *balancedSyntaxRule) Applies(file *models.GeneratedFile) bool { return true }

func (r *balancedSyntaxRule) Check(file *models.GeneratedFile) []Issue {
	var issues []Issue

	braces := strings.Count(file.EmittedText, "{") - strings.Count(file.EmittedText, "}")
	if braces != 0 {
		issues = append(issues, Issue{
			Rule:     r.Name(),
			File:     file.Name,
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("unbalanced braces (difference %+d)", braces),
		})
	}

	parens := strings.Count(file.EmittedText, "(") - strings.Count(file.EmittedText, ")")
	if parens != 0 {
		issues = append(issues, Issue{
			Rule:     r.Name(),
			File:     file.Name,
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("unbalanced parentheses (difference %+d)", parens),
		})
	}

	for i, line := range strings.Split(file.EmittedText, "\n") {
		if looksLikeUnterminatedStatement(line) {
			issues = append(issues, Issue{
				Rule:     r.Name(),
				File:     file.Name,
				Line:     i + 1,
				Severity: models.SeverityWarning,
				Message:  fmt.Sprintf("statement may be missing a semicolon: %q", strings.TrimSpace(line)),
			})
		}
	}

	return issues
}

var controlKeywords = []string{"if", "else", "for", "foreach", "while", "switch", "return"}

func looksLikeUnterminatedStatement(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "[") {
		return false
	}
	if strings.HasPrefix(trimmed, "using ") || strings.HasPrefix(trimmed, "namespace ") {
		return false
	}
	for _, kw := range controlKeywords {
		if trimmed == kw || strings.HasPrefix(trimmed, kw+" ") || strings.HasPrefix(trimmed, kw+"(") {
			return false
		}
	}
	if strings.Contains(trimmed, " class ") || strings.HasPrefix(trimmed, "public ") && strings.Contains(trimmed, "(") && strings.HasSuffix(trimmed, ")") {
		// Method signatures end without semicolons.
		return false
	}
	// An assignment that does not end in a terminator is suspicious.
	return strings.Contains(trimmed, "=") && !strings.HasSuffix(trimmed, ";") &&
		!strings.HasSuffix(trimmed, "{") && !strings.HasSuffix(trimmed, "}") &&
		!strings.HasSuffix(trimmed, ",") && !strings.HasSuffix(trimmed, "(")
}

// baseClassRule enforces the dialect inheritance requirement: every emitted
// class must derive from UdonSharpBehaviour.
type baseClassRule struct{}

func (r *baseClassRule) Name() string { return "base-class" }

func (r *baseClassRule) Applies(file *models.GeneratedFile) bool {
	return strings.Contains(file.EmittedText, "class ")
}

var classDeclPattern = regexp.MustCompile(`(?m)^\s*(?:public\s+)?class\s+(\w+)(?:\s*:\s*(\w+))?`)

func (r *baseClassRule) Check(file *models.GeneratedFile) []Issue {
	var issues []Issue
	for _, match := range classDeclPattern.FindAllStringSubmatch(file.EmittedText, -1) {
		className, base := match[1], match[2]
		if base != usharp.BaseClass {
			issues = append(issues, Issue{
				Rule:     r.Name(),
				File:     file.Name,
				Severity: models.SeverityError,
				Message:  fmt.Sprintf("class %s must declare %s as its base class", className, usharp.BaseClass),
			})
		}
	}
	return issues
}

// namingConventionRule checks the dialect's case conventions: class names in
// PascalCase, field members in camelCase.
type namingConventionRule struct{}

func (r *namingConventionRule) Name() string { return "naming-convention" }

func (r *namingConventionRule) Applies(file *models.GeneratedFile) bool {
	return strings.Contains(file.EmittedText, "class ")
}

var fieldDeclPattern = regexp.MustCompile(`(?m)^\s*(public|private)\s+[\w<>,\[\] ]+?\s+(\w+)\s*=`)

func (r *namingConventionRule) Check(file *models.GeneratedFile) []Issue {
	var issues []Issue

	for _, match := range classDeclPattern.FindAllStringSubmatch(file.EmittedText, -1) {
		if !shared.IsPascalCase(match[1]) {
			issues = append(issues, Issue{
				Rule:     r.Name(),
				File:     file.Name,
				Severity: models.SeverityWarning,
				Message:  fmt.Sprintf("class name %s should be PascalCase", match[1]),
			})
		}
	}

	for _, match := range fieldDeclPattern.FindAllStringSubmatch(file.EmittedText, -1) {
		if !shared.IsCamelCase(match[2]) {
			issues = append(issues, Issue{
				Rule:     r.Name(),
				File:     file.Name,
				Severity: models.SeverityWarning,
				Message:  fmt.Sprintf("field name %s should be camelCase", match[2]),
			})
		}
	}

	return issues
}

// syncSafetyRule warns when a synced field is written but the file never
// requests serialization, which silently drops the update under manual sync.
type syncSafetyRule struct{}

func (r *syncSafetyRule) Name() string { return "sync-safety" }

func (r *syncSafetyRule) Applies(file *models.GeneratedFile) bool {
	return strings.Contains(file.EmittedText, "[UdonSynced]")
}

func (r *syncSafetyRule) Check(file *models.GeneratedFile) []Issue {
	var issues []Issue
	lines := strings.Split(file.EmittedText, "\n")

	hasRequest := strings.Contains(file.EmittedText, usharp.RequestSerializationCall)

	for i, line := range lines {
		if strings.TrimSpace(line) != "[UdonSynced]" {
			continue
		}
		name, declIndex := syncedFieldName(lines, i)
		if name == "" {
			continue
		}
		writePattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*(=[^=]|\+\+|--|[+\-*/]=)`)
		written := false
		for j, other := range lines {
			if j == declIndex {
				continue // the declaration's own initializer
			}
			if writePattern.MatchString(other) {
				written = true
				break
			}
		}
		if written && !hasRequest {
			issues = append(issues, Issue{
				Rule:     r.Name(),
				File:     file.Name,
				Severity: models.SeverityWarning,
				Message:  fmt.Sprintf("synced field %s is written without a %s call", name, usharp.RequestSerializationCall),
			})
		}
	}

	return issues
}

var fieldNamePattern = regexp.MustCompile(`\s(\w+)\s*(=|;)`)

// syncedFieldName resolves the declaration that a [UdonSynced] attribute
// annotates, skipping any attribute lines in between, and returns the field
// name together with the declaration's line index.
func syncedFieldName(lines []string, attrIndex int) (string, int) {
	for i := attrIndex + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "[") {
			continue
		}
		if match := fieldNamePattern.FindStringSubmatch(lines[i]); match != nil {
			return match[1], i
		}
		return "", 0
	}
	return "", 0
}

// nullSafetyRule flags handle-typed fields dereferenced without any null
// check in the file.
type nullSafetyRule struct{}

func (r *nullSafetyRule) Name() string { return "null-safety" }

func (r *nullSafetyRule) Applies(file *models.GeneratedFile) bool { return true }

func (r *nullSafetyRule) Check(file *models.GeneratedFile) []Issue {
	var issues []Issue

	for _, name := range handleFields(file.EmittedText) {
		deref := strings.Contains(file.EmittedText, name+".")
		checked := strings.Contains(file.EmittedText, name+" != null") ||
			strings.Contains(file.EmittedText, name+" == null") ||
			strings.Contains(file.EmittedText, "Utilities.IsValid("+name+")")
		if deref && !checked {
			issues = append(issues, Issue{
				Rule:     r.Name(),
				File:     file.Name,
				Severity: models.SeverityInfo,
				Message:  fmt.Sprintf("handle field %s is dereferenced without a null check", name),
			})
		}
	}

	return issues
}

// handleFields returns the field names declared with reference-typed runtime
// handles.
func handleFields(text string) []string {
	var fields []string
	for typeName, isRef := range usharp.BuiltinTypes {
		if !isRef {
			continue
		}
		pattern := regexp.MustCompile(`(?m)^\s*(?:public|private)\s+` + typeName + `\s+(\w+)`)
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			fields = append(fields, match[1])
		}
	}
	return fields
}

// eventCycleRule scans emitted custom event dispatches for A->B and B->A
// patterns between different files. The static unit graph cannot see these:
// SendCustomEvent is a runtime string dispatch.
type eventCycleRule struct{}

func (r *eventCycleRule) Name() string { return "event-cycle" }

func (r *eventCycleRule) Applies(file *models.GeneratedFile) bool {
	return strings.Contains(file.EmittedText, "SendCustomEvent")
}

func (r *eventCycleRule) Check(file *models.GeneratedFile) []Issue {
	// Pairwise detection needs the whole file set; see CheckAll.
	return nil
}

var dispatchPattern = regexp.MustCompile(`(\w+)\.SendCustomEvent\(`)

func (r *eventCycleRule) CheckAll(files map[string]*models.GeneratedFile) []Issue {
	// file -> set of files it dispatches events into
	targets := make(map[string]map[string]bool)

	classToFile := make(map[string]string)
	for name, file := range files {
		for _, match := range classDeclPattern.FindAllStringSubmatch(file.EmittedText, -1) {
			classToFile[match[1]] = name
		}
	}

	for name, file := range files {
		receiverTypes := make(map[string]string)
		for _, typeName := range classNames(files) {
			pattern := regexp.MustCompile(`(?m)^\s*(?:public|private)\s+` + typeName + `\s+(\w+)`)
			for _, match := range pattern.FindAllStringSubmatch(file.EmittedText, -1) {
				receiverTypes[match[1]] = typeName
			}
		}

		for _, match := range dispatchPattern.FindAllStringSubmatch(file.EmittedText, -1) {
			receiver := match[1]
			typeName, ok := receiverTypes[receiver]
			if !ok {
				continue
			}
			targetFile := classToFile[typeName]
			if targetFile == "" || targetFile == name {
				continue
			}
			if targets[name] == nil {
				targets[name] = make(map[string]bool)
			}
			targets[name][targetFile] = true
		}
	}

	var issues []Issue
	for from, tos := range targets {
		for to := range tos {
			if from < to && targets[to][from] {
				issues = append(issues, Issue{
					Rule:     r.Name(),
					File:     from,
					Severity: models.SeverityWarning,
					Message:  fmt.Sprintf("files %s and %s dispatch custom events at each other; this is a logical cycle the dependency graph cannot see", from, to),
				})
			}
		}
	}
	return issues
}

func classNames(files map[string]*models.GeneratedFile) []string {
	var names []string
	for _, file := range files {
		for _, match := range classDeclPattern.FindAllStringSubmatch(file.EmittedText, -1) {
			names = append(names, match[1])
		}
	}
	return names
}
