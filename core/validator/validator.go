package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/shared"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/usharp"
)

// Result is the outcome of compatibility validation over one unit set.
// Diagnostics are accumulated, never short-circuited, so a single run
// reports every violation across every unit.
type Result struct {
	PerUnit  map[string][]models.Diagnostic
	Blocking bool
}

// All returns every diagnostic in stable unit-name order.
func (r *Result) All() []models.Diagnostic {
	names := make([]string, 0, len(r.PerUnit))
	for name := range r.PerUnit {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []models.Diagnostic
	for _, name := range names {
		all = append(all, r.PerUnit[name]...)
	}
	return all
}

func (r *Result) ErrorCount() int {
	return models.CountBySeverity(r.All(), models.SeverityError)
}

func (r *Result) WarningCount() int {
	return models.CountBySeverity(r.All(), models.SeverityWarning)
}

// ValidateAll checks every unit against the target dialect's type system and
// required-method contract.
func ValidateAll(units []*models.BehaviorUnit) *Result {
	result := &Result{PerUnit: make(map[string][]models.Diagnostic, len(units))}

	seen := make(map[string]bool)
	for _, unit := range units {
		diags := validateUnit(unit)
		if seen[unit.Name] {
			diags = append(diags, models.Diagnostic{
				Severity: models.SeverityError,
				Code:     models.CodeInvalidIdentifier,
				Behavior: unit.Name,
				Message:  fmt.Sprintf("behaviour name '%s' appears more than once; names must be unique across the compiled set", unit.Name),
			})
		}
		seen[unit.Name] = true

		result.PerUnit[unit.Name] = append(result.PerUnit[unit.Name], diags...)
		if models.HasBlocking(diags) {
			result.Blocking = true
		}
	}

	logger.Debug("Validated %d behaviour(s): %d error(s), %d warning(s)",
		len(units), result.ErrorCount(), result.WarningCount())
	return result
}

func validateUnit(unit *models.BehaviorUnit) []models.Diagnostic {
	var diags []models.Diagnostic

	diags = append(diags, checkIdentifier(unit)...)
	diags = append(diags, checkImplementation(unit)...)
	diags = append(diags, checkLifecycleSignatures(unit)...)
	diags = append(diags, checkFieldAttributes(unit)...)
	diags = append(diags, checkEventHandlers(unit)...)
	diags = append(diags, checkTypeSupport(unit)...)
	diags = append(diags, checkAsync(unit)...)

	return diags
}

func checkIdentifier(unit *models.BehaviorUnit) []models.Diagnostic {
	if shared.IsValidIdentifier(unit.Name) && !usharp.ReservedWords[unit.Name] {
		return nil
	}
	return []models.Diagnostic{{
		Severity:   models.SeverityError,
		Code:       models.CodeInvalidIdentifier,
		Behavior:   unit.Name,
		Message:    fmt.Sprintf("'%s' is not a valid class name in the target dialect", unit.Name),
		Suggestion: fmt.Sprintf("rename the behaviour to '%s'", shared.ToPascal(strings.TrimFunc(unit.Name, func(r rune) bool { return r == '_' }))),
	}}
}

// checkImplementation enforces the completeness contract: the unit must
// carry a behaviour implementation and at least the minimal lifecycle
// method set.
func checkImplementation(unit *models.BehaviorUnit) []models.Diagnostic {
	var diags []models.Diagnostic

	if unit.Implementation == nil {
		diags = append(diags, models.Diagnostic{
			Severity:   models.SeverityError,
			Code:       models.CodeIncompleteImplementation,
			Behavior:   unit.Name,
			Message:    fmt.Sprintf("behaviour '%s' declares no trait implementation and cannot be compiled", unit.Name),
			Suggestion: "implement the Behaviour trait for the struct",
			FixExample: fmt.Sprintf("impl Behaviour for %s {\n    fn start(&mut self) {}\n}", unit.Name),
		})
	}

	for _, required := range usharp.RequiredLifecycleMethods {
		if _, ok := unit.Method(required); !ok {
			diags = append(diags, models.Diagnostic{
				Severity:   models.SeverityError,
				Code:       models.CodeMissingRequiredMethod,
				Behavior:   unit.Name,
				Subject:    required,
				Message:    fmt.Sprintf("behaviour '%s' is missing the required lifecycle method '%s'", unit.Name, required),
				Suggestion: fmt.Sprintf("add a %s method to the behaviour", required),
				FixExample: fmt.Sprintf("fn %s(&mut self) {\n    // runs once before the first frame\n}", shared.ToCamel(required)),
			})
		}
	}

	return diags
}

// checkLifecycleSignatures verifies each implemented lifecycle method
// against the fixed signature table. The target dialect rejects mismatched
// overrides at compile time, so a mismatch is an error, not a warning.
func checkLifecycleSignatures(unit *models.BehaviorUnit) []models.Diagnostic {
	var diags []models.Diagnostic

	for _, method := range unit.Methods {
		sig, ok := usharp.LifecycleMethods[method.Name]
		if !ok {
			continue
		}

		if len(method.Parameters) != len(sig.ParamTypes) {
			diags = append(diags, models.Diagnostic{
				Severity:   models.SeverityError,
				Code:       models.CodeInvalidMethodSignature,
				Behavior:   unit.Name,
				Subject:    method.Name,
				Message:    fmt.Sprintf("lifecycle method '%s' takes %d parameter(s), the dialect requires %d (%s)", method.Name, len(method.Parameters), len(sig.ParamTypes), describeShape(sig)),
				Suggestion: fmt.Sprintf("match the required signature for %s", method.Name),
				FixExample: fixForSignature(method.Name, sig),
			})
			continue
		}

		for i, param := range method.Parameters {
			if param.Type.CSharpType() != sig.ParamTypes[i] {
				diags = append(diags, models.Diagnostic{
					Severity:   models.SeverityError,
					Code:       models.CodeInvalidMethodSignature,
					Behavior:   unit.Name,
					Subject:    method.Name,
					Message:    fmt.Sprintf("lifecycle method '%s' parameter %d has type %s, the dialect requires %s", method.Name, i+1, param.Type.CSharpType(), sig.ParamTypes[i]),
					FixExample: fixForSignature(method.Name, sig),
				})
			}
		}

		if method.ReturnType.Kind != models.TypeVoid {
			diags = append(diags, models.Diagnostic{
				Severity: models.SeverityError,
				Code:     models.CodeInvalidMethodSignature,
				Behavior: unit.Name,
				Subject:  method.Name,
				Message:  fmt.Sprintf("lifecycle method '%s' must not return a value", method.Name),
			})
		}
	}

	return diags
}

func describeShape(sig usharp.LifecycleSignature) string {
	if len(sig.ParamTypes) == 0 {
		return "no parameters"
	}
	return fmt.Sprintf("one %s parameter", sig.ParamTypes[0])
}

func fixForSignature(name string, sig usharp.LifecycleSignature) string {
	var params []string
	for i, t := range sig.ParamTypes {
		params = append(params, fmt.Sprintf("%s: %s", sig.ParamNames[i], t))
	}
	return fmt.Sprintf("fn %s(&mut self%s) {}", shared.ToCamel(name), prefixComma(strings.Join(params, ", ")))
}

func prefixComma(s string) string {
	if s == "" {
		return s
	}
	return ", " + s
}

// checkFieldAttributes applies the legality rule for each field attribute
// kind: duplicates are errors, a synced field must have a synchronizable
// type, a synced field should also be exposed, and display metadata must
// not be empty.
func checkFieldAttributes(unit *models.BehaviorUnit) []models.Diagnostic {
	var diags []models.Diagnostic

	for _, field := range unit.Fields {
		counts := make(map[models.FieldAttributeKind]int)
		for _, attr := range field.Attributes {
			counts[attr.Kind]++
		}
		for kind, n := range counts {
			if n > 1 {
				diags = append(diags, models.Diagnostic{
					Severity: models.SeverityError,
					Code:     models.CodeDuplicateAttribute,
					Behavior: unit.Name,
					Subject:  field.Name,
					Message:  fmt.Sprintf("field '%s' carries the %s attribute %d times", field.Name, kind, n),
				})
			}
		}

		if field.IsSynced() {
			if !field.Type.IsSynchronizable() {
				diags = append(diags, models.Diagnostic{
					Severity:   models.SeverityError,
					Code:       models.CodeInvalidAttributeUsage,
					Behavior:   unit.Name,
					Subject:    field.Name,
					Message:    fmt.Sprintf("field '%s' is network-synchronized but its type %s is not synchronizable", field.Name, field.Type),
					Suggestion: rankSuggestions(field.Type),
				})
			}
			if !field.IsExposed() {
				diags = append(diags, models.Diagnostic{
					Severity:   models.SeverityWarning,
					Code:       models.CodeInvalidAttributeUsage,
					Behavior:   unit.Name,
					Subject:    field.Name,
					Message:    fmt.Sprintf("synchronized field '%s' is private; synced state is normally exposed to the inspector", field.Name),
					Suggestion: "mark the field public or add the serialized attribute",
				})
			}
		}

		for _, attr := range field.Attributes {
			if (attr.Kind == models.FieldAttrHeader || attr.Kind == models.FieldAttrTooltip) && strings.TrimSpace(attr.Value) == "" {
				diags = append(diags, models.Diagnostic{
					Severity: models.SeverityWarning,
					Code:     models.CodeInvalidAttributeUsage,
					Behavior: unit.Name,
					Subject:  field.Name,
					Message:  fmt.Sprintf("field '%s' has an empty %s attribute", field.Name, attr.Kind),
				})
			}
		}
	}

	return diags
}

// checkEventHandlers validates custom event methods: parameterless, with an
// explicit non-empty event name, and never shadowing a lifecycle callback.
func checkEventHandlers(unit *models.BehaviorUnit) []models.Diagnostic {
	var diags []models.Diagnostic

	for _, method := range unit.Methods {
		name, isEvent := method.EventName()
		if !isEvent {
			continue
		}

		if usharp.IsLifecycleMethod(method.Name) {
			diags = append(diags, models.Diagnostic{
				Severity: models.SeverityError,
				Code:     models.CodeInvalidAttributeUsage,
				Behavior: unit.Name,
				Subject:  method.Name,
				Message:  fmt.Sprintf("lifecycle method '%s' cannot also be a custom event handler", method.Name),
			})
		}
		if strings.TrimSpace(name) == "" {
			diags = append(diags, models.Diagnostic{
				Severity:   models.SeverityError,
				Code:       models.CodeInvalidAttributeUsage,
				Behavior:   unit.Name,
				Subject:    method.Name,
				Message:    fmt.Sprintf("custom event handler '%s' has no event name", method.Name),
				Suggestion: "give the event attribute an explicit name",
			})
		}
		if len(method.Parameters) > 0 {
			diags = append(diags, models.Diagnostic{
				Severity:   models.SeverityError,
				Code:       models.CodeInvalidMethodSignature,
				Behavior:   unit.Name,
				Subject:    method.Name,
				Message:    fmt.Sprintf("custom event handler '%s' must be parameterless; the event transport carries no arguments", method.Name),
				Suggestion: "move the data into synced fields and read them inside the handler",
			})
		}
	}

	return diags
}

// checkTypeSupport walks every field, parameter and return type recursively
// and reports each unsupported type with ranked alternatives.
func checkTypeSupport(unit *models.BehaviorUnit) []models.Diagnostic {
	var diags []models.Diagnostic

	report := func(subject string, t models.TypeRef) {
		if t.IsTargetCompatible() {
			return
		}
		diags = append(diags, models.Diagnostic{
			Severity:   models.SeverityError,
			Code:       models.CodeUnsupportedType,
			Behavior:   unit.Name,
			Subject:    subject,
			Message:    fmt.Sprintf("type %s of '%s' cannot be represented in the target dialect", t, subject),
			Suggestion: rankSuggestions(t),
		})
	}

	for _, field := range unit.Fields {
		report(field.Name, field.Type)
	}
	for _, method := range unit.Methods {
		for _, param := range method.Parameters {
			report(fmt.Sprintf("%s.%s", method.Name, param.Name), param.Type)
		}
		if method.ReturnType.Kind != models.TypeVoid {
			report(method.Name, method.ReturnType)
		}
	}

	return diags
}

func rankSuggestions(t models.TypeRef) string {
	alternatives := t.SuggestAlternatives()
	if len(alternatives) == 0 {
		return ""
	}
	var ranked []string
	for i, alt := range alternatives {
		ranked = append(ranked, fmt.Sprintf("%d) %s", i+1, alt))
	}
	return "consider: " + strings.Join(ranked, ", ")
}

// checkAsync rejects async methods unconditionally: the Udon VM has no
// concurrency primitives.
func checkAsync(unit *models.BehaviorUnit) []models.Diagnostic {
	var diags []models.Diagnostic

	for _, method := range unit.Methods {
		if !method.IsAsync {
			continue
		}
		diags = append(diags, models.Diagnostic{
			Severity:   models.SeverityError,
			Code:       models.CodeAsyncNotSupported,
			Behavior:   unit.Name,
			Subject:    method.Name,
			Message:    fmt.Sprintf("method '%s' is async; the target dialect has no asynchronous execution model", method.Name),
			Suggestion: "drive the work from Update with a frame counter, or dispatch a custom event",
			FixExample: fmt.Sprintf("fn %s(&mut self) { /* poll from update() */ }", method.Name),
		})
	}

	return diags
}
