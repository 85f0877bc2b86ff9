package models

import (
	"fmt"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/shared"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/usharp"
)

type TypeKind int

const (
	TypeVoid TypeKind = iota
	TypePrimitive
	TypeOption
	TypeSequence
	TypeMap
	TypeArray
	TypeBuiltin
	TypeUnitRef
)

// TypeRef is a tagged variant over the source type grammar: primitive
// scalars, Option<T>, Vec<T>, Map<K, V>, fixed arrays [T; N], runtime
// built-in types and nominal references to other behaviour units.
type TypeRef struct {
	Kind TypeKind
	Name string   // primitive source name, builtin name or unit name
	Elem *TypeRef // Option/Vec/array element, Map value
	Key  *TypeRef // Map key
	Len  int      // fixed array length
}

func Void() TypeRef                    { return TypeRef{Kind: TypeVoid} }
func Primitive(name string) TypeRef    { return TypeRef{Kind: TypePrimitive, Name: name} }
func Builtin(name string) TypeRef      { return TypeRef{Kind: TypeBuiltin, Name: name} }
func UnitRef(name string) TypeRef      { return TypeRef{Kind: TypeUnitRef, Name: name} }
func Option(elem TypeRef) TypeRef      { return TypeRef{Kind: TypeOption, Elem: &elem} }
func Sequence(elem TypeRef) TypeRef    { return TypeRef{Kind: TypeSequence, Elem: &elem} }
func Array(elem TypeRef, n int) TypeRef {
	return TypeRef{Kind: TypeArray, Elem: &elem, Len: n}
}
func Map(key, value TypeRef) TypeRef {
	return TypeRef{Kind: TypeMap, Key: &key, Elem: &value}
}

// String renders the source-language spelling of the type.
func (t TypeRef) String() string {
	switch t.Kind {
	case TypeVoid:
		return "()"
	case TypePrimitive, TypeBuiltin, TypeUnitRef:
		return t.Name
	case TypeOption:
		return fmt.Sprintf("Option<%s>", t.Elem)
	case TypeSequence:
		return fmt.Sprintf("Vec<%s>", t.Elem)
	case TypeMap:
		return fmt.Sprintf("Map<%s, %s>", t.Key, t.Elem)
	case TypeArray:
		return fmt.Sprintf("[%s; %d]", t.Elem, t.Len)
	default:
		return "<invalid>"
	}
}

// IsReference reports whether the type compiles to a null-checkable C# handle.
func (t TypeRef) IsReference() bool {
	switch t.Kind {
	case TypeUnitRef, TypeSequence, TypeArray, TypeMap:
		return true
	case TypeBuiltin:
		return usharp.BuiltinTypes[t.Name]
	case TypePrimitive:
		return t.Name == "str" || t.Name == "String"
	default:
		return false
	}
}

// IsTargetCompatible walks the variant recursively and reports whether the
// target dialect can represent it. Nested containers are rejected: the Udon
// VM has flat arrays and dictionaries only.
func (t TypeRef) IsTargetCompatible() bool {
	switch t.Kind {
	case TypeVoid:
		return true
	case TypePrimitive:
		_, ok := usharp.PrimitiveTypes[t.Name]
		return ok
	case TypeBuiltin:
		_, ok := usharp.BuiltinTypes[t.Name]
		return ok
	case TypeUnitRef:
		return true
	case TypeOption:
		// Option maps onto C# null, so only reference elements survive.
		return t.Elem.IsTargetCompatible() && t.Elem.IsReference()
	case TypeSequence, TypeArray:
		return t.Elem.IsTargetCompatible() && !t.Elem.isContainer()
	case TypeMap:
		return t.Key.Kind == TypePrimitive && t.Key.IsTargetCompatible() &&
			t.Elem.IsTargetCompatible() && !t.Elem.isContainer()
	default:
		return false
	}
}

func (t TypeRef) isContainer() bool {
	switch t.Kind {
	case TypeOption, TypeSequence, TypeMap, TypeArray:
		return true
	}
	return false
}

// CSharpType maps the variant to its emitted C# spelling.
func (t TypeRef) CSharpType() string {
	switch t.Kind {
	case TypeVoid:
		return "void"
	case TypePrimitive:
		if cs, ok := usharp.PrimitiveTypes[t.Name]; ok {
			return cs
		}
		return t.Name
	case TypeBuiltin:
		return t.Name
	case TypeUnitRef:
		return shared.ToPascal(t.Name)
	case TypeOption:
		return t.Elem.CSharpType()
	case TypeSequence, TypeArray:
		return t.Elem.CSharpType() + "[]"
	case TypeMap:
		return fmt.Sprintf("Dictionary<%s, %s>", t.Key.CSharpType(), t.Elem.CSharpType())
	default:
		return "object"
	}
}

// DefaultLiteral is the initializer emitted for a field with no declared
// default. Each variant carries its own rule.
func (t TypeRef) DefaultLiteral() string {
	switch t.Kind {
	case TypePrimitive:
		switch usharp.PrimitiveTypes[t.Name] {
		case "float":
			return "0f"
		case "double":
			return "0.0"
		case "bool":
			return "false"
		case "string":
			return "\"\""
		case "char":
			return "'\\0'"
		default:
			return "0"
		}
	case TypeBuiltin:
		switch t.Name {
		case "Vector2":
			return "Vector2.zero"
		case "Vector3":
			return "Vector3.zero"
		case "Vector4":
			return "Vector4.zero"
		case "Quaternion":
			return "Quaternion.identity"
		case "Color", "Color32":
			return "Color.white"
		default:
			return "null"
		}
	case TypeSequence:
		return fmt.Sprintf("new %s[0]", t.Elem.CSharpType())
	case TypeArray:
		return fmt.Sprintf("new %s[%d]", t.Elem.CSharpType(), t.Len)
	case TypeMap:
		return fmt.Sprintf("new %s()", t.CSharpType())
	default:
		return "null"
	}
}

// IsSynchronizable reports whether the type may carry [UdonSynced]. The
// runtime replicates a fixed scalar subset plus flat arrays of it.
func (t TypeRef) IsSynchronizable() bool {
	switch t.Kind {
	case TypePrimitive, TypeBuiltin:
		return usharp.SynchronizableTypes[t.CSharpType()]
	case TypeSequence, TypeArray:
		return t.Elem.Kind != TypeUnitRef && usharp.SynchronizableTypes[t.Elem.CSharpType()]
	default:
		return false
	}
}

// ReferencedUnits collects every behaviour unit the type mentions.
func (t TypeRef) ReferencedUnits() []string {
	var units []string
	t.walk(func(ref TypeRef) {
		if ref.Kind == TypeUnitRef {
			units = append(units, ref.Name)
		}
	})
	return units
}

// UsesCollections reports whether emitting the type needs the generic
// collections import.
func (t TypeRef) UsesCollections() bool {
	uses := false
	t.walk(func(ref TypeRef) {
		if ref.Kind == TypeMap {
			uses = true
		}
	})
	return uses
}

func (t TypeRef) walk(visit func(TypeRef)) {
	visit(t)
	if t.Key != nil {
		t.Key.walk(visit)
	}
	if t.Elem != nil {
		t.Elem.walk(visit)
	}
}

// SuggestAlternatives returns a ranked list of replacement types for a
// variant the target dialect cannot represent.
func (t TypeRef) SuggestAlternatives() []string {
	switch t.Kind {
	case TypeOption:
		if !t.Elem.IsReference() {
			return []string{
				fmt.Sprintf("%s with a sentinel value", t.Elem),
				fmt.Sprintf("bool flag paired with %s", t.Elem),
			}
		}
		return t.Elem.SuggestAlternatives()
	case TypeMap:
		return []string{
			"parallel arrays (one for keys, one for values)",
			"an int-indexed lookup array",
			"a dedicated behaviour unit holding the table",
		}
	case TypeSequence, TypeArray:
		if t.Elem.isContainer() {
			return []string{
				"a flattened array with a fixed stride",
				"one behaviour unit per inner collection",
			}
		}
		return t.Elem.SuggestAlternatives()
	case TypePrimitive:
		if _, ok := usharp.PrimitiveTypes[t.Name]; !ok {
			return []string{"i32", "f32", "String"}
		}
		return nil
	case TypeBuiltin:
		if _, ok := usharp.BuiltinTypes[t.Name]; !ok {
			return []string{"GameObject", "Transform", "a behaviour unit reference"}
		}
		return nil
	default:
		return nil
	}
}

// MarshalYAML renders the source spelling so reports stay readable.
func (t TypeRef) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}
