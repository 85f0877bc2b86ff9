package loader

import (
	"testing"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
)

func TestParseTypeScalars(t *testing.T) {
	cases := []struct {
		expr string
		kind models.TypeKind
		name string
	}{
		{"i32", models.TypePrimitive, "i32"},
		{"f32", models.TypePrimitive, "f32"},
		{"String", models.TypePrimitive, "String"},
		{"bool", models.TypePrimitive, "bool"},
		{"GameObject", models.TypeBuiltin, "GameObject"},
		{"VRCPlayerApi", models.TypeBuiltin, "VRCPlayerApi"},
		{"DoorController", models.TypeUnitRef, "DoorController"},
		{"()", models.TypeVoid, ""},
	}
	for _, c := range cases {
		got, err := ParseType(c.expr)
		if err != nil {
			t.Errorf("ParseType(%q) failed: %v", c.expr, err)
			continue
		}
		if got.Kind != c.kind || got.Name != c.name {
			t.Errorf("ParseType(%q) = %+v, want kind %v name %q", c.expr, got, c.kind, c.name)
		}
	}
}

func TestParseTypeOption(t *testing.T) {
	got, err := ParseType("Option<GameObject>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != models.TypeOption {
		t.Fatalf("expected Option, got %+v", got)
	}
	if got.Elem.Kind != models.TypeBuiltin || got.Elem.Name != "GameObject" {
		t.Errorf("expected GameObject element, got %+v", got.Elem)
	}
}

func TestParseTypeNested(t *testing.T) {
	got, err := ParseType("Vec<Option<Transform>>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != models.TypeSequence || got.Elem.Kind != models.TypeOption {
		t.Fatalf("expected Vec<Option<...>>, got %s", got)
	}
	if got.Elem.Elem.Name != "Transform" {
		t.Errorf("expected Transform leaf, got %+v", got.Elem.Elem)
	}
}

func TestParseTypeMap(t *testing.T) {
	got, err := ParseType("Map<String, i32>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != models.TypeMap {
		t.Fatalf("expected Map, got %+v", got)
	}
	if got.Key.Name != "String" || got.Elem.Name != "i32" {
		t.Errorf("expected String keys and i32 values, got %s", got)
	}
}

func TestParseTypeArray(t *testing.T) {
	got, err := ParseType("[f32; 16]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != models.TypeArray || got.Len != 16 {
		t.Fatalf("expected [f32; 16], got %+v", got)
	}
	if got.Elem.Name != "f32" {
		t.Errorf("expected f32 element, got %+v", got.Elem)
	}
}

func TestParseTypeWhitespaceTolerance(t *testing.T) {
	exprs := []string{" Map< String , i32 > ", "Vec< i32 >", "[ i32 ; 4 ]"}
	for _, expr := range exprs {
		if _, err := ParseType(expr); err != nil {
			t.Errorf("ParseType(%q) failed: %v", expr, err)
		}
	}
}

func TestParseTypeErrors(t *testing.T) {
	bad := []string{
		"",
		"Option<",
		"Option<i32",
		"Vec<>",
		"Map<String>",
		"Map<String, >",
		"[i32]",
		"[i32; ]",
		"i32 extra",
		"Option<i32> trailing",
	}
	for _, expr := range bad {
		if _, err := ParseType(expr); err == nil {
			t.Errorf("ParseType(%q) should fail", expr)
		}
	}
}
