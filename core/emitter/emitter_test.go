package emitter

import (
	"strings"
	"testing"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
)

func TestRenderUnitBasicClass(t *testing.T) {
	unit := &models.BehaviorUnit{
		Name: "door_controller",
		Methods: []models.Method{{
			Name:       "Start",
			ReturnType: models.Void(),
			Attributes: []models.MethodAttribute{{Kind: models.MethodAttrLifecycle}},
			Body:       []string{"isOpen = false;"},
		}},
		Fields: []models.Field{{
			Name: "is_open",
			Type: models.Primitive("bool"),
		}},
	}

	text, err := New().RenderUnit(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"public class DoorController : UdonSharpBehaviour",
		"private bool isOpen = false;",
		"public override void Start()",
		"isOpen = false;",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "UdonBehaviourSyncMode") {
		t.Error("unit without networking should not carry a sync mode attribute")
	}
}

func TestRenderUnitSyncedNetworking(t *testing.T) {
	unit := &models.BehaviorUnit{
		Name:       "Counter",
		Attributes: []models.UnitAttribute{{Kind: models.UnitAttrSyncModeManual}},
		Fields: []models.Field{{
			Name: "count",
			Type: models.Primitive("i32"),
			Attributes: []models.FieldAttribute{
				{Kind: models.FieldAttrPublic},
				{Kind: models.FieldAttrSynced},
			},
		}},
	}

	text, err := New().RenderUnit(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"[UdonBehaviourSyncMode(BehaviourSyncMode.Manual)]",
		"[UdonSynced]",
		"public int count = 0;",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}

func TestRenderFieldAttributesAndDefaults(t *testing.T) {
	unit := &models.BehaviorUnit{
		Name: "Sign",
		Fields: []models.Field{
			{
				Name: "title",
				Type: models.Primitive("String"),
				Attributes: []models.FieldAttribute{
					{Kind: models.FieldAttrHeader, Value: "Display"},
					{Kind: models.FieldAttrTooltip, Value: "Shown on the sign"},
					{Kind: models.FieldAttrSerialized},
				},
			},
			{
				Name:         "speed",
				Type:         models.Primitive("f32"),
				DefaultValue: "1.5f",
			},
			{
				Name: "offset",
				Type: models.Builtin("Vector3"),
			},
		},
	}

	text, err := New().RenderUnit(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		`[Header("Display")]`,
		`[Tooltip("Shown on the sign")]`,
		"[SerializeField]",
		`private string title = "";`,
		"private float speed = 1.5f;",
		"private Vector3 offset = Vector3.zero;",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}

func TestRenderCustomEventMethod(t *testing.T) {
	unit := &models.BehaviorUnit{
		Name: "Receiver",
		Methods: []models.Method{{
			Name:       "on_score_changed",
			ReturnType: models.Void(),
			Attributes: []models.MethodAttribute{{Kind: models.MethodAttrCustomEvent, Value: "ScoreChanged"}},
			Body:       []string{"UpdateDisplay();"},
		}},
	}

	text, err := New().RenderUnit(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "public void OnScoreChanged()") {
		t.Errorf("custom event handler should be a public parameterless method:\n%s", text)
	}
}

func TestRenderLifecycleWithParameters(t *testing.T) {
	unit := &models.BehaviorUnit{
		Name: "Greeter",
		Methods: []models.Method{{
			Name:       "OnPlayerJoined",
			ReturnType: models.Void(),
			Parameters: []models.Parameter{{Name: "player", Type: models.Builtin("VRCPlayerApi")}},
			Attributes: []models.MethodAttribute{{Kind: models.MethodAttrLifecycle}},
		}},
	}

	text, err := New().RenderUnit(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "public override void OnPlayerJoined(VRCPlayerApi player)") {
		t.Errorf("lifecycle override signature wrong:\n%s", text)
	}
}

func TestRenderFileShell(t *testing.T) {
	e := New()
	class, err := e.RenderUnit(&models.BehaviorUnit{Name: "Door"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := e.RenderFile("World.Generated", []string{"UdonSharp", "UnityEngine"}, []string{class})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"// <auto-generated>",
		"using UdonSharp;",
		"using UnityEngine;",
		"namespace World.Generated",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Count(text, "{") != strings.Count(text, "}") {
		t.Errorf("unbalanced braces in emitted file:\n%s", text)
	}
}

func TestRenderHelpersStaticUtilityClass(t *testing.T) {
	helpers := []models.Method{{
		Name:       "clamp01",
		ReturnType: models.Primitive("f32"),
		Parameters: []models.Parameter{{Name: "value", Type: models.Primitive("f32")}},
		Body:       []string{"return Mathf.Clamp01(value);"},
	}}

	text, err := New().RenderHelpers("SharedUtilities", helpers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"public class SharedUtilities : UdonSharpBehaviour",
		"public float Clamp01(float value)",
		"return Mathf.Clamp01(value);",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}

func TestRenderedClassHasBalancedBraces(t *testing.T) {
	unit := &models.BehaviorUnit{
		Name: "Busy",
		Fields: []models.Field{
			{Name: "a", Type: models.Primitive("i32")},
			{Name: "b", Type: models.Sequence(models.Primitive("f32"))},
		},
		Methods: []models.Method{
			{Name: "Start", ReturnType: models.Void(), Attributes: []models.MethodAttribute{{Kind: models.MethodAttrLifecycle}}},
			{Name: "Update", ReturnType: models.Void(), Attributes: []models.MethodAttribute{{Kind: models.MethodAttrLifecycle}}, Body: []string{"a += 1;"}},
			{Name: "Reset", ReturnType: models.Void(), Body: []string{"a = 0;"}},
		},
	}
	text, err := New().RenderUnit(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(text, "{") != strings.Count(text, "}") {
		t.Errorf("unbalanced braces:\n%s", text)
	}
}
