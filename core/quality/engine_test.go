package quality

import (
	"strings"
	"testing"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
)

func makeFile(name, text string, units ...string) *models.GeneratedFile {
	file := models.NewGeneratedFile(name, "UdonGenerated")
	file.EmittedText = text
	file.Units = units
	return file
}

const cleanClass = `using UdonSharp;
using UnityEngine;

namespace UdonGenerated
{
    public class DoorController : UdonSharpBehaviour
    {
        private bool isOpen = false;

        public override void Start()
        {
            isOpen = false;
        }
    }
}
`

func TestCleanFilePasses(t *testing.T) {
	files := map[string]*models.GeneratedFile{
		"DoorController.cs": makeFile("DoorController.cs", cleanClass, "DoorController"),
	}
	report := Validate(files)

	if !report.Passed {
		t.Fatalf("clean file should pass, got %v", report.Issues)
	}
	if report.CountBySeverity(models.SeverityError) != 0 {
		t.Errorf("expected no errors, got %v", report.Issues)
	}
}

func TestUnbalancedBracesFail(t *testing.T) {
	text := strings.Replace(cleanClass, "    }\n}\n", "    }\n", 1)
	files := map[string]*models.GeneratedFile{"Broken.cs": makeFile("Broken.cs", text, "Broken")}
	report := Validate(files)

	if report.Passed {
		t.Fatal("unbalanced braces must fail the report")
	}
	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "balanced-syntax" && issue.Severity == models.SeverityError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a balanced-syntax error, got %v", report.Issues)
	}
}

func TestMissingSemicolonHeuristicWarns(t *testing.T) {
	text := strings.Replace(cleanClass, "isOpen = false;\n        }", "isOpen = false\n        }", 1)
	files := map[string]*models.GeneratedFile{"Sloppy.cs": makeFile("Sloppy.cs", text, "Sloppy")}
	report := Validate(files)

	if !report.Passed {
		t.Fatal("a heuristic warning must not fail the report")
	}
	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "balanced-syntax" && issue.Severity == models.SeverityWarning {
			found = true
			if issue.Line == 0 {
				t.Error("semicolon warning should carry a line number")
			}
		}
	}
	if !found {
		t.Errorf("expected a missing-semicolon warning, got %v", report.Issues)
	}
}

func TestWrongBaseClassFails(t *testing.T) {
	text := strings.Replace(cleanClass, ": UdonSharpBehaviour", ": MonoBehaviour", 1)
	files := map[string]*models.GeneratedFile{"Wrong.cs": makeFile("Wrong.cs", text, "Wrong")}
	report := Validate(files)

	if report.Passed {
		t.Fatal("wrong base class must fail the report")
	}
	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "base-class" && strings.Contains(issue.Message, "UdonSharpBehaviour") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a base-class error, got %v", report.Issues)
	}
}

func TestNamingConventionWarnings(t *testing.T) {
	text := `namespace UdonGenerated
{
    public class door_controller : UdonSharpBehaviour
    {
        private bool IsOpen = false;
    }
}
`
	files := map[string]*models.GeneratedFile{"Bad.cs": makeFile("Bad.cs", text, "door_controller")}
	report := Validate(files)

	var classWarned, fieldWarned bool
	for _, issue := range report.Issues {
		if issue.Rule != "naming-convention" {
			continue
		}
		if strings.Contains(issue.Message, "door_controller") {
			classWarned = true
		}
		if strings.Contains(issue.Message, "IsOpen") {
			fieldWarned = true
		}
	}
	if !classWarned {
		t.Errorf("expected a class-name warning, got %v", report.Issues)
	}
	if !fieldWarned {
		t.Errorf("expected a field-name warning, got %v", report.Issues)
	}
}

const syncedWriteNoRequest = `namespace UdonGenerated
{
    public class Counter : UdonSharpBehaviour
    {
        [UdonSynced]
        public int count = 0;

        public override void Interact()
        {
            count += 1;
        }
    }
}
`

func TestSyncSafetyWarnsOnUnflushedWrite(t *testing.T) {
	files := map[string]*models.GeneratedFile{"Counter.cs": makeFile("Counter.cs", syncedWriteNoRequest, "Counter")}
	report := Validate(files)

	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "sync-safety" && strings.Contains(issue.Message, "count") {
			found = true
			if issue.Severity != models.SeverityWarning {
				t.Errorf("sync-safety should warn, got %s", issue.Severity)
			}
		}
	}
	if !found {
		t.Errorf("expected a sync-safety warning, got %v", report.Issues)
	}
}

func TestSyncSafetySilentWithRequestSerialization(t *testing.T) {
	text := strings.Replace(syncedWriteNoRequest,
		"count += 1;", "count += 1;\n            RequestSerialization();", 1)
	files := map[string]*models.GeneratedFile{"Counter.cs": makeFile("Counter.cs", text, "Counter")}
	report := Validate(files)

	for _, issue := range report.Issues {
		if issue.Rule == "sync-safety" {
			t.Errorf("unexpected sync-safety issue: %v", issue)
		}
	}
}

func TestSyncSafetyIgnoresDeclarationBehindOtherAttributes(t *testing.T) {
	text := `namespace UdonGenerated
{
    public class Counter : UdonSharpBehaviour
    {
        [UdonSynced]
        [Header("Score")]
        public int count = 0;

        public override void Start()
        {
        }
    }
}
`
	files := map[string]*models.GeneratedFile{"Counter.cs": makeFile("Counter.cs", text, "Counter")}
	report := Validate(files)

	for _, issue := range report.Issues {
		if issue.Rule == "sync-safety" {
			t.Errorf("declaration initializer should not count as a write: %v", issue)
		}
	}
}

func TestSyncSafetyStillWarnsBehindOtherAttributes(t *testing.T) {
	text := strings.Replace(syncedWriteNoRequest,
		"[UdonSynced]", "[UdonSynced]\n        [Header(\"Score\")]", 1)
	files := map[string]*models.GeneratedFile{"Counter.cs": makeFile("Counter.cs", text, "Counter")}
	report := Validate(files)

	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "sync-safety" && strings.Contains(issue.Message, "count") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a sync-safety warning, got %v", report.Issues)
	}
}

func TestNullSafetyInfoOnUncheckedDereference(t *testing.T) {
	text := `namespace UdonGenerated
{
    public class Toggler : UdonSharpBehaviour
    {
        public GameObject target = null;

        public override void Interact()
        {
            target.SetActive(true);
        }
    }
}
`
	files := map[string]*models.GeneratedFile{"Toggler.cs": makeFile("Toggler.cs", text, "Toggler")}
	report := Validate(files)

	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "null-safety" && strings.Contains(issue.Message, "target") {
			found = true
			if issue.Severity != models.SeverityInfo {
				t.Errorf("null-safety should be informational, got %s", issue.Severity)
			}
		}
	}
	if !found {
		t.Errorf("expected a null-safety note, got %v", report.Issues)
	}
	if !report.Passed {
		t.Error("info issues alone must not fail the report")
	}
}

func TestNullSafetySilentWhenChecked(t *testing.T) {
	text := `namespace UdonGenerated
{
    public class Toggler : UdonSharpBehaviour
    {
        public GameObject target = null;

        public override void Interact()
        {
            if (target != null)
            {
                target.SetActive(true);
            }
        }
    }
}
`
	files := map[string]*models.GeneratedFile{"Toggler.cs": makeFile("Toggler.cs", text, "Toggler")}
	report := Validate(files)

	for _, issue := range report.Issues {
		if issue.Rule == "null-safety" {
			t.Errorf("unexpected null-safety issue: %v", issue)
		}
	}
}

func TestEventCycleAcrossFiles(t *testing.T) {
	fileA := `namespace UdonGenerated
{
    public class Ping : UdonSharpBehaviour
    {
        public Pong partner = null;

        public override void Start()
        {
            partner.SendCustomEvent("OnPing");
        }
    }
}
`
	fileB := `namespace UdonGenerated
{
    public class Pong : UdonSharpBehaviour
    {
        public Ping partner = null;

        public override void Start()
        {
            partner.SendCustomEvent("OnPong");
        }
    }
}
`
	files := map[string]*models.GeneratedFile{
		"Ping.cs": makeFile("Ping.cs", fileA, "Ping"),
		"Pong.cs": makeFile("Pong.cs", fileB, "Pong"),
	}
	report := Validate(files)

	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "event-cycle" {
			found = true
			if issue.Severity != models.SeverityWarning {
				t.Errorf("event cycles warn rather than fail, got %s", issue.Severity)
			}
		}
	}
	if !found {
		t.Errorf("expected an event-cycle warning, got %v", report.Issues)
	}
	if !report.Passed {
		t.Error("event cycle warnings must not fail the report")
	}
}

func TestOneWayEventDispatchIsFine(t *testing.T) {
	fileA := `namespace UdonGenerated
{
    public class Ping : UdonSharpBehaviour
    {
        public Pong partner = null;

        public override void Start()
        {
            partner.SendCustomEvent("OnPing");
        }
    }
}
`
	fileB := `namespace UdonGenerated
{
    public class Pong : UdonSharpBehaviour
    {
        public override void Start()
        {
        }
    }
}
`
	files := map[string]*models.GeneratedFile{
		"Ping.cs": makeFile("Ping.cs", fileA, "Ping"),
		"Pong.cs": makeFile("Pong.cs", fileB, "Pong"),
	}
	report := Validate(files)

	for _, issue := range report.Issues {
		if issue.Rule == "event-cycle" {
			t.Errorf("one-way dispatch should not warn: %v", issue)
		}
	}
}

func TestIssuesAnnotateFiles(t *testing.T) {
	text := strings.Replace(cleanClass, ": UdonSharpBehaviour", ": MonoBehaviour", 1)
	file := makeFile("Wrong.cs", text, "Wrong")
	Validate(map[string]*models.GeneratedFile{"Wrong.cs": file})

	if len(file.Annotations) == 0 {
		t.Fatal("expected issues to be appended as file annotations")
	}
	if !strings.Contains(file.Annotations[0], "base-class") {
		t.Errorf("annotation should name the rule, got %q", file.Annotations[0])
	}
}
