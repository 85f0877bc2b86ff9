package usharp

// Target-dialect constants for UdonSharp, the restricted C# dialect executed
// by the VRChat Udon VM. Every behaviour class inherits UdonSharpBehaviour and
// overrides a fixed catalogue of lifecycle callbacks.

const (
	BaseClass = "UdonSharpBehaviour"

	// RequestSerialization must follow synced-field writes under manual sync.
	RequestSerializationCall = "RequestSerialization()"

	CollectionsImport = "System.Collections.Generic"
)

// MandatoryImports is required at the top of every emitted file.
var MandatoryImports = []string{
	"UdonSharp",
	"UnityEngine",
	"VRC.SDKBase",
	"VRC.Udon",
}

// LifecycleSignature is the required shape of one lifecycle callback override.
// ParamTypes holds the C# parameter types in order; the dialect rejects any
// override whose parameter list differs.
type LifecycleSignature struct {
	ParamTypes  []string
	ParamNames  []string
	Description string
}

// Lifecycle callbacks are a closed set. Anything outside this table is either
// a custom event handler or a plain method.
var LifecycleMethods = map[string]LifecycleSignature{
	"Start":                  {Description: "called once before the first frame"},
	"Update":                 {Description: "called every frame"},
	"FixedUpdate":            {Description: "called every physics tick"},
	"LateUpdate":             {Description: "called after all Update calls"},
	"OnEnable":               {Description: "called when the behaviour is enabled"},
	"OnDisable":              {Description: "called when the behaviour is disabled"},
	"Interact":               {Description: "called when a player interacts with the object"},
	"OnPickup":               {Description: "called when the object is picked up"},
	"OnDrop":                 {Description: "called when the object is dropped"},
	"OnDeserialization":      {Description: "called after synced data arrives"},
	"OnPlayerJoined":         {ParamTypes: []string{"VRCPlayerApi"}, ParamNames: []string{"player"}, Description: "called when a player joins the instance"},
	"OnPlayerLeft":           {ParamTypes: []string{"VRCPlayerApi"}, ParamNames: []string{"player"}, Description: "called when a player leaves the instance"},
	"OnOwnershipTransferred": {ParamTypes: []string{"VRCPlayerApi"}, ParamNames: []string{"player"}, Description: "called when object ownership moves to another player"},
	"OnCollisionEnter":       {ParamTypes: []string{"Collision"}, ParamNames: []string{"collision"}, Description: "called when a collision starts"},
	"OnCollisionExit":        {ParamTypes: []string{"Collision"}, ParamNames: []string{"collision"}, Description: "called when a collision ends"},
	"OnTriggerEnter":         {ParamTypes: []string{"Collider"}, ParamNames: []string{"other"}, Description: "called when a collider enters the trigger"},
	"OnTriggerExit":          {ParamTypes: []string{"Collider"}, ParamNames: []string{"other"}, Description: "called when a collider leaves the trigger"},
}

// RequiredLifecycleMethods is the minimal contract a behaviour must implement.
var RequiredLifecycleMethods = []string{"Start"}

func IsLifecycleMethod(name string) bool {
	_, ok := LifecycleMethods[name]
	return ok
}

// PrimitiveTypes maps source scalar names to their C# equivalents.
var PrimitiveTypes = map[string]string{
	"bool":   "bool",
	"char":   "char",
	"i8":     "sbyte",
	"u8":     "byte",
	"i16":    "short",
	"u16":    "ushort",
	"i32":    "int",
	"u32":    "uint",
	"i64":    "long",
	"u64":    "ulong",
	"f32":    "float",
	"f64":    "double",
	"str":    "string",
	"String": "string",
}

// BuiltinTypes are target-runtime handle and value types usable from Udon.
// The bool marks whether the type is a reference (null-checkable handle).
var BuiltinTypes = map[string]bool{
	"VRCPlayerApi": true,
	"GameObject":   true,
	"Transform":    true,
	"Rigidbody":    true,
	"Collider":     true,
	"Collision":    true,
	"AudioSource":  true,
	"Animator":     true,
	"Text":         true,
	"TextMeshPro":  true,
	"Vector2":      false,
	"Vector3":      false,
	"Vector4":      false,
	"Quaternion":   false,
	"Color":        false,
	"Color32":      false,
}

// SynchronizableTypes is the subset of C# types allowed on [UdonSynced]
// fields. Arrays of these are synchronizable as well; nothing else is.
var SynchronizableTypes = map[string]bool{
	"bool":       true,
	"char":       true,
	"sbyte":      true,
	"byte":       true,
	"short":      true,
	"ushort":     true,
	"int":        true,
	"uint":       true,
	"long":       true,
	"ulong":      true,
	"float":      true,
	"double":     true,
	"string":     true,
	"Vector2":    true,
	"Vector3":    true,
	"Vector4":    true,
	"Quaternion": true,
	"Color":      true,
	"Color32":    true,
}

// ReservedWords may not be used as emitted identifiers.
var ReservedWords = map[string]bool{
	"abstract": true, "as": true, "base": true, "bool": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true, "checked": true,
	"class": true, "const": true, "continue": true, "decimal": true,
	"default": true, "delegate": true, "do": true, "double": true, "else": true,
	"enum": true, "event": true, "explicit": true, "extern": true, "false": true,
	"finally": true, "fixed": true, "float": true, "for": true, "foreach": true,
	"goto": true, "if": true, "implicit": true, "in": true, "int": true,
	"interface": true, "internal": true, "is": true, "lock": true, "long": true,
	"namespace": true, "new": true, "null": true, "object": true,
	"operator": true, "out": true, "override": true, "params": true,
	"private": true, "protected": true, "public": true, "readonly": true,
	"ref": true, "return": true, "sbyte": true, "sealed": true, "short": true,
	"sizeof": true, "stackalloc": true, "static": true, "string": true,
	"struct": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "uint": true, "ulong": true, "unchecked": true,
	"unsafe": true, "ushort": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "while": true,
}

// BuiltinNamespace resolves a runtime built-in type to the using statement
// it needs beyond the mandatory set.
func BuiltinNamespace(name string) (string, bool) {
	switch name {
	case "VRCPlayerApi":
		return "VRC.SDKBase", true
	case "TextMeshPro":
		return "TMPro", true
	case "Text":
		return "UnityEngine.UI", true
	default:
		return "", false
	}
}
