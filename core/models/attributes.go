package models

// Attribute metadata is modeled as closed enums per attribute class so the
// validator can match exhaustively and every kind has a defined legality rule.

type FieldAttributeKind int

const (
	FieldAttrPublic FieldAttributeKind = iota
	FieldAttrSerialized
	FieldAttrSynced
	FieldAttrHeader
	FieldAttrTooltip
)

func (k FieldAttributeKind) String() string {
	switch k {
	case FieldAttrPublic:
		return "public"
	case FieldAttrSerialized:
		return "SerializeField"
	case FieldAttrSynced:
		return "UdonSynced"
	case FieldAttrHeader:
		return "Header"
	case FieldAttrTooltip:
		return "Tooltip"
	default:
		return "unknown"
	}
}

type FieldAttribute struct {
	Kind FieldAttributeKind
	// Value carries display metadata for Header and Tooltip.
	Value string
}

type UnitAttributeKind int

const (
	UnitAttrSyncModeNone UnitAttributeKind = iota
	UnitAttrSyncModeContinuous
	UnitAttrSyncModeManual
)

func (k UnitAttributeKind) String() string {
	switch k {
	case UnitAttrSyncModeNone:
		return "BehaviourSyncMode.None"
	case UnitAttrSyncModeContinuous:
		return "BehaviourSyncMode.Continuous"
	case UnitAttrSyncModeManual:
		return "BehaviourSyncMode.Manual"
	default:
		return "unknown"
	}
}

type UnitAttribute struct {
	Kind UnitAttributeKind
}

type MethodAttributeKind int

const (
	MethodAttrLifecycle MethodAttributeKind = iota
	MethodAttrCustomEvent
)

func (k MethodAttributeKind) String() string {
	switch k {
	case MethodAttrLifecycle:
		return "lifecycle"
	case MethodAttrCustomEvent:
		return "custom_event"
	default:
		return "unknown"
	}
}

type MethodAttribute struct {
	Kind MethodAttributeKind
	// Value carries the event name for custom event handlers.
	Value string
}
