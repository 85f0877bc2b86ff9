package models

type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
)

func (v Visibility) String() string {
	if v == VisibilityPublic {
		return "public"
	}
	return "private"
}

// ImplementationRecord marks a unit whose behaviour trait implementation was
// found by the front-end analyzer. A unit without one is incomplete and
// cannot proceed past validation.
type ImplementationRecord struct {
	TraitName string
	ClassName string
}

type Parameter struct {
	Name string
	Type TypeRef
}

type Method struct {
	Name       string
	Parameters []Parameter
	ReturnType TypeRef
	// IsAsync must be false: the Udon VM has no asynchronous execution model.
	IsAsync    bool
	Attributes []MethodAttribute
	Body       []string
}

// EventName returns the custom event name when the method is marked as a
// custom event handler.
func (m Method) EventName() (string, bool) {
	for _, attr := range m.Attributes {
		if attr.Kind == MethodAttrCustomEvent {
			return attr.Value, true
		}
	}
	return "", false
}

func (m Method) IsCustomEvent() bool {
	_, ok := m.EventName()
	return ok
}

type Field struct {
	Name         string
	Type         TypeRef
	Visibility   Visibility
	Attributes   []FieldAttribute
	DefaultValue string
}

func (f Field) HasAttribute(kind FieldAttributeKind) bool {
	for _, attr := range f.Attributes {
		if attr.Kind == kind {
			return true
		}
	}
	return false
}

func (f Field) IsSynced() bool {
	return f.HasAttribute(FieldAttrSynced)
}

func (f Field) IsExposed() bool {
	return f.Visibility == VisibilityPublic ||
		f.HasAttribute(FieldAttrPublic) ||
		f.HasAttribute(FieldAttrSerialized)
}

// BehaviorUnit is the in-memory representation of one analyzed source
// behaviour. Names are unique across a compilation set.
type BehaviorUnit struct {
	Name                 string
	Namespace            string
	Fields               []Field
	Methods              []Method
	Attributes           []UnitAttribute
	DeclaredDependencies []string
	Implementation       *ImplementationRecord
}

func (u *BehaviorUnit) SyncedFields() []Field {
	var synced []Field
	for _, f := range u.Fields {
		if f.IsSynced() {
			synced = append(synced, f)
		}
	}
	return synced
}

// HasNetworking reports whether the unit carries any networking attribute:
// a synced field or a non-None behaviour sync mode.
func (u *BehaviorUnit) HasNetworking() bool {
	if len(u.SyncedFields()) > 0 {
		return true
	}
	for _, attr := range u.Attributes {
		if attr.Kind == UnitAttrSyncModeContinuous || attr.Kind == UnitAttrSyncModeManual {
			return true
		}
	}
	return false
}

func (u *BehaviorUnit) SyncMode() UnitAttributeKind {
	for _, attr := range u.Attributes {
		return attr.Kind
	}
	if len(u.SyncedFields()) > 0 {
		return UnitAttrSyncModeContinuous
	}
	return UnitAttrSyncModeNone
}

func (u *BehaviorUnit) Method(name string) (Method, bool) {
	for _, m := range u.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// ReferencedUnits collects every unit mentioned by field, parameter or
// return types, in declaration order, without duplicates.
func (u *BehaviorUnit) ReferencedUnits() []string {
	seen := make(map[string]bool)
	var refs []string
	add := func(names []string) {
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				refs = append(refs, name)
			}
		}
	}
	for _, f := range u.Fields {
		add(f.Type.ReferencedUnits())
	}
	for _, m := range u.Methods {
		for _, p := range m.Parameters {
			add(p.Type.ReferencedUnits())
		}
		add(m.ReturnType.ReferencedUnits())
	}
	return refs
}

// UnitIndex is the read-only name lookup shared by every pipeline stage.
type UnitIndex map[string]*BehaviorUnit

func NewUnitIndex(units []*BehaviorUnit) UnitIndex {
	index := make(UnitIndex, len(units))
	for _, unit := range units {
		index[unit.Name] = unit
	}
	return index
}
