package models

type EdgeKind int

const (
	// EdgeExplicit is an author-declared dependency.
	EdgeExplicit EdgeKind = iota
	// EdgeIncidental is inferred from a field referencing another unit's type.
	EdgeIncidental
)

func (k EdgeKind) String() string {
	if k == EdgeExplicit {
		return "explicit"
	}
	return "incidental"
}

type EdgeStrength int

const (
	StrengthMedium EdgeStrength = iota
	StrengthHigh
)

func (s EdgeStrength) String() string {
	if s == StrengthHigh {
		return "high"
	}
	return "medium"
}

type DependencyEdge struct {
	From     string       `json:"from" yaml:"from"`
	To       string       `json:"to" yaml:"to"`
	Kind     EdgeKind     `json:"kind" yaml:"kind"`
	Strength EdgeStrength `json:"strength" yaml:"strength"`
}
