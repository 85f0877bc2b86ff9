package models

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

type DiagnosticCode string

const (
	CodeMissingDependency        DiagnosticCode = "MissingDependency"
	CodeCircularDependency       DiagnosticCode = "CircularDependency"
	CodeIncompleteImplementation DiagnosticCode = "IncompleteImplementation"
	CodeMissingRequiredMethod    DiagnosticCode = "MissingRequiredMethod"
	CodeInvalidMethodSignature   DiagnosticCode = "InvalidMethodSignature"
	CodeAsyncNotSupported        DiagnosticCode = "AsyncNotSupported"
	CodeInvalidAttributeUsage    DiagnosticCode = "InvalidAttributeUsage"
	CodeDuplicateAttribute       DiagnosticCode = "DuplicateAttribute"
	CodeUnsupportedType          DiagnosticCode = "UnsupportedType"
	CodeUnresolvedReference      DiagnosticCode = "UnresolvedReference"
	CodeInvalidIdentifier        DiagnosticCode = "InvalidIdentifier"
)

// Diagnostic is one validation finding. Fatal conditions always surface as
// typed values carrying enough context to render a precise message.
type Diagnostic struct {
	Severity   Severity       `json:"severity" yaml:"severity"`
	Code       DiagnosticCode `json:"code" yaml:"code"`
	Behavior   string         `json:"behavior" yaml:"behavior"`
	Subject    string         `json:"subject,omitempty" yaml:"subject,omitempty"`
	Message    string         `json:"message" yaml:"message"`
	Suggestion string         `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	FixExample string         `json:"fix_example,omitempty" yaml:"fix_example,omitempty"`
}

// HasBlocking reports whether any diagnostic is an error.
func HasBlocking(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func CountBySeverity(diags []Diagnostic, severity Severity) int {
	count := 0
	for _, d := range diags {
		if d.Severity == severity {
			count++
		}
	}
	return count
}
