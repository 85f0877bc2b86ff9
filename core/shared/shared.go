package shared

import (
	"strings"
	"unicode"
)

func ToTitle(s string) string {
	if s == "" {
		return s
	}
	first := strings.ToUpper(s[:1])
	rest := s[1:]
	return first + rest
}

// ToPascal converts snake_case or camelCase identifiers to PascalCase.
func ToPascal(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(ToTitle(part))
	}
	return b.String()
}

// ToCamel converts snake_case or PascalCase identifiers to camelCase.
func ToCamel(s string) string {
	pascal := ToPascal(s)
	if pascal == "" {
		return pascal
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}

func IsPascalCase(s string) bool {
	if s == "" {
		return false
	}
	if !unicode.IsUpper(rune(s[0])) {
		return false
	}
	return !strings.Contains(s, "_")
}

func IsCamelCase(s string) bool {
	if s == "" {
		return false
	}
	if !unicode.IsLower(rune(s[0])) {
		return false
	}
	return !strings.Contains(s, "_")
}

// IsValidIdentifier reports whether s is usable as a C# identifier.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
