package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/usharp"
)

// ParseType parses a source type expression into a TypeRef. The grammar is
// small: identifiers, Option<T>, Vec<T>, Map<K, V> and fixed arrays [T; N].
func ParseType(expr string) (models.TypeRef, error) {
	p := &typeParser{input: strings.TrimSpace(expr)}
	t, err := p.parse()
	if err != nil {
		return models.TypeRef{}, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return models.TypeRef{}, fmt.Errorf("unexpected trailing input in type %q", expr)
	}
	return t, nil
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) parse() (models.TypeRef, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return models.TypeRef{}, fmt.Errorf("empty type expression")
	}

	if p.input[p.pos] == '[' {
		return p.parseArray()
	}

	name := p.readIdentifier()
	if name == "" {
		return models.TypeRef{}, fmt.Errorf("expected type name at position %d in %q", p.pos, p.input)
	}

	switch name {
	case "Option":
		elem, err := p.parseOneArg(name)
		if err != nil {
			return models.TypeRef{}, err
		}
		return models.Option(elem), nil
	case "Vec":
		elem, err := p.parseOneArg(name)
		if err != nil {
			return models.TypeRef{}, err
		}
		return models.Sequence(elem), nil
	case "Map":
		key, value, err := p.parseTwoArgs(name)
		if err != nil {
			return models.TypeRef{}, err
		}
		return models.Map(key, value), nil
	case "()":
		return models.Void(), nil
	}

	if _, ok := usharp.PrimitiveTypes[name]; ok {
		return models.Primitive(name), nil
	}
	if _, ok := usharp.BuiltinTypes[name]; ok {
		return models.Builtin(name), nil
	}
	// Anything else is a nominal reference to a behaviour unit; whether it
	// resolves is the graph engine's and organizer's concern.
	return models.UnitRef(name), nil
}

func (p *typeParser) parseArray() (models.TypeRef, error) {
	p.pos++ // consume '['
	elem, err := p.parse()
	if err != nil {
		return models.TypeRef{}, err
	}
	p.skipSpace()
	if !p.consume(';') {
		return models.TypeRef{}, fmt.Errorf("expected ';' in array type %q", p.input)
	}
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil {
		return models.TypeRef{}, fmt.Errorf("invalid array length in %q", p.input)
	}
	p.skipSpace()
	if !p.consume(']') {
		return models.TypeRef{}, fmt.Errorf("expected ']' in array type %q", p.input)
	}
	return models.Array(elem, n), nil
}

func (p *typeParser) parseOneArg(name string) (models.TypeRef, error) {
	p.skipSpace()
	if !p.consume('<') {
		return models.TypeRef{}, fmt.Errorf("expected '<' after %s", name)
	}
	elem, err := p.parse()
	if err != nil {
		return models.TypeRef{}, err
	}
	p.skipSpace()
	if !p.consume('>') {
		return models.TypeRef{}, fmt.Errorf("expected '>' closing %s", name)
	}
	return elem, nil
}

func (p *typeParser) parseTwoArgs(name string) (models.TypeRef, models.TypeRef, error) {
	p.skipSpace()
	if !p.consume('<') {
		return models.TypeRef{}, models.TypeRef{}, fmt.Errorf("expected '<' after %s", name)
	}
	key, err := p.parse()
	if err != nil {
		return models.TypeRef{}, models.TypeRef{}, err
	}
	p.skipSpace()
	if !p.consume(',') {
		return models.TypeRef{}, models.TypeRef{}, fmt.Errorf("expected ',' in %s", name)
	}
	value, err := p.parse()
	if err != nil {
		return models.TypeRef{}, models.TypeRef{}, err
	}
	p.skipSpace()
	if !p.consume('>') {
		return models.TypeRef{}, models.TypeRef{}, fmt.Errorf("expected '>' closing %s", name)
	}
	return key, value, nil
}

func (p *typeParser) readIdentifier() string {
	start := p.pos
	if p.pos+1 < len(p.input) && p.input[p.pos] == '(' && p.input[p.pos+1] == ')' {
		p.pos += 2
		return "()"
	}
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}

func (p *typeParser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}
