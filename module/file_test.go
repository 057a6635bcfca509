package module

import (
	"testing"

	"github.com/kyouko-taiga/nirc/ir"
)

func header(major, minor int32) []byte {
	be := func(v int32) []byte {
		return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	}
	b := be(fileIdentifier)
	b = append(b, be(major)...)
	b = append(b, be(minor)...)
	return b
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0}
	if _, err := Decode(b); err == nil {
		t.Fatal("expected an error for an invalid file identifier")
	}
}

func TestDecodeHeaderAlwaysSetsHasEntryPoints(t *testing.T) {
	b := header(4, 2)
	f, err := Decode(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Header.HasEntryPoints {
		t.Error("expected HasEntryPoints to be true")
	}
	if f.Header.CompatibilityLevel != 4 || f.Header.Revision != 2 {
		t.Errorf("got level %d revision %d, want 4 and 2", f.Header.CompatibilityLevel, f.Header.Revision)
	}
}

func TestDecodeEmptyFileHasNoDefinitions(t *testing.T) {
	f, err := Decode(header(4, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Definitions) != 0 {
		t.Errorf("got %d definitions, want 0", len(f.Definitions))
	}
}

func TestDecodeMethodDefinitionWithNoInstructions(t *testing.T) {
	// tagDefinitionDefine, empty attribute set, a member symbol naming a
	// zero-parameter function returning unit, zero instructions, empty
	// debug information, and an empty source position.
	body := []byte{
		3,         // tagDefinitionDefine
		0,         // empty attribute set
		2,         // tagSymbolMember
		1,         // tagSymbolTop (owner)
		2, 1, 'M', // tagStringInserted, len=1, "M"
		0,    // signature mangled name is empty (tagStringEmpty)
		12,   // tagTypeFunction
		0,    // zero params
		17,   // tagTypeUnit (return type)
		0,    // zero instructions
		0,    // zero local names
		0,    // zero lexical scopes
		0,    // empty source position (tagStringEmpty)
		0, 0, // line, column
	}

	f, err := Decode(append(header(4, 2), body...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Definitions) != 1 {
		t.Fatalf("got %d definitions, want 1", len(f.Definitions))
	}
	m, ok := f.Definitions[0].(ir.MethodDefinition)
	if !ok {
		t.Fatalf("got %#v, want MethodDefinition", f.Definitions[0])
	}
	if len(m.Instructions) != 0 {
		t.Errorf("got %d instructions, want 0", len(m.Instructions))
	}
	if m.Name.Top.ID != "M" {
		t.Errorf("got owner %q, want %q", m.Name.Top.ID, "M")
	}
}

func TestDecodeConstantBindingDefinition(t *testing.T) {
	// tagDefinitionConstant, empty attribute set, a member symbol naming
	// "C", an i32 type, the constant value 5, and an empty source position.
	body := []byte{
		1,         // tagDefinitionConstant
		0,         // empty attribute set
		2,         // tagSymbolMember
		1,         // tagSymbolTop (owner)
		2, 1, 'C', // tagStringInserted, len=1, "C"
		0,    // signature mangled name is empty (tagStringEmpty)
		6,    // tagTypeInt
		7,    // tagValueInt
		5,    // signed LEB128 value 5
		0,    // empty source position path (tagStringEmpty)
		0, 0, // line, column
	}

	f, err := Decode(append(header(4, 2), body...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Definitions) != 1 {
		t.Fatalf("got %d definitions, want 1", len(f.Definitions))
	}
	bind, ok := f.Definitions[0].(ir.BindingDefinition)
	if !ok {
		t.Fatalf("got %#v, want BindingDefinition", f.Definitions[0])
	}
	if !bind.IsConstant {
		t.Error("expected IsConstant to be true")
	}
	v, ok := bind.Value.(ir.IntValue)
	if !ok || v.Value != 5 {
		t.Errorf("got %#v, want IntValue{5}", bind.Value)
	}
}

func TestDecodeTrailingBytesAreRejected(t *testing.T) {
	b := append(header(4, 2), 0xAB)
	if _, err := Decode(b); err == nil {
		t.Fatal("expected a trailing byte to be rejected as a malformed definition")
	}
}
