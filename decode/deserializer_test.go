package decode

import (
	"testing"

	"github.com/kyouko-taiga/nirc/bytesource"
	"github.com/kyouko-taiga/nirc/ir"
)

func newDeserializer(b []byte) *Deserializer {
	s := bytesource.New(b)
	s.ByteOrder = bytesource.LittleEndian
	return New(s)
}

func TestSymbolBackReferenceRoundTrips(t *testing.T) {
	// tagSymbolTop, tagStringInserted, len=1, 'X', then a back-reference
	// (0xFF) to index 0.
	d := newDeserializer([]byte{1, 2, 1, 'X', 0xFF, 0x00})

	first, err := d.Symbol()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, ok := first.(ir.TopSymbol)
	if !ok || top.ID != "X" {
		t.Fatalf("got %#v, want TopSymbol{ID: \"X\"}", first)
	}

	second, err := d.Symbol()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Errorf("back-referenced symbol %#v does not equal original %#v", second, first)
	}
}

func TestDecodeTypeTags(t *testing.T) {
	cases := []struct {
		name string
		b    []byte
		want ir.Type
	}{
		{"boolean", []byte{byte(tagTypeBoolean)}, ir.U1()},
		{"int", []byte{byte(tagTypeInt)}, ir.I32()},
		{"long", []byte{byte(tagTypeLong)}, ir.I64()},
		{"unit", []byte{byte(tagTypeUnit)}, ir.UnitType()},
		{"null", []byte{byte(tagTypeNull)}, ir.NullType()},
	}

	for _, c := range cases {
		d := newDeserializer(c.b)
		got, err := d.Type()
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDecodeValueTags(t *testing.T) {
	d := newDeserializer([]byte{byte(tagValueTrue)})
	v, err := d.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := v.(ir.BooleanValue)
	if !ok || !b.Value {
		t.Errorf("got %#v, want BooleanValue{true}", v)
	}
}

func TestMemoryOrderAcceptsBoundaryValue(t *testing.T) {
	d := newDeserializer([]byte{5})
	order, err := d.memoryOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != ir.MemoryOrder(5) {
		t.Errorf("got %v, want 5", order)
	}
}

func TestMemoryOrderRejectsOutOfRangeValue(t *testing.T) {
	d := newDeserializer([]byte{6})
	if _, err := d.memoryOrder(); err == nil {
		t.Fatal("expected an error for memory order 6")
	}
}

func TestDecodeOperationCall(t *testing.T) {
	// FunctionType with no parameters returning unit, then a local callee,
	// then zero arguments.
	b := []byte{
		byte(tagOperationCall),
		byte(tagTypeFunction), 0, byte(tagTypeUnit), // () => unit, zero params
		byte(tagValueLocal), 0, byte(tagTypeUnit), // local #0 : unit
		0, // zero args
	}
	d := newDeserializer(b)
	op, err := d.operation()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := op.(ir.CallOperation)
	if !ok {
		t.Fatalf("got %#v, want CallOperation", op)
	}
	if len(call.Args) != 0 {
		t.Errorf("got %d args, want 0", len(call.Args))
	}
}

func TestLinktimeConditionIsUnsupported(t *testing.T) {
	d := newDeserializer(nil)
	if _, err := d.linktimeCondition(); err == nil {
		t.Fatal("expected linktime conditions to be rejected")
	}
}
