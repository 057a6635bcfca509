package ir

import (
	"fmt"
	"strconv"
)

// Value is a constant value appearing in a NIR file.
//
// A Value is one of NullValue, UnitValue, ZeroValue, BooleanValue,
// SizeValue, CharValue, ByteValue, ShortValue, IntValue, LongValue,
// FloatValue, DoubleValue, ArrayValue, StructValue, ByteStringValue,
// LocalValue, SymbolValue, ConstantValue, StringValue, VirtualValue, or
// ClassOfValue. Use a type switch to discriminate between them.
type Value interface {
	isValue()
	// Type returns the static type of the value.
	Type() Type
	String() string
}

// NullValue is the null reference literal.
type NullValue struct{}

func (NullValue) isValue()       {}
func (NullValue) Type() Type     { return NullType() }
func (NullValue) String() string { return "null" }

// UnitValue is the unique value of the unit type.
type UnitValue struct{}

func (UnitValue) isValue()       {}
func (UnitValue) Type() Type     { return UnitType() }
func (UnitValue) String() string { return "unit" }

// ZeroValue is the all-zero-bits literal of type Ty.
type ZeroValue struct {
	Ty Type
}

func (ZeroValue) isValue()       {}
func (v ZeroValue) Type() Type   { return v.Ty }
func (ZeroValue) String() string { return "zero" }

// BooleanValue is a boolean literal.
type BooleanValue struct {
	Value bool
}

func (BooleanValue) isValue()   {}
func (BooleanValue) Type() Type { return U1() }
func (v BooleanValue) String() string {
	return strconv.FormatBool(v.Value)
}

// SizeValue is a platform-width unsigned integer literal, used to denote
// sizes and counts.
type SizeValue struct {
	RawValue uint64
}

func (SizeValue) isValue()   {}
func (SizeValue) Type() Type { return SizeType() }
func (v SizeValue) String() string {
	return strconv.FormatUint(v.RawValue, 10)
}

// CharValue is a 16-bit character literal.
type CharValue struct {
	Value uint16
}

func (CharValue) isValue()   {}
func (CharValue) Type() Type { return U16() }
func (v CharValue) String() string {
	return strconv.FormatUint(uint64(v.Value), 10)
}

// ByteValue is an 8-bit literal.
type ByteValue struct {
	Value int8
}

func (ByteValue) isValue()   {}
func (ByteValue) Type() Type { return I8() }
func (v ByteValue) String() string {
	return strconv.FormatInt(int64(v.Value), 10)
}

// ShortValue is a 16-bit signed integer literal.
type ShortValue struct {
	Value int16
}

func (ShortValue) isValue()   {}
func (ShortValue) Type() Type { return I16() }
func (v ShortValue) String() string {
	return strconv.FormatInt(int64(v.Value), 10)
}

// IntValue is a 32-bit signed integer literal.
type IntValue struct {
	Value int32
}

func (IntValue) isValue()   {}
func (IntValue) Type() Type { return I32() }
func (v IntValue) String() string {
	return strconv.FormatInt(int64(v.Value), 10)
}

// LongValue is a 64-bit signed integer literal.
type LongValue struct {
	Value int64
}

func (LongValue) isValue()   {}
func (LongValue) Type() Type { return I64() }
func (v LongValue) String() string {
	return strconv.FormatInt(v.Value, 10)
}

// FloatValue is a 32-bit floating-point literal.
type FloatValue struct {
	Value float32
}

func (FloatValue) isValue()   {}
func (FloatValue) Type() Type { return F32() }
func (v FloatValue) String() string {
	return strconv.FormatFloat(float64(v.Value), 'g', -1, 32)
}

// DoubleValue is a 64-bit floating-point literal.
type DoubleValue struct {
	Value float64
}

func (DoubleValue) isValue()   {}
func (DoubleValue) Type() Type { return F64() }
func (v DoubleValue) String() string {
	return strconv.FormatFloat(v.Value, 'g', -1, 64)
}

// ArrayValue is a fixed-size homogeneous sequence of values.
//
// Its Type is an ArrayValueType of Element whose Size is the number of
// Values.
type ArrayValue struct {
	Element Type
	Values  []Value
}

func (ArrayValue) isValue() {}
func (v ArrayValue) Type() Type {
	return ArrayValueType{Element: v.Element, Size: uint64(len(v.Values))}
}
func (v ArrayValue) String() string {
	s := v.Element.String() + "["
	for i, e := range v.Values {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// StructValue is an aggregate of named-by-position field values.
type StructValue struct {
	Values []Value
}

func (StructValue) isValue() {}
func (v StructValue) Type() Type {
	elements := make([]Type, len(v.Values))
	for i, e := range v.Values {
		elements[i] = e.Type()
	}
	return StructType{Elements: elements}
}
func (v StructValue) String() string {
	s := "{"
	for i, e := range v.Values {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "}"
}

// ByteStringValue is a raw byte string literal.
//
// Its Type reports one more element than Bytes actually holds, mirroring
// the producer's own (off-by-one, but faithfully reproduced) byte_count.
type ByteStringValue struct {
	Bytes []byte
}

func (ByteStringValue) isValue() {}
func (v ByteStringValue) Type() Type {
	return ArrayValueType{Element: I8(), Size: uint64(len(v.Bytes)) + 1}
}
func (v ByteStringValue) String() string { return fmt.Sprintf("c%q", v.Bytes) }

// LocalValue is a reference to an SSA-form local.
type LocalValue struct {
	ID Local
	Ty Type
}

func (LocalValue) isValue()     {}
func (v LocalValue) Type() Type { return v.Ty }
func (v LocalValue) String() string { return v.ID.String() }

// SymbolValue is a reference to a top-level or member symbol.
type SymbolValue struct {
	Name Symbol
	Ty   Type
}

func (SymbolValue) isValue()     {}
func (v SymbolValue) Type() Type { return v.Ty }
func (v SymbolValue) String() string { return v.Name.String() }

// ConstantValue wraps another Value, yielding a pointer to it rather than
// the wrapped value's own type.
type ConstantValue struct {
	Value Value
}

func (ConstantValue) isValue()     {}
func (ConstantValue) Type() Type   { return PointerType() }
func (v ConstantValue) String() string { return "const " + v.Value.String() }

// StringValue is a string literal, typed as an exact, non-nullable
// reference to String.
type StringValue struct {
	Value string
}

func (StringValue) isValue() {}
func (StringValue) Type() Type {
	return ReferenceType{Name: RuntimeString.Name, IsExact: true, IsNullable: false}
}
func (v StringValue) String() string { return strconv.Quote(v.Value) }

// VirtualValue is a placeholder value identified by Key, produced during
// virtual dispatch lowering.
type VirtualValue struct {
	Key uint64
}

func (VirtualValue) isValue()     {}
func (VirtualValue) Type() Type   { return VirtualType() }
func (v VirtualValue) String() string { return "virtual(" + strconv.FormatUint(v.Key, 10) + ")" }

// ClassOfValue is a reference to the java.lang.Class instance describing
// ClassName, typed as a reference to Class itself.
type ClassOfValue struct {
	ClassName TopSymbol
}

func (ClassOfValue) isValue()     {}
func (ClassOfValue) Type() Type   { return RuntimeClass }
func (v ClassOfValue) String() string { return "classOf[" + v.ClassName.String() + "]" }
