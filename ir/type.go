package ir

import (
	"fmt"
	"strconv"
)

// Type is the type of a NIR entity.
//
// A Type is one of PredefinedType, NumericType, ArrayValueType,
// ArrayReferenceType, StructType, ReferenceType, VarType, or FunctionType.
type Type interface {
	isType()
	String() string
}

// PredefinedType is a predefined type symbol.
type PredefinedType int

const (
	PredefinedNull PredefinedType = iota
	PredefinedUnit
	PredefinedPointer
	PredefinedSize
	PredefinedVararg
	PredefinedNothing
	PredefinedVirtual
)

func (PredefinedType) isType() {}

func (p PredefinedType) String() string {
	switch p {
	case PredefinedNull:
		return "null"
	case PredefinedUnit:
		return "unit"
	case PredefinedPointer:
		return "ptr"
	case PredefinedSize:
		return "size"
	case PredefinedVararg:
		return "..."
	case PredefinedNothing:
		return "nothing"
	case PredefinedVirtual:
		return "virtual"
	default:
		panic("unreachable")
	}
}

// NumericType is the type of a number.
//
// The most significant bit of RawValue is set if the type represents
// integers, in which case the next bit encodes signedness. In any case the
// 14 least significant bits encode a bit width.
type NumericType struct {
	RawValue uint16
}

func (NumericType) isType() {}

// NewIntegerType returns the type of integers having width bits and a
// signed representation if and only if isSigned is true.
//
// Precondition: width is smaller than 1<<14.
func NewIntegerType(width uint16, isSigned bool) NumericType {
	if width >= (1 << 14) {
		panic("invalid integer width")
	}
	tag := uint16(0b10)
	if isSigned {
		tag = 0b11
	}
	return NumericType{RawValue: width | (tag << 14)}
}

// NewFloatingPointType returns the type of floating-point numbers having
// width bits.
//
// Precondition: width is 32 or 64.
func NewFloatingPointType(width uint16) NumericType {
	if width != 32 && width != 64 {
		panic("invalid floating-point width")
	}
	return NumericType{RawValue: width}
}

func (n NumericType) IsInteger() bool { return n.RawValue&(1<<15) != 0 }

func (n NumericType) IsSigned() bool { return n.RawValue&(1<<14) != 0 }

func (n NumericType) IsFloatingPoint() bool { return !n.IsInteger() }

func (n NumericType) BitWidth() uint32 { return uint32(n.RawValue &^ (0b11 << 14)) }

func (n NumericType) String() string {
	if n.IsInteger() {
		prefix := "u"
		if n.IsSigned() {
			prefix = "i"
		}
		return prefix + strconv.FormatUint(uint64(n.BitWidth()), 10)
	}
	return "f" + strconv.FormatUint(uint64(n.BitWidth()), 10)
}

// ArrayValueType is the type of a homogeneous, fixed-size sequence of
// values laid out contiguously.
type ArrayValueType struct {
	Element Type
	Size    uint64
}

func (ArrayValueType) isType() {}

func (t ArrayValueType) String() string {
	return fmt.Sprintf("%s[%d]", t.Element, t.Size)
}

// ArrayReferenceType is the type of a reference to a Scala array.
type ArrayReferenceType struct {
	Element    Type
	IsNullable bool
}

func (ArrayReferenceType) isType() {}

func (t ArrayReferenceType) String() string {
	s := "Array[" + t.Element.String() + "]"
	if t.IsNullable {
		s += "?"
	}
	return s
}

// StructType is the type of a heterogeneous collection of data members.
type StructType struct {
	Elements []Type
}

func (StructType) isType() {}

func (t StructType) String() string {
	s := "{"
	for i, e := range t.Elements {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "}"
}

// ReferenceType is the type of a reference to a class, module, or trait.
type ReferenceType struct {
	Name       TopSymbol
	IsExact    bool
	IsNullable bool
}

func (ReferenceType) isType() {}

// NewReferenceType constructs a reference type with the default
// nullability and exactness used by the decoder's producer: not exact,
// nullable.
func NewReferenceType(name TopSymbol) ReferenceType {
	return ReferenceType{Name: name, IsExact: false, IsNullable: true}
}

func (t ReferenceType) String() string {
	s := t.Name.String()
	if t.IsExact {
		s += "!"
	}
	if t.IsNullable {
		s += "?"
	}
	return s
}

// VarType is the type of a mutable variable slot holding a value of Type.
type VarType struct {
	Type Type
}

func (VarType) isType() {}

func (t VarType) String() string { return "var[" + t.Type.String() + "]" }

// FunctionType is the type of a function.
type FunctionType struct {
	Parameters []Type
	Return     Type
}

func (FunctionType) isType() {}

func (t FunctionType) String() string {
	s := "("
	for i, p := range t.Parameters {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") => " + t.Return.String()
}

// -----------------------------------------------------------------------------
// Constructors for the predefined and fixed-width numeric types.

func NullType() Type      { return PredefinedNull }
func UnitType() Type      { return PredefinedUnit }
func PointerType() Type   { return PredefinedPointer }
func SizeType() Type      { return PredefinedSize }
func VarargType() Type    { return PredefinedVararg }
func NothingType() Type   { return PredefinedNothing }
func VirtualType() Type   { return PredefinedVirtual }

func U1() Type  { return NewIntegerType(1, false) }
func I8() Type  { return NewIntegerType(8, true) }
func I16() Type { return NewIntegerType(16, true) }
func U16() Type { return NewIntegerType(16, false) }
func I32() Type { return NewIntegerType(32, true) }
func I64() Type { return NewIntegerType(64, true) }
func F32() Type { return NewFloatingPointType(32) }
func F64() Type { return NewFloatingPointType(64) }

// -----------------------------------------------------------------------------
// Free functions dispatching over the closed set of Type implementations,
// mirroring the role of nir::type::TypeTrait in the producer.

// Normalized returns the normalized form of t: a canonical representative of
// the set of types structurally equivalent to t, used when comparing types
// for compatibility rather than exact identity.
func Normalized(t Type) Type {
	switch v := t.(type) {
	case PredefinedType:
		return v
	case NumericType:
		return v
	case ArrayValueType:
		return ArrayValueType{Element: Normalized(v.Element), Size: v.Size}
	case ArrayReferenceType:
		return ArrayReferenceType{Element: Normalized(v.Element), IsNullable: true}
	case StructType:
		elements := make([]Type, len(v.Elements))
		for i, e := range v.Elements {
			elements[i] = Normalized(e)
		}
		return StructType{Elements: elements}
	case ReferenceType:
		return ReferenceType{Name: v.Name, IsExact: false, IsNullable: true}
	case VarType:
		return VarType{Type: Normalized(v.Type)}
	case FunctionType:
		parameters := make([]Type, len(v.Parameters))
		for i, p := range v.Parameters {
			parameters[i] = Normalized(p)
		}
		return FunctionType{Parameters: parameters, Return: Normalized(v.Return)}
	default:
		panic("unreachable")
	}
}

// ElementAt returns the type of the i-th part of an instance of t.
//
// It panics if i is not a valid index in t.
func ElementAt(t Type, i uint32) Type {
	switch v := t.(type) {
	case ArrayValueType:
		if uint64(i) >= v.Size {
			panic("index is out of range")
		}
		return v.Element
	case StructType:
		return v.Elements[i]
	default:
		panic(fmt.Sprintf("type '%s' does not implement element_at", t))
	}
}

// ElementAtPath returns the type of the part identified by path relative to
// an instance of t.
func ElementAtPath(t Type, path []uint32) Type {
	if len(path) == 0 {
		return t
	}
	return ElementAtPath(ElementAt(t, path[0]), path[1:])
}

// ClassName returns the identifier of the class corresponding to t.
//
// It panics if t has no corresponding class.
func ClassName(t Type) TopSymbol {
	switch v := t.(type) {
	case PredefinedType:
		switch v {
		case PredefinedNull:
			return RuntimeBoxedNull.Name
		case PredefinedUnit:
			return RuntimeBoxedUnit.Name
		default:
			panic(fmt.Sprintf("type '%s' has no corresponding class", t))
		}
	case ArrayReferenceType:
		return toArrayClass(v.Element)
	case ReferenceType:
		return v.Name
	default:
		panic(fmt.Sprintf("type '%s' has no corresponding class", t))
	}
}

// toArrayClass returns the name of the class representing arrays of t.
func toArrayClass(t Type) TopSymbol {
	switch {
	case typeEquals(t, U1()):
		return RuntimeBooleanArray.Name
	case typeEquals(t, U16()):
		return RuntimeCharArray.Name
	case typeEquals(t, I8()):
		return RuntimeByteArray.Name
	case typeEquals(t, I16()):
		return RuntimeShortArray.Name
	case typeEquals(t, I32()):
		return RuntimeIntArray.Name
	case typeEquals(t, I64()):
		return RuntimeLongArray.Name
	case typeEquals(t, F32()):
		return RuntimeFloatArray.Name
	case typeEquals(t, F64()):
		return RuntimeDoubleArray.Name
	default:
		return RuntimeObjectArray.Name
	}
}

// Unboxed returns the type of a box's contents if t denotes the type of a
// box, and false otherwise.
func Unboxed(t Type) (Type, bool) {
	ref, ok := t.(ReferenceType)
	if !ok {
		return nil, false
	}

	n := ref.Name.ID
	switch n {
	case "scala.scalanative.unsafe.CArray",
		"scala.scalanative.unsafe.CVarArgList",
		"scala.scalanative.unsafe.Ptr":
		return PointerType(), true
	case "scala.scalanative.unsafe.Size":
		return SizeType(), true
	case "java.lang.Boolean":
		return U1(), true
	case "java.lang.Character":
		return U16(), true
	case "java.lang.Byte":
		return I8(), true
	case "java.lang.Short":
		return I16(), true
	case "java.lang.Integer":
		return I32(), true
	case "java.lang.Long":
		return I64(), true
	case "java.lang.Float":
		return F32(), true
	case "java.lang.Double":
		return F64(), true
	}

	const prefix = "scala.scalanative.unsafe.CFuncPtr"
	if len(n) > len(prefix) && n[:len(prefix)] == prefix {
		suffix := n[len(prefix):]
		for i := 0; i <= 21; i++ {
			if suffix == strconv.Itoa(i) {
				return PointerType(), true
			}
		}
	}

	return nil, false
}

// IsBoxOf reports whether t denotes a box of u.
func IsBoxOf(t Type, u Type) bool {
	unboxed, ok := Unboxed(Normalized(t))
	return ok && typeEquals(unboxed, u)
}

// IsPointerBox reports whether t denotes a boxed pointer.
func IsPointerBox(t Type) bool {
	return IsBoxOf(t, PointerType())
}

// IsReference reports whether t denotes a reference type: this property
// holds if the corresponding type in Scala is a subtype of RefKind.
func IsReference(t Type) bool {
	switch v := t.(type) {
	case PredefinedType:
		return v == PredefinedNull || v == PredefinedUnit
	case ReferenceType, ArrayReferenceType:
		return true
	default:
		return false
	}
}

// HasKnownSize reports whether the size of t is known at compile time.
func HasKnownSize(t Type) bool {
	switch v := t.(type) {
	case PredefinedType:
		return v == PredefinedNull || v == PredefinedPointer
	case ArrayValueType:
		return HasKnownSize(v.Element)
	case StructType:
		for _, e := range v.Elements {
			if !HasKnownSize(e) {
				return false
			}
		}
		return true
	default:
		return !IsReference(t)
	}
}

// typeEquals reports structural equality between two types. Types built
// from comparable fields compare equal with ==; the aggregate variants
// (ArrayValueType, ArrayReferenceType, StructType, VarType, FunctionType)
// hold interface-typed fields and must be compared structurally instead.
func typeEquals(a, b Type) bool {
	switch av := a.(type) {
	case PredefinedType:
		bv, ok := b.(PredefinedType)
		return ok && av == bv
	case NumericType:
		bv, ok := b.(NumericType)
		return ok && av == bv
	case ArrayValueType:
		bv, ok := b.(ArrayValueType)
		return ok && av.Size == bv.Size && typeEquals(av.Element, bv.Element)
	case ArrayReferenceType:
		bv, ok := b.(ArrayReferenceType)
		return ok && av.IsNullable == bv.IsNullable && typeEquals(av.Element, bv.Element)
	case StructType:
		bv, ok := b.(StructType)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !typeEquals(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case ReferenceType:
		bv, ok := b.(ReferenceType)
		return ok && av == bv
	case VarType:
		bv, ok := b.(VarType)
		return ok && typeEquals(av.Type, bv.Type)
	case FunctionType:
		bv, ok := b.(FunctionType)
		if !ok || len(av.Parameters) != len(bv.Parameters) {
			return false
		}
		for i := range av.Parameters {
			if !typeEquals(av.Parameters[i], bv.Parameters[i]) {
				return false
			}
		}
		return typeEquals(av.Return, bv.Return)
	default:
		return false
	}
}
