package ir

// Operation is the right-hand side of a let-instruction, computing a value
// of its ResultType from zero or more operands.
//
// The producer declares several additional reserved operations
// (loadAtomic, storeAtomic, and "zone"-allocating variants of classalloc
// and arrayalloc) that no released version of the format actually emits;
// this package accordingly does not model them, and decoding one is an
// error rather than a silently accepted no-op.
type Operation interface {
	isOperation()
	ResultType() Type
	String() string
}

// CallOperation calls Callee, of function type Signature, with Args.
type CallOperation struct {
	Signature FunctionType
	Callee    Value
	Args      []Value
}

func (CallOperation) isOperation()       {}
func (o CallOperation) ResultType() Type { return o.Signature.Return }
func (o CallOperation) String() string   { return "call " + o.Callee.String() }

// LoadOperation reads a value of type Ty through pointer Ptr under
// ordering Order.
type LoadOperation struct {
	Ty    Type
	Ptr   Value
	Order MemoryOrder
}

func (LoadOperation) isOperation()       {}
func (o LoadOperation) ResultType() Type { return o.Ty }
func (o LoadOperation) String() string   { return "load " + o.Ty.String() + ", " + o.Ptr.String() }

// StoreOperation writes Value through pointer Ptr under ordering Order,
// yielding unit.
type StoreOperation struct {
	Ty    Type
	Ptr   Value
	Value Value
	Order MemoryOrder
}

func (StoreOperation) isOperation()       {}
func (StoreOperation) ResultType() Type   { return UnitType() }
func (o StoreOperation) String() string   { return "store " + o.Value.String() + ", " + o.Ptr.String() }

// ElementOperation computes the address of a part of Ptr (typed Ty) reached
// by following Indexes, yielding a pointer.
type ElementOperation struct {
	Ty      Type
	Ptr     Value
	Indexes []uint32
}

func (ElementOperation) isOperation()       {}
func (ElementOperation) ResultType() Type   { return PointerType() }
func (o ElementOperation) String() string   { return "element " + o.Ty.String() + ", " + o.Ptr.String() }

// ExtractOperation reads the part of Aggregate identified by Indexes.
type ExtractOperation struct {
	Aggregate Value
	Indexes   []uint32
}

func (ExtractOperation) isOperation() {}
func (o ExtractOperation) ResultType() Type {
	return ElementAtPath(o.Aggregate.Type(), o.Indexes)
}
func (o ExtractOperation) String() string { return "extract " + o.Aggregate.String() }

// InsertOperation returns a copy of Aggregate with the part identified by
// Indexes replaced by Value.
type InsertOperation struct {
	Aggregate Value
	Value     Value
	Indexes   []uint32
}

func (InsertOperation) isOperation()       {}
func (o InsertOperation) ResultType() Type { return o.Aggregate.Type() }
func (o InsertOperation) String() string   { return "insert " + o.Aggregate.String() }

// StackAllocateOperation reserves room for Count contiguous values of type
// Ty on the current frame, yielding a pointer to the first.
type StackAllocateOperation struct {
	Ty    Type
	Count uint64
}

func (StackAllocateOperation) isOperation()       {}
func (StackAllocateOperation) ResultType() Type   { return PointerType() }
func (o StackAllocateOperation) String() string   { return "stackalloc " + o.Ty.String() }

// ClassAllocateOperation allocates a new heap instance of ClassName,
// optionally in the zone identified by Zone, yielding a reference typed
// to it.
type ClassAllocateOperation struct {
	ClassName TopSymbol
	HasZone   bool
	Zone      Value
}

func (ClassAllocateOperation) isOperation() {}
func (o ClassAllocateOperation) ResultType() Type {
	return ReferenceType{Name: o.ClassName, IsExact: true, IsNullable: false}
}
func (o ClassAllocateOperation) String() string { return "classalloc " + o.ClassName.String() }

// FieldLoadOperation reads field Name (of type Ty) from object Obj.
type FieldLoadOperation struct {
	Ty   Type
	Obj  Value
	Name MemberSymbol
}

func (FieldLoadOperation) isOperation()       {}
func (o FieldLoadOperation) ResultType() Type { return o.Ty }
func (o FieldLoadOperation) String() string   { return "fieldload " + o.Name.String() }

// FieldStoreOperation writes Value to field Name (of type Ty) of object
// Obj, yielding unit.
type FieldStoreOperation struct {
	Ty    Type
	Obj   Value
	Name  MemberSymbol
	Value Value
}

func (FieldStoreOperation) isOperation()       {}
func (FieldStoreOperation) ResultType() Type   { return UnitType() }
func (o FieldStoreOperation) String() string   { return "fieldstore " + o.Name.String() }

// FieldOperation computes the address of field Name on object Obj, typed
// as a pointer.
type FieldOperation struct {
	Obj  Value
	Name MemberSymbol
}

func (FieldOperation) isOperation()       {}
func (FieldOperation) ResultType() Type   { return PointerType() }
func (o FieldOperation) String() string   { return "field " + o.Name.String() }

// MethodOperation resolves virtual method Signature on receiver Obj,
// yielding a pointer to the resolved function.
type MethodOperation struct {
	Obj       Value
	Signature Signature
}

func (MethodOperation) isOperation()       {}
func (MethodOperation) ResultType() Type   { return PointerType() }
func (o MethodOperation) String() string   { return "method " + o.Signature.MangledName }

// DynamicMethodOperation resolves method Signature dynamically by name on
// receiver Obj, yielding a pointer to the resolved function.
type DynamicMethodOperation struct {
	Obj       Value
	Signature Signature
}

func (DynamicMethodOperation) isOperation()       {}
func (DynamicMethodOperation) ResultType() Type   { return PointerType() }
func (o DynamicMethodOperation) String() string   { return "dynmethod " + o.Signature.MangledName }

// ModuleOperation loads (initializing on first access) the singleton
// instance of Name, yielding a reference typed to it.
type ModuleOperation struct {
	Name TopSymbol
}

func (ModuleOperation) isOperation() {}
func (o ModuleOperation) ResultType() Type {
	return ReferenceType{Name: o.Name, IsExact: true, IsNullable: false}
}
func (o ModuleOperation) String() string { return "module " + o.Name.String() }

// AsOperation asserts that Obj has type Ty, yielding Obj reinterpreted at
// that type.
type AsOperation struct {
	Ty  Type
	Obj Value
}

func (AsOperation) isOperation()       {}
func (o AsOperation) ResultType() Type { return o.Ty }
func (o AsOperation) String() string   { return "as[" + o.Ty.String() + "] " + o.Obj.String() }

// IsOperation tests whether Obj has type Ty, yielding a boolean.
type IsOperation struct {
	Ty  Type
	Obj Value
}

func (IsOperation) isOperation()       {}
func (IsOperation) ResultType() Type   { return U1() }
func (o IsOperation) String() string   { return "is[" + o.Ty.String() + "] " + o.Obj.String() }

// CopyOperation yields Value unchanged; used to introduce a fresh local
// for an otherwise-trivial value, e.g. across a basic block boundary.
type CopyOperation struct {
	Value Value
}

func (CopyOperation) isOperation()       {}
func (o CopyOperation) ResultType() Type { return o.Value.Type() }
func (o CopyOperation) String() string   { return "copy " + o.Value.String() }

// SizeOfOperation yields the size in bytes of Ty, typed as size.
type SizeOfOperation struct {
	Ty Type
}

func (SizeOfOperation) isOperation()       {}
func (SizeOfOperation) ResultType() Type   { return SizeType() }
func (o SizeOfOperation) String() string   { return "sizeof " + o.Ty.String() }

// AlignmentOfOperation yields the required alignment in bytes of Ty, typed
// as size.
type AlignmentOfOperation struct {
	Ty Type
}

func (AlignmentOfOperation) isOperation()       {}
func (AlignmentOfOperation) ResultType() Type   { return SizeType() }
func (o AlignmentOfOperation) String() string   { return "alignmentof " + o.Ty.String() }

// BoxOperation wraps a primitive Value into a reference of type Ty.
type BoxOperation struct {
	Ty    Type
	Value Value
}

func (BoxOperation) isOperation() {}
func (o BoxOperation) ResultType() Type {
	return ReferenceType{Name: ClassName(o.Ty), IsExact: true, IsNullable: IsPointerBox(o.Ty)}
}
func (o BoxOperation) String() string { return "box[" + o.Ty.String() + "] " + o.Value.String() }

// UnboxOperation unwraps Value, a box of reference type Ty, into the
// primitive type Unboxed(Ty).
type UnboxOperation struct {
	Ty    Type
	Value Value
}

func (UnboxOperation) isOperation() {}
func (o UnboxOperation) ResultType() Type {
	u, _ := Unboxed(o.Ty)
	return u
}
func (o UnboxOperation) String() string { return "unbox[" + o.Ty.String() + "] " + o.Value.String() }

// VarOperation declares a fresh mutable slot holding values of type Ty,
// yielding a var-typed reference to it.
type VarOperation struct {
	Ty Type
}

func (VarOperation) isOperation()       {}
func (o VarOperation) ResultType() Type { return VarType{Type: o.Ty} }
func (o VarOperation) String() string   { return "var " + o.Ty.String() }

// VarLoadOperation reads the current value held by var-typed slot Slot.
type VarLoadOperation struct {
	Slot Value
}

func (VarLoadOperation) isOperation() {}
func (o VarLoadOperation) ResultType() Type {
	v, ok := o.Slot.Type().(VarType)
	if !ok {
		panic("varload operand is not var-typed")
	}
	return v.Type
}
func (o VarLoadOperation) String() string { return "varload " + o.Slot.String() }

// VarStoreOperation writes Value into var-typed slot Slot, yielding unit.
type VarStoreOperation struct {
	Slot  Value
	Value Value
}

func (VarStoreOperation) isOperation()       {}
func (VarStoreOperation) ResultType() Type   { return UnitType() }
func (o VarStoreOperation) String() string   { return "varstore " + o.Slot.String() }

// ArrayAllocateOperation allocates a new array of Ty elements holding Count
// of them, optionally in the zone identified by Zone, yielding a reference
// to it.
type ArrayAllocateOperation struct {
	Ty      Type
	Count   Value
	HasZone bool
	Zone    Value
}

func (ArrayAllocateOperation) isOperation() {}
func (o ArrayAllocateOperation) ResultType() Type {
	return ArrayReferenceType{Element: o.Ty, IsNullable: false}
}
func (o ArrayAllocateOperation) String() string { return "arrayalloc " + o.Ty.String() }

// ArrayLoadOperation reads element Index of array Arr, of element type Ty.
type ArrayLoadOperation struct {
	Ty    Type
	Arr   Value
	Index uint32
}

func (ArrayLoadOperation) isOperation()       {}
func (o ArrayLoadOperation) ResultType() Type { return o.Ty }
func (o ArrayLoadOperation) String() string   { return "arrayload " + o.Arr.String() }

// ArrayStoreOperation writes Value to element Index (of type Ty) of array
// Arr, yielding unit.
type ArrayStoreOperation struct {
	Ty    Type
	Arr   Value
	Index uint32
	Value Value
}

func (ArrayStoreOperation) isOperation()       {}
func (ArrayStoreOperation) ResultType() Type   { return UnitType() }
func (o ArrayStoreOperation) String() string   { return "arraystore " + o.Arr.String() }

// ArrayLengthOperation yields the number of elements in array Arr, typed
// as a 32-bit integer.
type ArrayLengthOperation struct {
	Arr Value
}

func (ArrayLengthOperation) isOperation()       {}
func (ArrayLengthOperation) ResultType() Type   { return I32() }
func (o ArrayLengthOperation) String() string   { return "arraylength " + o.Arr.String() }

// FenceOperation enforces memory ordering Order without otherwise
// computing a value.
type FenceOperation struct {
	Order MemoryOrder
}

func (FenceOperation) isOperation()       {}
func (FenceOperation) ResultType() Type   { return UnitType() }
func (o FenceOperation) String() string   { return "fence " + o.Order.String() }

// BinaryApplyOperation applies Op to Left and Right, both of type Ty.
type BinaryApplyOperation struct {
	Op    BinaryOperator
	Ty    Type
	Left  Value
	Right Value
}

func (BinaryApplyOperation) isOperation()       {}
func (o BinaryApplyOperation) ResultType() Type { return o.Ty }
func (o BinaryApplyOperation) String() string   { return o.Op.String() + " " + o.Ty.String() }

// CompareOperation compares Left and Right, both of type Ty, yielding a
// boolean.
type CompareOperation struct {
	Op    ComparisonOperator
	Ty    Type
	Left  Value
	Right Value
}

func (CompareOperation) isOperation()       {}
func (CompareOperation) ResultType() Type   { return U1() }
func (o CompareOperation) String() string   { return o.Op.String() + " " + o.Ty.String() }

// ConvertOperation converts Value to type Ty using Op.
type ConvertOperation struct {
	Op    ConversionOperator
	Ty    Type
	Value Value
}

func (ConvertOperation) isOperation()       {}
func (o ConvertOperation) ResultType() Type { return o.Ty }
func (o ConvertOperation) String() string   { return o.Op.String() + " " + o.Ty.String() }
