package ir

// BinaryOperator enumerates the arithmetic and bitwise operators usable in
// a BinaryApplyOperation.
type BinaryOperator int

const (
	Iadd BinaryOperator = iota
	Fadd
	Isub
	Fsub
	Imul
	Fmul
	Sdiv
	Udiv
	Fdiv
	Srem
	Urem
	Frem
	Shl
	Lshr
	Ashr
	BAnd
	BOr
	BXor
)

func (o BinaryOperator) String() string {
	names := [...]string{
		"iadd", "fadd", "isub", "fsub", "imul", "fmul", "sdiv", "udiv",
		"fdiv", "srem", "urem", "frem", "shl", "lshr", "ashr", "and", "or", "xor",
	}
	return names[o]
}

// ComparisonOperator enumerates the relational operators usable in a
// CompareOperation.
type ComparisonOperator int

const (
	Ieq ComparisonOperator = iota
	Ine
	Ugt
	Uge
	Ult
	Ule
	Sgt
	Sge
	Slt
	Sle
	Feq
	Fne
	Fgt
	Fge
	Flt
	Fle
)

func (o ComparisonOperator) String() string {
	names := [...]string{
		"ieq", "ine", "ugt", "uge", "ult", "ule", "sgt", "sge",
		"slt", "sle", "feq", "fne", "fgt", "fge", "flt", "fle",
	}
	return names[o]
}

// ConversionOperator enumerates the numeric conversions usable in a
// ConvertOperation.
//
// This ordering follows the wire tag numbering used by the decoder's
// dispatch; it is unrelated to, and does not need to agree with, the
// ordinal values an in-process representation of the same enum might
// choose elsewhere.
type ConversionOperator int

const (
	Trunc ConversionOperator = iota
	Zext
	Sext
	Fptrunc
	Fpext
	Fptoui
	Fptosi
	Uitofp
	Sitofp
	Ptrtoint
	Inttoptr
	Bitcast
	SSizeCast
	ZSizeCast
)

func (o ConversionOperator) String() string {
	names := [...]string{
		"trunc", "zext", "sext", "fptrunc", "fpext", "fptoui", "fptosi",
		"uitofp", "sitofp", "ptrtoint", "inttoptr", "bitcast",
		"ssize_cast", "zsize_cast",
	}
	return names[o]
}

// MemoryOrder enumerates the orderings available to atomic load, store,
// and fence operations.
type MemoryOrder int

const (
	Unordered MemoryOrder = iota
	Monotonic
	Acquire
	Release
	AcqRel
	SeqCst
)

func (o MemoryOrder) String() string {
	names := [...]string{"unordered", "monotonic", "acquire", "release", "acq_rel", "seq_cst"}
	return names[o]
}
