// Package codegen lowers decoded NIR definitions into LLVM IR text using
// github.com/llir/llvm. It implements the subset of the instruction stream
// that maps directly onto LLVM instructions (loads, stores, calls, binary
// arithmetic, comparisons, and conversions); method bodies that need more
// than that (virtual dispatch, boxing, array/class allocation, exception
// unwinding) are out of scope here, same as the rest of the runtime object
// model this package does not attempt to lower.
package codegen

import (
	"fmt"
	"io/ioutil"

	llvmir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/kyouko-taiga/nirc/ir"
	"github.com/kyouko-taiga/nirc/logging"
)

// Generator converts decoded Definitions into a single LLVM module, one
// call to Emit per top-level Definition, in the order they appear in the
// source file.
type Generator struct {
	// name is the module name reported in the emitted LLVM IR's header.
	name string

	// mod is the LLVM module being built.
	mod *llvmir.Module

	// globals maps a definition's mangled name to the LLVM value declaring
	// it: a *llvmir.Func for Forward/Method definitions, a *llvmir.Global
	// for Binding definitions.
	globals map[string]value.Value

	// fn and locals are valid only while Emit is lowering a MethodDefinition
	// body; they are reset at the start of each call.
	fn     *llvmir.Func
	locals map[ir.Local]value.Value
	blocks map[ir.Local]*llvmir.Block
}

// NewGenerator creates a generator that will build a single LLVM module
// named name.
func NewGenerator(name string) *Generator {
	mod := llvmir.NewModule()
	mod.SourceFilename = name
	return &Generator{
		name:    name,
		mod:     mod,
		globals: make(map[string]value.Value),
	}
}

// Module returns the LLVM module built so far.
func (g *Generator) Module() *llvmir.Module { return g.mod }

// WriteToFile writes the current module's textual representation to a
// temporary file and returns its path.
func (g *Generator) WriteToFile() (string, error) {
	file, err := ioutil.TempFile("", "nirc-codegen.*.ll")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := g.mod.WriteTo(file); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Emit lowers a single top-level Definition into g's module.
func (g *Generator) Emit(def ir.Definition) error {
	switch d := def.(type) {
	case ir.ForwardDefinition:
		return g.emitForward(d)
	case ir.MethodDefinition:
		return g.emitMethod(d)
	case ir.BindingDefinition:
		return g.emitBinding(d)
	case ir.TraitDefinition, ir.ClassDefinition, ir.ModuleDefinition:
		// TODO: lower classes/modules to LLVM struct types once field layout
		// is threaded through from the class hierarchy; traits have no LLVM
		// representation of their own.
		return nil
	default:
		return fmt.Errorf("codegen: unsupported definition %T", def)
	}
}

func (g *Generator) emitForward(d ir.ForwardDefinition) error {
	fn, err := g.declareFunc(d.Name.String(), d.Signature)
	if err != nil {
		return err
	}
	fn.Linkage = enum.LinkageExternal
	return nil
}

func (g *Generator) emitBinding(d ir.BindingDefinition) error {
	llty, err := convType(d.Ty)
	if err != nil {
		return err
	}

	name := d.Name.String()
	global := g.mod.NewGlobal(name, llty)
	global.Immutable = d.IsConstant

	if init, err := convConstant(d.Value); err == nil && init != nil {
		global.Init = init
	} else {
		global.Init = constant.NewZeroInitializer(llty)
	}

	g.globals[name] = global
	return nil
}

func (g *Generator) declareFunc(name string, sig ir.FunctionType) (*llvmir.Func, error) {
	if existing, ok := g.globals[name]; ok {
		if fn, ok := existing.(*llvmir.Func); ok {
			return fn, nil
		}
		return nil, fmt.Errorf("codegen: %s is already declared as a non-function global", name)
	}

	retType, err := convType(sig.Return)
	if err != nil {
		return nil, err
	}

	params := make([]*llvmir.Param, len(sig.Parameters))
	for i, p := range sig.Parameters {
		ptype, err := convType(p)
		if err != nil {
			return nil, err
		}
		params[i] = llvmir.NewParam(fmt.Sprintf("a%d", i), ptype)
	}

	fn := g.mod.NewFunc(name, retType, params...)
	g.globals[name] = fn
	return fn, nil
}

func (g *Generator) emitMethod(d ir.MethodDefinition) error {
	fn, err := g.declareFunc(d.Name.String(), d.Signature)
	if err != nil {
		return err
	}
	fn.Linkage = enum.LinkageInternal

	g.fn = fn
	g.locals = make(map[ir.Local]value.Value)
	g.blocks = make(map[ir.Local]*llvmir.Block)

	// Pre-create one LLVM block per label so forward jumps resolve.
	for _, inst := range d.Instructions {
		if label, ok := inst.(ir.LabelInstruction); ok {
			g.blocks[label.ID] = fn.NewBlock(blockName(label.ID))
		}
	}

	var block *llvmir.Block
	if b, ok := g.blocks[ir.Local(0)]; ok {
		block = b
	} else if len(fn.Blocks) == 0 {
		block = fn.NewBlock("entry")
	} else {
		block = fn.Blocks[0]
	}

	for _, inst := range d.Instructions {
		var err error
		block, err = g.emitInstruction(block, inst)
		if err != nil {
			return fmt.Errorf("codegen: %s: %w", d.Name, err)
		}
	}

	g.fn, g.locals, g.blocks = nil, nil, nil
	return nil
}

func blockName(id ir.Local) string { return fmt.Sprintf("L%s", id.String()) }

// emitInstruction lowers one instruction, returning the block subsequent
// instructions should append to (a LabelInstruction starts a new one).
func (g *Generator) emitInstruction(block *llvmir.Block, inst ir.Instruction) (*llvmir.Block, error) {
	switch i := inst.(type) {
	case ir.LabelInstruction:
		target, ok := g.blocks[i.ID]
		if !ok {
			return nil, fmt.Errorf("label %s has no pre-allocated block", i.ID)
		}
		return target, nil

	case ir.LetInstruction:
		v, err := g.emitOperation(block, i.Operation)
		if err != nil {
			return nil, err
		}
		if v != nil {
			g.locals[i.ID] = v
		}
		return block, g.emitNext(block, i.Next)

	case ir.RetInstruction:
		v, err := g.operand(i.Value)
		if err != nil {
			return nil, err
		}
		if _, isUnit := i.Value.(ir.UnitValue); isUnit {
			block.NewRet(nil)
		} else {
			block.NewRet(v)
		}
		return block, nil

	case ir.JumpInstruction:
		return block, g.emitNext(block, i.Target)

	case ir.IfInstruction:
		cond, err := g.operand(i.Condition)
		if err != nil {
			return nil, err
		}
		success, err := g.targetBlock(i.Success)
		if err != nil {
			return nil, err
		}
		failure, err := g.targetBlock(i.Failure)
		if err != nil {
			return nil, err
		}
		block.NewCondBr(cond, success, failure)
		return block, nil

	case ir.UnreachableInstruction:
		block.NewUnreachable()
		return block, nil

	default:
		return nil, fmt.Errorf("instruction %T is not supported by the code generator", inst)
	}
}

// emitNext lowers a terminator continuation that is either trivial (None,
// already handled by the caller emitting a real terminator) or a simple,
// argument-less jump to a label. Block arguments, unwind edges, and switch
// targets require PHI-node bookkeeping this generator does not implement.
func (g *Generator) emitNext(block *llvmir.Block, next ir.Next) error {
	switch n := next.(type) {
	case ir.NoneNext:
		return nil
	case ir.LabelNext:
		if len(n.Args) != 0 {
			return fmt.Errorf("codegen: block arguments are not supported")
		}
		target, ok := g.blocks[n.Local]
		if !ok {
			return fmt.Errorf("codegen: jump to undeclared label %s", n.Local)
		}
		block.NewBr(target)
		return nil
	default:
		return fmt.Errorf("codegen: %T continuations are not supported", next)
	}
}

func (g *Generator) targetBlock(next ir.Next) (*llvmir.Block, error) {
	label, ok := next.(ir.LabelNext)
	if !ok {
		return nil, fmt.Errorf("codegen: %T is not a supported branch target", next)
	}
	if len(label.Args) != 0 {
		return nil, fmt.Errorf("codegen: block arguments are not supported")
	}
	target, ok := g.blocks[label.Local]
	if !ok {
		return nil, fmt.Errorf("codegen: branch to undeclared label %s", label.Local)
	}
	return target, nil
}

// emitOperation lowers the subset of Operation documented as the code
// generator's contract: load, store, call, binary arithmetic, comparison,
// and conversion. Anything else is reported as an error rather than
// silently dropped.
func (g *Generator) emitOperation(block *llvmir.Block, op ir.Operation) (value.Value, error) {
	switch o := op.(type) {
	case ir.LoadOperation:
		ty, err := convType(o.Ty)
		if err != nil {
			return nil, err
		}
		ptr, err := g.operand(o.Ptr)
		if err != nil {
			return nil, err
		}
		return block.NewLoad(ty, ptr), nil

	case ir.StoreOperation:
		ptr, err := g.operand(o.Ptr)
		if err != nil {
			return nil, err
		}
		val, err := g.operand(o.Value)
		if err != nil {
			return nil, err
		}
		block.NewStore(val, ptr)
		return nil, nil

	case ir.CallOperation:
		callee, err := g.operand(o.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]value.Value, len(o.Args))
		for i, a := range o.Args {
			v, err := g.operand(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return block.NewCall(callee, args...), nil

	case ir.BinaryApplyOperation:
		return g.emitBinary(block, o)

	case ir.CompareOperation:
		return g.emitCompare(block, o)

	case ir.ConvertOperation:
		return g.emitConvert(block, o)

	default:
		return nil, fmt.Errorf("operation %T is not supported by the code generator", op)
	}
}

func (g *Generator) emitBinary(block *llvmir.Block, o ir.BinaryApplyOperation) (value.Value, error) {
	lhs, err := g.operand(o.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := g.operand(o.Right)
	if err != nil {
		return nil, err
	}

	switch o.Op {
	case ir.Iadd:
		return block.NewAdd(lhs, rhs), nil
	case ir.Fadd:
		return block.NewFAdd(lhs, rhs), nil
	case ir.Isub:
		return block.NewSub(lhs, rhs), nil
	case ir.Fsub:
		return block.NewFSub(lhs, rhs), nil
	case ir.Imul:
		return block.NewMul(lhs, rhs), nil
	case ir.Fmul:
		return block.NewFMul(lhs, rhs), nil
	case ir.Sdiv:
		return block.NewSDiv(lhs, rhs), nil
	case ir.Udiv:
		return block.NewUDiv(lhs, rhs), nil
	case ir.Fdiv:
		return block.NewFDiv(lhs, rhs), nil
	case ir.Srem:
		return block.NewSRem(lhs, rhs), nil
	case ir.Urem:
		return block.NewURem(lhs, rhs), nil
	case ir.Frem:
		return block.NewFRem(lhs, rhs), nil
	case ir.Shl:
		return block.NewShl(lhs, rhs), nil
	case ir.Lshr:
		return block.NewLShr(lhs, rhs), nil
	case ir.Ashr:
		return block.NewAShr(lhs, rhs), nil
	case ir.BAnd:
		return block.NewAnd(lhs, rhs), nil
	case ir.BOr:
		return block.NewOr(lhs, rhs), nil
	case ir.BXor:
		return block.NewXor(lhs, rhs), nil
	default:
		return nil, fmt.Errorf("binary operator %s is not supported by the code generator", o.Op)
	}
}

func (g *Generator) emitCompare(block *llvmir.Block, o ir.CompareOperation) (value.Value, error) {
	lhs, err := g.operand(o.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := g.operand(o.Right)
	if err != nil {
		return nil, err
	}

	if ipred, ok := integerPredicate(o.Op); ok {
		return block.NewICmp(ipred, lhs, rhs), nil
	}
	if fpred, ok := floatPredicate(o.Op); ok {
		return block.NewFCmp(fpred, lhs, rhs), nil
	}
	return nil, fmt.Errorf("comparison operator %s is not supported by the code generator", o.Op)
}

func integerPredicate(op ir.ComparisonOperator) (enum.IPred, bool) {
	switch op {
	case ir.Ieq:
		return enum.IPredEQ, true
	case ir.Ine:
		return enum.IPredNE, true
	case ir.Ugt:
		return enum.IPredUGT, true
	case ir.Uge:
		return enum.IPredUGE, true
	case ir.Ult:
		return enum.IPredULT, true
	case ir.Ule:
		return enum.IPredULE, true
	case ir.Sgt:
		return enum.IPredSGT, true
	case ir.Sge:
		return enum.IPredSGE, true
	case ir.Slt:
		return enum.IPredSLT, true
	case ir.Sle:
		return enum.IPredSLE, true
	}
	return 0, false
}

func floatPredicate(op ir.ComparisonOperator) (enum.FPred, bool) {
	switch op {
	case ir.Feq:
		return enum.FPredOEQ, true
	case ir.Fne:
		return enum.FPredONE, true
	case ir.Fgt:
		return enum.FPredOGT, true
	case ir.Fge:
		return enum.FPredOGE, true
	case ir.Flt:
		return enum.FPredOLT, true
	case ir.Fle:
		return enum.FPredOLE, true
	}
	return 0, false
}

func (g *Generator) emitConvert(block *llvmir.Block, o ir.ConvertOperation) (value.Value, error) {
	v, err := g.operand(o.Value)
	if err != nil {
		return nil, err
	}
	to, err := convType(o.Ty)
	if err != nil {
		return nil, err
	}

	switch o.Op {
	case ir.Trunc:
		return block.NewTrunc(v, to), nil
	case ir.Zext, ir.ZSizeCast:
		return block.NewZExt(v, to), nil
	case ir.Sext, ir.SSizeCast:
		return block.NewSExt(v, to), nil
	case ir.Fptrunc:
		return block.NewFPTrunc(v, to), nil
	case ir.Fpext:
		return block.NewFPExt(v, to), nil
	case ir.Fptoui:
		return block.NewFPToUI(v, to), nil
	case ir.Fptosi:
		return block.NewFPToSI(v, to), nil
	case ir.Uitofp:
		return block.NewUIToFP(v, to), nil
	case ir.Sitofp:
		return block.NewSIToFP(v, to), nil
	case ir.Ptrtoint:
		return block.NewPtrToInt(v, to), nil
	case ir.Inttoptr:
		return block.NewIntToPtr(v, to), nil
	case ir.Bitcast:
		return block.NewBitCast(v, to), nil
	default:
		return nil, fmt.Errorf("conversion operator %s is not supported by the code generator", o.Op)
	}
}

// operand resolves a Value appearing as an operand within a method body:
// either a reference to an already-computed local, or a constant.
func (g *Generator) operand(v ir.Value) (value.Value, error) {
	if local, ok := v.(ir.LocalValue); ok {
		val, ok := g.locals[local.ID]
		if !ok {
			return nil, fmt.Errorf("use of undefined local %s", local.ID)
		}
		return val, nil
	}
	return convConstant(v)
}

// convConstant lowers a literal Value into an LLVM constant. It returns a
// nil value (not an error) for UnitValue, which has no LLVM representation.
func convConstant(v ir.Value) (constant.Constant, error) {
	switch c := v.(type) {
	case ir.BooleanValue:
		return constant.NewBool(c.Value), nil
	case ir.CharValue:
		return constant.NewInt(types.I16, int64(c.Value)), nil
	case ir.ByteValue:
		return constant.NewInt(types.I8, int64(c.Value)), nil
	case ir.ShortValue:
		return constant.NewInt(types.I16, int64(c.Value)), nil
	case ir.IntValue:
		return constant.NewInt(types.I32, int64(c.Value)), nil
	case ir.LongValue:
		return constant.NewInt(types.I64, c.Value), nil
	case ir.SizeValue:
		return constant.NewInt(types.I64, int64(c.RawValue)), nil
	case ir.FloatValue:
		return constant.NewFloat(types.Float, float64(c.Value)), nil
	case ir.DoubleValue:
		return constant.NewFloat(types.Double, c.Value), nil
	case ir.NullValue:
		return constant.NewNull(types.I8Ptr), nil
	case ir.ZeroValue:
		ty, err := convType(c.Ty)
		if err != nil {
			return nil, err
		}
		return constant.NewZeroInitializer(ty), nil
	case ir.UnitValue:
		return nil, nil
	default:
		return nil, fmt.Errorf("value %T is not supported by the code generator as a constant", v)
	}
}

// convType lowers an ir.Type into its LLVM representation. Reference and
// array-reference types are represented opaquely as i8*, since this
// generator does not lower the runtime's class layout.
func convType(t ir.Type) (types.Type, error) {
	switch v := t.(type) {
	case ir.PredefinedType:
		switch v {
		case ir.PredefinedUnit:
			return types.Void, nil
		case ir.PredefinedNull, ir.PredefinedPointer:
			return types.I8Ptr, nil
		case ir.PredefinedSize:
			return types.I64, nil
		default:
			return nil, fmt.Errorf("predefined type %s has no LLVM representation", v)
		}

	case ir.NumericType:
		if v.IsFloatingPoint() {
			if v.BitWidth() == 32 {
				return types.Float, nil
			}
			return types.Double, nil
		}
		return types.NewInt(uint64(v.BitWidth())), nil

	case ir.ArrayValueType:
		elem, err := convType(v.Element)
		if err != nil {
			return nil, err
		}
		return types.NewArray(v.Size, elem), nil

	case ir.ArrayReferenceType, ir.ReferenceType:
		return types.I8Ptr, nil

	case ir.StructType:
		elems := make([]types.Type, len(v.Elements))
		for i, e := range v.Elements {
			elemType, err := convType(e)
			if err != nil {
				return nil, err
			}
			elems[i] = elemType
		}
		return types.NewStruct(elems...), nil

	case ir.VarType:
		inner, err := convType(v.Type)
		if err != nil {
			return nil, err
		}
		return types.NewPointer(inner), nil

	case ir.FunctionType:
		ret, err := convType(v.Return)
		if err != nil {
			return nil, err
		}
		params := make([]types.Type, len(v.Parameters))
		for i, p := range v.Parameters {
			ptype, err := convType(p)
			if err != nil {
				return nil, err
			}
			params[i] = ptype
		}
		return types.NewPointer(types.NewFunc(ret, params...)), nil

	default:
		return nil, fmt.Errorf("type %s has no LLVM representation", t)
	}
}

// LogUnsupported reports, through the shared logger, that a definition was
// skipped because the generator does not implement its lowering. Callers
// walking a whole module can choose to call this instead of treating Emit's
// error as fatal, mirroring the collaborator contract: the generator is
// allowed to be incomplete as long as it says so.
func LogUnsupported(name string, err error) {
	logging.LogSkipWarning(name, err.Error())
}
