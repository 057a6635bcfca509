package decode

import (
	"fmt"

	"github.com/kyouko-taiga/nirc/bytesource"
	"github.com/kyouko-taiga/nirc/ir"
)

// Deserializer decodes a sequence of NIR definitions from a byte source,
// maintaining the interning tables that back-references in the source
// rely on.
//
// A Deserializer is not safe for concurrent use; each goroutine decoding
// a file should use its own instance.
type Deserializer struct {
	source *bytesource.Source

	internedSymbols []ir.Symbol
	internedTypes   []ir.Type
	internedValues  []ir.Value
	internedStrings []string
}

// New returns a Deserializer reading from source.
func New(source *bytesource.Source) *Deserializer {
	return &Deserializer{source: source}
}

func sequence[T any](decodeOne func() (T, error), source *bytesource.Source) ([]T, error) {
	n, err := source.UnsignedLEB128()
	if err != nil {
		return nil, err
	}
	result := make([]T, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := decodeOne()
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func optionalValue[T any](decodeOne func() (T, error), d *Deserializer) (bool, T, error) {
	var zero T
	present, err := d.boolean()
	if err != nil {
		return false, zero, err
	}
	if !present {
		return false, zero, nil
	}
	v, err := decodeOne()
	return true, v, err
}

func internable[T any](memo *[]T, decodeOne func() (T, error), d *Deserializer) (T, error) {
	var zero T
	if d.source.Peek() == -1 {
		if _, err := d.source.U8(); err != nil {
			return zero, err
		}
		idx, err := d.source.UnsignedLEB128()
		if err != nil {
			return zero, err
		}
		if idx >= uint64(len(*memo)) {
			return zero, fmt.Errorf("back-reference %d out of range", idx)
		}
		return (*memo)[idx], nil
	}
	p := d.source.Position()
	v, err := decodeOne()
	if err != nil {
		return zero, err
	}
	if d.source.Position() > p+2 {
		*memo = append(*memo, v)
	}
	return v, nil
}

// Symbol decodes a Symbol, consulting and updating the symbol interning
// table.
func (d *Deserializer) Symbol() (ir.Symbol, error) {
	return internable(&d.internedSymbols, d.decodeSymbol, d)
}

func (d *Deserializer) decodeSymbol() (ir.Symbol, error) {
	tag, err := d.source.U8()
	if err != nil {
		return nil, err
	}
	switch symbolTag(tag) {
	case tagSymbolNone:
		return ir.NoneSymbol{}, nil

	case tagSymbolTop:
		id, err := d.string()
		if err != nil {
			return nil, err
		}
		return ir.TopSymbol{ID: id}, nil

	case tagSymbolMember:
		owner, err := d.Symbol()
		if err != nil {
			return nil, err
		}
		top, ok := owner.(ir.TopSymbol)
		if !ok {
			return nil, fmt.Errorf("member symbol's owner is not a top-level symbol")
		}
		sig, err := d.signature()
		if err != nil {
			return nil, err
		}
		return ir.MemberSymbol{Top: top, Signature: sig}, nil

	default:
		return nil, fmt.Errorf("unexpected symbol tag %d", tag)
	}
}

func (d *Deserializer) asTopSymbol() (ir.TopSymbol, error) {
	sym, err := d.Symbol()
	if err != nil {
		return ir.TopSymbol{}, err
	}
	top, ok := sym.(ir.TopSymbol)
	if !ok {
		return ir.TopSymbol{}, fmt.Errorf("expected a top-level symbol")
	}
	return top, nil
}

func (d *Deserializer) asMemberSymbol() (ir.MemberSymbol, error) {
	sym, err := d.Symbol()
	if err != nil {
		return ir.MemberSymbol{}, err
	}
	member, ok := sym.(ir.MemberSymbol)
	if !ok {
		return ir.MemberSymbol{}, fmt.Errorf("expected a member symbol")
	}
	return member, nil
}

func (d *Deserializer) signature() (ir.Signature, error) {
	s, err := d.string()
	if err != nil {
		return ir.Signature{}, err
	}
	return ir.Signature{MangledName: s}, nil
}

// Definition decodes a single top-level Definition.
func (d *Deserializer) Definition() (ir.Definition, error) {
	tag, err := d.source.U8()
	if err != nil {
		return nil, err
	}

	attrs, attrsErr := d.attributeSet()
	if attrsErr != nil {
		return nil, attrsErr
	}

	switch definitionTag(tag) {
	case tagDefinitionVariable, tagDefinitionConstant:
		name, err := d.asMemberSymbol()
		if err != nil {
			return nil, err
		}
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		val, err := d.Value()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.BindingDefinition{
			Attrs:      attrs,
			Name:       name,
			Ty:         ty,
			Value:      val,
			IsConstant: definitionTag(tag) == tagDefinitionConstant,
			Position:   pos,
		}, nil

	case tagDefinitionDeclare:
		name, err := d.asMemberSymbol()
		if err != nil {
			return nil, err
		}
		sig, err := d.asFunctionType()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.ForwardDefinition{Attrs: attrs, Name: name, Signature: sig, Position: pos}, nil

	case tagDefinitionDefine:
		name, err := d.asMemberSymbol()
		if err != nil {
			return nil, err
		}
		sig, err := d.asFunctionType()
		if err != nil {
			return nil, err
		}
		instructions, err := sequence(d.instruction, d.source)
		if err != nil {
			return nil, err
		}
		debug, err := d.debug()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.MethodDefinition{
			Attrs:        attrs,
			Name:         name,
			Signature:    sig,
			Instructions: instructions,
			Debug:        debug,
			Position:     pos,
		}, nil

	case tagDefinitionTrait:
		name, err := d.asTopSymbol()
		if err != nil {
			return nil, err
		}
		parents, err := d.topSymbolSequence()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.TraitDefinition{Attrs: attrs, Name: name, Parents: parents, Position: pos}, nil

	case tagDefinitionClass:
		name, err := d.asTopSymbol()
		if err != nil {
			return nil, err
		}
		hasParent, parent, err := d.optionalTopSymbol()
		if err != nil {
			return nil, err
		}
		traits, err := d.topSymbolSequence()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.ClassDefinition{
			Attrs: attrs, Name: name, HasParent: hasParent, Parent: parent,
			Traits: traits, Position: pos,
		}, nil

	case tagDefinitionModule:
		name, err := d.asTopSymbol()
		if err != nil {
			return nil, err
		}
		hasParent, parent, err := d.optionalTopSymbol()
		if err != nil {
			return nil, err
		}
		traits, err := d.topSymbolSequence()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.ModuleDefinition{
			Attrs: attrs, Name: name, HasParent: hasParent, Parent: parent,
			Traits: traits, Position: pos,
		}, nil

	default:
		return nil, fmt.Errorf("unexpected definition tag %d", tag)
	}
}

func (d *Deserializer) asFunctionType() (ir.FunctionType, error) {
	t, err := d.Type()
	if err != nil {
		return ir.FunctionType{}, err
	}
	fn, ok := t.(ir.FunctionType)
	if !ok {
		return ir.FunctionType{}, fmt.Errorf("expected a function type")
	}
	return fn, nil
}

func (d *Deserializer) topSymbolSequence() ([]ir.TopSymbol, error) {
	symbols, err := sequence(d.Symbol, d.source)
	if err != nil {
		return nil, err
	}
	result := make([]ir.TopSymbol, len(symbols))
	for i, s := range symbols {
		top, ok := s.(ir.TopSymbol)
		if !ok {
			return nil, fmt.Errorf("expected a top-level symbol")
		}
		result[i] = top
	}
	return result, nil
}

func (d *Deserializer) optionalTopSymbol() (bool, ir.TopSymbol, error) {
	present, sym, err := optionalValue(d.Symbol, d)
	if err != nil || !present {
		return false, ir.TopSymbol{}, err
	}
	top, ok := sym.(ir.TopSymbol)
	if !ok {
		return false, ir.TopSymbol{}, fmt.Errorf("expected a top-level symbol")
	}
	return true, top, nil
}

func (d *Deserializer) attributeSet() (ir.AttributeSet, error) {
	attrs, err := sequence(d.attribute, d.source)
	if err != nil {
		return ir.AttributeSet{}, err
	}
	var set ir.AttributeSet
	for _, a := range attrs {
		set = set.Add(a)
	}
	return set, nil
}

func (d *Deserializer) debug() (ir.MethodDebugInformation, error) {
	names, err := d.localName()
	if err != nil {
		return ir.MethodDebugInformation{}, err
	}
	scopes, err := sequence(d.lexicalScope, d.source)
	if err != nil {
		return ir.MethodDebugInformation{}, err
	}
	return ir.MethodDebugInformation{LocalNames: names, Scopes: scopes}, nil
}

func (d *Deserializer) lexicalScope() (ir.LexicalScope, error) {
	id, err := d.scopeIdentifier()
	if err != nil {
		return ir.LexicalScope{}, err
	}
	parent, err := d.scopeIdentifier()
	if err != nil {
		return ir.LexicalScope{}, err
	}
	pos, err := d.sourcePosition()
	if err != nil {
		return ir.LexicalScope{}, err
	}
	return ir.LexicalScope{ID: id, Parent: parent, Position: pos}, nil
}

func (d *Deserializer) localName() (map[ir.Local]string, error) {
	count, err := d.source.UnsignedLEB128()
	if err != nil {
		return nil, err
	}
	result := make(map[ir.Local]string, count)
	for i := uint64(0); i < count; i++ {
		k, err := d.local()
		if err != nil {
			return nil, err
		}
		v, err := d.string()
		if err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, nil
}

func (d *Deserializer) instruction() (ir.Instruction, error) {
	tag, err := d.source.U8()
	if err != nil {
		return nil, err
	}

	switch instructionTag(tag) {
	case tagInstructionLabel:
		id, err := d.local()
		if err != nil {
			return nil, err
		}
		params, err := sequence(d.labelArgument, d.source)
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.LabelInstruction{ID: id, Parameters: params, Position: pos}, nil

	case tagInstructionLet:
		id, err := d.local()
		if err != nil {
			return nil, err
		}
		op, err := d.operation()
		if err != nil {
			return nil, err
		}
		next, err := d.next()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		scope, err := d.scopeIdentifier()
		if err != nil {
			return nil, err
		}
		return ir.LetInstruction{ID: id, Operation: op, Next: next, Position: pos, Scope: scope}, nil

	case tagInstructionUnwind:
		return nil, fmt.Errorf("unexpected instruction tag: unwind")

	case tagInstructionReturn:
		v, err := d.Value()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.RetInstruction{Value: v, Position: pos}, nil

	case tagInstructionJump:
		next, err := d.next()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.JumpInstruction{Target: next, Position: pos}, nil

	case tagInstructionIf:
		cond, err := d.Value()
		if err != nil {
			return nil, err
		}
		success, err := d.next()
		if err != nil {
			return nil, err
		}
		failure, err := d.next()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.IfInstruction{Condition: cond, Success: success, Failure: failure, Position: pos}, nil

	case tagInstructionSwitch:
		v, err := d.Value()
		if err != nil {
			return nil, err
		}
		targets, err := sequence(d.next, d.source)
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.SwitchInstruction{Value: v, Targets: targets, Position: pos}, nil

	case tagInstructionThrow:
		v, err := d.Value()
		if err != nil {
			return nil, err
		}
		unwind, err := d.next()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.ThrowInstruction{Exception: v, Unwind: unwind, Position: pos}, nil

	case tagInstructionUnreachable:
		unwind, err := d.next()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.UnreachableInstruction{Unwind: unwind, Position: pos}, nil

	case tagInstructionLinktimeIf:
		cond, err := d.linktimeCondition()
		if err != nil {
			return nil, err
		}
		success, err := d.next()
		if err != nil {
			return nil, err
		}
		failure, err := d.next()
		if err != nil {
			return nil, err
		}
		pos, err := d.sourcePosition()
		if err != nil {
			return nil, err
		}
		return ir.LinktimeIfInstruction{Condition: cond, Success: success, Failure: failure, Position: pos}, nil

	default:
		return nil, fmt.Errorf("unexpected instruction tag %d", tag)
	}
}

// Type decodes a Type, consulting and updating the type interning table.
func (d *Deserializer) Type() (ir.Type, error) {
	return internable(&d.internedTypes, d.decodeType, d)
}

func (d *Deserializer) decodeType() (ir.Type, error) {
	tag, err := d.source.U8()
	if err != nil {
		return nil, err
	}

	switch typeTag(tag) {
	case tagTypeVararg:
		return ir.VarargType(), nil
	case tagTypeBoolean:
		return ir.U1(), nil
	case tagTypePointer:
		return ir.PointerType(), nil
	case tagTypeChar:
		return ir.U16(), nil
	case tagTypeByte:
		return ir.I8(), nil
	case tagTypeShort:
		return ir.I16(), nil
	case tagTypeInt:
		return ir.I32(), nil
	case tagTypeLong:
		return ir.I64(), nil
	case tagTypeFloat:
		return ir.F32(), nil
	case tagTypeDouble:
		return ir.F64(), nil

	case tagTypeArrayValue:
		element, err := d.Type()
		if err != nil {
			return nil, err
		}
		size, sizeErr := d.source.UnsignedLEB128()
		if sizeErr != nil {
			return nil, sizeErr
		}
		return ir.ArrayValueType{Element: element, Size: size}, nil

	case tagTypeStructValue:
		elements, err := sequence(d.Type, d.source)
		if err != nil {
			return nil, err
		}
		return ir.StructType{Elements: elements}, nil

	case tagTypeFunction:
		params, err := sequence(d.Type, d.source)
		if err != nil {
			return nil, err
		}
		ret, err := d.Type()
		if err != nil {
			return nil, err
		}
		return ir.FunctionType{Parameters: params, Return: ret}, nil

	case tagTypeNull:
		return ir.NullType(), nil
	case tagTypeNothing:
		return ir.NothingType(), nil
	case tagTypeVirtual:
		return ir.VirtualType(), nil

	case tagTypeVar:
		inner, err := d.Type()
		if err != nil {
			return nil, err
		}
		return ir.VarType{Type: inner}, nil

	case tagTypeUnit:
		return ir.UnitType(), nil

	case tagTypeArray:
		element, err := d.Type()
		if err != nil {
			return nil, err
		}
		nullable, err := d.boolean()
		if err != nil {
			return nil, err
		}
		return ir.ArrayReferenceType{Element: element, IsNullable: nullable}, nil

	case tagTypeReference:
		name, err := d.asTopSymbol()
		if err != nil {
			return nil, err
		}
		exact, err := d.boolean()
		if err != nil {
			return nil, err
		}
		nullable, err := d.boolean()
		if err != nil {
			return nil, err
		}
		return ir.ReferenceType{Name: name, IsExact: exact, IsNullable: nullable}, nil

	case tagTypeSize:
		return ir.SizeType(), nil

	default:
		return nil, fmt.Errorf("unexpected type tag %d", tag)
	}
}

// Value decodes a Value, consulting and updating the value interning
// table.
func (d *Deserializer) Value() (ir.Value, error) {
	return internable(&d.internedValues, d.decodeValue, d)
}

func (d *Deserializer) decodeValue() (ir.Value, error) {
	tag, err := d.source.U8()
	if err != nil {
		return nil, err
	}

	switch valueTag(tag) {
	case tagValueTrue:
		return ir.BooleanValue{Value: true}, nil
	case tagValueFalse:
		return ir.BooleanValue{Value: false}, nil
	case tagValueNull:
		return ir.NullValue{}, nil

	case tagValueZero:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		return ir.ZeroValue{Ty: ty}, nil

	case tagValueChar:
		v, err := d.source.UnsignedLEB128()
		if err != nil {
			return nil, err
		}
		return ir.CharValue{Value: uint16(v & 0xffff)}, nil

	case tagValueByte:
		v, err := d.source.I8()
		if err != nil {
			return nil, err
		}
		return ir.ByteValue{Value: v}, nil

	case tagValueShort:
		v, err := d.source.SignedLEB128()
		if err != nil {
			return nil, err
		}
		return ir.ShortValue{Value: int16(v & 0xffff)}, nil

	case tagValueInt:
		v, err := d.source.SignedLEB128()
		if err != nil {
			return nil, err
		}
		return ir.IntValue{Value: int32(v & 0xffffffff)}, nil

	case tagValueLong:
		v, err := d.source.SignedLEB128()
		if err != nil {
			return nil, err
		}
		return ir.LongValue{Value: v}, nil

	case tagValueFloat:
		v, err := d.source.F32()
		if err != nil {
			return nil, err
		}
		return ir.FloatValue{Value: v}, nil

	case tagValueDouble:
		v, err := d.source.F64()
		if err != nil {
			return nil, err
		}
		return ir.DoubleValue{Value: v}, nil

	case tagValueStruct:
		values, err := sequence(d.Value, d.source)
		if err != nil {
			return nil, err
		}
		return ir.StructValue{Values: values}, nil

	case tagValueArray:
		element, err := d.Type()
		if err != nil {
			return nil, err
		}
		values, err := sequence(d.Value, d.source)
		if err != nil {
			return nil, err
		}
		return ir.ArrayValue{Element: element, Values: values}, nil

	case tagValueByteString:
		b, err := d.bytes()
		if err != nil {
			return nil, err
		}
		return ir.ByteStringValue{Bytes: b}, nil

	case tagValueLocal:
		id, err := d.local()
		if err != nil {
			return nil, err
		}
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		return ir.LocalValue{ID: id, Ty: ty}, nil

	case tagValueSymbol:
		name, err := d.Symbol()
		if err != nil {
			return nil, err
		}
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		return ir.SymbolValue{Name: name, Ty: ty}, nil

	case tagValueUnit:
		return ir.UnitValue{}, nil

	case tagValueConstant:
		inner, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.ConstantValue{Value: inner}, nil

	case tagValueString:
		s, err := d.string()
		if err != nil {
			return nil, err
		}
		return ir.StringValue{Value: s}, nil

	case tagValueVirtual:
		key, err := d.source.UnsignedLEB128()
		if err != nil {
			return nil, err
		}
		return ir.VirtualValue{Key: key}, nil

	case tagValueClassOf:
		name, err := d.asTopSymbol()
		if err != nil {
			return nil, err
		}
		return ir.ClassOfValue{ClassName: name}, nil

	case tagValueLinktimeCondition:
		return nil, fmt.Errorf("unexpected value tag: linktime_condition")

	case tagValueSize:
		v, err := d.source.UnsignedLEB128()
		if err != nil {
			return nil, err
		}
		return ir.SizeValue{RawValue: v}, nil

	default:
		return nil, fmt.Errorf("unexpected value tag %d", tag)
	}
}

func (d *Deserializer) labelArgument() (ir.LocalValue, error) {
	v, err := d.Value()
	if err != nil {
		return ir.LocalValue{}, err
	}
	local, ok := v.(ir.LocalValue)
	if !ok {
		return ir.LocalValue{}, fmt.Errorf("expected a local value as label argument")
	}
	return local, nil
}

func (d *Deserializer) next() (ir.Next, error) {
	tag, err := d.source.U8()
	if err != nil {
		return nil, err
	}

	switch nextTag(tag) {
	case tagNextNone:
		return ir.NoneNext{}, nil

	case tagNextUnwind:
		local, err := d.labelArgument()
		if err != nil {
			return nil, err
		}
		n, err := d.next()
		if err != nil {
			return nil, err
		}
		return ir.UnwindNext{Exception: local, Next: n}, nil

	case tagNextCase:
		v, err := d.Value()
		if err != nil {
			return nil, err
		}
		n, err := d.next()
		if err != nil {
			return nil, err
		}
		return ir.CaseNext{Value: v, Next: n}, nil

	case tagNextLabel:
		id, err := d.local()
		if err != nil {
			return nil, err
		}
		args, err := sequence(d.Value, d.source)
		if err != nil {
			return nil, err
		}
		return ir.LabelNext{Local: id, Args: args}, nil

	default:
		return nil, fmt.Errorf("unexpected next tag %d", tag)
	}
}

func (d *Deserializer) operation() (ir.Operation, error) {
	tag, err := d.source.U8()
	if err != nil {
		return nil, err
	}

	switch operationTag(tag) {
	case tagOperationCall:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		fnTy, ok := ty.(ir.FunctionType)
		if !ok {
			return nil, fmt.Errorf("expected a function type for call signature")
		}
		callee, err := d.Value()
		if err != nil {
			return nil, err
		}
		args, err := sequence(d.Value, d.source)
		if err != nil {
			return nil, err
		}
		return ir.CallOperation{Signature: fnTy, Callee: callee, Args: args}, nil

	case tagOperationLoad:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		ptr, err := d.Value()
		if err != nil {
			return nil, err
		}
		order, err := d.memoryOrder()
		if err != nil {
			return nil, err
		}
		return ir.LoadOperation{Ty: ty, Ptr: ptr, Order: order}, nil

	case tagOperationStore:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		ptr, err := d.Value()
		if err != nil {
			return nil, err
		}
		val, err := d.Value()
		if err != nil {
			return nil, err
		}
		order, err := d.memoryOrder()
		if err != nil {
			return nil, err
		}
		return ir.StoreOperation{Ty: ty, Ptr: ptr, Value: val, Order: order}, nil

	case tagOperationElement:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		ptr, err := d.Value()
		if err != nil {
			return nil, err
		}
		indexes, err := sequence(d.uint32, d.source)
		if err != nil {
			return nil, err
		}
		return ir.ElementOperation{Ty: ty, Ptr: ptr, Indexes: indexes}, nil

	case tagOperationExtract:
		agg, err := d.Value()
		if err != nil {
			return nil, err
		}
		indexes, err := sequence(d.uint32, d.source)
		if err != nil {
			return nil, err
		}
		return ir.ExtractOperation{Aggregate: agg, Indexes: indexes}, nil

	case tagOperationInsert:
		agg, err := d.Value()
		if err != nil {
			return nil, err
		}
		val, err := d.Value()
		if err != nil {
			return nil, err
		}
		indexes, err := sequence(d.uint32, d.source)
		if err != nil {
			return nil, err
		}
		return ir.InsertOperation{Aggregate: agg, Value: val, Indexes: indexes}, nil

	case tagOperationStackAlloc:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		count, countErr := d.source.UnsignedLEB128()
		if countErr != nil {
			return nil, countErr
		}
		return ir.StackAllocateOperation{Ty: ty, Count: count}, nil

	case tagOperationBinary:
		op, err := d.binaryOperator()
		if err != nil {
			return nil, err
		}
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		left, err := d.Value()
		if err != nil {
			return nil, err
		}
		right, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.BinaryApplyOperation{Op: op, Ty: ty, Left: left, Right: right}, nil

	case tagOperationCompare:
		op, err := d.comparisonOperator()
		if err != nil {
			return nil, err
		}
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		left, err := d.Value()
		if err != nil {
			return nil, err
		}
		right, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.CompareOperation{Op: op, Ty: ty, Left: left, Right: right}, nil

	case tagOperationConvert:
		op, err := d.conversionOperator()
		if err != nil {
			return nil, err
		}
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		val, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.ConvertOperation{Op: op, Ty: ty, Value: val}, nil

	case tagOperationFence:
		order, err := d.memoryOrder()
		if err != nil {
			return nil, err
		}
		return ir.FenceOperation{Order: order}, nil

	case tagOperationClassAlloc:
		name, err := d.asTopSymbol()
		if err != nil {
			return nil, err
		}
		hasZone, zone, err := optionalValue(d.Value, d)
		if err != nil {
			return nil, err
		}
		return ir.ClassAllocateOperation{ClassName: name, HasZone: hasZone, Zone: zone}, nil

	case tagOperationFieldLoad:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		obj, err := d.Value()
		if err != nil {
			return nil, err
		}
		name, err := d.asMemberSymbol()
		if err != nil {
			return nil, err
		}
		return ir.FieldLoadOperation{Ty: ty, Obj: obj, Name: name}, nil

	case tagOperationFieldStore:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		obj, err := d.Value()
		if err != nil {
			return nil, err
		}
		name, err := d.asMemberSymbol()
		if err != nil {
			return nil, err
		}
		val, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.FieldStoreOperation{Ty: ty, Obj: obj, Name: name, Value: val}, nil

	case tagOperationField:
		obj, err := d.Value()
		if err != nil {
			return nil, err
		}
		name, err := d.asMemberSymbol()
		if err != nil {
			return nil, err
		}
		return ir.FieldOperation{Obj: obj, Name: name}, nil

	case tagOperationMethod:
		obj, err := d.Value()
		if err != nil {
			return nil, err
		}
		sig, err := d.signature()
		if err != nil {
			return nil, err
		}
		return ir.MethodOperation{Obj: obj, Signature: sig}, nil

	case tagOperationDynMethod:
		obj, err := d.Value()
		if err != nil {
			return nil, err
		}
		sig, err := d.signature()
		if err != nil {
			return nil, err
		}
		return ir.DynamicMethodOperation{Obj: obj, Signature: sig}, nil

	case tagOperationModule:
		name, err := d.asTopSymbol()
		if err != nil {
			return nil, err
		}
		return ir.ModuleOperation{Name: name}, nil

	case tagOperationAs:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		obj, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.AsOperation{Ty: ty, Obj: obj}, nil

	case tagOperationIs:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		obj, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.IsOperation{Ty: ty, Obj: obj}, nil

	case tagOperationCopy:
		v, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.CopyOperation{Value: v}, nil

	case tagOperationSizeOf:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		return ir.SizeOfOperation{Ty: ty}, nil

	case tagOperationAlignmentOf:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		return ir.AlignmentOfOperation{Ty: ty}, nil

	case tagOperationBox:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		v, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.BoxOperation{Ty: ty, Value: v}, nil

	case tagOperationUnbox:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		v, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.UnboxOperation{Ty: ty, Value: v}, nil

	case tagOperationVar:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		return ir.VarOperation{Ty: ty}, nil

	case tagOperationVarLoad:
		slot, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.VarLoadOperation{Slot: slot}, nil

	case tagOperationVarStore:
		slot, err := d.Value()
		if err != nil {
			return nil, err
		}
		val, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.VarStoreOperation{Slot: slot, Value: val}, nil

	case tagOperationArrayAlloc:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		count, err := d.Value()
		if err != nil {
			return nil, err
		}
		hasZone, zone, err := optionalValue(d.Value, d)
		if err != nil {
			return nil, err
		}
		return ir.ArrayAllocateOperation{Ty: ty, Count: count, HasZone: hasZone, Zone: zone}, nil

	case tagOperationArrayLoad:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		arr, err := d.Value()
		if err != nil {
			return nil, err
		}
		idx, err := d.uint32()
		if err != nil {
			return nil, err
		}
		return ir.ArrayLoadOperation{Ty: ty, Arr: arr, Index: idx}, nil

	case tagOperationArrayStore:
		ty, err := d.Type()
		if err != nil {
			return nil, err
		}
		arr, err := d.Value()
		if err != nil {
			return nil, err
		}
		idx, err := d.uint32()
		if err != nil {
			return nil, err
		}
		val, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.ArrayStoreOperation{Ty: ty, Arr: arr, Index: idx, Value: val}, nil

	case tagOperationArrayLength:
		arr, err := d.Value()
		if err != nil {
			return nil, err
		}
		return ir.ArrayLengthOperation{Arr: arr}, nil

	case tagOperationLoadAtomic, tagOperationStoreAtomic,
		tagOperationClassAllocZone, tagOperationArrayAllocZone:
		return nil, fmt.Errorf("unsupported operation tag %d", tag)

	default:
		return nil, fmt.Errorf("unexpected operation tag %d", tag)
	}
}

func (d *Deserializer) linktimeCondition() (ir.LinktimeCondition, error) {
	return nil, fmt.Errorf("linktime conditions are not implemented")
}

func (d *Deserializer) binaryOperator() (ir.BinaryOperator, error) {
	tag, err := d.source.U8()
	if err != nil {
		return 0, err
	}
	switch binaryOperatorTag(tag) {
	case tagBinaryOperatorIadd:
		return ir.Iadd, nil
	case tagBinaryOperatorFadd:
		return ir.Fadd, nil
	case tagBinaryOperatorIsub:
		return ir.Isub, nil
	case tagBinaryOperatorFsub:
		return ir.Fsub, nil
	case tagBinaryOperatorImul:
		return ir.Imul, nil
	case tagBinaryOperatorFmul:
		return ir.Fmul, nil
	case tagBinaryOperatorSdiv:
		return ir.Sdiv, nil
	case tagBinaryOperatorUdiv:
		return ir.Udiv, nil
	case tagBinaryOperatorFdiv:
		return ir.Fdiv, nil
	case tagBinaryOperatorSrem:
		return ir.Srem, nil
	case tagBinaryOperatorUrem:
		return ir.Urem, nil
	case tagBinaryOperatorFrem:
		return ir.Frem, nil
	case tagBinaryOperatorShl:
		return ir.Shl, nil
	case tagBinaryOperatorLshr:
		return ir.Lshr, nil
	case tagBinaryOperatorAshr:
		return ir.Ashr, nil
	case tagBinaryOperatorAnd:
		return ir.BAnd, nil
	case tagBinaryOperatorOr:
		return ir.BOr, nil
	case tagBinaryOperatorXor:
		return ir.BXor, nil
	default:
		return 0, fmt.Errorf("unexpected binary operator tag %d", tag)
	}
}

func (d *Deserializer) comparisonOperator() (ir.ComparisonOperator, error) {
	tag, err := d.source.U8()
	if err != nil {
		return 0, err
	}
	switch comparisonOperatorTag(tag) {
	case tagComparisonOperatorIeq:
		return ir.Ieq, nil
	case tagComparisonOperatorIne:
		return ir.Ine, nil
	case tagComparisonOperatorUgt:
		return ir.Ugt, nil
	case tagComparisonOperatorUge:
		return ir.Uge, nil
	case tagComparisonOperatorUlt:
		return ir.Ult, nil
	case tagComparisonOperatorUle:
		return ir.Ule, nil
	case tagComparisonOperatorSgt:
		return ir.Sgt, nil
	case tagComparisonOperatorSge:
		return ir.Sge, nil
	case tagComparisonOperatorSlt:
		return ir.Slt, nil
	case tagComparisonOperatorSle:
		return ir.Sle, nil
	case tagComparisonOperatorFeq:
		return ir.Feq, nil
	case tagComparisonOperatorFne:
		return ir.Fne, nil
	case tagComparisonOperatorFgt:
		return ir.Fgt, nil
	case tagComparisonOperatorFge:
		return ir.Fge, nil
	case tagComparisonOperatorFlt:
		return ir.Flt, nil
	case tagComparisonOperatorFle:
		return ir.Fle, nil
	default:
		return 0, fmt.Errorf("unexpected comparison operator tag %d", tag)
	}
}

func (d *Deserializer) conversionOperator() (ir.ConversionOperator, error) {
	tag, err := d.source.U8()
	if err != nil {
		return 0, err
	}
	switch conversionOperatorTag(tag) {
	case tagConversionOperatorTrunc:
		return ir.Trunc, nil
	case tagConversionOperatorZext:
		return ir.Zext, nil
	case tagConversionOperatorSext:
		return ir.Sext, nil
	case tagConversionOperatorFptrunc:
		return ir.Fptrunc, nil
	case tagConversionOperatorFpext:
		return ir.Fpext, nil
	case tagConversionOperatorFptoui:
		return ir.Fptoui, nil
	case tagConversionOperatorFptosi:
		return ir.Fptosi, nil
	case tagConversionOperatorUitofp:
		return ir.Uitofp, nil
	case tagConversionOperatorSitofp:
		return ir.Sitofp, nil
	case tagConversionOperatorPtrtoint:
		return ir.Ptrtoint, nil
	case tagConversionOperatorInttoptr:
		return ir.Inttoptr, nil
	case tagConversionOperatorBitcast:
		return ir.Bitcast, nil
	case tagConversionOperatorSSizeCast:
		return ir.SSizeCast, nil
	case tagConversionOperatorZSizeCast:
		return ir.ZSizeCast, nil
	default:
		return 0, fmt.Errorf("unexpected conversion operator tag %d", tag)
	}
}

func (d *Deserializer) memoryOrder() (ir.MemoryOrder, error) {
	v, err := d.source.U8()
	if err != nil {
		return 0, err
	}
	if v > 5 {
		return 0, fmt.Errorf("unexpected memory order %d", v)
	}
	return ir.MemoryOrder(v), nil
}

func (d *Deserializer) local() (ir.Local, error) {
	v, err := d.source.UnsignedLEB128()
	if err != nil {
		return 0, err
	}
	return ir.Local(v), nil
}

func (d *Deserializer) attribute() (ir.Attribute, error) {
	tag, err := d.source.U8()
	if err != nil {
		return nil, err
	}

	switch attributeTag(tag) {
	case tagAttributeMayInline:
		return ir.MayInline(), nil
	case tagAttributeInlineHint:
		return ir.InlineHint(), nil
	case tagAttributeNoInline:
		return ir.NoInline(), nil
	case tagAttributeAlwaysInline:
		return ir.AlwaysInline(), nil
	case tagAttributeMaySpecialize:
		return ir.MaySpecialize(), nil
	case tagAttributeNoSpecialize:
		return ir.NoSpecialize(), nil
	case tagAttributeUnOpt:
		return ir.UnOpt(), nil
	case tagAttributeNoOpt:
		return ir.NoOpt(), nil
	case tagAttributeDidOpt:
		return ir.DidOpt(), nil

	case tagAttributeBailOpt:
		msg, err := d.string()
		if err != nil {
			return nil, err
		}
		return ir.BailOptAttribute{Message: msg}, nil

	case tagAttributeDyn:
		return ir.Dyn(), nil
	case tagAttributeStub:
		return ir.Stub(), nil

	case tagAttributeExtern:
		blocking, err := d.boolean()
		if err != nil {
			return nil, err
		}
		return ir.ExternAttribute{IsBlocking: blocking}, nil

	case tagAttributeLink:
		name, err := d.string()
		if err != nil {
			return nil, err
		}
		return ir.LinkAttribute{Name: name}, nil

	case tagAttributeDefine:
		name, err := d.string()
		if err != nil {
			return nil, err
		}
		return ir.DefineAttribute{Name: name}, nil

	case tagAttributeAbstract:
		return ir.Abstract(), nil
	case tagAttributeVolatile:
		return ir.Volatile(), nil
	case tagAttributeFinal:
		return ir.Final(), nil
	case tagAttributeSafePublish:
		return ir.SafePublish(), nil
	case tagAttributeLinkTimeResolved:
		return ir.LinkTimeResolved(), nil
	case tagAttributeUsesIntrinsic:
		return ir.UsesIntrinsic(), nil

	case tagAttributeAlign:
		size, err := d.source.SignedLEB128()
		if err != nil {
			return nil, err
		}
		hasGroup, group, groupErr := optionalValue(d.string, d)
		if groupErr != nil {
			return nil, groupErr
		}
		return ir.AlignmentAttribute{Size: size, HasGroup: hasGroup, Group: group}, nil

	default:
		return nil, fmt.Errorf("unexpected attribute tag %d", tag)
	}
}

func (d *Deserializer) sourcePosition() (ir.SourcePosition, error) {
	p, err := d.string()
	if err != nil {
		return ir.SourcePosition{}, err
	}
	file := ir.VirtualSourceFile()
	if p != "" {
		file = ir.SourceFile{Path: p}
	}
	line, lineErr := d.source.UnsignedLEB128()
	if lineErr != nil {
		return ir.SourcePosition{}, lineErr
	}
	column, columnErr := d.source.UnsignedLEB128()
	if columnErr != nil {
		return ir.SourcePosition{}, columnErr
	}
	return ir.SourcePosition{File: file, Line: line, Column: column}, nil
}

func (d *Deserializer) scopeIdentifier() (ir.ScopeIdentifier, error) {
	v, err := d.source.UnsignedLEB128()
	if err != nil {
		return ir.ScopeIdentifier{}, err
	}
	return ir.ScopeIdentifier{RawValue: v}, nil
}

func (d *Deserializer) inlineString() (string, error) {
	n, err := d.source.UnsignedLEB128()
	if err != nil {
		return "", err
	}
	b, read := d.source.Bytes(int(n))
	if uint64(read) != n {
		return "", fmt.Errorf("invalid string")
	}
	return string(b), nil
}

func (d *Deserializer) string() (string, error) {
	tag, err := d.source.U8()
	if err != nil {
		return "", err
	}

	switch stringTag(tag) {
	case tagStringEmpty:
		return "", nil

	case tagStringContained:
		n, err := d.source.UnsignedLEB128()
		if err != nil {
			return "", err
		}
		i, err := d.source.UnsignedLEB128()
		if err != nil {
			return "", err
		}
		if i >= uint64(len(d.internedStrings)) {
			return "", fmt.Errorf("back-reference %d out of range", i)
		}
		return substring(d.internedStrings[i], n), nil

	case tagStringInserted:
		s, err := d.inlineString()
		if err != nil {
			return "", err
		}
		d.internedStrings = append(d.internedStrings, s)
		return s, nil

	case tagStringAppended:
		n, err := d.source.UnsignedLEB128()
		if err != nil {
			return "", err
		}
		i, err := d.source.UnsignedLEB128()
		if err != nil {
			return "", err
		}
		if i >= uint64(len(d.internedStrings)) {
			return "", fmt.Errorf("back-reference %d out of range", i)
		}
		suffix, suffixErr := d.inlineString()
		if suffixErr != nil {
			return "", suffixErr
		}
		s := substring(d.internedStrings[i], n) + suffix
		d.internedStrings = append(d.internedStrings, s)
		return s, nil

	default:
		return "", fmt.Errorf("unexpected string tag %d", tag)
	}
}

// substring returns the first n bytes of s, matching the producer's own
// length-prefixed substring convention.
func substring(s string, n uint64) string {
	if n > uint64(len(s)) {
		n = uint64(len(s))
	}
	return s[:n]
}

func (d *Deserializer) bytes() ([]byte, error) {
	count, err := d.source.UnsignedLEB128()
	if err != nil {
		return nil, err
	}
	result := make([]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		b, err := d.source.I8()
		if err != nil {
			return nil, err
		}
		result = append(result, byte(b))
	}
	return result, nil
}

func (d *Deserializer) boolean() (bool, error) {
	v, err := d.source.U8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (d *Deserializer) uint32() (uint32, error) {
	v, err := d.source.UnsignedLEB128()
	if err != nil {
		return 0, err
	}
	return uint32(v & 0xffffffff), nil
}
