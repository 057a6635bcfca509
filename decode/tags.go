// Package decode implements the deserializer that turns a NIR file's
// binary body into the ir package's in-memory representation.
package decode

// The tag constants below mirror the wire-tag numbering of a NIR file's
// binary encoding. They are distinct from, and do not need to agree
// with, the ordinal values of the corresponding ir package enums: a tag
// only ever appears on the wire, never in an in-memory value.

type attributeTag uint8

const (
	tagAttributeMayInline attributeTag = iota
	tagAttributeInlineHint
	tagAttributeNoInline
	tagAttributeAlwaysInline
	tagAttributeMaySpecialize
	tagAttributeNoSpecialize
	tagAttributeUnOpt
	tagAttributeNoOpt
	tagAttributeDidOpt
	tagAttributeBailOpt
	tagAttributeExtern
	tagAttributeLink
	tagAttributeDyn
	tagAttributeStub
	tagAttributeAbstract
	tagAttributeVolatile
	tagAttributeFinal
	tagAttributeSafePublish
	tagAttributeLinkTimeResolved
	tagAttributeUsesIntrinsic
	tagAttributeAlign
	tagAttributeDefine
)

type definitionTag uint8

const (
	tagDefinitionVariable definitionTag = iota
	tagDefinitionConstant
	tagDefinitionDeclare
	tagDefinitionDefine
	tagDefinitionTrait
	tagDefinitionClass
	tagDefinitionModule
)

type instructionTag uint8

const (
	tagInstructionLabel instructionTag = iota
	tagInstructionLet
	tagInstructionUnwind
	tagInstructionReturn
	tagInstructionJump
	tagInstructionIf
	tagInstructionSwitch
	tagInstructionThrow
	tagInstructionUnreachable
	tagInstructionLinktimeIf
)

type linktimeConditionTag uint8

const (
	tagLinktimeConditionSimple linktimeConditionTag = iota
	tagLinktimeConditionComplex
)

type binaryOperatorTag uint8

const (
	tagBinaryOperatorIadd binaryOperatorTag = iota
	tagBinaryOperatorFadd
	tagBinaryOperatorIsub
	tagBinaryOperatorFsub
	tagBinaryOperatorImul
	tagBinaryOperatorFmul
	tagBinaryOperatorSdiv
	tagBinaryOperatorUdiv
	tagBinaryOperatorFdiv
	tagBinaryOperatorSrem
	tagBinaryOperatorUrem
	tagBinaryOperatorFrem
	tagBinaryOperatorShl
	tagBinaryOperatorLshr
	tagBinaryOperatorAshr
	tagBinaryOperatorAnd
	tagBinaryOperatorOr
	tagBinaryOperatorXor
)

type comparisonOperatorTag uint8

const (
	tagComparisonOperatorIeq comparisonOperatorTag = iota
	tagComparisonOperatorIne
	tagComparisonOperatorUgt
	tagComparisonOperatorUge
	tagComparisonOperatorUlt
	tagComparisonOperatorUle
	tagComparisonOperatorSgt
	tagComparisonOperatorSge
	tagComparisonOperatorSlt
	tagComparisonOperatorSle
	tagComparisonOperatorFeq
	tagComparisonOperatorFne
	tagComparisonOperatorFgt
	tagComparisonOperatorFge
	tagComparisonOperatorFlt
	tagComparisonOperatorFle
)

type conversionOperatorTag uint8

const (
	tagConversionOperatorTrunc conversionOperatorTag = iota
	tagConversionOperatorZext
	tagConversionOperatorSext
	tagConversionOperatorFptrunc
	tagConversionOperatorFpext
	tagConversionOperatorFptoui
	tagConversionOperatorFptosi
	tagConversionOperatorUitofp
	tagConversionOperatorSitofp
	tagConversionOperatorPtrtoint
	tagConversionOperatorInttoptr
	tagConversionOperatorBitcast
	tagConversionOperatorSSizeCast
	tagConversionOperatorZSizeCast
)

type nextTag uint8

const (
	tagNextNone nextTag = iota
	tagNextUnwind
	tagNextCase
	tagNextLabel
)

type operationTag uint8

const (
	tagOperationCall operationTag = iota
	tagOperationLoad
	tagOperationLoadAtomic
	tagOperationStore
	tagOperationStoreAtomic
	tagOperationElement
	tagOperationExtract
	tagOperationInsert
	tagOperationStackAlloc
	tagOperationBinary
	tagOperationCompare
	tagOperationConvert
	tagOperationClassAlloc
	tagOperationClassAllocZone
	tagOperationField
	tagOperationFieldLoad
	tagOperationFieldStore
	tagOperationMethod
	tagOperationModule
	tagOperationAs
	tagOperationIs
	tagOperationCopy
	tagOperationSizeOf
	tagOperationAlignmentOf
	tagOperationBox
	tagOperationUnbox
	tagOperationDynMethod
	tagOperationVar
	tagOperationVarLoad
	tagOperationVarStore
	tagOperationArrayAlloc
	tagOperationArrayAllocZone
	tagOperationArrayLoad
	tagOperationArrayStore
	tagOperationArrayLength
	tagOperationFence
)

type stringTag uint8

const (
	tagStringEmpty stringTag = iota
	tagStringContained
	tagStringInserted
	tagStringAppended
)

type symbolTag uint8

const (
	tagSymbolNone symbolTag = iota
	tagSymbolTop
	tagSymbolMember
)

type typeTag uint8

const (
	tagTypeVararg typeTag = iota
	tagTypeBoolean
	tagTypePointer
	tagTypeChar
	tagTypeByte
	tagTypeShort
	tagTypeInt
	tagTypeLong
	tagTypeFloat
	tagTypeDouble
	tagTypeArrayValue
	tagTypeStructValue
	tagTypeFunction
	tagTypeNull
	tagTypeNothing
	tagTypeVirtual
	tagTypeVar
	tagTypeUnit
	tagTypeArray
	tagTypeReference
	tagTypeSize
)

type valueTag uint8

const (
	tagValueTrue valueTag = iota
	tagValueFalse
	tagValueNull
	tagValueZero
	tagValueChar
	tagValueByte
	tagValueShort
	tagValueInt
	tagValueLong
	tagValueFloat
	tagValueDouble
	tagValueStruct
	tagValueArray
	tagValueByteString
	tagValueLocal
	tagValueSymbol
	tagValueUnit
	tagValueConstant
	tagValueString
	tagValueVirtual
	tagValueClassOf
	tagValueLinktimeCondition
	tagValueSize
)
