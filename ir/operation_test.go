package ir

import "testing"

func TestResultTypeCallUsesSignatureReturn(t *testing.T) {
	op := CallOperation{Signature: FunctionType{Return: F64()}}
	if !typeEquals(op.ResultType(), F64()) {
		t.Errorf("got %v, want f64", op.ResultType())
	}
}

func TestResultTypeLoadUsesOperandType(t *testing.T) {
	op := LoadOperation{Ty: I32()}
	if !typeEquals(op.ResultType(), I32()) {
		t.Errorf("got %v, want i32", op.ResultType())
	}
}

func TestResultTypeStoreIsUnit(t *testing.T) {
	op := StoreOperation{Ty: I32()}
	if !typeEquals(op.ResultType(), UnitType()) {
		t.Errorf("got %v, want unit", op.ResultType())
	}
}

func TestResultTypeCompareIsBoolean(t *testing.T) {
	op := CompareOperation{Op: Ieq, Ty: I32()}
	if !typeEquals(op.ResultType(), U1()) {
		t.Errorf("got %v, want u1", op.ResultType())
	}
}

func TestResultTypeConvertUsesTargetType(t *testing.T) {
	op := ConvertOperation{Op: Sext, Ty: I64()}
	if !typeEquals(op.ResultType(), I64()) {
		t.Errorf("got %v, want i64", op.ResultType())
	}
}

func TestResultTypeBinaryApplyUsesOperandType(t *testing.T) {
	op := BinaryApplyOperation{Op: Iadd, Ty: I32()}
	if !typeEquals(op.ResultType(), I32()) {
		t.Errorf("got %v, want i32", op.ResultType())
	}
}

func TestResultTypeBoxUsesBoxedClassReference(t *testing.T) {
	op := BoxOperation{Ty: ReferenceType{Name: TopSymbol{ID: "java.lang.Integer"}}}
	want := ReferenceType{Name: TopSymbol{ID: "java.lang.Integer"}, IsExact: true, IsNullable: false}
	if !typeEquals(op.ResultType(), want) {
		t.Errorf("got %v, want %v", op.ResultType(), want)
	}
}

func TestResultTypeBoxOfPointerIsNullable(t *testing.T) {
	op := BoxOperation{Ty: ReferenceType{Name: TopSymbol{ID: "scala.scalanative.unsafe.Ptr"}}}
	want := ReferenceType{Name: TopSymbol{ID: "scala.scalanative.unsafe.Ptr"}, IsExact: true, IsNullable: true}
	if !typeEquals(op.ResultType(), want) {
		t.Errorf("got %v, want %v", op.ResultType(), want)
	}
}

func TestResultTypeUnboxYieldsPrimitive(t *testing.T) {
	op := UnboxOperation{Ty: ReferenceType{Name: TopSymbol{ID: "java.lang.Integer"}}}
	if !typeEquals(op.ResultType(), I32()) {
		t.Errorf("got %v, want i32", op.ResultType())
	}
}

func TestResultTypeClassAllocateIsExactNonNullable(t *testing.T) {
	op := ClassAllocateOperation{ClassName: TopSymbol{ID: "com.example.Foo"}}
	want := ReferenceType{Name: TopSymbol{ID: "com.example.Foo"}, IsExact: true, IsNullable: false}
	if !typeEquals(op.ResultType(), want) {
		t.Errorf("got %v, want %v", op.ResultType(), want)
	}
}

func TestResultTypeModuleIsExactNonNullable(t *testing.T) {
	op := ModuleOperation{Name: TopSymbol{ID: "com.example.Foo$"}}
	want := ReferenceType{Name: TopSymbol{ID: "com.example.Foo$"}, IsExact: true, IsNullable: false}
	if !typeEquals(op.ResultType(), want) {
		t.Errorf("got %v, want %v", op.ResultType(), want)
	}
}
