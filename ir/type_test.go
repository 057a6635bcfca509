package ir

import "testing"

func TestNormalizedIsIdempotent(t *testing.T) {
	ref := ReferenceType{Name: TopSymbol{ID: "scala.Foo"}, IsExact: true, IsNullable: false}
	once := Normalized(ref)
	twice := Normalized(once)

	if !typeEquals(once, twice) {
		t.Errorf("Normalized is not idempotent: %v != %v", once, twice)
	}
}

func TestNormalizedForcesReferenceToNullableInexact(t *testing.T) {
	ref := ReferenceType{Name: TopSymbol{ID: "scala.Foo"}, IsExact: true, IsNullable: false}
	got := Normalized(ref).(ReferenceType)

	if got.IsExact {
		t.Error("normalized reference type should not be exact")
	}
	if !got.IsNullable {
		t.Error("normalized reference type should be nullable")
	}
}

func TestNormalizedForcesArrayReferenceToNullable(t *testing.T) {
	arr := ArrayReferenceType{Element: I32(), IsNullable: false}
	got := Normalized(arr).(ArrayReferenceType)

	if !got.IsNullable {
		t.Error("normalized array reference type should be nullable")
	}
}

func TestElementAtStruct(t *testing.T) {
	s := StructType{Elements: []Type{I32(), F64()}}
	if !typeEquals(ElementAt(s, 1), F64()) {
		t.Errorf("got %v, want f64", ElementAt(s, 1))
	}
}

func TestElementAtArrayValuePanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an out-of-range index")
		}
	}()
	ElementAt(ArrayValueType{Element: I32(), Size: 2}, 2)
}

func TestElementAtPathDescendsNestedStructs(t *testing.T) {
	inner := StructType{Elements: []Type{I32(), F64()}}
	outer := StructType{Elements: []Type{U1(), inner}}

	got := ElementAtPath(outer, []uint32{1, 1})
	if !typeEquals(got, F64()) {
		t.Errorf("got %v, want f64", got)
	}
}

func TestUnboxedKnownBoxClasses(t *testing.T) {
	cases := []struct {
		name string
		want Type
	}{
		{"java.lang.Integer", I32()},
		{"java.lang.Boolean", U1()},
		{"scala.scalanative.unsafe.Ptr", PointerType()},
		{"scala.scalanative.unsafe.CFuncPtr3", PointerType()},
	}

	for _, c := range cases {
		got, ok := Unboxed(ReferenceType{Name: TopSymbol{ID: c.name}})
		if !ok {
			t.Errorf("Unboxed(%s): expected a box type", c.name)
			continue
		}
		if !typeEquals(got, c.want) {
			t.Errorf("Unboxed(%s) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestUnboxedRejectsUnknownClass(t *testing.T) {
	if _, ok := Unboxed(ReferenceType{Name: TopSymbol{ID: "com.example.NotABox"}}); ok {
		t.Error("expected a non-box class to not be unboxed")
	}
}

func TestUnboxedRejectsNonReferenceType(t *testing.T) {
	if _, ok := Unboxed(I32()); ok {
		t.Error("expected a numeric type to not be unboxed")
	}
}

func TestIsBoxOfNormalizesFirst(t *testing.T) {
	exact := ReferenceType{Name: TopSymbol{ID: "java.lang.Integer"}, IsExact: true, IsNullable: false}
	if !IsBoxOf(exact, I32()) {
		t.Error("expected an exact, non-nullable reference to still be recognized as a box")
	}
}
