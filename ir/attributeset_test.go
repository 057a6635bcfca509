package ir

import "testing"

func TestAttributeSetThinInsertionIsIdempotent(t *testing.T) {
	var s AttributeSet
	s = s.Add(MayInline())
	s = s.Add(MayInline())

	if s.ThinCount() != 1 {
		t.Errorf("got %d thin attributes, want 1", s.ThinCount())
	}
	if !s.Has(KindMayInline) {
		t.Error("expected KindMayInline to be present")
	}
}

func TestAttributeSetFatInsertionIsIdempotent(t *testing.T) {
	var s AttributeSet
	s = s.Add(LinkAttribute{Name: "m"})
	s = s.Add(LinkAttribute{Name: "m"})

	if len(s.Elements()) != 1 {
		t.Errorf("got %d elements, want 1", len(s.Elements()))
	}
}

func TestAttributeSetDistinctFatPayloadsBothKept(t *testing.T) {
	var s AttributeSet
	s = s.Add(LinkAttribute{Name: "m"})
	s = s.Add(LinkAttribute{Name: "c"})

	if len(s.Elements()) != 2 {
		t.Errorf("got %d elements, want 2", len(s.Elements()))
	}
}

func TestAttributeSetOrdersThinBeforeFatInAscendingBitOrder(t *testing.T) {
	var s AttributeSet
	s = s.Add(LinkAttribute{Name: "m"})
	s = s.Add(Final())
	s = s.Add(MayInline())

	elems := s.Elements()
	if len(elems) != 3 {
		t.Fatalf("got %d elements, want 3", len(elems))
	}
	if elems[0].Kind() != KindMayInline {
		t.Errorf("elems[0] = %v, want KindMayInline", elems[0].Kind())
	}
	if elems[1].Kind() != KindFinal {
		t.Errorf("elems[1] = %v, want KindFinal", elems[1].Kind())
	}
	if elems[2].Kind() != KindLink {
		t.Errorf("elems[2] = %v, want KindLink", elems[2].Kind())
	}
}
