package ir

// AttributeSet is an ordered set of attributes: thin attributes are ordered
// before fat attributes and appear in ascending bit order; fat attributes
// are laid out in insertion order. Attributes already present in the set,
// as determined by Kind for thin attributes and by full value equality for
// fat ones, are not duplicated by Add.
type AttributeSet struct {
	thin uint32
	fat  []Attribute
}

// Add inserts attr into the set, returning the resulting set.
func (s AttributeSet) Add(attr Attribute) AttributeSet {
	if attr.Kind().isThin() {
		s.thin |= uint32(attr.Kind())
		return s
	}

	for _, existing := range s.fat {
		if fatEquals(existing, attr) {
			return s
		}
	}
	s.fat = append(append([]Attribute{}, s.fat...), attr)
	return s
}

// Has reports whether the set contains the thin attribute identified by
// kind.
func (s AttributeSet) Has(kind AttributeKind) bool {
	return kind.isThin() && s.thin&uint32(kind) != 0
}

// ThinCount returns the number of thin attributes in the set.
func (s AttributeSet) ThinCount() int {
	n := 0
	for _, k := range thinKinds {
		if s.Has(k) {
			n++
		}
	}
	return n
}

// Elements returns the attributes in the set, in the order described on
// AttributeSet.
func (s AttributeSet) Elements() []Attribute {
	var out []Attribute
	for _, k := range thinKinds {
		if s.Has(k) {
			out = append(out, thinAttribute{k})
		}
	}
	return append(out, s.fat...)
}

func fatEquals(a, b Attribute) bool {
	switch av := a.(type) {
	case BailOptAttribute:
		bv, ok := b.(BailOptAttribute)
		return ok && av == bv
	case ExternAttribute:
		bv, ok := b.(ExternAttribute)
		return ok && av == bv
	case LinkAttribute:
		bv, ok := b.(LinkAttribute)
		return ok && av == bv
	case DefineAttribute:
		bv, ok := b.(DefineAttribute)
		return ok && av == bv
	case AlignmentAttribute:
		bv, ok := b.(AlignmentAttribute)
		return ok && av == bv
	default:
		return false
	}
}
