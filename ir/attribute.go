package ir

import "strconv"

// Attribute annotates a definition, or a single operation within one, with
// additional information consumed by the code generator.
//
// An Attribute is one of the seventeen thin kinds (a bare AttributeKind,
// carrying no payload) or one of BailOptAttribute, ExternAttribute,
// LinkAttribute, DefineAttribute, AlignmentAttribute (fat, carrying a
// payload).
type Attribute interface {
	isAttribute()
	Kind() AttributeKind
	String() string
}

// AttributeKind discriminates the sorts of Attribute. Thin kinds occupy a
// single bit of an AttributeSet's bitset; fat kinds identify the shape of
// an out-of-line payload instead.
type AttributeKind uint32

const (
	KindMayInline         AttributeKind = 1 << 0
	KindInlineHint        AttributeKind = 1 << 1
	KindNoInline          AttributeKind = 1 << 2
	KindAlwaysInline      AttributeKind = 1 << 3
	KindMaySpecialize     AttributeKind = 1 << 4
	KindNoSpecialize      AttributeKind = 1 << 5
	KindUnOpt             AttributeKind = 1 << 6
	KindNoOpt             AttributeKind = 1 << 7
	KindDidOpt            AttributeKind = 1 << 8
	KindBailOpt           AttributeKind = 1 << 9
	KindDyn               AttributeKind = 1 << 10
	KindStub              AttributeKind = 1 << 11
	KindExtern            AttributeKind = 1 << 12
	KindLink              AttributeKind = 1 << 13
	KindDefine            AttributeKind = 1 << 14
	KindAbstract          AttributeKind = 1 << 15
	KindVolatile          AttributeKind = 1 << 16
	KindFinal             AttributeKind = 1 << 17
	KindSafePublish       AttributeKind = 1 << 18
	KindLinkTimeResolved  AttributeKind = 1 << 19
	KindUsesIntrinsic     AttributeKind = 1 << 20
	KindAlignment         AttributeKind = 1 << 21
)

// thinKinds lists every thin AttributeKind in ascending bit order.
var thinKinds = []AttributeKind{
	KindMayInline, KindInlineHint, KindNoInline, KindAlwaysInline,
	KindMaySpecialize, KindNoSpecialize, KindUnOpt, KindNoOpt, KindDidOpt,
	KindDyn, KindStub, KindAbstract, KindVolatile, KindFinal,
	KindSafePublish, KindLinkTimeResolved, KindUsesIntrinsic,
}

// isThin reports whether k identifies a payload-less attribute.
func (k AttributeKind) isThin() bool {
	for _, t := range thinKinds {
		if t == k {
			return true
		}
	}
	return false
}

func (k AttributeKind) String() string {
	switch k {
	case KindMayInline:
		return "may-inline"
	case KindInlineHint:
		return "inline-hint"
	case KindNoInline:
		return "noinline"
	case KindAlwaysInline:
		return "always-inline"
	case KindMaySpecialize:
		return "may-specialize"
	case KindNoSpecialize:
		return "no-specialize"
	case KindUnOpt:
		return "un-opt"
	case KindNoOpt:
		return "no-opt"
	case KindDidOpt:
		return "did-opt"
	case KindBailOpt:
		return "bailopt"
	case KindDyn:
		return "dyn"
	case KindStub:
		return "stub"
	case KindExtern:
		return "extern"
	case KindLink:
		return "link"
	case KindDefine:
		return "define"
	case KindAbstract:
		return "abstract"
	case KindVolatile:
		return "volatile"
	case KindFinal:
		return "final"
	case KindSafePublish:
		return "safe-publish"
	case KindLinkTimeResolved:
		return "link-time-resolved"
	case KindUsesIntrinsic:
		return "uses-intrinsic"
	case KindAlignment:
		return "alignment"
	default:
		return "attribute"
	}
}

// thinAttribute is a payload-less attribute; its identity is exactly its
// Kind.
type thinAttribute struct {
	kind AttributeKind
}

func (thinAttribute) isAttribute()          {}
func (a thinAttribute) Kind() AttributeKind { return a.kind }
func (a thinAttribute) String() string      { return a.kind.String() }

func MayInline() Attribute        { return thinAttribute{KindMayInline} }
func InlineHint() Attribute       { return thinAttribute{KindInlineHint} }
func NoInline() Attribute         { return thinAttribute{KindNoInline} }
func AlwaysInline() Attribute     { return thinAttribute{KindAlwaysInline} }
func MaySpecialize() Attribute    { return thinAttribute{KindMaySpecialize} }
func NoSpecialize() Attribute     { return thinAttribute{KindNoSpecialize} }
func UnOpt() Attribute            { return thinAttribute{KindUnOpt} }
func NoOpt() Attribute            { return thinAttribute{KindNoOpt} }
func DidOpt() Attribute           { return thinAttribute{KindDidOpt} }
func Dyn() Attribute              { return thinAttribute{KindDyn} }
func Stub() Attribute             { return thinAttribute{KindStub} }
func Abstract() Attribute         { return thinAttribute{KindAbstract} }
func Volatile() Attribute         { return thinAttribute{KindVolatile} }
func Final() Attribute            { return thinAttribute{KindFinal} }
func SafePublish() Attribute      { return thinAttribute{KindSafePublish} }
func LinkTimeResolved() Attribute { return thinAttribute{KindLinkTimeResolved} }
func UsesIntrinsic() Attribute    { return thinAttribute{KindUsesIntrinsic} }

// BailOptAttribute records why the optimizer declined to specialize a
// definition.
type BailOptAttribute struct {
	Message string
}

func (BailOptAttribute) isAttribute()        {}
func (BailOptAttribute) Kind() AttributeKind { return KindBailOpt }
func (a BailOptAttribute) String() string    { return "bailopt(\"" + a.Message + "\")" }

// ExternAttribute marks a declaration as having C linkage. IsBlocking
// reports whether calling it may block the calling thread.
type ExternAttribute struct {
	IsBlocking bool
}

func (ExternAttribute) isAttribute()        {}
func (ExternAttribute) Kind() AttributeKind { return KindExtern }
func (a ExternAttribute) String() string {
	return "extern(" + strconv.FormatBool(a.IsBlocking) + ")"
}

// LinkAttribute requests linking against the native library Name.
type LinkAttribute struct {
	Name string
}

func (LinkAttribute) isAttribute()        {}
func (LinkAttribute) Kind() AttributeKind { return KindLink }
func (a LinkAttribute) String() string    { return "link(\"" + a.Name + "\")" }

// DefineAttribute requests that the linker define the weak symbol Name if
// it is otherwise unresolved.
type DefineAttribute struct {
	Name string
}

func (DefineAttribute) isAttribute()        {}
func (DefineAttribute) Kind() AttributeKind { return KindDefine }
func (a DefineAttribute) String() string    { return "define(\"" + a.Name + "\")" }

// AlignmentAttribute requests a specific byte alignment, optionally
// grouped with other members sharing Group.
type AlignmentAttribute struct {
	Size  int64
	HasGroup bool
	Group string
}

func (AlignmentAttribute) isAttribute()        {}
func (AlignmentAttribute) Kind() AttributeKind { return KindAlignment }
func (a AlignmentAttribute) String() string {
	s := "align(" + strconv.FormatInt(a.Size, 10)
	if a.HasGroup {
		s += ", \"" + a.Group + "\""
	}
	return s + ")"
}
