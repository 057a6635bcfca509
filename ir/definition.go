package ir

// Definition is a single top-level entity in a NIR file.
//
// A Definition is one of BindingDefinition, ForwardDefinition,
// MethodDefinition, TraitDefinition, ClassDefinition, or ModuleDefinition.
type Definition interface {
	isDefinition()
	Attributes() AttributeSet
	SourcePosition() SourcePosition
	String() string
}

// BindingDefinition declares a top-level slot: mutable if IsConstant is
// false, otherwise initialized once to Value and never reassigned.
type BindingDefinition struct {
	Attrs      AttributeSet
	Name       MemberSymbol
	Ty         Type
	Value      Value
	IsConstant bool
	Position   SourcePosition
}

func (BindingDefinition) isDefinition()                    {}
func (d BindingDefinition) Attributes() AttributeSet       { return d.Attrs }
func (d BindingDefinition) SourcePosition() SourcePosition { return d.Position }
func (d BindingDefinition) String() string {
	if d.IsConstant {
		return "const " + d.Name.String() + " = " + d.Value.String()
	}
	return "var " + d.Name.String() + " : " + d.Ty.String()
}

// ForwardDefinition declares a method without supplying a body, to be
// resolved externally (e.g. against a C library) or by a link-time
// condition.
type ForwardDefinition struct {
	Attrs     AttributeSet
	Name      MemberSymbol
	Signature FunctionType
	Position  SourcePosition
}

func (ForwardDefinition) isDefinition()                    {}
func (d ForwardDefinition) Attributes() AttributeSet       { return d.Attrs }
func (d ForwardDefinition) SourcePosition() SourcePosition { return d.Position }
func (d ForwardDefinition) String() string                 { return "declare " + d.Name.String() }

// MethodDefinition defines a method's body as a sequence of Instructions
// over Signature's parameters, plus Debug information describing source
// positions and lexical scoping.
type MethodDefinition struct {
	Attrs        AttributeSet
	Name         MemberSymbol
	Signature    FunctionType
	Instructions []Instruction
	Debug        MethodDebugInformation
	Position     SourcePosition
}

func (MethodDefinition) isDefinition()                    {}
func (d MethodDefinition) Attributes() AttributeSet       { return d.Attrs }
func (d MethodDefinition) SourcePosition() SourcePosition { return d.Position }
func (d MethodDefinition) String() string                 { return "define " + d.Name.String() }

// MethodDebugInformation carries the local-variable naming and scope tree
// produced alongside a MethodDefinition's instructions, used only for
// diagnostics and source-level debugging.
type MethodDebugInformation struct {
	LocalNames map[Local]string
	Scopes     []LexicalScope
}

// TraitDefinition declares a trait, which other classes and traits may
// list in their Parents/Traits.
type TraitDefinition struct {
	Attrs    AttributeSet
	Name     TopSymbol
	Parents  []TopSymbol
	Position SourcePosition
}

func (TraitDefinition) isDefinition()                    {}
func (d TraitDefinition) Attributes() AttributeSet       { return d.Attrs }
func (d TraitDefinition) SourcePosition() SourcePosition { return d.Position }
func (d TraitDefinition) String() string                 { return "trait " + d.Name.String() }

// ClassDefinition declares a class, with an optional Parent class and zero
// or more implemented Traits.
type ClassDefinition struct {
	Attrs     AttributeSet
	Name      TopSymbol
	HasParent bool
	Parent    TopSymbol
	Traits    []TopSymbol
	Position  SourcePosition
}

func (ClassDefinition) isDefinition()                    {}
func (d ClassDefinition) Attributes() AttributeSet       { return d.Attrs }
func (d ClassDefinition) SourcePosition() SourcePosition { return d.Position }
func (d ClassDefinition) String() string                 { return "class " + d.Name.String() }

// ModuleDefinition declares a singleton object, with an optional Parent
// class and zero or more implemented Traits.
type ModuleDefinition struct {
	Attrs     AttributeSet
	Name      TopSymbol
	HasParent bool
	Parent    TopSymbol
	Traits    []TopSymbol
	Position  SourcePosition
}

func (ModuleDefinition) isDefinition()                    {}
func (d ModuleDefinition) Attributes() AttributeSet       { return d.Attrs }
func (d ModuleDefinition) SourcePosition() SourcePosition { return d.Position }
func (d ModuleDefinition) String() string                 { return "module " + d.Name.String() }
