package pysrc

// DefinitionKind classifies the construct a docstring can belong to.
type DefinitionKind string

const (
	KindModule   DefinitionKind = "module"
	KindClass    DefinitionKind = "class"
	KindFunction DefinitionKind = "function"
	KindMethod   DefinitionKind = "method"
)

// ModuleName is the qualified name of every module definition.
const ModuleName = "<module>"

// Definition is a module, class or function found by the parser.
type Definition struct {
	// Kind is the type of construct.
	Kind DefinitionKind

	// Name is the unqualified name; empty for modules.
	Name string

	// Range covers the whole definition statement (or the file for modules).
	Range TextRange

	// Docstring is the docstring literal, or nil when the body has none.
	Docstring *StringLiteral

	// Parent is the enclosing definition; nil for the module.
	Parent *Definition
}

// HasDocstring reports whether a docstring literal is attached.
func (d *Definition) HasDocstring() bool {
	return d.Docstring != nil
}

// QualifiedName returns the dotted name from the outermost class or function,
// e.g. "Outer.method". Modules return "<module>".
func (d *Definition) QualifiedName() string {
	if d.Kind == KindModule {
		return ModuleName
	}
	if d.Parent == nil || d.Parent.Kind == KindModule {
		return d.Name
	}
	return d.Parent.QualifiedName() + "." + d.Name
}
