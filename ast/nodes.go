package ast

// Node is the interface for all declaration tree nodes.
type Node interface {
	node()
}

// Item is a declaration inside a module. The same node types describe the
// raw bindings read from the extraction tool and the artifacts produced by a
// conversion.
type Item interface {
	Node
	item()
}

// ForeignItem is a declaration inside a foreign block.
type ForeignItem interface {
	Node
	foreignItem()
}

// ImplItem is a member of an implementation block.
type ImplItem interface {
	Node
	implItem()
}

// Mod is a module (one native namespace). External modules have no body.
type Mod struct {
	Attrs    []string
	Pub      bool
	Name     string
	Items    []Item
	External bool // declared without a body
}

func (m *Mod) node() {}
func (m *Mod) item() {}

// Field is one struct member.
type Field struct {
	Name string
	Type Type
	Pub  bool
}

// Struct is a record type.
type Struct struct {
	Attrs    []string
	Name     string
	Generics []string // type parameters, in order
	Fields   []Field
}

func (s *Struct) node() {}
func (s *Struct) item() {}

// Variant is one enumerator.
type Variant struct {
	Name  string
	Value string
}

// Enum is an enumeration.
type Enum struct {
	Attrs    []string
	Name     string
	Variants []Variant
}

func (e *Enum) node() {}
func (e *Enum) item() {}

// Impl is an implementation block for Type, optionally of Trait.
type Impl struct {
	Unsafe   bool
	Trait    string
	Type     Type
	Generics []string
	Items    []ImplItem
}

func (i *Impl) node() {}
func (i *Impl) item() {}

// ImplFn is a function inside an implementation block. Calls names the
// foreign function it forwards to, when known.
type ImplFn struct {
	Pub    bool
	Name   string
	Params []Param
	Ret    Type // nil for no return value
	Calls  string
	Body   string
}

func (f *ImplFn) node()     {}
func (f *ImplFn) implItem() {}

// ImplAssocType is an associated type: type Name = Value;
type ImplAssocType struct {
	Name  string
	Value string
}

func (a *ImplAssocType) node()     {}
func (a *ImplAssocType) implItem() {}

// ForeignMod is a foreign-declaration block.
type ForeignMod struct {
	Attrs  []string
	Unsafe bool
	ABI    string
	Items  []ForeignItem
}

func (f *ForeignMod) node() {}
func (f *ForeignMod) item() {}

// Param is a function parameter.
type Param struct {
	Name string
	Type Type
}

// ForeignFn is a native function declaration. CppName is the unmangled
// native name when it differs from Name (overloads are renamed by the
// extraction tool).
type ForeignFn struct {
	Attrs    []string
	Name     string
	CppName  string
	LinkName string
	Params   []Param
	Ret      Type // nil for no return value
}

func (f *ForeignFn) node()        {}
func (f *ForeignFn) foreignItem() {}

// NativeName returns the unmangled native function name.
func (f *ForeignFn) NativeName() string {
	if f.CppName != "" {
		return f.CppName
	}
	return f.Name
}

// ForeignType declares a type visible to the bridge: type Name = Target;
type ForeignType struct {
	Attrs  []string
	Name   string
	Target Type // nil for an opaque declaration
}

func (f *ForeignType) node()        {}
func (f *ForeignType) foreignItem() {}

// ForeignStatic is a native global variable.
type ForeignStatic struct {
	Name string
	Mut  bool
	Type Type
}

func (f *ForeignStatic) node()        {}
func (f *ForeignStatic) foreignItem() {}

// Include is a native include directive inside a foreign block.
type Include struct {
	Path string
}

func (i *Include) node()        {}
func (i *Include) foreignItem() {}

// Use is an import statement.
type Use struct {
	Attrs []string
	Pub   bool
	Path  string
	Alias string
}

func (u *Use) node() {}
func (u *Use) item() {}

// Const is a constant.
type Const struct {
	Pub   bool
	Name  string
	Type  Type
	Value string
}

func (c *Const) node() {}
func (c *Const) item() {}

// TypeAlias is a typedef: type Name = Target;
type TypeAlias struct {
	Pub    bool
	Name   string
	Target Type
}

func (t *TypeAlias) node() {}
func (t *TypeAlias) item() {}

// UnknownItem preserves any item kind the tree format does not model
// (free functions outside foreign blocks, statics, macros).
type UnknownItem struct {
	Kind string
	Name string
}

func (u *UnknownItem) node() {}
func (u *UnknownItem) item() {}

// UnknownForeignItem preserves an unmodeled foreign block member.
type UnknownForeignItem struct {
	Kind string
	Name string
}

func (u *UnknownForeignItem) node()        {}
func (u *UnknownForeignItem) foreignItem() {}
