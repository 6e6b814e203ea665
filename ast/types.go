package ast

import (
	"strings"
)

// Type is a type expression appearing in a field, parameter, alias target
// or generic argument.
type Type interface {
	Node
	typ()
	String() string
}

// PathType is a named type reference such as root::a::X or
// root::std::unique_ptr<root::a::Y>. Generic arguments attach to the last
// segment.
type PathType struct {
	Global   bool // leading ::
	Segments []string
	Args     []Type
}

func (t *PathType) node() {}
func (t *PathType) typ()  {}

func (t *PathType) String() string {
	var sb strings.Builder
	if t.Global {
		sb.WriteString("::")
	}
	sb.WriteString(strings.Join(t.Segments, "::"))
	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}
		sb.WriteString("<" + strings.Join(args, ", ") + ">")
	}
	return sb.String()
}

// Last returns the final path segment.
func (t *PathType) Last() string {
	if len(t.Segments) == 0 {
		return ""
	}
	return t.Segments[len(t.Segments)-1]
}

// PtrType is a raw pointer: *const T or *mut T.
type PtrType struct {
	Mut  bool
	Elem Type
}

func (t *PtrType) node() {}
func (t *PtrType) typ()  {}

func (t *PtrType) String() string {
	if t.Mut {
		return "*mut " + t.Elem.String()
	}
	return "*const " + t.Elem.String()
}

// RefType is a reference: &T or &mut T.
type RefType struct {
	Mut  bool
	Elem Type
}

func (t *RefType) node() {}
func (t *RefType) typ()  {}

func (t *RefType) String() string {
	if t.Mut {
		return "&mut " + t.Elem.String()
	}
	return "&" + t.Elem.String()
}

// ArrayType is a fixed-size array: [T; N].
type ArrayType struct {
	Elem Type
	Len  string
}

func (t *ArrayType) node() {}
func (t *ArrayType) typ()  {}

func (t *ArrayType) String() string { return "[" + t.Elem.String() + "; " + t.Len + "]" }

// UnitType is the empty tuple ().
type UnitType struct{}

func (t *UnitType) node() {}
func (t *UnitType) typ()  {}

func (t *UnitType) String() string { return "()" }

// FnPtrType is a function pointer such as unsafe extern "C" fn(*mut u8) -> i32.
// It is opaque to conversion: its parameter and return types are neither
// rewritten nor treated as dependencies.
type FnPtrType struct {
	Unsafe   bool
	ABI      string // empty when there is no extern qualifier
	Params   []Type
	Variadic bool
	Ret      Type
}

func (t *FnPtrType) node() {}
func (t *FnPtrType) typ()  {}

func (t *FnPtrType) String() string {
	var sb strings.Builder
	if t.Unsafe {
		sb.WriteString("unsafe ")
	}
	if t.ABI != "" {
		sb.WriteString("extern \"" + t.ABI + "\" ")
	}
	params := make([]string, 0, len(t.Params)+1)
	for _, p := range t.Params {
		params = append(params, p.String())
	}
	if t.Variadic {
		params = append(params, "...")
	}
	sb.WriteString("fn(" + strings.Join(params, ", ") + ")")
	if t.Ret != nil {
		sb.WriteString(" -> " + t.Ret.String())
	}
	return sb.String()
}

// Path builds a PathType from segments.
func Path(segments ...string) *PathType {
	return &PathType{Segments: segments}
}
