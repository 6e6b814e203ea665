package conversion

import (
	"sort"

	"github.com/rubiojr/bindconv/ast"
)

// TypeKind classifies a type by value-semantics safety.
type TypeKind int

const (
	POD                TypeKind = iota // trivially copyable and movable
	NonPOD                             // destructor or non-trivial move; owning handle only
	ForwardDeclaration                 // name known, no layout
)

func (k TypeKind) String() string {
	switch k {
	case POD:
		return "pod"
	case NonPOD:
		return "nonpod"
	case ForwardDeclaration:
		return "forward"
	default:
		return "unknown"
	}
}

// UseKind says whether and how an API is re-exported to end users.
type UseKind int

const (
	Unused UseKind = iota
	Used
	UsedWithAlias
)

// Use is the visibility of an API in the public re-export hierarchy.
type Use struct {
	Kind  UseKind
	Alias string // set for UsedWithAlias
}

// API is one node of the dependency graph: a discoverable declaration plus
// the fragments it contributes to each output artifact.
type API struct {
	Name ast.TypeName
	// BridgeName is the identifier in the bridge-declaration scope.
	BridgeName string
	Use        Use
	// Deps are the qualified names this API needs, sorted.
	Deps []ast.TypeName
	// AllowlistID, when set, replaces the identifier for accept-list checks.
	AllowlistID string
	Fragments   []Fragment
}

// AllowlistName is the qualified name used when consulting the accept-list:
// the explicit allowlist identifier, else the alias, else the identifier.
func (a *API) AllowlistName() ast.TypeName {
	switch {
	case a.AllowlistID != "":
		return ast.NewTypeName(a.Name.NS, a.AllowlistID)
	case a.Use.Kind == UsedWithAlias:
		return ast.NewTypeName(a.Name.NS, a.Use.Alias)
	default:
		return a.Name
	}
}

// Fragment is one piece of output owned by an API. Each variant is destined
// for exactly one artifact group.
type Fragment interface{ fragment() }

// ForeignFragment goes into the bridge's foreign block.
type ForeignFragment struct{ Item ast.ForeignItem }

// BridgeFragment goes into the bridge-declaration scope.
type BridgeFragment struct{ Item ast.Item }

// GlobalFragment goes to the outermost level of the output.
type GlobalFragment struct{ Item ast.Item }

// NeedFragment asks the native glue stage for extra code.
type NeedFragment struct{ Need AdditionalNeed }

// RawFragment is re-emitted inside the raw-binding hierarchy.
type RawFragment struct{ Item ast.Item }

func (ForeignFragment) fragment() {}
func (BridgeFragment) fragment()  {}
func (GlobalFragment) fragment()  {}
func (NeedFragment) fragment()    {}
func (RawFragment) fragment()     {}

// depSet collects dependency names without duplicates.
type depSet map[ast.TypeName]struct{}

func (s depSet) add(names ...ast.TypeName) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

func (s depSet) merge(other depSet) {
	for n := range other {
		s[n] = struct{}{}
	}
}

func (s depSet) sorted() []ast.TypeName {
	out := make([]ast.TypeName, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sortTypeNames(out)
	return out
}

func sortTypeNames(names []ast.TypeName) {
	sort.Slice(names, func(i, j int) bool { return names[i].Less(names[j]) })
}
