package ast

import "fmt"

// Factory centralizes construction of the artifact nodes a conversion
// emits, so every pass spells attributes and bridge paths the same way.
type Factory struct{}

// NewFactory returns a new Factory.
func NewFactory() *Factory { return &Factory{} }

// --- Attributes ---

// NamespaceAttr returns the bridge attribute placing a declaration in ns.
func (f *Factory) NamespaceAttr(ns Namespace) string {
	return fmt.Sprintf("namespace = %q", ns.String())
}

// CxxNameAttr returns the bridge attribute naming the native symbol.
func (f *Factory) CxxNameAttr(name string) string {
	return fmt.Sprintf("cxx_name = %q", name)
}

// RustNameAttr returns the bridge attribute naming the host-side symbol.
func (f *Factory) RustNameAttr(name string) string {
	return fmt.Sprintf("rust_name = %q", name)
}

// --- Modules and imports ---

// PubMod creates a public module with the given items.
func (f *Factory) PubMod(name string, items []Item) *Mod {
	return &Mod{Pub: true, Name: name, Items: items}
}

// PubUse creates a public re-export, aliased when alias is non-empty.
func (f *Factory) PubUse(path, alias string) *Use {
	return &Use{Pub: true, Path: path, Alias: alias}
}

// QuietUse creates a private import that tolerates being unused.
func (f *Factory) QuietUse(path string) *Use {
	return &Use{Attrs: []string{"allow(unused_imports)"}, Path: path}
}

// --- Bridge declarations ---

// IdentityAssertion binds a raw-binding type path to its native qualified
// name and classification tag ("Trivial" or "Opaque").
func (f *Factory) IdentityAssertion(rawPath []string, cppName, kind string) *Impl {
	return &Impl{
		Unsafe: true,
		Trait:  "cxx::ExternType",
		Type:   Path(rawPath...),
		Items: []ImplItem{
			&ImplAssocType{Name: "Id", Value: fmt.Sprintf("cxx::type_id!(%q)", cppName)},
			&ImplAssocType{Name: "Kind", Value: "cxx::kind::" + kind},
		},
	}
}

// UniquePtrImpl makes the bridge emit owning-handle support for a type.
func (f *Factory) UniquePtrImpl(bridgeName string) *Impl {
	return &Impl{Type: &PathType{Segments: []string{"UniquePtr"}, Args: []Type{Path(bridgeName)}}}
}

// UniquePtrOf wraps t in the owning smart pointer.
func (f *Factory) UniquePtrOf(t Type) Type {
	return &PathType{Segments: []string{"UniquePtr"}, Args: []Type{t}}
}

// SelfParam is the receiver of a bridge method. Mutable receivers are
// pinned since native objects may not move.
func (f *Factory) SelfParam(bridgeName string, mut bool) Param {
	return Param{Name: "self", Type: f.ReceiverType(bridgeName, mut)}
}

// ReceiverType is the bridge spelling of a this pointer.
func (f *Factory) ReceiverType(bridgeName string, mut bool) Type {
	if mut {
		return &PathType{Segments: []string{"Pin"}, Args: []Type{&RefType{Mut: true, Elem: Path(bridgeName)}}}
	}
	return &RefType{Elem: Path(bridgeName)}
}

// ForwardingImpl attaches fn to the raw-binding type at rawPath.
func (f *Factory) ForwardingImpl(rawPath []string, fn *ImplFn) *Impl {
	return &Impl{Type: Path(rawPath...), Items: []ImplItem{fn}}
}

// Include creates a native include directive.
func (f *Factory) Include(path string) *Include {
	return &Include{Path: path}
}
