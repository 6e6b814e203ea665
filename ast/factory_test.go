package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryAttributes(t *testing.T) {
	f := NewFactory()
	assert.Equal(t, `namespace = "a::b"`, f.NamespaceAttr(NewNamespace("a", "b")))
	assert.Equal(t, `cxx_name = "Inner"`, f.CxxNameAttr("Inner"))
	assert.Equal(t, `rust_name = "get"`, f.RustNameAttr("get"))
}

func TestFactoryUses(t *testing.T) {
	f := NewFactory()
	assert.Equal(t, &Use{Pub: true, Path: "cxxbridge::b_X", Alias: "X"}, f.PubUse("cxxbridge::b_X", "X"))
	quiet := f.QuietUse("cxx::UniquePtr")
	assert.False(t, quiet.Pub)
	assert.Equal(t, []string{"allow(unused_imports)"}, quiet.Attrs)

	mod := f.PubMod("a", []Item{quiet})
	assert.True(t, mod.Pub)
	assert.False(t, mod.External)
	assert.Len(t, mod.Items, 1)
}

func TestFactoryIdentityAssertion(t *testing.T) {
	imp := NewFactory().IdentityAssertion([]string{"bindgen", "root", "X"}, "X", "Opaque")
	assert.True(t, imp.Unsafe)
	assert.Equal(t, "cxx::ExternType", imp.Trait)
	assert.Equal(t, "bindgen::root::X", imp.Type.String())
	require.Len(t, imp.Items, 2)
	assert.Equal(t, &ImplAssocType{Name: "Kind", Value: "cxx::kind::Opaque"}, imp.Items[1])
}

func TestFactoryTypes(t *testing.T) {
	f := NewFactory()
	assert.Equal(t, "UniquePtr<CxxString>", f.UniquePtrOf(Path("CxxString")).String())
	assert.Equal(t, "&X", f.ReceiverType("X", false).String())
	assert.Equal(t, "Pin<&mut X>", f.ReceiverType("X", true).String())
	assert.Equal(t, Param{Name: "self", Type: f.ReceiverType("X", true)}, f.SelfParam("X", true))
	assert.Equal(t, "UniquePtr<X>", f.UniquePtrImpl("X").Type.String())
}
