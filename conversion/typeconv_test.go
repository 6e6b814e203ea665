package conversion

import (
	"testing"

	"github.com/rubiojr/bindconv/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertType(t *testing.T) {
	tc := newTypeConverter()
	tc.push(tn("a::X"), "X")
	tc.push(tn("b::X"), "b_X")
	tc.push(tn("a::Y"), "Y")

	tests := []struct {
		in          string
		want        string
		encountered []string
	}{
		{"u32", "u32", nil},
		{"::std::os::raw::c_int", "::std::os::raw::c_int", nil},
		{"root::a::X", "X", []string{"a::X"}},
		{"super::super::root::b::X", "b_X", []string{"b::X"}},
		{"*mut root::a::X", "*mut X", []string{"a::X"}},
		{"&root::b::X", "&b_X", []string{"b::X"}},
		{"[root::a::Y; 4]", "[Y; 4]", []string{"a::Y"}},
		{"root::std::unique_ptr<root::a::Y>", "UniquePtr<Y>", []string{"a::Y"}},
		{"root::std::string", "CxxString", nil},
		{"root::c::Unknown", "Unknown", []string{"c::Unknown"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			in := ast.MustParseType(tt.in)
			got, err := tc.convertType(in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ty.String())
			var enc []string
			for _, n := range got.encountered.sorted() {
				enc = append(enc, n.CppName())
			}
			assert.Equal(t, tt.encountered, enc)
			assert.Equal(t, tt.in, in.String(), "input is not modified")
		})
	}
}

func TestConvertTypeResolvesAliases(t *testing.T) {
	tc := newTypeConverter()
	tc.push(tn("Widget"), "Widget")
	tc.insertTypedef(tn("Handle"), ast.MustParseType("root::Widget"))
	tc.insertTypedef(tn("a::Ref"), ast.MustParseType("root::Handle"))

	got, err := tc.convertType(ast.MustParseType("*const root::a::Ref"))
	require.NoError(t, err)
	assert.Equal(t, "*const Widget", got.ty.String())
	assert.Equal(t, []ast.TypeName{tn("Handle"), tn("Widget"), tn("a::Ref")}, got.encountered.sorted())

	resolved, ok := tc.resolvedName(tn("a::Ref"))
	require.True(t, ok)
	assert.Equal(t, tn("Widget"), resolved)
}

func TestConvertTypeComplexTypedefTarget(t *testing.T) {
	tc := newTypeConverter()
	tc.insertTypedef(tn("Ptr"), ast.MustParseType("*mut root::Widget"))
	tc.insertTypedef(tn("A"), ast.MustParseType("root::B"))
	tc.insertTypedef(tn("B"), ast.MustParseType("root::A"))

	_, err := tc.convertType(ast.MustParseType("root::Ptr"))
	assert.ErrorIs(t, err, ErrComplexTypedefTarget)
	assert.EqualError(t, err, "unable to produce a typedef pointing to a complex type: Ptr")

	_, err = tc.convertType(ast.MustParseType("root::A"))
	assert.ErrorIs(t, err, ErrComplexTypedefTarget, "alias cycles")

	_, ok := tc.resolvedName(tn("Ptr"))
	assert.False(t, ok)
}
