package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []string{
		"u32",
		"::std::os::raw::c_int",
		"root::a::X",
		"root::std::unique_ptr<root::a::Y>",
		"root::std::pair<u8, root::a::X>",
		"*mut root::a::X",
		"*const *const u8",
		"&str",
		"&mut root::a::X",
		"[u8; 4]",
		"[*const u8; 0]",
		"[[f32; 4]; N]",
		"()",
		"fn()",
		"unsafe extern \"C\" fn(*mut u8, i32) -> i32",
		"::std::option::Option<unsafe extern \"C\" fn(*mut ::std::os::raw::c_void)>",
		"extern \"C\" fn(*const ::std::os::raw::c_char, ...) -> ::std::os::raw::c_int",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			ty, err := ParseType(src)
			require.NoError(t, err)
			assert.Equal(t, src, ty.String())
		})
	}
}

func TestParseTypeStructure(t *testing.T) {
	ty := MustParseType("*mut root::std::unique_ptr<root::a::Y>")
	ptr, ok := ty.(*PtrType)
	require.True(t, ok)
	assert.True(t, ptr.Mut)
	path, ok := ptr.Elem.(*PathType)
	require.True(t, ok)
	assert.Equal(t, []string{"root", "std", "unique_ptr"}, path.Segments)
	assert.Equal(t, "unique_ptr", path.Last())
	require.Len(t, path.Args, 1)
	assert.Equal(t, "root::a::Y", path.Args[0].String())

	opt := MustParseType(`::std::option::Option<unsafe extern "C-unwind" fn(arg1: *mut u8, len: usize) -> root::a::X>`).(*PathType)
	fp, ok := opt.Args[0].(*FnPtrType)
	require.True(t, ok)
	assert.True(t, fp.Unsafe)
	assert.Equal(t, "C-unwind", fp.ABI)
	require.Len(t, fp.Params, 2)
	assert.Equal(t, "*mut u8", fp.Params[0].String())
	assert.Equal(t, "usize", fp.Params[1].String())
	assert.Equal(t, "root::a::X", fp.Ret.String())

	arr := MustParseType("[u8; 16]").(*ArrayType)
	assert.Equal(t, "16", arr.Len)
	assert.Equal(t, "u8", arr.Elem.String())
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"", "empty type"},
		{"*u8", "pointer needs const or mut"},
		{"[u8 4]", `expected ";"`},
		{"[u8; 4", `expected "]"`},
		{"root::", "expected identifier"},
		{"root::fn", "unsupported type syntax"},
		{"extern \"C fn()", "unterminated ABI string"},
		{"fn(u8", `expected ")"`},
		{"fn() -", `expected ">"`},
		{"dyn Trait", "unsupported type syntax"},
		{"Vec<u8", `expected ">"`},
		{"u8 u16", `unexpected "u16"`},
		{"1abc", "expected identifier"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParseType(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestMustParseTypePanics(t *testing.T) {
	assert.Panics(t, func() { MustParseType("*") })
}
