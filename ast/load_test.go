package ast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTree = `
attrs: ["allow(non_camel_case_types)"]
items:
  - kind: mod
    name: root
    items:
      - kind: use
        path: "self::super::root"
      - kind: mod
        name: shapes
        items:
          - kind: struct
            name: Rect
            generics: [T]
            fields:
              - {name: w, type: "f64", pub: true}
              - {name: data, type: "*mut T"}
          - kind: enum
            name: Corner
            variants:
              - {name: TopLeft, value: "0"}
              - {name: BottomRight}
          - kind: impl
            type: "Rect"
            methods:
              - {name: area}
              - {name: scale, calls: Rect_scale1}
          - kind: foreign
            items:
              - kind: fn
                name: Rect_area
                link_name: _ZN6shapes4Rect4areaEv
                params:
                  - {name: this, type: "*const root::shapes::Rect"}
                returns: "f64"
              - {kind: static, name: count, type: "i32", mut: true}
              - {kind: var, name: weird}
          - {kind: const, pub: true, name: MAX, type: "u32", value: "8"}
          - {kind: type, name: Size, type: "usize"}
          - {kind: macro, name: CHECK}
      - kind: mod
        name: external
`

func TestParseSource(t *testing.T) {
	mod, err := ParseSource([]byte(sampleTree), "sample.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"allow(non_camel_case_types)"}, mod.Attrs)
	require.Len(t, mod.Items, 1)

	root := mod.Items[0].(*Mod)
	assert.Equal(t, "root", root.Name)
	require.Len(t, root.Items, 3)
	assert.Equal(t, &Use{Path: "self::super::root"}, root.Items[0])

	ext := root.Items[2].(*Mod)
	assert.True(t, ext.External)
	assert.Empty(t, ext.Items)

	shapes := root.Items[1].(*Mod)
	require.Len(t, shapes.Items, 7)

	rect := shapes.Items[0].(*Struct)
	assert.Equal(t, []string{"T"}, rect.Generics)
	require.Len(t, rect.Fields, 2)
	assert.True(t, rect.Fields[0].Pub)
	assert.Equal(t, "*mut T", rect.Fields[1].Type.String())

	corner := shapes.Items[1].(*Enum)
	assert.Equal(t, []Variant{{Name: "TopLeft", Value: "0"}, {Name: "BottomRight"}}, corner.Variants)

	imp := shapes.Items[2].(*Impl)
	assert.Equal(t, "Rect", imp.Type.String())
	require.Len(t, imp.Items, 2)
	assert.Equal(t, "Rect_scale1", imp.Items[1].(*ImplFn).Calls)

	fm := shapes.Items[3].(*ForeignMod)
	assert.Equal(t, "C", fm.ABI)
	assert.True(t, fm.Unsafe)
	require.Len(t, fm.Items, 3)
	fn := fm.Items[0].(*ForeignFn)
	assert.Equal(t, "_ZN6shapes4Rect4areaEv", fn.LinkName)
	assert.Equal(t, "Rect_area", fn.NativeName())
	assert.Equal(t, "f64", fn.Ret.String())
	assert.Equal(t, &ForeignStatic{Name: "count", Mut: true, Type: Path("i32")}, fm.Items[1])
	assert.Equal(t, &UnknownForeignItem{Kind: "var", Name: "weird"}, fm.Items[2])

	assert.Equal(t, &Const{Pub: true, Name: "MAX", Type: Path("u32"), Value: "8"}, shapes.Items[4])
	assert.Equal(t, &TypeAlias{Name: "Size", Target: Path("usize")}, shapes.Items[5])
	assert.Equal(t, &UnknownItem{Kind: "macro", Name: "CHECK"}, shapes.Items[6])
}

func TestParseSourceJSON(t *testing.T) {
	src := `{"items": [{"kind": "mod", "name": "root", "items": [{"kind": "struct", "name": "P", "fields": [{"name": "x", "type": "i32"}]}]}]}`
	mod, err := ParseSource([]byte(src), "tree.json")
	require.NoError(t, err)
	root := mod.Items[0].(*Mod)
	assert.Equal(t, "P", root.Items[0].(*Struct).Name)
}

func TestParseSourceCallbackFields(t *testing.T) {
	src := `
items:
  - kind: mod
    name: root
    items:
      - kind: struct
        name: Hooks
        fields:
          - name: on_event
            type: '::std::option::Option<unsafe extern "C" fn(arg1: *mut ::std::os::raw::c_void, code: i32)>'
`
	mod, err := ParseSource([]byte(src), "hooks.yaml")
	require.NoError(t, err)
	hooks := mod.Items[0].(*Mod).Items[0].(*Struct)
	field := hooks.Fields[0].Type.(*PathType)
	require.Len(t, field.Args, 1)
	fp, ok := field.Args[0].(*FnPtrType)
	require.True(t, ok)
	assert.Equal(t, "C", fp.ABI)
	assert.Len(t, fp.Params, 2)
}

func TestParseSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"not yaml", "items: [", "bad.yaml"},
		{"outer kind", "kind: struct\nname: S\n", `outermost item must be a mod, got "struct"`},
		{"missing kind", "items:\n  - name: x\n", `item "x" has no kind`},
		{"bad field type", "items:\n  - kind: struct\n    name: S\n    fields:\n      - {name: f, type: \"*u8\"}\n", "struct S field f"},
		{"bad param", "items:\n  - kind: foreign\n    items:\n      - kind: fn\n        name: f\n        params:\n          - {name: p, type: \"fn()\"}\n", "fn f param p"},
		{"unnamed struct", "items:\n  - kind: struct\n", "names: struct without a name"},
		{"duplicate field", "items:\n  - kind: struct\n    name: S\n    fields:\n      - {name: a, type: u8}\n      - {name: a, type: u16}\n", "fields: struct S declares field a twice"},
		{"foreign item without kind", "items:\n  - kind: foreign\n    items:\n      - {name: f}\n", `foreign item "f" has no kind`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource([]byte(tt.src), "bad.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTree), 0o644))
	mod, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, mod.Items, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}
