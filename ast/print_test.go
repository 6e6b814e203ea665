package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintItems(t *testing.T) {
	f := NewFactory()
	items := []Item{
		f.IdentityAssertion([]string{"bindgen", "root", "a", "X"}, "a::X", "Trivial"),
		&Mod{Name: "bindgen", Items: []Item{
			f.PubMod("root", []Item{
				f.QuietUse("self::super::super::cxxbridge"),
				&Struct{Name: "X", Fields: []Field{{Name: "v", Type: Path("i32"), Pub: true}}},
				&Enum{Name: "E", Variants: []Variant{{Name: "A", Value: "1"}, {Name: "B"}}},
				&TypeAlias{Pub: true, Name: "Size", Target: Path("usize")},
			}),
		}},
		&Mod{Attrs: []string{"cxx::bridge"}, Pub: true, Name: "cxxbridge", Items: []Item{
			f.UniquePtrImpl("X"),
			&ForeignMod{Unsafe: true, ABI: "C++", Items: []ForeignItem{
				&ForeignType{Attrs: []string{f.NamespaceAttr(NewNamespace("a"))}, Name: "X", Target: MustParseType("super::bindgen::root::a::X")},
				&ForeignFn{Name: "get", Params: []Param{f.SelfParam("X", false)}, Ret: Path("i32")},
				&ForeignFn{Name: "reset", Params: []Param{f.SelfParam("X", true)}, Ret: &UnitType{}},
				&ForeignType{Name: "Opaque"},
				f.Include("x.h"),
			}},
		}},
		f.PubUse("cxxbridge::X", ""),
		f.PubUse("cxxbridge::b_Y", "Y"),
		&Const{Pub: true, Name: "N", Type: Path("u32"), Value: "3"},
		&Mod{Name: "ext", External: true},
	}
	want := `unsafe impl cxx::ExternType for bindgen::root::a::X {
    type Id = cxx::type_id!("a::X");
    type Kind = cxx::kind::Trivial;
}
mod bindgen {
    pub mod root {
        #[allow(unused_imports)]
        use self::super::super::cxxbridge;
        pub struct X {
            pub v: i32,
        }
        pub enum E {
            A = 1,
            B,
        }
        pub type Size = usize;
    }
}
#[cxx::bridge]
pub mod cxxbridge {
    impl UniquePtr<X> {}
    unsafe extern "C++" {
        #[namespace = "a"]
        type X = super::bindgen::root::a::X;
        pub fn get(self: &X) -> i32;
        pub fn reset(self: Pin<&mut X>);
        type Opaque;
        include!("x.h");
    }
}
pub use cxxbridge::X;
pub use cxxbridge::b_Y as Y;
pub const N: u32 = 3;
mod ext;
`
	assert.Equal(t, want, PrintItems(items))
}

func TestPrintForwardingImpl(t *testing.T) {
	f := NewFactory()
	imp := f.ForwardingImpl([]string{"bindgen", "root", "P"}, &ImplFn{
		Pub:    true,
		Name:   "origin",
		Params: []Param{{Name: "scale", Type: Path("f64")}},
		Ret:    Path("cxxbridge", "P"),
		Body:   "cxxbridge::origin(scale)",
	})
	want := `impl bindgen::root::P {
    pub fn origin(scale: f64) -> cxxbridge::P {
        cxxbridge::origin(scale)
    }
}
`
	assert.Equal(t, want, PrintItem(imp))
}

func TestPrintForeignDetails(t *testing.T) {
	fm := &ForeignMod{Attrs: []string{`link(name = "m")`}, ABI: "C", Items: []ForeignItem{
		&ForeignFn{Name: "f", LinkName: "_Z1fv", Attrs: []string{`cxx_name = "g"`}},
		&ForeignStatic{Name: "counter", Mut: true, Type: Path("i32")},
		&UnknownForeignItem{Kind: "var", Name: "w"},
	}}
	want := `#[link(name = "m")]
extern "C" {
    #[cxx_name = "g"]
    #[link_name = "_Z1fv"]
    pub fn f();
    pub static mut counter: i32;
    // unsupported var w
}
`
	assert.Equal(t, want, PrintItem(fm))
}

func TestPrintEmptyStruct(t *testing.T) {
	assert.Equal(t, "pub struct Unit<T> {}\n", PrintItem(&Struct{Name: "Unit", Generics: []string{"T"}}))
}
