package ast

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// itemDoc is the on-disk shape of one declaration. JSON documents decode
// through the same path since YAML is a superset.
type itemDoc struct {
	Kind     string      `yaml:"kind"`
	Name     string      `yaml:"name"`
	Pub      bool        `yaml:"pub"`
	Attrs    []string    `yaml:"attrs"`
	Items    *[]itemDoc  `yaml:"items"`
	Generics []string    `yaml:"generics"`
	Fields   []fieldDoc  `yaml:"fields"`
	Variants []Variant   `yaml:"variants"`
	Type     string      `yaml:"type"`
	Value    string      `yaml:"value"`
	Path     string      `yaml:"path"`
	Alias    string      `yaml:"alias"`
	Methods  []methodDoc `yaml:"methods"`
	ABI      string      `yaml:"abi"`
	Params   []paramDoc  `yaml:"params"`
	Returns  string      `yaml:"returns"`
	CppName  string      `yaml:"cpp_name"`
	LinkName string      `yaml:"link_name"`
	Mut      bool        `yaml:"mut"`
}

type fieldDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Pub  bool   `yaml:"pub"`
}

type paramDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type methodDoc struct {
	Name  string `yaml:"name"`
	Calls string `yaml:"calls"`
}

// ParseFile reads a declaration tree document and returns its outermost
// module.
func ParseFile(filename string) (*Mod, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return ParseSource(src, filename)
}

// ParseSource decodes a declaration tree document. The name parameter is
// used for error messages.
func ParseSource(src []byte, name string) (*Mod, error) {
	var doc itemDoc
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if doc.Kind == "" {
		doc.Kind = "mod"
	}
	if doc.Kind != "mod" {
		return nil, fmt.Errorf("%s: outermost item must be a mod, got %q", name, doc.Kind)
	}
	item, err := doc.toItem()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	mod := item.(*Mod)
	if err := LoadChecks.Run(mod); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return mod, nil
}

func (d *itemDoc) toItem() (Item, error) {
	switch d.Kind {
	case "mod":
		m := &Mod{Attrs: d.Attrs, Pub: d.Pub, Name: d.Name}
		if d.Items == nil {
			m.External = true
			return m, nil
		}
		for i := range *d.Items {
			child, err := (*d.Items)[i].toItem()
			if err != nil {
				return nil, fmt.Errorf("mod %s: %w", d.Name, err)
			}
			m.Items = append(m.Items, child)
		}
		return m, nil
	case "struct":
		s := &Struct{Attrs: d.Attrs, Name: d.Name, Generics: d.Generics}
		for _, f := range d.Fields {
			t, err := ParseType(f.Type)
			if err != nil {
				return nil, fmt.Errorf("struct %s field %s: %w", d.Name, f.Name, err)
			}
			s.Fields = append(s.Fields, Field{Name: f.Name, Type: t, Pub: f.Pub})
		}
		return s, nil
	case "enum":
		return &Enum{Attrs: d.Attrs, Name: d.Name, Variants: d.Variants}, nil
	case "impl":
		self, err := ParseType(d.Type)
		if err != nil {
			return nil, fmt.Errorf("impl: %w", err)
		}
		imp := &Impl{Type: self, Generics: d.Generics}
		for _, m := range d.Methods {
			imp.Items = append(imp.Items, &ImplFn{Pub: true, Name: m.Name, Calls: m.Calls})
		}
		return imp, nil
	case "foreign":
		fm := &ForeignMod{Attrs: d.Attrs, Unsafe: true, ABI: d.ABI}
		if fm.ABI == "" {
			fm.ABI = "C"
		}
		if d.Items != nil {
			for i := range *d.Items {
				fi, err := (*d.Items)[i].toForeignItem()
				if err != nil {
					return nil, err
				}
				fm.Items = append(fm.Items, fi)
			}
		}
		return fm, nil
	case "use":
		return &Use{Attrs: d.Attrs, Pub: d.Pub, Path: d.Path, Alias: d.Alias}, nil
	case "const":
		t, err := ParseType(d.Type)
		if err != nil {
			return nil, fmt.Errorf("const %s: %w", d.Name, err)
		}
		return &Const{Pub: d.Pub, Name: d.Name, Type: t, Value: d.Value}, nil
	case "type":
		t, err := ParseType(d.Type)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", d.Name, err)
		}
		return &TypeAlias{Pub: d.Pub, Name: d.Name, Target: t}, nil
	case "":
		return nil, fmt.Errorf("item %q has no kind", d.Name)
	default:
		return &UnknownItem{Kind: d.Kind, Name: d.Name}, nil
	}
}

func (d *itemDoc) toForeignItem() (ForeignItem, error) {
	switch d.Kind {
	case "fn":
		fn := &ForeignFn{Attrs: d.Attrs, Name: d.Name, CppName: d.CppName, LinkName: d.LinkName}
		for _, p := range d.Params {
			t, err := ParseType(p.Type)
			if err != nil {
				return nil, fmt.Errorf("fn %s param %s: %w", d.Name, p.Name, err)
			}
			fn.Params = append(fn.Params, Param{Name: p.Name, Type: t})
		}
		if d.Returns != "" {
			t, err := ParseType(d.Returns)
			if err != nil {
				return nil, fmt.Errorf("fn %s return: %w", d.Name, err)
			}
			fn.Ret = t
		}
		return fn, nil
	case "static":
		t, err := ParseType(d.Type)
		if err != nil {
			return nil, fmt.Errorf("static %s: %w", d.Name, err)
		}
		return &ForeignStatic{Name: d.Name, Mut: d.Mut, Type: t}, nil
	case "":
		return nil, fmt.Errorf("foreign item %q has no kind", d.Name)
	default:
		return &UnknownForeignItem{Kind: d.Kind, Name: d.Name}, nil
	}
}
