package ast

import (
	"fmt"
	"strings"
)

// PrintItems serializes a list of items to bridge source text.
func PrintItems(items []Item) string {
	p := &printer{}
	for _, it := range items {
		p.printItem(it)
	}
	return p.sb.String()
}

// PrintItem serializes a single item.
func PrintItem(it Item) string {
	return PrintItems([]Item{it})
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) line(format string, args ...any) {
	p.writeIndent()
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *printer) writeIndent() {
	for range p.indent {
		p.sb.WriteString("    ")
	}
}

func (p *printer) attrs(attrs []string) {
	for _, a := range attrs {
		p.line("#[%s]", a)
	}
}

func pubPrefix(pub bool) string {
	if pub {
		return "pub "
	}
	return ""
}

func generics(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func (p *printer) printItem(it Item) {
	switch t := it.(type) {
	case *Mod:
		p.attrs(t.Attrs)
		if t.External {
			p.line("%smod %s;", pubPrefix(t.Pub), t.Name)
			return
		}
		p.line("%smod %s {", pubPrefix(t.Pub), t.Name)
		p.indent++
		for _, child := range t.Items {
			p.printItem(child)
		}
		p.indent--
		p.line("}")
	case *Struct:
		p.attrs(t.Attrs)
		if len(t.Fields) == 0 {
			p.line("pub struct %s%s {}", t.Name, generics(t.Generics))
			return
		}
		p.line("pub struct %s%s {", t.Name, generics(t.Generics))
		p.indent++
		for _, f := range t.Fields {
			p.line("%s%s: %s,", pubPrefix(f.Pub), f.Name, f.Type)
		}
		p.indent--
		p.line("}")
	case *Enum:
		p.attrs(t.Attrs)
		p.line("pub enum %s {", t.Name)
		p.indent++
		for _, v := range t.Variants {
			if v.Value != "" {
				p.line("%s = %s,", v.Name, v.Value)
			} else {
				p.line("%s,", v.Name)
			}
		}
		p.indent--
		p.line("}")
	case *Impl:
		p.printImpl(t)
	case *ForeignMod:
		p.attrs(t.Attrs)
		prefix := ""
		if t.Unsafe {
			prefix = "unsafe "
		}
		p.line("%sextern %q {", prefix, t.ABI)
		p.indent++
		for _, fi := range t.Items {
			p.printForeignItem(fi)
		}
		p.indent--
		p.line("}")
	case *Use:
		p.attrs(t.Attrs)
		if t.Alias != "" {
			p.line("%suse %s as %s;", pubPrefix(t.Pub), t.Path, t.Alias)
		} else {
			p.line("%suse %s;", pubPrefix(t.Pub), t.Path)
		}
	case *Const:
		p.line("%sconst %s: %s = %s;", pubPrefix(t.Pub), t.Name, t.Type, t.Value)
	case *TypeAlias:
		p.line("%stype %s = %s;", pubPrefix(t.Pub), t.Name, t.Target)
	case *UnknownItem:
		p.line("// unsupported %s %s", t.Kind, t.Name)
	}
}

func (p *printer) printImpl(t *Impl) {
	var sb strings.Builder
	if t.Unsafe {
		sb.WriteString("unsafe ")
	}
	sb.WriteString("impl" + generics(t.Generics) + " ")
	if t.Trait != "" {
		sb.WriteString(t.Trait + " for ")
	}
	sb.WriteString(t.Type.String())
	if len(t.Items) == 0 {
		p.line("%s {}", sb.String())
		return
	}
	p.line("%s {", sb.String())
	p.indent++
	for _, ii := range t.Items {
		switch m := ii.(type) {
		case *ImplAssocType:
			p.line("type %s = %s;", m.Name, m.Value)
		case *ImplFn:
			sig := fmt.Sprintf("%sfn %s(%s)%s", pubPrefix(m.Pub), m.Name, params(m.Params), ret(m.Ret))
			if m.Body == "" {
				p.line("%s {}", sig)
				continue
			}
			p.line("%s {", sig)
			p.indent++
			for _, ln := range strings.Split(strings.TrimRight(m.Body, "\n"), "\n") {
				p.line("%s", strings.TrimLeft(ln, " \t"))
			}
			p.indent--
			p.line("}")
		}
	}
	p.indent--
	p.line("}")
}

func (p *printer) printForeignItem(fi ForeignItem) {
	switch t := fi.(type) {
	case *ForeignFn:
		p.attrs(t.Attrs)
		if t.LinkName != "" {
			p.line("#[link_name = %q]", t.LinkName)
		}
		p.line("pub fn %s(%s)%s;", t.Name, params(t.Params), ret(t.Ret))
	case *ForeignType:
		p.attrs(t.Attrs)
		if t.Target == nil {
			p.line("type %s;", t.Name)
		} else {
			p.line("type %s = %s;", t.Name, t.Target)
		}
	case *ForeignStatic:
		mut := ""
		if t.Mut {
			mut = "mut "
		}
		p.line("pub static %s%s: %s;", mut, t.Name, t.Type)
	case *Include:
		p.line("include!(%q);", t.Path)
	case *UnknownForeignItem:
		p.line("// unsupported %s %s", t.Kind, t.Name)
	}
}

func params(ps []Param) string {
	parts := make([]string, len(ps))
	for i, prm := range ps {
		parts[i] = fmt.Sprintf("%s: %s", prm.Name, prm.Type)
	}
	return strings.Join(parts, ", ")
}

func ret(t Type) string {
	if t == nil {
		return ""
	}
	if _, unit := t.(*UnitType); unit {
		return ""
	}
	return " -> " + t.String()
}
