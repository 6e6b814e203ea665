package ast

import (
	"fmt"
	"strings"
)

// ParseType parses a type expression as written by the extraction tool:
//
//	u32  ::std::os::raw::c_int  root::a::X  root::std::unique_ptr<root::a::Y>
//	*mut root::a::X  *const u8  &mut T  &str  [u8; 4]  ()
//	::std::option::Option<unsafe extern "C" fn(arg1: *mut u8) -> i32>
func ParseType(src string) (Type, error) {
	p := &typeParser{toks: lexType(src), src: src}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.toks) {
		return nil, fmt.Errorf("type %q: unexpected %q", src, p.toks[p.pos])
	}
	return t, nil
}

// MustParseType is ParseType for literals known to be valid.
func MustParseType(src string) Type {
	t, err := ParseType(src)
	if err != nil {
		panic(err)
	}
	return t
}

func lexType(src string) []string {
	var toks []string
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == ':' && i+1 < len(src) && src[i+1] == ':':
			toks = append(toks, "::")
			i += 2
		case isIdentByte(c):
			j := i
			for j < len(src) && isIdentByte(src[j]) {
				j++
			}
			toks = append(toks, src[i:j])
			i = j
		default:
			toks = append(toks, string(c))
			i++
		}
	}
	return toks
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

type typeParser struct {
	src  string
	toks []string
	pos  int
}

func (p *typeParser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *typeParser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *typeParser) expect(tok string) error {
	if got := p.next(); got != tok {
		if got == "" {
			got = "end of input"
		}
		return fmt.Errorf("type %q: expected %q, got %q", p.src, tok, got)
	}
	return nil
}

func (p *typeParser) parseType() (Type, error) {
	switch tok := p.peek(); tok {
	case "":
		return nil, fmt.Errorf("type %q: empty type", p.src)
	case "*":
		p.next()
		var mut bool
		switch q := p.next(); q {
		case "mut":
			mut = true
		case "const":
		default:
			return nil, fmt.Errorf("type %q: pointer needs const or mut, got %q", p.src, q)
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &PtrType{Mut: mut, Elem: elem}, nil
	case "&":
		p.next()
		mut := false
		if p.peek() == "mut" {
			p.next()
			mut = true
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &RefType{Mut: mut, Elem: elem}, nil
	case "[":
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(";"); err != nil {
			return nil, err
		}
		n := p.next()
		if n == "" || !isIdentByte(n[0]) {
			return nil, fmt.Errorf("type %q: bad array length %q", p.src, n)
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		return &ArrayType{Elem: elem, Len: n}, nil
	case "(":
		p.next()
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return &UnitType{}, nil
	case "unsafe", "extern", "fn":
		return p.parseFnPtr()
	default:
		return p.parsePath()
	}
}

func (p *typeParser) parseFnPtr() (Type, error) {
	ft := &FnPtrType{}
	if p.peek() == "unsafe" {
		p.next()
		ft.Unsafe = true
	}
	if p.peek() == "extern" {
		p.next()
		ft.ABI = "C"
		if p.peek() == `"` {
			p.next()
			var abi strings.Builder
			for p.peek() != `"` {
				tok := p.next()
				if tok == "" {
					return nil, fmt.Errorf("type %q: unterminated ABI string", p.src)
				}
				abi.WriteString(tok)
			}
			p.next()
			ft.ABI = abi.String()
		}
	}
	if err := p.expect("fn"); err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	for p.peek() != ")" {
		switch tok := p.peek(); {
		case tok == "":
			return nil, fmt.Errorf("type %q: expected \")\", got \"end of input\"", p.src)
		case tok == ".":
			for range 3 {
				if err := p.expect("."); err != nil {
					return nil, err
				}
			}
			ft.Variadic = true
		default:
			// Parameters may be named.
			if isIdentByte(tok[0]) && p.pos+1 < len(p.toks) && p.toks[p.pos+1] == ":" {
				p.pos += 2
			}
			param, err := p.parseType()
			if err != nil {
				return nil, err
			}
			ft.Params = append(ft.Params, param)
		}
		if p.peek() != "," {
			break
		}
		p.next()
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if p.peek() == "-" {
		p.next()
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ft.Ret = ret
	}
	return ft, nil
}

func (p *typeParser) parsePath() (Type, error) {
	pt := &PathType{}
	if p.peek() == "::" {
		p.next()
		pt.Global = true
	}
	for {
		seg := p.next()
		if seg == "" || !isIdentByte(seg[0]) || strings.ContainsAny(seg[:1], "0123456789") {
			return nil, fmt.Errorf("type %q: expected identifier, got %q", p.src, seg)
		}
		if seg == "fn" || seg == "extern" || seg == "unsafe" || seg == "dyn" {
			return nil, fmt.Errorf("type %q: unsupported type syntax %q", p.src, seg)
		}
		pt.Segments = append(pt.Segments, seg)
		if p.peek() != "::" {
			break
		}
		p.next()
	}
	if p.peek() == "<" {
		p.next()
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			pt.Args = append(pt.Args, arg)
			if p.peek() == "," {
				p.next()
				continue
			}
			break
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
	}
	return pt, nil
}
