package conversion

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rubiojr/bindconv/ast"
	"github.com/rubiojr/bindconv/typedb"
)

// forwardDeclSentinel is the field name the extraction tool gives the only
// member of a type it knows nothing about.
const forwardDeclSentinel = "_unused"

// destructorSuffix marks foreign shims that run a native destructor.
const destructorSuffix = "_destructor"

// typeDetails is what the classifier learned about one type.
type typeDetails struct {
	enum      bool
	forward   bool
	safe      bool
	reason    string // why the type is not POD
	fieldDeps []ast.TypeName
}

// byValueChecker decides which types are safe to hold by value: no
// destructor, no non-trivial move, and every field type safe as well.
type byValueChecker struct {
	tc      *typeConverter
	details map[ast.TypeName]*typeDetails
}

// TypeClass is the classification of one discovered type.
type TypeClass struct {
	Name   ast.TypeName
	Kind   TypeKind
	Reason string
}

func spotForwardDeclaration(fields []ast.Field) bool {
	for _, f := range fields {
		if f.Name == forwardDeclSentinel {
			return true
		}
	}
	return false
}

// identifyByValueSafeTypes walks the whole tree, classifies every struct
// and enum, and checks the value-type directives in db against the result.
func identifyByValueSafeTypes(items []ast.Item, db *typedb.TypeDatabase, tc *typeConverter) (*byValueChecker, error) {
	c := &byValueChecker{tc: tc, details: make(map[ast.TypeName]*typeDetails)}
	marks := make(map[ast.TypeName]string)
	c.scan(items, ast.Namespace{}, marks)
	for tn, reason := range marks {
		if d, ok := c.details[tn]; ok && d.safe {
			d.safe = false
			d.reason = reason
		}
	}
	c.propagate()
	for _, tn := range db.PODRequests() {
		if !c.isPOD(tn) {
			return nil, newError(UnsafePODType, "%s: %s", tn.CppName(), c.reason(tn))
		}
	}
	return c, nil
}

func (c *byValueChecker) scan(items []ast.Item, ns ast.Namespace, marks map[ast.TypeName]string) {
	for _, item := range items {
		switch it := item.(type) {
		case *ast.Mod:
			c.scan(it.Items, ns.Push(it.Name), marks)
		case *ast.Struct:
			tn := ast.NewTypeName(ns, it.Name)
			d := &typeDetails{safe: true}
			if spotForwardDeclaration(it.Fields) {
				d.forward = true
				d.safe = false
				d.reason = "it is an incomplete type"
			} else {
				for _, f := range it.Fields {
					c.fieldRefs(f.Type, &d.fieldDeps, 0)
				}
			}
			c.details[tn] = d
		case *ast.Enum:
			c.details[ast.NewTypeName(ns, it.Name)] = &typeDetails{enum: true, safe: true}
		case *ast.Impl:
			self, ok := implSelfType(it, ns)
			if !ok {
				continue
			}
			for _, ii := range it.Items {
				fn, ok := ii.(*ast.ImplFn)
				if !ok {
					continue
				}
				switch fn.Name {
				case "destruct":
					marks[self] = "it has a destructor"
				case "move_constructor":
					if _, dup := marks[self]; !dup {
						marks[self] = "it has a non-trivial move constructor"
					}
				}
			}
		case *ast.ForeignMod:
			for _, fi := range it.Items {
				fn, ok := fi.(*ast.ForeignFn)
				if !ok || !strings.HasSuffix(fn.Name, destructorSuffix) {
					continue
				}
				if recv, ok := receiverType(fn); ok {
					marks[recv] = "it has a destructor"
				}
			}
		}
	}
}

// fieldRefs appends the qualified names a field holds by value. Pointers and
// references never make a type unsafe; aliases are followed.
func (c *byValueChecker) fieldRefs(t ast.Type, out *[]ast.TypeName, depth int) {
	if depth > len(c.tc.typedefs) {
		return
	}
	switch tt := t.(type) {
	case *ast.PathType:
		tn, ok := qualifiedName(tt)
		if !ok {
			return
		}
		if target, isAlias := c.tc.typedefs[tn]; isAlias {
			c.fieldRefs(target, out, depth+1)
			return
		}
		*out = append(*out, tn)
	case *ast.ArrayType:
		c.fieldRefs(tt.Elem, out, depth)
	}
}

// propagate marks types unsafe until a fixpoint is reached. Names are
// visited in sorted order so reasons are stable across runs.
func (c *byValueChecker) propagate() {
	names := make([]ast.TypeName, 0, len(c.details))
	for tn := range c.details {
		names = append(names, tn)
	}
	sortTypeNames(names)
	for changed := true; changed; {
		changed = false
		for _, tn := range names {
			d := c.details[tn]
			if !d.safe {
				continue
			}
			for _, dep := range d.fieldDeps {
				if !c.isPOD(dep) {
					d.safe = false
					d.reason = fmt.Sprintf("field type %s is not safe to hold by value (%s)", dep.CppName(), c.reason(dep))
					changed = true
					break
				}
			}
		}
	}
}

func (c *byValueChecker) isPOD(tn ast.TypeName) bool {
	d, ok := c.details[tn]
	return ok && d.safe
}

func (c *byValueChecker) isForward(tn ast.TypeName) bool {
	d, ok := c.details[tn]
	return ok && d.forward
}

func (c *byValueChecker) reason(tn ast.TypeName) string {
	d, ok := c.details[tn]
	if !ok {
		return "it is not a known type"
	}
	return d.reason
}

func (c *byValueChecker) kind(tn ast.TypeName) TypeKind {
	switch {
	case c.isForward(tn):
		return ForwardDeclaration
	case c.isPOD(tn):
		return POD
	default:
		return NonPOD
	}
}

// classes returns the classification of every discovered type, sorted.
func (c *byValueChecker) classes() []TypeClass {
	out := make([]TypeClass, 0, len(c.details))
	for tn, d := range c.details {
		out = append(out, TypeClass{Name: tn, Kind: c.kind(tn), Reason: d.reason})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name.Less(out[j].Name) })
	return out
}

// implSelfType resolves the type an implementation block is for. Bare
// identifiers refer to the enclosing namespace.
func implSelfType(imp *ast.Impl, ns ast.Namespace) (ast.TypeName, bool) {
	pt, ok := imp.Type.(*ast.PathType)
	if !ok {
		return ast.TypeName{}, false
	}
	if tn, ok := qualifiedName(pt); ok {
		return tn, true
	}
	if len(pt.Segments) == 1 {
		return ast.NewTypeName(ns, pt.Segments[0]), true
	}
	return ast.TypeName{}, false
}

// receiverType returns the type of a leading this pointer parameter.
func receiverType(fn *ast.ForeignFn) (ast.TypeName, bool) {
	if len(fn.Params) == 0 || fn.Params[0].Name != "this" {
		return ast.TypeName{}, false
	}
	ptr, ok := fn.Params[0].Type.(*ast.PtrType)
	if !ok {
		return ast.TypeName{}, false
	}
	pt, ok := ptr.Elem.(*ast.PathType)
	if !ok {
		return ast.TypeName{}, false
	}
	return qualifiedName(pt)
}
