package conversion

import (
	"github.com/rubiojr/bindconv/ast"
)

// rootSegment is the wrapper module under which the extraction tool nests
// every namespace.
const rootSegment = "root"

// knownTypes maps native library types onto the bridge library's own
// spellings. They never get an API of their own.
var knownTypes = map[ast.TypeName]string{
	ast.ParseTypeName("std::string"):     "CxxString",
	ast.ParseTypeName("std::unique_ptr"): "UniquePtr",
}

func isKnownType(tn ast.TypeName) bool {
	_, ok := knownTypes[tn]
	return ok
}

// typeConverter rewrites raw type references into bridge-representable
// forms. It resolves aliases through its typedef table and reports every
// qualified name it encounters.
type typeConverter struct {
	typedefs    map[ast.TypeName]ast.Type
	bridgeNames map[ast.TypeName]string
}

func newTypeConverter() *typeConverter {
	return &typeConverter{
		typedefs:    make(map[ast.TypeName]ast.Type),
		bridgeNames: make(map[ast.TypeName]string),
	}
}

func (tc *typeConverter) insertTypedef(tn ast.TypeName, target ast.Type) {
	tc.typedefs[tn] = target
}

// push records a known type and the identifier it has in the bridge scope.
func (tc *typeConverter) push(tn ast.TypeName, bridgeName string) {
	tc.bridgeNames[tn] = bridgeName
}

func (tc *typeConverter) isKnown(tn ast.TypeName) bool {
	_, ok := tc.bridgeNames[tn]
	return ok
}

func (tc *typeConverter) bridgeName(tn ast.TypeName) string {
	if name, ok := tc.bridgeNames[tn]; ok {
		return name
	}
	return tn.ID
}

// annotatedType is a rewritten type plus the names it referenced.
type annotatedType struct {
	ty          ast.Type
	encountered depSet
}

// convertType rewrites t. It never mutates t.
func (tc *typeConverter) convertType(t ast.Type) (annotatedType, error) {
	out := annotatedType{encountered: depSet{}}
	ty, err := tc.convert(t, out.encountered, nil)
	if err != nil {
		return annotatedType{}, err
	}
	out.ty = ty
	return out, nil
}

func (tc *typeConverter) convert(t ast.Type, seen depSet, resolving map[ast.TypeName]bool) (ast.Type, error) {
	switch tt := t.(type) {
	case *ast.PathType:
		return tc.convertPath(tt, seen, resolving)
	case *ast.PtrType:
		elem, err := tc.convert(tt.Elem, seen, resolving)
		if err != nil {
			return nil, err
		}
		return &ast.PtrType{Mut: tt.Mut, Elem: elem}, nil
	case *ast.RefType:
		elem, err := tc.convert(tt.Elem, seen, resolving)
		if err != nil {
			return nil, err
		}
		return &ast.RefType{Mut: tt.Mut, Elem: elem}, nil
	case *ast.ArrayType:
		elem, err := tc.convert(tt.Elem, seen, resolving)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Elem: elem, Len: tt.Len}, nil
	default:
		return t, nil
	}
}

func (tc *typeConverter) convertArgs(args []ast.Type, seen depSet, resolving map[ast.TypeName]bool) ([]ast.Type, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]ast.Type, len(args))
	for i, a := range args {
		c, err := tc.convert(a, seen, resolving)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func (tc *typeConverter) convertPath(pt *ast.PathType, seen depSet, resolving map[ast.TypeName]bool) (ast.Type, error) {
	args, err := tc.convertArgs(pt.Args, seen, resolving)
	if err != nil {
		return nil, err
	}
	tn, ok := qualifiedName(pt)
	if !ok {
		return &ast.PathType{Global: pt.Global, Segments: pt.Segments, Args: args}, nil
	}
	if known, ok := knownTypes[tn]; ok {
		return &ast.PathType{Segments: []string{known}, Args: args}, nil
	}
	if target, ok := tc.typedefs[tn]; ok {
		if resolving[tn] {
			return nil, newError(ComplexTypedefTarget, "%s", tn.CppName())
		}
		targetPath, isPath := target.(*ast.PathType)
		if !isPath {
			return nil, newError(ComplexTypedefTarget, "%s", tn.CppName())
		}
		seen.add(tn)
		next := make(map[ast.TypeName]bool, len(resolving)+1)
		for k := range resolving {
			next[k] = true
		}
		next[tn] = true
		return tc.convertPath(targetPath, seen, next)
	}
	seen.add(tn)
	return &ast.PathType{Segments: []string{tc.bridgeName(tn)}, Args: args}, nil
}

// qualifiedName extracts the qualified name of a path into the raw-binding
// root, ignoring relative super/self/crate prefixes. Paths outside the root
// are primitives.
func qualifiedName(pt *ast.PathType) (ast.TypeName, bool) {
	segs := pt.Segments
	for len(segs) > 0 && (segs[0] == "super" || segs[0] == "self" || segs[0] == "crate") {
		segs = segs[1:]
	}
	if len(segs) < 2 || segs[0] != rootSegment {
		return ast.TypeName{}, false
	}
	return ast.TypeNameFromSegments(segs[1:]), true
}

// resolvedName follows aliases from tn to the name it finally denotes. It
// reports false when an alias leads to a non-path type or to a primitive.
func (tc *typeConverter) resolvedName(tn ast.TypeName) (ast.TypeName, bool) {
	for range len(tc.typedefs) + 1 {
		target, ok := tc.typedefs[tn]
		if !ok {
			return tn, true
		}
		pt, isPath := target.(*ast.PathType)
		if !isPath {
			return ast.TypeName{}, false
		}
		next, isQualified := qualifiedName(pt)
		if !isQualified {
			return ast.TypeName{}, false
		}
		tn = next
	}
	return ast.TypeName{}, false
}
