package conversion

import (
	"strings"

	"github.com/rubiojr/bindconv/ast"
)

// wrapperSuffix is appended to the bridge name of a function whose
// signature moves a non-trivial value, giving the glue symbol.
const wrapperSuffix = "_bindconv_wrapper"

// implRef is a function declared inside an implementation block.
type implRef struct {
	owner ast.TypeName
	name  string
}

// foreignModConverter gathers the foreign functions of one namespace. They
// are converted only once the namespace has been fully walked, because the
// implementation blocks naming static methods may come after the foreign
// block.
type foreignModConverter struct {
	ns      ast.Namespace
	fns     []*ast.ForeignFn
	statics map[string]implRef
}

func newForeignModConverter(ns ast.Namespace) *foreignModConverter {
	return &foreignModConverter{ns: ns, statics: make(map[string]implRef)}
}

func (mc *foreignModConverter) convertForeignModItems(items []ast.ForeignItem) error {
	for _, item := range items {
		switch it := item.(type) {
		case *ast.ForeignFn:
			mc.fns = append(mc.fns, it)
		case *ast.ForeignStatic:
			return newError(UnexpectedForeignItem, "static %s", it.Name)
		case *ast.ForeignType:
			return newError(UnexpectedForeignItem, "type %s", it.Name)
		case *ast.UnknownForeignItem:
			return newError(UnexpectedForeignItem, "%s %s", it.Kind, it.Name)
		default:
			return newError(UnexpectedForeignItem, "%T", item)
		}
	}
	return nil
}

// convertImplItems records which foreign functions the implementation block
// forwards to, so they become static methods of its type.
func (mc *foreignModConverter) convertImplItems(imp *ast.Impl) {
	owner, ok := implSelfType(imp, mc.ns)
	if !ok {
		return
	}
	for _, ii := range imp.Items {
		fn, ok := ii.(*ast.ImplFn)
		if !ok {
			continue
		}
		calls := fn.Calls
		if calls == "" {
			calls = owner.ID + "_" + fn.Name
		}
		mc.statics[calls] = implRef{owner: owner, name: fn.Name}
	}
}

func (mc *foreignModConverter) finished(c *conversion) error {
	for _, fn := range mc.fns {
		if err := c.convertForeignFn(mc, fn); err != nil {
			return err
		}
	}
	return nil
}

// fnSignature is a foreign function rewritten for the bridge.
type fnSignature struct {
	params  []ast.Param
	ret     ast.Type
	deps    depSet
	wrapped bool
	need    AdditionalNeed
}

func (c *conversion) convertForeignFn(mc *foreignModConverter, fn *ast.ForeignFn) error {
	if strings.HasSuffix(fn.Name, destructorSuffix) {
		return nil
	}
	ns := mc.ns
	params := fn.Params

	var (
		owner    ast.TypeName
		method   bool
		static   bool
		mutRecv  bool
		hostName = fn.NativeName()
	)
	if len(params) > 0 && params[0].Name == "this" {
		recv, ok := receiverType(fn)
		if !ok {
			return newError(UnexpectedThisType, "%s: %s", fn.Name, params[0].Type)
		}
		if resolved, ok := c.tc.resolvedName(recv); ok {
			recv = resolved
		}
		if c.avoidGeneratingType(recv) {
			c.logger.Debug("skipping method of unavailable type", "fn", fn.Name, "type", recv.CppName())
			return nil
		}
		if !c.tc.isKnown(recv) {
			return newError(UnexpectedThisType, "%s: %s", fn.Name, recv.CppName())
		}
		owner, method = recv, true
		mutRecv = params[0].Type.(*ast.PtrType).Mut
		params = params[1:]
		hostName = strings.TrimPrefix(hostName, owner.ID+"_")
	} else if ref, ok := mc.statics[fn.Name]; ok && (c.tc.isKnown(ref.owner) || c.avoidGeneratingType(ref.owner)) {
		if c.avoidGeneratingType(ref.owner) {
			return nil
		}
		owner, static = ref.owner, true
		hostName = ref.name
	}

	sig, ok, err := c.convertSignature(fn, params)
	if err != nil || !ok {
		return err
	}

	var bridgeName string
	if method || static {
		bridgeName = c.bridgeNames.UniqueName(owner.ID, hostName, ns)
	} else {
		bridgeName = c.bridgeNames.UniqueName("", hostName, ns)
	}
	// Members are named by their identifier inside the owning type; the
	// extraction tool's link name is a linker symbol, never a native name.
	native := fn.NativeName()
	if method || static {
		native = hostName
	}

	out := &ast.ForeignFn{Name: bridgeName, Params: sig.params, Ret: sig.ret}
	if method {
		sig.deps.add(owner)
		ownerBridge := c.tc.bridgeName(owner)
		if sig.wrapped {
			// The glue shim is a free function taking the object explicitly.
			this := ast.Param{Name: "this", Type: c.factory.ReceiverType(ownerBridge, mutRecv)}
			out.Params = append([]ast.Param{this}, out.Params...)
		} else {
			out.Params = append([]ast.Param{c.factory.SelfParam(ownerBridge, mutRecv)}, out.Params...)
		}
	}

	switch {
	case sig.wrapped:
		wrapper := bridgeName + wrapperSuffix
		out.Attrs = append(out.Attrs, c.factory.CxxNameAttr(wrapper))
		sig.need.Wrapper = wrapper
		if method || static {
			sig.need.Original = owner.CppName() + "::" + native
		} else {
			sig.need.Original = ast.NewTypeName(ns, native).CppName()
		}
		if method {
			sig.need.Receiver = owner.CppName()
		}
	default:
		switch {
		case static:
			// Static members are reached through the owning type as if it
			// were a namespace.
			out.Attrs = append(out.Attrs, c.factory.NamespaceAttr(owner.NS.Push(owner.ID)))
		case !method && !ns.IsRoot():
			out.Attrs = append(out.Attrs, c.factory.NamespaceAttr(ns))
		}
		if bridgeName != native {
			out.Attrs = append(out.Attrs, c.factory.CxxNameAttr(native))
		}
	}

	api := &API{
		Name:       ast.NewTypeName(ns, bridgeName),
		BridgeName: bridgeName,
		Fragments:  []Fragment{ForeignFragment{Item: out}},
	}
	if sig.wrapped {
		api.Fragments = append(api.Fragments, NeedFragment{Need: sig.need})
	}

	switch {
	case method:
		api.Name = ast.NewTypeName(owner.NS, bridgeName)
		api.AllowlistID = owner.ID
		if c.hostNames.OKToUse(owner.NS.Push(owner.ID), hostName) && bridgeName != hostName && !sig.wrapped {
			out.Attrs = append(out.Attrs, c.factory.RustNameAttr(hostName))
		}
	case static:
		api.Name = ast.NewTypeName(owner.NS, bridgeName)
		api.AllowlistID = owner.ID
		sig.deps.add(owner)
		if c.hostNames.OKToUse(owner.NS.Push(owner.ID), hostName) {
			api.Fragments = append(api.Fragments, GlobalFragment{Item: c.forwardingImpl(owner, hostName, bridgeName, out)})
		}
	default:
		api.AllowlistID = fn.NativeName()
		api.Use = Use{Kind: Used}
		if c.hostNames.OKToUse(ns, hostName) && hostName != bridgeName {
			api.Use = Use{Kind: UsedWithAlias, Alias: hostName}
		}
	}
	api.Deps = sig.deps.sorted()
	c.addAPI(api)
	return nil
}

// convertSignature rewrites parameter and return types. It reports false
// when the function mentions a type that will not be generated.
func (c *conversion) convertSignature(fn *ast.ForeignFn, params []ast.Param) (fnSignature, bool, error) {
	sig := fnSignature{deps: depSet{}, need: AdditionalNeed{Kind: ByValueWrapper}}
	for _, p := range params {
		t, byValue, err := c.convertFnType(p.Type, sig.deps)
		if err != nil {
			return fnSignature{}, false, err
		}
		sig.params = append(sig.params, ast.Param{Name: p.Name, Type: t})
		sig.wrapped = sig.wrapped || byValue
		sig.need.Params = append(sig.need.Params, NeedParam{Name: p.Name, Type: c.nativeTypeName(p.Type), ByValue: byValue})
	}
	if fn.Ret != nil {
		if _, unit := fn.Ret.(*ast.UnitType); !unit {
			t, byValue, err := c.convertFnType(fn.Ret, sig.deps)
			if err != nil {
				return fnSignature{}, false, err
			}
			sig.ret = t
			sig.wrapped = sig.wrapped || byValue
			sig.need.Return = &NeedParam{Type: c.nativeTypeName(fn.Ret), ByValue: byValue}
		}
	}
	for tn := range sig.deps {
		if c.avoidGeneratingType(tn) {
			c.logger.Debug("skipping function using unavailable type", "fn", fn.Name, "type", tn.CppName())
			return fnSignature{}, false, nil
		}
	}
	return sig, true, nil
}

// convertFnType rewrites one parameter or return type. Non-trivial values
// cannot cross the bridge directly, so they travel in an owning handle.
func (c *conversion) convertFnType(t ast.Type, deps depSet) (ast.Type, bool, error) {
	annotated, err := c.tc.convertType(t)
	if err != nil {
		return nil, false, err
	}
	deps.merge(annotated.encountered)
	if c.movedByValue(t) {
		return c.factory.UniquePtrOf(annotated.ty), true, nil
	}
	return annotated.ty, false, nil
}

func (c *conversion) movedByValue(t ast.Type) bool {
	pt, ok := t.(*ast.PathType)
	if !ok {
		return false
	}
	tn, ok := qualifiedName(pt)
	if !ok {
		return false
	}
	if resolved, ok := c.tc.resolvedName(tn); ok {
		tn = resolved
	}
	if known, ok := knownTypes[tn]; ok {
		return known == "CxxString"
	}
	return c.tc.isKnown(tn) && !c.checker.isPOD(tn)
}

// nativeTypeName spells t for the glue stage: qualified native names for
// declared types, the raw spelling otherwise.
func (c *conversion) nativeTypeName(t ast.Type) string {
	switch tt := t.(type) {
	case *ast.PathType:
		if tn, ok := qualifiedName(tt); ok {
			if resolved, ok := c.tc.resolvedName(tn); ok {
				tn = resolved
			}
			return tn.CppName()
		}
	case *ast.PtrType:
		if tt.Mut {
			return c.nativeTypeName(tt.Elem) + "*"
		}
		return "const " + c.nativeTypeName(tt.Elem) + "*"
	case *ast.RefType:
		if tt.Mut {
			return c.nativeTypeName(tt.Elem) + "&"
		}
		return "const " + c.nativeTypeName(tt.Elem) + "&"
	}
	return t.String()
}

// forwardingImpl makes a static method callable on the raw-binding type by
// forwarding to the bridge function.
func (c *conversion) forwardingImpl(owner ast.TypeName, hostName, bridgeName string, bridgeFn *ast.ForeignFn) *ast.Impl {
	params := make([]ast.Param, len(bridgeFn.Params))
	args := make([]string, len(bridgeFn.Params))
	for i, p := range bridgeFn.Params {
		params[i] = ast.Param{Name: p.Name, Type: c.qualifyBridgeType(p.Type)}
		args[i] = p.Name
	}
	var ret ast.Type
	if bridgeFn.Ret != nil {
		ret = c.qualifyBridgeType(bridgeFn.Ret)
	}
	rawPath := append([]string{"bindgen", rootSegment}, owner.NS.Segments()...)
	rawPath = append(rawPath, owner.ID)
	return c.factory.ForwardingImpl(rawPath, &ast.ImplFn{
		Pub:    true,
		Name:   hostName,
		Params: params,
		Ret:    ret,
		Body:   "cxxbridge::" + bridgeName + "(" + strings.Join(args, ", ") + ")",
	})
}

// qualifyBridgeType spells a bridge-scope type from the outermost level.
func (c *conversion) qualifyBridgeType(t ast.Type) ast.Type {
	switch tt := t.(type) {
	case *ast.PathType:
		args := make([]ast.Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = c.qualifyBridgeType(a)
		}
		if len(args) == 0 {
			args = nil
		}
		if len(tt.Segments) == 1 && !tt.Global {
			switch seg := tt.Segments[0]; {
			case seg == "UniquePtr" || seg == "CxxString":
				return &ast.PathType{Segments: []string{"cxx", seg}, Args: args}
			case c.isBridgeIdent(seg):
				return &ast.PathType{Segments: []string{"cxxbridge", seg}, Args: args}
			}
		}
		return &ast.PathType{Global: tt.Global, Segments: tt.Segments, Args: args}
	case *ast.PtrType:
		return &ast.PtrType{Mut: tt.Mut, Elem: c.qualifyBridgeType(tt.Elem)}
	case *ast.RefType:
		return &ast.RefType{Mut: tt.Mut, Elem: c.qualifyBridgeType(tt.Elem)}
	case *ast.ArrayType:
		return &ast.ArrayType{Elem: c.qualifyBridgeType(tt.Elem), Len: tt.Len}
	}
	return t
}

func (c *conversion) isBridgeIdent(name string) bool {
	for _, bridgeName := range c.tc.bridgeNames {
		if bridgeName == name {
			return true
		}
	}
	return false
}
