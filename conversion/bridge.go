// Package conversion turns the raw bindings produced by the extraction tool
// into the items a safety-bridging code generator consumes.
//
// A conversion walks the raw declaration tree once, creating one API per
// discoverable declaration, then garbage collects every API not reachable
// from the accept-list and assembles four artifact groups: global items,
// the raw-binding hierarchy, the bridge-declaration scope and the public
// re-export hierarchy.
package conversion

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rubiojr/bindconv/ast"
	"github.com/rubiojr/bindconv/typedb"
)

// Results of a conversion.
type Results struct {
	Items []ast.Item
	Needs []AdditionalNeed
}

// BridgeConverter converts raw bindings for one compilation unit at a time.
type BridgeConverter struct {
	db     *typedb.TypeDatabase
	logger *slog.Logger
}

// Option configures a BridgeConverter.
type Option func(*BridgeConverter)

// WithLogger sets the logger used for diagnostics. The default discards
// everything.
func WithLogger(l *slog.Logger) Option {
	return func(bc *BridgeConverter) { bc.logger = l }
}

// NewBridgeConverter returns a converter consulting db.
func NewBridgeConverter(db *typedb.TypeDatabase, opts ...Option) *BridgeConverter {
	bc := &BridgeConverter{db: db}
	for _, opt := range opts {
		opt(bc)
	}
	if bc.logger == nil {
		bc.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return bc
}

// Convert transforms the outermost module of a raw declaration tree. It
// either returns every artifact or an error; there is no partial output.
func (bc *BridgeConverter) Convert(bindings *ast.Mod) (*Results, error) {
	items, err := findItemsInRoot(bindings)
	if err != nil {
		return nil, err
	}
	tc := newTypeConverter()
	indexTypedefs(items, ast.Namespace{}, tc)
	checker, err := identifyByValueSafeTypes(items, bc.db, tc)
	if err != nil {
		return nil, err
	}
	c := &conversion{
		db:            bc.db,
		logger:        bc.logger,
		factory:       ast.NewFactory(),
		outerAttrs:    bindings.Attrs,
		tc:            tc,
		checker:       checker,
		bridgeNames:   NewBridgeNameTracker(),
		hostNames:     NewHostNameTracker(),
		useStmtsByMod: make(map[ast.Namespace][]ast.Item),
		incomplete:    make(map[ast.TypeName]bool),
	}
	return c.convertItems(items)
}

// Classify reports the value-safety classification of every type in the
// tree without converting it.
func (bc *BridgeConverter) Classify(bindings *ast.Mod) ([]TypeClass, error) {
	items, err := findItemsInRoot(bindings)
	if err != nil {
		return nil, err
	}
	tc := newTypeConverter()
	indexTypedefs(items, ast.Namespace{}, tc)
	checker, err := identifyByValueSafeTypes(items, bc.db, tc)
	if err != nil {
		return nil, err
	}
	return checker.classes(), nil
}

// findItemsInRoot unwraps the single root module the extraction tool puts
// every namespace under.
func findItemsInRoot(bindings *ast.Mod) ([]ast.Item, error) {
	if bindings == nil || bindings.External || len(bindings.Items) == 0 {
		return nil, newError(NoContent, "")
	}
	var items []ast.Item
	for _, item := range bindings.Items {
		m, ok := item.(*ast.Mod)
		if !ok || m.Name != rootSegment {
			return nil, newError(UnexpectedOuterItem, "%s", describeItem(item))
		}
		items = append(items, m.Items...)
	}
	return items, nil
}

func indexTypedefs(items []ast.Item, ns ast.Namespace, tc *typeConverter) {
	for _, item := range items {
		switch it := item.(type) {
		case *ast.Mod:
			indexTypedefs(it.Items, ns.Push(it.Name), tc)
		case *ast.TypeAlias:
			tc.insertTypedef(ast.NewTypeName(ns, it.Name), it.Target)
		}
	}
}

func describeItem(item ast.Item) string {
	switch it := item.(type) {
	case *ast.Mod:
		return "mod " + it.Name
	case *ast.Struct:
		return "struct " + it.Name
	case *ast.Enum:
		return "enum " + it.Name
	case *ast.Const:
		return "const " + it.Name
	case *ast.TypeAlias:
		return "type " + it.Name
	case *ast.Use:
		return "use " + it.Path
	case *ast.Impl:
		return "impl " + it.Type.String()
	case *ast.ForeignMod:
		return "extern block"
	case *ast.UnknownItem:
		return it.Kind + " " + it.Name
	default:
		return fmt.Sprintf("%T", item)
	}
}

// conversion is the state of one Convert call. Everything mutable lives
// here and nowhere else.
type conversion struct {
	db         *typedb.TypeDatabase
	logger     *slog.Logger
	factory    *ast.Factory
	outerAttrs []string

	tc      *typeConverter
	checker *byValueChecker

	apis          []*API
	bridgeNames   *BridgeNameTracker
	hostNames     *HostNameTracker
	useStmtsByMod map[ast.Namespace][]ast.Item
	incomplete    map[ast.TypeName]bool
	foreignAnchor *ast.ForeignMod
}

func (c *conversion) addAPI(api *API) {
	c.apis = append(c.apis, api)
}

func (c *conversion) effectiveType(tn ast.TypeName) ast.TypeName {
	if eff, ok := c.db.EffectiveType(tn); ok {
		return eff
	}
	return tn
}

// accept reports whether an accept-list name selects an API, either
// directly or through its effective remap.
func (c *conversion) accept(tn ast.TypeName) bool {
	return c.db.IsOnAllowlist(tn) || c.db.IsOnAllowlist(c.effectiveType(tn))
}

func (c *conversion) isBlocked(tn ast.TypeName) bool {
	return c.db.IsOnBlocklist(tn) || c.db.IsOnBlocklist(c.effectiveType(tn))
}

// avoidGeneratingType is true for types no function may mention.
func (c *conversion) avoidGeneratingType(tn ast.TypeName) bool {
	return c.isBlocked(tn) || c.incomplete[tn] || c.checker.isForward(tn)
}

// registerTypes gives every generatable type its bridge identifier up front,
// so function signatures can name types declared later in the tree.
func (c *conversion) registerTypes(items []ast.Item, ns ast.Namespace) {
	for _, item := range items {
		var id string
		switch it := item.(type) {
		case *ast.Mod:
			if !it.External {
				c.registerTypes(it.Items, ns.Push(it.Name))
			}
			continue
		case *ast.Struct:
			id = it.Name
		case *ast.Enum:
			id = it.Name
		default:
			continue
		}
		tn := ast.NewTypeName(ns, id)
		if isKnownType(tn) || c.isBlocked(tn) || c.tc.isKnown(tn) {
			continue
		}
		c.hostNames.OKToUse(ns, id)
		c.tc.push(tn, c.bridgeNames.UniqueName("", id, ns))
	}
}

// convertModItems interprets the raw bindings of one namespace.
func (c *conversion) convertModItems(items []ast.Item, ns ast.Namespace) error {
	mc := newForeignModConverter(ns)
	var uses []ast.Item
	for _, item := range items {
		switch it := item.(type) {
		case *ast.ForeignMod:
			if c.foreignAnchor == nil {
				anchor := *it
				anchor.Items = nil
				c.foreignAnchor = &anchor
			}
			if err := mc.convertForeignModItems(it.Items); err != nil {
				return err
			}
		case *ast.Struct:
			tn := ast.NewTypeName(ns, it.Name)
			if isKnownType(tn) {
				continue
			}
			kind := NonPOD
			switch {
			case spotForwardDeclaration(it.Fields):
				c.incomplete[tn] = true
				kind = ForwardDeclaration
			case c.checker.isPOD(tn):
				kind = POD
			}
			var raw *ast.Struct
			deps := depSet{}
			if kind == POD {
				fieldDeps, err := c.structFieldTypes(it)
				if err != nil {
					return err
				}
				deps = fieldDeps
				raw = it
			} else {
				raw = makeNonPOD(it)
			}
			c.generateType(tn, kind, deps, raw)
		case *ast.Enum:
			c.generateType(ast.NewTypeName(ns, it.Name), POD, depSet{}, it)
		case *ast.Impl:
			mc.convertImplItems(it)
		case *ast.Mod:
			if !it.External {
				if err := c.convertModItems(it.Items, ns.Push(it.Name)); err != nil {
					return err
				}
			}
		case *ast.Use:
			uses = append(uses, it)
		case *ast.Const:
			// Constants land at the outermost level whatever their
			// namespace; the API keeps the real one for accept-list checks.
			c.addAPI(&API{
				Name:       ast.NewTypeName(ns, it.Name),
				BridgeName: it.Name,
				Fragments:  []Fragment{GlobalFragment{Item: it}},
			})
		case *ast.TypeAlias:
			tn := ast.NewTypeName(ns, it.Name)
			c.tc.insertTypedef(tn, it.Target)
			api := &API{
				Name:       tn,
				BridgeName: it.Name,
				Fragments:  []Fragment{RawFragment{Item: it}},
			}
			// A target that cannot be rewritten only matters once a
			// retained signature uses the alias.
			if target, err := c.tc.convertType(it.Target); err == nil {
				api.Deps = target.encountered.sorted()
			}
			c.addAPI(api)
		default:
			return newError(UnexpectedItemInMod, "%s in namespace %q", describeItem(item), ns.String())
		}
	}
	if err := mc.finished(c); err != nil {
		return err
	}

	// Imports are held back and only spliced into the output if this
	// namespace still has items after garbage collection. A namespace split
	// over several blocks gets the bridge imports once.
	if _, seen := c.useStmtsByMod[ns]; !seen {
		supers := make([]string, ns.Depth()+2)
		for i := range supers {
			supers[i] = "super"
		}
		uses = append(uses, c.factory.QuietUse("self::"+strings.Join(supers, "::")+"::cxxbridge"))
		for _, thing := range []string{"UniquePtr", "CxxString"} {
			uses = append(uses, c.factory.QuietUse("cxx::"+thing))
		}
	}
	c.useStmtsByMod[ns] = append(c.useStmtsByMod[ns], uses...)
	return nil
}

func (c *conversion) structFieldTypes(s *ast.Struct) (depSet, error) {
	deps := depSet{}
	for _, f := range s.Fields {
		annotated, err := c.tc.convertType(f.Type)
		if err != nil {
			return nil, err
		}
		deps.merge(annotated.encountered)
	}
	return deps, nil
}

// opaqueMarkerField is the only field left in a type whose native layout
// cannot be reproduced. A zero-length array of raw pointers makes the type
// impossible to construct and neither Send nor Sync.
const opaqueMarkerField = "_opaque_handle_marker"

// makeNonPOD returns a copy of s with its layout replaced by an opaque
// marker plus one phantom field per type parameter, which keeps the
// parameters in use for variance without implying ownership.
func makeNonPOD(s *ast.Struct) *ast.Struct {
	out := &ast.Struct{
		Attrs:    []string{"repr(C, packed)"},
		Name:     s.Name,
		Generics: s.Generics,
		Fields: []ast.Field{{
			Name: opaqueMarkerField,
			Type: ast.MustParseType("[*const u8; 0]"),
		}},
	}
	for i, g := range s.Generics {
		out.Fields = append(out.Fields, ast.Field{
			Name: fmt.Sprintf("_phantom_%d", i),
			Type: &ast.PathType{
				Global:   true,
				Segments: []string{"std", "marker", "PhantomData"},
				Args: []ast.Type{&ast.PathType{
					Global:   true,
					Segments: []string{"std", "cell", "UnsafeCell"},
					Args:     []ast.Type{ast.Path(g)},
				}},
			},
		})
	}
	return out
}

// generateType records the API for a struct or enum: the raw binding
// itself, the bridge's declaration of the type, and the identity assertion
// tying the two to the native name.
func (c *conversion) generateType(tn ast.TypeName, kind TypeKind, deps depSet, raw ast.Item) {
	effective := c.effectiveType(tn)
	if c.db.IsOnBlocklist(effective) || c.db.IsOnBlocklist(tn) {
		return
	}
	bridgeName := c.tc.bridgeName(tn)

	var attrs []string
	if effective.HasNamespace() {
		attrs = append(attrs, c.factory.NamespaceAttr(effective.NS))
	}
	if bridgeName != effective.ID {
		attrs = append(attrs, c.factory.CxxNameAttr(effective.ID))
	}
	rawPath := append([]string{"bindgen", rootSegment}, tn.NS.Segments()...)
	rawPath = append(rawPath, tn.ID)
	foreign := &ast.ForeignType{
		Attrs:  attrs,
		Name:   bridgeName,
		Target: ast.Path(append([]string{"super"}, rawPath...)...),
	}

	tag := "Opaque"
	if kind == POD {
		tag = "Trivial"
	}
	fragments := []Fragment{
		GlobalFragment{Item: c.factory.IdentityAssertion(rawPath, effective.CppName(), tag)},
		ForeignFragment{Item: foreign},
	}
	// A forward declaration has no safe bridge representation at all.
	if kind != ForwardDeclaration {
		fragments = append(fragments, BridgeFragment{Item: c.factory.UniquePtrImpl(bridgeName)})
	}
	fragments = append(fragments, RawFragment{Item: raw})

	use := Use{Kind: Used}
	if bridgeName != tn.ID {
		use = Use{Kind: UsedWithAlias, Alias: tn.ID}
	}
	c.addAPI(&API{
		Name:       tn,
		BridgeName: bridgeName,
		Use:        use,
		Deps:       deps.sorted(),
		Fragments:  fragments,
	})
}
