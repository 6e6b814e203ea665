package conversion

import (
	"github.com/rubiojr/bindconv/ast"
)

// ExtraGlueHeader is included into the bridge whenever the conversion asks
// the glue stage for extra native code.
const ExtraGlueHeader = "bindconvgen.h"

const (
	bridgeModName = "cxxbridge"
	rawModName    = "bindgen"
)

func (c *conversion) convertItems(items []ast.Item) (*Results, error) {
	root := ast.Namespace{}
	c.registerTypes(items, root)
	if !c.db.ExcludeUtilities() {
		c.addUtilities()
	}
	if err := c.convertModItems(items, root); err != nil {
		return nil, err
	}
	c.logger.Debug("discovered apis", "count", len(c.apis))
	retained := collectGarbage(c.apis, c.accept, c.logger)
	c.logger.Debug("retained apis", "count", len(retained))
	return c.emit(retained), nil
}

// emit assembles the four artifact groups from the retained APIs.
func (c *conversion) emit(apis []*API) *Results {
	var (
		globals      []ast.Item
		bridgeItems  []ast.Item
		foreignItems []ast.ForeignItem
		needs        []AdditionalNeed
	)
	for _, api := range apis {
		for _, frag := range api.Fragments {
			switch f := frag.(type) {
			case GlobalFragment:
				globals = append(globals, f.Item)
			case BridgeFragment:
				bridgeItems = append(bridgeItems, f.Item)
			case ForeignFragment:
				foreignItems = append(foreignItems, f.Item)
			case NeedFragment:
				needs = append(needs, f.Need)
			}
		}
	}

	tree := newNamespaceEntries(apis)
	out := &Results{Needs: needs}
	out.Items = append(out.Items, globals...)
	if raw := c.rawBindings(tree, ast.Namespace{}); len(raw) > 0 {
		out.Items = append(out.Items, &ast.Mod{
			Attrs: c.outerAttrs,
			Name:  rawModName,
			Items: []ast.Item{c.factory.PubMod(rootSegment, raw)},
		})
	}
	out.Items = append(out.Items, c.bridgeMod(bridgeItems, foreignItems, len(needs) > 0))
	out.Items = append(out.Items, c.reexports(tree)...)
	return out
}

// rawBindings rebuilds the raw-binding hierarchy of one namespace. Child
// namespaces with nothing left are dropped, and the buffered imports of a
// namespace only appear if it has content.
func (c *conversion) rawBindings(n *namespaceEntries, ns ast.Namespace) []ast.Item {
	var items []ast.Item
	for _, api := range n.entries {
		for _, frag := range api.Fragments {
			if f, ok := frag.(RawFragment); ok {
				items = append(items, f.Item)
			}
		}
	}
	for _, name := range n.childNames() {
		if child := c.rawBindings(n.children[name], ns.Push(name)); len(child) > 0 {
			items = append(items, c.factory.PubMod(name, child))
		}
	}
	if len(items) == 0 {
		return nil
	}
	return append(append([]ast.Item(nil), c.useStmtsByMod[ns]...), items...)
}

func (c *conversion) bridgeMod(bridgeItems []ast.Item, foreignItems []ast.ForeignItem, needsGlue bool) *ast.Mod {
	block := &ast.ForeignMod{Unsafe: true}
	if c.foreignAnchor != nil {
		block.Attrs = c.foreignAnchor.Attrs
	}
	block.ABI = "C++"
	block.Items = foreignItems
	for _, inc := range c.db.Includes() {
		block.Items = append(block.Items, c.factory.Include(inc))
	}
	if needsGlue {
		block.Items = append(block.Items, c.factory.Include(ExtraGlueHeader))
	}
	items := append(append([]ast.Item(nil), bridgeItems...), block)
	return &ast.Mod{Attrs: []string{"cxx::bridge"}, Pub: true, Name: bridgeModName, Items: items}
}

// reexports builds the public hierarchy end users import from. Namespaces
// without anything visible below them are left out entirely.
func (c *conversion) reexports(n *namespaceEntries) []ast.Item {
	var items []ast.Item
	for _, api := range n.entries {
		switch api.Use.Kind {
		case Used:
			items = append(items, c.factory.PubUse(bridgeModName+"::"+api.BridgeName, ""))
		case UsedWithAlias:
			items = append(items, c.factory.PubUse(bridgeModName+"::"+api.BridgeName, api.Use.Alias))
		}
	}
	for _, name := range n.childNames() {
		child := n.children[name]
		if !child.hasVisible() {
			continue
		}
		body := append([]ast.Item{&ast.Use{Path: "super::" + bridgeModName}}, c.reexports(child)...)
		items = append(items, c.factory.PubMod(name, body))
	}
	return items
}
