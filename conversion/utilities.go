package conversion

import (
	"github.com/rubiojr/bindconv/ast"
	"github.com/rubiojr/bindconv/typedb"
)

// addUtilities adds the helper functions every bridge gets unless the
// configuration excludes them. make_string builds a native string from a
// host string slice; its body comes from the glue stage.
func (c *conversion) addUtilities() {
	root := ast.Namespace{}
	bridgeName := c.bridgeNames.UniqueName("", typedb.MakeStringName, root)
	c.hostNames.OKToUse(root, typedb.MakeStringName)

	fn := &ast.ForeignFn{
		Name:   bridgeName,
		Params: []ast.Param{{Name: "str_", Type: &ast.RefType{Elem: ast.Path("str")}}},
		Ret:    c.factory.UniquePtrOf(ast.Path("CxxString")),
	}
	use := Use{Kind: Used}
	if bridgeName != typedb.MakeStringName {
		fn.Attrs = append(fn.Attrs, c.factory.CxxNameAttr(typedb.MakeStringName))
		use = Use{Kind: UsedWithAlias, Alias: typedb.MakeStringName}
	}
	c.addAPI(&API{
		Name:        ast.NewTypeName(root, typedb.MakeStringName),
		BridgeName:  bridgeName,
		Use:         use,
		AllowlistID: typedb.MakeStringName,
		Fragments: []Fragment{
			ForeignFragment{Item: fn},
			NeedFragment{Need: AdditionalNeed{Kind: MakeStringConstructor, Wrapper: typedb.MakeStringName}},
		},
	})
}
