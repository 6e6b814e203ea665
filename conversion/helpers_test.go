package conversion

import (
	"testing"

	"github.com/rubiojr/bindconv/ast"
	"github.com/rubiojr/bindconv/typedb"
	"github.com/stretchr/testify/require"
)

func parseTree(t *testing.T, src string) *ast.Mod {
	t.Helper()
	mod, err := ast.ParseSource([]byte(src), "test.yaml")
	require.NoError(t, err)
	return mod
}

func parseDB(t *testing.T, src string) *typedb.TypeDatabase {
	t.Helper()
	db, err := typedb.Parse([]byte(src))
	require.NoError(t, err)
	return db
}

func convertSource(t *testing.T, tree, config string) (*Results, error) {
	t.Helper()
	return NewBridgeConverter(parseDB(t, config)).Convert(parseTree(t, tree))
}

func mustConvert(t *testing.T, tree, config string) *Results {
	t.Helper()
	res, err := convertSource(t, tree, config)
	require.NoError(t, err)
	return res
}

// bridgeBlock returns the foreign block inside the bridge module.
func bridgeBlock(t *testing.T, res *Results) (*ast.Mod, *ast.ForeignMod) {
	t.Helper()
	for _, item := range res.Items {
		m, ok := item.(*ast.Mod)
		if !ok || m.Name != bridgeModName {
			continue
		}
		for _, child := range m.Items {
			if fm, ok := child.(*ast.ForeignMod); ok {
				return m, fm
			}
		}
	}
	t.Fatal("no bridge module in output")
	return nil, nil
}

// bridgeIdents lists the identifiers declared in the bridge's foreign block.
func bridgeIdents(t *testing.T, res *Results) (types, fns []string) {
	t.Helper()
	_, fm := bridgeBlock(t, res)
	for _, fi := range fm.Items {
		switch it := fi.(type) {
		case *ast.ForeignType:
			types = append(types, it.Name)
		case *ast.ForeignFn:
			fns = append(fns, it.Name)
		}
	}
	return types, fns
}

func findForeignFn(t *testing.T, res *Results, name string) *ast.ForeignFn {
	t.Helper()
	_, fm := bridgeBlock(t, res)
	for _, fi := range fm.Items {
		if fn, ok := fi.(*ast.ForeignFn); ok && fn.Name == name {
			return fn
		}
	}
	t.Fatalf("no bridge function %s", name)
	return nil
}

const noUtilities = "exclude_utilities: true\n"
