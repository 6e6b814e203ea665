package conversion

import (
	"testing"

	"github.com/rubiojr/bindconv/ast"
	"github.com/stretchr/testify/assert"
)

func TestBridgeNameTracker(t *testing.T) {
	tr := NewBridgeNameTracker()
	a := ast.NewNamespace("a")
	b := ast.NewNamespace("b")

	assert.Equal(t, "Inner", tr.UniqueName("", "Inner", a))
	assert.Equal(t, "b_Inner", tr.UniqueName("", "Inner", b))
	assert.Equal(t, "b_Inner_bridge1", tr.UniqueName("", "Inner", b))
	assert.Equal(t, "b_Inner_bridge2", tr.UniqueName("", "Inner", b))
	assert.Equal(t, "a_Inner", tr.UniqueName("", "Inner", a))
}

func TestBridgeNameTrackerOwningType(t *testing.T) {
	tr := NewBridgeNameTracker()
	root := ast.Namespace{}

	assert.Equal(t, "get", tr.UniqueName("Foo", "get", root))
	assert.Equal(t, "Bar_get", tr.UniqueName("Bar", "get", root))
	assert.Equal(t, "x_Baz_get", tr.UniqueName("Baz", "get", ast.NewNamespace("x")))
}

func TestBridgeNameTrackerNeverReissues(t *testing.T) {
	tr := NewBridgeNameTracker()
	root := ast.Namespace{}

	// A later verbatim claim of a generated name must not collide with it.
	assert.Equal(t, "Inner", tr.UniqueName("", "Inner", root))
	assert.Equal(t, "Inner_bridge1", tr.UniqueName("", "Inner", root))
	assert.Equal(t, "b_Inner", tr.UniqueName("", "Inner", ast.NewNamespace("b")))
	assert.Equal(t, "b_b_Inner", tr.UniqueName("", "b_Inner", ast.NewNamespace("b")))
}

func TestHostNameTracker(t *testing.T) {
	tr := NewHostNameTracker()
	a := ast.NewNamespace("a")
	b := ast.NewNamespace("b")

	assert.True(t, tr.OKToUse(a, "get"))
	assert.False(t, tr.OKToUse(a, "get"))
	assert.True(t, tr.OKToUse(b, "get"), "namespaces are independent")
	assert.True(t, tr.OKToUse(a.Push("Foo"), "get"), "type scopes are independent")
	assert.True(t, tr.OKToUse(ast.Namespace{}, "get"))
}
