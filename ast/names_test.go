package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespace(t *testing.T) {
	var root Namespace
	assert.True(t, root.IsRoot())
	assert.Equal(t, 0, root.Depth())
	assert.Nil(t, root.Segments())

	ns := root.Push("a").Push("b")
	assert.False(t, ns.IsRoot())
	assert.Equal(t, 2, ns.Depth())
	assert.Equal(t, []string{"a", "b"}, ns.Segments())
	assert.Equal(t, "a::b", ns.String())
	assert.Equal(t, NewNamespace("a", "b"), ns, "namespaces compare by value")
	assert.True(t, root.IsRoot(), "push does not modify the receiver")
}

func TestParseTypeName(t *testing.T) {
	tests := []struct {
		in   string
		ns   string
		id   string
		repr string
	}{
		{"X", "", "X", "X"},
		{"a::X", "a", "X", "a::X"},
		{"a::b::X", "a::b", "X", "a::b::X"},
		{"::std::string", "std", "string", "std::string"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tn := ParseTypeName(tt.in)
			assert.Equal(t, tt.ns, tn.NS.String())
			assert.Equal(t, tt.id, tn.ID)
			assert.Equal(t, tt.repr, tn.CppName())
			assert.Equal(t, tt.ns != "", tn.HasNamespace())
		})
	}
}

func TestTypeNameFromSegments(t *testing.T) {
	assert.Equal(t, ParseTypeName("a::b::X"), TypeNameFromSegments([]string{"a", "b", "X"}))
	assert.Equal(t, ParseTypeName("X"), TypeNameFromSegments([]string{"X"}))
	assert.Equal(t, TypeName{}, TypeNameFromSegments(nil))
}

func TestTypeNameLess(t *testing.T) {
	assert.True(t, ParseTypeName("Z").Less(ParseTypeName("a::A")), "outer namespace first")
	assert.True(t, ParseTypeName("a::A").Less(ParseTypeName("a::B")))
	assert.False(t, ParseTypeName("a::B").Less(ParseTypeName("a::B")))
	assert.True(t, ParseTypeName("a::Z").Less(ParseTypeName("b::A")))
}

func TestTypeNameAsMapKey(t *testing.T) {
	m := map[TypeName]int{}
	m[ParseTypeName("a::X")] = 1
	m[NewTypeName(NewNamespace("a"), "X")]++
	assert.Equal(t, 2, m[TypeNameFromSegments([]string{"a", "X"})])
}
