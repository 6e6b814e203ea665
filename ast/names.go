package ast

import "strings"

// nsSep separates namespace segments in qualified names.
const nsSep = "::"

// Namespace is a native namespace path such as a::b. The zero value is the
// outermost (global) namespace. Namespaces are comparable and usable as map
// keys.
type Namespace struct {
	path string
}

// NewNamespace builds a namespace from its segments.
func NewNamespace(segments ...string) Namespace {
	return Namespace{path: strings.Join(segments, nsSep)}
}

// Push returns a new namespace extended by one segment.
func (ns Namespace) Push(segment string) Namespace {
	if ns.path == "" {
		return Namespace{path: segment}
	}
	return Namespace{path: ns.path + nsSep + segment}
}

// Segments returns the namespace path segments, outermost first.
func (ns Namespace) Segments() []string {
	if ns.path == "" {
		return nil
	}
	return strings.Split(ns.path, nsSep)
}

// Depth is the number of segments.
func (ns Namespace) Depth() int {
	if ns.path == "" {
		return 0
	}
	return strings.Count(ns.path, nsSep) + 1
}

// IsRoot reports whether ns is the outermost namespace.
func (ns Namespace) IsRoot() bool { return ns.path == "" }

func (ns Namespace) String() string { return ns.path }

// TypeName is a qualified name: a namespace plus a simple identifier. It is
// the identity of every lookup and graph edge in a conversion.
type TypeName struct {
	NS Namespace
	ID string
}

// NewTypeName returns the qualified name of id inside ns.
func NewTypeName(ns Namespace, id string) TypeName {
	return TypeName{NS: ns, ID: id}
}

// ParseTypeName splits a native qualified name such as "a::b::X".
func ParseTypeName(s string) TypeName {
	s = strings.TrimPrefix(s, nsSep)
	i := strings.LastIndex(s, nsSep)
	if i < 0 {
		return TypeName{ID: s}
	}
	return TypeName{NS: Namespace{path: s[:i]}, ID: s[i+len(nsSep):]}
}

// TypeNameFromSegments builds a qualified name whose last segment is the
// identifier.
func TypeNameFromSegments(segments []string) TypeName {
	if len(segments) == 0 {
		return TypeName{}
	}
	return TypeName{NS: NewNamespace(segments[:len(segments)-1]...), ID: segments[len(segments)-1]}
}

// HasNamespace reports whether the name lives outside the global namespace.
func (tn TypeName) HasNamespace() bool { return !tn.NS.IsRoot() }

// CppName renders the native spelling, e.g. a::b::X.
func (tn TypeName) CppName() string {
	if tn.NS.IsRoot() {
		return tn.ID
	}
	return tn.NS.path + nsSep + tn.ID
}

func (tn TypeName) String() string { return tn.CppName() }

// Less orders qualified names by namespace then identifier.
func (tn TypeName) Less(other TypeName) bool {
	if tn.NS.path != other.NS.path {
		return tn.NS.path < other.NS.path
	}
	return tn.ID < other.ID
}
