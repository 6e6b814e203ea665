package conversion

import (
	"sort"
)

// namespaceEntries is the hierarchical view of a flat API list: the APIs of
// one namespace plus its child namespaces by segment.
type namespaceEntries struct {
	entries  []*API
	children map[string]*namespaceEntries
}

func newNamespaceEntries(apis []*API) *namespaceEntries {
	root := &namespaceEntries{children: make(map[string]*namespaceEntries)}
	for _, api := range apis {
		node := root
		for _, seg := range api.Name.NS.Segments() {
			child, ok := node.children[seg]
			if !ok {
				child = &namespaceEntries{children: make(map[string]*namespaceEntries)}
				node.children[seg] = child
			}
			node = child
		}
		node.entries = append(node.entries, api)
	}
	root.sortEntries()
	return root
}

func (n *namespaceEntries) sortEntries() {
	sort.SliceStable(n.entries, func(i, j int) bool { return n.entries[i].Name.ID < n.entries[j].Name.ID })
	for _, child := range n.children {
		child.sortEntries()
	}
}

// childNames returns the child segments in sorted order.
func (n *namespaceEntries) childNames() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// hasVisible reports whether this namespace or any descendant re-exports
// something.
func (n *namespaceEntries) hasVisible() bool {
	for _, api := range n.entries {
		if api.Use.Kind != Unused {
			return true
		}
	}
	for _, child := range n.children {
		if child.hasVisible() {
			return true
		}
	}
	return false
}
