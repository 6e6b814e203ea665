package conversion

import (
	"fmt"
	"strings"

	"github.com/rubiojr/bindconv/ast"
)

// BridgeNameTracker hands out identifiers for the bridge-declaration scope,
// which has no namespaces: every name it returns is globally unique for the
// lifetime of one conversion.
type BridgeNameTracker struct {
	issued map[string]bool
	next   map[string]int
}

// NewBridgeNameTracker returns an empty tracker.
func NewBridgeNameTracker() *BridgeNameTracker {
	return &BridgeNameTracker{issued: make(map[string]bool), next: make(map[string]int)}
}

// UniqueName returns a bridge identifier for foundName. The first claim of a
// name gets it verbatim; later claims are qualified with the namespace and
// owning type (if any), then numbered if that is taken too.
func (t *BridgeNameTracker) UniqueName(typeName, foundName string, ns ast.Namespace) string {
	if !t.issued[foundName] {
		t.issued[foundName] = true
		return foundName
	}
	parts := ns.Segments()
	if typeName != "" {
		parts = append(parts, typeName)
	}
	parts = append(parts, foundName)
	prefix := strings.Join(parts, "_")
	if !t.issued[prefix] {
		t.issued[prefix] = true
		return prefix
	}
	for {
		t.next[prefix]++
		candidate := fmt.Sprintf("%s_bridge%d", prefix, t.next[prefix])
		if !t.issued[candidate] {
			t.issued[candidate] = true
			return candidate
		}
	}
}

// HostNameTracker checks identifiers in the raw per-namespace bindings,
// which only need to be unique within their own namespace.
type HostNameTracker struct {
	used map[ast.Namespace]map[string]bool
}

// NewHostNameTracker returns an empty tracker.
func NewHostNameTracker() *HostNameTracker {
	return &HostNameTracker{used: make(map[ast.Namespace]map[string]bool)}
}

// OKToUse claims name in ns. It reports false if ns already has it.
func (t *HostNameTracker) OKToUse(ns ast.Namespace, name string) bool {
	names, ok := t.used[ns]
	if !ok {
		names = make(map[string]bool)
		t.used[ns] = names
	}
	if names[name] {
		return false
	}
	names[name] = true
	return true
}
