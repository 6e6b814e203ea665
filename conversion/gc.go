package conversion

import (
	"log/slog"

	"github.com/rubiojr/bindconv/ast"
)

// apiGraph is the immutable dependency graph built from every discovered
// API. A second declaration of the same qualified name is folded into the
// first node.
type apiGraph struct {
	order  []ast.TypeName
	byName map[ast.TypeName]*API
}

func buildGraph(apis []*API) *apiGraph {
	g := &apiGraph{byName: make(map[ast.TypeName]*API, len(apis))}
	for _, api := range apis {
		existing, ok := g.byName[api.Name]
		if !ok {
			node := *api
			node.Fragments = append([]Fragment(nil), api.Fragments...)
			g.byName[api.Name] = &node
			g.order = append(g.order, api.Name)
			continue
		}
		deps := depSet{}
		deps.add(existing.Deps...)
		deps.add(api.Deps...)
		existing.Deps = deps.sorted()
		existing.Fragments = append(existing.Fragments, api.Fragments...)
	}
	return g
}

// roots returns the names of every API whose accept-list name is accepted,
// sorted so discovery order does not depend on map iteration.
func (g *apiGraph) roots(accept func(ast.TypeName) bool, logger *slog.Logger) []ast.TypeName {
	var roots []ast.TypeName
	for _, name := range g.order {
		api := g.byName[name]
		candidate := api.AllowlistName()
		logger.Debug("considering", "api", name.CppName(), "allowlist_name", candidate.CppName())
		if accept(candidate) {
			roots = append(roots, name)
		}
	}
	sortTypeNames(roots)
	return roots
}

// reachable runs the worklist from roots and returns the transitive closure.
// Names without an API (primitives, blocked types) are dropped.
func (g *apiGraph) reachable(roots []ast.TypeName) map[ast.TypeName]bool {
	todo := append([]ast.TypeName(nil), roots...)
	done := make(map[ast.TypeName]bool)
	retained := make(map[ast.TypeName]bool)
	for len(todo) > 0 {
		name := todo[0]
		todo = todo[1:]
		if done[name] {
			continue
		}
		done[name] = true
		api, ok := g.byName[name]
		if !ok {
			continue
		}
		retained[name] = true
		todo = append(todo, api.Deps...)
	}
	return retained
}

// filter returns the retained APIs in qualified-name order.
func (g *apiGraph) filter(retained map[ast.TypeName]bool) []*API {
	names := make([]ast.TypeName, 0, len(retained))
	for name := range retained {
		names = append(names, name)
	}
	sortTypeNames(names)
	out := make([]*API, len(names))
	for i, name := range names {
		out[i] = g.byName[name]
	}
	return out
}

// collectGarbage keeps only the APIs reachable from the accept-list. Types
// simplified to opaque handles drop their field edges, and blocked types
// never have an API, so anything only they referenced disappears here.
func collectGarbage(apis []*API, accept func(ast.TypeName) bool, logger *slog.Logger) []*API {
	g := buildGraph(apis)
	return g.filter(g.reachable(g.roots(accept, logger)))
}
