package scanner

import (
	"sort"
	"strings"
)

// DependencyNode links a defined symbol to the symbols that co-occur with
// it in its defining file. Edges are symmetric: A appearing in
// B.Dependencies implies B appears in A.Dependents.
type DependencyNode struct {
	Symbol       string   `json:"symbol"`
	FilePath     string   `json:"file_path"`
	Dependencies []string `json:"dependencies"`
	Dependents   []string `json:"dependents"`
}

// BuildGraph derives a dependency graph from a symbol index. The graph is
// rebuilt on demand and never persisted.
//
// A node exists for every symbol with at least one definition, anchored at
// the file of its first definition. Edges come from textual co-occurrence,
// not reference resolution: for each node, the import/call/reference usages
// located in its defining file are examined, and every other defined symbol
// whose name appears as a substring of a usage's context line becomes a
// dependency. A name that happens to be a substring of unrelated text on
// the same line produces a false edge. Nodes with zero edges stay in the
// output map.
func BuildGraph(index SymbolIndex) map[string]*DependencyNode {
	graph := make(map[string]*DependencyNode)

	for symbol, usages := range index {
		for _, u := range usages {
			if u.Kind == KindDefinition {
				graph[symbol] = &DependencyNode{
					Symbol:       symbol,
					FilePath:     u.FilePath,
					Dependencies: []string{},
					Dependents:   []string{},
				}
				break
			}
		}
	}

	// Sorted iteration keeps edge list order deterministic across runs.
	symbols := make([]string, 0, len(graph))
	for s := range graph {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		node := graph[symbol]
		for _, u := range index[symbol] {
			if u.FilePath != node.FilePath {
				continue
			}
			if u.Kind != KindImport && u.Kind != KindCall && u.Kind != KindReference {
				continue
			}
			for _, other := range symbols {
				if other == symbol || !strings.Contains(u.Context, other) {
					continue
				}
				node.Dependencies = appendUnique(node.Dependencies, other)
				graph[other].Dependents = appendUnique(graph[other].Dependents, symbol)
			}
		}
	}

	return graph
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
