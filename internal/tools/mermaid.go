package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/code-scout-mcp/internal/scanner"
)

const defaultMaxGraphNodes = 50

func (s *Server) handleVisualizeDependencyGraph(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	sess, err := s.analyzeTarget(ctx, args)
	if err != nil {
		return errResult(err.Error()), nil
	}
	defer sess.release()

	graph := scanner.BuildGraph(sess.scanner.Index())
	for _, node := range graph {
		node.FilePath = rewritePath(sess.res, node.FilePath)
	}

	md := renderMermaid(graph, getIntArg(args, "max_nodes", defaultMaxGraphNodes), getBoolArg(args, "show_files", false))
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: md}},
	}, nil
}

// renderMermaid turns a dependency graph into a Mermaid diagram followed by
// a legend and summary statistics. Isolated symbols are hidden; when more
// than maxNodes connected symbols remain, the most connected ones win.
// Output order is alphabetical by symbol, so equal graphs render equally.
func renderMermaid(graph map[string]*scanner.DependencyNode, maxNodes int, showFiles bool) string {
	if len(graph) == 0 {
		return "No dependency graph data found."
	}

	var connected []*scanner.DependencyNode
	for _, node := range graph {
		if len(node.Dependencies) > 0 || len(node.Dependents) > 0 {
			connected = append(connected, node)
		}
	}
	sortBySymbol(connected)
	if maxNodes > 0 && len(connected) > maxNodes {
		sort.SliceStable(connected, func(i, j int) bool {
			return degree(connected[i]) > degree(connected[j])
		})
		connected = connected[:maxNodes]
		sortBySymbol(connected)
	}

	var b strings.Builder
	b.WriteString("```mermaid\ngraph TD\n")

	ids := make(map[string]string, len(connected))
	for i, node := range connected {
		ids[node.Symbol] = fmt.Sprintf("N%d", i)
	}

	for _, node := range connected {
		id := ids[node.Symbol]
		label := node.Symbol
		if showFiles {
			label = fmt.Sprintf("%s<br/><small>%s</small>", node.Symbol, baseName(node.FilePath))
		}
		deps, dependents := len(node.Dependencies), len(node.Dependents)
		switch {
		case deps == 0 && dependents > 0:
			// Source: nothing it needs, others need it.
			fmt.Fprintf(&b, "    %s[%q]\n    style %s fill:#90EE90\n", id, label, id)
		case deps > 0 && dependents == 0:
			// Leaf: consumes symbols, nothing consumes it.
			fmt.Fprintf(&b, "    %s(%q)\n    style %s fill:#FFB6C1\n", id, label, id)
		case deps > 2 || dependents > 2:
			// Hub: highly connected.
			fmt.Fprintf(&b, "    %s{%q}\n    style %s fill:#FFD700\n", id, label, id)
		default:
			fmt.Fprintf(&b, "    %s[%q]\n", id, label)
		}
	}

	edges := 0
	for _, node := range connected {
		for _, dep := range node.Dependencies {
			target, ok := ids[dep]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "    %s --> %s\n", ids[node.Symbol], target)
			edges++
		}
	}

	b.WriteString("```\n\n")
	b.WriteString("**Legend:**\n")
	b.WriteString("- Green rectangles: source nodes (no dependencies, others depend on them)\n")
	b.WriteString("- Pink rounded: leaf nodes (have dependencies, nothing depends on them)\n")
	b.WriteString("- Yellow diamonds: hub nodes (3+ connections on one side)\n")
	b.WriteString("- White rectangles: regular nodes\n\n")
	b.WriteString("**Statistics:**\n")
	fmt.Fprintf(&b, "- Symbols shown: %d\n", len(connected))
	fmt.Fprintf(&b, "- Dependency edges: %d\n", edges)
	if hidden := len(graph) - len(connected); hidden > 0 {
		fmt.Fprintf(&b, "- Isolated symbols hidden: %d\n", hidden)
	}
	return b.String()
}

func sortBySymbol(nodes []*scanner.DependencyNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Symbol < nodes[j].Symbol
	})
}

func degree(n *scanner.DependencyNode) int {
	return len(n.Dependencies) + len(n.Dependents)
}

// baseName trims a wire-format path (slash separated, possibly a blob URL)
// down to the file name for node labels.
func baseName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
