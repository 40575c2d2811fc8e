package scanner

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/code-scout-mcp/internal/lang"
	"github.com/DeusData/code-scout-mcp/internal/parser"
)

// importedNames extracts the symbol names an import statement introduces.
// For from-style imports the imported names are recorded, not the module;
// for plain imports the module name itself is the symbol.
func importedNames(node *tree_sitter.Node, source []byte, language lang.Language) []string {
	switch language {
	case lang.Python:
		return pythonImportNames(node, source)
	case lang.Go:
		return goImportNames(node, source)
	default:
		return genericImportNames(node, source, language)
	}
}

// pythonImportNames handles both import forms:
//
//	import foo.bar            -> "foo.bar"
//	import foo as f           -> "foo"
//	from pkg import a, b as c -> "a", "b"
func pythonImportNames(node *tree_sitter.Node, source []byte) []string {
	var names []string

	moduleNode := node.ChildByFieldName("module_name")

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		// Skip the "from X" module component of import_from_statement
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() && child.EndByte() == moduleNode.EndByte() {
			continue
		}

		switch child.Kind() {
		case "dotted_name":
			names = append(names, parser.NodeText(child, source))
		case "aliased_import":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				names = append(names, parser.NodeText(nameNode, source))
			}
		}
	}
	return names
}

// goImportNames records each import spec's local package name: alias when
// present, last path segment otherwise.
func goImportNames(node *tree_sitter.Node, source []byte) []string {
	var names []string
	parser.Walk(node, func(child *tree_sitter.Node) bool {
		if child.Kind() != "import_spec" {
			return true
		}
		pathNode := child.ChildByFieldName("path")
		if pathNode == nil {
			return false
		}
		name := lastPathSegment(strings.Trim(parser.NodeText(pathNode, source), `"`))
		if aliasNode := child.ChildByFieldName("name"); aliasNode != nil {
			alias := parser.NodeText(aliasNode, source)
			if alias != "" && alias != "." && alias != "_" {
				name = alias
			}
		}
		if name != "" {
			names = append(names, name)
		}
		return false
	})
	return names
}

// genericImportNames collects identifier leaves inside an import subtree.
// For dotted-module-path languages only the trailing segment is the
// imported name; for specifier-list languages (js/ts) each identifier is.
func genericImportNames(node *tree_sitter.Node, source []byte, language lang.Language) []string {
	var leaves []string
	seen := make(map[string]bool)

	parser.Walk(node, func(child *tree_sitter.Node) bool {
		switch child.Kind() {
		case "identifier", "simple_identifier", "name":
			text := parser.NodeText(child, source)
			if text != "" && !seen[text] {
				seen[text] = true
				leaves = append(leaves, text)
			}
			return false
		}
		return true
	})

	if len(leaves) == 0 {
		return nil
	}

	switch language {
	case lang.Java, lang.Kotlin, lang.Scala, lang.CSharp:
		return leaves[len(leaves)-1:]
	default:
		return leaves
	}
}

func lastPathSegment(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
