// ast_debug prints the tree-sitter parse tree of a source file. Handy when
// adding a language: shows the node kinds and field shapes the scanner's
// extraction rules have to match.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/code-scout-mcp/internal/lang"
	"github.com/DeusData/code-scout-mcp/internal/parser"
)

func printTree(node *tree_sitter.Node, source []byte, indent int) {
	if node == nil {
		return
	}
	text := string(source[node.StartByte():node.EndByte()])
	if len(text) > 60 {
		text = text[:60] + "..."
	}
	text = strings.ReplaceAll(text, "\n", "\\n")
	fmt.Printf("%s%s %q\n", strings.Repeat("  ", indent), node.Kind(), text)
	for i := uint(0); i < node.NamedChildCount(); i++ {
		printTree(node.NamedChild(i), source, indent+1)
	}
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ast_debug <source-file>")
		os.Exit(2)
	}
	path := os.Args[1]

	language, ok := lang.LanguageForExtension(filepath.Ext(path))
	if !ok {
		fmt.Fprintf(os.Stderr, "unsupported file type: %s\n", path)
		os.Exit(1)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tree, err := parser.Parse(language, source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer tree.Close()

	fmt.Printf("language: %s\n", language)
	if tree.RootNode().HasError() {
		fmt.Println("note: tree contains syntax errors")
	}
	printTree(tree.RootNode(), source, 0)
}
