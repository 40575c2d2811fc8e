package scanner

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/code-scout-mcp/internal/lang"
	"github.com/DeusData/code-scout-mcp/internal/parser"
)

// extract parses one source body and appends its usages to the index.
// Classification follows the language spec's node kinds:
//
//   - definition nodes record the declared name;
//   - import nodes record each imported name (not descended into, so alias
//     identifiers don't double as references);
//   - call nodes record the bare callee name, or the trailing attribute name
//     for method calls; the callee identifier itself is excluded from
//     reference extraction, while receiver and argument identifiers still
//     count;
//   - remaining bare identifiers record references, excluding declared
//     names, keywords, and builtins.
func (s *Scanner) extract(filePath string, source []byte, spec *lang.LanguageSpec) error {
	tree, err := parser.Parse(spec.Language, source)
	if err != nil {
		return err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return fmt.Errorf("syntax error in %s", filePath)
	}

	ex := &extraction{
		scanner:     s,
		filePath:    filePath,
		source:      source,
		lines:       strings.Split(string(source), "\n"),
		language:    spec.Language,
		defTypes:    toSet(spec.DefinitionNodeTypes),
		callTypes:   toSet(spec.CallNodeTypes),
		importTypes: toSet(append(append([]string{}, spec.ImportNodeTypes...), spec.ImportFromTypes...)),
		refTypes:    toSet(spec.ReferenceNodeTypes),
		calleeSkip:  make(map[uint64]bool),
	}

	parser.Walk(root, ex.visit)
	return nil
}

type extraction struct {
	scanner  *Scanner
	filePath string
	source   []byte
	lines    []string
	language lang.Language

	defTypes    map[string]bool
	callTypes   map[string]bool
	importTypes map[string]bool
	refTypes    map[string]bool

	// calleeSkip holds byte ranges of callee name leaves so they are not
	// re-counted as references when the walk reaches them.
	calleeSkip map[uint64]bool
}

func (ex *extraction) visit(node *tree_sitter.Node) bool {
	kind := node.Kind()

	switch {
	case ex.defTypes[kind]:
		if name := declaredName(node, ex.source); name != "" {
			ex.record(name, node, KindDefinition)
		}
		return true

	case ex.importTypes[kind]:
		for _, name := range importedNames(node, ex.source, ex.language) {
			ex.record(name, node, KindImport)
		}
		return false

	case ex.callTypes[kind]:
		if leaf := calleeNameLeaf(node); leaf != nil {
			ex.record(parser.NodeText(leaf, ex.source), node, KindCall)
			ex.calleeSkip[byteRange(leaf)] = true
		}
		return true

	case ex.refTypes[kind]:
		if ex.calleeSkip[byteRange(node)] {
			return false
		}
		if isDeclaredNamePosition(node) || isMemberNamePosition(node) {
			return false
		}
		name := parser.NodeText(node, ex.source)
		if name == "" || lang.KeywordOrBuiltin(name, ex.language) {
			return false
		}
		ex.record(name, node, KindReference)
		return false
	}

	return true
}

// record appends a UsageRecord positioned at node's start, with the
// right-trimmed source line as context.
func (ex *extraction) record(symbol string, node *tree_sitter.Node, kind UsageKind) {
	pos := node.StartPosition()
	context := ""
	if int(pos.Row) < len(ex.lines) {
		context = strings.TrimRight(ex.lines[pos.Row], " \t\r")
	}
	ex.scanner.add(symbol, UsageRecord{
		FilePath: ex.filePath,
		Line:     int(pos.Row) + 1,
		Column:   int(pos.Column),
		Context:  context,
		Kind:     kind,
	})
}

// declaredName returns the text of a declaration node's "name" field, or ""
// for anonymous forms.
func declaredName(node *tree_sitter.Node, source []byte) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return parser.NodeText(nameNode, source)
}

// isDeclaredNamePosition reports whether node is the name child of its
// parent declaration, rather than a reference.
func isDeclaredNamePosition(node *tree_sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	nameChild := parent.ChildByFieldName("name")
	return nameChild != nil &&
		nameChild.StartByte() == node.StartByte() &&
		nameChild.EndByte() == node.EndByte()
}

// isMemberNamePosition reports whether node is the attribute/member name of
// an access expression (the "path" in os.path): only the receiver identifier
// counts as a reference, not the member names.
func isMemberNamePosition(node *tree_sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	for _, field := range []string{"attribute", "property", "field"} {
		child := parent.ChildByFieldName(field)
		if child != nil && child.StartByte() == node.StartByte() && child.EndByte() == node.EndByte() {
			return true
		}
	}
	return false
}

// calleeNameLeaf resolves a call node to its bare callee name leaf: the
// identifier for plain calls, or the trailing attribute/member name for
// method calls (obj.method() records "method").
func calleeNameLeaf(node *tree_sitter.Node) *tree_sitter.Node {
	for _, field := range []string{"function", "name", "method", "macro"} {
		if child := node.ChildByFieldName(field); child != nil {
			if leaf := nameLeaf(child); leaf != nil {
				return leaf
			}
		}
	}
	if first := node.NamedChild(0); first != nil {
		return nameLeaf(first)
	}
	return nil
}

// nameLeaf descends attribute/member expression nodes to the trailing name.
func nameLeaf(n *tree_sitter.Node) *tree_sitter.Node {
	for n != nil {
		switch n.Kind() {
		case "identifier", "simple_identifier", "name",
			"field_identifier", "property_identifier", "type_identifier":
			return n

		case "attribute":
			n = n.ChildByFieldName("attribute")

		case "member_expression":
			n = n.ChildByFieldName("property")

		case "selector_expression", "field_expression":
			n = n.ChildByFieldName("field")

		case "scoped_identifier", "qualified_identifier",
			"member_access_expression", "navigation_expression":
			if c := n.ChildByFieldName("name"); c != nil {
				n = c
				continue
			}
			n = lastNamedChild(n)

		case "generic_function", "parenthesized_expression", "generic_type":
			n = n.NamedChild(0)

		default:
			return nil
		}
	}
	return nil
}

func lastNamedChild(n *tree_sitter.Node) *tree_sitter.Node {
	count := n.NamedChildCount()
	if count == 0 {
		return nil
	}
	return n.NamedChild(count - 1)
}

func byteRange(n *tree_sitter.Node) uint64 {
	return uint64(n.StartByte())<<32 | uint64(n.EndByte())
}

func toSet(kinds []string) map[string]bool {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}
