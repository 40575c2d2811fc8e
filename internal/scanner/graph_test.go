package scanner

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func scanFixture(t *testing.T, files map[string]string) *Scanner {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeFile(t, dir, name, content)
	}
	s := New()
	if _, err := s.Scan(context.Background(), dir, "*.py"); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return s
}

func TestBuildGraphEdge(t *testing.T) {
	s := scanFixture(t, map[string]string{
		"app.py": "def helper(): pass\ndef main(): helper()\n",
	})

	graph := BuildGraph(s.Index())

	helper, ok := graph["helper"]
	if !ok {
		t.Fatal("helper missing from graph")
	}
	if len(helper.Dependencies) != 1 || helper.Dependencies[0] != "main" {
		t.Errorf("helper.Dependencies = %v, want [main]", helper.Dependencies)
	}

	main, ok := graph["main"]
	if !ok {
		t.Fatal("main missing from graph")
	}
	if len(main.Dependents) != 1 || main.Dependents[0] != "helper" {
		t.Errorf("main.Dependents = %v, want [helper]", main.Dependents)
	}
}

func TestBuildGraphSymmetry(t *testing.T) {
	s := scanFixture(t, map[string]string{
		"a.py": "def alpha(): pass\ndef beta(): alpha()\n",
		"b.py": "def gamma(): beta()\n",
	})

	graph := BuildGraph(s.Index())

	for symbol, node := range graph {
		for _, dep := range node.Dependencies {
			other, ok := graph[dep]
			if !ok {
				t.Fatalf("%s depends on unknown symbol %s", symbol, dep)
			}
			if !contains(other.Dependents, symbol) {
				t.Errorf("%s -> %s edge has no reverse dependent entry", symbol, dep)
			}
		}
		for _, dep := range node.Dependents {
			other, ok := graph[dep]
			if !ok {
				t.Fatalf("%s has unknown dependent %s", symbol, dep)
			}
			if !contains(other.Dependencies, symbol) {
				t.Errorf("%s <- %s edge has no forward dependency entry", symbol, dep)
			}
		}
	}
}

func TestBuildGraphSubstringHeuristic(t *testing.T) {
	// Textual co-occurrence: "art" is a substring of "art_gallery", so the
	// line mentioning compute also links art even though art is never called.
	s := scanFixture(t, map[string]string{
		"app.py": "def art(): pass\ndef compute(): pass\nresult = compute(art_gallery)\n",
	})

	graph := BuildGraph(s.Index())

	compute := graph["compute"]
	if compute == nil {
		t.Fatal("compute missing from graph")
	}
	if !contains(compute.Dependencies, "art") {
		t.Errorf("compute.Dependencies = %v, want it to include art", compute.Dependencies)
	}

	art := graph["art"]
	if art == nil {
		t.Fatal("art missing from graph")
	}
	if len(art.Dependencies) != 0 {
		t.Errorf("art.Dependencies = %v, want none", art.Dependencies)
	}
	if !contains(art.Dependents, "compute") {
		t.Errorf("art.Dependents = %v, want it to include compute", art.Dependents)
	}
}

func TestBuildGraphIsolatedNodeRetained(t *testing.T) {
	s := scanFixture(t, map[string]string{
		"app.py": "def lonely(): pass\n",
	})

	graph := BuildGraph(s.Index())

	node, ok := graph["lonely"]
	if !ok {
		t.Fatal("symbol with no edges dropped from graph")
	}
	if len(node.Dependencies) != 0 || len(node.Dependents) != 0 {
		t.Errorf("expected isolated node, got %+v", node)
	}
	if node.FilePath == "" {
		t.Error("node missing defining file path")
	}
}

func TestBuildGraphDeterministic(t *testing.T) {
	files := map[string]string{
		"a.py": "def alpha(): pass\ndef beta(): alpha()\n",
		"b.py": "def gamma(): beta()\ngamma()\n",
	}
	first := BuildGraph(scanFixture(t, files).Index())
	second := BuildGraph(scanFixture(t, files).Index())

	if len(first) != len(second) {
		t.Fatalf("graph sizes differ: %d vs %d", len(first), len(second))
	}
	for symbol, node := range first {
		other := second[symbol]
		if other == nil {
			t.Fatalf("symbol %s missing from second graph", symbol)
		}
		if !equalSlices(node.Dependencies, other.Dependencies) {
			t.Errorf("%s dependencies differ: %v vs %v", symbol, node.Dependencies, other.Dependencies)
		}
		if !equalSlices(node.Dependents, other.Dependents) {
			t.Errorf("%s dependents differ: %v vs %v", symbol, node.Dependents, other.Dependents)
		}
	}
}

func TestAnalyzeImpact(t *testing.T) {
	s := scanFixture(t, map[string]string{
		"lib.py": "def foo(): pass\n",
		"app.py": "from lib import foo\nfoo()\nhandler = foo\n",
	})

	impact := AnalyzeImpact(s.Index(), "foo")

	if impact.Symbol != "foo" {
		t.Errorf("Symbol = %q", impact.Symbol)
	}
	if impact.TotalUsages != len(s.FindSymbol("foo")) {
		t.Errorf("TotalUsages = %d, want %d", impact.TotalUsages, len(s.FindSymbol("foo")))
	}
	if impact.FileCount != 2 || len(impact.AffectedFiles) != 2 {
		t.Errorf("expected 2 affected files, got count=%d files=%v", impact.FileCount, impact.AffectedFiles)
	}

	b := impact.Breakdown
	if b.Definitions != 1 || b.Imports != 1 || b.Calls != 1 || b.References != 1 {
		t.Errorf("unexpected breakdown: %+v", b)
	}
	if b.Definitions+b.Imports+b.Calls+b.References != impact.TotalUsages {
		t.Error("breakdown does not sum to total usages")
	}
}

func TestAnalyzeImpactIsolatedSymbolKeepsEdgeKeys(t *testing.T) {
	s := scanFixture(t, map[string]string{
		"app.py": "def lonely(): pass\n",
	})

	impact := AnalyzeImpact(s.Index(), "lonely")
	if impact.Dependencies == nil || impact.Dependents == nil {
		t.Fatalf("expected empty edge lists for a defined symbol, got %+v", impact)
	}

	// On the wire a defined symbol with no edges must show empty lists,
	// not vanish into the same shape as an undefined symbol.
	b, err := json.Marshal(impact)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"dependencies":[]`) || !strings.Contains(string(b), `"dependents":[]`) {
		t.Errorf("edge keys missing or non-empty: %s", b)
	}
}

func TestAnalyzeImpactUnknownSymbol(t *testing.T) {
	s := New()
	impact := AnalyzeImpact(s.Index(), "ghost")
	if impact.TotalUsages != 0 || impact.FileCount != 0 {
		t.Errorf("expected zero impact, got %+v", impact)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
