package tools

import (
	"path/filepath"
	"testing"

	"github.com/DeusData/code-scout-mcp/internal/githost"
	"github.com/DeusData/code-scout-mcp/internal/resolver"
	"github.com/DeusData/code-scout-mcp/internal/scanner"
)

func TestRewritePathLocal(t *testing.T) {
	root := t.TempDir()
	res := &resolver.Resolution{Root: root, CloneRoot: root, Origin: resolver.OriginLocal}

	got := rewritePath(res, filepath.Join(root, "src", "app.py"))
	if got != filepath.Join("src", "app.py") {
		t.Errorf("rewritePath = %q", got)
	}
}

func TestRewritePathRemoteBlobURL(t *testing.T) {
	root := t.TempDir()
	target, err := githost.ParseURL("https://github.com/acme/api/tree/dev/src")
	if err != nil {
		t.Fatal(err)
	}
	res := &resolver.Resolution{
		Root:      filepath.Join(root, "src"),
		CloneRoot: root,
		Origin:    resolver.OriginCache,
		Remote:    target,
	}

	got := rewritePath(res, filepath.Join(root, "src", "app.py"))
	if got != "https://github.com/acme/api/blob/dev/src/app.py" {
		t.Errorf("rewritePath = %q", got)
	}
}

func TestRewritePathOutsideRootUnchanged(t *testing.T) {
	root := t.TempDir()
	res := &resolver.Resolution{Root: root, CloneRoot: root, Origin: resolver.OriginLocal}

	outside := filepath.Join(t.TempDir(), "other.py")
	if got := rewritePath(res, outside); got != outside {
		t.Errorf("path outside root rewritten to %q", got)
	}
}

func TestRewritePathNilResolution(t *testing.T) {
	logical := "https://github.com/acme/api/blob/main/app.py"
	if got := rewritePath(nil, logical); got != logical {
		t.Errorf("single-file logical name rewritten to %q", got)
	}
}

func TestRewriteUsagesCopies(t *testing.T) {
	root := t.TempDir()
	res := &resolver.Resolution{Root: root, CloneRoot: root, Origin: resolver.OriginLocal}

	original := []scanner.UsageRecord{{FilePath: filepath.Join(root, "app.py"), Line: 1, Kind: scanner.KindDefinition}}
	rewritten := rewriteUsages(res, original)

	if rewritten[0].FilePath != "app.py" {
		t.Errorf("rewritten path = %q", rewritten[0].FilePath)
	}
	if original[0].FilePath == "app.py" {
		t.Error("rewrite mutated the scanner's records")
	}
}
