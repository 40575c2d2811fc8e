package tools

import (
	"path/filepath"
	"strings"

	"github.com/DeusData/code-scout-mcp/internal/resolver"
	"github.com/DeusData/code-scout-mcp/internal/scanner"
)

// rewritePath converts an on-disk path to its wire form: root-relative for
// local targets, a browser blob URL for remote ones. Paths outside the
// resolved root (and single-file logical names) pass through unchanged.
func rewritePath(res *resolver.Resolution, path string) string {
	if res == nil {
		return path
	}

	rel, err := filepath.Rel(res.CloneRoot, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return path
	}

	if res.Remote != nil {
		return res.Remote.BlobURL(filepath.ToSlash(rel))
	}
	return rel
}

// rewriteUsages converts each record's file path via rewritePath. Records
// are copied; the scanner's index keeps its on-disk paths.
func rewriteUsages(res *resolver.Resolution, usages []scanner.UsageRecord) []scanner.UsageRecord {
	out := make([]scanner.UsageRecord, len(usages))
	for i, u := range usages {
		u.FilePath = rewritePath(res, u.FilePath)
		out[i] = u
	}
	return out
}

// rewriteIndex converts a whole symbol index to wire form.
func rewriteIndex(res *resolver.Resolution, index scanner.SymbolIndex) map[string][]scanner.UsageRecord {
	out := make(map[string][]scanner.UsageRecord, len(index))
	for symbol, usages := range index {
		out[symbol] = rewriteUsages(res, usages)
	}
	return out
}
