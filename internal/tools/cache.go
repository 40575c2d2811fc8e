package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/code-scout-mcp/internal/githost"
)

func (s *Server) handleCacheInfo(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.cache.Info()
	if err != nil {
		return errResult(fmt.Sprintf("reading cache: %v", err)), nil
	}

	entries := make([]map[string]any, 0, len(info.Entries))
	for _, e := range info.Entries {
		entries = append(entries, map[string]any{
			"key":       e.Key,
			"size_mib":  float64(e.SizeBytes) / (1024 * 1024),
			"age_hours": time.Since(e.ModTime).Hours(),
		})
	}

	return jsonResult(map[string]any{
		"cache_dir":      info.Dir,
		"entries":        entries,
		"total_size_mib": float64(info.TotalSizeBytes) / (1024 * 1024),
		"max_size_mib":   float64(info.MaxSizeBytes) / (1024 * 1024),
	}), nil
}

func (s *Server) handleClearCache(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	url := getStringArg(args, "url")
	if url == "" {
		if err := s.cache.InvalidateAll(); err != nil {
			return errResult(fmt.Sprintf("clearing cache: %v", err)), nil
		}
		return jsonResult(map[string]any{"cleared": "all"}), nil
	}

	// Entries are keyed on the canonical repository URL and the ref the
	// resolver extracted, so ".git" suffixes, trailing slashes, and
	// tree/blob URLs must be normalized the same way before invalidating.
	repoURL, ref := url, getStringArg(args, "ref")
	if parsed, err := githost.ParseURL(url); err == nil {
		repoURL = parsed.RepoURL()
		if ref == "" {
			ref = parsed.Ref
		}
	}

	if err := s.cache.Invalidate(repoURL, ref); err != nil {
		return errResult(fmt.Sprintf("clearing cache entry: %v", err)), nil
	}
	return jsonResult(map[string]any{"cleared": repoURL}), nil
}
