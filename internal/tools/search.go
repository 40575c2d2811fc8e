package tools

import (
	"context"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/code-scout-mcp/internal/search"
)

func (s *Server) handleGrepSearch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	pattern := getStringArg(args, "pattern")
	if pattern == "" {
		return errResult("pattern is required"), nil
	}
	target := getStringArg(args, "root_directory")
	if target == "" {
		return errResult("root_directory is required"), nil
	}

	res, err := s.resolver.Resolve(ctx, target, tokenArg(args), getBoolArg(args, "use_cache", true))
	if err != nil {
		return errResult(err.Error()), nil
	}
	defer res.Release()

	matches := s.searcher.Grep(ctx, res.Root, pattern, getStringArg(args, "file_pattern"))
	for i := range matches {
		matches[i].File = rewritePath(res, matches[i].File)
	}

	return jsonResult(map[string]any{
		"pattern": pattern,
		"matches": matches,
	}), nil
}

func (s *Server) handleGitBlame(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	target := getStringArg(args, "root_directory")
	if target == "" {
		return errResult("root_directory is required"), nil
	}
	file := getStringArg(args, "file_path")
	if file == "" {
		return errResult("file_path is required"), nil
	}
	line := getIntArg(args, "line_number", 0)
	if line < 1 {
		return errResult("line_number must be a positive integer"), nil
	}

	res, err := s.resolver.Resolve(ctx, target, tokenArg(args), getBoolArg(args, "use_cache", true))
	if err != nil {
		return errResult(err.Error()), nil
	}
	defer res.Release()

	// Shallow clones carry only one commit, so blame against a cached
	// remote clone attributes every line to it.
	info := search.Blame(ctx, res.Root, filepath.FromSlash(file), line, s.cfg.EffectiveBlameTimeout())
	return jsonResult(info), nil
}
