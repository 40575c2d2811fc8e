package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/code-scout-mcp/internal/githost"
	"github.com/DeusData/code-scout-mcp/internal/resolver"
	"github.com/DeusData/code-scout-mcp/internal/scanner"
)

// session is one resolved-and-scanned target. Each request builds its own:
// scanner state is never shared between tool calls.
type session struct {
	res     *resolver.Resolution // nil for single-file fetches
	scanner *scanner.Scanner
	report  *scanner.ScanReport
}

func (sess *session) release() {
	sess.res.Release()
}

// analyzeTarget resolves the target and indexes it. A GitHub blob URL is
// fetched as a single file and indexed under the URL itself as its logical
// path; anything else resolves to a directory and gets a tree scan.
func (s *Server) analyzeTarget(ctx context.Context, args map[string]any) (*session, error) {
	target := getStringArg(args, "root_directory")
	if target == "" {
		return nil, fmt.Errorf("root_directory is required")
	}
	pattern := getStringArg(args, "pattern")
	if pattern == "" {
		pattern = s.cfg.EffectiveFilePattern()
	}
	token := tokenArg(args)

	if githost.IsRemoteURL(target) {
		parsed, err := githost.ParseURL(target)
		if err == nil && parsed.Kind == githost.KindBlob {
			return s.analyzeSingleFile(ctx, parsed, token)
		}
	}

	res, err := s.resolver.Resolve(ctx, target, token, getBoolArg(args, "use_cache", true))
	if err != nil {
		return nil, err
	}

	sc := scanner.New()
	report, err := sc.Scan(ctx, res.Root, pattern)
	if err != nil {
		res.Release()
		return nil, err
	}
	return &session{res: res, scanner: sc, report: report}, nil
}

func (s *Server) analyzeSingleFile(ctx context.Context, target *githost.Target, token string) (*session, error) {
	content, err := githost.FetchFileContent(ctx, target, token)
	if err != nil {
		return nil, err
	}

	sc := scanner.New()
	report, err := sc.AnalyzeSingleFile(content, target.Raw)
	if err != nil {
		return nil, err
	}
	return &session{scanner: sc, report: report}, nil
}

func (s *Server) handleScanDirectory(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	sess, err := s.analyzeTarget(ctx, args)
	if err != nil {
		return errResult(err.Error()), nil
	}
	defer sess.release()

	failed := []string{}
	for _, f := range sess.report.Files {
		if f.Error != "" {
			failed = append(failed, rewritePath(sess.res, f.Path))
		}
	}

	return jsonResult(map[string]any{
		"files_scanned":  sess.report.FilesScanned,
		"parse_failures": sess.report.ParseFailures,
		"failed_files":   failed,
		"symbols":        rewriteIndex(sess.res, sess.scanner.Index()),
	}), nil
}

func (s *Server) handleFindSymbol(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	symbol := getStringArg(args, "symbol_name")
	if symbol == "" {
		return errResult("symbol_name is required"), nil
	}

	sess, err := s.analyzeTarget(ctx, args)
	if err != nil {
		return errResult(err.Error()), nil
	}
	defer sess.release()

	return jsonResult(map[string]any{
		"symbol": symbol,
		"usages": rewriteUsages(sess.res, sess.scanner.FindSymbol(symbol)),
	}), nil
}

func (s *Server) handleAnalyzeImpact(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	symbol := getStringArg(args, "symbol_name")
	if symbol == "" {
		return errResult("symbol_name is required"), nil
	}

	sess, err := s.analyzeTarget(ctx, args)
	if err != nil {
		return errResult(err.Error()), nil
	}
	defer sess.release()

	impact := scanner.AnalyzeImpact(sess.scanner.Index(), symbol)
	for i, f := range impact.AffectedFiles {
		impact.AffectedFiles[i] = rewritePath(sess.res, f)
	}
	return jsonResult(impact), nil
}

func (s *Server) handleBuildDependencyGraph(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	return jsonResult(graph), nil
}
