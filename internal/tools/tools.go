// Package tools exposes the scanner, cache, and search subsystems as MCP
// tools over stdio. Every handler is synchronous: it resolves its target,
// computes in the request goroutine, and returns JSON records.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/code-scout-mcp/internal/config"
	"github.com/DeusData/code-scout-mcp/internal/repocache"
	"github.com/DeusData/code-scout-mcp/internal/resolver"
	"github.com/DeusData/code-scout-mcp/internal/search"
)

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp      *mcp.Server
	resolver *resolver.Resolver
	cache    *repocache.Cache
	searcher *search.Searcher
	cfg      *config.Config
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(cache *repocache.Cache, cfg *config.Config, version string) *Server {
	srv := &Server{
		resolver: resolver.New(cache),
		cache:    cache,
		searcher: search.NewSearcher(cfg.EffectiveGrepTimeout()),
		cfg:      cfg,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "code-scout-mcp",
				Version: version,
			},
			nil,
		),
	}
	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves MCP over stdio until the context is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	// 1. scan_directory
	s.mcp.AddTool(&mcp.Tool{
		Name:        "scan_directory",
		Description: "Scan a directory or GitHub repository for symbol usages. Parses source files and indexes every definition, import, call, and reference. Returns the full symbol index plus a report of files that failed to parse.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"root_directory": {
					"type": "string",
					"description": "Local directory path, or a GitHub repository/tree/file URL"
				},
				"pattern": {
					"type": "string",
					"description": "Glob for files to scan, matched against file names (e.g. '*.py', '*.go'). Defaults to the configured pattern."
				},
				"github_token": {
					"type": "string",
					"description": "GitHub token for private repositories (falls back to GITHUB_TOKEN)"
				},
				"use_cache": {
					"type": "boolean",
					"description": "Reuse cached clones of remote repositories (default true)"
				}
			},
			"required": ["root_directory"]
		}`),
	}, s.handleScanDirectory)

	// 2. find_symbol
	s.mcp.AddTool(&mcp.Tool{
		Name:        "find_symbol",
		Description: "Find every usage of a symbol in a directory or GitHub repository. Returns usage records with file path, line, column, source line, and usage kind (definition, import, call, reference).",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"root_directory": {
					"type": "string",
					"description": "Local directory path, or a GitHub repository/tree/file URL"
				},
				"symbol_name": {
					"type": "string",
					"description": "Symbol to look up (e.g. 'process_order')"
				},
				"pattern": {
					"type": "string",
					"description": "Glob for files to scan (e.g. '*.py')"
				},
				"github_token": {
					"type": "string",
					"description": "GitHub token for private repositories (falls back to GITHUB_TOKEN)"
				},
				"use_cache": {
					"type": "boolean",
					"description": "Reuse cached clones of remote repositories (default true)"
				}
			},
			"required": ["root_directory", "symbol_name"]
		}`),
	}, s.handleFindSymbol)

	// 3. analyze_impact
	s.mcp.AddTool(&mcp.Tool{
		Name:        "analyze_impact",
		Description: "Analyze the impact of changing a symbol: total usages, affected files, per-kind usage breakdown, and the symbol's dependency-graph neighbors. Use before refactoring to see the blast radius.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"root_directory": {
					"type": "string",
					"description": "Local directory path, or a GitHub repository/tree/file URL"
				},
				"symbol_name": {
					"type": "string",
					"description": "Symbol to analyze"
				},
				"pattern": {
					"type": "string",
					"description": "Glob for files to scan (e.g. '*.py')"
				},
				"github_token": {
					"type": "string",
					"description": "GitHub token for private repositories (falls back to GITHUB_TOKEN)"
				},
				"use_cache": {
					"type": "boolean",
					"description": "Reuse cached clones of remote repositories (default true)"
				}
			},
			"required": ["root_directory", "symbol_name"]
		}`),
	}, s.handleAnalyzeImpact)

	// 4. build_dependency_graph
	s.mcp.AddTool(&mcp.Tool{
		Name:        "build_dependency_graph",
		Description: "Build a dependency graph of the defined symbols in a directory or GitHub repository. Edges come from co-occurrence on source lines in each symbol's defining file. Returns one node per defined symbol with its dependencies and dependents.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"root_directory": {
					"type": "string",
					"description": "Local directory path, or a GitHub repository/tree/file URL"
				},
				"pattern": {
					"type": "string",
					"description": "Glob for files to scan (e.g. '*.py')"
				},
				"github_token": {
					"type": "string",
					"description": "GitHub token for private repositories (falls back to GITHUB_TOKEN)"
				},
				"use_cache": {
					"type": "boolean",
					"description": "Reuse cached clones of remote repositories (default true)"
				}
			},
			"required": ["root_directory"]
		}`),
	}, s.handleBuildDependencyGraph)

	// 5. visualize_dependency_graph
	s.mcp.AddTool(&mcp.Tool{
		Name:        "visualize_dependency_graph",
		Description: "Render the dependency graph of a directory or GitHub repository as a Mermaid diagram with a legend and statistics. Isolated symbols are hidden and output is capped to the most connected nodes. Returns Mermaid markdown that can be rendered visually.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"root_directory": {
					"type": "string",
					"description": "Local directory path, or a GitHub repository/tree/file URL"
				},
				"pattern": {
					"type": "string",
					"description": "Glob for files to scan (e.g. '*.py')"
				},
				"max_nodes": {
					"type": "integer",
					"description": "Maximum number of nodes to include (default 50)"
				},
				"show_files": {
					"type": "boolean",
					"description": "Include file names in node labels (default false)"
				},
				"github_token": {
					"type": "string",
					"description": "GitHub token for private repositories (falls back to GITHUB_TOKEN)"
				},
				"use_cache": {
					"type": "boolean",
					"description": "Reuse cached clones of remote repositories (default true)"
				}
			},
			"required": ["root_directory"]
		}`),
	}, s.handleVisualizeDependencyGraph)

	// 6. grep_search
	s.mcp.AddTool(&mcp.Tool{
		Name:        "grep_search",
		Description: "Run a recursive grep over a directory or GitHub repository. Returns matching lines with file path and line number. Use for string literals and patterns the symbol index does not cover.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"root_directory": {
					"type": "string",
					"description": "Local directory path, or a GitHub repository/tree URL"
				},
				"pattern": {
					"type": "string",
					"description": "Pattern to search for"
				},
				"file_pattern": {
					"type": "string",
					"description": "Glob for files to include (default '*.py')"
				},
				"github_token": {
					"type": "string",
					"description": "GitHub token for private repositories (falls back to GITHUB_TOKEN)"
				},
				"use_cache": {
					"type": "boolean",
					"description": "Reuse cached clones of remote repositories (default true)"
				}
			},
			"required": ["root_directory", "pattern"]
		}`),
	}, s.handleGrepSearch)

	// 7. git_blame
	s.mcp.AddTool(&mcp.Tool{
		Name:        "git_blame",
		Description: "Look up who last changed a specific line of a file. Returns author, commit timestamp, and commit message, or null when the file is not under git.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"root_directory": {
					"type": "string",
					"description": "Local directory path, or a GitHub repository/tree URL"
				},
				"file_path": {
					"type": "string",
					"description": "File path relative to the root directory"
				},
				"line_number": {
					"type": "integer",
					"description": "Line number to blame (1-based)"
				},
				"github_token": {
					"type": "string",
					"description": "GitHub token for private repositories (falls back to GITHUB_TOKEN)"
				},
				"use_cache": {
					"type": "boolean",
					"description": "Reuse cached clones of remote repositories (default true)"
				}
			},
			"required": ["root_directory", "file_path", "line_number"]
		}`),
	}, s.handleGitBlame)

	// 8. cache_info
	s.mcp.AddTool(&mcp.Tool{
		Name:        "cache_info",
		Description: "Report the repository cache contents: cache directory, cached clones with size and age, total size, and the configured ceiling.",
		InputSchema: json.RawMessage(`{"type": "object"}`),
	}, s.handleCacheInfo)

	// 9. clear_cache
	s.mcp.AddTool(&mcp.Tool{
		Name:        "clear_cache",
		Description: "Remove cached repository clones. With a URL, removes the entry for that repository (and optional ref); without arguments, empties the cache.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"url": {
					"type": "string",
					"description": "Repository URL whose cache entry to remove. Omit to clear everything."
				},
				"ref": {
					"type": "string",
					"description": "Branch or tag of the entry to remove (default branch if omitted)"
				}
			}
		}`),
	}, s.handleClearCache)
}

// jsonResult marshals data to JSON and returns as tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// errResult returns a tool result indicating an error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if req.Params.Arguments == nil || len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// getIntArg extracts an integer argument with a default value.
func getIntArg(args map[string]any, key string, defaultVal int) int {
	v, ok := args[key]
	if !ok {
		return defaultVal
	}
	f, ok := v.(float64) // JSON numbers decode as float64
	if !ok {
		return defaultVal
	}
	return int(f)
}

// getBoolArg extracts a boolean argument with a default value.
func getBoolArg(args map[string]any, key string, defaultVal bool) bool {
	v, ok := args[key]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// tokenArg returns the github_token argument, falling back to the
// GITHUB_TOKEN environment variable.
func tokenArg(args map[string]any) string {
	if t := getStringArg(args, "github_token"); t != "" {
		return t
	}
	return os.Getenv("GITHUB_TOKEN")
}
