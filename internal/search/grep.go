// Package search shells out to grep and git for text search and per-line
// authorship lookups. Both tools degrade softly: a failed subprocess yields
// an empty result and a log line, not an error, so one bad lookup never
// fails a whole analysis.
package search

import (
	"context"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Match is one grep hit.
type Match struct {
	File    string `json:"file"`
	Line    int    `json:"line_number"`
	Content string `json:"content"`
}

// Searcher runs text searches under a timeout.
type Searcher struct {
	timeout time.Duration
}

// NewSearcher returns a Searcher. A zero timeout means no limit beyond the
// caller's context.
func NewSearcher(timeout time.Duration) *Searcher {
	return &Searcher{timeout: timeout}
}

// Grep searches root recursively for pattern in files matching fileGlob
// (default *.py). grep exits 1 on zero matches; that and every other
// failure return an empty slice.
func (s *Searcher) Grep(ctx context.Context, root, pattern, fileGlob string) []Match {
	if fileGlob == "" {
		fileGlob = "*.py"
	}

	grepPath, err := exec.LookPath("grep")
	if err != nil {
		slog.Error("grep.not_found", "error", err)
		return []Match{}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, grepPath, "-rn", "--include", fileGlob, pattern, root)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return []Match{}
		}
		slog.Error("grep.failed", "pattern", pattern, "root", root, "error", err)
		return []Match{}
	}

	return parseGrepOutput(string(out))
}

// parseGrepOutput splits grep -rn lines into matches. Each line is
// file:line:content; lines that do not fit are skipped.
func parseGrepOutput(out string) []Match {
	matches := []Match{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		parts := strings.SplitN(line, ":", 3)
		if len(parts) < 3 {
			continue
		}
		lineNo, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		matches = append(matches, Match{
			File:    parts[0],
			Line:    lineNo,
			Content: strings.TrimSpace(parts[2]),
		})
	}
	return matches
}
