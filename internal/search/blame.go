package search

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// BlameInfo is the authorship of a single line.
type BlameInfo struct {
	Author        string `json:"author"`
	Timestamp     int64  `json:"timestamp"`
	CommitMessage string `json:"commit_message"`
}

// Blame looks up who last touched line in file, relative to root. root must
// be inside a git work tree. Any failure — no git, not a repository, file
// untracked, line out of range — returns nil.
func Blame(ctx context.Context, root, file string, line int, timeout time.Duration) *BlameInfo {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		slog.Error("blame.git_not_found", "error", err)
		return nil
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	span := fmt.Sprintf("%d,%d", line, line)
	cmd := exec.CommandContext(ctx, gitPath, "blame", "-L", span, "--porcelain", file)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		slog.Error("blame.failed", "file", file, "line", line, "error", err)
		return nil
	}

	return parseBlamePorcelain(string(out))
}

// parseBlamePorcelain extracts author, author-time, and summary from git
// blame --porcelain output. Returns nil when none of the fields are
// present.
func parseBlamePorcelain(out string) *BlameInfo {
	var info BlameInfo
	var found bool

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "author "):
			info.Author = strings.TrimPrefix(line, "author ")
			found = true
		case strings.HasPrefix(line, "author-time "):
			if ts, err := strconv.ParseInt(strings.TrimPrefix(line, "author-time "), 10, 64); err == nil {
				info.Timestamp = ts
				found = true
			}
		case strings.HasPrefix(line, "summary "):
			info.CommitMessage = strings.TrimPrefix(line, "summary ")
			found = true
		}
	}

	if !found {
		return nil
	}
	return &info
}
