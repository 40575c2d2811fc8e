package githost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

var (
	// ErrCloneFailed means git exited non-zero.
	ErrCloneFailed = errors.New("git clone failed")
	// ErrCloneTimeout means the clone exceeded its deadline.
	ErrCloneTimeout = errors.New("git clone timed out")
)

// Clone makes a depth-1 clone of the repository at url into dest. When ref
// is non-empty the clone is restricted to that branch or tag. The token, if
// any, is embedded in the fetch URL and never appears in errors.
func Clone(ctx context.Context, url, ref, token, dest string) error {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return fmt.Errorf("git not found in PATH: install git to analyze remote repositories")
	}

	target, err := ParseURL(url)
	if err != nil {
		return err
	}

	args := []string{"clone", "--depth", "1"}
	if ref != "" {
		args = append(args, "--branch", ref, "--single-branch")
	}
	args = append(args, target.CloneURL(token), dest)

	slog.Info("clone.start", "repo", target.RepoURL(), "ref", ref)

	cmd := exec.CommandContext(ctx, gitPath, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s", ErrCloneTimeout, target.RepoURL())
		}
		return fmt.Errorf("%w: %s: %s", ErrCloneFailed, target.RepoURL(), redact(string(out), token))
	}

	slog.Info("clone.done", "repo", target.RepoURL(), "dest", dest)
	return nil
}

// redact strips the token from git output before it reaches an error
// message or log line.
func redact(s, token string) string {
	s = strings.TrimSpace(s)
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "***")
}
