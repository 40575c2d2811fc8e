// Package resolver turns an analysis target — a local directory path or a
// GitHub URL — into a readable directory on disk, cloning remote
// repositories through the cache or into a throwaway directory.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DeusData/code-scout-mcp/internal/githost"
	"github.com/DeusData/code-scout-mcp/internal/repocache"
)

// Origin records where a resolution's root directory came from.
type Origin string

const (
	OriginLocal Origin = "local" // caller-supplied directory
	OriginCache Origin = "cache" // clone owned by the repository cache
	OriginClone Origin = "clone" // one-shot clone owned by the Resolution
)

// ResolutionError wraps a failure to resolve a target, keeping the target
// string for the caller's error message.
type ResolutionError struct {
	Target string
	Cause  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %q: %v", e.Target, e.Cause)
}

func (e *ResolutionError) Unwrap() error { return e.Cause }

// Resolver resolves targets, delegating remote clones to the cache.
type Resolver struct {
	cache *repocache.Cache
}

// New returns a Resolver backed by the given cache.
func New(cache *repocache.Cache) *Resolver {
	return &Resolver{cache: cache}
}

// Resolution is a resolved target. Root points at the directory to analyze;
// for tree URLs it is the subdirectory inside the clone. Remote holds the
// parsed URL for remote targets and is nil for local paths.
type Resolution struct {
	Root      string
	CloneRoot string // repository root; equals Root unless the URL had a subpath
	Origin    Origin
	Remote    *githost.Target

	tempRoot string // directory to remove on Release, one-shot clones only
}

// Resolve maps target to a directory. A string containing "github.com" is
// always treated as remote: a malformed remote URL is an error, never a
// local path lookup. Local paths must name an existing directory.
//
// When useCache is false the clone lands in a fresh temp directory that the
// caller releases.
func (r *Resolver) Resolve(ctx context.Context, target, token string, useCache bool) (*Resolution, error) {
	if !githost.IsRemoteURL(target) {
		return resolveLocal(target)
	}

	parsed, err := githost.ParseURL(target)
	if err != nil {
		return nil, &ResolutionError{Target: target, Cause: err}
	}
	if parsed.Kind == githost.KindBlob {
		return nil, &ResolutionError{Target: target, Cause: fmt.Errorf("URL points at a file, not a directory")}
	}

	if useCache && r.cache != nil {
		root, err := r.cache.Resolve(ctx, parsed.RepoURL(), parsed.Ref, token)
		if err != nil {
			return nil, &ResolutionError{Target: target, Cause: err}
		}
		return subdirResolution(target, parsed, root, OriginCache, "")
	}

	tempRoot, err := os.MkdirTemp("", "code-scout-clone-")
	if err != nil {
		return nil, &ResolutionError{Target: target, Cause: err}
	}
	// MkdirTemp creates the directory, git clone wants to create it itself.
	dest := filepath.Join(tempRoot, "repo")
	if err := githost.Clone(ctx, parsed.RepoURL(), parsed.Ref, token, dest); err != nil {
		os.RemoveAll(tempRoot)
		return nil, &ResolutionError{Target: target, Cause: err}
	}
	return subdirResolution(target, parsed, dest, OriginClone, tempRoot)
}

// Release removes the temp directory of a one-shot clone. Cached and local
// resolutions are untouched. Safe to call more than once.
func (res *Resolution) Release() {
	if res == nil || res.tempRoot == "" {
		return
	}
	if err := os.RemoveAll(res.tempRoot); err != nil {
		slog.Debug("resolution.release_failed", "dir", res.tempRoot, "error", err)
	}
	res.tempRoot = ""
}

func resolveLocal(target string) (*Resolution, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, &ResolutionError{Target: target, Cause: err}
	}
	if !info.IsDir() {
		return nil, &ResolutionError{Target: target, Cause: fmt.Errorf("not a directory")}
	}
	return &Resolution{Root: target, CloneRoot: target, Origin: OriginLocal}, nil
}

// subdirResolution narrows the clone root to the tree URL's subdirectory.
func subdirResolution(target string, parsed *githost.Target, cloneRoot string, origin Origin, tempRoot string) (*Resolution, error) {
	root := cloneRoot
	if parsed.Subpath != "" {
		root = filepath.Join(cloneRoot, filepath.FromSlash(parsed.Subpath))
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			if tempRoot != "" {
				os.RemoveAll(tempRoot)
			}
			return nil, &ResolutionError{Target: target, Cause: fmt.Errorf("path %q not found in repository", parsed.Subpath)}
		}
	}
	return &Resolution{Root: root, CloneRoot: cloneRoot, Origin: origin, Remote: parsed, tempRoot: tempRoot}, nil
}
