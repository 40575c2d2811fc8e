// Package githost talks to GitHub: it parses repository, blob, and tree
// URLs, clones repositories with git, and fetches file contents over the
// REST API with a raw-host fallback.
package githost

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// TargetKind classifies what a GitHub URL points at.
type TargetKind string

const (
	KindRepo TargetKind = "repo" // repository root
	KindTree TargetKind = "tree" // directory at a ref
	KindBlob TargetKind = "blob" // single file at a ref
)

// Target is a parsed GitHub URL.
type Target struct {
	Owner   string
	Repo    string
	Ref     string // branch, tag, or commit; empty means the default branch
	Subpath string // path within the repository; empty for repo roots
	Kind    TargetKind
	Raw     string // the URL as given
}

// Matched in order; the first hit wins. A tree URL without a trailing path
// does not parse.
var urlPatterns = []struct {
	kind TargetKind
	re   *regexp.Regexp
}{
	{KindBlob, regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/blob/([^/]+)/(.+)`)},
	{KindTree, regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/tree/([^/]+)/(.+)`)},
	{KindRepo, regexp.MustCompile(`github\.com/([^/]+)/([^/]+?)/?$`)},
}

// IsRemoteURL reports whether s looks like a GitHub URL rather than a
// local path.
func IsRemoteURL(s string) bool {
	return strings.Contains(strings.ToLower(s), "github.com")
}

// ParseURL extracts the owner, repository, ref, and subpath from a GitHub
// URL. It accepts repository roots, blob (file) URLs, and tree (directory)
// URLs.
func ParseURL(raw string) (*Target, error) {
	for _, p := range urlPatterns {
		m := p.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		t := &Target{
			Owner: m[1],
			Repo:  strings.TrimSuffix(m[2], ".git"),
			Kind:  p.kind,
			Raw:   raw,
		}
		if len(m) > 4 {
			t.Ref = m[3]
			t.Subpath = strings.TrimSuffix(m[4], "/")
		}
		return t, nil
	}
	return nil, fmt.Errorf("unrecognized GitHub URL: %s", raw)
}

// CloneURL returns the HTTPS clone URL, embedding the token when one is
// given so private repositories clone without a credential helper.
func (t *Target) CloneURL(token string) string {
	if token != "" {
		return fmt.Sprintf("https://%s@github.com/%s/%s.git", token, t.Owner, t.Repo)
	}
	return fmt.Sprintf("https://github.com/%s/%s.git", t.Owner, t.Repo)
}

// RepoURL returns the canonical repository URL without ref or subpath.
// Cache keys derive from this so blob and tree URLs of one repository at
// one ref share a clone.
func (t *Target) RepoURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", t.Owner, t.Repo)
}

// BlobURL renders the browser URL of a file inside the repository, using
// the target's ref or "main" when the URL carried none.
func (t *Target) BlobURL(relPath string) string {
	ref := t.Ref
	if ref == "" {
		ref = "main"
	}
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", t.Owner, t.Repo, ref, path.Clean(relPath))
}
