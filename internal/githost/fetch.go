package githost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"
)

// Overridable in tests.
var (
	apiBase = "https://api.github.com"
	rawBase = "https://raw.githubusercontent.com"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

const fetchConcurrency = 8

// FetchFileContent downloads a single file identified by a blob target. It
// tries the contents API first (which honors the token for private repos)
// and falls back to the raw host on failure.
func FetchFileContent(ctx context.Context, target *Target, token string) ([]byte, error) {
	if target.Subpath == "" {
		return nil, fmt.Errorf("URL does not point at a file: %s", target.Raw)
	}

	content, apiErr := fetchViaAPI(ctx, target, token, target.Subpath)
	if apiErr == nil {
		return content, nil
	}

	content, rawErr := fetchViaRawHost(ctx, target, target.Subpath)
	if rawErr == nil {
		return content, nil
	}
	return nil, fmt.Errorf("fetching %s: %w (raw fallback: %v)", target.Raw, apiErr, rawErr)
}

// RemoteFile is one file fetched from a repository directory.
type RemoteFile struct {
	Path    string `json:"path"`
	Name    string `json:"name"`
	Content []byte `json:"-"`
}

// FetchDirectoryFiles lists the files under a tree target, recursing into
// subdirectories, and downloads those whose name matches pattern. Downloads
// run concurrently with a fixed bound.
func FetchDirectoryFiles(ctx context.Context, target *Target, token, pattern string) ([]RemoteFile, error) {
	if pattern == "" {
		pattern = "*.py"
	}
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var files []RemoteFile
	dirs := []string{target.Subpath}
	for len(dirs) > 0 {
		dir := dirs[0]
		dirs = dirs[1:]

		entries, err := listDirectory(ctx, target, token, dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			switch e.Type {
			case "dir":
				dirs = append(dirs, e.Path)
			case "file":
				if matcher.Match(e.Name) {
					files = append(files, RemoteFile{Path: e.Path, Name: e.Name})
				}
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i := range files {
		g.Go(func() error {
			content, err := fetchViaAPI(gctx, target, token, files[i].Path)
			if err != nil {
				return err
			}
			files[i].Content = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

type directoryEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

func listDirectory(ctx context.Context, target *Target, token, dir string) ([]directoryEntry, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", apiBase, target.Owner, target.Repo, dir)
	if target.Ref != "" {
		u += "?ref=" + url.QueryEscape(target.Ref)
	}

	body, err := httpGet(ctx, u, token, "application/vnd.github.v3+json")
	if err != nil {
		return nil, fmt.Errorf("listing %s/%s/%s: %w", target.Owner, target.Repo, dir, err)
	}

	var entries []directoryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("listing %s/%s/%s: %w", target.Owner, target.Repo, dir, err)
	}
	return entries, nil
}

func fetchViaAPI(ctx context.Context, target *Target, token, filePath string) ([]byte, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", apiBase, target.Owner, target.Repo, filePath)
	if target.Ref != "" {
		u += "?ref=" + url.QueryEscape(target.Ref)
	}
	// The raw media type skips the base64 envelope.
	return httpGet(ctx, u, token, "application/vnd.github.v3.raw")
}

func fetchViaRawHost(ctx context.Context, target *Target, filePath string) ([]byte, error) {
	ref := target.Ref
	if ref == "" {
		ref = "main"
	}
	u := fmt.Sprintf("%s/%s/%s/%s/%s", rawBase, target.Owner, target.Repo, ref, filePath)
	return httpGet(ctx, u, "", "")
}

func httpGet(ctx context.Context, u, token, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
