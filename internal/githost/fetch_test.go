package githost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func swapBases(t *testing.T, api, raw string) {
	t.Helper()
	oldAPI, oldRaw := apiBase, rawBase
	apiBase, rawBase = api, raw
	t.Cleanup(func() { apiBase, rawBase = oldAPI, oldRaw })
}

func TestFetchFileContentViaAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/api/contents/src/main.py" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("ref") != "dev" {
			t.Errorf("missing ref query, got %q", r.URL.RawQuery)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github.v3.raw" {
			t.Errorf("Accept = %q", got)
		}
		w.Write([]byte("def foo(): pass\n"))
	}))
	defer srv.Close()
	swapBases(t, srv.URL, "http://127.0.0.1:0")

	target := &Target{Owner: "acme", Repo: "api", Ref: "dev", Subpath: "src/main.py", Kind: KindBlob}
	content, err := FetchFileContent(context.Background(), target, "tok123")
	if err != nil {
		t.Fatalf("FetchFileContent: %v", err)
	}
	if string(content) != "def foo(): pass\n" {
		t.Errorf("content = %q", content)
	}
}

func TestFetchFileContentRawFallback(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer api.Close()

	raw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No ref in the URL defaults to main on the raw host.
		if r.URL.Path != "/acme/api/main/main.py" {
			t.Errorf("unexpected raw path %q", r.URL.Path)
		}
		w.Write([]byte("x = 1\n"))
	}))
	defer raw.Close()
	swapBases(t, api.URL, raw.URL)

	target := &Target{Owner: "acme", Repo: "api", Subpath: "main.py", Kind: KindBlob}
	content, err := FetchFileContent(context.Background(), target, "")
	if err != nil {
		t.Fatalf("FetchFileContent: %v", err)
	}
	if string(content) != "x = 1\n" {
		t.Errorf("content = %q", content)
	}
}

func TestFetchFileContentBothHostsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()
	swapBases(t, srv.URL, srv.URL)

	target := &Target{Owner: "acme", Repo: "api", Subpath: "gone.py", Kind: KindBlob}
	if _, err := FetchFileContent(context.Background(), target, ""); err == nil {
		t.Fatal("expected error when both hosts fail")
	}
}

func TestFetchFileContentRequiresSubpath(t *testing.T) {
	target := &Target{Owner: "acme", Repo: "api", Kind: KindRepo, Raw: "https://github.com/acme/api"}
	if _, err := FetchFileContent(context.Background(), target, ""); err == nil {
		t.Fatal("expected error for repo-root target")
	}
}

func TestFetchDirectoryFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/repos/acme/api/contents/")
		accept := r.Header.Get("Accept")

		if accept == "application/vnd.github.v3.raw" {
			w.Write([]byte("# " + path + "\n"))
			return
		}
		switch path {
		case "src":
			json.NewEncoder(w).Encode([]directoryEntry{
				{Name: "main.py", Path: "src/main.py", Type: "file"},
				{Name: "README.md", Path: "src/README.md", Type: "file"},
				{Name: "sub", Path: "src/sub", Type: "dir"},
			})
		case "src/sub":
			json.NewEncoder(w).Encode([]directoryEntry{
				{Name: "util.py", Path: "src/sub/util.py", Type: "file"},
			})
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer srv.Close()
	swapBases(t, srv.URL, "http://127.0.0.1:0")

	target := &Target{Owner: "acme", Repo: "api", Ref: "main", Subpath: "src", Kind: KindTree}
	files, err := FetchDirectoryFiles(context.Background(), target, "", "*.py")
	if err != nil {
		t.Fatalf("FetchDirectoryFiles: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 python files, got %d: %+v", len(files), files)
	}
	got := map[string]string{}
	for _, f := range files {
		got[f.Path] = string(f.Content)
	}
	if got["src/main.py"] != "# src/main.py\n" {
		t.Errorf("main.py content = %q", got["src/main.py"])
	}
	if got["src/sub/util.py"] != "# src/sub/util.py\n" {
		t.Errorf("util.py content = %q", got["src/sub/util.py"])
	}
}

func TestFetchDirectoryFilesInvalidPattern(t *testing.T) {
	target := &Target{Owner: "acme", Repo: "api", Subpath: "src", Kind: KindTree}
	if _, err := FetchDirectoryFiles(context.Background(), target, "", "[bad"); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}
