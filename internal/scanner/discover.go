package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/DeusData/code-scout-mcp/internal/lang"
)

// ignoreDirs are directory names skipped during discovery.
var ignoreDirs = map[string]bool{
	".cache": true, ".eggs": true, ".env": true, ".git": true,
	".gradle": true, ".hg": true, ".idea": true, ".mypy_cache": true,
	".nox": true, ".npm": true, ".pytest_cache": true, ".ruff_cache": true,
	".svn": true, ".tox": true, ".venv": true, ".vscode": true,
	"__pycache__": true, "bower_components": true, "build": true,
	"coverage": true, "dist": true, "env": true, "htmlcov": true,
	"node_modules": true, "site-packages": true, "target": true,
	"vendor": true, "venv": true,
}

// ignoreSuffixes are file suffixes skipped during discovery.
var ignoreSuffixes = map[string]bool{
	".tmp": true, "~": true, ".pyc": true, ".pyo": true,
	".o": true, ".a": true, ".so": true, ".dll": true, ".class": true,
}

type fileInfo struct {
	Path     string // absolute path
	Language lang.Language
}

// discoverFiles walks root and returns source files whose base name matches
// pattern and whose extension maps to a registered language. An empty
// pattern matches every registered-language file.
func discoverFiles(ctx context.Context, root, pattern string) ([]fileInfo, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var match glob.Glob
	if pattern != "" {
		match, err = glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var files []fileInfo
	err = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			slog.Debug("scan.walk_error", "path", path, "error", walkErr)
			return walkErrAction(info)
		}

		if info.IsDir() {
			if ignoreDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		for suffix := range ignoreSuffixes {
			if strings.HasSuffix(path, suffix) {
				return nil
			}
		}

		if match != nil && !match.Match(info.Name()) {
			return nil
		}

		l, ok := lang.LanguageForExtension(filepath.Ext(path))
		if !ok {
			return nil
		}
		files = append(files, fileInfo{Path: path, Language: l})
		return nil
	})

	return files, err
}

// walkErrAction isolates a walk error to the entry it hit: an unreadable
// directory is skipped whole, an unreadable file costs only itself and the
// walk continues with its siblings.
func walkErrAction(info os.FileInfo) error {
	if info != nil && info.IsDir() {
		return filepath.SkipDir
	}
	return nil
}
