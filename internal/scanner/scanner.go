package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DeusData/code-scout-mcp/internal/lang"
)

// UsageKind classifies how a symbol was used at one source location.
type UsageKind string

const (
	KindDefinition UsageKind = "definition"
	KindImport     UsageKind = "import"
	KindCall       UsageKind = "call"
	KindReference  UsageKind = "reference"
)

// UsageRecord is one observed occurrence of a symbol. Records are produced
// once during extraction and never mutated afterwards.
type UsageRecord struct {
	FilePath string    `json:"file_path"`
	Line     int       `json:"line"`   // 1-based
	Column   int       `json:"column"` // 0-based
	Context  string    `json:"context"`
	Kind     UsageKind `json:"kind"`
}

// SymbolIndex maps a symbol name to its usages in parse order.
type SymbolIndex map[string][]UsageRecord

// FileResult records the outcome of processing one file during a scan.
type FileResult struct {
	Path  string `json:"path"`
	Error string `json:"error,omitempty"`
}

// ScanReport summarizes one Scan call. Parse failures are data here, not
// control flow: a bad file is recorded and skipped, the scan continues.
type ScanReport struct {
	FilesScanned  int          `json:"files_scanned"`
	ParseFailures int          `json:"parse_failures"`
	Files         []FileResult `json:"files"`
}

// Scanner accumulates a SymbolIndex across scans. A Scanner belongs to one
// scanning session and is not safe for concurrent use; a clean index
// requires a new Scanner.
type Scanner struct {
	index SymbolIndex
}

// New creates a Scanner with an empty index.
func New() *Scanner {
	return &Scanner{index: make(SymbolIndex)}
}

// Index returns the accumulated symbol index.
func (s *Scanner) Index() SymbolIndex {
	return s.index
}

// FindSymbol returns all recorded usages of a symbol, in parse order.
// An unknown symbol yields an empty slice: absence is a valid answer.
func (s *Scanner) FindSymbol(name string) []UsageRecord {
	usages, ok := s.index[name]
	if !ok {
		return []UsageRecord{}
	}
	return usages
}

// Scan walks root for files matching pattern and folds their symbol usages
// into the index. The pattern is a glob matched against file base names
// (e.g. "*.py"); an empty pattern matches every file of a registered
// language. One file's parse failure never aborts the scan.
func (s *Scanner) Scan(ctx context.Context, root, pattern string) (*ScanReport, error) {
	slog.Info("scan.start", "root", root, "pattern", pattern)

	files, err := discoverFiles(ctx, root, pattern)
	if err != nil {
		return nil, err
	}

	report := &ScanReport{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.FilesScanned++
		if err := s.scanFile(f.Path, f.Language); err != nil {
			slog.Warn("scan.file_skipped", "path", f.Path, "err", err)
			report.ParseFailures++
			report.Files = append(report.Files, FileResult{Path: f.Path, Error: err.Error()})
			continue
		}
		report.Files = append(report.Files, FileResult{Path: f.Path})
	}

	slog.Info("scan.done", "files", report.FilesScanned, "parse_failures", report.ParseFailures, "symbols", len(s.index))
	return report, nil
}

// AnalyzeSingleFile runs the extraction pipeline over an in-memory body,
// recording usages under logicalName as the file path. Used for remote
// single-file targets fetched without cloning. The language is detected
// from logicalName's extension.
func (s *Scanner) AnalyzeSingleFile(content []byte, logicalName string) (*ScanReport, error) {
	spec := lang.ForExtension(filepath.Ext(logicalName))
	if spec == nil {
		return nil, fmt.Errorf("unsupported file type: %s", logicalName)
	}

	report := &ScanReport{FilesScanned: 1}
	if err := s.extract(logicalName, content, spec); err != nil {
		report.ParseFailures++
		report.Files = append(report.Files, FileResult{Path: logicalName, Error: err.Error()})
		return report, nil
	}
	report.Files = append(report.Files, FileResult{Path: logicalName})
	return report, nil
}

func (s *Scanner) scanFile(path string, language lang.Language) error {
	spec := lang.ForLanguage(language)
	if spec == nil {
		return fmt.Errorf("no language spec for %s", language)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	return s.extract(path, source, spec)
}

func (s *Scanner) add(symbol string, rec UsageRecord) {
	s.index[symbol] = append(s.index[symbol], rec)
}
