package scanner

// UsageBreakdown counts a symbol's usages by kind.
type UsageBreakdown struct {
	Imports     int `json:"imports"`
	Calls       int `json:"calls"`
	References  int `json:"references"`
	Definitions int `json:"definitions"`
}

// Impact aggregates usage and graph data for one symbol.
type Impact struct {
	Symbol        string         `json:"symbol"`
	TotalUsages   int            `json:"total_usages"`
	AffectedFiles []string       `json:"affected_files"`
	FileCount     int            `json:"file_count"`
	Breakdown     UsageBreakdown `json:"usage_breakdown"`
	Dependencies  []string       `json:"dependencies"`
	Dependents    []string       `json:"dependents"`
}

// AnalyzeImpact computes the impact of changing a symbol. It is a pure
// function over the index plus a freshly built graph; TotalUsages always
// equals the sum of the per-kind counts.
func AnalyzeImpact(index SymbolIndex, symbol string) *Impact {
	usages := index[symbol]
	graph := BuildGraph(index)

	impact := &Impact{
		Symbol:        symbol,
		TotalUsages:   len(usages),
		AffectedFiles: []string{},
	}

	seen := make(map[string]bool)
	for _, u := range usages {
		if !seen[u.FilePath] {
			seen[u.FilePath] = true
			impact.AffectedFiles = append(impact.AffectedFiles, u.FilePath)
		}
		switch u.Kind {
		case KindImport:
			impact.Breakdown.Imports++
		case KindCall:
			impact.Breakdown.Calls++
		case KindReference:
			impact.Breakdown.References++
		case KindDefinition:
			impact.Breakdown.Definitions++
		}
	}
	impact.FileCount = len(impact.AffectedFiles)

	if node, ok := graph[symbol]; ok {
		impact.Dependencies = node.Dependencies
		impact.Dependents = node.Dependents
	}

	return impact
}
