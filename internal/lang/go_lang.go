package lang

func init() {
	Register(&LanguageSpec{
		Language:            Go,
		FileExtensions:      []string{".go"},
		DefinitionNodeTypes: []string{"function_declaration", "method_declaration", "type_spec"},
		CallNodeTypes:       []string{"call_expression"},
		ImportNodeTypes:     []string{"import_declaration"},
		ImportFromTypes:     []string{"import_declaration"},
		ReferenceNodeTypes:  []string{"identifier"},
	})
}
