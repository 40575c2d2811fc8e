package lang

func init() {
	Register(&LanguageSpec{
		Language:            Python,
		FileExtensions:      []string{".py"},
		DefinitionNodeTypes: []string{"function_definition", "class_definition"},
		CallNodeTypes:       []string{"call"},
		ImportNodeTypes:     []string{"import_statement"},
		ImportFromTypes:     []string{"import_from_statement"},
		ReferenceNodeTypes:  []string{"identifier"},
	})
}
