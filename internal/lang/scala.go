package lang

func init() {
	Register(&LanguageSpec{
		Language:       Scala,
		FileExtensions: []string{".scala", ".sc"},
		DefinitionNodeTypes: []string{
			"function_definition",
			"function_declaration",
			"class_definition",
			"object_definition",
			"trait_definition",
		},
		CallNodeTypes:      []string{"call_expression"},
		ImportNodeTypes:    []string{"import_declaration"},
		ImportFromTypes:    []string{"import_declaration"},
		ReferenceNodeTypes: []string{"identifier"},
	})
}
