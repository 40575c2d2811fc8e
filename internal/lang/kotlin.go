package lang

func init() {
	Register(&LanguageSpec{
		Language:       Kotlin,
		FileExtensions: []string{".kt", ".kts"},
		DefinitionNodeTypes: []string{
			"function_declaration",
			"class_declaration",
			"object_declaration",
		},
		CallNodeTypes:      []string{"call_expression"},
		ImportNodeTypes:    []string{"import"},
		ImportFromTypes:    []string{"import"},
		ReferenceNodeTypes: []string{"simple_identifier"},
	})
}
