package lang

func init() {
	Register(&LanguageSpec{
		Language:       JavaScript,
		FileExtensions: []string{".js", ".jsx"},
		DefinitionNodeTypes: []string{
			"function_declaration",
			"generator_function_declaration",
			"method_definition",
			"class_declaration",
		},
		CallNodeTypes:      []string{"call_expression"},
		ImportNodeTypes:    []string{"import_statement"},
		ImportFromTypes:    []string{"import_statement"},
		ReferenceNodeTypes: []string{"identifier"},
	})
}
