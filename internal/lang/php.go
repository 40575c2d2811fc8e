package lang

func init() {
	Register(&LanguageSpec{
		Language:       PHP,
		FileExtensions: []string{".php"},
		DefinitionNodeTypes: []string{
			"function_definition",
			"method_declaration",
			"class_declaration",
			"interface_declaration",
			"trait_declaration",
			"enum_declaration",
		},
		CallNodeTypes: []string{
			"function_call_expression",
			"member_call_expression",
			"scoped_call_expression",
			"nullsafe_member_call_expression",
		},
		ImportNodeTypes:    []string{"namespace_use_declaration", "require_expression", "include_expression"},
		ImportFromTypes:    []string{"namespace_use_declaration"},
		ReferenceNodeTypes: []string{"name"},
	})
}
