package lang

func init() {
	Register(&LanguageSpec{
		Language:       CSharp,
		FileExtensions: []string{".cs"},
		DefinitionNodeTypes: []string{
			"method_declaration",
			"constructor_declaration",
			"destructor_declaration",
			"local_function_statement",
			"class_declaration",
			"struct_declaration",
			"enum_declaration",
			"interface_declaration",
		},
		CallNodeTypes:      []string{"invocation_expression"},
		ImportNodeTypes:    []string{"using_directive"},
		ImportFromTypes:    []string{"using_directive"},
		ReferenceNodeTypes: []string{"identifier"},
	})
}
