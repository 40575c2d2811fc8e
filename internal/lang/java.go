package lang

func init() {
	Register(&LanguageSpec{
		Language:       Java,
		FileExtensions: []string{".java"},
		DefinitionNodeTypes: []string{
			"method_declaration",
			"constructor_declaration",
			"class_declaration",
			"interface_declaration",
			"enum_declaration",
			"annotation_type_declaration",
			"record_declaration",
		},
		CallNodeTypes:      []string{"method_invocation"},
		ImportNodeTypes:    []string{"import_declaration"},
		ImportFromTypes:    []string{"import_declaration"},
		ReferenceNodeTypes: []string{"identifier"},
	})
}
