package lang

func init() {
	Register(&LanguageSpec{
		Language:       CPP,
		FileExtensions: []string{".cpp", ".h", ".hpp", ".cc", ".cxx", ".hxx", ".hh"},
		DefinitionNodeTypes: []string{
			"function_definition",
			"class_specifier",
			"struct_specifier",
			"union_specifier",
			"enum_specifier",
		},
		CallNodeTypes:      []string{"call_expression"},
		ImportNodeTypes:    []string{"preproc_include"},
		ImportFromTypes:    []string{"preproc_include"},
		ReferenceNodeTypes: []string{"identifier"},
	})
}
