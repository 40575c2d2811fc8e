package lang

func init() {
	Register(&LanguageSpec{
		Language:       Rust,
		FileExtensions: []string{".rs"},
		DefinitionNodeTypes: []string{
			"function_item",
			"function_signature_item",
			"struct_item",
			"enum_item",
			"union_item",
			"trait_item",
			"type_item",
		},
		CallNodeTypes:      []string{"call_expression", "macro_invocation"},
		ImportNodeTypes:    []string{"use_declaration", "extern_crate_declaration"},
		ImportFromTypes:    []string{"use_declaration"},
		ReferenceNodeTypes: []string{"identifier"},
	})
}
