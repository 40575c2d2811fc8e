package lang

func init() {
	Register(&LanguageSpec{
		Language:            Lua,
		FileExtensions:      []string{".lua"},
		DefinitionNodeTypes: []string{"function_declaration"},
		CallNodeTypes:       []string{"function_call"},
		ImportNodeTypes:     []string{},
		ImportFromTypes:     []string{},
		ReferenceNodeTypes:  []string{"identifier"},
	})
}
