package lang

// KeywordOrBuiltin returns true for language keywords and common builtins
// that should not be treated as symbol references.
func KeywordOrBuiltin(name string, language Language) bool {
	// Single-character identifiers are noise
	if len(name) <= 1 {
		return true
	}

	// Common cross-language keywords
	switch name {
	case "if", "else", "for", "while", "return", "break", "continue",
		"switch", "case", "default", "try", "catch", "finally",
		"throw", "throws", "new", "delete", "this", "self", "super",
		"true", "false", "nil", "null", "None", "True", "False",
		"var", "let", "const", "int", "string", "bool", "float",
		"void", "byte", "rune", "error", "any", "interface",
		"class", "struct", "enum", "type", "func", "def", "fn",
		"import", "from", "as", "package", "module",
		"public", "private", "protected", "static", "final",
		"async", "await", "yield", "defer", "go", "chan",
		"range", "map", "make", "append", "len", "cap",
		"undefined":
		return true
	}

	// Language-specific builtins
	switch language {
	case Go:
		switch name {
		case "iota", "copy", "close", "panic", "recover", "print", "println",
			"int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64",
			"float32", "float64", "complex64", "complex128",
			"uintptr":
			return true
		}
	case Python:
		switch name {
		case "print", "isinstance", "enumerate", "zip", "filter",
			"sorted", "reversed", "open", "input",
			"str", "dict", "list", "tuple", "set",
			"Exception", "ValueError", "TypeError", "KeyError",
			"IndexError", "AttributeError", "RuntimeError",
			"classmethod", "staticmethod", "property",
			"abstractmethod":
			return true
		}
	case JavaScript, TypeScript, TSX:
		switch name {
		case "Math", "Object", "Array", "String", "Number", "Boolean",
			"console", "document", "window", "JSON", "Promise":
			return true
		}
	}

	return false
}
