package lang

// Language represents a supported programming language.
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	Go         Language = "go"
	Rust       Language = "rust"
	Java       Language = "java"
	CPP        Language = "cpp"
	CSharp     Language = "c-sharp"
	PHP        Language = "php"
	Lua        Language = "lua"
	Scala      Language = "scala"
	Kotlin     Language = "kotlin"
)

// AllLanguages returns all supported languages.
func AllLanguages() []Language {
	return []Language{Python, JavaScript, TypeScript, TSX, Go, Rust, Java, CPP, CSharp, PHP, Lua, Scala, Kotlin}
}

// LanguageSpec defines the tree-sitter node kinds the scanner inspects
// when classifying symbol usages for a language.
type LanguageSpec struct {
	Language       Language
	FileExtensions []string

	// DefinitionNodeTypes are function/method/class declaration kinds. The
	// declared name is taken from the node's "name" field; anonymous forms
	// (lambdas, closures) have none and are skipped.
	DefinitionNodeTypes []string
	// CallNodeTypes are call/invocation expression kinds.
	CallNodeTypes []string
	// ImportNodeTypes and ImportFromTypes are import statement kinds
	// (plain and from-style where the language distinguishes them).
	ImportNodeTypes []string
	ImportFromTypes []string
	// ReferenceNodeTypes are bare identifier kinds counted as references
	// when they appear outside definitions, imports, and callee positions.
	ReferenceNodeTypes []string
}

// registry maps file extensions to language specs.
var registry = map[string]*LanguageSpec{}

// Register adds a LanguageSpec to the global registry.
func Register(spec *LanguageSpec) {
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// ForExtension returns the LanguageSpec for a file extension (e.g. ".py").
func ForExtension(ext string) *LanguageSpec {
	return registry[ext]
}

// ForLanguage returns the LanguageSpec for a language.
func ForLanguage(lang Language) *LanguageSpec {
	for _, spec := range registry {
		if spec.Language == lang {
			return spec
		}
	}
	return nil
}

// LanguageForExtension returns the Language for a file extension.
func LanguageForExtension(ext string) (Language, bool) {
	spec := registry[ext]
	if spec == nil {
		return "", false
	}
	return spec.Language, true
}
