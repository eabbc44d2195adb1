package diffinsight

// Token represents a syntax-highlighted segment of code.
type Token struct {
	Text  string // The text content of this token
	Style Style  // Visual style to apply (colors, bold, etc.)
}

// Style represents the visual styling for a token.
type Style struct {
	Foreground string // Hex color code (e.g., "#ff0000") or empty for default
	Bold       bool   // Whether the text should be bold
}

// Tokenizer extracts syntax tokens from source code.
type Tokenizer interface {
	// TokenizeLines tokenizes source with full context and returns the tokens
	// of each line. Returns nil if the language is not supported.
	TokenizeLines(language, source string) [][]Token
}

// LanguageDetector determines the programming language of pasted code.
type LanguageDetector interface {
	// Detect returns the language name for source, using hint (a language
	// name or file name) when it is recognised. Returns an empty string if the
	// language cannot be determined.
	Detect(hint, source string) string
}
