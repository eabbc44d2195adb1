package mock

import "github.com/fwojciec/diffinsight"

// Compile-time interface verification.
var (
	_ diffinsight.Tokenizer        = (*Tokenizer)(nil)
	_ diffinsight.LanguageDetector = (*LanguageDetector)(nil)
)

// Tokenizer is a mock implementation of diffinsight.Tokenizer.
type Tokenizer struct {
	TokenizeLinesFn func(language, source string) [][]diffinsight.Token
}

func (t *Tokenizer) TokenizeLines(language, source string) [][]diffinsight.Token {
	return t.TokenizeLinesFn(language, source)
}

// LanguageDetector is a mock implementation of diffinsight.LanguageDetector.
type LanguageDetector struct {
	DetectFn func(hint, source string) string
}

func (d *LanguageDetector) Detect(hint, source string) string {
	return d.DetectFn(hint, source)
}
