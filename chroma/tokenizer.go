// Package chroma provides syntax highlighting and language detection using
// the chroma library.
package chroma

import (
	"errors"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/diffinsight"
)

// Compile-time interface verification.
var _ diffinsight.Tokenizer = (*Tokenizer)(nil)

// StyleFunc maps chroma token types to diffinsight styles.
type StyleFunc func(chromalib.TokenType) diffinsight.Style

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct {
	styleFunc StyleFunc
}

// NewTokenizer creates a new chroma-based tokenizer with the given style function.
// Use StyleFromPalette to create a style function from a diffinsight.Palette.
func NewTokenizer(styleFunc StyleFunc) (*Tokenizer, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	return &Tokenizer{styleFunc: styleFunc}, nil
}

// TokenizeLines tokenizes source with full context, then splits the tokens
// by line so multi-line constructs like block comments stay highlighted.
// Returns nil if the language is not supported or lexing fails.
// Returns an empty slice for empty source.
func (t *Tokenizer) TokenizeLines(language, source string) [][]diffinsight.Token {
	if source == "" {
		return [][]diffinsight.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	lexer = chromalib.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	lines := [][]diffinsight.Token{nil}
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		style := t.styleFunc(token.Type)
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], diffinsight.Token{Text: part, Style: style})
			}
		}
	}

	// Chroma terminates input with a newline; drop the empty line it opens.
	if !strings.HasSuffix(source, "\n") && len(lines) > 1 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}
