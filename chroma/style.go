package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/diffinsight"
)

// StyleFromPalette returns a function that maps chroma token types to
// diffinsight styles using the palette's syntax colors.
func StyleFromPalette(p diffinsight.Palette) StyleFunc {
	return func(tt chromalib.TokenType) diffinsight.Style {
		switch {
		// Type keywords before the keyword category, which contains them.
		case tt == chromalib.KeywordType:
			return diffinsight.Style{Foreground: string(p.Type), Bold: true}
		case tt.InCategory(chromalib.Keyword):
			return diffinsight.Style{Foreground: string(p.Keyword), Bold: true}
		case tt.InCategory(chromalib.Comment):
			return diffinsight.Style{Foreground: string(p.Comment)}
		case tt.InSubCategory(chromalib.LiteralString):
			return diffinsight.Style{Foreground: string(p.String)}
		case tt.InSubCategory(chromalib.LiteralNumber):
			return diffinsight.Style{Foreground: string(p.Number)}
		case tt.InCategory(chromalib.Operator):
			return diffinsight.Style{Foreground: string(p.Operator)}
		case tt == chromalib.NameFunction, tt == chromalib.NameFunctionMagic:
			return diffinsight.Style{Foreground: string(p.Function)}
		case tt == chromalib.NameConstant, tt == chromalib.NameBuiltin:
			return diffinsight.Style{Foreground: string(p.Constant)}
		case tt.InCategory(chromalib.Punctuation):
			return diffinsight.Style{Foreground: string(p.Punctuation)}
		default:
			return diffinsight.Style{}
		}
	}
}
