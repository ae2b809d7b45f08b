// Package search implements the weighted, stemmed term index behind recipe
// search and the embedding used to find similar recipes.
package search

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// maxLexemeLen matches the width of recipe_search_terms.lexeme.
const maxLexemeLen = 100

// Token is a lexeme and its position in the analyzed text.
type Token struct {
	Lexeme   string
	Position int
}

// Analyze lowercases text, splits it on anything that is not a letter or a
// digit, drops English stop words and stems what is left. Positions count
// every word, stop words included.
func Analyze(text string) []Token {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]Token, 0, len(words))
	for i, w := range words {
		if english.IsStopWord(w) {
			continue
		}
		lex := english.Stem(w, false)
		if lex == "" || len(lex) > maxLexemeLen {
			continue
		}
		tokens = append(tokens, Token{Lexeme: lex, Position: i})
	}
	return tokens
}

// QueryLexemes returns the distinct lexemes of a search query in first-seen
// order. An empty result means the query cannot match anything.
func QueryLexemes(query string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range Analyze(query) {
		if _, ok := seen[tok.Lexeme]; ok {
			continue
		}
		seen[tok.Lexeme] = struct{}{}
		out = append(out, tok.Lexeme)
	}
	return out
}
