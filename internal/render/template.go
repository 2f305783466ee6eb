// Package render expands display templates against items.
//
// A template is split into word tokens (maximal runs of ASCII letters,
// digits and underscores) and literal text. Each word token that names a
// field present on the item is replaced by the field's value; every other
// character is copied through unchanged. The output is not escaped: callers
// that display untrusted item data as rich text must sanitize it themselves.
package render

import (
	"strings"

	"remoteselect/internal/domain"
)

// TokenKind distinguishes field-name candidates from literal text
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenWord
)

// Token is one piece of a tokenized template
type Token struct {
	Kind TokenKind
	Text string
}

// Template is a pre-tokenized display template
type Template struct {
	source string
	tokens []Token
}

// Compile tokenizes a template once so it can be rendered repeatedly
func Compile(source string) Template {
	return Template{source: source, tokens: Tokenize(source)}
}

// Source returns the original template text
func (t Template) Source() string {
	return t.source
}

// Tokens returns a copy of the template's tokens
func (t Template) Tokens() []Token {
	out := make([]Token, len(t.tokens))
	copy(out, t.tokens)
	return out
}

// Render expands the template against item
func (t Template) Render(item domain.Item) string {
	var b strings.Builder
	b.Grow(len(t.source))
	for _, tok := range t.tokens {
		if tok.Kind == TokenWord {
			if v, ok := item.FieldString(tok.Text); ok {
				b.WriteString(v)
				continue
			}
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

// Render expands template against item in one call
func Render(template string, item domain.Item) string {
	return Compile(template).Render(item)
}

// Tokenize splits a template into alternating word and literal tokens
func Tokenize(source string) []Token {
	var tokens []Token
	start := 0
	for start < len(source) {
		word := isWordByte(source[start])
		end := start + 1
		for end < len(source) && isWordByte(source[end]) == word {
			end++
		}
		kind := TokenLiteral
		if word {
			kind = TokenWord
		}
		tokens = append(tokens, Token{Kind: kind, Text: source[start:end]})
		start = end
	}
	return tokens
}

// isWordByte matches the ASCII word class [A-Za-z0-9_]. Bytes of multi-byte
// UTF-8 sequences are never word bytes, so non-ASCII text stays literal.
func isWordByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
