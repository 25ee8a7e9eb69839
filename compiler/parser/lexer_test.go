package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, src string) []token {
	t.Helper()
	toks, err := newLexer(src).tokens()
	require.NoError(t, err)
	return toks
}

func kindsOf(toks []token) []tokKind {
	out := make([]tokKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.kind
	}
	return out
}

func TestLexNames(t *testing.T) {
	toks := lex(t, "a+b c _+_ _ x1'")
	assert.Equal(t,
		[]tokKind{tokName, tokName, tokName, tokUnderscore, tokName, tokEOF},
		kindsOf(toks))
	assert.Equal(t, "a+b", toks[0].text)
	assert.Equal(t, "_+_", toks[2].text)
	assert.Equal(t, "x1'", toks[4].text)
}

func TestLexReservedSymbols(t *testing.T) {
	toks := lex(t, `f : A -> B = \x → y`)
	assert.Equal(t,
		[]tokKind{tokName, tokColon, tokName, tokArrow, tokName, tokEquals,
			tokLambda, tokName, tokArrow, tokName, tokEOF},
		kindsOf(toks))
}

func TestLexSymbolsBindTight(t *testing.T) {
	// Reserved symbols are only reserved as whole tokens.
	toks := lex(t, "x:y x=y x->y")
	assert.Equal(t, []tokKind{tokName, tokName, tokName, tokEOF}, kindsOf(toks))
	assert.Equal(t, "x->y", toks[2].text)
}

func TestLexQualifiedName(t *testing.T) {
	toks := lex(t, "Prelude.List.map")
	require.Len(t, toks, 2)
	assert.Equal(t, tokName, toks[0].kind)
	assert.Equal(t, "Prelude.List.map", toks[0].text)
}

func TestLexNFCNormalization(t *testing.T) {
	// e followed by a combining acute accent normalizes to the single
	// rune form.
	toks := lex(t, "é")
	assert.Equal(t, "é", toks[0].text)
}

func TestLexComments(t *testing.T) {
	toks := lex(t, "f -- rest of line\n{- block {- nested -} still -}g")
	assert.Equal(t, []tokKind{tokName, tokName, tokEOF}, kindsOf(toks))
	assert.Equal(t, "g", toks[1].text)
	assert.Equal(t, 2, toks[1].line)
}

func TestLexCommentStopsName(t *testing.T) {
	toks := lex(t, "x--y")
	assert.Equal(t, []tokKind{tokName, tokEOF}, kindsOf(toks))
	assert.Equal(t, "x", toks[0].text)
}

func TestLexPragma(t *testing.T) {
	toks := lex(t, "{-# OPTIONS safe #-}")
	require.Equal(t, tokPragma, toks[0].kind)
	assert.Equal(t, "OPTIONS safe", toks[0].text)
}

func TestLexLiterals(t *testing.T) {
	toks := lex(t, `42 3.14 "hi \" there"`)
	assert.Equal(t, []tokKind{tokNumber, tokNumber, tokString, tokEOF}, kindsOf(toks))
	assert.Equal(t, "3.14", toks[1].text)
	assert.Equal(t, `"hi \" there"`, toks[2].text)
}

func TestLexBrackets(t *testing.T) {
	toks := lex(t, "(x){y};")
	assert.Equal(t,
		[]tokKind{tokLParen, tokName, tokRParen, tokLBrace, tokName, tokRBrace,
			tokSemi, tokEOF},
		kindsOf(toks))
}

func TestLexPositions(t *testing.T) {
	toks := lex(t, "ab cd\n  ef")
	assert.Equal(t, 1, toks[0].line)
	assert.Equal(t, 1, toks[0].col)
	assert.Equal(t, 4, toks[1].col)
	assert.Equal(t, 2, toks[2].line)
	assert.Equal(t, 3, toks[2].col)
	assert.Equal(t, 8, toks[2].pos)
	assert.Equal(t, 10, toks[2].end)
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`"abc`, "unterminated string literal"},
		{"{- abc", "unterminated comment"},
		{"{-# abc", "unterminated pragma"},
	}
	for _, c := range cases {
		_, err := newLexer(c.src).tokens()
		assert.ErrorContains(t, err, c.want, "source: %q", c.src)
	}
}
