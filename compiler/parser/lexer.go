package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// The lexer scans Fern source into tokens.  Names are maximal runs of
// printable runes, so any operator lexes without being declared and
// applications of symbolic names are written with spaces: "a + b" is
// three names, "a+b" is one.  The runes ( ) { } ; " \ always stand
// alone, "--" starts a line comment, "{-" a nested block comment, and
// "{-#" a pragma.  Name tokens are normalized to NFC so that visually
// identical identifiers compare equal.
type lexer struct {
	src  string
	off  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

// tokens scans the whole buffer, ending with an EOF token.  Scanning
// stops at the first lexical error.
func (lx *lexer) tokens() ([]token, error) {
	var out []token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.kind == tokEOF {
			return out, nil
		}
	}
}

func (lx *lexer) next() (token, error) {
	if err := lx.skipSpace(); err != nil {
		return token{}, err
	}
	pos, line, col := lx.off, lx.line, lx.col
	if lx.off >= len(lx.src) {
		return token{kind: tokEOF, pos: pos, end: pos, line: line, col: col}, nil
	}
	r := lx.peek()
	switch {
	case r == '(':
		lx.bump()
		return lx.tok(tokLParen, pos, line, col), nil
	case r == ')':
		lx.bump()
		return lx.tok(tokRParen, pos, line, col), nil
	case r == '{':
		if lx.byteAt(1) == '-' {
			return lx.scanPragma(pos, line, col)
		}
		lx.bump()
		return lx.tok(tokLBrace, pos, line, col), nil
	case r == '}':
		lx.bump()
		return lx.tok(tokRBrace, pos, line, col), nil
	case r == ';':
		lx.bump()
		return lx.tok(tokSemi, pos, line, col), nil
	case r == '\\':
		lx.bump()
		return lx.tok(tokLambda, pos, line, col), nil
	case r == '"':
		return lx.scanString(pos, line, col)
	case r >= '0' && r <= '9':
		return lx.scanNumber(pos, line, col), nil
	default:
		return lx.scanName(pos, line, col)
	}
}

// skipSpace consumes whitespace and comments.  It leaves a pragma opener
// in place: pragmas are tokens, not trivia.
func (lx *lexer) skipSpace() error {
	for lx.off < len(lx.src) {
		r := lx.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			lx.bump()
		case r == '-' && lx.byteAt(1) == '-':
			for lx.off < len(lx.src) && lx.peek() != '\n' {
				lx.bump()
			}
		case r == '{' && lx.byteAt(1) == '-':
			if lx.byteAt(2) == '#' {
				return nil
			}
			if err := lx.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) skipComment() error {
	pos := lx.off
	lx.bump()
	lx.bump()
	for depth := 1; depth > 0; {
		if lx.off >= len(lx.src) {
			return &parseError{"unterminated comment", pos, pos + 2}
		}
		switch {
		case lx.peek() == '{' && lx.byteAt(1) == '-':
			depth++
			lx.bump()
			lx.bump()
		case lx.peek() == '-' && lx.byteAt(1) == '}':
			depth--
			lx.bump()
			lx.bump()
		default:
			lx.bump()
		}
	}
	return nil
}

func (lx *lexer) scanPragma(pos, line, col int) (token, error) {
	lx.bump()
	lx.bump()
	lx.bump()
	start := lx.off
	for {
		if lx.off >= len(lx.src) {
			return token{}, &parseError{"unterminated pragma", pos, pos + 3}
		}
		if lx.peek() == '#' && lx.byteAt(1) == '-' && lx.byteAt(2) == '}' {
			break
		}
		lx.bump()
	}
	text := strings.TrimSpace(lx.src[start:lx.off])
	lx.bump()
	lx.bump()
	lx.bump()
	return token{kind: tokPragma, text: text, pos: pos, end: lx.off, line: line, col: col}, nil
}

func (lx *lexer) scanString(pos, line, col int) (token, error) {
	lx.bump()
	for {
		if lx.off >= len(lx.src) || lx.peek() == '\n' {
			return token{}, &parseError{"unterminated string literal", pos, lx.off}
		}
		r := lx.peek()
		lx.bump()
		if r == '\\' && lx.off < len(lx.src) {
			lx.bump()
			continue
		}
		if r == '"' {
			break
		}
	}
	return lx.tok(tokString, pos, line, col), nil
}

func (lx *lexer) scanNumber(pos, line, col int) token {
	for lx.off < len(lx.src) && isDigit(lx.peek()) {
		lx.bump()
	}
	if lx.peek() == '.' && isDigit(rune(lx.byteAt(1))) {
		lx.bump()
		for lx.off < len(lx.src) && isDigit(lx.peek()) {
			lx.bump()
		}
	}
	return lx.tok(tokNumber, pos, line, col)
}

func (lx *lexer) scanName(pos, line, col int) (token, error) {
	for lx.off < len(lx.src) {
		r := lx.peek()
		if !isNameRune(r) {
			break
		}
		if r == '-' && lx.byteAt(1) == '-' {
			break
		}
		lx.bump()
	}
	if lx.off == pos {
		return token{}, &parseError{"invalid character in source", pos, lx.off + 1}
	}
	text := norm.NFC.String(lx.src[pos:lx.off])
	kind := tokName
	if k, ok := keywords[text]; ok {
		kind = k
	}
	return token{kind: kind, text: text, pos: pos, end: lx.off, line: line, col: col}, nil
}

func (lx *lexer) tok(kind tokKind, pos, line, col int) token {
	return token{kind: kind, text: lx.src[pos:lx.off], pos: pos, end: lx.off, line: line, col: col}
}

func (lx *lexer) peek() rune {
	r, _ := utf8.DecodeRuneInString(lx.src[lx.off:])
	return r
}

// byteAt looks ahead i bytes, for the ASCII digraph checks.
func (lx *lexer) byteAt(i int) byte {
	if lx.off+i >= len(lx.src) {
		return 0
	}
	return lx.src[lx.off+i]
}

func (lx *lexer) bump() {
	r, size := utf8.DecodeRuneInString(lx.src[lx.off:])
	lx.off += size
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isNameRune(r rune) bool {
	switch r {
	case '(', ')', '{', '}', ';', '"', '\\':
		return false
	}
	return !unicode.IsSpace(r) && unicode.IsGraphic(r)
}
