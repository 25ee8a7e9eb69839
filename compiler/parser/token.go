package parser

import "strconv"

type tokKind int

const (
	tokEOF tokKind = iota
	tokName
	tokNumber
	tokString
	tokPragma

	tokWhere
	tokData
	tokMutual
	tokAbstract
	tokPrivate
	tokPostulate
	tokPrimitive
	tokModule
	tokOpen
	tokImport
	tokFixity

	tokColon
	tokEquals
	tokArrow
	tokLambda
	tokUnderscore

	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokSemi

	// Inserted by the layout pass; never produced by the lexer.
	tokVLBrace
	tokVRBrace
	tokVSemi
)

// keywords maps the reserved words and reserved symbols to their kinds.
// Reserved symbols are ordinary name runes, so they are reserved only
// when they make up a whole token: "x:y" is a name, "x : y" is three
// tokens.
var keywords = map[string]tokKind{
	"where":     tokWhere,
	"data":      tokData,
	"mutual":    tokMutual,
	"abstract":  tokAbstract,
	"private":   tokPrivate,
	"postulate": tokPostulate,
	"primitive": tokPrimitive,
	"module":    tokModule,
	"open":      tokOpen,
	"import":    tokImport,
	"infix":     tokFixity,
	"infixl":    tokFixity,
	"infixr":    tokFixity,
	":":         tokColon,
	"=":         tokEquals,
	"->":        tokArrow,
	"→":         tokArrow,
	"λ":         tokLambda,
	"_":         tokUnderscore,
}

// A token is one lexeme.  pos and end delimit it in the source buffer,
// end exclusive; line and col locate its first rune and drive the layout
// pass.  Virtual tokens are zero width.
type token struct {
	kind tokKind
	text string
	pos  int
	end  int
	line int
	col  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokVLBrace:
		return "start of block"
	case tokVRBrace:
		return "end of block"
	case tokVSemi:
		return "end of declaration"
	}
	return strconv.Quote(t.text)
}
