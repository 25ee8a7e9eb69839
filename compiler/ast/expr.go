package ast

// Expr is the interface implemented by all surface expression nodes.
// Expressions double as left-hand-side patterns and as types: the parser
// does not yet know which role a tree plays, and operator structure inside
// a RawApp is not resolved until after declarations have been grouped.
type Expr interface {
	Node
	ExprAST()
}

type (
	// An ID is a use occurrence of a possibly qualified identifier.
	ID struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
		Loc  `json:"loc"`
	}
	// A Lit is a numeric or string literal carried as written.
	Lit struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
		Loc  `json:"loc"`
	}
	// A RawApp is a juxtaposition spine e1 e2 ... en whose operator
	// structure has not been resolved.  Fixity-aware re-parsing of the
	// spine happens after declaration grouping, so a RawApp may hold
	// operator names as ordinary elements.  The parser emits spines of
	// two or more elements; singleton spines arise only from rewrites
	// and are treated as redundant wrappers around their element.
	RawApp struct {
		Kind  string `json:"kind"`
		Exprs []Expr `json:"exprs"`
		Loc   `json:"loc"`
	}
	// A Paren is an explicitly parenthesized expression.  It is kept in
	// the tree because grouping is significant to the clause-matching
	// rules applied before operator parsing.
	Paren struct {
		Kind string `json:"kind"`
		Expr Expr   `json:"expr"`
		Loc  `json:"loc"`
	}
	// A Wildcard is the underscore expression: an unknown type or an
	// ignored pattern position.
	Wildcard struct {
		Kind string `json:"kind"`
		Loc  `json:"loc"`
	}
	// An Arrow is the non-dependent function type From -> To.
	Arrow struct {
		Kind string `json:"kind"`
		From Expr   `json:"from"`
		To   Expr   `json:"to"`
		Loc  `json:"loc"`
	}
	// A Pi is the dependent function type (x y : A) -> B with one or
	// more typed binding groups to the left of the arrow.
	Pi struct {
		Kind string         `json:"kind"`
		Tel  []TypedBinding `json:"tel"`
		Body Expr           `json:"body"`
		Loc  `json:"loc"`
	}
	// A Lam is a lambda abstraction \x y -> e.
	Lam struct {
		Kind   string  `json:"kind"`
		Params []*Name `json:"params"`
		Body   Expr    `json:"body"`
		Loc    `json:"loc"`
	}
)

func (*ID) ExprAST()       {}
func (*Lit) ExprAST()      {}
func (*RawApp) ExprAST()   {}
func (*Paren) ExprAST()    {}
func (*Wildcard) ExprAST() {}
func (*Arrow) ExprAST()    {}
func (*Pi) ExprAST()       {}
func (*Lam) ExprAST()      {}

// A TypedBinding is one parenthesized telescope group (x y : A).  Names is
// nil for an anonymous group (A), which binds a generated placeholder when
// the telescope is flattened.
type TypedBinding struct {
	Kind  string  `json:"kind"`
	Names []*Name `json:"names"`
	Type  Expr    `json:"type"`
	Loc   `json:"loc"`
}

// Binders returns the names bound by one telescope group, generating a
// placeholder for an anonymous group so every group binds at least once.
func (b TypedBinding) Binders() []*Name {
	if len(b.Names) == 0 {
		return []*Name{NoName(LocOf(b.Type))}
	}
	return b.Names
}

// SpineHead unwraps redundant singleton application spines and returns the
// expression they surround.  A parenthesized expression is not unwrapped:
// grouping was written by the user and changes how a left-hand side reads.
func SpineHead(e Expr) Expr {
	for {
		app, ok := e.(*RawApp)
		if !ok || len(app.Exprs) != 1 {
			return e
		}
		e = app.Exprs[0]
	}
}
