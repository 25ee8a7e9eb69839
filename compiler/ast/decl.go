package ast

// Decl is the interface implemented by all raw declaration nodes.  A raw
// declaration is one parsed surface item, in textual order, before the
// grouping pass has matched signatures to clauses or flattened block
// modifiers.
type Decl interface {
	Node
	DeclAST()
}

type (
	// A TypeSig declares the type of a name: "x : T".
	TypeSig struct {
		Kind string `json:"kind"`
		Name *Name  `json:"name"`
		Type Expr   `json:"type"`
		Loc  `json:"loc"`
	}
	// A FunClause is one defining equation "lhs = rhs" with an optional
	// where-block of local declarations.  The left-hand side is an
	// unresolved expression; which name it defines is not known until
	// the grouping pass (and is verified even later).
	FunClause struct {
		Kind  string `json:"kind"`
		LHS   Expr   `json:"lhs"`
		RHS   Expr   `json:"rhs"`
		Where []Decl `json:"where"`
		Loc   `json:"loc"`
	}
	// A DataDecl declares an inductive data type with a parameter
	// telescope, a sort, and constructor signatures.  The parser admits
	// only type signatures in the constructor block.
	DataDecl struct {
		Kind   string         `json:"kind"`
		Name   *Name          `json:"name"`
		Params []TypedBinding `json:"params"`
		Sort   Expr           `json:"sort"`
		Ctors  []Decl         `json:"ctors"`
		Loc    `json:"loc"`
	}
	// A Mutual block groups declarations that may refer to each other.
	Mutual struct {
		Kind  string `json:"kind"`
		Decls []Decl `json:"decls"`
		Loc   `json:"loc"`
	}
	// An Abstract block hides the definitions it encloses from outside
	// the enclosing module.
	Abstract struct {
		Kind  string `json:"kind"`
		Decls []Decl `json:"decls"`
		Loc   `json:"loc"`
	}
	// A Private block restricts the names it encloses to the enclosing
	// module.
	Private struct {
		Kind  string `json:"kind"`
		Decls []Decl `json:"decls"`
		Loc   `json:"loc"`
	}
	// A Postulate block declares names by signature alone, with no
	// definition.  The parser admits only type signatures inside.
	Postulate struct {
		Kind  string `json:"kind"`
		Decls []Decl `json:"decls"`
		Loc   `json:"loc"`
	}
	// A Primitive block declares names whose definitions are built into
	// the runtime.  Same shape as Postulate.
	Primitive struct {
		Kind  string `json:"kind"`
		Decls []Decl `json:"decls"`
		Loc   `json:"loc"`
	}
	// A Module declares a named module with an optional telescope.  Its
	// body is kept raw: the grouping pass does not descend into it, the
	// scope checker regroups it when the module is entered.
	Module struct {
		Kind   string         `json:"kind"`
		Name   *Name          `json:"name"`
		Params []TypedBinding `json:"params"`
		Decls  []Decl         `json:"decls"`
		Loc    `json:"loc"`
	}
	// A ModuleMacro names the result of applying a module to arguments:
	// "module L = M e1 e2".
	ModuleMacro struct {
		Kind  string `json:"kind"`
		Name  *Name  `json:"name"`
		Value Expr   `json:"value"`
		Loc   `json:"loc"`
	}
	// An Infix declaration assigns one fixity to one or more names.  It
	// scopes over the block it appears in and is consumed by the fixity
	// collector; it produces no output declaration of its own.
	Infix struct {
		Kind   string  `json:"kind"`
		Fixity Fixity  `json:"fixity"`
		Names  []*Name `json:"names"`
		Loc    `json:"loc"`
	}
	// An Open brings the contents of a module into scope.
	Open struct {
		Kind string `json:"kind"`
		Name *Name  `json:"name"`
		Loc  `json:"loc"`
	}
	// An Import loads another source module.
	Import struct {
		Kind string `json:"kind"`
		Name *Name  `json:"name"`
		Loc  `json:"loc"`
	}
	// A Pragma carries implementation directives verbatim.
	Pragma struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
		Loc  `json:"loc"`
	}
)

func (*TypeSig) DeclAST()     {}
func (*FunClause) DeclAST()   {}
func (*DataDecl) DeclAST()    {}
func (*Mutual) DeclAST()      {}
func (*Abstract) DeclAST()    {}
func (*Private) DeclAST()     {}
func (*Postulate) DeclAST()   {}
func (*Primitive) DeclAST()   {}
func (*Module) DeclAST()      {}
func (*ModuleMacro) DeclAST() {}
func (*Infix) DeclAST()       {}
func (*Open) DeclAST()        {}
func (*Import) DeclAST()      {}
func (*Pragma) DeclAST()      {}

// Decls is an ordered list of raw declarations.
type Decls []Decl

func (d Decls) Pos() int {
	if len(d) == 0 {
		return -1
	}
	return d[0].Pos()
}

func (d Decls) End() int {
	if len(d) == 0 {
		return -1
	}
	return d[len(d)-1].End()
}

// Span returns the range covering every declaration in the list.
func (d Decls) Span() Loc {
	loc := NoLoc
	for _, decl := range d {
		loc = loc.Fuse(LocOf(decl))
	}
	return loc
}
