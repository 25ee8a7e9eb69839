package nice

import (
	"github.com/fernlang/fern/compiler/ast"
)

// Decl is the interface implemented by all grouped declaration nodes.
// Grouped declarations are never serialized, so there are no Kind fields;
// every node carries the source range it was built from.
type Decl interface {
	ast.Node
	niceDecl()
}

// Access says whether a declaration is visible outside the enclosing
// module.
type Access bool

const (
	Public  Access = false
	Private Access = true
)

func (a Access) String() string {
	if a == Private {
		return "private"
	}
	return "public"
}

// IsAbstract says whether a definition's body is hidden from clients of
// the enclosing module.
type IsAbstract bool

const (
	Concrete IsAbstract = false
	Abstract IsAbstract = true
)

func (a IsAbstract) String() string {
	if a == Abstract {
		return "abstract"
	}
	return "concrete"
}

type (
	// An Axiom is a typed name with no definition: a postulate, a data
	// constructor, or the signature half of a grouped definition.
	Axiom struct {
		ast.Loc
		Fixity   ast.Fixity
		Access   Access
		Abstract IsAbstract
		Name     *ast.Name
		Type     ast.Expr
	}
	// A PrimFun is an axiom whose implementation is supplied by the
	// runtime rather than by Fern source.
	PrimFun struct {
		ast.Loc
		Fixity   ast.Fixity
		Access   Access
		Abstract IsAbstract
		Name     *ast.Name
		Type     ast.Expr
	}
	// A Definitions node is one group of definitions that the scope
	// checker will process together: the signatures and the bodies of a
	// signature-clause run, a data declaration, or a whole mutual block.
	//
	// Sigs and Defs always have the same length and Sigs[i] declares the
	// name that Defs[i] defines, in declaration order.  Source holds the
	// raw declarations the group was built from, for re-display; a group
	// smashed from a mutual block records the mutual declaration itself.
	Definitions struct {
		ast.Loc
		Source ast.Decls
		Sigs   []*Axiom
		Defs   []Def
	}
	// A Module is a named module.  Its body stays raw: the grouping
	// pass runs again on the body when the scope checker enters it, so
	// block modifiers wrapping the module are propagated by re-wrapping
	// the body rather than by rewriting it here.
	Module struct {
		ast.Loc
		Access   Access
		Abstract IsAbstract
		Name     *ast.Name
		Params   []ast.TypedBinding
		Decls    []ast.Decl
	}
	// A ModuleMacro names the result of a module application.
	ModuleMacro struct {
		ast.Loc
		Access   Access
		Abstract IsAbstract
		Name     *ast.Name
		Value    ast.Expr
	}
	// An Open brings a module's contents into scope.
	Open struct {
		ast.Loc
		Name *ast.Name
	}
	// An Import loads another source module.
	Import struct {
		ast.Loc
		Name *ast.Name
	}
	// A Pragma carries an implementation directive through unchanged.
	Pragma struct {
		ast.Loc
		Text string
	}
)

func (*Axiom) niceDecl()       {}
func (*PrimFun) niceDecl()     {}
func (*Definitions) niceDecl() {}
func (*Module) niceDecl()      {}
func (*ModuleMacro) niceDecl() {}
func (*Open) niceDecl()        {}
func (*Import) niceDecl()      {}
func (*Pragma) niceDecl()      {}

// Def is the interface implemented by definition bodies inside a
// Definitions group.
type Def interface {
	ast.Node
	niceDef()
}

type (
	// A FunDef is one function definition: a name and its ordered
	// clauses.  Source holds the raw clause declarations.
	FunDef struct {
		ast.Loc
		Source   ast.Decls
		Fixity   ast.Fixity
		Access   Access
		Abstract IsAbstract
		Name     *ast.Name
		Clauses  []Clause
	}
	// A DataDef is one data type definition: its flattened parameter
	// bindings and its constructor axioms.
	DataDef struct {
		ast.Loc
		Fixity   ast.Fixity
		Access   Access
		Abstract IsAbstract
		Name     *ast.Name
		Params   []*ast.Name
		Ctors    []*Axiom
	}
)

func (*FunDef) niceDef()  {}
func (*DataDef) niceDef() {}

// A Clause is one defining equation attached to the name of the signature
// that opened its group.  Whether the left-hand side really binds that
// name is not checked here: the left-hand side cannot be read until
// operator fixity is applied, so the scope checker re-validates the match.
type Clause struct {
	Name  *ast.Name
	LHS   ast.Expr
	RHS   ast.Expr
	Where []ast.Decl
}
