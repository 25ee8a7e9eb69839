package nice

import (
	"fmt"
	"strings"

	"github.com/fernlang/fern/compiler/ast"
)

// A DuplicateFixityError reports a name given more than one fixity in a
// single block.  Decls holds every declaring occurrence of the name and
// Fixities the fixity each of them assigned, both in source order.
type DuplicateFixityError struct {
	ast.Loc
	Name     string
	Decls    []*ast.Name
	Fixities []ast.Fixity
}

func (e *DuplicateFixityError) Error() string {
	fixities := make([]string, 0, len(e.Fixities))
	for _, f := range e.Fixities {
		fixities = append(fixities, f.String())
	}
	return fmt.Sprintf("multiple fixity declarations for %q: %s",
		e.Name, strings.Join(fixities, ", "))
}

// A MissingDefinitionError reports a type signature followed by no clause
// for its name.  Near, when not empty, is the head of a nearby clause
// whose name is within editing distance of the undefined one.
type MissingDefinitionError struct {
	ast.Loc
	Name string
	Near string
}

func (e *MissingDefinitionError) Error() string {
	if e.Near != "" {
		return fmt.Sprintf("missing definition for %q (clauses define %q)", e.Name, e.Near)
	}
	return fmt.Sprintf("missing definition for %q", e.Name)
}

// A MissingTypeSignatureError reports a clause that opens no group: its
// left-hand side is not a plain name, and no preceding signature claimed
// it.
type MissingTypeSignatureError struct {
	ast.Loc
	LHS ast.Expr
}

func (e *MissingTypeSignatureError) Error() string {
	return fmt.Sprintf("missing type signature for left-hand side %q", lhsString(e.LHS))
}

// An IllegalInMutualError reports a declaration inside a mutual block
// that does not group into definitions.
type IllegalInMutualError struct {
	ast.Loc
	Decl Decl
}

func (e *IllegalInMutualError) Error() string {
	return fmt.Sprintf("%s not allowed in a mutual block", describe(e.Decl))
}

func describe(d Decl) string {
	switch d.(type) {
	case *Axiom:
		return "postulate"
	case *PrimFun:
		return "primitive declaration"
	case *Module:
		return "module definition"
	case *ModuleMacro:
		return "module definition"
	case *Open:
		return "open declaration"
	case *Import:
		return "import declaration"
	case *Pragma:
		return "pragma"
	default:
		panic(fmt.Sprintf("invalid declaration type %T in mutual error", d))
	}
}

// lhsString renders a left-hand side for an error message.  Left-hand
// sides are unparsed operator spines, so the handful of shapes the parser
// can produce there is rendered directly instead of pulling in the full
// formatter.
func lhsString(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.ID:
		return e.Name
	case *ast.Lit:
		return e.Text
	case *ast.Wildcard:
		return "_"
	case *ast.Paren:
		return "(" + lhsString(e.Expr) + ")"
	case *ast.RawApp:
		parts := make([]string, 0, len(e.Exprs))
		for _, sub := range e.Exprs {
			parts = append(parts, lhsString(sub))
		}
		return strings.Join(parts, " ")
	default:
		panic(fmt.Sprintf("invalid expression type %T in left-hand side", e))
	}
}
