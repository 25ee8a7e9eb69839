package sfmt

import (
	"fmt"

	"github.com/fernlang/fern/compiler/ast"
)

// Decls returns the canonical source form of a raw declaration list.
// Canonical text is a fixed point: parsing it and formatting the result
// reproduces it byte for byte.
func Decls(ds []ast.Decl) string {
	t := &text{formatter{tab: 2}}
	t.decls(ds)
	return t.String()
}

// Expr returns the canonical form of one expression.
func Expr(e ast.Expr) string {
	t := &text{formatter{tab: 2}}
	t.expr(e, false)
	return t.String()
}

type text struct {
	formatter
}

func (t *text) decls(ds []ast.Decl) {
	for _, d := range ds {
		t.decl(d)
	}
}

func (t *text) decl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.TypeSig:
		t.write("%s : ", d.Name.Text)
		t.expr(d.Type, false)
		t.ret()
	case *ast.FunClause:
		t.equation(d.LHS, d.RHS, d.Where)
	case *ast.DataDecl:
		t.write("data %s", d.Name.Text)
		if len(d.Params) > 0 {
			t.space()
			t.groups(d.Params)
		}
		t.write(" : ")
		t.expr(d.Sort, false)
		t.write(" where")
		t.ret()
		t.block(d.Ctors)
	case *ast.Mutual:
		t.blockDecl("mutual", d.Decls)
	case *ast.Abstract:
		t.blockDecl("abstract", d.Decls)
	case *ast.Private:
		t.blockDecl("private", d.Decls)
	case *ast.Postulate:
		t.blockDecl("postulate", d.Decls)
	case *ast.Primitive:
		t.blockDecl("primitive", d.Decls)
	case *ast.Module:
		t.write("module %s", d.Name.Text)
		if len(d.Params) > 0 {
			t.space()
			t.groups(d.Params)
		}
		t.write(" where")
		t.ret()
		t.block(d.Decls)
	case *ast.ModuleMacro:
		t.write("module %s = ", d.Name.Text)
		t.expr(d.Value, false)
		t.ret()
	case *ast.Infix:
		t.write("%s", d.Fixity)
		for _, name := range d.Names {
			t.write(" %s", name.Text)
		}
		t.ret()
	case *ast.Open:
		t.write("open %s", d.Name.Text)
		t.ret()
	case *ast.Import:
		t.write("import %s", d.Name.Text)
		t.ret()
	case *ast.Pragma:
		t.write("{-# %s #-}", d.Text)
		t.ret()
	default:
		panic(fmt.Sprintf("invalid declaration type %T", d))
	}
}

// equation renders one defining equation with its optional where-block.
func (t *text) equation(lhs, rhs ast.Expr, where []ast.Decl) {
	t.expr(lhs, false)
	t.write(" = ")
	t.expr(rhs, false)
	t.ret()
	if len(where) > 0 {
		t.open()
		t.write("where")
		t.ret()
		t.block(where)
		t.close()
	}
}

func (t *text) blockDecl(kw string, ds []ast.Decl) {
	t.write(kw)
	t.ret()
	t.block(ds)
}

func (t *text) block(ds []ast.Decl) {
	t.open()
	t.decls(ds)
	t.close()
}

// groups renders a parameter telescope, one parenthesized group per
// binding, anonymous groups as the bare type.
func (t *text) groups(tel []ast.TypedBinding) {
	for k, b := range tel {
		if k > 0 {
			t.space()
		}
		t.write("(")
		for i, name := range b.Names {
			if i > 0 {
				t.space()
			}
			t.write("%s", name.Text)
		}
		if len(b.Names) > 0 {
			t.write(" : ")
		}
		t.expr(b.Type, false)
		t.write(")")
	}
}

// expr renders one expression.  With atom set the expression appears as
// a spine element, and the forms that extend to the right take
// parentheses to keep their reading.
func (t *text) expr(e ast.Expr, atom bool) {
	switch e := e.(type) {
	case *ast.ID:
		t.write("%s", e.Name)
	case *ast.Lit:
		t.write("%s", e.Text)
	case *ast.Wildcard:
		t.write("_")
	case *ast.Paren:
		t.write("(")
		t.expr(e.Expr, false)
		t.write(")")
	case *ast.RawApp:
		if atom {
			t.write("(")
		}
		for k, sub := range e.Exprs {
			if k > 0 {
				t.space()
			}
			t.expr(sub, true)
		}
		if atom {
			t.write(")")
		}
	case *ast.Arrow:
		if atom {
			t.write("(")
		}
		t.from(e.From)
		t.write(" -> ")
		t.expr(e.To, false)
		if atom {
			t.write(")")
		}
	case *ast.Pi:
		if atom {
			t.write("(")
		}
		t.groups(e.Tel)
		t.write(" -> ")
		t.expr(e.Body, false)
		if atom {
			t.write(")")
		}
	case *ast.Lam:
		if atom {
			t.write("(")
		}
		t.write("\\")
		for k, param := range e.Params {
			if k > 0 {
				t.space()
			}
			t.write("%s", param.Text)
		}
		t.write(" -> ")
		t.expr(e.Body, false)
		if atom {
			t.write(")")
		}
	default:
		panic(fmt.Sprintf("invalid expression type %T", e))
	}
}

// from renders the left side of an arrow.  The arrow is right
// associative, so a function type on the left keeps its parentheses.
func (t *text) from(e ast.Expr) {
	switch e.(type) {
	case *ast.Arrow, *ast.Pi, *ast.Lam:
		t.write("(")
		t.expr(e, false)
		t.write(")")
	default:
		t.expr(e, false)
	}
}
