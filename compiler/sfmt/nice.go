package sfmt

import (
	"github.com/fernlang/fern/compiler/ast"
	"github.com/fernlang/fern/compiler/nice"
)

// NiceDecls returns the source form of grouped declarations.  The text
// spells out what grouping decided: access and abstractness prefixes on
// every name, a fixity line ahead of any name whose fixity is not the
// standard default, and mutual blocks around smashed groups.  Module
// bodies and where-blocks are still raw and render through the raw
// printer, synthetic wrappers included.
func NiceDecls(ds []nice.Decl) string {
	t := &text{formatter{tab: 2}}
	for _, d := range ds {
		t.niceDecl(d)
	}
	return t.String()
}

func (t *text) niceDecl(d nice.Decl) {
	switch d := d.(type) {
	case *nice.Axiom:
		t.fixityLine(d.Fixity, d.Name.Text)
		t.flags(d.Access, d.Abstract)
		t.write("postulate %s : ", d.Name.Text)
		t.expr(d.Type, false)
		t.ret()
	case *nice.PrimFun:
		t.fixityLine(d.Fixity, d.Name.Text)
		t.flags(d.Access, d.Abstract)
		t.write("primitive %s : ", d.Name.Text)
		t.expr(d.Type, false)
		t.ret()
	case *nice.Definitions:
		if len(d.Sigs) == 1 {
			t.pair(d.Sigs[0], d.Defs[0])
			return
		}
		t.write("mutual")
		t.ret()
		t.open()
		for i := range d.Sigs {
			t.pair(d.Sigs[i], d.Defs[i])
		}
		t.close()
	case *nice.Module:
		t.flags(d.Access, d.Abstract)
		t.write("module %s", d.Name.Text)
		if len(d.Params) > 0 {
			t.space()
			t.groups(d.Params)
		}
		t.write(" where")
		t.ret()
		t.block(d.Decls)
	case *nice.ModuleMacro:
		t.flags(d.Access, d.Abstract)
		t.write("module %s = ", d.Name.Text)
		t.expr(d.Value, false)
		t.ret()
	case *nice.Open:
		t.write("open %s", d.Name.Text)
		t.ret()
	case *nice.Import:
		t.write("import %s", d.Name.Text)
		t.ret()
	case *nice.Pragma:
		t.write("{-# %s #-}", d.Text)
		t.ret()
	}
}

// pair renders one signature and the definition it declares.
func (t *text) pair(sig *nice.Axiom, def nice.Def) {
	t.fixityLine(sig.Fixity, sig.Name.Text)
	switch def := def.(type) {
	case *nice.FunDef:
		t.flags(sig.Access, sig.Abstract)
		t.write("%s : ", sig.Name.Text)
		t.expr(sig.Type, false)
		t.ret()
		for _, cl := range def.Clauses {
			t.equation(cl.LHS, cl.RHS, cl.Where)
		}
	case *nice.DataDef:
		t.flags(sig.Access, sig.Abstract)
		t.write("data %s", sig.Name.Text)
		sort := sig.Type
		if pi, ok := sort.(*ast.Pi); ok {
			t.space()
			t.groups(pi.Tel)
			sort = pi.Body
		}
		t.write(" : ")
		t.expr(sort, false)
		t.write(" where")
		t.ret()
		t.open()
		for _, c := range def.Ctors {
			t.write("%s : ", c.Name.Text)
			t.expr(c.Type, false)
			t.ret()
		}
		t.close()
	}
}

func (t *text) flags(access nice.Access, abstract nice.IsAbstract) {
	if access == nice.Private {
		t.write("private ")
	}
	if abstract == nice.Abstract {
		t.write("abstract ")
	}
}

func (t *text) fixityLine(f ast.Fixity, name string) {
	if f != ast.DefaultFixity {
		t.write("%s %s", f, name)
		t.ret()
	}
}
