package nice

import (
	"fmt"

	"github.com/fernlang/fern/compiler/ast"
)

// mkAbstract marks a freshly grouped declaration as abstract.  It may
// rewrite the declaration in place; the result is only ever a just-built
// subtree on its way up to the caller.
//
// A module's raw body cannot be marked directly, so it is re-wrapped in
// a synthetic abstract block that carries the flag to the grouping run
// that later enters the module.  Where-blocks travel the same way.
func mkAbstract(d Decl) Decl {
	switch d := d.(type) {
	case *Axiom:
		d.Abstract = Abstract
	case *PrimFun:
		d.Abstract = Abstract
	case *Definitions:
		for _, sig := range d.Sigs {
			sig.Abstract = Abstract
		}
		for _, def := range d.Defs {
			mkAbstractDef(def)
		}
	case *Module:
		d.Abstract = Abstract
		d.Decls = wrapAbstract(d.Decls)
	case *ModuleMacro:
		d.Abstract = Abstract
	case *Open, *Import, *Pragma:
		// Nothing to mark.
	default:
		panic(fmt.Sprintf("invalid declaration type %T", d))
	}
	return d
}

func mkAbstractDef(d Def) {
	switch d := d.(type) {
	case *FunDef:
		d.Abstract = Abstract
		for i := range d.Clauses {
			d.Clauses[i].Where = wrapAbstract(d.Clauses[i].Where)
		}
	case *DataDef:
		d.Abstract = Abstract
		for _, c := range d.Ctors {
			c.Abstract = Abstract
		}
	default:
		panic(fmt.Sprintf("invalid definition type %T", d))
	}
}

// wrapAbstract re-wraps a raw block so the abstract flag reaches its
// declarations when they are grouped.  An empty block stays empty.
func wrapAbstract(ds []ast.Decl) []ast.Decl {
	if len(ds) == 0 {
		return ds
	}
	return []ast.Decl{&ast.Abstract{
		Kind:  "Abstract",
		Decls: ds,
		Loc:   ast.Decls(ds).Span(),
	}}
}

// mkPrivate marks a freshly grouped declaration as private.  Unlike
// mkAbstract it leaves module bodies alone: privacy hides the module's
// name from the outside, while the body's own declarations keep the
// visibility they declare among themselves.
func mkPrivate(d Decl) Decl {
	switch d := d.(type) {
	case *Axiom:
		d.Access = Private
	case *PrimFun:
		d.Access = Private
	case *Definitions:
		for _, sig := range d.Sigs {
			sig.Access = Private
		}
		for _, def := range d.Defs {
			mkPrivateDef(def)
		}
	case *Module:
		d.Access = Private
	case *ModuleMacro:
		d.Access = Private
	case *Open, *Import, *Pragma:
		// Nothing to mark.
	default:
		panic(fmt.Sprintf("invalid declaration type %T", d))
	}
	return d
}

func mkPrivateDef(d Def) {
	switch d := d.(type) {
	case *FunDef:
		d.Access = Private
		for i := range d.Clauses {
			d.Clauses[i].Where = wrapPrivate(d.Clauses[i].Where)
		}
	case *DataDef:
		d.Access = Private
		for _, c := range d.Ctors {
			c.Access = Private
		}
	default:
		panic(fmt.Sprintf("invalid definition type %T", d))
	}
}

// wrapPrivate re-wraps a raw where-block so its helpers stay local to
// the clause when the block is grouped.
func wrapPrivate(ds []ast.Decl) []ast.Decl {
	if len(ds) == 0 {
		return ds
	}
	return []ast.Decl{&ast.Private{
		Kind:  "Private",
		Decls: ds,
		Loc:   ast.Decls(ds).Span(),
	}}
}
