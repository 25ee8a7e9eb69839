// Package nice groups the flat declaration list produced by the parser
// into the form the scope checker consumes: type signatures are joined
// with their clauses, data declarations are split into a type axiom and a
// constructor-carrying body, mutual blocks become a single definition
// group, and abstract and private blocks dissolve into flags on their
// contents.  Fixity declarations are absorbed into a per-block table and
// stamped onto the names they cover.
//
// The pass either succeeds completely or reports an error; it never
// returns a partial grouping.  Errors describe mistakes in user source.
// A raw tree that violates the parser's own guarantees is a bug in the
// caller and panics.
package nice

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/fernlang/fern/compiler/ast"
)

// Config carries the knobs of the grouping pass.
type Config struct {
	// DefaultFixity applies to every name that no fixity declaration in
	// scope covers.
	DefaultFixity ast.Fixity
}

// DefaultConfig returns the configuration the command line tools use.
func DefaultConfig() Config {
	return Config{DefaultFixity: ast.DefaultFixity}
}

// Declarations groups the declarations of one block.  The returned list
// is fully grouped: every signature has met its clauses and every block
// modifier has been dissolved into flags.  Module bodies are the one
// exception and stay raw until the scope checker enters them.
func Declarations(ds []ast.Decl, cfg Config) ([]Decl, error) {
	n := &niceifier{cfg: cfg}
	return n.declarations(nil, ds)
}

type niceifier struct {
	cfg Config
}

// declarations extends the fixity scope with the block's own fixity
// declarations and groups the block under the merged scope.
func (n *niceifier) declarations(outer fixityMap, ds []ast.Decl) ([]Decl, error) {
	fix, err := collectFixities(ds)
	if err != nil {
		return nil, err
	}
	if outer != nil {
		if fix, err = plusFixities(outer, fix); err != nil {
			return nil, err
		}
	}
	return n.run(fix, ds)
}

func (n *niceifier) run(fix fixityMap, ds []ast.Decl) ([]Decl, error) {
	var out []Decl
	for len(ds) > 0 {
		d := ds[0]
		ds = ds[1:]
		switch d := d.(type) {
		case *ast.TypeSig:
			group, rest, err := n.funDef(fix, d, ds)
			if err != nil {
				return nil, err
			}
			out = append(out, group)
			ds = rest
		case *ast.FunClause:
			group, err := n.bareClause(fix, d)
			if err != nil {
				return nil, err
			}
			out = append(out, group)
		case *ast.DataDecl:
			out = append(out, n.dataDef(fix, d))
		case *ast.Mutual:
			if len(d.Decls) == 0 {
				break
			}
			inner, err := n.declarations(fix, d.Decls)
			if err != nil {
				return nil, err
			}
			group, err := smash(d, inner)
			if err != nil {
				return nil, err
			}
			out = append(out, group)
		case *ast.Abstract:
			inner, err := n.declarations(fix, d.Decls)
			if err != nil {
				return nil, err
			}
			for _, d := range inner {
				out = append(out, mkAbstract(d))
			}
		case *ast.Private:
			inner, err := n.declarations(fix, d.Decls)
			if err != nil {
				return nil, err
			}
			for _, d := range inner {
				out = append(out, mkPrivate(d))
			}
		case *ast.Postulate:
			for _, ax := range n.axioms(fix, d.Decls) {
				out = append(out, ax)
			}
		case *ast.Primitive:
			for _, ax := range n.axioms(fix, d.Decls) {
				out = append(out, (*PrimFun)(ax))
			}
		case *ast.Module:
			out = append(out, &Module{
				Loc:    d.Loc,
				Access: Public,
				Name:   d.Name,
				Params: d.Params,
				Decls:  d.Decls,
			})
		case *ast.ModuleMacro:
			out = append(out, &ModuleMacro{
				Loc:    d.Loc,
				Access: Public,
				Name:   d.Name,
				Value:  d.Value,
			})
		case *ast.Infix:
			// Consumed by the fixity table; no grouped counterpart.
		case *ast.Open:
			out = append(out, &Open{Loc: d.Loc, Name: d.Name})
		case *ast.Import:
			out = append(out, &Import{Loc: d.Loc, Name: d.Name})
		case *ast.Pragma:
			out = append(out, &Pragma{Loc: d.Loc, Text: d.Text})
		default:
			panic(fmt.Sprintf("invalid declaration type %T", d))
		}
	}
	return out, nil
}

// funDef pairs a type signature with the run of clauses that follows it
// and returns the group together with the declarations after the run.
func (n *niceifier) funDef(fix fixityMap, sig *ast.TypeSig, ds []ast.Decl) (Decl, []ast.Decl, error) {
	var src ast.Decls
	for _, d := range ds {
		cl, ok := d.(*ast.FunClause)
		if !ok || !clauseBelongsTo(cl, sig.Name.Text) {
			break
		}
		src = append(src, cl)
	}
	if len(src) == 0 {
		return nil, nil, &MissingDefinitionError{
			Loc:  sig.Name.Loc,
			Name: sig.Name.Text,
			Near: nearestClauseHead(sig.Name.Text, ds),
		}
	}
	f := n.fixity(fix, sig.Name.Text)
	group := &Definitions{
		Loc:    sig.Loc.Fuse(src.Span()),
		Source: append(ast.Decls{sig}, src...),
		Sigs: []*Axiom{{
			Loc:    sig.Loc,
			Fixity: f,
			Name:   sig.Name,
			Type:   sig.Type,
		}},
		Defs: []Def{&FunDef{
			Loc:     src.Span(),
			Source:  src,
			Fixity:  f,
			Name:    sig.Name,
			Clauses: n.clauses(sig.Name, src),
		}},
	}
	return group, ds[len(src):], nil
}

// bareClause groups a clause with no signature.  A clause whose whole
// left-hand side is a plain name becomes a one-clause definition whose
// declared type is a hole for the type checker to fill.  Any other
// left-hand side needs fixity-aware reparsing before its defined name
// can be read, so the clause is refused.
func (n *niceifier) bareClause(fix fixityMap, cl *ast.FunClause) (Decl, error) {
	id, ok := ast.SpineHead(cl.LHS).(*ast.ID)
	if !ok {
		return nil, &MissingTypeSignatureError{Loc: ast.LocOf(cl.LHS), LHS: cl.LHS}
	}
	name := ast.NewName(id.Name, id.Loc)
	f := n.fixity(fix, name.Text)
	src := ast.Decls{cl}
	return &Definitions{
		Loc:    cl.Loc,
		Source: src,
		Sigs: []*Axiom{{
			Loc:    name.Loc,
			Fixity: f,
			Name:   name,
			Type:   &ast.Wildcard{Kind: "Wildcard", Loc: name.Loc},
		}},
		Defs: []Def{&FunDef{
			Loc:     cl.Loc,
			Source:  src,
			Fixity:  f,
			Name:    name,
			Clauses: n.clauses(name, src),
		}},
	}, nil
}

// dataDef splits a data declaration into an axiom giving the type of the
// data type and a body carrying its constructors.  The axiom's type
// quantifies over the declaration's parameter telescope.
func (n *niceifier) dataDef(fix fixityMap, d *ast.DataDecl) Decl {
	f := n.fixity(fix, d.Name.Text)
	return &Definitions{
		Loc:    d.Loc,
		Source: ast.Decls{d},
		Sigs: []*Axiom{{
			Loc:    d.Name.Loc.Fuse(ast.LocOf(d.Sort)),
			Fixity: f,
			Name:   d.Name,
			Type:   makePi(d.Params, d.Sort),
		}},
		Defs: []Def{&DataDef{
			Loc:    d.Loc,
			Fixity: f,
			Name:   d.Name,
			Params: flattenTel(d.Params),
			Ctors:  n.axioms(fix, d.Ctors),
		}},
	}
}

// axioms converts a run of bare type signatures to public concrete
// axioms.  The grammar admits nothing but signatures inside postulate,
// primitive, and constructor blocks, so any other declaration here is a
// parser bug.
func (n *niceifier) axioms(fix fixityMap, ds []ast.Decl) []*Axiom {
	out := make([]*Axiom, 0, len(ds))
	for _, d := range ds {
		sig, ok := d.(*ast.TypeSig)
		if !ok {
			panic(fmt.Sprintf("invalid declaration type %T in signature-only block", d))
		}
		out = append(out, &Axiom{
			Loc:    sig.Loc,
			Fixity: n.fixity(fix, sig.Name.Text),
			Name:   sig.Name,
			Type:   sig.Type,
		})
	}
	return out
}

// clauses attaches the group's name to each raw clause.
func (n *niceifier) clauses(name *ast.Name, ds ast.Decls) []Clause {
	out := make([]Clause, 0, len(ds))
	for _, d := range ds {
		cl, ok := d.(*ast.FunClause)
		if !ok {
			panic(fmt.Sprintf("invalid declaration type %T in clause run", d))
		}
		out = append(out, Clause{Name: name, LHS: cl.LHS, RHS: cl.RHS, Where: cl.Where})
	}
	return out
}

// smash folds the groups of one mutual block into a single group,
// concatenating signatures and bodies in declaration order.  Anything
// that grouped into something other than definitions cannot be checked
// mutually and is refused.
func smash(block *ast.Mutual, ds []Decl) (*Definitions, error) {
	out := &Definitions{Loc: block.Loc, Source: ast.Decls{block}}
	for _, d := range ds {
		group, ok := d.(*Definitions)
		if !ok {
			return nil, &IllegalInMutualError{Loc: ast.LocOf(d), Decl: d}
		}
		out.Sigs = append(out.Sigs, group.Sigs...)
		out.Defs = append(out.Defs, group.Defs...)
	}
	return out, nil
}

// clauseBelongsTo reports whether a clause's left-hand side defines name.
// Only a left-hand side that is a plain name can disagree: applications,
// operator clauses, and nested patterns cannot be read until fixity-aware
// reparsing, so they are assumed to continue the current run.
func clauseBelongsTo(cl *ast.FunClause, name string) bool {
	if id, ok := ast.SpineHead(cl.LHS).(*ast.ID); ok {
		return id.Name == name
	}
	return true
}

// nearestClauseHead scans the plain-name clauses right after a
// definition-less signature for a name within editing distance two of
// the undefined one.  A likely typo is worth pointing out; anything
// farther is noise.
func nearestClauseHead(name string, ds []ast.Decl) string {
	best, bestDist := "", 3
	for _, d := range ds {
		cl, ok := d.(*ast.FunClause)
		if !ok {
			break
		}
		id, ok := ast.SpineHead(cl.LHS).(*ast.ID)
		if !ok {
			break
		}
		if d := levenshtein.ComputeDistance(name, id.Name); d < bestDist {
			best, bestDist = id.Name, d
		}
	}
	return best
}

// makePi quantifies a type over a parameter telescope.  An empty
// telescope adds nothing.
func makePi(tel []ast.TypedBinding, body ast.Expr) ast.Expr {
	if len(tel) == 0 {
		return body
	}
	loc := tel[0].Loc.Fuse(ast.LocOf(body))
	return &ast.Pi{Kind: "Pi", Tel: tel, Body: body, Loc: loc}
}

// flattenTel lists the names bound by a telescope, left to right, with a
// placeholder for each anonymous binding.
func flattenTel(tel []ast.TypedBinding) []*ast.Name {
	var out []*ast.Name
	for _, tb := range tel {
		out = append(out, tb.Binders()...)
	}
	return out
}
