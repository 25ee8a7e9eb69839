package parser

import (
	"fmt"
	"strconv"

	"github.com/fernlang/fern/compiler/ast"
)

// parse scans, lays out, and parses one source buffer into the flat
// declaration list the grouping pass consumes.
func parse(src string) ([]ast.Decl, error) {
	toks, err := newLexer(src).tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: layout(toks)}
	return p.file()
}

type parser struct {
	toks []token
	at   int
}

type parseError struct {
	msg string
	pos int
	end int
}

func (e *parseError) Error() string { return e.msg }

func (p *parser) errorf(tok token, format string, args ...any) error {
	return &parseError{msg: fmt.Sprintf(format, args...), pos: tok.pos, end: tok.end}
}

func (p *parser) peek() token { return p.toks[p.at] }

func (p *parser) next() token {
	tok := p.toks[p.at]
	if tok.kind != tokEOF {
		p.at++
	}
	return tok
}

func (p *parser) got(k tokKind) (token, bool) {
	if p.toks[p.at].kind != k {
		return token{}, false
	}
	return p.next(), true
}

func (p *parser) expect(k tokKind, what string) (token, error) {
	tok := p.peek()
	if tok.kind != k {
		return token{}, p.errorf(tok, "expected %s, found %s", what, tok)
	}
	return p.next(), nil
}

// gotSep consumes one declaration separator, written or laid out.
func (p *parser) gotSep() bool {
	if _, ok := p.got(tokSemi); ok {
		return true
	}
	_, ok := p.got(tokVSemi)
	return ok
}

// file parses the laid-out token stream: one block followed by the end
// of the file.
func (p *parser) file() ([]ast.Decl, error) {
	ds, _, err := p.block()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %s after the last declaration", tok)
	}
	return ds, nil
}

// block parses a braced declaration list, explicit or virtual.  Stray
// separators are tolerated; empty blocks are fine.
func (p *parser) block() ([]ast.Decl, token, error) {
	open := p.next()
	var want tokKind
	switch open.kind {
	case tokLBrace:
		want = tokRBrace
	case tokVLBrace:
		want = tokVRBrace
	default:
		return nil, token{}, p.errorf(open, "expected a block, found %s", open)
	}
	var ds []ast.Decl
	for {
		for p.gotSep() {
		}
		if tok, ok := p.got(want); ok {
			return ds, tok, nil
		}
		d, err := p.decl()
		if err != nil {
			return nil, token{}, err
		}
		ds = append(ds, d)
		if p.gotSep() {
			continue
		}
		if tok, ok := p.got(want); ok {
			return ds, tok, nil
		}
		return nil, token{}, p.errorf(p.peek(), "unexpected %s after a declaration", p.peek())
	}
}

// sigBlock parses a block that the grammar restricts to type signatures.
func (p *parser) sigBlock(what string) ([]ast.Decl, token, error) {
	ds, tok, err := p.block()
	if err != nil {
		return nil, token{}, err
	}
	for _, d := range ds {
		if _, ok := d.(*ast.TypeSig); !ok {
			return nil, token{}, &parseError{
				msg: fmt.Sprintf("only type signatures are allowed in a %s block", what),
				pos: d.Pos(),
				end: d.End(),
			}
		}
	}
	return ds, tok, nil
}

func (p *parser) decl() (ast.Decl, error) {
	switch tok := p.peek(); tok.kind {
	case tokFixity:
		return p.infixDecl()
	case tokData:
		return p.dataDecl()
	case tokMutual:
		kw := p.next()
		ds, tok, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.Mutual{Kind: "Mutual", Decls: ds, Loc: ast.NewLoc(kw.pos, blockEnd(ds, tok))}, nil
	case tokAbstract:
		kw := p.next()
		ds, tok, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.Abstract{Kind: "Abstract", Decls: ds, Loc: ast.NewLoc(kw.pos, blockEnd(ds, tok))}, nil
	case tokPrivate:
		kw := p.next()
		ds, tok, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.Private{Kind: "Private", Decls: ds, Loc: ast.NewLoc(kw.pos, blockEnd(ds, tok))}, nil
	case tokPostulate:
		kw := p.next()
		ds, tok, err := p.sigBlock("postulate")
		if err != nil {
			return nil, err
		}
		return &ast.Postulate{Kind: "Postulate", Decls: ds, Loc: ast.NewLoc(kw.pos, blockEnd(ds, tok))}, nil
	case tokPrimitive:
		kw := p.next()
		ds, tok, err := p.sigBlock("primitive")
		if err != nil {
			return nil, err
		}
		return &ast.Primitive{Kind: "Primitive", Decls: ds, Loc: ast.NewLoc(kw.pos, blockEnd(ds, tok))}, nil
	case tokModule:
		return p.moduleDecl()
	case tokOpen:
		kw := p.next()
		name, err := p.expect(tokName, "a module name")
		if err != nil {
			return nil, err
		}
		return &ast.Open{Kind: "Open", Name: ast.NewName(name.text, tokLoc(name)), Loc: ast.NewLoc(kw.pos, name.end)}, nil
	case tokImport:
		kw := p.next()
		name, err := p.expect(tokName, "a module name")
		if err != nil {
			return nil, err
		}
		return &ast.Import{Kind: "Import", Name: ast.NewName(name.text, tokLoc(name)), Loc: ast.NewLoc(kw.pos, name.end)}, nil
	case tokPragma:
		p.next()
		return &ast.Pragma{Kind: "Pragma", Text: tok.text, Loc: tokLoc(tok)}, nil
	default:
		return p.exprDecl()
	}
}

// infixDecl parses "infix 6 name+" and its infixl and infixr variants.
func (p *parser) infixDecl() (ast.Decl, error) {
	kw := p.next()
	assoc, err := ast.ParseAssoc(kw.text)
	if err != nil {
		panic(err)
	}
	num, err := p.expect(tokNumber, "a precedence level")
	if err != nil {
		return nil, err
	}
	prec, err := strconv.Atoi(num.text)
	if err != nil {
		return nil, p.errorf(num, "invalid precedence level %s", num)
	}
	var names []*ast.Name
	for {
		tok, ok := p.got(tokName)
		if !ok {
			break
		}
		names = append(names, ast.NewName(tok.text, tokLoc(tok)))
	}
	if len(names) == 0 {
		return nil, p.errorf(p.peek(), "expected a name after the precedence level, found %s", p.peek())
	}
	return &ast.Infix{
		Kind:   "Infix",
		Fixity: ast.Fixity{Assoc: assoc, Prec: prec},
		Names:  names,
		Loc:    ast.NewLoc(kw.pos, names[len(names)-1].Last),
	}, nil
}

// dataDecl parses "data D (params) : sort where ctors".  The constructor
// block admits only type signatures.
func (p *parser) dataDecl() (ast.Decl, error) {
	kw := p.next()
	name, err := p.expect(tokName, "a data type name")
	if err != nil {
		return nil, err
	}
	params, err := p.bindings()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, "':'"); err != nil {
		return nil, err
	}
	sort, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokWhere, "'where'"); err != nil {
		return nil, err
	}
	ctors, tok, err := p.sigBlock("constructor")
	if err != nil {
		return nil, err
	}
	return &ast.DataDecl{
		Kind:   "DataDecl",
		Name:   ast.NewName(name.text, tokLoc(name)),
		Params: params,
		Sort:   sort,
		Ctors:  ctors,
		Loc:    ast.NewLoc(kw.pos, blockEnd(ctors, tok)),
	}, nil
}

// moduleDecl parses "module M (params) where body" or the module macro
// form "module M = e".
func (p *parser) moduleDecl() (ast.Decl, error) {
	kw := p.next()
	name, err := p.expect(tokName, "a module name")
	if err != nil {
		return nil, err
	}
	if _, ok := p.got(tokEquals); ok {
		value, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.ModuleMacro{
			Kind:  "ModuleMacro",
			Name:  ast.NewName(name.text, tokLoc(name)),
			Value: value,
			Loc:   ast.NewLoc(kw.pos, ast.LocOf(value).Last),
		}, nil
	}
	params, err := p.bindings()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokWhere, "'where'"); err != nil {
		return nil, err
	}
	ds, tok, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.Module{
		Kind:   "Module",
		Name:   ast.NewName(name.text, tokLoc(name)),
		Params: params,
		Decls:  ds,
		Loc:    ast.NewLoc(kw.pos, blockEnd(ds, tok)),
	}, nil
}

// exprDecl parses the declarations that begin with an expression: a type
// signature "x : T" or a clause "lhs = rhs" with an optional where-block.
func (p *parser) exprDecl() (ast.Decl, error) {
	lhs, err := p.spine()
	if err != nil {
		return nil, err
	}
	switch tok := p.peek(); tok.kind {
	case tokColon:
		p.next()
		id, ok := lhs.(*ast.ID)
		if !ok {
			return nil, &parseError{
				msg: "the left-hand side of a type signature must be a single name",
				pos: lhs.Pos(),
				end: lhs.End(),
			}
		}
		typ, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.TypeSig{
			Kind: "TypeSig",
			Name: ast.NewName(id.Name, id.Loc),
			Type: typ,
			Loc:  id.Loc.Fuse(ast.LocOf(typ)),
		}, nil
	case tokEquals:
		p.next()
		rhs, err := p.expr()
		if err != nil {
			return nil, err
		}
		end := ast.LocOf(rhs).Last
		var where []ast.Decl
		if _, ok := p.got(tokWhere); ok {
			ds, tok, err := p.block()
			if err != nil {
				return nil, err
			}
			where = ds
			end = blockEnd(ds, tok)
		}
		return &ast.FunClause{
			Kind:  "FunClause",
			LHS:   lhs,
			RHS:   rhs,
			Where: where,
			Loc:   ast.NewLoc(lhs.Pos(), end),
		}, nil
	default:
		return nil, p.errorf(tok, "expected ':' or '=' after the left-hand side, found %s", tok)
	}
}

// bindings parses zero or more parenthesized parameter groups.  A group
// is "(x y : T)" or an anonymous "(T)"; which one it is becomes clear
// only at the ":", so the anonymous case rewinds and reparses.
func (p *parser) bindings() ([]ast.TypedBinding, error) {
	var tel []ast.TypedBinding
	for p.peek().kind == tokLParen {
		b, err := p.binding()
		if err != nil {
			return nil, err
		}
		tel = append(tel, b)
	}
	return tel, nil
}

func (p *parser) binding() (ast.TypedBinding, error) {
	open := p.next()
	save := p.at
	names := p.binders()
	if len(names) > 0 {
		if _, ok := p.got(tokColon); ok {
			typ, err := p.expr()
			if err != nil {
				return ast.TypedBinding{}, err
			}
			tok, err := p.expect(tokRParen, "')'")
			if err != nil {
				return ast.TypedBinding{}, err
			}
			return ast.TypedBinding{
				Kind:  "TypedBinding",
				Names: names,
				Type:  typ,
				Loc:   ast.NewLoc(open.pos, tok.end),
			}, nil
		}
	}
	p.at = save
	typ, err := p.expr()
	if err != nil {
		return ast.TypedBinding{}, err
	}
	tok, err := p.expect(tokRParen, "')'")
	if err != nil {
		return ast.TypedBinding{}, err
	}
	return ast.TypedBinding{
		Kind: "TypedBinding",
		Type: typ,
		Loc:  ast.NewLoc(open.pos, tok.end),
	}, nil
}

// binders consumes a run of binder names, underscores included.
func (p *parser) binders() []*ast.Name {
	var names []*ast.Name
	for {
		if tok, ok := p.got(tokName); ok {
			names = append(names, ast.NewName(tok.text, tokLoc(tok)))
			continue
		}
		if tok, ok := p.got(tokUnderscore); ok {
			names = append(names, ast.NoName(tokLoc(tok)))
			continue
		}
		return names
	}
}

// expr parses a full expression: a lambda, a dependent function type, or
// an arrow chain of application spines.
func (p *parser) expr() (ast.Expr, error) {
	switch p.peek().kind {
	case tokLambda:
		return p.lambda()
	case tokLParen:
		if pi, ok, err := p.tryPi(); err != nil || ok {
			return pi, err
		}
	}
	return p.arrow()
}

func (p *parser) lambda() (ast.Expr, error) {
	kw := p.next()
	params := p.binders()
	if len(params) == 0 {
		return nil, p.errorf(p.peek(), "expected a parameter name in a lambda, found %s", p.peek())
	}
	if _, err := p.expect(tokArrow, "'->'"); err != nil {
		return nil, err
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.Lam{
		Kind:   "Lam",
		Params: params,
		Body:   body,
		Loc:    ast.NewLoc(kw.pos, ast.LocOf(body).Last),
	}, nil
}

// tryPi speculatively parses a telescope followed by an arrow.  A
// telescope group and a parenthesized expression cannot be told apart
// without scanning past the closing parenthesis, so on a mismatch the
// parser rewinds and lets the expression grammar have the tokens.
func (p *parser) tryPi() (ast.Expr, bool, error) {
	save := p.at
	tel, ok := p.telescope()
	if !ok {
		p.at = save
		return nil, false, nil
	}
	if _, ok := p.got(tokArrow); !ok {
		p.at = save
		return nil, false, nil
	}
	body, err := p.expr()
	if err != nil {
		return nil, false, err
	}
	return &ast.Pi{
		Kind: "Pi",
		Tel:  tel,
		Body: body,
		Loc:  ast.NewLoc(tel[0].First, ast.LocOf(body).Last),
	}, true, nil
}

// telescope speculatively parses one or more typed binding groups.  Any
// mismatch reports failure instead of an error; the caller rewinds.
func (p *parser) telescope() ([]ast.TypedBinding, bool) {
	var tel []ast.TypedBinding
	for p.peek().kind == tokLParen {
		open := p.next()
		names := p.binders()
		if len(names) == 0 {
			return nil, false
		}
		if _, ok := p.got(tokColon); !ok {
			return nil, false
		}
		typ, err := p.expr()
		if err != nil {
			return nil, false
		}
		tok, ok := p.got(tokRParen)
		if !ok {
			return nil, false
		}
		tel = append(tel, ast.TypedBinding{
			Kind:  "TypedBinding",
			Names: names,
			Type:  typ,
			Loc:   ast.NewLoc(open.pos, tok.end),
		})
	}
	return tel, len(tel) > 0
}

func (p *parser) arrow() (ast.Expr, error) {
	from, err := p.spine()
	if err != nil {
		return nil, err
	}
	if _, ok := p.got(tokArrow); !ok {
		return from, nil
	}
	to, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.Arrow{
		Kind: "Arrow",
		From: from,
		To:   to,
		Loc:  ast.LocOf(from).Fuse(ast.LocOf(to)),
	}, nil
}

// spine parses a juxtaposition of atoms.  Single atoms stay bare; the
// parser never emits a one-element spine.
func (p *parser) spine() (ast.Expr, error) {
	first, err := p.atom()
	if err != nil {
		return nil, err
	}
	exprs := []ast.Expr{first}
	for startsAtom(p.peek().kind) {
		a, err := p.atom()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, a)
	}
	if len(exprs) == 1 {
		return first, nil
	}
	return &ast.RawApp{
		Kind:  "RawApp",
		Exprs: exprs,
		Loc:   ast.LocOf(first).Fuse(ast.LocOf(exprs[len(exprs)-1])),
	}, nil
}

func startsAtom(k tokKind) bool {
	switch k {
	case tokName, tokNumber, tokString, tokUnderscore, tokLParen:
		return true
	}
	return false
}

func (p *parser) atom() (ast.Expr, error) {
	switch tok := p.peek(); tok.kind {
	case tokName:
		p.next()
		return &ast.ID{Kind: "ID", Name: tok.text, Loc: tokLoc(tok)}, nil
	case tokNumber, tokString:
		p.next()
		return &ast.Lit{Kind: "Lit", Text: tok.text, Loc: tokLoc(tok)}, nil
	case tokUnderscore:
		p.next()
		return &ast.Wildcard{Kind: "Wildcard", Loc: tokLoc(tok)}, nil
	case tokLParen:
		p.next()
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		rtok, err := p.expect(tokRParen, "')'")
		if err != nil {
			return nil, err
		}
		return &ast.Paren{Kind: "Paren", Expr: e, Loc: ast.NewLoc(tok.pos, rtok.end)}, nil
	default:
		return nil, p.errorf(tok, "expected an expression, found %s", tok)
	}
}

func tokLoc(t token) ast.Loc { return ast.NewLoc(t.pos, t.end) }

// blockEnd gives the end offset of a block.  A virtual close token sits
// at the start of whatever follows the block, so the last declaration is
// the better anchor.
func blockEnd(ds []ast.Decl, close token) int {
	if close.kind == tokVRBrace && len(ds) > 0 {
		return ast.Decls(ds).End()
	}
	return close.end
}
