package sfmt_test

import (
	"testing"

	"github.com/fernlang/fern/compiler/ast"
	"github.com/fernlang/fern/compiler/nice"
	"github.com/fernlang/fern/compiler/parser"
	"github.com/fernlang/fern/compiler/sfmt"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

func parseText(t *testing.T, src string) []ast.Decl {
	t.Helper()
	a, err := parser.ParseText(src)
	require.NoError(t, err)
	return a.Parsed()
}

func requireText(t *testing.T, want, got string) {
	t.Helper()
	if got == want {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	require.NoError(t, err)
	t.Fatalf("canonical text differs:\n%s", diff)
}

const canonical = `f : N -> N
f zero = suc zero
data Vec (A : Set) : Set where
  nil : Vec A
mutual
  even : N -> Bool
  even n = true
postulate
  Level : Set
module M (x : N) where
  y : N
  y = x
module L = M zero
infixl 6 _+_ _-_
open L
import Prelude.Nat
{-# OPTIONS safe #-}
`

func TestDeclsFixedPoint(t *testing.T) {
	got := sfmt.Decls(parseText(t, canonical))
	requireText(t, canonical, got)

	// Formatting the reparse of canonical text changes nothing.
	again := sfmt.Decls(parseText(t, got))
	requireText(t, got, again)
}

func TestDeclsNormalizes(t *testing.T) {
	got := sfmt.Decls(parseText(t, `
mutual { even : N ; even = zero }
f : (A : Set) -> A
f = λ x -> x
`))
	requireText(t, `mutual
  even : N
  even = zero
f : (A : Set) -> A
f = \x -> x
`, got)
}

func TestDeclsWhere(t *testing.T) {
	src := `f : N
f = g
  where
    g = zero
`
	got := sfmt.Decls(parseText(t, src))
	requireText(t, src, got)
}

func TestExpr(t *testing.T) {
	cases := []string{
		"N",
		"N -> N",
		"(A -> B) -> C",
		"(A) -> A",
		"suc (suc zero)",
		"(x y : A) (z : B) -> C",
		`\x y -> f x`,
		`f _ 42 "hi"`,
	}
	for _, src := range cases {
		ds := parseText(t, "t : "+src)
		require.Len(t, ds, 1)
		sig := ds[0].(*ast.TypeSig)
		require.Equal(t, src, sfmt.Expr(sig.Type), "case %q", src)
	}
}

func TestNiceDecls(t *testing.T) {
	ds := parseText(t, `
infixl 6 _+_
_+_ : N -> N -> N
x + y = y
one = suc zero
private
  helper : N
  helper = zero
abstract
  data D : Set where
    c : D
mutual
  even : N
  even = zero
  odd : N
  odd = suc one
postulate
  Level : Set
abstract
  module M where
    f : N
    f = zero
`)
	grouped, err := nice.Declarations(ds, nice.DefaultConfig())
	require.NoError(t, err)
	got := sfmt.NiceDecls(grouped)
	requireText(t, `infixl 6 _+_
_+_ : N -> N -> N
x + y = y
one : _
one = suc zero
private helper : N
helper = zero
abstract data D : Set where
  c : D
mutual
  even : N
  even = zero
  odd : N
  odd = suc one
postulate Level : Set
abstract module M where
  abstract
    f : N
    f = zero
`, got)
}
