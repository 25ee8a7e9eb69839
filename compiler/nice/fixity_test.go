package nice

import (
	"testing"

	"github.com/fernlang/fern/compiler/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, assoc ast.Assoc, prec int) fixityEntry {
	return fixityEntry{
		fix: ast.Fixity{Assoc: assoc, Prec: prec},
		at:  ast.NewName(name, ast.NoLoc),
	}
}

func infix(assoc ast.Assoc, prec int, names ...string) *ast.Infix {
	d := &ast.Infix{
		Kind:   "Infix",
		Fixity: ast.Fixity{Assoc: assoc, Prec: prec},
		Loc:    ast.NoLoc,
	}
	for _, name := range names {
		d.Names = append(d.Names, ast.NewName(name, ast.NoLoc))
	}
	return d
}

func TestCollectFixities(t *testing.T) {
	ds := []ast.Decl{
		infix(ast.LeftAssoc, 6, "_+_", "_-_"),
		&ast.TypeSig{Kind: "TypeSig", Name: ast.NewName("f", ast.NoLoc), Loc: ast.NoLoc},
		infix(ast.RightAssoc, 5, "_::_"),
	}
	m, err := collectFixities(ds)
	require.NoError(t, err)
	require.Len(t, m, 3)
	assert.Equal(t, ast.Fixity{Assoc: ast.LeftAssoc, Prec: 6}, m["_+_"].fix)
	assert.Equal(t, ast.Fixity{Assoc: ast.LeftAssoc, Prec: 6}, m["_-_"].fix)
	assert.Equal(t, ast.Fixity{Assoc: ast.RightAssoc, Prec: 5}, m["_::_"].fix)
}

func TestCollectFixitiesSkipsNestedBlocks(t *testing.T) {
	ds := []ast.Decl{
		&ast.Mutual{
			Kind:  "Mutual",
			Decls: []ast.Decl{infix(ast.LeftAssoc, 6, "_+_")},
			Loc:   ast.NoLoc,
		},
	}
	m, err := collectFixities(ds)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestCollectFixitiesDuplicate(t *testing.T) {
	ds := []ast.Decl{
		infix(ast.LeftAssoc, 6, "_+_"),
		infix(ast.LeftAssoc, 6, "_+_"),
	}
	_, err := collectFixities(ds)
	require.Error(t, err)
	var dup *DuplicateFixityError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "_+_", dup.Name)
	assert.Len(t, dup.Decls, 2)
}

func TestCollectFixitiesTripleDuplicate(t *testing.T) {
	ds := []ast.Decl{
		infix(ast.LeftAssoc, 6, "_+_"),
		infix(ast.RightAssoc, 5, "_+_"),
		infix(ast.NonAssoc, 4, "_+_"),
	}
	_, err := collectFixities(ds)
	var dup *DuplicateFixityError
	require.ErrorAs(t, err, &dup)
	// Every declaring occurrence is reported, not just the first two.
	assert.Len(t, dup.Decls, 3)
	assert.Len(t, dup.Fixities, 3)
	assert.Equal(t, 4, dup.Fixities[2].Prec)
}

func TestPlusFixitiesDisjoint(t *testing.T) {
	m1 := fixityMap{"_+_": entry("_+_", ast.LeftAssoc, 6)}
	m2 := fixityMap{"_*_": entry("_*_", ast.LeftAssoc, 7)}

	u, err := plusFixities(m1, m2)
	require.NoError(t, err)
	assert.Len(t, u, 2)

	// Merging is symmetric on disjoint maps.
	v, err := plusFixities(m2, m1)
	require.NoError(t, err)
	assert.Equal(t, u, v)

	// The inputs are left alone.
	assert.Len(t, m1, 1)
	assert.Len(t, m2, 1)
}

func TestPlusFixitiesCollision(t *testing.T) {
	m1 := fixityMap{
		"_+_": entry("_+_", ast.LeftAssoc, 6),
		"_*_": entry("_*_", ast.LeftAssoc, 7),
	}
	m2 := fixityMap{
		"_+_": entry("_+_", ast.RightAssoc, 5),
		"_*_": entry("_*_", ast.RightAssoc, 8),
		"_-_": entry("_-_", ast.LeftAssoc, 6),
	}
	u, err := plusFixities(m1, m2)
	require.Error(t, err)
	assert.Nil(t, u)
	assert.Contains(t, err.Error(), `"_+_"`)
	assert.Contains(t, err.Error(), `"_*_"`)
	assert.NotContains(t, err.Error(), `"_-_"`)
}

func TestFixityLookupDefault(t *testing.T) {
	n := &niceifier{cfg: DefaultConfig()}
	m := fixityMap{"_+_": entry("_+_", ast.LeftAssoc, 6)}
	assert.Equal(t, ast.Fixity{Assoc: ast.LeftAssoc, Prec: 6}, n.fixity(m, "_+_"))
	assert.Equal(t, ast.DefaultFixity, n.fixity(m, "f"))
}
