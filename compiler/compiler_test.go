package compiler_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernlang/fern/compiler"
	"github.com/fernlang/fern/compiler/nice"
)

func write(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "plus.fern", "plus : N -> N -> N\nplus zero n = n\n")
	ds, err := compiler.Check(path)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	group, ok := ds[0].(*nice.Definitions)
	require.True(t, ok)
	assert.Equal(t, "plus", group.Sigs[0].Name.Text)
}

func TestCheckAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	sig := write(t, dir, "sig.fern", "f : N\n")
	def := write(t, dir, "def.fern", "f = zero\n")
	ds, err := compiler.Check(sig, def)
	require.NoError(t, err)
	require.Len(t, ds, 1)
}

func TestNiceifyError(t *testing.T) {
	a, err := compiler.ParseText("f x = x\n")
	require.NoError(t, err)
	_, err = compiler.Niceify(a, nice.DefaultConfig())
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing type signature")
}
