package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fernlang/fern/compiler/diagfmt"
	"github.com/fernlang/fern/compiler/nice"
	"github.com/fernlang/fern/compiler/parser"
	"github.com/fernlang/fern/compiler/srcfiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAnchored(t *testing.T) {
	files := srcfiles.New("check.fern", []byte("f : N\nreceive = x\n"))
	files.AddError(`missing definition for "f"`, 0, 1)

	var buf bytes.Buffer
	diags := diagfmt.Diagnostics(files.Error())
	require.NoError(t, diagfmt.Render(&buf, files, diags, diagfmt.Options{}))
	assert.Equal(t, `check.fern:1:1: error: missing definition for "f"
  f : N
  ^
`, buf.String())
}

func TestRenderSpan(t *testing.T) {
	files := srcfiles.New("check.fern", []byte("f : N\n"))
	files.AddError("bad signature", 0, 5)

	var buf bytes.Buffer
	require.NoError(t, diagfmt.Render(&buf, files, diagfmt.Diagnostics(files.Error()), diagfmt.Options{}))
	assert.Equal(t, `check.fern:1:1: error: bad signature
  f : N
  ^~~~~
`, buf.String())
}

func TestRenderUnanchored(t *testing.T) {
	var buf bytes.Buffer
	diags := []diagfmt.Diagnostic{{Msg: "no source here", Pos: -1, End: -1}}
	require.NoError(t, diagfmt.Render(&buf, nil, diags, diagfmt.Options{}))
	assert.Equal(t, "error: no source here\n", buf.String())
}

func TestDiagnosticsNearMissNote(t *testing.T) {
	a, err := parser.ParseText("recieve : N\nreceive = x\n")
	require.NoError(t, err)
	_, err = nice.Declarations(a.Parsed(), nice.DefaultConfig())
	require.Error(t, err)

	diags := diagfmt.Diagnostics(err)
	require.Len(t, diags, 1)
	assert.Equal(t, `missing definition for "recieve"`, diags[0].Msg)
	require.Len(t, diags[0].Notes, 1)
	assert.Equal(t, `did you mean "receive"?`, diags[0].Notes[0])

	var buf bytes.Buffer
	require.NoError(t, diagfmt.Render(&buf, a.Files(), diags, diagfmt.Options{}))
	assert.Equal(t, `<input>:1:1: error: missing definition for "recieve"
  recieve : N
  ^~~~~~~
  note: did you mean "receive"?
`, buf.String())
}

func TestDiagnosticsExpandsBundles(t *testing.T) {
	a, err := parser.ParseText("infixl 6 _+_ _*_\ninfixr 5 _+_ _*_\nf : N\nf = x\n")
	require.NoError(t, err)
	_, err = nice.Declarations(a.Parsed(), nice.DefaultConfig())
	require.Error(t, err)

	diags := diagfmt.Diagnostics(err)
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Msg, `"_*_"`)
	assert.Contains(t, diags[1].Msg, `"_+_"`)
	assert.GreaterOrEqual(t, diags[0].Pos, 0)
}

func TestRenderMax(t *testing.T) {
	files := srcfiles.New("check.fern", []byte("f : N\n"))
	files.AddError("first", 0, 1)
	files.AddError("second", 2, 3)
	files.AddError("third", 4, 5)

	var buf bytes.Buffer
	require.NoError(t, diagfmt.Render(&buf, files, diagfmt.Diagnostics(files.Error()), diagfmt.Options{Max: 1}))
	out := buf.String()
	assert.Contains(t, out, "first")
	assert.NotContains(t, out, "second")
	assert.Contains(t, out, "2 more errors not shown")
}

func TestRenderColor(t *testing.T) {
	files := srcfiles.New("check.fern", []byte("f : N\n"))
	files.AddError("bad", 0, 1)

	var buf bytes.Buffer
	require.NoError(t, diagfmt.Render(&buf, files, diagfmt.Diagnostics(files.Error()), diagfmt.Options{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")

	buf.Reset()
	require.NoError(t, diagfmt.Render(&buf, files, diagfmt.Diagnostics(files.Error()), diagfmt.Options{}))
	assert.False(t, strings.Contains(buf.String(), "\x1b["))
}
