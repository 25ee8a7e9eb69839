package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func laidOut(t *testing.T, src string) []tokKind {
	t.Helper()
	return kindsOf(layout(lex(t, src)))
}

func TestLayoutTopLevel(t *testing.T) {
	assert.Equal(t,
		[]tokKind{tokVLBrace,
			tokName, tokColon, tokName, tokVSemi,
			tokName, tokName, tokEquals, tokName,
			tokVRBrace, tokEOF},
		laidOut(t, "f : N\nf x = x\n"))
}

func TestLayoutWhere(t *testing.T) {
	assert.Equal(t,
		[]tokKind{tokVLBrace,
			tokName, tokEquals, tokName, tokWhere, tokVLBrace,
			tokName, tokEquals, tokName, tokVSemi,
			tokName, tokEquals, tokName,
			tokVRBrace, tokVSemi,
			tokName, tokEquals, tokName,
			tokVRBrace, tokEOF},
		laidOut(t, "f = x where\n    y = a\n    z = b\ng = y\n"))
}

func TestLayoutEmptyBlock(t *testing.T) {
	// Nothing is indented past the keyword, so the block is empty.
	assert.Equal(t,
		[]tokKind{tokVLBrace,
			tokMutual, tokVLBrace, tokVRBrace, tokVSemi,
			tokName, tokColon, tokName,
			tokVRBrace, tokEOF},
		laidOut(t, "mutual\nf : N\n"))
}

func TestLayoutExplicitBraces(t *testing.T) {
	// Explicit braces turn the offside rule off; separators are written.
	assert.Equal(t,
		[]tokKind{tokVLBrace,
			tokPrivate, tokLBrace,
			tokName, tokEquals, tokName, tokSemi,
			tokName, tokEquals, tokName,
			tokRBrace,
			tokVRBrace, tokEOF},
		laidOut(t, "private {\n  f = x ;\n  g = y\n}\n"))
}

func TestLayoutDedentClosesAll(t *testing.T) {
	assert.Equal(t,
		[]tokKind{tokVLBrace,
			tokModule, tokName, tokWhere, tokVLBrace,
			tokName, tokEquals, tokName, tokWhere, tokVLBrace,
			tokName, tokEquals, tokName,
			tokVRBrace, tokVRBrace, tokVSemi,
			tokName, tokEquals, tokName,
			tokVRBrace, tokEOF},
		laidOut(t, "module M where\n  f = x where\n    y = a\ng = b\n"))
}

func TestLayoutKeywordChain(t *testing.T) {
	assert.Equal(t,
		[]tokKind{tokVLBrace,
			tokAbstract, tokVLBrace,
			tokPrivate, tokVLBrace,
			tokName, tokEquals, tokName,
			tokVRBrace, tokVRBrace,
			tokVRBrace, tokEOF},
		laidOut(t, "abstract\n  private\n    f = x\n"))
}

func TestLayoutEmptySource(t *testing.T) {
	assert.Equal(t,
		[]tokKind{tokVLBrace, tokVRBrace, tokEOF},
		laidOut(t, ""))
}
