// Package sfmt renders declarations and expressions back to canonical
// source text: two-space layout blocks, single spaces inside spines, and
// parentheses only where the grammar needs them.  Raw declarations render
// through Decls and Expr; grouped declarations through NiceDecls.
package sfmt

import (
	"fmt"
	"strings"
)

// A formatter accumulates lines of canonical text at the current
// indentation.  Indentation is emitted lazily when a line's first write
// arrives, so open and close can bracket multi-line regions freely.
type formatter struct {
	strings.Builder
	tab    int
	indent int
	mid    bool
}

func (f *formatter) write(format string, args ...any) {
	if !f.mid {
		f.WriteString(strings.Repeat(" ", f.indent))
		f.mid = true
	}
	fmt.Fprintf(&f.Builder, format, args...)
}

func (f *formatter) space() {
	f.write(" ")
}

func (f *formatter) ret() {
	f.WriteByte('\n')
	f.mid = false
}

func (f *formatter) open()  { f.indent += f.tab }
func (f *formatter) close() { f.indent -= f.tab }
