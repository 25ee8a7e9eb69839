// Package diagfmt renders the errors produced by parsing and grouping as
// terminal diagnostics: a path:line:column header, the offending source
// line, a caret underline covering the anchored range, and followup
// notes.  Color is the caller's decision; the package never sniffs the
// terminal itself.
package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"github.com/fernlang/fern/compiler/ast"
	"github.com/fernlang/fern/compiler/nice"
	"github.com/fernlang/fern/compiler/srcfiles"
)

// Options configure rendering.
type Options struct {
	// Color turns on ANSI escapes.
	Color bool
	// Max bounds the number of diagnostics rendered; zero means all.
	Max int
}

// A Diagnostic is one renderable error: a message, the source range it is
// anchored to (negative offsets when unanchored), and followup notes.
type Diagnostic struct {
	Msg   string
	Pos   int
	End   int
	Notes []string
}

// Diagnostics flattens an error from the parser or the grouping pass into
// renderable diagnostics.  Error lists and multierror bundles expand to
// their members, anchored errors keep their ranges, and a missing
// definition with a near-miss clause gains a "did you mean" note.
func Diagnostics(err error) []Diagnostic {
	switch err := err.(type) {
	case nil:
		return nil
	case srcfiles.ErrorList:
		out := make([]Diagnostic, 0, len(err))
		for _, e := range err {
			out = append(out, Diagnostic{Msg: e.Msg, Pos: e.Pos, End: e.End})
		}
		return out
	case *srcfiles.Error:
		return []Diagnostic{{Msg: err.Msg, Pos: err.Pos, End: err.End}}
	case *multierror.Error:
		var out []Diagnostic
		for _, e := range err.Errors {
			out = append(out, Diagnostics(e)...)
		}
		return out
	}
	d := Diagnostic{Msg: err.Error(), Pos: -1, End: -1}
	if node, ok := err.(ast.Node); ok {
		d.Pos, d.End = node.Pos(), node.End()
	}
	var md *nice.MissingDefinitionError
	if errors.As(err, &md) && md.Near != "" {
		d.Msg = fmt.Sprintf("missing definition for %q", md.Name)
		d.Notes = []string{fmt.Sprintf("did you mean %q?", md.Near)}
	}
	return []Diagnostic{d}
}

// Render writes diagnostics to w, resolving ranges against files.  A nil
// files list or an unanchored diagnostic renders the message alone.
func Render(w io.Writer, files *srcfiles.List, diags []Diagnostic, opts Options) error {
	p := newPalette(opts.Color)
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	var b strings.Builder
	for _, d := range diags[:n] {
		render(&b, p, files, d)
	}
	if rest := len(diags) - n; rest == 1 {
		fmt.Fprintf(&b, "%s\n", p.note.Sprint("1 more error not shown"))
	} else if rest > 1 {
		fmt.Fprintf(&b, "%s\n", p.note.Sprintf("%d more errors not shown", rest))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func render(b *strings.Builder, p palette, files *srcfiles.List, d Diagnostic) {
	if files == nil || d.Pos < 0 {
		fmt.Fprintf(b, "%s %s\n", p.label.Sprint("error:"), d.Msg)
		notes(b, p, d.Notes)
		return
	}
	file := files.FileOf(d.Pos)
	start := file.Position(d.Pos)
	name := file.Name
	if name == "" {
		name = "<input>"
	}
	fmt.Fprintf(b, "%s %s %s\n",
		p.pos.Sprintf("%s:%d:%d:", name, start.Line, start.Column),
		p.label.Sprint("error:"),
		d.Msg)
	line := file.LineOfPos(files.Text, d.Pos)
	fmt.Fprintf(b, "  %s\n", line)
	col := start.Column - 1
	if col > len(line) {
		col = len(line)
	}
	b.WriteString("  ")
	b.WriteString(strings.Repeat(" ", col))
	b.WriteString(p.mark.Sprint(underline(line, start, file.Position(d.End))))
	b.WriteByte('\n')
	notes(b, p, d.Notes)
}

func notes(b *strings.Builder, p palette, notes []string) {
	for _, note := range notes {
		fmt.Fprintf(b, "  %s %s\n", p.note.Sprint("note:"), note)
	}
}

// underline covers the anchored range with a caret and tildes.  A range
// spilling past its first line is cut at the line end; a point or an
// empty range still gets the caret.
func underline(line string, start, end srcfiles.Position) string {
	n := 1
	if end.IsValid() {
		n = end.Column - start.Column
		if start.Line != end.Line {
			n = len(line) - start.Column + 1
		}
	}
	if n < 1 {
		n = 1
	}
	return "^" + strings.Repeat("~", n-1)
}

type palette struct {
	pos   *color.Color
	label *color.Color
	mark  *color.Color
	note  *color.Color
}

// newPalette builds the color set with color forced on or off, so output
// does not depend on whether the test or pipe target looks like a tty.
func newPalette(enabled bool) palette {
	p := palette{
		pos:   color.New(color.Bold),
		label: color.New(color.FgRed, color.Bold),
		mark:  color.New(color.FgGreen, color.Bold),
		note:  color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.pos, p.label, p.mark, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
