package srcfiles

import (
	"fmt"
	"strings"
)

// ErrorList is a list of anchored Errors.
type ErrorList []*Error

// Append appends an Error to e.
func (e *ErrorList) Append(list *List, msg string, pos, end int) {
	*e = append(*e, &Error{msg, pos, end, list})
}

// Error concatenates the errors in e with a newline between each.
func (e ErrorList) Error() string {
	var b strings.Builder
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// An Error is a message anchored to a range of the source text.  End may
// be negative when only a point is known.
type Error struct {
	Msg  string
	Pos  int
	End  int
	list *List
}

func (e *Error) Error() string {
	if e.list == nil {
		return e.Msg
	}
	file := e.list.FileOf(e.Pos)
	start := file.Position(e.Pos)
	end := file.Position(e.End)
	var b strings.Builder
	b.WriteString(e.Msg)
	if file.Name != "" {
		fmt.Fprintf(&b, " in %s", file.Name)
	}
	line := file.LineOfPos(e.list.Text, e.Pos)
	fmt.Fprintf(&b, " at line %d, column %d:\n%s\n", start.Line, start.Column, line)
	if end.IsValid() {
		formatSpanError(&b, line, start, end)
	} else {
		formatPointError(&b, start)
	}
	return b.String()
}

// List returns the source list the error is anchored to, for renderers
// that need the text and line tables.
func (e *Error) List() *List { return e.list }

func formatSpanError(b *strings.Builder, line string, start, end Position) {
	col := start.Column - 1
	if col > len(line) {
		col = len(line)
	}
	b.WriteString(strings.Repeat(" ", col))
	n := end.Column - start.Column
	if start.Line != end.Line {
		n = len(line) - start.Column + 1
	}
	if n < 1 {
		n = 1
	}
	b.WriteString(strings.Repeat("~", n))
}

func formatPointError(b *strings.Builder, start Position) {
	col := start.Column - 1
	for k := 0; k < col; k++ {
		if k >= col-4 && k != col-1 {
			b.WriteByte('=')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("^ ===")
}
