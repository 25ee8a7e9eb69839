// Package srcfiles tracks the source text of one or more Fern files in a
// single byte-offset space so that every syntax node can carry a compact
// range and errors can be rendered against the text they came from.
package srcfiles

import (
	"os"
	"sort"
	"strings"
)

// A List is the concatenated source text of a compilation, one File entry
// per input, each holding its own line table.  Node ranges index into Text.
type List struct {
	Text   string
	Files  []File
	errors ErrorList
}

// Concat reads the named files and concatenates their content with
// newlines so all ranges share one offset space.
func Concat(filenames []string) (*List, error) {
	var b strings.Builder
	var files []File
	for _, f := range filenames {
		bb, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		files = append(files, newFile(f, b.Len(), bb))
		b.Write(bb)
		b.WriteByte('\n')
	}
	return &List{Text: b.String(), Files: files}, nil
}

// New wraps a single in-memory buffer, as for source arriving on stdin or
// in tests.  An empty name marks the buffer as unnamed.
func New(name string, src []byte) *List {
	return &List{Text: string(src), Files: []File{newFile(name, 0, src)}}
}

func (l *List) AddError(msg string, pos, end int) {
	l.errors.Append(l, msg, pos, end)
}

func (l *List) Error() error {
	if len(l.errors) == 0 {
		return nil
	}
	return l.errors
}

func (l *List) Errors() ErrorList { return l.errors }

func (l *List) FileOf(pos int) File {
	i := sort.Search(len(l.Files), func(i int) bool { return l.Files[i].start > pos }) - 1
	if i < 0 {
		i = 0
	}
	return l.Files[i]
}

// File holds the name, extent, and line table of one input.
type File struct {
	Name  string
	lines []int
	size  int
	start int
}

func newFile(name string, start int, src []byte) File {
	var lines []int
	line := 0
	for offset, b := range src {
		if line >= 0 {
			lines = append(lines, line)
		}
		line = -1
		if b == '\n' {
			line = offset + 1
		}
	}
	return File{
		Name:  name,
		lines: lines,
		size:  len(src),
		start: start,
	}
}

func (f File) Position(pos int) Position {
	if pos < 0 || len(f.lines) == 0 {
		return Position{-1, -1, -1, -1}
	}
	offset := pos - f.start
	i := searchLine(f.lines, offset)
	return Position{
		Pos:    pos,
		Offset: offset,
		Line:   i + 1,
		Column: offset - f.lines[i] + 1,
	}
}

// LineOfPos returns the text of the line containing pos, without its
// trailing newline.
func (f File) LineOfPos(src string, pos int) string {
	i := searchLine(f.lines, pos-f.start)
	start := f.lines[i]
	end := f.size
	if i+1 < len(f.lines) {
		end = f.lines[i+1]
	}
	b := src[f.start+start : f.start+end]
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	return string(b)
}

func searchLine(lines []int, offset int) int {
	i := sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return i
}

type Position struct {
	Pos    int `json:"pos"`    // Offset relative to the entire source text in List.Text.
	Offset int `json:"offset"` // Offset relative to the local source text in this File.
	Line   int `json:"line"`   // 1-based line number.
	Column int `json:"column"` // 1-based column number.
}

func (p Position) IsValid() bool { return p.Pos >= 0 }
