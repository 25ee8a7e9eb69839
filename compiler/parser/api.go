package parser

import (
	"github.com/fernlang/fern/compiler/ast"
	"github.com/fernlang/fern/compiler/srcfiles"
)

// AST is the result of a parse: the declarations of one compilation in
// textual order, plus the source files they came from for error
// reporting.
type AST struct {
	decls []ast.Decl
	files *srcfiles.List
}

func (a *AST) Parsed() []ast.Decl { return a.decls }

func (a *AST) Files() *srcfiles.List { return a.files }

// ParseFiles parses the named files as one compilation and tracks file
// names and line numbers for error reporting.
func ParseFiles(filenames ...string) (*AST, error) {
	files, err := srcfiles.Concat(filenames)
	if err != nil {
		return nil, err
	}
	return parseList(files)
}

// ParseText parses source text given directly, as from stdin or tests.
func ParseText(src string) (*AST, error) {
	return parseList(srcfiles.New("", []byte(src)))
}

// ParseBytes parses a buffer that was already read from the named file,
// for callers that hash or cache source before parsing it.
func ParseBytes(name string, src []byte) (*AST, error) {
	return parseList(srcfiles.New(name, src))
}

func parseList(files *srcfiles.List) (*AST, error) {
	decls, err := parse(files.Text)
	if err != nil {
		pe, ok := err.(*parseError)
		if !ok {
			return nil, err
		}
		files.AddError(pe.msg, pe.pos, pe.end)
		return nil, files.Error()
	}
	return &AST{decls, files}, nil
}
