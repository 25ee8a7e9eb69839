// Package compiler ties the front end together.  Parse turns source
// files into raw declarations and Niceify groups those declarations into
// definitions; the subpackages hold the stages themselves.
package compiler

import (
	"github.com/fernlang/fern/compiler/nice"
	"github.com/fernlang/fern/compiler/parser"
)

// Parse parses the named files as one compilation.
func Parse(filenames ...string) (*parser.AST, error) {
	return parser.ParseFiles(filenames...)
}

// ParseText parses source text given directly, as from stdin or tests.
func ParseText(src string) (*parser.AST, error) {
	return parser.ParseText(src)
}

// ParseBytes parses a buffer that was already read from the named file.
func ParseBytes(name string, src []byte) (*parser.AST, error) {
	return parser.ParseBytes(name, src)
}

// Niceify groups the declarations of a parse: every signature meets its
// clauses, block modifiers dissolve into flags on the names they cover,
// and each name carries the fixity in force where it was declared.
func Niceify(a *parser.AST, config nice.Config) ([]nice.Decl, error) {
	return nice.Declarations(a.Parsed(), config)
}

// Check parses and groups the named files, returning the grouped
// declarations of a clean compilation.
func Check(filenames ...string) ([]nice.Decl, error) {
	a, err := Parse(filenames...)
	if err != nil {
		return nil, err
	}
	return Niceify(a, nice.DefaultConfig())
}
