package parser_test

import (
	"testing"

	"github.com/fernlang/fern/compiler/parser"
	"github.com/fernlang/fern/compiler/sfmt"
)

// FuzzParseText checks that anything the parser accepts prints to
// canonical text that reparses, and that the canonical text is a fixed
// point of the formatter.
func FuzzParseText(f *testing.F) {
	f.Add("plus : N -> N -> N\nplus zero n = n\nplus (suc m) n = suc (plus m n)\n")
	f.Add("mutual\n  even : N -> Bool\n  even zero = true\n")
	f.Add("data Vec (A : Set) : Set where\n  nil : Vec A\n")
	f.Add("{-# OPTIONS safe #-}\nopen L\nimport P.Q\n")
	f.Add("infixl 6 _+_ _-_\nx = \\a b -> plus a b\n")
	f.Add("f = g\n  where\n    g : N\n    g = \"zero\"\n")
	f.Add("postulate A : Set\n")
	f.Fuzz(func(t *testing.T, src string) {
		a, err := parser.ParseText(src)
		if err != nil {
			return
		}
		text := sfmt.Decls(a.Parsed())
		b, err := parser.ParseText(text)
		if err != nil {
			t.Fatalf("canonical text does not reparse: %s\n%s", err, text)
		}
		if again := sfmt.Decls(b.Parsed()); text != again {
			t.Fatalf("canonical text is not a fixed point:\n%q\n%q", text, again)
		}
	})
}
