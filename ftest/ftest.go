// Package ftest runs formulaic tests ("ftests") defined in YAML files.
// An ftest parses a Fern source text, groups its declarations, and
// compares either the canonical form of the result or the rendered
// diagnostics against a golden string, so the behavior of the whole
// front end can be pinned down without writing Go.
//
// An ftest of well-formed source gives the expected canonical form:
//
//	fern: |
//	  plus : N -> N -> N
//	  plus zero n = n
//
//	output: |
//	  plus : N -> N -> N
//	  plus zero n = n
//
// An ftest of ill-formed source gives the expected diagnostics instead:
//
//	fern: |
//	  f x = x
//
//	error: |
//	  <input>:1:1: error: missing type signature for left-hand side "f x"
//	    f x = x
//	    ^~~
//
// The default-fixity field overrides the fixity applied to names with no
// fixity declaration in scope, spelled like a declaration: "infixr 9".
//
// Ftest YAML files for a package reside in a subdirectory named
// testdata/ftest.
//
//	pkg/
//	  pkg.go
//	  pkg_test.go
//	  testdata/
//	    ftest/
//	      test-1.yaml
//	      test-2.yaml
//	      ...
//
// Name YAML files descriptively since each ftest runs as a subtest named
// for the file that defines it.  pkg_test.go should contain a Go test
// named TestFTest that calls Run.
//
//	func TestFTest(t *testing.T) { ftest.Run(t, "testdata/ftest") }
//
// A test can be skipped by setting the skip field to a non-empty string,
// which is written to the test log.
package ftest

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"github.com/fernlang/fern/compiler"
	"github.com/fernlang/fern/compiler/ast"
	"github.com/fernlang/fern/compiler/diagfmt"
	"github.com/fernlang/fern/compiler/nice"
	"github.com/fernlang/fern/compiler/sfmt"
	"github.com/fernlang/fern/compiler/srcfiles"
)

type Bundle struct {
	TestName string
	FileName string
	Test     *FTest
	Error    error
}

func Load(dirname string) ([]Bundle, error) {
	var bundles []Bundle
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		filename := entry.Name()
		const dotyaml = ".yaml"
		if !strings.HasSuffix(filename, dotyaml) {
			continue
		}
		testname := strings.TrimSuffix(filename, dotyaml)
		filename = filepath.Join(dirname, filename)
		ft, err := FromYAMLFile(filename)
		bundles = append(bundles, Bundle{testname, filename, ft, err})
	}
	return bundles, nil
}

// Run runs the ftests in the directory named dirname.  For each file
// f.yaml in the directory, Run calls FromYAMLFile to load an ftest and
// then runs it in a subtest named f.
func Run(t *testing.T, dirname string) {
	bundles, err := Load(dirname)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range bundles {
		b := b
		t.Run(b.TestName, func(t *testing.T) {
			t.Parallel()
			if b.Error != nil {
				t.Fatalf("%s: %s", b.FileName, b.Error)
			}
			b.Test.Run(t, b.FileName)
		})
	}
}

// An FTest defines an ftest.
type FTest struct {
	Skip string `yaml:"skip,omitempty"`
	// Fern is the source text under test.
	Fern string `yaml:"fern"`
	// DefaultFixity optionally overrides the fixity of undeclared names.
	DefaultFixity string `yaml:"default-fixity,omitempty"`
	// Output is the expected canonical form of the grouped declarations.
	// Error is the expected diagnostic rendering.  Exactly one of the two
	// must be present.
	Output *string `yaml:"output,omitempty"`
	Error  string  `yaml:"error,omitempty"`
}

func (f *FTest) check() error {
	if f.Fern == "" {
		return errors.New("fern field missing")
	}
	if (f.Output != nil) == (f.Error != "") {
		return errors.New("exactly one of output or error must be present")
	}
	return nil
}

func (f *FTest) config() (nice.Config, error) {
	if f.DefaultFixity == "" {
		return nice.DefaultConfig(), nil
	}
	fields := strings.Fields(f.DefaultFixity)
	if len(fields) != 2 {
		return nice.Config{}, fmt.Errorf("bad default-fixity: %q", f.DefaultFixity)
	}
	assoc, err := ast.ParseAssoc(fields[0])
	if err != nil {
		return nice.Config{}, err
	}
	prec, err := strconv.Atoi(fields[1])
	if err != nil {
		return nice.Config{}, fmt.Errorf("bad default-fixity: %q", f.DefaultFixity)
	}
	return nice.Config{DefaultFixity: ast.Fixity{Assoc: assoc, Prec: prec}}, nil
}

// FromYAMLFile loads an FTest from the YAML file named filename.
func FromYAMLFile(filename string) (*FTest, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var f FTest
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *FTest) Run(t *testing.T, filename string) {
	if f.Skip != "" {
		t.Skip("skipping test:", f.Skip)
	}
	if err := f.run(); err != nil {
		t.Fatalf("%s: %s", filename, err)
	}
}

func (f *FTest) run() error {
	if err := f.check(); err != nil {
		return fmt.Errorf("bad yaml format: %w", err)
	}
	config, err := f.config()
	if err != nil {
		return err
	}
	out, checkErr := check(f.Fern, config)
	var errStr string
	if checkErr != nil {
		var b bytes.Buffer
		files := srcfiles.New("", []byte(f.Fern))
		if err := diagfmt.Render(&b, files, diagfmt.Diagnostics(checkErr), diagfmt.Options{}); err != nil {
			return err
		}
		errStr = b.String()
	}
	var expected string
	if f.Output != nil {
		expected = *f.Output
	}
	var outDiffErr, errDiffErr error
	if expected != out {
		outDiffErr = diffErr("output", expected, out)
	}
	if f.Error != errStr {
		errDiffErr = diffErr("error", f.Error, errStr)
	}
	return errors.Join(outDiffErr, errDiffErr)
}

// check runs the front end over src and returns the canonical form of
// the grouped declarations.
func check(src string, config nice.Config) (string, error) {
	a, err := compiler.ParseText(src)
	if err != nil {
		return "", err
	}
	ds, err := compiler.Niceify(a, config)
	if err != nil {
		return "", err
	}
	return sfmt.NiceDecls(ds), nil
}

func diffErr(name, expected, actual string) error {
	if !utf8.ValidString(expected) {
		expected = hex.Dump([]byte(expected))
		actual = hex.Dump([]byte(actual))
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		FromFile: "expected",
		B:        difflib.SplitLines(actual),
		ToFile:   "actual",
		Context:  5,
	})
	if err != nil {
		panic("ftest: " + err.Error())
	}
	return fmt.Errorf("expected and actual %s differ:\n%s", name, diff)
}
