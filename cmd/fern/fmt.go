package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fernlang/fern/compiler"
	"github.com/fernlang/fern/compiler/diagfmt"
	"github.com/fernlang/fern/compiler/sfmt"
	"github.com/fernlang/fern/compiler/srcfiles"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file ...]",
	Short: "Print source files in canonical form",
	Long: `Fmt parses each named file and prints it back in canonical form:
two-space layout blocks, one declaration per line, normalized operator
spacing.  With -w the file is rewritten in place instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "rewrite files in place instead of printing")
}

func runFmt(cmd *cobra.Command, args []string) error {
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		a, err := compiler.ParseBytes(path, src)
		if err != nil {
			return renderErr(cmd, srcfiles.New(path, src), err)
		}
		text := sfmt.Decls(a.Parsed())
		if write {
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				return err
			}
			continue
		}
		fmt.Fprint(os.Stdout, text)
	}
	return nil
}

// renderErr prints the diagnostics behind err and converts it to the
// silent nonzero exit.
func renderErr(cmd *cobra.Command, files *srcfiles.List, err error) error {
	color, cerr := useColor(cmd, os.Stderr)
	if cerr != nil {
		return cerr
	}
	opts := diagfmt.Options{Color: color}
	if rerr := diagfmt.Render(os.Stderr, files, diagfmt.Diagnostics(err), opts); rerr != nil {
		return rerr
	}
	cmd.SilenceErrors = true
	return errDiagnostics
}
