package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/fernlang/fern/compiler"
	"github.com/fernlang/fern/compiler/sfmt"
	"github.com/fernlang/fern/compiler/srcfiles"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print the declarations of one file after parsing and grouping",
	Long: `Ast parses one file, groups its declarations, and prints the result in
canonical source form.  The parse tree before grouping is available with
--raw as text or with --json as the tree itself; --debug dumps the Go
structure of either stage.`,
	Args: cobra.ExactArgs(1),
	RunE: runAST,
}

func init() {
	astCmd.Flags().Bool("raw", false, "print the parse tree before grouping")
	astCmd.Flags().Bool("json", false, "print the parse tree as JSON")
	astCmd.Flags().Bool("debug", false, "dump tree structure instead of source form")
	astCmd.MarkFlagsMutuallyExclusive("json", "debug")
}

func runAST(cmd *cobra.Command, args []string) error {
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return err
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	a, err := compiler.ParseBytes(args[0], src)
	if err != nil {
		return renderErr(cmd, srcfiles.New(args[0], src), err)
	}
	if asJSON {
		b, err := json.MarshalIndent(a.Parsed(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s\n", b)
		return nil
	}
	if raw {
		if debug {
			pretty.Fprintf(os.Stdout, "%# v\n", a.Parsed())
			return nil
		}
		fmt.Fprint(os.Stdout, sfmt.Decls(a.Parsed()))
		return nil
	}
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	niceConfig, err := config.NiceConfig()
	if err != nil {
		return err
	}
	ds, err := compiler.Niceify(a, niceConfig)
	if err != nil {
		return renderErr(cmd, a.Files(), err)
	}
	if debug {
		pretty.Fprintf(os.Stdout, "%# v\n", ds)
		return nil
	}
	fmt.Fprint(os.Stdout, sfmt.NiceDecls(ds))
	return nil
}
