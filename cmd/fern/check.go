package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fernlang/fern/compiler/diagfmt"
	"github.com/fernlang/fern/compiler/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [path ...]",
	Short: "Parse and group source files, reporting anything ill-formed",
	Long: `Check parses the named files, walks the named directories for .fern
sources, and runs declaration grouping over each file.  With no paths it
checks the roots from the configuration file.  Diagnostics go to
standard error and a run that finds any exits nonzero.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("no-cache", false, "bypass the content cache")
	checkCmd.Flags().Int("max-diagnostics", 0, "maximum diagnostics to show per file (0 shows all)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if noCache, err := cmd.Flags().GetBool("no-cache"); err != nil {
		return err
	} else if noCache {
		config.Cache = false
	}
	if cmd.Flags().Changed("max-diagnostics") {
		if config.MaxDiagnostics, err = cmd.Flags().GetInt("max-diagnostics"); err != nil {
			return err
		}
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	d, err := driver.New(config, logger)
	if err != nil {
		return err
	}
	results, err := d.Check(cmd.Context(), args)
	if err != nil {
		return err
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	opts := diagfmt.Options{Color: color, Max: config.MaxDiagnostics}
	var bad bool
	for _, r := range results {
		if len(r.Diags) == 0 {
			continue
		}
		bad = true
		if err := diagfmt.Render(os.Stderr, r.Files, r.Diags, opts); err != nil {
			return err
		}
	}
	if bad {
		cmd.SilenceErrors = true
		return errDiagnostics
	}
	return nil
}
