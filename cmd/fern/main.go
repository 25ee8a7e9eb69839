package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/fernlang/fern/compiler/driver"
)

// version is set by the linker on release builds.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "fern",
	Short: "Fern language front end",
	Long: `Fern parses source files, groups each signature with its clauses, and
reports the problems a later checking pass could not recover from.`,
	SilenceUsage: true,
}

// errDiagnostics signals a run that printed diagnostics and should exit
// nonzero without cobra reporting anything further.
var errDiagnostics = errors.New("diagnostics reported")

func main() {
	rootCmd.Version = version
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "fern.yaml", "project configuration file")
	rootCmd.PersistentFlags().Bool("verbose", false, "log the work behind each command")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f)), nil
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func loadConfig(cmd *cobra.Command) (driver.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return driver.Config{}, err
	}
	return driver.LoadConfig(path)
}
