package driver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fernlang/fern/compiler/ast"
	"github.com/fernlang/fern/compiler/nice"
)

// Config is the project configuration, usually read from fern.yaml.  The
// zero value checks the working directory with the standard default
// fixity, renders every diagnostic, and leaves the cache off.
type Config struct {
	// Roots are the files and directories checked when the command line
	// names none.
	Roots []string `yaml:"roots"`
	// DefaultFixity applies to every name with no fixity declaration in
	// scope.
	DefaultFixity FixityConfig `yaml:"default_fixity"`
	// MaxDiagnostics bounds the diagnostics rendered per file; zero shows
	// all of them.
	MaxDiagnostics int `yaml:"max_diagnostics"`
	// Cache enables the on-disk per-file result cache.
	Cache bool `yaml:"cache"`
	// CacheDir overrides the standard cache location.
	CacheDir string `yaml:"cache_dir"`
}

// FixityConfig spells a fixity in configuration syntax: an associativity
// keyword and a precedence level.
type FixityConfig struct {
	Assoc string `yaml:"assoc"`
	Prec  int    `yaml:"prec"`
}

// LoadConfig reads a fern.yaml.  Unknown keys are errors; a missing or
// empty file is the zero configuration.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	defer f.Close()
	var c Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// NiceConfig translates the configured default fixity, keeping the
// grouping pass's own default when none is configured.
func (c Config) NiceConfig() (nice.Config, error) {
	if c.DefaultFixity == (FixityConfig{}) {
		return nice.DefaultConfig(), nil
	}
	assoc, err := ast.ParseAssoc(c.DefaultFixity.Assoc)
	if err != nil {
		return nice.Config{}, err
	}
	return nice.Config{DefaultFixity: ast.Fixity{Assoc: assoc, Prec: c.DefaultFixity.Prec}}, nil
}
