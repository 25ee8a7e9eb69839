// Package driver runs the front end over sets of source files.  It
// discovers .fern sources under the configured roots, parses and groups
// them in parallel, and caches per-file results keyed by content so an
// unchanged file costs one hash instead of one parse.
package driver

import (
	"context"
	"crypto/sha256"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fernlang/fern/compiler"
	"github.com/fernlang/fern/compiler/diagfmt"
	"github.com/fernlang/fern/compiler/nice"
	"github.com/fernlang/fern/compiler/srcfiles"
)

// A Driver checks files and directories against one configuration.
type Driver struct {
	config Config
	nice   nice.Config
	logger *zap.Logger
	cache  *Cache
}

// New builds a driver.  A nil logger is quiet.  A cache that cannot be
// opened disables caching for the run rather than failing it.
func New(config Config, logger *zap.Logger) (*Driver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	niceConfig, err := config.NiceConfig()
	if err != nil {
		return nil, err
	}
	d := &Driver{config: config, nice: niceConfig, logger: logger}
	if config.Cache {
		dir := config.CacheDir
		if dir == "" {
			if dir, err = CacheDir(); err != nil {
				logger.Warn("cache disabled", zap.Error(err))
				return d, nil
			}
		}
		if d.cache, err = OpenCache(dir); err != nil {
			logger.Warn("cache disabled", zap.Error(err))
			d.cache = nil
		}
	}
	return d, nil
}

// A FileResult is the outcome of checking one source file.
type FileResult struct {
	// Path names the file as it was discovered.
	Path string
	// Decls counts the grouped declarations of a clean file.
	Decls int
	// Diags holds the file's diagnostics, empty when the file is clean.
	Diags []diagfmt.Diagnostic
	// Files anchors Diags to source lines for rendering.
	Files *srcfiles.List
	// Cached marks a result served from the content cache.
	Cached bool
}

// Check runs the front end over the named paths.  Files are checked as
// given and directories are walked for .fern sources; with no paths the
// configured roots are checked.  Files are processed in parallel and
// results come back in discovery order.  The error reports trouble
// running the check, not trouble found in the sources, which arrives as
// diagnostics in the results.
func (d *Driver) Check(ctx context.Context, paths []string) ([]FileResult, error) {
	if len(paths) == 0 {
		paths = d.config.Roots
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}
	names, err := discover(paths)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	results := make([]FileResult, len(names))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		i, name := i, name
		group.Go(func() error {
			r, err := d.checkFile(ctx, name)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	var count int
	for _, r := range results {
		count += len(r.Diags)
	}
	d.logger.Info("check complete",
		zap.Int("files", len(results)),
		zap.Int("errors", count),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}

func (d *Driver) checkFile(ctx context.Context, path string) (FileResult, error) {
	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}
	start := time.Now()
	src, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, err
	}
	key := CacheKey(sha256.Sum256(src))
	result := FileResult{Path: path, Files: srcfiles.New(path, src)}
	if rec, ok := d.cache.get(key); ok {
		result.Decls = rec.Decls
		result.Diags = rec.Diags
		result.Cached = true
		d.logger.Debug("cache hit", zap.String("file", path))
		return result, nil
	}
	a, err := compiler.ParseBytes(path, src)
	if err == nil {
		var ds []nice.Decl
		if ds, err = compiler.Niceify(a, d.nice); err == nil {
			result.Decls = len(ds)
		}
	}
	result.Diags = diagfmt.Diagnostics(err)
	rec := &record{Schema: cacheSchema, Path: path, Decls: result.Decls, Diags: result.Diags}
	if err := d.cache.put(key, rec); err != nil {
		d.logger.Warn("cache write failed", zap.String("file", path), zap.Error(err))
	}
	d.logger.Debug("checked",
		zap.String("file", path),
		zap.Int("decls", result.Decls),
		zap.Int("errors", len(result.Diags)),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// discover expands paths to the list of files to check.  Directories are
// walked for .fern files in lexical order; named files are taken as they
// are, whatever their suffix.
func discover(paths []string) ([]string, error) {
	var names []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			names = append(names, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() && strings.HasSuffix(p, ".fern") {
				names = append(names, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return names, nil
}
