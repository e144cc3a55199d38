// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     source
// Description: Loading source units and checking them concurrently
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package source

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/msto63/glottony/pkg/core/cache"
	glerrors "github.com/msto63/glottony/pkg/core/errors"
	"github.com/msto63/glottony/pkg/core/logging"
	"github.com/msto63/glottony/pkg/glottony/ast"
	"github.com/msto63/glottony/pkg/glottony/parser"
)

// Stdin is the path that selects standard input
const Stdin = "-"

// Unit is one named piece of source text
type Unit struct {
	Name string
	Text string
}

// Line returns the 1-based line n of the unit without its newline
func (u *Unit) Line(n int) string {
	if n < 1 {
		return ""
	}
	lines := strings.Split(u.Text, "\n")
	if n > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[n-1], "\r")
}

// Load reads the file at path, or standard input for "-". Files larger
// than maxSize bytes are rejected; maxSize <= 0 disables the check.
func Load(path string, maxSize int) (*Unit, error) {
	if path == Stdin {
		return LoadReader("<stdin>", os.Stdin, maxSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, glerrors.Wrap(err, "cannot open source").
			WithCode(glerrors.CodeIOError).
			WithOperation("source.Load").
			WithDetail("path", path)
	}
	defer f.Close()

	return LoadReader(path, f, maxSize)
}

// LoadReader reads a unit from r
func LoadReader(name string, r io.Reader, maxSize int) (*Unit, error) {
	if maxSize > 0 {
		r = io.LimitReader(r, int64(maxSize)+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, glerrors.Wrap(err, "cannot read source").
			WithCode(glerrors.CodeIOError).
			WithOperation("source.Load").
			WithDetail("path", name)
	}
	if maxSize > 0 && len(data) > maxSize {
		return nil, glerrors.Newf("%s exceeds the size limit of %d bytes", name, maxSize).
			WithCode(glerrors.CodeInvalidInput).
			WithOperation("source.Load").
			WithDetail("path", name)
	}

	return &Unit{Name: name, Text: string(data)}, nil
}

// Expand replaces directories in paths by the files below them whose
// extension is in exts. Files named explicitly are kept as given.
func Expand(paths []string, exts []string) ([]string, error) {
	var out []string
	for _, path := range paths {
		if path == Stdin {
			out = append(out, path)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, glerrors.Wrap(err, "cannot access source").
				WithCode(glerrors.CodeIOError).
				WithOperation("source.Expand").
				WithDetail("path", path)
		}
		if !info.IsDir() {
			out = append(out, path)
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && HasExtension(p, exts) {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, glerrors.Wrap(err, "cannot walk directory").
				WithCode(glerrors.CodeIOError).
				WithOperation("source.Expand").
				WithDetail("path", path)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

// HasExtension reports whether path ends in one of exts
func HasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// Result is the outcome of checking one unit
type Result struct {
	Path   string           // Path as given
	Unit   *Unit            // Loaded source; nil if loading failed
	File   *ast.File        // Parsed tree; nil on any error
	Errors parser.ErrorList // Lexical and syntax errors
	Err    error            // Loading or other non-syntax failure
}

// OK reports whether the unit parsed without errors
func (r Result) OK() bool {
	return r.Err == nil && len(r.Errors) == 0
}

// ParseUnit parses u with p and sorts the outcome into a Result
func ParseUnit(p *parser.Parser, u *Unit) Result {
	res := Result{Path: u.Name, Unit: u}

	file, err := p.Parse(u.Text)
	if err != nil {
		if list := parser.Errors(err); list != nil {
			res.Errors = list
		} else {
			res.Err = glerrors.Wrap(err, "cannot parse "+u.Name)
		}
		return res
	}

	res.File = file
	return res
}

// ParseFile loads and parses a single file
func ParseFile(p *parser.Parser, path string, maxSize int) Result {
	unit, err := Load(path, maxSize)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	return ParseUnit(p, unit)
}

// Options configures CheckAll
type Options struct {
	Parser  parser.Options       // Options for every parse
	Workers int                  // Units checked in parallel (default 1)
	MaxSize int                  // Maximum file size in bytes
	Logger  *logging.Logger      // Progress logging; nil disables it
	Cache   *cache.Cache[Result] // Parse results by content; nil disables it
}

// cacheKey identifies a parse outcome by text and the options that
// affect it
func cacheKey(opts parser.Options, text string) string {
	return cache.Key("parse", opts.Mode.String(), strconv.Itoa(opts.MaxErrors), strconv.Itoa(opts.MaxInputLength), text)
}

// checkFile is ParseFile with an optional result cache
func checkFile(p *parser.Parser, path string, opts Options) Result {
	if opts.Cache == nil {
		return ParseFile(p, path, opts.MaxSize)
	}

	unit, err := Load(path, opts.MaxSize)
	if err != nil {
		return Result{Path: path, Err: err}
	}

	key := cacheKey(p.Options(), unit.Text)
	if cached, ok := opts.Cache.Get(key); ok {
		cached.Path = path
		cached.Unit = unit
		return cached
	}

	res := ParseUnit(p, unit)
	if res.Err == nil {
		opts.Cache.Set(key, res)
	}
	return res
}

// CheckAll loads and parses every path concurrently. Results are returned
// in input order. Per-file failures are reported in the results; the
// returned error is only set when ctx is canceled.
func CheckAll(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	p := parser.New(opts.Parser)
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = checkFile(p, path, opts)
			if err := results[i].Err; err != nil {
				logger.LogError("source not checked", err, "path", path)
				return nil
			}
			logger.Debug("source checked", "path", path, "errors", len(results[i].Errors))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, glerrors.Wrap(err, "check canceled").
			WithCode(glerrors.CodeCanceled).
			WithOperation("source.CheckAll")
	}
	return results, nil
}

// Summary counts the results by outcome
type Summary struct {
	Files  int
	Failed int
	Errors int
}

// Summarize returns the counts over results
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		s.Files++
		if !r.OK() {
			s.Failed++
		}
		s.Errors += len(r.Errors)
		if r.Err != nil {
			s.Errors++
		}
	}
	return s
}
