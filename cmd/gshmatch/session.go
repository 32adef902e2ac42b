package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atinylittleshell/gshmatch/internal/config"
	"github.com/atinylittleshell/gshmatch/internal/generators"
	"github.com/atinylittleshell/gshmatch/internal/history"
	"github.com/atinylittleshell/gshmatch/internal/linestate"
	"github.com/atinylittleshell/gshmatch/internal/matches"
	"github.com/atinylittleshell/gshmatch/internal/pipeline"
	"github.com/atinylittleshell/gshmatch/internal/render"
	"github.com/atinylittleshell/gshmatch/internal/styles"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/interp"
)

const suggestionLimit = 3

type sessionOptions struct {
	Config *config.Config
	Logger *zap.Logger
	// History feeds command word completion. Nil disables it.
	History *history.Manager
	// RcFile is sourced into the shell before completing. Empty skips it.
	RcFile string
	Env    []string
	// Dir is the shell working directory. Empty uses the process directory.
	Dir     string
	Stderr  io.Writer
	HomeDir func() (string, error)
	// LookupEnv resolves the locale. Nil uses os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// session wires one shell, one match registry and the generators together.
type session struct {
	cfg      *config.Config
	logger   *zap.Logger
	runner   *interp.Runner
	registry *generators.SpecRegistry
	pipeline *pipeline.Pipeline
	gens     []pipeline.Generator
	cycle    pipeline.Cycle
}

func newSession(ctx context.Context, opts sessionOptions) (*session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	lookupEnv := opts.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	cycle := opts.Config.Cycle(lookupEnv)
	cycle.HomeDir = opts.HomeDir

	registry := generators.NewSpecRegistry()
	runner, err := generators.NewRunner(generators.ShellOptions{
		Env:      opts.Env,
		Dir:      opts.Dir,
		Stderr:   stderr,
		Registry: registry,
		Cycle:    cycle,
	})
	if err != nil {
		return nil, err
	}

	if opts.RcFile != "" {
		if err := generators.SourceFile(ctx, runner, opts.RcFile); err != nil {
			logger.Warn("failed to load rc file", zap.String("path", opts.RcFile), zap.Error(err))
			fmt.Fprintln(stderr, styles.WARNING(fmt.Sprintf("failed to load %s: %v", opts.RcFile, err)))
		}
	}

	matchesOpts := opts.Config.MatchesOptions(logger)
	matchesOpts.HomeDir = opts.HomeDir

	s := &session{
		cfg:      opts.Config,
		logger:   logger,
		runner:   runner,
		registry: registry,
		pipeline: pipeline.New(matches.New(matchesOpts), logger),
		cycle:    cycle,
	}

	// An untyped nil keeps the history generator disabled.
	var historySource generators.HistorySource
	if opts.History != nil {
		historySource = opts.History
	}

	shell := func() *interp.Runner { return s.runner }
	s.gens = []pipeline.Generator{
		generators.NewSpecGenerator(registry, shell, logger),
		generators.NewHistoryGenerator(historySource, opts.Config.History.Limit, logger),
		generators.NewCommandGenerator(shell, s.pathEnv, opts.Config.CompareOptions()),
		generators.NewFileGenerator(generators.FileOptions{
			Cwd:            s.dir,
			HomeDir:        opts.HomeDir,
			TildeExpansion: opts.Config.Match.TildeExpansion,
			Logger:         logger,
		}),
	}

	return s, nil
}

func (s *session) dir() string {
	if s.runner.Dir != "" {
		return s.runner.Dir
	}
	dir, _ := os.Getwd()
	return dir
}

// pathEnv returns PATH as the rc file left it.
func (s *session) pathEnv() string {
	if v, ok := s.runner.Vars["PATH"]; ok && v.IsSet() {
		return v.String()
	}
	return s.runner.Env.Get("PATH").String()
}

// Complete runs one completion cycle for the word under cursor.
func (s *session) Complete(ctx context.Context, line string, cursor int) *matches.Matches {
	return s.pipeline.Run(ctx, linestate.Parse(line, cursor), s.gens, s.cycle)
}

func (s *session) reportNoMatches(w io.Writer, m *matches.Matches, line string, cursor int) {
	needle := linestate.Parse(line, cursor).EndWord()
	fmt.Fprintln(w, styles.WARNING(fmt.Sprintf("no matches for %q", needle)))

	if suggestions := render.Suggest(m, needle, suggestionLimit); len(suggestions) > 0 {
		fmt.Fprintln(w, styles.HINT("did you mean: "+strings.Join(suggestions, ", ")))
	}
}

func newIter(m *matches.Matches, pattern string) *matches.Iter {
	if pattern != "" {
		return m.IterPattern(pattern)
	}
	return m.Iter()
}

// writeMatches prints the matches, letting a generator that renders its own
// listing take over first.
func (s *session) writeMatches(w io.Writer, m *matches.Matches, pattern string, width int, styled bool) error {
	var out string
	if entries, ok := s.pipeline.DisplayFilter(s.gens, matchTexts(m, pattern), false); ok {
		out = render.DisplayListing(entries, styled)
	} else if styled {
		out = render.Listing(newIter(m, pattern), width, true)
	} else {
		out = render.Lines(newIter(m, pattern))
	}
	_, err := io.WriteString(w, out)
	return err
}

func matchTexts(m *matches.Matches, pattern string) []string {
	var texts []string
	for it := newIter(m, pattern); it.Next(); {
		texts = append(texts, it.Match())
	}
	return texts
}

func storeStats(m *matches.Matches) string {
	store := m.Store()
	return fmt.Sprintf("%d of %d candidates selected, %s stored in %d %s pages",
		m.Count(),
		m.UnfilteredCount(),
		humanize.Bytes(uint64(store.Used())),
		store.PageCount(),
		humanize.Bytes(uint64(store.PageSize())),
	)
}
