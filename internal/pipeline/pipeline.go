// Package pipeline runs one completion cycle over a match registry: generate,
// select, then optionally sort.
package pipeline

import (
	"context"

	"github.com/atinylittleshell/gshmatch/internal/core"
	"github.com/atinylittleshell/gshmatch/internal/linestate"
	"github.com/atinylittleshell/gshmatch/internal/matches"
	"github.com/atinylittleshell/gshmatch/internal/strcompare"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Cycle holds the settings in effect for one completion cycle.
type Cycle struct {
	SortDirs SortDirs
	// NoSort leaves the matches in generation order.
	NoSort  bool
	Compare strcompare.Options
	Locale  language.Tag
	// TildeExpansion expands a leading "~" in the needle before selection.
	TildeExpansion bool
	HomeDir        func() (string, error)
}

// DefaultCycle returns the settings used when nothing is configured.
func DefaultCycle() Cycle {
	return Cycle{
		SortDirs: SortDirsWith,
		Compare:  strcompare.Options{Mode: strcompare.Relaxed},
		Locale:   language.Und,
	}
}

// Pipeline drives a Matches through completion cycles.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	matches  *matches.Matches
	logger   *zap.Logger
	noSort   bool
	collator *strcompare.Collator
}

// New creates a Pipeline that fills m. A nil logger discards logs.
func New(m *matches.Matches, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{matches: m, logger: logger}
}

// Matches returns the registry the pipeline fills.
func (p *Pipeline) Matches() *matches.Matches {
	return p.matches
}

// Reset starts a new cycle.
func (p *Pipeline) Reset() {
	p.matches.Reset()
	p.noSort = false
}

// SetNoSort suppresses sorting for the current cycle.
func (p *Pipeline) SetNoSort(noSort bool) {
	p.noSort = noSort
}

// Generate runs the generators in order until one reports a definitive
// result. Cancellation is only observed between generators.
func (p *Pipeline) Generate(ctx context.Context, line linestate.LineState, gens []Generator) {
	p.matches.SetWordBreakPosition(line.EndWordOffset())

	b := matches.NewBuilder(p.matches)
	for i, gen := range gens {
		if err := ctx.Err(); err != nil {
			p.logger.Debug("match generation cancelled", zap.Int("generator", i), zap.Error(err))
			break
		}
		if gen.Generate(ctx, line, b) {
			p.logger.Debug("generator produced definitive matches", zap.Int("generator", i))
			break
		}
	}

	p.logger.Debug("generated matches",
		zap.String("word", line.EndWord()),
		zap.Int("count", p.matches.UnfilteredCount()),
	)
}

// Select keeps the candidates that needle is a prefix of and freezes the
// registry.
func (p *Pipeline) Select(needle string, cycle Cycle) {
	if cycle.TildeExpansion {
		needle = core.ExpandTilde(needle, cycle.HomeDir)
	}

	selected := SelectMatches(cycle.Compare, needle, p.matches.Infos())
	p.matches.Coalesce(selected)

	p.logger.Debug("selected matches", zap.String("needle", needle), zap.Int("count", selected))
}

// Sort orders the visible matches unless sorting is suppressed.
func (p *Pipeline) Sort(cycle Cycle) {
	if p.noSort || cycle.NoSort {
		return
	}

	if p.collator == nil || !p.collator.Matches(cycle.Locale, cycle.Compare) {
		p.collator = strcompare.NewCollator(cycle.Locale, cycle.Compare)
	}

	count := p.matches.Count()
	SortMatches(p.matches.Infos()[:count], cycle.SortDirs, p.collator)
}

// Run performs a whole cycle for the line and returns the registry.
func (p *Pipeline) Run(ctx context.Context, line linestate.LineState, gens []Generator, cycle Cycle) *matches.Matches {
	p.Reset()
	p.Generate(ctx, line, gens)
	p.Select(line.EndWord(), cycle)
	p.Sort(cycle)
	return p.matches
}

// DisplayFilter offers the matches to each generator that implements
// DisplayFilterer. The first one that takes over display wins.
func (p *Pipeline) DisplayFilter(gens []Generator, names []string, popup bool) ([]DisplayEntry, bool) {
	for _, gen := range gens {
		f, ok := gen.(DisplayFilterer)
		if !ok {
			continue
		}
		if entries, ok := f.DisplayFilter(names, popup); ok {
			return entries, true
		}
	}
	return nil, false
}
