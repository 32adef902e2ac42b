// Package generators provides the match generators the pipeline fans out to:
// registered command specs, shell completion functions, history, command
// names and files.
package generators

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/atinylittleshell/gshmatch/internal/linestate"
	"github.com/atinylittleshell/gshmatch/internal/matches"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/interp"
)

// CompletionType represents the type of completion.
type CompletionType string

const (
	// WordListCompletion completes from a fixed word list (-W).
	WordListCompletion CompletionType = "W"
	// FunctionCompletion runs a shell function that fills COMPREPLY (-F).
	FunctionCompletion CompletionType = "F"
)

// CompletionSpec says how to complete the arguments of one command.
type CompletionSpec struct {
	Command string
	Type    CompletionType
	Value   string // function name or word list
}

// SpecRegistry holds the completion specs registered with `complete`.
type SpecRegistry struct {
	specs map[string]CompletionSpec
}

// NewSpecRegistry creates a new SpecRegistry.
func NewSpecRegistry() *SpecRegistry {
	return &SpecRegistry{
		specs: make(map[string]CompletionSpec),
	}
}

// AddSpec adds or replaces the spec for spec.Command.
func (r *SpecRegistry) AddSpec(spec CompletionSpec) {
	r.specs[spec.Command] = spec
}

// RemoveSpec removes the spec for command, if any.
func (r *SpecRegistry) RemoveSpec(command string) {
	delete(r.specs, command)
}

// GetSpec returns the spec for command.
func (r *SpecRegistry) GetSpec(command string) (CompletionSpec, bool) {
	spec, ok := r.specs[command]
	return spec, ok
}

// ListSpecs returns every spec ordered by command.
func (r *SpecRegistry) ListSpecs() []CompletionSpec {
	specs := make([]CompletionSpec, 0, len(r.specs))
	for _, spec := range r.specs {
		specs = append(specs, spec)
	}
	slices.SortFunc(specs, func(a, b CompletionSpec) int {
		return cmp.Compare(a.Command, b.Command)
	})
	return specs
}

// SpecGenerator completes the arguments of commands that have a registered
// spec. Its result is definitive whenever a spec applies.
type SpecGenerator struct {
	registry *SpecRegistry
	runner   func() *interp.Runner
	logger   *zap.Logger
}

// NewSpecGenerator creates a SpecGenerator. runner supplies the shell that
// function specs run in; it may return nil when no shell is available.
func NewSpecGenerator(registry *SpecRegistry, runner func() *interp.Runner, logger *zap.Logger) *SpecGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpecGenerator{registry: registry, runner: runner, logger: logger}
}

// Generate completes arguments of commands that have a spec.
func (g *SpecGenerator) Generate(ctx context.Context, line linestate.LineState, b *matches.Builder) bool {
	if line.IsCommandPosition() {
		return false
	}

	spec, ok := g.registry.GetSpec(line.CommandWord())
	if !ok {
		return false
	}

	switch spec.Type {
	case WordListCompletion:
		for _, w := range strings.Fields(spec.Value) {
			b.Add(w, matches.TypeOf(matches.KindWord))
		}
		return true

	case FunctionCompletion:
		var runner *interp.Runner
		if g.runner != nil {
			runner = g.runner()
		}
		if runner == nil {
			g.logger.Debug("no shell for completion function", zap.String("function", spec.Value))
			return false
		}

		results, err := NewShellFunction(spec.Value, runner).Execute(ctx, line)
		if err != nil {
			g.logger.Debug("completion function failed", zap.String("function", spec.Value), zap.Error(err))
			return false
		}
		for _, r := range results {
			b.Add(r, matches.TypeOf(matches.KindArg))
		}
		return true
	}

	g.logger.Debug("unsupported completion type", zap.String("type", string(spec.Type)))
	return false
}
