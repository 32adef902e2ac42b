package pipeline

import (
	"context"

	"github.com/atinylittleshell/gshmatch/internal/linestate"
	"github.com/atinylittleshell/gshmatch/internal/matches"
)

// Generator produces candidates for the line being completed.
// It returns true when its result is definitive, which stops the remaining
// generators from running.
type Generator interface {
	Generate(ctx context.Context, line linestate.LineState, b *matches.Builder) bool
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, line linestate.LineState, b *matches.Builder) bool

func (f GeneratorFunc) Generate(ctx context.Context, line linestate.LineState, b *matches.Builder) bool {
	return f(ctx, line, b)
}

// DisplayEntry is one row of a custom match listing.
type DisplayEntry struct {
	Match       string
	Display     string
	Description string
}

// DisplayFilterer is implemented by generators that render their own match
// listing. DisplayFilter returns false to leave display to the editor.
type DisplayFilterer interface {
	DisplayFilter(matches []string, popup bool) ([]DisplayEntry, bool)
}
