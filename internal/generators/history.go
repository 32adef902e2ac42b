package generators

import (
	"context"

	"github.com/atinylittleshell/gshmatch/internal/linestate"
	"github.com/atinylittleshell/gshmatch/internal/matches"
	"go.uber.org/zap"
)

// HistorySource supplies previously run command words, most recent first.
type HistorySource interface {
	RecentCommandWords(limit int) ([]string, error)
}

// HistoryGenerator offers command words from history in command position.
// It never stops the fan-out, so commands and aliases are still listed.
type HistoryGenerator struct {
	source HistorySource
	limit  int
	logger *zap.Logger
}

// NewHistoryGenerator creates a HistoryGenerator reading limit entries from
// source. A nil source disables it.
func NewHistoryGenerator(source HistorySource, limit int, logger *zap.Logger) *HistoryGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryGenerator{source: source, limit: limit, logger: logger}
}

// Generate adds recent command words in command position.
func (g *HistoryGenerator) Generate(_ context.Context, line linestate.LineState, b *matches.Builder) bool {
	if g.source == nil || g.limit <= 0 || !line.IsCommandPosition() {
		return false
	}

	words, err := g.source.RecentCommandWords(g.limit)
	if err != nil {
		g.logger.Debug("failed to read history", zap.Error(err))
		return false
	}

	for _, w := range words {
		if IsPathBasedCommand(w) {
			continue
		}
		b.Add(w, matches.TypeOf(matches.KindWord))
	}
	return false
}
