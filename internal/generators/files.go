package generators

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinylittleshell/gshmatch/internal/core"
	"github.com/atinylittleshell/gshmatch/internal/linestate"
	"github.com/atinylittleshell/gshmatch/internal/matches"
	"go.uber.org/zap"
)

type FileOptions struct {
	// Cwd returns the directory relative paths are resolved against. Nil uses
	// os.Getwd.
	Cwd     func() string
	HomeDir func() (string, error)
	// TildeExpansion makes candidates carry the expanded home directory, the
	// way the needle is expanded before selection.
	TildeExpansion bool
	// ReadDir lists a directory. Nil uses os.ReadDir.
	ReadDir func(name string) ([]fs.DirEntry, error)
	Logger  *zap.Logger
}

// FileGenerator lists the directory named by the word being completed. It is
// the fallback generator, so its result is always definitive.
type FileGenerator struct {
	opts FileOptions
}

// NewFileGenerator creates a FileGenerator, filling unset options with the
// process defaults.
func NewFileGenerator(opts FileOptions) *FileGenerator {
	if opts.Cwd == nil {
		opts.Cwd = func() string {
			dir, _ := os.Getwd()
			return dir
		}
	}
	if opts.ReadDir == nil {
		opts.ReadDir = os.ReadDir
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &FileGenerator{opts: opts}
}

// splitDir splits word after its last path separator.
func splitDir(word string) (dir string, base string) {
	i := strings.LastIndexAny(word, `/\`)
	return word[:i+1], word[i+1:]
}

func (g *FileGenerator) resolve(dir string) string {
	resolved := core.ExpandTilde(dir, g.opts.HomeDir)
	if resolved == "" {
		return g.opts.Cwd()
	}
	if !filepath.IsAbs(resolved) && !strings.HasPrefix(resolved, "/") {
		resolved = filepath.Join(g.opts.Cwd(), resolved)
	}
	return resolved
}

// Generate adds the entries of the directory named by the end word.
func (g *FileGenerator) Generate(_ context.Context, line linestate.LineState, b *matches.Builder) bool {
	b.SetMatchesAreFiles(true)

	dir, base := splitDir(line.EndWord())
	prefix := dir
	if g.opts.TildeExpansion {
		prefix = core.ExpandTilde(dir, g.opts.HomeDir)
	}

	resolved := g.resolve(dir)
	entries, err := g.opts.ReadDir(resolved)
	if err != nil {
		g.opts.Logger.Debug("cannot list directory", zap.String("dir", resolved), zap.Error(err))
		return true
	}

	showHidden := strings.HasPrefix(base, ".")
	for _, entry := range entries {
		name := entry.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}

		mode := entry.Type()
		if info, err := entry.Info(); err == nil {
			mode = info.Mode()
		}

		t := matches.TypeFromFileInfo(name, mode)
		text := prefix + name
		if t.Is(matches.KindDir) {
			text += "/"
		}
		b.Add(text, t)
	}
	return true
}
