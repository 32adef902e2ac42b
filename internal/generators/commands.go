package generators

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/atinylittleshell/gshmatch/internal/linestate"
	"github.com/atinylittleshell/gshmatch/internal/matches"
	"github.com/atinylittleshell/gshmatch/internal/strcompare"
	"github.com/samber/lo"
	"mvdan.cc/sh/v3/interp"
)

// osReadDir is a variable that can be overridden for testing.
var osReadDir = os.ReadDir

// CommandGenerator completes command names: shell aliases and the
// executables found on PATH.
type CommandGenerator struct {
	runner  func() *interp.Runner
	pathEnv func() string
	compare strcompare.Options
}

// NewCommandGenerator creates a CommandGenerator. Candidates are filtered with
// compare so that only names the needle can select are stored. pathEnv
// returns the PATH to search; nil reads it from the process environment.
func NewCommandGenerator(runner func() *interp.Runner, pathEnv func() string, compare strcompare.Options) *CommandGenerator {
	if pathEnv == nil {
		pathEnv = func() string { return os.Getenv("PATH") }
	}
	return &CommandGenerator{runner: runner, pathEnv: pathEnv, compare: compare}
}

// IsPathBasedCommand reports whether a command word names a path rather than
// a command to look up.
func IsPathBasedCommand(command string) bool {
	return strings.ContainsAny(command, `/\`) || strings.HasPrefix(command, "~")
}

// Generate adds aliases and PATH executables in command position.
func (g *CommandGenerator) Generate(_ context.Context, line linestate.LineState, b *matches.Builder) bool {
	if !line.IsCommandPosition() {
		return false
	}

	prefix := line.EndWord()
	if IsPathBasedCommand(prefix) {
		return false
	}

	added := false
	for _, alias := range g.aliases(prefix) {
		added = b.Add(alias, matches.TypeOf(matches.KindAlias)) || added
	}
	for _, cmd := range g.executables(prefix) {
		added = b.Add(cmd, matches.TypeOf(matches.KindCmd)) || added
	}
	return added
}

// aliases returns the shell aliases starting with prefix.
func (g *CommandGenerator) aliases(prefix string) []string {
	var runner *interp.Runner
	if g.runner != nil {
		runner = g.runner()
	}
	if runner == nil {
		return nil
	}

	// The alias table is unexported; read its keys through reflection.
	aliasField := reflect.ValueOf(runner).Elem().FieldByName("alias")
	if !aliasField.IsValid() || aliasField.Kind() != reflect.Map || aliasField.IsNil() {
		return nil
	}

	var names []string
	for _, key := range aliasField.MapKeys() {
		name := key.String()
		if strcompare.HasPrefix(g.compare, prefix, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// executables returns the distinct executable names on PATH starting with
// prefix, in PATH order.
func (g *CommandGenerator) executables(prefix string) []string {
	var names []string
	for _, dir := range filepath.SplitList(g.pathEnv()) {
		if dir == "" {
			continue
		}
		entries, err := osReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strcompare.HasPrefix(g.compare, prefix, entry.Name()) {
				continue
			}
			if !isExecutable(entry) {
				continue
			}
			names = append(names, entry.Name())
		}
	}
	return lo.Uniq(names)
}

func isExecutable(entry fs.DirEntry) bool {
	info, err := entry.Info()
	if err != nil {
		return false
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return true
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}
