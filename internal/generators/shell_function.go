package generators

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atinylittleshell/gshmatch/internal/linestate"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ShellFunction is a bash-style completion function. It is called with the
// command, the word being completed and the previous word, and reports its
// results through COMPREPLY.
type ShellFunction struct {
	Name   string
	runner *interp.Runner
}

// NewShellFunction creates a ShellFunction calling name in runner.
func NewShellFunction(name string, runner *interp.Runner) *ShellFunction {
	return &ShellFunction{Name: name, runner: runner}
}

// Execute runs the function in a subshell with COMP_LINE, COMP_POINT,
// COMP_WORDS and COMP_CWORD describing the line, and returns COMPREPLY.
func (f *ShellFunction) Execute(ctx context.Context, line linestate.LineState) ([]string, error) {
	args := line.Args()
	if len(args) == 0 {
		args = []string{""}
	}

	text := line.Line()[:line.Cursor()]
	offset := line.CommandOffset()
	if offset < line.WordCount() {
		text = text[line.Words()[offset].Offset:]
	}

	script, err := completionScript(f.Name, text, args)
	if err != nil {
		return nil, err
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(script), f.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse completion script: %w", err)
	}

	sub := f.runner.Subshell()
	interp.StdIO(nil, io.Discard, io.Discard)(sub) //nolint:errcheck

	if err := sub.Run(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to execute completion function %s: %w", f.Name, err)
	}

	compreply, ok := sub.Vars["COMPREPLY"]
	if !ok {
		return nil, nil
	}

	switch compreply.Kind {
	case expand.Indexed:
		return compreply.List, nil
	case expand.String:
		if compreply.Str == "" {
			return nil, nil
		}
		return []string{compreply.Str}, nil
	}
	return nil, nil
}

func completionScript(name string, text string, args []string) (string, error) {
	quoted := make([]string, len(args))
	for i, arg := range args {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote completion word %q: %w", arg, err)
		}
		quoted[i] = q
	}

	quotedLine, err := syntax.Quote(text, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("cannot quote completion line: %w", err)
	}

	prev := "''"
	if len(quoted) > 1 {
		prev = quoted[len(quoted)-2]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "COMP_LINE=%s\n", quotedLine)
	fmt.Fprintf(&sb, "COMP_POINT=%d\n", len(text))
	fmt.Fprintf(&sb, "COMP_WORDS=(%s)\n", strings.Join(quoted, " "))
	fmt.Fprintf(&sb, "COMP_CWORD=%d\n", len(args)-1)
	sb.WriteString("COMPREPLY=()\n")
	fmt.Fprintf(&sb, "%s %s %s %s\n", name, quoted[0], quoted[len(quoted)-1], prev)
	return sb.String(), nil
}
