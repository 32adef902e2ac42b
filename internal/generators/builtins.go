package generators

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atinylittleshell/gshmatch/internal/linestate"
	"github.com/atinylittleshell/gshmatch/internal/matches"
	"github.com/atinylittleshell/gshmatch/internal/pipeline"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ExecMiddleware wraps an ExecHandlerFunc to intercept builtin commands.
type ExecMiddleware = func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc

// NewCompleteCommandHandler implements the `complete` builtin on top of
// registry: `complete -W words cmd`, `complete -F fn cmd`, `complete -r cmd`
// and `complete [-p] [cmd]`.
func NewCompleteCommandHandler(registry *SpecRegistry) ExecMiddleware {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if len(args) == 0 || args[0] != "complete" {
				return next(ctx, args)
			}
			return handleCompleteCommand(stdout(ctx), registry, args[1:])
		}
	}
}

func stdout(ctx context.Context) io.Writer {
	return interp.HandlerCtx(ctx).Stdout
}

func handleCompleteCommand(w io.Writer, registry *SpecRegistry, args []string) error {
	if len(args) == 0 {
		return printCompletionSpecs(w, registry, "")
	}

	var (
		printMode  bool
		removeMode bool
		wordList   string
		function   string
		command    string
	)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-p":
			printMode = true
		case "-r":
			removeMode = true
		case "-W":
			if i+1 >= len(args) {
				return fmt.Errorf("complete: option -W requires a word list")
			}
			i++
			wordList = args[i]
		case "-F":
			if i+1 >= len(args) {
				return fmt.Errorf("complete: option -F requires a function name")
			}
			i++
			function = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("complete: unknown option: %s", arg)
			}
			command = arg
		}
	}

	switch {
	case printMode:
		return printCompletionSpecs(w, registry, command)
	case command == "":
		return fmt.Errorf("complete: no command specified")
	case removeMode:
		registry.RemoveSpec(command)
		return nil
	case wordList != "":
		registry.AddSpec(CompletionSpec{Command: command, Type: WordListCompletion, Value: wordList})
		return nil
	case function != "":
		registry.AddSpec(CompletionSpec{Command: command, Type: FunctionCompletion, Value: function})
		return nil
	}

	return fmt.Errorf("complete: invalid usage")
}

func printCompletionSpecs(w io.Writer, registry *SpecRegistry, command string) error {
	if command != "" {
		if spec, ok := registry.GetSpec(command); ok {
			return printCompletionSpec(w, spec)
		}
		return nil
	}

	for _, spec := range registry.ListSpecs() {
		if err := printCompletionSpec(w, spec); err != nil {
			return err
		}
	}
	return nil
}

func printCompletionSpec(w io.Writer, spec CompletionSpec) error {
	var err error
	switch spec.Type {
	case WordListCompletion:
		value, qerr := syntax.Quote(spec.Value, syntax.LangBash)
		if qerr != nil {
			return qerr
		}
		_, err = fmt.Fprintf(w, "complete -W %s %s\n", value, spec.Command)
	case FunctionCompletion:
		_, err = fmt.Fprintf(w, "complete -F %s %s\n", spec.Value, spec.Command)
	}
	return err
}

// NewCompgenCommandHandler implements the `compgen` builtin:
// `compgen -W words [word]` and `compgen -F fn [word]`. Candidates are
// selected with the same rules as interactive completion. runner supplies
// the shell that -F functions run in.
func NewCompgenCommandHandler(runner func() *interp.Runner, cycle pipeline.Cycle) ExecMiddleware {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if len(args) == 0 || args[0] != "compgen" {
				return next(ctx, args)
			}
			return handleCompgenCommand(ctx, stdout(ctx), runner, cycle, args[1:])
		}
	}
}

func handleCompgenCommand(ctx context.Context, w io.Writer, runner func() *interp.Runner, cycle pipeline.Cycle, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("compgen: no options specified")
	}

	var (
		wordList     string
		hasWordList  bool
		functionName string
		word         string
	)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-W":
			if i+1 >= len(args) {
				return fmt.Errorf("compgen: option -W requires a word list")
			}
			i++
			wordList = args[i]
			hasWordList = true
		case "-F":
			if i+1 >= len(args) {
				return fmt.Errorf("compgen: option -F requires a function name")
			}
			i++
			functionName = args[i]
		case "--":
			if i+1 < len(args) {
				word = args[i+1]
			}
			i = len(args)
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("compgen: unknown option: %s", arg)
			}
			word = arg
		}
	}

	var gen pipeline.Generator
	switch {
	case hasWordList:
		gen = pipeline.GeneratorFunc(func(_ context.Context, _ linestate.LineState, b *matches.Builder) bool {
			for _, item := range strings.Fields(wordList) {
				b.Add(item, matches.TypeOf(matches.KindWord))
			}
			return true
		})
	case functionName != "":
		var r *interp.Runner
		if runner != nil {
			r = runner()
		}
		if r == nil {
			return fmt.Errorf("compgen: no shell to run %s in", functionName)
		}
		results, err := NewShellFunction(functionName, r).Execute(ctx, singleWordLine(word))
		if err != nil {
			return fmt.Errorf("compgen: %w", err)
		}
		gen = pipeline.GeneratorFunc(func(_ context.Context, _ linestate.LineState, b *matches.Builder) bool {
			for _, result := range results {
				b.Add(result, matches.TypeOf(matches.KindArg))
			}
			return true
		})
	default:
		return fmt.Errorf("compgen: no completion type specified")
	}

	cycle.NoSort = true
	p := pipeline.New(matches.New(matches.Options{}), nil)
	m := p.Run(ctx, singleWordLine(word), []pipeline.Generator{gen}, cycle)

	for i := 0; i < m.Count(); i++ {
		if _, err := fmt.Fprintln(w, m.Match(i)); err != nil {
			return err
		}
	}
	if m.Count() == 0 {
		return interp.ExitStatus(1)
	}
	return nil
}

func singleWordLine(word string) linestate.LineState {
	return linestate.New(word, len(word), 0, []linestate.Word{
		{Offset: 0, Length: len(word), CommandWord: true},
	})
}
