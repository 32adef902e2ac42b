package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinylittleshell/gshmatch/internal/config"
	"github.com/atinylittleshell/gshmatch/internal/core"
	"github.com/atinylittleshell/gshmatch/internal/history"
	"github.com/atinylittleshell/gshmatch/internal/styles"
	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/term"
	"mvdan.cc/sh/v3/interp"
)

var BUILD_VERSION = "dev"

var configPath = flag.String("c", "", "path to the config file (default ~/.gshmatch/config.yaml)")
var rcPath = flag.String("rc", "", "shell script defining aliases, functions and completion specs (default ~/.gshmatchrc)")
var cursorFlag = flag.Int("cursor", -1, "cursor offset in the line (default end of line)")
var patternFlag = flag.String("pattern", "", "list candidates matching a glob pattern instead of the typed word")
var statsFlag = flag.Bool("stats", false, "print match store statistics to stderr")
var copyFlag = flag.Bool("copy", false, "copy the matches to the clipboard")
var addHistoryFlag = flag.Bool("add-history", false, "record the line as an executed command and exit")
var exitCodeFlag = flag.Int("exit-code", 0, "exit code recorded with -add-history")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `gshmatch - Completion match engine for POSIX-style command lines

USAGE:
  gshmatch [options] "command line"
  echo "command line" | gshmatch [options]

EXAMPLES:
  gshmatch "git ch"              Complete the last word of the line
  gshmatch -cursor 3 "git ch"    Complete the word under offset 3
  gshmatch -pattern '*.go' "vi " List candidates matching a glob
  gshmatch -add-history "make"   Remember a command for command completion

Completion specs, aliases and functions are loaded from ~/.gshmatchrc using
the bash builtins complete and compgen.

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(2)
	}

	logger, err := initializeLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // Flush any buffered log entries

	logger.Info("-------- new gshmatch run --------", zap.Any("args", os.Args))

	err = run(context.Background(), cfg, logger)

	var exitStatus interp.ExitStatus
	if errors.As(err, &exitStatus) {
		os.Exit(int(exitStatus))
	}

	if err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	line, err := readLine()
	if err != nil {
		return err
	}

	historyManager, err := initializeHistoryManager(cfg, logger)
	if err != nil {
		return err
	}
	if historyManager != nil {
		defer historyManager.Close()
	}

	if *addHistoryFlag {
		if historyManager == nil {
			return errors.New("history is disabled")
		}
		wd, _ := os.Getwd()
		_, err := historyManager.Record(line, wd, *exitCodeFlag)
		return err
	}

	s, err := newSession(ctx, sessionOptions{
		Config:  cfg,
		Logger:  logger,
		History: historyManager,
		RcFile:  resolveRcFile(),
		Env:     os.Environ(),
		Stderr:  os.Stderr,
	})
	if err != nil {
		return err
	}

	cursor := *cursorFlag
	if cursor < 0 {
		cursor = len(line)
	}
	m := s.Complete(ctx, line, cursor)

	width, styled := outputMode(os.Stdout)
	if err := s.writeMatches(os.Stdout, m, *patternFlag, width, styled); err != nil {
		return err
	}

	if *statsFlag {
		fmt.Fprintln(os.Stderr, styles.HINT(storeStats(m)))
	}

	if *copyFlag {
		if err := clipboard.WriteAll(strings.Join(matchTexts(m, *patternFlag), "\n")); err != nil {
			fmt.Fprintln(os.Stderr, styles.WARNING(fmt.Sprintf("failed to copy matches: %v", err)))
		}
	}

	if *patternFlag == "" && m.Count() == 0 {
		s.reportNoMatches(os.Stderr, m, line, cursor)
		return interp.ExitStatus(1)
	}
	return nil
}

// readLine takes the line from the arguments, or from the first line of stdin
// when it is not a terminal.
func readLine() (string, error) {
	if flag.NArg() > 0 {
		return strings.Join(flag.Args(), " "), nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no command line given, see gshmatch -h")
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func loadConfig() (*config.Config, error) {
	path := *configPath
	if path == "" {
		path = core.ConfigFile()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveRcFile() string {
	if *rcPath != "" {
		return *rcPath
	}

	path := filepath.Join(core.HomeDir(), ".gshmatchrc")
	if stat, err := os.Stat(path); err == nil && stat.Size() > 0 {
		return path
	}
	return ""
}

func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	logLevel, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	return loggerConfig.Build()
}

func initializeHistoryManager(cfg *config.Config, logger *zap.Logger) (*history.Manager, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}

	historyManager, err := history.Open(core.HistoryFile(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history manager: %w", err)
	}
	return historyManager, nil
}

// outputMode reports the terminal width and whether to style the output. Pipes
// get one match per line.
func outputMode(f *os.File) (int, bool) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}

	width, _, err := term.GetSize(fd)
	if err != nil {
		return 80, true
	}
	return width, true
}
