package core

import (
	"os"
	"path/filepath"
	"strings"
)

type Paths struct {
	HomeDir     string
	DataDir     string
	LogFile     string
	HistoryFile string
	ConfigFile  string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		defaultPaths = &Paths{
			HomeDir:     homeDir,
			DataDir:     filepath.Join(homeDir, ".gshmatch"),
			LogFile:     filepath.Join(homeDir, ".gshmatch", "gshmatch.log"),
			HistoryFile: filepath.Join(homeDir, ".gshmatch", "history.db"),
			ConfigFile:  filepath.Join(homeDir, ".gshmatch", "config.yaml"),
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func HistoryFile() string {
	ensureDefaultPaths()
	return defaultPaths.HistoryFile
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}

// ExpandTilde replaces a leading "~" in path with the home directory. Only
// "~" on its own or followed by a separator is expanded; "~user" forms and
// lookup failures leave path untouched. A nil homeDir uses os.UserHomeDir.
func ExpandTilde(path string, homeDir func() (string, error)) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path
	}

	if homeDir == nil {
		homeDir = os.UserHomeDir
	}
	home, err := homeDir()
	if err != nil || home == "" {
		return path
	}

	return strings.TrimRight(home, `/\`) + path[1:]
}
