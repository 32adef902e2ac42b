package core

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	ResetPaths()
	defer ResetPaths()

	assert.Equal(t, home, HomeDir())
	assert.Equal(t, filepath.Join(home, ".gshmatch"), DataDir())
	assert.Equal(t, filepath.Join(home, ".gshmatch", "gshmatch.log"), LogFile())
	assert.Equal(t, filepath.Join(home, ".gshmatch", "history.db"), HistoryFile())
	assert.Equal(t, filepath.Join(home, ".gshmatch", "config.yaml"), ConfigFile())
	assert.DirExists(t, DataDir())
}

func TestExpandTilde(t *testing.T) {
	home := func() (string, error) { return "/home/me/", nil }
	failing := func() (string, error) { return "", errors.New("no home") }

	tests := []struct {
		name     string
		path     string
		homeDir  func() (string, error)
		expected string
	}{
		{"bare tilde", "~", home, "/home/me"},
		{"tilde slash", "~/src", home, "/home/me/src"},
		{"tilde backslash", `~\src`, home, `/home/me\src`},
		{"other user", "~bob/src", home, "~bob/src"},
		{"no tilde", "src/~", home, "src/~"},
		{"empty", "", home, ""},
		{"lookup fails", "~/src", failing, "~/src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandTilde(tt.path, tt.homeDir))
		})
	}
}
