package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestRecordAndRecentEntries(t *testing.T) {
	m := openTestManager(t)

	_, err := m.Record("ls -la", "/tmp", 0)
	require.NoError(t, err)
	_, err = m.Record("make test", "/src", 2)
	require.NoError(t, err)
	entry, err := m.Record("git status", "/src", 0)
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.True(t, entry.ExitCode.Valid)

	entries, err := m.RecentEntries("", 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "ls -la", entries[0].Command)
	assert.Equal(t, "git status", entries[2].Command)
	assert.Equal(t, int32(2), entries[1].ExitCode.Int32)

	entries, err = m.RecentEntries("/src", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "git status", entries[0].Command)
}

func TestRecentCommandWords(t *testing.T) {
	m := openTestManager(t)

	for _, cmd := range []string{"git status", "ls", "  ", "git log", `"my tool" --flag`, "make"} {
		_, err := m.Record(cmd, "/", 0)
		require.NoError(t, err)
	}

	words, err := m.RecentCommandWords(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"make", "my tool", "git", "ls"}, words)

	words, err = m.RecentCommandWords(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"make", "my tool"}, words)
}

func TestReset(t *testing.T) {
	m := openTestManager(t)

	_, err := m.Record("echo hi", "/", 0)
	require.NoError(t, err)
	require.NoError(t, m.Reset())

	entries, err := m.RecentEntries("", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	m, err := Open(path, nil)
	require.NoError(t, err)
	_, err = m.Record("vim", "/", 0)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	m, err = Open(path, nil)
	require.NoError(t, err)
	defer m.Close()

	words, err := m.RecentCommandWords(5)
	require.NoError(t, err)
	assert.Equal(t, []string{"vim"}, words)
}
