// Package history persists the command lines a user has run so that their
// command words can be offered as completions.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/atinylittleshell/gshmatch/internal/linestate"
	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Command   string
	Directory string
	ExitCode  sql.NullInt32
}

// TableName keeps the table layout shared with gsh's history database.
func (Entry) TableName() string {
	return "history_entries"
}

type Manager struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open opens or creates the history database at dbFilePath.
func Open(dbFilePath string, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(dbFilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	logger.Debug("history database opened", zap.String("path", dbFilePath))
	return &Manager{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record stores a finished command.
func (m *Manager) Record(command string, directory string, exitCode int) (*Entry, error) {
	entry := Entry{
		Command:   command,
		Directory: directory,
		ExitCode:  sql.NullInt32{Int32: int32(exitCode), Valid: true},
	}

	if result := m.db.Create(&entry); result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

// RecentEntries returns up to limit entries, oldest first. A non-empty
// directory restricts the entries to commands run there.
func (m *Manager) RecentEntries(directory string, limit int) ([]Entry, error) {
	var entries []Entry
	db := m.db
	if directory != "" {
		db = db.Where("directory = ?", directory)
	}
	result := db.Order("created_at desc").Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	slices.Reverse(entries)
	return entries, nil
}

// RecentCommandWords returns the distinct command words of the most recent
// limit entries, most recent first.
func (m *Manager) RecentCommandWords(limit int) ([]string, error) {
	var commands []string
	result := m.db.Model(&Entry{}).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Pluck("command", &commands)
	if result.Error != nil {
		return nil, result.Error
	}

	words := lo.FilterMap(commands, func(command string, _ int) (string, bool) {
		word := linestate.Parse(command, len(command)).Word(0)
		return word, word != ""
	})
	return lo.Uniq(words), nil
}

// Reset deletes every entry.
func (m *Manager) Reset() error {
	result := m.db.Exec("DELETE FROM history_entries")
	if result.Error != nil {
		return result.Error
	}

	m.logger.Debug("history reset")
	return nil
}
