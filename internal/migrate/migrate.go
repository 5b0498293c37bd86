// Package migrate applies the versioned employees schema with goose.
package migrate

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/pressly/goose"
)

// goose keeps its dialect in package state.
var mu sync.Mutex

// Dialect maps a gorm dialector name onto the goose dialect and the
// migrations subdirectory holding its SQL files.
func Dialect(gormName string) (dialect, subdir string, err error) {
	switch gormName {
	case "mysql":
		return "mysql", "mysql", nil
	case "postgres":
		return "postgres", "postgres", nil
	case "sqlite":
		return "sqlite3", "sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for dialect %q", gormName)
	}
}

type Migrator struct {
	db      *sql.DB
	dialect string
	dir     string
}

// New returns a Migrator reading <baseDir>/<dialect>/*.sql.
func New(db *sql.DB, gormName, baseDir string) (*Migrator, error) {
	dialect, subdir, err := Dialect(gormName)
	if err != nil {
		return nil, err
	}
	return &Migrator{db: db, dialect: dialect, dir: filepath.Join(baseDir, subdir)}, nil
}

func (m *Migrator) Dir() string { return m.dir }

func (m *Migrator) Up() error {
	return m.run(func() error { return goose.Up(m.db, m.dir) })
}

func (m *Migrator) Down() error {
	return m.run(func() error { return goose.Down(m.db, m.dir) })
}

func (m *Migrator) Status() error {
	return m.run(func() error { return goose.Status(m.db, m.dir) })
}

func (m *Migrator) Version() (int64, error) {
	var v int64
	err := m.run(func() error {
		var err error
		v, err = goose.GetDBVersion(m.db)
		return err
	})
	return v, err
}

func (m *Migrator) run(fn func() error) error {
	mu.Lock()
	defer mu.Unlock()
	if err := goose.SetDialect(m.dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return fn()
}
