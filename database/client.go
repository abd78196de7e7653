package database

import (
	"arkiv/config"
	"arkiv/database/model"
	L "arkiv/logger"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const DateTimeFormat = time.RFC3339

var ErrDoesNotExist = errors.New("db: item does not exist")

type DB struct {
	D    *sql.DB
	path string
}

func NewDB(dbPath string) (*DB, error) {
	d, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// every pooled connection to ":memory:" would be a separate database
	d.SetMaxOpenConns(1)
	return &DB{
		D:    d,
		path: dbPath,
	}, nil
}

func GetDBFilePath(ctx context.Context) (string, error) {
	configDir, err := config.GetDefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "arkiv.db"), nil
}

func (d *DB) createTables(ctx context.Context) error {
	for _, q := range []string{
		"PRAGMA foreign_keys = ON;",
		model.CREATE_ARCHIVES_TABLE,
		model.CREATE_ARCHIVE_ENTRIES_TABLE,
		model.CREATE_ARCHIVE_ENTRIES_INDEX,
	} {
		_, err := d.D.ExecContext(ctx, q)
		if err != nil {
			return fmt.Errorf("db: could not create tables: %w", err)
		}
	}
	L.Debug(fmt.Sprintf("db: tables ready in %s", d.path))
	return nil
}

// OpenDefault opens and initializes the catalog in the config directory.
func OpenDefault(ctx context.Context) (*DB, error) {
	dbPath, err := GetDBFilePath(ctx)
	if err != nil {
		return nil, err
	}
	db, err := NewDB(dbPath)
	if err != nil {
		return nil, err
	}
	err = db.Init(ctx)
	if err != nil {
		db.Close(ctx)
		return nil, err
	}
	L.Debug(fmt.Sprintf("Using catalog at: %s", dbPath))
	return db, nil
}

func (d *DB) Init(ctx context.Context) error {
	return d.createTables(ctx)
}

func (d *DB) Close(ctx context.Context) error {
	return d.D.Close()
}

func ToTimeStr(t time.Time) string {
	return t.Local().Format(DateTimeFormat)
}

func FromTimeStr(ts string) time.Time {
	t, err := time.Parse(DateTimeFormat, ts)
	if err != nil {
		L.Error(fmt.Errorf("couldnt parse time for %s: %w", ts, err))
		return time.Time{}
	}
	return t
}
