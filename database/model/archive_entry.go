package model

import (
	"path"
	"strings"
	"time"
)

const CREATE_ARCHIVE_ENTRIES_TABLE = `
CREATE TABLE IF NOT EXISTS archive_entries (
id INTEGER PRIMARY KEY AUTOINCREMENT,

archive_id INTEGER NOT NULL,

full_path TEXT NOT NULL,
name TEXT NOT NULL,
parent_path TEXT NOT NULL,
entry_type TEXT NOT NULL,
size_bytes INTEGER,
mode INTEGER,
modified_at TEXT,
sha256 TEXT,

FOREIGN KEY(archive_id) REFERENCES archives(id) ON DELETE CASCADE
);`

const CREATE_ARCHIVE_ENTRIES_INDEX = `CREATE INDEX IF NOT EXISTS idx_archive_entries_parent
ON archive_entries(archive_id, parent_path);`

type ArchiveEntryRow struct {
	Id         int64     `json:"id"`
	ArchiveId  int64     `json:"archive_id"`
	FullPath   string    `json:"full_path"`
	Name       string    `json:"name"`
	ParentPath string    `json:"parent_path"`
	EntryType  string    `json:"entry_type"` // 'file' | 'dir' | 'empty_dir'
	SizeBytes  int64     `json:"size_bytes"`
	Mode       uint32    `json:"mode"`
	ModifiedAt time.Time `json:"modified_at"`
	Sha256     string    `json:"sha256"`
}

// SplitEntryPath returns the parent directory and base name of an in-archive
// path. Top level entries have an empty parent.
func SplitEntryPath(fullPath string) (string, string) {
	fullPath = strings.TrimSuffix(fullPath, "/")
	parent, name := path.Split(fullPath)
	return strings.TrimSuffix(parent, "/"), name
}
