package model

import (
	"arkiv/config"
	L "arkiv/logger"
	"fmt"
	"time"
)

type ArchiveStatus string

const (
	ARCHIVE_STATUS_QUEUED    ArchiveStatus = "QUEUED"
	ARCHIVE_STATUS_RUNNING   ArchiveStatus = "ARCHIVING"
	ARCHIVE_STATUS_ABORTED   ArchiveStatus = "ABORTED"
	ARCHIVE_STATUS_FAILED    ArchiveStatus = "FAILED"
	ARCHIVE_STATUS_COMPLETED ArchiveStatus = "COMPLETED"
)

const CREATE_ARCHIVES_TABLE = `CREATE TABLE IF NOT EXISTS archives (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL,

        source_path TEXT NOT NULL,
        output_path TEXT NOT NULL,
        archive_format TEXT NOT NULL,
        pipeline_mode TEXT NOT NULL,

        status TEXT NOT NULL,

        created_at TEXT NOT NULL,
        updated_at TEXT NOT NULL,

        content_hash TEXT NOT NULL,
        size INTEGER NOT NULL,
        entry_count INTEGER NOT NULL,
        appended_count INTEGER DEFAULT 0,
        skipped_count INTEGER DEFAULT 0,
        archive_size INTEGER DEFAULT 0
);`

type Archive struct {
	Id            int64
	RunId         string
	SourcePath    string
	OutputPath    string
	ArchiveFormat config.ArchiveFormat
	PipelineMode  config.PipelineMode
	Status        ArchiveStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ContentHash   string
	Size          int64
	EntryCount    int64
	AppendedCount int64
	SkippedCount  int64
	ArchiveSize   int64
}

func (a *Archive) String() string {
	return fmt.Sprintf("[Archive]\n  Id: %d\n  Source: %s\n  Output: %s\n  Format: %s\n  Status: %s\n  Size: %s -> %s\n  Entries: %d (appended %d, skipped %d)\n  Created: %s\n",
		a.Id,
		a.SourcePath,
		a.OutputPath,
		a.ArchiveFormat.String(),
		a.Status,
		L.HumanReadableBytes(uint64(a.Size)),
		L.HumanReadableBytes(uint64(a.ArchiveSize)),
		a.EntryCount,
		a.AppendedCount,
		a.SkippedCount,
		a.CreatedAt.Format(time.DateTime))
}
