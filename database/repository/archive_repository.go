package repository

import (
	"arkiv/config"
	"arkiv/database"
	"arkiv/database/model"
	"arkiv/file_io"
	L "arkiv/logger"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ArchiveRepository interface {
	CreateArchive(
		ctx context.Context,
		sourcePath string,
		outputPath string,
		archiveFormat config.ArchiveFormat,
		pipelineMode config.PipelineMode,
		createdAt time.Time,
		filesInfo *file_io.FilesInfo,
	) (int64, error)

	UpdateArchiveResult(
		ctx context.Context,
		id int64,
		status model.ArchiveStatus,
		appendedCount int64,
		skippedCount int64,
		archiveSize int64,
	) error

	UpdateArchiveStatus(
		ctx context.Context,
		id int64,
		status model.ArchiveStatus,
	) error

	GetArchiveById(
		ctx context.Context,
		id int64,
	) (*model.Archive, error)

	ListArchives(
		ctx context.Context,
		limit int,
	) ([]model.Archive, error)

	// FindSimilarArchive returns the latest completed archive of the same
	// source contents in the same format.
	FindSimilarArchive(
		ctx context.Context,
		sourcePath string,
		archiveFormat config.ArchiveFormat,
		filesInfo *file_io.FilesInfo,
	) (*model.Archive, error)
}

type archiveRepository struct {
	db *database.DB
}

func NewArchiveRepository(db *database.DB) ArchiveRepository {
	return archiveRepository{db: db}
}

const selectArchiveColumns = `SELECT
    id, run_id, source_path, output_path, archive_format, pipeline_mode,
    status, created_at, updated_at, content_hash, size, entry_count,
    appended_count, skipped_count, archive_size
  FROM archives`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArchive(row rowScanner) (*model.Archive, error) {
	var a model.Archive
	var createdAtStr, updatedAtStr string
	err := row.Scan(&a.Id, &a.RunId, &a.SourcePath, &a.OutputPath, &a.ArchiveFormat, &a.PipelineMode,
		&a.Status, &createdAtStr, &updatedAtStr, &a.ContentHash, &a.Size, &a.EntryCount,
		&a.AppendedCount, &a.SkippedCount, &a.ArchiveSize)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = database.FromTimeStr(createdAtStr)
	a.UpdatedAt = database.FromTimeStr(updatedAtStr)
	return &a, nil
}

// returns archive id upon successful creation
func (r archiveRepository) CreateArchive(
	ctx context.Context,
	sourcePath string,
	outputPath string,
	archiveFormat config.ArchiveFormat,
	pipelineMode config.PipelineMode,
	createdAt time.Time,
	filesInfo *file_io.FilesInfo,
) (int64, error) {
	result, err := r.db.D.ExecContext(ctx,
		`INSERT INTO archives (run_id, source_path, output_path, archive_format, pipeline_mode, status, created_at, updated_at, content_hash, size, entry_count)
        VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(),
		sourcePath,
		outputPath,
		archiveFormat.String(),
		pipelineMode.String(),
		string(model.ARCHIVE_STATUS_QUEUED),
		database.ToTimeStr(createdAt),
		database.ToTimeStr(createdAt),
		filesInfo.ContentHash,
		filesInfo.SizeInBytes,
		filesInfo.TotalEntries(),
	)
	if err != nil {
		return -1, fmt.Errorf("could not create archive record for path %s: %w", sourcePath, err)
	}
	lastInsertId, err := result.LastInsertId()
	if err != nil {
		return -1, fmt.Errorf("could not get last insert id for create archive: %w", err)
	}
	return lastInsertId, nil
}

func (r archiveRepository) UpdateArchiveResult(
	ctx context.Context,
	id int64,
	status model.ArchiveStatus,
	appendedCount int64,
	skippedCount int64,
	archiveSize int64,
) error {
	result, err := r.db.D.ExecContext(ctx,
		`UPDATE archives SET status=?, appended_count=?, skipped_count=?, archive_size=?, updated_at=? WHERE id=?`,
		string(status), appendedCount, skippedCount, archiveSize, database.ToTimeStr(time.Now()), id)
	if err != nil {
		return fmt.Errorf("could not update archive %d: %w", id, err)
	}
	return expectOneRow(result)
}

func (r archiveRepository) UpdateArchiveStatus(ctx context.Context, id int64, status model.ArchiveStatus) error {
	result, err := r.db.D.ExecContext(ctx,
		`UPDATE archives SET status=?, updated_at=? WHERE id=?`,
		string(status), database.ToTimeStr(time.Now()), id)
	if err != nil {
		return fmt.Errorf("could not update status of archive %d: %w", id, err)
	}
	return expectOneRow(result)
}

func (r archiveRepository) GetArchiveById(ctx context.Context, id int64) (*model.Archive, error) {
	row := r.db.D.QueryRowContext(ctx, selectArchiveColumns+" WHERE id=?", id)
	a, err := scanArchive(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrDoesNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("could not get archive %d: %w", id, err)
	}
	return a, nil
}

func (r archiveRepository) ListArchives(ctx context.Context, limit int) ([]model.Archive, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.D.QueryContext(ctx, selectArchiveColumns+" ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var archives []model.Archive
	for rows.Next() {
		a, err := scanArchive(rows)
		if err != nil {
			return nil, err
		}
		archives = append(archives, *a)
	}
	return archives, rows.Err()
}

func (r archiveRepository) FindSimilarArchive(
	ctx context.Context,
	sourcePath string,
	archiveFormat config.ArchiveFormat,
	filesInfo *file_io.FilesInfo,
) (*model.Archive, error) {
	row := r.db.D.QueryRowContext(ctx,
		selectArchiveColumns+` WHERE source_path=? AND archive_format=? AND content_hash=? AND status=?
    ORDER BY id DESC LIMIT 1`,
		sourcePath, archiveFormat.String(), filesInfo.ContentHash, string(model.ARCHIVE_STATUS_COMPLETED))
	a, err := scanArchive(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrDoesNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("could not find an archive with similar contents: %w", err)
	}
	L.Debug(fmt.Sprintf("FindSimilarArchive() result: %d", a.Id))
	return a, nil
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return database.ErrDoesNotExist
	}
	return nil
}
