package repository

import (
	"arkiv/database"
	"arkiv/database/model"
	L "arkiv/logger"
	"context"
)

type EntryRepository interface {
	AddMany(ctx context.Context, entries []model.ArchiveEntryRow) error
	GetByParentPath(ctx context.Context, archiveId int64, parentPath string) ([]model.ArchiveEntryRow, error)
	CountByArchive(ctx context.Context, archiveId int64) (int64, error)
}

type entryRepository struct {
	db *database.DB
}

func NewEntryRepository(db *database.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) AddMany(ctx context.Context, entries []model.ArchiveEntryRow) error {
	tx, err := r.db.D.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	q := `
  INSERT INTO archive_entries
  (archive_id,
  full_path,
  name,
  parent_path,
  entry_type,
  size_bytes,
  mode,
  modified_at,
  sha256)
  VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, e := range entries {
		_, err = stmt.ExecContext(ctx, e.ArchiveId, e.FullPath, e.Name, e.ParentPath, e.EntryType,
			e.SizeBytes, e.Mode, database.ToTimeStr(e.ModifiedAt), e.Sha256)
		if err != nil {
			err1 := tx.Rollback()
			if err1 != nil {
				return err1
			}
			L.Debug("db: AddMany failure rollback success.")
			return err
		}
	}
	return tx.Commit()
}

func (r *entryRepository) GetByParentPath(ctx context.Context, archiveId int64, parentPath string) ([]model.ArchiveEntryRow, error) {
	q := `
  SELECT
  id,
  archive_id,
  full_path,
  name,
  parent_path,
  entry_type,
  size_bytes,
  mode,
  modified_at,
  sha256
  FROM archive_entries
  WHERE archive_id = ? AND parent_path = ?
  ORDER BY entry_type DESC, name ASC
  `
	rows, err := r.db.D.QueryContext(ctx,
		q,
		archiveId,
		parentPath)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []model.ArchiveEntryRow
	for rows.Next() {
		var e model.ArchiveEntryRow
		var modAtStr string
		if err := rows.Scan(&e.Id, &e.ArchiveId, &e.FullPath, &e.Name, &e.ParentPath, &e.EntryType,
			&e.SizeBytes, &e.Mode, &modAtStr, &e.Sha256); err != nil {
			return nil, err
		}
		e.ModifiedAt = database.FromTimeStr(modAtStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *entryRepository) CountByArchive(ctx context.Context, archiveId int64) (int64, error) {
	var n int64
	err := r.db.D.QueryRowContext(ctx, "SELECT COUNT(*) FROM archive_entries WHERE archive_id = ?", archiveId).Scan(&n)
	return n, err
}
