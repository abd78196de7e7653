package repository

import (
	"context"
	"testing"
	"time"

	"arkiv/config"
	"arkiv/database"
	"arkiv/database/model"
	"arkiv/file_io"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *database.DB {
	db, err := database.NewDB(":memory:")
	assert.NoError(t, err)
	err = db.Init(context.Background())
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close(context.Background()) })
	return db
}

var filesInfo = &file_io.FilesInfo{
	TotalFileCount: 2,
	EmptyDirCount:  1,
	SizeInBytes:    15,
	ContentHash:    "test-hash",
}

func TestCreateAndGetArchive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArchiveRepository(db)
	ctx := context.Background()

	id, err := repo.CreateArchive(ctx, "/src", "/out/src.tar.gz", config.AF_TARGZ, config.PIPELINE_FANOUT, time.Now(), filesInfo)
	require.NoError(t, err)

	a, err := repo.GetArchiveById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, a.Id)
	assert.Equal(t, "/src", a.SourcePath)
	assert.Equal(t, config.AF_TARGZ, a.ArchiveFormat)
	assert.Equal(t, config.PIPELINE_FANOUT, a.PipelineMode)
	assert.Equal(t, model.ARCHIVE_STATUS_QUEUED, a.Status)
	assert.Equal(t, int64(15), a.Size)
	assert.Equal(t, int64(3), a.EntryCount)
	assert.Len(t, a.RunId, 36)
	assert.Contains(t, a.String(), "/out/src.tar.gz")

	_, err = repo.GetArchiveById(ctx, id+100)
	assert.ErrorIs(t, err, database.ErrDoesNotExist)
}

func TestUpdateArchive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArchiveRepository(db)
	ctx := context.Background()

	id, err := repo.CreateArchive(ctx, "/src", "/out/src.zip", config.AF_ZIP, config.PIPELINE_PIPE, time.Now(), filesInfo)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateArchiveStatus(ctx, id, model.ARCHIVE_STATUS_RUNNING))
	a, err := repo.GetArchiveById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.ARCHIVE_STATUS_RUNNING, a.Status)

	require.NoError(t, repo.UpdateArchiveResult(ctx, id, model.ARCHIVE_STATUS_COMPLETED, 4, 1, 512))
	a, err = repo.GetArchiveById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.ARCHIVE_STATUS_COMPLETED, a.Status)
	assert.Equal(t, int64(4), a.AppendedCount)
	assert.Equal(t, int64(1), a.SkippedCount)
	assert.Equal(t, int64(512), a.ArchiveSize)

	assert.ErrorIs(t, repo.UpdateArchiveStatus(ctx, id+1, model.ARCHIVE_STATUS_FAILED), database.ErrDoesNotExist)
}

func TestFindSimilarArchive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArchiveRepository(db)
	ctx := context.Background()

	t.Run("NoSimilarArchive", func(t *testing.T) {
		_, err := repo.FindSimilarArchive(ctx, "/src", config.AF_TARGZ, filesInfo)
		assert.ErrorIs(t, err, database.ErrDoesNotExist)
	})

	t.Run("OnlyCompletedArchivesMatch", func(t *testing.T) {
		id, err := repo.CreateArchive(ctx, "/src", "/out/src.tar.gz", config.AF_TARGZ, config.PIPELINE_FANOUT, time.Now(), filesInfo)
		require.NoError(t, err)
		_, err = repo.FindSimilarArchive(ctx, "/src", config.AF_TARGZ, filesInfo)
		assert.ErrorIs(t, err, database.ErrDoesNotExist)

		require.NoError(t, repo.UpdateArchiveResult(ctx, id, model.ARCHIVE_STATUS_COMPLETED, 4, 0, 100))
		a, err := repo.FindSimilarArchive(ctx, "/src", config.AF_TARGZ, filesInfo)
		require.NoError(t, err)
		assert.Equal(t, id, a.Id)
	})

	t.Run("DifferentFormat", func(t *testing.T) {
		_, err := repo.FindSimilarArchive(ctx, "/src", config.AF_ZIP, filesInfo)
		assert.ErrorIs(t, err, database.ErrDoesNotExist)
	})
}

func TestListArchives(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArchiveRepository(db)
	ctx := context.Background()

	for _, format := range []config.ArchiveFormat{config.AF_TAR, config.AF_TARXZ, config.AF_ZIP} {
		_, err := repo.CreateArchive(ctx, "/src", "/out/src"+format.Suffix(), format, config.PIPELINE_FANOUT, time.Now(), filesInfo)
		require.NoError(t, err)
	}

	all, err := repo.ListArchives(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, config.AF_ZIP, all[0].ArchiveFormat)

	limited, err := repo.ListArchives(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestEntryRepository(t *testing.T) {
	db := setupTestDB(t)
	archives := NewArchiveRepository(db)
	entries := NewEntryRepository(db)
	ctx := context.Background()

	id, err := archives.CreateArchive(ctx, "/src", "/out/src.tar", config.AF_TAR, config.PIPELINE_FANOUT, time.Now(), filesInfo)
	require.NoError(t, err)

	now := time.Now().Truncate(time.Second)
	var rows []model.ArchiveEntryRow
	for _, e := range []struct {
		path, kind string
		size       int64
	}{
		{"a.txt", "file", 10},
		{"b", "dir", 0},
		{"b/b.txt", "file", 5},
		{"c", "empty_dir", 0},
	} {
		parent, name := model.SplitEntryPath(e.path)
		rows = append(rows, model.ArchiveEntryRow{
			ArchiveId:  id,
			FullPath:   e.path,
			Name:       name,
			ParentPath: parent,
			EntryType:  e.kind,
			SizeBytes:  e.size,
			Mode:       0644,
			ModifiedAt: now,
			Sha256:     "abc",
		})
	}
	require.NoError(t, entries.AddMany(ctx, rows))

	n, err := entries.CountByArchive(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	top, err := entries.GetByParentPath(ctx, id, "")
	require.NoError(t, err)
	require.Len(t, top, 3)
	names := []string{top[0].Name, top[1].Name, top[2].Name}
	assert.ElementsMatch(t, []string{"a.txt", "b", "c"}, names)

	nested, err := entries.GetByParentPath(ctx, id, "b")
	require.NoError(t, err)
	require.Len(t, nested, 1)
	assert.Equal(t, "b.txt", nested[0].Name)
	assert.Equal(t, int64(5), nested[0].SizeBytes)
	assert.Equal(t, uint32(0644), nested[0].Mode)
	assert.True(t, now.Equal(nested[0].ModifiedAt))

	t.Run("MissingArchiveRollsBack", func(t *testing.T) {
		err := entries.AddMany(ctx, []model.ArchiveEntryRow{{ArchiveId: id + 42, FullPath: "x", Name: "x", EntryType: "file"}})
		assert.Error(t, err)
	})
}

func TestSplitEntryPath(t *testing.T) {
	tests := []struct {
		in, parent, name string
	}{
		{"a.txt", "", "a.txt"},
		{"b/b.txt", "b", "b.txt"},
		{"b/", "", "b"},
		{"x/y/z/", "x/y", "z"},
	}
	for _, tt := range tests {
		parent, name := model.SplitEntryPath(tt.in)
		assert.Equal(t, tt.parent, parent, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
	}
}
