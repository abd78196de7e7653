package show_cmd

import (
	"arkiv/config"
	"arkiv/database"
	"arkiv/database/model"
	"arkiv/database/repository"
	"arkiv/file_io"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEntries(t *testing.T) {
	assert.Equal(t, "  (none)\n", formatEntries(nil))

	s := formatEntries([]model.ArchiveEntryRow{
		{Name: "docs", EntryType: "dir", ModifiedAt: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)},
		{Name: "a.txt", EntryType: "file", SizeBytes: 1024},
	})
	assert.Contains(t, s, "docs/")
	assert.Contains(t, s, "2024-01-02 03:04")
	assert.Contains(t, s, "a.txt")
	assert.Contains(t, s, "1.0 KiB")
	assert.NotContains(t, s, "a.txt/")
}

func TestExecuteArguments(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	ctx := context.Background()

	assert.Error(t, Execute(ctx, []string{}))
	assert.Error(t, Execute(ctx, []string{"abc"}))
	assert.Error(t, Execute(ctx, []string{"1", "a", "b"}))

	err := Execute(ctx, []string{"42"})
	assert.ErrorContains(t, err, "does not exist")
}

func TestExecuteShowsCatalogedArchive(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	ctx := context.Background()

	db, err := database.OpenDefault(ctx)
	require.NoError(t, err)
	id, err := repository.NewArchiveRepository(db).CreateArchive(ctx,
		"/src", "/missing/out.tar.gz", config.AF_TARGZ, config.PIPELINE_FANOUT, time.Now(),
		&file_io.FilesInfo{TotalFileCount: 1, SizeInBytes: 3, ContentHash: "h"})
	require.NoError(t, err)
	require.NoError(t, repository.NewEntryRepository(db).AddMany(ctx, []model.ArchiveEntryRow{
		{ArchiveId: id, FullPath: "docs", Name: "docs", EntryType: "dir"},
		{ArchiveId: id, FullPath: "docs/a.txt", Name: "a.txt", ParentPath: "docs", EntryType: "file", SizeBytes: 3},
	}))
	require.NoError(t, db.Close(ctx))

	assert.NoError(t, Execute(ctx, []string{"1"}))
	assert.NoError(t, Execute(ctx, []string{"1", "docs/"}))
}
