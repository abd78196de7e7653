package archive

import (
	"arkiv/config"
	"arkiv/container"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveStatus_String(t *testing.T) {
	tests := []struct {
		name   string
		status ArchiveStatus
		want   string
	}{
		{
			name:   "Test STATUS_IN_QUEUE",
			status: STATUS_IN_QUEUE,
			want:   "IN_QUEUE",
		},
		{
			name:   "Test STATUS_PLANNING",
			status: STATUS_PLANNING,
			want:   "PLANNING",
		},
		{
			name:   "Test STATUS_PLANNED",
			status: STATUS_PLANNED,
			want:   "PLANNED",
		},
		{
			name:   "Test STATUS_RUNNING",
			status: STATUS_RUNNING,
			want:   "RUNNING",
		},
		{
			name:   "Test STATUS_ABORTED",
			status: STATUS_ABORTED,
			want:   "ABORTED",
		},
		{
			name:   "Test STATUS_FAILED",
			status: STATUS_FAILED,
			want:   "FAILED",
		},
		{
			name:   "Test STATUS_COMPLETED",
			status: STATUS_COMPLETED,
			want:   "COMPLETE",
		},
		{
			name:   "Test Unknown Status",
			status: ArchiveStatus(99),
			want:   "UNKNOWN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
			if tt.want != "UNKNOWN" {
				parsed, err := ParseArchiveStatus(tt.want)
				assert.NoError(t, err)
				assert.Equal(t, tt.status, parsed)
			}
		})
	}

	_, err := ParseArchiveStatus("PAUSED")
	assert.Error(t, err)
}

func TestIsValidArchive(t *testing.T) {
	tempDir := t.TempDir()

	for _, format := range config.SupportedArchiveFormats() {
		t.Run(format.String(), func(t *testing.T) {
			path := filepath.Join(tempDir, "one"+format.Suffix())
			out, err := FileOutput(path, format, 0)()
			require.NoError(t, err)
			require.NoError(t, out.Container.AppendFile(container.Header{Name: "a.txt", Size: 2, Mode: 0644}, []byte("hi")))
			require.NoError(t, out.Container.Finish())
			require.NoError(t, out.Sink.Close())
			require.NoError(t, out.File.Close())

			assert.NoError(t, IsValidArchive(path, format))
		})
	}

	t.Run("Garbage", func(t *testing.T) {
		path := filepath.Join(tempDir, "garbage.tar.gz")
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 100), 0644))
		assert.Error(t, IsValidArchive(path, config.AF_TARGZ))
		assert.Error(t, IsValidArchive(path, config.AF_ZIP))
	})

	t.Run("Missing", func(t *testing.T) {
		assert.Error(t, IsValidArchive(filepath.Join(tempDir, "missing.tar"), config.AF_TAR))
	})
}
