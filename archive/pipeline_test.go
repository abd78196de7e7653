package archive

import (
	"archive/tar"
	"arkiv/checksum"
	"arkiv/codec"
	"arkiv/config"
	"arkiv/container"
	"arkiv/file_io"
	L "arkiv/logger"
	"arkiv/progress"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var scenarioContents = map[string]string{
	"a.txt":   "0123456789",
	"b/":      "",
	"b/b.txt": "hello",
	"c/":      "",
}

func createDummyFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// createScenarioTree builds a.txt (10 bytes), b/b.txt (5 bytes) and the
// empty directory c/.
func createScenarioTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "src")
	createDummyFile(t, filepath.Join(root, "a.txt"), "0123456789")
	createDummyFile(t, filepath.Join(root, "b", "b.txt"), "hello")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "c"), 0755))
	return root
}

func readArchive(t *testing.T, path string, format config.ArchiveFormat) map[string]string {
	t.Helper()
	got := map[string]string{}
	if format.Container() == "zip" {
		zr, err := zip.OpenReader(path)
		require.NoError(t, err)
		defer zr.Close()
		for _, f := range zr.File {
			rc, err := f.Open()
			require.NoError(t, err)
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			rc.Close()
			got[f.Name] = string(data)
		}
		return got
	}

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	src, err := codec.NewSource(codec.Kind(format.Codec()), file)
	require.NoError(t, err)
	defer src.Close()
	tr := tar.NewReader(src)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(tr)
		require.NoError(t, err)
		assert.Equal(t, hdr.Size, int64(len(data)), hdr.Name)
		got[hdr.Name] = string(data)
	}
	return got
}

type positionDisplay struct {
	last uint64
}

func (d *positionDisplay) Status() progress.Renderable { return progress.NewQuietDisplay().Status() }
func (d *positionDisplay) Total() progress.Renderable  { return d }
func (d *positionDisplay) Close()                      {}
func (d *positionDisplay) SetPosition(pos uint64)      { d.last = pos }
func (d *positionDisplay) SetMessage(string)           {}
func (d *positionDisplay) FinishWithMessage(string)    {}

func TestBuildArchiveScenario(t *testing.T) {
	root := createScenarioTree(t)
	outDir := t.TempDir()

	for _, mode := range []config.PipelineMode{config.PIPELINE_FANOUT, config.PIPELINE_PIPE} {
		for _, format := range config.SupportedArchiveFormats() {
			t.Run(mode.String()+"/"+format.String(), func(t *testing.T) {
				path := filepath.Join(outDir, mode.String()+format.Suffix())
				display := &positionDisplay{}
				res, err := BuildArchive(context.Background(), root, FileOutput(path, format, 0),
					WithMode(mode),
					WithWorkers(4),
					WithQueueSize(1),
					WithDisplay(func(uint64) progress.Display { return display }))
				require.NoError(t, err)

				assert.Equal(t, uint64(3), res.Total)
				assert.Equal(t, uint64(3), res.Completed)
				assert.Equal(t, uint64(4), res.Appended)
				assert.Equal(t, uint64(0), res.Skipped)
				assert.Empty(t, res.Warnings)
				assert.Equal(t, uint64(3), display.last)
				assert.Positive(t, res.OutputSize)

				assert.Equal(t, scenarioContents, readArchive(t, path, format))
				assert.NoError(t, IsValidArchive(path, format))

				hashes := map[string]string{}
				for _, e := range res.Entries {
					hashes[e.Path] = e.Sha256
				}
				assert.Equal(t, checksum.Sha256Hex([]byte("0123456789")), hashes["a.txt"])
				assert.Equal(t, "", hashes["c"])
				assert.Len(t, res.Entries, 4)
			})
		}
	}
}

func TestUnreadableFileIsSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := createScenarioTree(t)
	locked := filepath.Join(root, "locked.txt")
	createDummyFile(t, locked, "secret")
	require.NoError(t, os.Chmod(locked, 0000))
	defer os.Chmod(locked, 0644)

	path := filepath.Join(t.TempDir(), "out.tar.gz")
	res, err := BuildArchive(context.Background(), root, FileOutput(path, config.AF_TARGZ, 0))
	require.NoError(t, err)

	assert.Equal(t, uint64(4), res.Total)
	assert.Equal(t, uint64(4), res.Completed)
	assert.Equal(t, uint64(1), res.Skipped)
	assert.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "locked.txt")
	assert.Equal(t, scenarioContents, readArchive(t, path, config.AF_TARGZ))
}

func TestFileReplacedByDirectoryIsSkipped(t *testing.T) {
	var out, errOut bytes.Buffer
	L.SetOutput(&out, &errOut)
	defer L.SetOutput(os.Stdout, os.Stderr)
	require.NoError(t, L.SetColorMode(L.COLOR_MODE_NEVER))

	root := createScenarioTree(t)
	swapped := filepath.Join(root, "d.txt")
	createDummyFile(t, swapped, "data")

	outputPath := filepath.Join(t.TempDir(), "out.tar.gz")
	archiver, err := NewArchiver(Task{InputPath: root, OutputPath: outputPath, Format: config.AF_TARGZ},
		WithDisplay(func(uint64) progress.Display { return &positionDisplay{} }))
	require.NoError(t, err)
	require.NoError(t, archiver.Plan(context.Background()))

	require.NoError(t, os.Remove(swapped))
	require.NoError(t, os.Mkdir(swapped, 0755))

	require.NoError(t, archiver.Start(context.Background()))
	res := archiver.GetResult(context.Background())
	require.NotNil(t, res)

	assert.Equal(t, uint64(4), res.Total)
	assert.Equal(t, uint64(4), res.Completed)
	assert.Equal(t, uint64(1), res.Skipped)
	assert.Equal(t, uint64(4), res.Appended)
	assert.Equal(t, scenarioContents, readArchive(t, outputPath, config.AF_TARGZ))

	assert.NotContains(t, out.String(), "WRN")
	var warnings []string
	for _, line := range strings.Split(errOut.String(), "\n") {
		if strings.Contains(line, "WRN") {
			warnings = append(warnings, line)
		}
	}
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], swapped)
}

func TestRunsAreIdempotent(t *testing.T) {
	root := createScenarioTree(t)
	createDummyFile(t, filepath.Join(root, "d", "e", "f.bin"), string(bytes.Repeat([]byte{0, 1, 2}, 5000)))
	outDir := t.TempDir()

	first := filepath.Join(outDir, "first.tar.zst")
	second := filepath.Join(outDir, "second.tar.zst")
	_, err := BuildArchive(context.Background(), root, FileOutput(first, config.AF_TARZSTD, 0))
	require.NoError(t, err)
	_, err = BuildArchive(context.Background(), root, FileOutput(second, config.AF_TARZSTD, 0), WithMode(config.PIPELINE_PIPE))
	require.NoError(t, err)

	assert.Equal(t, readArchive(t, first, config.AF_TARZSTD), readArchive(t, second, config.AF_TARZSTD))
}

func TestNewArchiver(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("InputPathNotReadable", func(t *testing.T) {
		inputPath := filepath.Join(tempDir, "non-existent-input")
		_, err := NewArchiver(Task{InputPath: inputPath, OutputPath: filepath.Join(tempDir, "out.tar")})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no read permission on input path: "+inputPath)
	})

	t.Run("PlanAndStart", func(t *testing.T) {
		root := createScenarioTree(t)
		// output inside the source tree must not archive itself
		outputPath := filepath.Join(root, "out.zip")
		createDummyFile(t, outputPath, "stale")

		archiver, err := NewArchiver(Task{ID: 7, InputPath: root, OutputPath: outputPath, Format: config.AF_ZIP})
		require.NoError(t, err)
		ctx := context.Background()

		prog, err := archiver.GetProgress(ctx)
		require.NoError(t, err)
		assert.Equal(t, STATUS_IN_QUEUE, prog.Status)

		require.NoError(t, archiver.Plan(ctx))
		prog, err = archiver.GetProgress(ctx)
		require.NoError(t, err)
		assert.Equal(t, STATUS_PLANNED, prog.Status)
		assert.Equal(t, uint64(3), prog.Total)
		assert.Equal(t, uint64(2), archiver.GetInfo(ctx).TotalFileCount)

		require.NoError(t, archiver.Start(ctx))
		prog, err = archiver.GetProgress(ctx)
		require.NoError(t, err)
		assert.Equal(t, STATUS_COMPLETED, prog.Status)
		assert.Equal(t, uint64(3), prog.Done)
		assert.Equal(t, outputPath, archiver.GetArchiveFilePath(ctx))
		assert.Equal(t, scenarioContents, readArchive(t, outputPath, config.AF_ZIP))
		assert.Equal(t, uint64(3), archiver.GetResult(ctx).Completed)
	})

	t.Run("StartBeforePlan", func(t *testing.T) {
		root := createScenarioTree(t)
		archiver, err := NewArchiver(Task{InputPath: root, OutputPath: filepath.Join(tempDir, "early.tar"), Format: config.AF_TAR})
		require.NoError(t, err)
		assert.Error(t, archiver.Start(context.Background()))
	})
}

func TestCanceledRunRemovesOutput(t *testing.T) {
	for _, mode := range []config.PipelineMode{config.PIPELINE_FANOUT, config.PIPELINE_PIPE} {
		t.Run(mode.String(), func(t *testing.T) {
			root := createScenarioTree(t)
			outputPath := filepath.Join(t.TempDir(), "out.tar.xz")
			archiver, err := NewArchiver(Task{InputPath: root, OutputPath: outputPath, Format: config.AF_TARXZ}, WithMode(mode))
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			require.NoError(t, archiver.Plan(ctx))
			cancel()

			err = archiver.Start(ctx)
			assert.ErrorIs(t, err, context.Canceled)
			assert.NoFileExists(t, outputPath)
			prog, _ := archiver.GetProgress(ctx)
			assert.Equal(t, STATUS_ABORTED, prog.Status)
		})
	}
}

func TestVanishedEntriesStillCount(t *testing.T) {
	root := t.TempDir()
	enumeration := &file_io.Enumeration{
		Root: root,
		Entries: []file_io.Entry{
			{AbsPath: filepath.Join(root, "gone.txt"), RelPath: "gone.txt", Kind: file_io.ENTRY_FILE},
			{AbsPath: filepath.Join(root, "gone"), RelPath: "gone", Kind: file_io.ENTRY_EMPTY_DIR},
			{AbsPath: filepath.Join(root, "parent"), RelPath: "parent", Kind: file_io.ENTRY_DIR},
		},
		Info: &file_io.FilesInfo{TotalFileCount: 1, EmptyDirCount: 1, DirCount: 1},
	}
	enumerator := &file_io.MockEnumerator{}
	enumerator.On("Enumerate", mock.Anything, root, mock.Anything).Return(enumeration, nil).Once()

	var buf bytes.Buffer
	open := func() (*Output, error) { return NewOutput(&buf, config.AF_TAR, 0) }
	res, err := BuildArchive(context.Background(), root, open, WithEnumerator(enumerator))
	require.NoError(t, err)

	assert.Equal(t, uint64(2), res.Total)
	assert.Equal(t, uint64(2), res.Completed)
	assert.Equal(t, uint64(3), res.Skipped)
	assert.Equal(t, uint64(0), res.Appended)
	enumerator.AssertExpectations(t)
}

func TestGatewayUsageErrorIsFatal(t *testing.T) {
	root := createScenarioTree(t)
	w := &mockWriter{}
	w.On("FitName", mock.Anything).Return("name", true)
	w.On("AppendDirectory", mock.Anything).Return(nil)
	w.On("AppendFile", mock.Anything, mock.Anything).Return(container.ErrWriterClosed)
	w.On("Finish").Return(nil).Once()

	open := func() (*Output, error) {
		sink, err := codec.NewSink(codec.KIND_NONE, io.Discard, 0)
		if err != nil {
			return nil, err
		}
		return &Output{Container: w, Sink: sink, File: nopCloser{}}, nil
	}
	_, err := BuildArchive(context.Background(), root, open, WithWorkers(1))
	assert.ErrorIs(t, err, container.ErrWriterClosed)
	w.AssertNumberOfCalls(t, "Finish", 1)
}

func TestEnumerationErrorIsFatal(t *testing.T) {
	_, err := BuildArchive(context.Background(), filepath.Join(t.TempDir(), "missing"),
		func() (*Output, error) { return nil, assert.AnError })
	assert.Error(t, err)
	assert.NotErrorIs(t, err, assert.AnError)
}
