package archive

import (
	"archive/tar"
	"arkiv/codec"
	"arkiv/config"
	"arkiv/file_io"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"
)

type ArchiveStatus int

const (
	STATUS_IN_QUEUE ArchiveStatus = iota
	STATUS_PLANNING
	STATUS_PLANNED
	STATUS_RUNNING
	STATUS_ABORTED
	STATUS_FAILED
	STATUS_COMPLETED
)

type Progress struct {
	Done   uint64
	Total  uint64
	Status ArchiveStatus
}

type Archiver interface {
	Plan(context.Context) error
	Start(context.Context) error
	UpdateStatus(context.Context, ArchiveStatus) error
	GetInfo(context.Context) *file_io.FilesInfo
	GetProgress(context.Context) (*Progress, error)
	GetArchiveFilePath(context.Context) string
	GetResult(context.Context) *Result
}

func (status ArchiveStatus) String() string {
	switch status {
	case STATUS_IN_QUEUE:
		return "IN_QUEUE"
	case STATUS_PLANNING:
		return "PLANNING"
	case STATUS_PLANNED:
		return "PLANNED"
	case STATUS_RUNNING:
		return "RUNNING"
	case STATUS_ABORTED:
		return "ABORTED"
	case STATUS_FAILED:
		return "FAILED"
	case STATUS_COMPLETED:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

func ParseArchiveStatus(s string) (ArchiveStatus, error) {
	for status := STATUS_IN_QUEUE; status <= STATUS_COMPLETED; status++ {
		if status.String() == s {
			return status, nil
		}
	}
	return STATUS_IN_QUEUE, fmt.Errorf("unknown archive status: %s", s)
}

// IsValidArchive checks that filePath decodes as the given format and that
// its first entry, if any, can be read.
func IsValidArchive(filePath string, format config.ArchiveFormat) error {
	if format.Container() == "zip" {
		zr, err := zip.OpenReader(filePath)
		if err != nil {
			return fmt.Errorf("not a valid zip archive: %w", err)
		}
		defer zr.Close()
		if len(zr.File) == 0 {
			return nil
		}
		rc, err := zr.File[0].Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		_, err = io.Copy(io.Discard, rc)
		return err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	src, err := codec.NewSource(codec.Kind(format.Codec()), file)
	if err != nil {
		return fmt.Errorf("not a valid %s stream: %w", format.Codec(), err)
	}
	defer src.Close()
	tr := tar.NewReader(src)
	_, err = tr.Next()
	if err == io.EOF {
		return nil
	}
	return err
}
