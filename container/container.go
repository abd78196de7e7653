// Package container writes archive entries into a tar or zip stream.
//
// Writers are not safe for concurrent use; callers serialize access.
package container

import (
	"arkiv/checksum"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

type Kind string

const (
	KIND_TAR Kind = "tar"
	KIND_ZIP Kind = "zip"
)

var ErrWriterClosed = errors.New("container: writer already finished")

// Header is the per-entry metadata handed to a Writer. The format specific
// checksum is computed by the writer.
type Header struct {
	Name    string
	Size    int64
	Mode    uint32
	ModTime time.Time
	IsDir   bool
}

// Writer is the container abstraction the archive pipeline appends to.
type Writer interface {
	// AppendFile writes a regular file entry. len(data) must equal h.Size.
	AppendFile(h Header, data []byte) error
	// AppendDirectory writes a directory marker.
	AppendDirectory(h Header) error
	// FitName returns a name the format can store and whether it is unchanged.
	FitName(name string) (string, bool)
	// Finish writes the trailer. It does not close the underlying writer.
	Finish() error
}

// New returns a Writer of the given kind writing to w. level 0 selects the
// format default.
func New(kind Kind, w io.Writer, level int) (Writer, error) {
	switch kind {
	case KIND_TAR:
		return NewTarWriter(w), nil
	case KIND_ZIP:
		return NewZipWriter(w, level)
	default:
		return nil, fmt.Errorf("container: unsupported kind: %s", kind)
	}
}

// fitName shortens names longer than limit bytes, keeping the tail so the
// base name survives, and prefixing a digest of the full name so distinct
// long names stay distinct.
func fitName(name string, limit int) (string, bool) {
	name = strings.ReplaceAll(name, "\x00", "")
	if len(name) <= limit {
		return name, true
	}
	digest := checksum.Sha256Hex([]byte(name))[:16]
	keep := limit - len(digest) - 1
	if keep <= 0 {
		return digest[:min(limit, len(digest))], false
	}
	tail := name[len(name)-keep:]
	for len(tail) > 0 && !utf8.RuneStart(tail[0]) {
		tail = tail[1:]
	}
	tail = strings.TrimLeft(tail, "/")
	return digest + "-" + tail, false
}

func checkSize(h Header, data []byte) error {
	if int64(len(data)) != h.Size {
		return fmt.Errorf("container: %s: header size %d does not match %d buffered bytes", h.Name, h.Size, len(data))
	}
	return nil
}
