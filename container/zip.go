package container

import (
	"io"
	"io/fs"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// file name length is a uint16 in the zip headers
const zipMaxNameLen = 65535

type ZipWriter struct {
	zw       *zip.Writer
	finished bool
}

func NewZipWriter(w io.Writer, level int) (*ZipWriter, error) {
	if level == 0 {
		level = flate.DefaultCompression
	}
	if _, err := flate.NewWriter(io.Discard, level); err != nil {
		return nil, err
	}
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	return &ZipWriter{zw: zw}, nil
}

func (z *ZipWriter) AppendFile(h Header, data []byte) error {
	if z.finished {
		return ErrWriterClosed
	}
	if err := checkSize(h, data); err != nil {
		return err
	}
	fh := &zip.FileHeader{
		Name:     h.Name,
		Method:   zip.Deflate,
		Modified: h.ModTime,
	}
	fh.SetMode(fs.FileMode(h.Mode).Perm())
	w, err := z.zw.CreateHeader(fh)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (z *ZipWriter) AppendDirectory(h Header) error {
	if z.finished {
		return ErrWriterClosed
	}
	fh := &zip.FileHeader{
		Name:     strings.TrimSuffix(h.Name, "/") + "/",
		Method:   zip.Store,
		Modified: h.ModTime,
	}
	fh.SetMode(fs.ModeDir | fs.FileMode(h.Mode).Perm())
	_, err := z.zw.CreateHeader(fh)
	return err
}

func (z *ZipWriter) FitName(name string) (string, bool) {
	return fitName(name, zipMaxNameLen-1)
}

func (z *ZipWriter) Finish() error {
	if z.finished {
		return ErrWriterClosed
	}
	z.finished = true
	return z.zw.Close()
}
