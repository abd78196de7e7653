package container

import (
	"archive/tar"
	"io"
	"strings"
)

// tar names are stored through PAX records when long, the cap keeps them
// within PATH_MAX so they can be extracted.
const tarMaxNameLen = 4095

type TarWriter struct {
	tw       *tar.Writer
	finished bool
}

func NewTarWriter(w io.Writer) *TarWriter {
	return &TarWriter{tw: tar.NewWriter(w)}
}

func (t *TarWriter) AppendFile(h Header, data []byte) error {
	if t.finished {
		return ErrWriterClosed
	}
	if err := checkSize(h, data); err != nil {
		return err
	}
	err := t.tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeReg,
		Name:     h.Name,
		Size:     h.Size,
		Mode:     int64(h.Mode),
		ModTime:  h.ModTime,
	})
	if err != nil {
		return err
	}
	_, err = t.tw.Write(data)
	return err
}

func (t *TarWriter) AppendDirectory(h Header) error {
	if t.finished {
		return ErrWriterClosed
	}
	return t.tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeDir,
		Name:     strings.TrimSuffix(h.Name, "/") + "/",
		Mode:     int64(h.Mode),
		ModTime:  h.ModTime,
	})
}

func (t *TarWriter) FitName(name string) (string, bool) {
	return fitName(name, tarMaxNameLen-1)
}

func (t *TarWriter) Finish() error {
	if t.finished {
		return ErrWriterClosed
	}
	t.finished = true
	return t.tw.Close()
}
