package archive

import (
	"arkiv/codec"
	"arkiv/config"
	"arkiv/container"
	"fmt"
	"io"
	"os"
)

// Output is one opened archive destination: the container writes into the
// codec sink, which writes into the file.
type Output struct {
	Container container.Writer
	Sink      codec.Sink
	File      io.Closer
	// empty when the destination is not a file on disk
	Path string
}

type OutputFactory func() (*Output, error)

// FileOutput creates path and pairs the container and codec of format.
func FileOutput(path string, format config.ArchiveFormat, level int) OutputFactory {
	return func() (*Output, error) {
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("cannot create output file %s: %w", path, err)
		}
		out, err := NewOutput(file, format, level)
		if err != nil {
			file.Close()
			os.Remove(path)
			return nil, err
		}
		out.Path = path
		return out, nil
	}
}

// NewOutput wraps w, closing it together with the output when it is an
// io.Closer.
func NewOutput(w io.Writer, format config.ArchiveFormat, level int) (*Output, error) {
	codecLevel, containerLevel := level, 0
	if format.Container() == "zip" {
		codecLevel, containerLevel = 0, level
	}
	return newOutput(w, codec.Kind(format.Codec()), container.Kind(format.Container()), codecLevel, containerLevel)
}

func newOutput(w io.Writer, codecKind codec.Kind, containerKind container.Kind, codecLevel, containerLevel int) (*Output, error) {
	sink, err := codec.NewSink(codecKind, w, codecLevel)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize %s codec: %w", codecKind, err)
	}
	cw, err := container.New(containerKind, sink, containerLevel)
	if err != nil {
		sink.Close()
		return nil, fmt.Errorf("cannot initialize %s container: %w", containerKind, err)
	}
	var closer io.Closer = nopCloser{}
	if c, ok := w.(io.Closer); ok {
		closer = c
	}
	return &Output{Container: cw, Sink: sink, File: closer}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
