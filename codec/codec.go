// Package codec wraps an output stream with a compression encoder.
package codec

import (
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

type Kind string

const (
	KIND_NONE  Kind = "none"
	KIND_GZIP  Kind = "gzip"
	KIND_BZIP2 Kind = "bzip2"
	KIND_XZ    Kind = "xz"
	KIND_ZSTD  Kind = "zstd"
	KIND_LZ4   Kind = "lz4"
)

// Sink accepts the uncompressed archive stream. Close flushes the trailing
// codec state and leaves the destination open.
type Sink io.WriteCloser

// NewSink returns a Sink of the given kind writing to w. level ranges over
// 1..9, 0 selects the codec default.
func NewSink(kind Kind, w io.Writer, level int) (Sink, error) {
	if level < 0 || level > 9 {
		return nil, fmt.Errorf("codec: compression level must be between 0 and 9, got %d", level)
	}
	switch kind {
	case KIND_NONE, "":
		return nopSink{w}, nil
	case KIND_GZIP:
		if level == 0 {
			level = gzip.DefaultCompression
		}
		return gzip.NewWriterLevel(w, level)
	case KIND_BZIP2:
		// dsnet maps level 0 to its default
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: level})
	case KIND_XZ:
		cfg := xz.WriterConfig{}
		if level > 0 {
			cfg.DictCap = 1 << min(17+level, 25)
		}
		return cfg.NewWriter(w)
	case KIND_ZSTD:
		encLevel := zstd.SpeedDefault
		if level > 0 {
			encLevel = zstd.EncoderLevelFromZstd(zstdLevels[level])
		}
		return zstd.NewWriter(w, zstd.WithEncoderLevel(encLevel))
	case KIND_LZ4:
		zw := lz4.NewWriter(w)
		if level > 0 {
			if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[level])); err != nil {
				return nil, fmt.Errorf("codec: lz4: %w", err)
			}
		}
		return zw, nil
	default:
		return nil, fmt.Errorf("codec: unsupported kind: %s", kind)
	}
}

// zstd accepts 1..22, spread the 1..9 scale over it
var zstdLevels = [10]int{0, 1, 2, 3, 5, 7, 9, 12, 16, 19}

var lz4Levels = [10]lz4.CompressionLevel{
	lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4,
	lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

type nopSink struct {
	io.Writer
}

func (nopSink) Close() error {
	return nil
}
