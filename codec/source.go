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

// NewSource returns a reader decoding a stream written by a Sink of the
// same kind. Closing it does not close r.
func NewSource(kind Kind, r io.Reader) (io.ReadCloser, error) {
	switch kind {
	case KIND_NONE, "":
		return io.NopCloser(r), nil
	case KIND_GZIP:
		return gzip.NewReader(r)
	case KIND_BZIP2:
		return bzip2.NewReader(r, nil)
	case KIND_XZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	case KIND_ZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case KIND_LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("codec: unsupported kind: %s", kind)
	}
}
