package codec

import (
	"bytes"
	stdbzip2 "compress/bzip2"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeTracker struct {
	bytes.Buffer
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func decode(t *testing.T, kind Kind, data []byte) []byte {
	t.Helper()
	r, err := NewSource(kind, bytes.NewReader(data))
	require.NoError(t, err)
	defer r.Close()
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return out
}

func TestSinkRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 500))
	kinds := []Kind{KIND_NONE, KIND_GZIP, KIND_BZIP2, KIND_XZ, KIND_ZSTD, KIND_LZ4}
	for _, kind := range kinds {
		for _, level := range []int{0, 1, 9} {
			t.Run(fmt.Sprintf("%s/%d", kind, level), func(t *testing.T) {
				dst := &closeTracker{}
				sink, err := NewSink(kind, dst, level)
				require.NoError(t, err)

				_, err = sink.Write(payload[:100])
				require.NoError(t, err)
				_, err = sink.Write(payload[100:])
				require.NoError(t, err)
				require.NoError(t, sink.Close())

				assert.False(t, dst.closed, "sink must not close the destination")
				assert.Equal(t, payload, decode(t, kind, dst.Bytes()))
			})
		}
	}
}

func TestSinkCompresses(t *testing.T) {
	payload := []byte(strings.Repeat("a", 1<<16))
	for _, kind := range []Kind{KIND_GZIP, KIND_BZIP2, KIND_XZ, KIND_ZSTD, KIND_LZ4} {
		var buf bytes.Buffer
		sink, err := NewSink(kind, &buf, 0)
		require.NoError(t, err)
		_, err = sink.Write(payload)
		require.NoError(t, err)
		require.NoError(t, sink.Close())
		assert.Less(t, buf.Len(), len(payload)/10, kind)
	}
}

func TestNewSinkErrors(t *testing.T) {
	_, err := NewSink(Kind("brotli"), io.Discard, 0)
	assert.Error(t, err)

	_, err = NewSink(KIND_GZIP, io.Discard, 10)
	assert.Error(t, err)

	_, err = NewSink(KIND_ZSTD, io.Discard, -1)
	assert.Error(t, err)

	_, err = NewSource(Kind("brotli"), bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestBzip2ReadableByStdlib(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewSink(KIND_BZIP2, &buf, 9)
	require.NoError(t, err)
	_, err = sink.Write([]byte("hello bzip2"))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	out, err := io.ReadAll(stdbzip2.NewReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, "hello bzip2", string(out))
}
