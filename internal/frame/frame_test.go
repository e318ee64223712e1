package frame

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawFrame(flags byte, payload []byte) []byte {
	out := make([]byte, HeaderLen, HeaderLen+len(payload))
	out[0] = flags
	binary.BigEndian.PutUint32(out[1:], uint32(len(payload)))
	return append(out, payload...)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		[]byte("x"),
		[]byte("hello frame"),
		bytes.Repeat([]byte{0x00, 0xFF, 0x7F}, 10000),
	}
	for _, compress := range []bool{true, false} {
		for _, p := range payloads {
			enc, err := Encode(p, compress)
			require.NoError(t, err)

			frames := Decode(enc)
			require.Len(t, frames, 1)
			assert.True(t, bytes.Equal(p, frames[0]), "compress=%v len=%d", compress, len(p))
		}
	}
}

func TestEncode_Header(t *testing.T) {
	enc, err := Encode([]byte("abc"), false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x03, 'a', 'b', 'c'}, enc)

	enc, err = Encode([]byte("abc"), true)
	require.NoError(t, err)
	assert.Equal(t, FlagCompressed, enc[0])
	assert.Equal(t, uint32(len(enc)-HeaderLen), binary.BigEndian.Uint32(enc[1:HeaderLen]))
}

func TestDecode_MultipleFramesMixedFlags(t *testing.T) {
	gz, err := Compress([]byte("second"))
	require.NoError(t, err)
	gzEnd, err := Compress([]byte(`{"end":true}`))
	require.NoError(t, err)

	var data []byte
	data = append(data, rawFrame(0, []byte("first"))...)
	data = append(data, rawFrame(1, gz)...)
	data = append(data, rawFrame(2, []byte("{}"))...)
	data = append(data, rawFrame(3, gzEnd)...)

	frames := Decode(data)

	require.Len(t, frames, 4)
	assert.Equal(t, "first", string(frames[0]))
	assert.Equal(t, "second", string(frames[1]))
	assert.Equal(t, "{}", string(frames[2]))
	assert.Equal(t, `{"end":true}`, string(frames[3]))
}

func TestDecode_BadGzipPassesThroughRaw(t *testing.T) {
	data := append(rawFrame(1, []byte("not gzip")), rawFrame(0, []byte("ok"))...)

	frames := Decode(data)

	require.Len(t, frames, 2)
	assert.Equal(t, "not gzip", string(frames[0]))
	assert.Equal(t, "ok", string(frames[1]))
}

func TestDecode_TruncatedFrameTakesRemaining(t *testing.T) {
	data := rawFrame(0, []byte("complete"))
	data = append(data, 0x00, 0x00, 0x00, 0x01, 0x00) // declares 256 bytes
	data = append(data, []byte("partial")...)

	frames := Decode(data)

	require.Len(t, frames, 2)
	assert.Equal(t, "complete", string(frames[0]))
	assert.Equal(t, "partial", string(frames[1]))
}

func TestDecode_ShortTrailerIgnored(t *testing.T) {
	data := append(rawFrame(0, []byte("only")), 0x00, 0x00)

	frames := Decode(data)

	require.Len(t, frames, 1)
	assert.Equal(t, "only", string(frames[0]))
	assert.Empty(t, Decode([]byte{0x01, 0x02}))
}

func TestCompressDecompress(t *testing.T) {
	gz, err := Compress([]byte("payload"))
	require.NoError(t, err)

	plain, err := Decompress(gz)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plain))

	_, err = Decompress([]byte("nope"))
	assert.Error(t, err)
}
