// Package frame implements the Connect streaming envelope:
// [1-byte flags][4-byte big-endian length][payload].
package frame

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"
)

// HeaderLen is the size of the flags + length prefix.
const HeaderLen = 5

// Envelope flags.
const (
	FlagNone       byte = 0
	FlagCompressed byte = 1
	FlagEndStream  byte = 2
)

// Encode wraps payload in a single frame, gzip-compressing it when compress is set.
func Encode(payload []byte, compress bool) ([]byte, error) {
	flags := FlagNone
	body := payload
	if compress {
		var err error
		body, err = Compress(payload)
		if err != nil {
			return nil, err
		}
		flags = FlagCompressed
	}

	out := make([]byte, HeaderLen, HeaderLen+len(body))
	out[0] = flags
	binary.BigEndian.PutUint32(out[1:HeaderLen], uint32(len(body)))
	return append(out, body...), nil
}

// Decode splits data into frame payloads, in order.
//
// Frames flagged compressed (1 or 3) are gunzipped; a frame that fails to
// decompress is returned raw. A declared length beyond the end of data yields
// whatever bytes remain. Trailing data shorter than a header is ignored.
func Decode(data []byte) [][]byte {
	var frames [][]byte
	i := 0
	for i+HeaderLen <= len(data) {
		flags := data[i]
		length := binary.BigEndian.Uint32(data[i+1 : i+HeaderLen])
		i += HeaderLen

		end := len(data)
		if uint64(length) < uint64(end-i) {
			end = i + int(length)
		}
		payload := data[i:end]
		i = end

		if flags == FlagCompressed || flags == FlagCompressed|FlagEndStream {
			if plain, err := Decompress(payload); err == nil {
				payload = plain
			}
		}
		frames = append(frames, payload)
	}
	return frames
}

// Compress gzips data.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress gunzips data.
func Decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
