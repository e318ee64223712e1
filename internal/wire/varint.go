package wire

import "google.golang.org/protobuf/encoding/protowire"

// Wire types used by the protobuf binary encoding.
const (
	TypeVarint  = 0
	TypeFixed64 = 1
	TypeBytes   = 2
	TypeFixed32 = 5
)

// AppendVarint appends v in little-endian base-128 form.
func AppendVarint(buf []byte, v uint64) []byte {
	return protowire.AppendVarint(buf, v)
}

// ConsumeVarint decodes a varint from the start of data.
// It returns the value and the number of bytes read, or n == 0 if data
// is truncated or the encoding overflows 64 bits.
func ConsumeVarint(data []byte) (v uint64, n int) {
	v, n = protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, 0
	}
	return v, n
}
