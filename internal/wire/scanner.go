package wire

import (
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// DefaultMinTextLen is the rune count a string must exceed to be collected.
const DefaultMinTextLen = 5

// Scanner harvests readable text from protobuf bytes of unknown schema.
//
// Every length-delimited field that is valid UTF-8 and longer than MinTextLen
// runes is collected, whatever it means to the remote service. Nested
// messages are not descended into; they are only collected if their raw
// bytes happen to be valid text.
type Scanner struct {
	MinTextLen int
}

// NewScanner returns a Scanner with the given threshold.
func NewScanner(minTextLen int) *Scanner {
	return &Scanner{MinTextLen: minTextLen}
}

// Strings scans data and returns collected strings in encounter order.
// Malformed or truncated input ends the scan without error, and so does any
// wire type other than varint, fixed64, bytes or fixed32: groups are not
// skipped.
func (s *Scanner) Strings(data []byte) []string {
	var out []string
	for len(data) > 0 {
		// The field number is irrelevant; only the wire type drives the walk.
		tag, n := protowire.ConsumeVarint(data)
		if n < 0 {
			break
		}
		data = data[n:]

		_, typ := protowire.DecodeTag(tag)
		switch typ {
		case protowire.VarintType:
			_, n = protowire.ConsumeVarint(data)
		case protowire.Fixed64Type:
			_, n = protowire.ConsumeFixed64(data)
		case protowire.Fixed32Type:
			_, n = protowire.ConsumeFixed32(data)
		case protowire.BytesType:
			var field []byte
			field, n = protowire.ConsumeBytes(data)
			if n >= 0 && utf8.Valid(field) && utf8.RuneCount(field) > s.MinTextLen {
				out = append(out, string(field))
			}
		default:
			return out
		}
		if n < 0 {
			return out
		}
		data = data[n:]
	}
	return out
}
