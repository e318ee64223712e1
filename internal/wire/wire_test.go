package wire

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarint_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 255, 300, 16383, 16384, 1<<32 - 1, 1 << 35, math.MaxInt64, math.MaxUint64}
	for _, v := range values {
		enc := AppendVarint(nil, v)
		got, n := ConsumeVarint(enc)
		require.Equal(t, len(enc), n, "value %d", v)
		assert.Equal(t, v, got)
	}
}

func TestVarint_KnownEncodings(t *testing.T) {
	assert.Equal(t, []byte{0x00}, AppendVarint(nil, 0))
	assert.Equal(t, []byte{0x7F}, AppendVarint(nil, 127))
	assert.Equal(t, []byte{0x80, 0x01}, AppendVarint(nil, 128))
	assert.Equal(t, []byte{0xAC, 0x02}, AppendVarint(nil, 300))
}

func TestConsumeVarint_Truncated(t *testing.T) {
	_, n := ConsumeVarint([]byte{0x80, 0x80})
	assert.Equal(t, 0, n)

	_, n = ConsumeVarint(nil)
	assert.Equal(t, 0, n)
}

func TestConsumeVarint_Overflow(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	_, n := ConsumeVarint(data)
	assert.Equal(t, 0, n)
}

func TestWriter_Fields(t *testing.T) {
	w := NewWriter().
		WriteVarint(2, 5).
		WriteString(3, "hi").
		WriteBytes(30, []byte{0x00, 0x01})

	expected := []byte{
		0x10, 0x05, // field 2, varint 5
		0x1A, 0x02, 'h', 'i', // field 3, "hi"
		0xF2, 0x01, 0x02, 0x00, 0x01, // field 30 (tag 242), 2 bytes
	}
	assert.Equal(t, expected, w.Bytes())
	assert.Equal(t, len(expected), w.Len())
}

func TestWriter_NestedMessage(t *testing.T) {
	inner := NewWriter().WriteString(1, "abc")
	outer := NewWriter().WriteMessage(1, inner)

	assert.Equal(t, []byte{0x0A, 0x05, 0x0A, 0x03, 'a', 'b', 'c'}, outer.Bytes())
}

func TestWriter_BytesIsCopy(t *testing.T) {
	w := NewWriter().WriteString(1, "abcdef")
	b := w.Bytes()
	b[0] = 0xFF
	assert.NotEqual(t, b[0], w.Bytes()[0])
}

func TestScanner_CollectsLongStrings(t *testing.T) {
	data := NewWriter().
		WriteVarint(1, 42).
		WriteString(2, "short").
		WriteString(3, "long enough text").
		WriteBytes(4, []byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xFA, 0xF9}).
		Bytes()

	got := NewScanner(DefaultMinTextLen).Strings(data)

	assert.Equal(t, []string{"long enough text"}, got)
}

func TestScanner_ThresholdCountsRunes(t *testing.T) {
	// Six runes, more than six bytes.
	text := "日本語テキス"
	data := NewWriter().WriteString(1, text).Bytes()

	assert.Equal(t, []string{text}, NewScanner(5).Strings(data))
	assert.Empty(t, NewScanner(6).Strings(data))
}

func TestScanner_SkipsFixedWidthFields(t *testing.T) {
	var data []byte
	data = AppendVarint(data, 1<<3|TypeFixed64)
	data = append(data, make([]byte, 8)...)
	data = AppendVarint(data, 2<<3|TypeFixed32)
	data = append(data, make([]byte, 4)...)
	data = append(data, NewWriter().WriteString(3, "after fixed fields").Bytes()...)

	assert.Equal(t, []string{"after fixed fields"}, NewScanner(DefaultMinTextLen).Strings(data))
}

func TestScanner_TruncatedLengthStopsSilently(t *testing.T) {
	data := NewWriter().WriteString(1, "first string").Bytes()
	data = append(data, 0x12, 0x40, 'x', 'y') // declares 64 bytes, has 2

	assert.Equal(t, []string{"first string"}, NewScanner(DefaultMinTextLen).Strings(data))
}

func TestScanner_UnknownWireTypeStops(t *testing.T) {
	data := []byte{0x0B} // field 1, wire type 3
	data = append(data, NewWriter().WriteString(2, "never reached").Bytes()...)

	assert.Empty(t, NewScanner(DefaultMinTextLen).Strings(data))
}

func TestScanner_NestedMessageCollectedAsRawText(t *testing.T) {
	// A nested message whose bytes happen to be valid UTF-8 is collected whole.
	inner := NewWriter().WriteString(1, "inner payload text")
	data := NewWriter().WriteMessage(1, inner).Bytes()

	got := NewScanner(DefaultMinTextLen).Strings(data)

	require.Len(t, got, 1)
	assert.True(t, strings.HasSuffix(got[0], "inner payload text"))
}

func TestScanner_Restartable(t *testing.T) {
	data := NewWriter().WriteString(1, "repeatable").Bytes()
	s := NewScanner(DefaultMinTextLen)
	assert.Equal(t, s.Strings(data), s.Strings(data))
}

func TestScanner_FieldNumberZeroStillScanned(t *testing.T) {
	text := "no field number"
	data := append([]byte{0x02, byte(len(text))}, text...)

	assert.Equal(t, []string{text}, NewScanner(DefaultMinTextLen).Strings(data))
}

func TestScanner_GroupStopsScan(t *testing.T) {
	data := NewWriter().WriteString(1, "before group").Bytes()
	data = append(data, 0x14) // field 2, wire type 4 (end group)
	data = append(data, NewWriter().WriteString(3, "after group").Bytes()...)

	assert.Equal(t, []string{"before group"}, NewScanner(DefaultMinTextLen).Strings(data))
}
