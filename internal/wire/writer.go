// Package wire builds and inspects protobuf-encoded messages without a schema.
//
// Field numbers are chosen by callers to match the remote service; nothing
// here validates them.
package wire

import "google.golang.org/protobuf/encoding/protowire"

// Writer appends protobuf fields to a growing buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) tag(field int, typ protowire.Type) {
	w.buf = protowire.AppendTag(w.buf, protowire.Number(field), typ)
}

// WriteVarint writes a varint field.
func (w *Writer) WriteVarint(field int, value uint64) *Writer {
	w.tag(field, protowire.VarintType)
	w.buf = protowire.AppendVarint(w.buf, value)
	return w
}

// WriteString writes a length-delimited UTF-8 string field.
func (w *Writer) WriteString(field int, value string) *Writer {
	w.tag(field, protowire.BytesType)
	w.buf = protowire.AppendString(w.buf, value)
	return w
}

// WriteBytes writes a length-delimited bytes field.
func (w *Writer) WriteBytes(field int, value []byte) *Writer {
	w.tag(field, protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, value)
	return w
}

// WriteMessage writes sub as a nested message field.
func (w *Writer) WriteMessage(field int, sub *Writer) *Writer {
	return w.WriteBytes(field, sub.buf)
}

// Bytes returns a copy of the encoded buffer.
func (w *Writer) Bytes() []byte {
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// Len returns the encoded size in bytes.
func (w *Writer) Len() int {
	return len(w.buf)
}
