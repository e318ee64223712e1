package executor

import (
	"bytes"

	"github.com/Cyclone1070/fastctx/internal/tool/helper/content"
)

// BinaryOutput replaces captured output that turned out to be binary. The
// sandbox passes it to the model verbatim.
const BinaryOutput = "Error: binary output"

// collector is an io.Writer that keeps at most limit bytes of a stream.
// The first content.BinarySampleSize bytes are sniffed; once a NUL shows up
// the rest of the stream is discarded.
type collector struct {
	buf       bytes.Buffer
	limit     int
	sniffed   int
	binary    bool
	truncated bool
}

func newCollector(limit int) *collector {
	return &collector{limit: limit}
}

// Write never fails, so a noisy command is not killed by a short write.
func (c *collector) Write(p []byte) (int, error) {
	if c.binary {
		return len(p), nil
	}
	if window := content.BinarySampleSize - c.sniffed; window > 0 {
		head := p[:min(len(p), window)]
		if content.IsBinaryContent(head) {
			c.binary = true
			c.buf.Reset()
			return len(p), nil
		}
		c.sniffed += len(head)
	}

	room := c.limit - c.buf.Len()
	if room < len(p) {
		c.truncated = true
	}
	if room > 0 {
		c.buf.Write(p[:min(len(p), room)])
	}
	return len(p), nil
}

func (c *collector) String() string {
	if c.binary {
		return BinaryOutput
	}
	return c.buf.String()
}

// Truncated reports whether anything was dropped, including binary output.
func (c *collector) Truncated() bool {
	return c.truncated || c.binary
}
