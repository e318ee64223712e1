package sandbox

import (
	"fmt"
	"os"
	"strings"

	"github.com/Cyclone1070/fastctx/internal/tool/command"
	"github.com/Cyclone1070/fastctx/internal/tool/helper/content"
)

// ReadFile returns the requested inclusive line range, each line prefixed
// with its 1-indexed number and a colon.
func (e *Executor) ReadFile(c command.ReadFile) string {
	target, err := e.Resolve(c.File)
	if err != nil {
		return "Error: " + err.Error()
	}
	info, err := os.Stat(target)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Sprintf("Error: file not found: %s", c.File)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return "Error: " + err.Error()
	}
	if content.IsBinaryContent(data) {
		return fmt.Sprintf("Error: binary file: %s", c.File)
	}

	lines := splitLinesKeepEnds(normalizeNewlines(strings.ToValidUTF8(string(data), "�")))

	start := max(c.StartLine, 1)
	end := c.EndLine
	if end <= 0 || end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for n := start; n <= end; n++ {
		fmt.Fprintf(&b, "%d:%s", n, lines[n-1])
	}
	return e.truncate(e.Remap(b.String()))
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// splitLinesKeepEnds splits s after every newline. The final line has no
// newline when s does not end with one.
func splitLinesKeepEnds(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
