package content

// SplitLines splits content on LF or CRLF, dropping the line endings.
// A trailing line ending does not produce an empty final line.
func SplitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		switch {
		case content[i] == '\n':
			lines = append(lines, content[start:i])
			start = i + 1
		case content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n':
			lines = append(lines, content[start:i])
			start = i + 2
			i++
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}
