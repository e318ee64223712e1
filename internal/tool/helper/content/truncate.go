package content

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Markers are only ever written with a count of at least one.
	charsMarker = regexp.MustCompile(`^\.\.\. \([1-9]\d* chars truncated\)$`)
	linesMarker = regexp.MustCompile(`^\.\.\. \([1-9]\d* lines truncated\)$`)
)

// Truncate bounds text to maxLines lines of at most maxChars runes each.
// Cut lines end with "... (N chars truncated)" and a cut tail is replaced by
// a final "... (M lines truncated)" line. Text already in truncated form is
// returned unchanged, so input of exactly maxLines+1 lines whose last line
// is a well-formed marker is indistinguishable from earlier output and is
// kept as is.
func Truncate(text string, maxLines, maxChars int) string {
	lines := strings.Split(text, "\n")

	var trailer string
	switch {
	case len(lines) == maxLines+1 && linesMarker.MatchString(lines[maxLines]):
		trailer = "\n" + lines[maxLines]
		lines = lines[:maxLines]
	case len(lines) > maxLines:
		trailer = fmt.Sprintf("\n... (%d lines truncated)", len(lines)-maxLines)
		lines = lines[:maxLines]
	}

	for i, line := range lines {
		lines[i] = truncateLine(line, maxChars)
	}
	return strings.Join(lines, "\n") + trailer
}

func truncateLine(line string, maxChars int) string {
	n := utf8.RuneCountInString(line)
	if n <= maxChars {
		return line
	}

	cut := 0
	for i := 0; i < maxChars; i++ {
		_, size := utf8.DecodeRuneInString(line[cut:])
		cut += size
	}
	if charsMarker.MatchString(line[cut:]) {
		return line
	}
	return line[:cut] + fmt.Sprintf("... (%d chars truncated)", n-maxChars)
}
