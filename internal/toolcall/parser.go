// Package toolcall extracts tool invocations from free-form model output.
//
// The model emits calls inline as
//
//	<reasoning>[TOOL_CALLS]<name>[ARGS]{<json>}
//
// optionally followed by an end-of-sequence marker and trailing noise.
package toolcall

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// Delimiters used by the model's tool-call framing.
const (
	CallsDelimiter = "[TOOL_CALLS]"
	ArgsDelimiter  = "[ARGS]"
	EndOfSequence  = "</s>"
)

var callPattern = regexp.MustCompile(`(?s)\[TOOL_CALLS\](\w+)\[ARGS\](\{.+)`)

// Call is a parsed tool invocation.
type Call struct {
	// Thinking is the trimmed text preceding the call delimiter.
	Thinking string
	Name     string
	Args     map[string]any
	// ArgsJSON is the compacted argument object as the model wrote it.
	ArgsJSON string
}

// Parse finds the first tool call in text. It reports false when no call is
// present or the argument block is not a JSON object.
func Parse(text string) (Call, bool) {
	text = strings.ReplaceAll(text, EndOfSequence, "")

	loc := callPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return Call{}, false
	}
	name := text[loc[2]:loc[3]]
	raw := strings.TrimSpace(text[loc[4]:loc[5]])
	raw = raw[:objectEnd(raw)]

	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil || args == nil {
		return Call{}, false
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(raw)); err != nil {
		return Call{}, false
	}

	return Call{
		Thinking: strings.TrimSpace(text[:loc[0]]),
		Name:     name,
		Args:     args,
		ArgsJSON: compact.String(),
	}, true
}

// objectEnd returns the index just past the '}' that closes the object
// opening at s[0], or len(s) if it never closes. Braces inside string
// literals are ignored.
func objectEnd(s string) int {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}
