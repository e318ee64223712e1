package result

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// minPatternLen drops patterns too short to be useful to a human.
const minPatternLen = 3

// FormatText renders r the way a calling agent expects it: an error line,
// or the file list with line ranges followed by suggested search keywords.
func FormatText(r *Result) string {
	if r.Err != nil {
		return "Error: " + errorText(r)
	}

	patterns := suggested(r.Patterns)
	if len(r.Files) == 0 && len(patterns) == 0 {
		if r.RawResponse != "" {
			return "No relevant files found.\n\nRaw response:\n" + r.RawResponse
		}
		return "No relevant files found."
	}

	var parts []string
	n := len(r.Files)
	if n > 0 {
		parts = append(parts,
			fmt.Sprintf("Found %d relevant files. IMPORTANT: You MUST examine ALL %d files below to fully understand the context.", n, n),
			"")
		for i, f := range r.Files {
			parts = append(parts, fmt.Sprintf("  [%d/%d] %s (%s)", i+1, n, f.FullPath, rangeList(f.Ranges)))
		}
	} else {
		parts = append(parts, "No direct file matches found.")
	}

	if len(patterns) > 0 {
		parts = append(parts,
			"",
			"Suggested search keywords (rg patterns used during AI search). Use these with grep/rg to discover additional relevant files:",
			"  "+strings.Join(patterns, ", "))
	}
	return strings.Join(parts, "\n")
}

// FormatMarkdown renders r for a terminal markdown renderer.
func FormatMarkdown(r *Result) string {
	var b strings.Builder
	if r.Err != nil {
		fmt.Fprintf(&b, "**Error** (%s): %s\n", r.Kind, errorText(r))
		if len(r.Patterns) > 0 {
			b.WriteString("\n")
			writePatterns(&b, suggested(r.Patterns))
		}
		return b.String()
	}

	if len(r.Files) == 0 {
		b.WriteString("## No relevant files found\n")
		if r.RawResponse != "" {
			fmt.Fprintf(&b, "\n```text\n%s\n```\n", r.RawResponse)
		}
	} else {
		fmt.Fprintf(&b, "## %d relevant files\n\n", len(r.Files))
		for i, f := range r.Files {
			fmt.Fprintf(&b, "%d. `%s`", i+1, f.FullPath)
			if len(f.Ranges) > 0 {
				fmt.Fprintf(&b, ": %s", rangeList(f.Ranges))
			}
			b.WriteString("\n")
		}
	}

	if patterns := suggested(r.Patterns); len(patterns) > 0 {
		b.WriteString("\n")
		writePatterns(&b, patterns)
	}
	return b.String()
}

func writePatterns(b *strings.Builder, patterns []string) {
	if len(patterns) == 0 {
		return
	}
	b.WriteString("### Suggested search keywords\n\n")
	for _, p := range patterns {
		fmt.Fprintf(b, "- `%s`\n", p)
	}
}

func errorText(r *Result) string {
	if r.Kind == KindRemoteProtocolError {
		return "[Error] " + r.Err.Error()
	}
	return r.Err.Error()
}

// suggested de-duplicates patterns and drops short ones.
func suggested(patterns []string) []string {
	seen := make(map[string]bool, len(patterns))
	var out []string
	for _, p := range patterns {
		if seen[p] || utf8.RuneCountInString(p) < minPatternLen {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func rangeList(ranges []Range) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = fmt.Sprintf("L%d-%d", r.Start, r.End)
	}
	return strings.Join(parts, ", ")
}
