package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single pattern", "*.log", []string{"*.log"}},
		{"trailing newline", "vendor/\nbuild/\n", []string{"vendor/", "build/"}},
		{"crlf", "vendor/\r\n# comment\r\n*.tmp", []string{"vendor/", "# comment", "*.tmp"}},
		{"blank line kept", "a\n\nb", []string{"a", "", "b"}},
		{"lone cr is content", "a\rb", []string{"a\rb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLines(tt.input))
		})
	}
}
