package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBinaryContent(t *testing.T) {
	assert.False(t, IsBinaryContent([]byte("plain text\n")))
	assert.True(t, IsBinaryContent([]byte{'a', 0x00, 'b'}))
	assert.False(t, IsBinaryContent([]byte{0xFF, 0xFE, 'a', 0x00}))
	assert.False(t, IsBinaryContent(nil))
}
