package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFormat(t *testing.T) {
	id := New("qt")
	assert.True(t, strings.HasPrefix(id, "qt_"))
	// 6-char timestamp + 18-char random after the prefix.
	assert.Len(t, id, len("qt_")+timestampLen+randomLen)
}

func TestNewUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New("qt")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestEncodeTimestampSortable(t *testing.T) {
	earlier := encodeTimestamp(1700000000)
	later := encodeTimestamp(1800000000)
	assert.Len(t, earlier, timestampLen)
	assert.Less(t, earlier, later)
}

func TestEncodeTimestampFixedWidth(t *testing.T) {
	assert.Len(t, encodeTimestamp(0), timestampLen)
	assert.Len(t, encodeTimestamp(1), timestampLen)
}

func TestConvenienceConstructors(t *testing.T) {
	assert.True(t, strings.HasPrefix(Quotation(), "qt_"))
	assert.True(t, strings.HasPrefix(Batch(), "qb_"))
	assert.True(t, strings.HasPrefix(Component(), "cmp_"))
	assert.True(t, strings.HasPrefix(User(), "usr_"))
}

func TestRandomBase62Alphabet(t *testing.T) {
	s := randomBase62(64)
	assert.Len(t, s, 64)
	for _, ch := range s {
		assert.Contains(t, alphabet, string(ch))
	}
}
