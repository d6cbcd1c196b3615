package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllReturnsEveryRoomOnce(t *testing.T) {
	all := All()
	assert.Len(t, all, 45)

	seen := make(map[string]bool, len(all))
	for _, r := range all {
		assert.Len(t, r, 3)
		assert.False(t, seen[r], "duplicate room %s", r)
		seen[r] = true
	}
}

func TestAllReturnsACopy(t *testing.T) {
	a := All()
	a[0] = "zzz"
	assert.Equal(t, "001", All()[0])
}

func TestPad(t *testing.T) {
	assert.Equal(t, "007", Pad("7"))
	assert.Equal(t, "007", Pad("007"))
	assert.Equal(t, "007", Pad(" 007 "))
	assert.Equal(t, "217", Pad("217"))
	assert.Equal(t, "abc", Pad(" abc "))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("001"))
	assert.True(t, IsValid("7"))
	assert.True(t, IsValid("217"))

	// 206 and 207 do not exist on the second floor.
	assert.False(t, IsValid("206"))
	assert.False(t, IsValid("207"))
	assert.False(t, IsValid("999"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("abc"))
}
