package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad(t *testing.T) {
	var k Keypad

	_, ok := k.FirstPressed()
	assert.False(t, ok)

	assert.True(t, k.Set(0xF, true))
	assert.True(t, k.Set(0x4, true))
	assert.False(t, k.Set(0x10, true))

	assert.True(t, k.Pressed(0x4))
	assert.False(t, k.Pressed(0x5))
	assert.False(t, k.Pressed(0x14))
	assert.False(t, k.Pressed(0xFF))

	key, ok := k.FirstPressed()
	assert.True(t, ok)
	assert.Equal(t, byte(0x4), key)

	k.Set(0x4, false)
	key, _ = k.FirstPressed()
	assert.Equal(t, byte(0xF), key)

	k.Reset()
	_, ok = k.FirstPressed()
	assert.False(t, ok)
}
