package vm

// KeyCount is the number of keys of the hex keypad.
const KeyCount = 16

// Keypad is the latch of the 16-key hex keypad, indexed 0x0-0xF.
type Keypad [KeyCount]bool

// Pressed returns whether the key is currently pressed. Values above 0xF
// are treated as a key that is not pressed.
func (k Keypad) Pressed(key byte) bool {
	if int(key) >= KeyCount {
		return false
	}
	return k[key]
}

// Set updates the state of a key. It returns false if the key does not exist.
func (k *Keypad) Set(key byte, pressed bool) bool {
	if int(key) >= KeyCount {
		return false
	}
	k[key] = pressed
	return true
}

// FirstPressed returns the lowest indexed key that is pressed.
func (k Keypad) FirstPressed() (byte, bool) {
	for key, pressed := range k {
		if pressed {
			return byte(key), true
		}
	}
	return 0, false
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	*k = Keypad{}
}
