package host

import (
	"context"
	"io"
)

// KeyEvent is a key press read from the terminal.
type KeyEvent struct {
	Key  byte // keypad key 0x0-0xF
	Quit bool // escape was pressed
}

// ReadKeys starts a goroutine that reads characters from the reader and
// sends the mapped key presses to the returned channel. Characters without
// a keypad mapping are ignored. The channel is closed when reading fails or
// the context is done.
func ReadKeys(ctx context.Context, reader io.Reader) <-chan KeyEvent {
	events := make(chan KeyEvent)

	go func() {
		defer close(events)

		buf := make([]byte, 16)
		for {
			n, err := reader.Read(buf)
			for _, c := range buf[:n] {
				event, ok := keyEvent(c)
				if !ok {
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	return events
}

func keyEvent(c byte) (KeyEvent, bool) {
	if c == escapeKey {
		return KeyEvent{Quit: true}, true
	}
	key, ok := MapKey(c)
	if !ok {
		return KeyEvent{}, false
	}
	return KeyEvent{Key: key}, true
}
