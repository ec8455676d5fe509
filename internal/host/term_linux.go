package host

import (
	"fmt"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// SetRawIO switches the terminal of the file descriptor to raw input mode,
// every key press is available to read immediately and is not echoed.
// The returned function restores the previous terminal settings.
func SetRawIO(fd uintptr) (func(), error) {
	var tios unix.Termios
	if err := termios.Tcgetattr(fd, &tios); err != nil {
		return nil, fmt.Errorf("getting terminal attributes: %w", err)
	}

	raw := tios
	raw.Iflag &^= unix.IGNBRK | unix.ISTRIP | unix.IXON | unix.IXOFF
	raw.Iflag |= unix.BRKINT | unix.IGNPAR
	raw.Lflag &^= unix.ICANON | unix.IEXTEN | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := termios.Tcsetattr(fd, termios.TCSANOW, &raw); err != nil {
		_ = termios.Tcsetattr(fd, termios.TCSANOW, &tios)
		return nil, fmt.Errorf("setting terminal attributes: %w", err)
	}

	return func() {
		_ = termios.Tcsetattr(fd, termios.TCSANOW, &tios)
	}, nil
}
