package host

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/vm"
)

const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	bell        = "\a"
)

// Renderer draws the display and machine state to an ANSI terminal.
// Two display rows are combined into one text line using half block
// characters.
type Renderer struct {
	writer io.Writer
	sound  bool
}

// NewRenderer returns a renderer writing to the writer.
func NewRenderer(writer io.Writer) *Renderer {
	return &Renderer{
		writer: writer,
	}
}

// Start clears the terminal and hides the cursor.
func (r *Renderer) Start() error {
	if _, err := io.WriteString(r.writer, clearScreen+hideCursor); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	return nil
}

// Stop shows the cursor again.
func (r *Renderer) Stop() error {
	if _, err := io.WriteString(r.writer, showCursor+"\n"); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// Render draws a frame of the machine state and the instruction history.
// The terminal bell rings when the sound timer starts.
func (r *Renderer) Render(state vm.State, history []string) error {
	buf := bufio.NewWriter(r.writer)
	_, _ = buf.WriteString(cursorHome)

	for y := 0; y < vm.Height; y += 2 {
		for x := range vm.Width {
			_, _ = buf.WriteString(halfBlock(state.Display.Pixel(x, y), state.Display.Pixel(x, y+1)))
		}
		_ = buf.WriteByte('\n')
	}

	_ = buf.WriteByte('\n')
	_, _ = buf.WriteString(RegisterDump(state))
	_ = buf.WriteByte('\n')
	for i := range HistorySize {
		if i < len(history) {
			_, _ = buf.WriteString(history[i])
		}
		_, _ = buf.WriteString("\x1b[K\n") // clear rest of the line
	}

	sound := state.ST > 0
	if sound && !r.sound {
		_, _ = buf.WriteString(bell)
	}
	r.sound = sound

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	return nil
}

// halfBlock returns the character that shows the upper and lower pixel.
func halfBlock(upper, lower bool) string {
	switch {
	case upper && lower:
		return "█"
	case upper:
		return "▀"
	case lower:
		return "▄"
	default:
		return " "
	}
}
