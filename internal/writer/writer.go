// Package writer implements the assembly file writing of disassembled CHIP-8 programs.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/program"
)

const indentation = "    "

// Writer outputs a program as assembly file.
type Writer struct {
	app     *program.Program
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	ZeroBytes bool // output the trailing zero bytes of the ROM
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options Options) *Writer {
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// Write writes the header and all offsets of the program.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w.writer, ".org $%03X\n\n", w.app.CodeBaseAddress); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	endIndex := len(w.app.Offsets)
	if !w.options.ZeroBytes {
		endIndex = w.app.LastNonZeroIndex()
	}

	for i := range endIndex {
		offset := w.app.Offsets[i]
		if len(offset.Data) == 0 && offset.Code == "" {
			continue
		}

		if err := w.writeLabel(i, offset); err != nil {
			return err
		}
		if err := w.writeOffset(offset); err != nil {
			return err
		}
	}
	return nil
}

// WriteCommentHeader writes the CRC32 checksum and code base address as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintf(w.writer, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n", w.app.Checksum); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%04X\n\n", w.app.CodeBaseAddress); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	return nil
}

func (w Writer) writeLabel(index int, offset program.Offset) error {
	if offset.Label == "" {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w.writer, "%s:\n", offset.Label); err != nil {
		return fmt.Errorf("writing label %s: %w", offset.Label, err)
	}
	return nil
}

// writeOffset writes either code or data for an offset.
func (w Writer) writeOffset(offset program.Offset) error {
	var line string
	if offset.Code != "" {
		line = indentation + offset.Code
	} else {
		line = indentation + dataLine(offset.Data)
	}

	var err error
	if offset.Comment == "" {
		_, err = fmt.Fprintf(w.writer, "%s\n", line)
	} else {
		_, err = fmt.Fprintf(w.writer, "%-32s ; %s\n", line, offset.Comment)
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// dataLine returns a .byte directive for the data bytes.
func dataLine(data []byte) string {
	var buf strings.Builder
	buf.WriteString(".byte ")
	for i, b := range data {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "$%02X", b)
	}
	return buf.String()
}
