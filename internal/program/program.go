// Package program represents a disassembled CHIP-8 program.
package program

import (
	"fmt"
	"strings"
)

// Offset defines the content of an offset in a program that can represent data or code.
type Offset struct {
	Data []byte // data byte or both opcode bytes that are part of the instruction

	Type OffsetType

	Label   string // name of label or subroutine if identified as a jump destination
	Code    string // asm output of this instruction
	Comment string
}

// HexCodeComment returns the bytes of the offset formatted as hex values.
func (o *Offset) HexCodeComment() (string, error) {
	var buf strings.Builder
	for i, b := range o.Data {
		if i > 0 {
			buf.WriteByte(' ')
		}
		if _, err := fmt.Fprintf(&buf, "%02X", b); err != nil {
			return "", fmt.Errorf("writing hex comment: %w", err)
		}
	}
	return buf.String(), nil
}

// Program defines a CHIP-8 program that contains code or data.
type Program struct {
	Offsets []Offset // one entry per ROM byte, code offsets own the following byte

	CodeBaseAddress uint16
	Checksum        uint32 // CRC32 of the ROM
}

// New creates a new program for a ROM of the given size.
func New(size int, codeBaseAddress uint16) *Program {
	return &Program{
		Offsets:         make([]Offset, size),
		CodeBaseAddress: codeBaseAddress,
	}
}

// LastNonZeroIndex returns the index after the last offset that contains code,
// a label or a data byte that is not zero.
func (p *Program) LastNonZeroIndex() int {
	for i := len(p.Offsets) - 1; i >= 0; i-- {
		offset := p.Offsets[i]
		if offset.Label != "" || offset.Code != "" {
			return i + 1
		}
		for _, b := range offset.Data {
			if b != 0 {
				return i + 1
			}
		}
	}
	return 0
}
