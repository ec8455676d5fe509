// Package disasm implements a CHIP-8 disassembler that follows the execution flow
// of a ROM to separate code from data.
package disasm

import (
	"context"
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler

	rom     []byte
	offsets []offset // one entry per ROM byte

	branchDestinations set.Set[uint16] // set of all addresses that are branched to

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
	offsetsParsed       set.Set[uint16]
}

// offset contains the disassembler state of a single ROM byte.
type offset struct {
	program.Offset

	operation   chip8.Operation // decoded operation if the offset is code
	branchingTo string          // label of the address operand
}

// New creates a new disassembler for the ROM.
func New(logger *log.Logger, rom []byte, options options.Disassembler) (*Disasm, error) {
	if len(rom) == 0 {
		return nil, chip8.ErrEmptyROM
	}
	if len(rom) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", chip8.ErrRomTooLarge, len(rom), chip8.MaxProgramSize)
	}

	dis := &Disasm{
		logger:              logger,
		options:             options,
		rom:                 rom,
		offsets:             make([]offset, len(rom)),
		branchDestinations:  set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
		offsetsParsed:       set.New[uint16](),
	}
	return dis, nil
}

// Process disassembles the ROM and writes the listing to the writer.
func (dis *Disasm) Process(ctx context.Context, mainWriter io.Writer) (*program.Program, error) {
	if err := dis.followExecutionFlow(ctx); err != nil {
		return nil, err
	}

	dis.processJumpDestinations()
	dis.processDataReferences()

	app, err := dis.convertToProgram()
	if err != nil {
		return nil, err
	}

	fileWriter := writer.New(app, mainWriter, writer.Options{ZeroBytes: dis.options.ZeroBytes})
	if err := fileWriter.Write(); err != nil {
		return nil, fmt.Errorf("writing app to file: %w", err)
	}
	return app, nil
}

// convertToProgram converts the internal offset state to a program that
// can be written by a file writer.
func (dis *Disasm) convertToProgram() (*program.Program, error) {
	app := program.New(len(dis.rom), chip8.ProgramStart)
	app.Checksum = crc32.ChecksumIEEE(dis.rom)

	for i := 0; i < len(dis.offsets); i++ {
		offsetInfo := &dis.offsets[i]
		programOffset := offsetInfo.Offset

		if offsetInfo.IsType(program.CodeOffset) {
			programOffset.Code = dis.formatCode(offsetInfo)
			programOffset.Data = dis.rom[i : i+chip8.OpcodeSize]
		} else {
			programOffset.SetType(program.DataOffset)
			programOffset.Data = dis.rom[i : i+1]
		}

		address := dis.indexToAddress(i)
		if err := dis.setComment(address, &programOffset); err != nil {
			return nil, err
		}
		app.Offsets[i] = programOffset

		if offsetInfo.IsType(program.CodeOffset) {
			i++ // second opcode byte is part of the instruction
		}
	}

	dis.logger.Debug("Program converted",
		log.Int("size", len(dis.rom)),
		log.String("checksum", fmt.Sprintf("%08X", app.Checksum)))
	return app, nil
}

// setComment sets the offset and hex comments of the offset, depending on
// the options.
func (dis *Disasm) setComment(address uint16, programOffset *program.Offset) error {
	var comments []string

	if dis.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", address))
	}

	if dis.options.HexComments {
		hexComment, err := programOffset.HexCodeComment()
		if err != nil {
			return fmt.Errorf("generating hex comment: %w", err)
		}
		comments = append(comments, hexComment)
	}

	if programOffset.Comment != "" {
		comments = append(comments, programOffset.Comment)
	}

	programOffset.Comment = strings.Join(comments, "  ")
	return nil
}

// addressToIndex returns the ROM index of the address and whether the
// address is inside of the ROM.
func (dis *Disasm) addressToIndex(address uint16) (int, bool) {
	if address < chip8.ProgramStart {
		return 0, false
	}
	index := int(address - chip8.ProgramStart)
	return index, index < len(dis.rom)
}

func (dis *Disasm) indexToAddress(index int) uint16 {
	return uint16(index) + chip8.ProgramStart
}
