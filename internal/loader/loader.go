// Package loader handles CHIP-8 ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
)

// Loader handles loading ROM files from disk.
type Loader struct {
	maxSize int
}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{
		maxSize: chip8.MaxProgramSize,
	}
}

// Load reads a ROM file. ROMs that do not fit into program memory are
// rejected without reading the whole file.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	rom, err := l.LoadReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", path, err)
	}
	return rom, nil
}

// LoadReader reads a ROM from a reader.
func (l *Loader) LoadReader(reader io.Reader) ([]byte, error) {
	rom, err := io.ReadAll(io.LimitReader(reader, int64(l.maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}

	switch {
	case len(rom) == 0:
		return nil, chip8.ErrEmptyROM
	case len(rom) > l.maxSize:
		return nil, fmt.Errorf("%w: more than %d bytes", chip8.ErrRomTooLarge, l.maxSize)
	default:
		return rom, nil
	}
}
