package vm

const (
	// Width is the horizontal display resolution in pixels.
	Width = 64
	// Height is the vertical display resolution in pixels.
	Height = 32
)

// spriteWidth is the width in pixels of a sprite row.
const spriteWidth = 8

// Display is the monochrome framebuffer.
type Display struct {
	pixels [Width * Height]bool
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.pixels = [Width * Height]bool{}
}

// Pixel returns whether the pixel at the given position is on.
// Coordinates outside of the display wrap around.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[index(x, y)]
}

// DrawSprite XORs the sprite rows onto the display, starting at the given
// position. Every row byte is drawn as 8 pixels, most significant bit first.
// The origin is taken modulo the display size and every plotted pixel wraps
// around on both axes. It returns true if any pixel was turned off.
func (d *Display) DrawSprite(x, y byte, rows []byte) bool {
	originX := int(x) % Width
	originY := int(y) % Height

	var collision bool
	for row, data := range rows {
		for bit := range spriteWidth {
			if data&(0x80>>bit) == 0 {
				continue
			}

			i := index(originX+bit, originY+row)
			if d.pixels[i] {
				collision = true
			}
			d.pixels[i] = !d.pixels[i]
		}
	}
	return collision
}

// Lit returns the number of pixels that are on.
func (d *Display) Lit() int {
	var count int
	for _, on := range d.pixels {
		if on {
			count++
		}
	}
	return count
}

// index returns the pixel index of a position, wrapping around both axes.
func index(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	y %= Height
	if y < 0 {
		y += Height
	}
	return y*Width + x
}
