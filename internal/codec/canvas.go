package codec

// Canvas is a caller-owned 16-bit pixel buffer the coders read from and
// write into. Pixels are stored row by row. A nil Pix slice is the dry-run
// form: coders verify parameters against Width and Height but do not touch
// pixel data.
type Canvas struct {
	Pix    []uint16
	Width  int
	Height int
}

// NewCanvas returns a canvas of the given dimensions with every pixel set
// to fill.
func NewCanvas(width, height int, fill uint16) *Canvas {
	c := &Canvas{
		Pix:    make([]uint16, width*height),
		Width:  width,
		Height: height,
	}
	if fill != 0 {
		c.Fill(fill)
	}
	return c
}

// Fill sets every pixel to v.
func (c *Canvas) Fill(v uint16) {
	for i := range c.Pix {
		c.Pix[i] = v
	}
}

// At returns the pixel at (x, y). The caller is responsible for bounds.
func (c *Canvas) At(x, y int) uint16 {
	return c.Pix[y*c.Width+x]
}

// Set writes the pixel at (x, y). The caller is responsible for bounds.
func (c *Canvas) Set(x, y int, v uint16) {
	c.Pix[y*c.Width+x] = v
}

// Contains reports whether a width×height rectangle placed at (x, y) lies
// fully inside the canvas.
func (c *Canvas) Contains(x, y, width, height int) bool {
	return x >= 0 && y >= 0 && x+width <= c.Width && y+height <= c.Height
}
