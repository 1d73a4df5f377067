package codec

import "fmt"

// ColorType selects how stream pixels are stored on disk.
type ColorType int32

const (
	// ColorDefault stores each pixel as a little-endian 16-bit value.
	ColorDefault ColorType = iota
	// ColorIndexed stores each pixel as a single palette index byte. The
	// in-memory canvas stays 16-bit: an index b is widened to 0xFF00|b at
	// the stream boundary.
	ColorIndexed
)

// String returns the string representation of the color type.
func (t ColorType) String() string {
	switch t {
	case ColorDefault:
		return "default"
	case ColorIndexed:
		return "indexed"
	default:
		return "unknown"
	}
}

// Default coder configuration. The threshold and alignment values match the
// streams found in the game files.
const (
	// DefaultTransparentTgxColor is the magenta sentinel the game itself
	// uses as an in-stream transparency marker for some images.
	DefaultTransparentTgxColor uint16 = 0xF81F
	// DefaultTransparentRawColor marks "no pixel" in a decoded canvas.
	DefaultTransparentRawColor uint16 = 0x0000
	// DefaultPixelRepeatThreshold is the minimum run length that triggers
	// a repeating-pixels token instead of a literal stream.
	DefaultPixelRepeatThreshold = 3
	// DefaultPaddingAlignment is the modulus encoded stream lengths are
	// padded to with trailing newline tokens.
	DefaultPaddingAlignment = 4
)

// Options carries the configurable coder behavior.
type Options struct {
	// TransparentTgxColor is the in-stream transparency marker color. The
	// exact semantics inside literal tokens are unresolved, so the color is
	// carried as configuration and reported, but never applied implicitly.
	TransparentTgxColor uint16
	// TransparentRawColor represents "no pixel" in the 16-bit canvas.
	TransparentRawColor uint16
	// PixelRepeatThreshold is the minimum run length for a repeat token.
	PixelRepeatThreshold int
	// PaddingAlignment pads the encoded stream length to a multiple of it.
	PaddingAlignment int
}

// DefaultOptions returns the coder defaults.
func DefaultOptions() Options {
	return Options{
		TransparentTgxColor:  DefaultTransparentTgxColor,
		TransparentRawColor:  DefaultTransparentRawColor,
		PixelRepeatThreshold: DefaultPixelRepeatThreshold,
		PaddingAlignment:     DefaultPaddingAlignment,
	}
}

// String returns the multi-line report form used by the test command.
func (o Options) String() string {
	return fmt.Sprintf(
		"Transparent Pixel TGX Color: %#06x\nTransparent Pixel Raw Color: %#06x\nPixel Repeat Threshold: %d\nPadding Alignment: %d",
		o.TransparentTgxColor, o.TransparentRawColor, o.PixelRepeatThreshold, o.PaddingAlignment)
}
