// Package gm1 implements the multi-image archive container: the fixed
// header with its ten palettes, the per-image offset, size and header
// tables, and the per-sub-type image payload codecs.
package gm1

import (
	"encoding/binary"
	"fmt"
)

// Type is the archive sub-type tag. It selects the payload codec for every
// image in the archive and the valid per-image info variant.
type Type int32

const (
	TypeInterface     Type = 1 // interface items, TGX-like streams
	TypeAnimations    Type = 2 // animations, indexed TGX-like streams
	TypeTileObject    Type = 3 // buildings, tile plus optional TGX part
	TypeFont          Type = 4 // font glyphs, TGX-like streams
	TypeUncompressedA Type = 5 // plain 16-bit pixel lines
	TypeTgxConstSize  Type = 6 // TGX-like streams with constant size
	TypeUncompressedB Type = 7 // plain 16-bit pixel lines
)

// Valid reports whether the tag is one of the known sub-types.
func (t Type) Valid() bool {
	return t >= TypeInterface && t <= TypeUncompressedB
}

// String returns the string representation of the sub-type.
func (t Type) String() string {
	switch t {
	case TypeInterface:
		return "interface"
	case TypeAnimations:
		return "animations"
	case TypeTileObject:
		return "tile object"
	case TypeFont:
		return "font"
	case TypeUncompressedA:
		return "uncompressed A"
	case TypeTgxConstSize:
		return "TGX constant size"
	case TypeUncompressedB:
		return "uncompressed B"
	default:
		return "unknown"
	}
}

// Palette dimensions. Every archive carries ten palettes of 256 16-bit
// colors, used by the indexed animation streams.
const (
	PaletteCount    = 10
	PaletteLength   = 256
	PaletteByteSize = PaletteLength * 2
)

// HeaderScalarCount is the number of 32-bit scalars preceding the palettes.
const HeaderScalarCount = 22

// HeaderSize is the encoded header size: 22 scalars plus ten palettes.
const HeaderSize = HeaderScalarCount*4 + PaletteCount*PaletteByteSize

// Header is the fixed archive header. The unknown fields have no known
// meaning and are preserved verbatim on round-trips.
type Header struct {
	Unknown0x0   uint32
	Unknown0x4   uint32
	Unknown0x8   uint32
	PictureCount uint32
	Unknown0x10  uint32
	Type         Type
	Unknown0x18  uint32
	Unknown0x1C  uint32
	Unknown0x20  uint32
	Unknown0x24  uint32
	Unknown0x28  uint32
	Unknown0x2C  uint32
	Width        uint32
	Height       uint32
	Unknown0x38  uint32
	Unknown0x3C  uint32
	Unknown0x40  uint32
	Unknown0x44  uint32
	OriginX      uint32
	OriginY      uint32
	DataSize     uint32
	Unknown0x54  uint32

	Palettes [PaletteCount][PaletteLength]uint16
}

// Scalars returns the 22 leading header values in file order.
func (h *Header) Scalars() [HeaderScalarCount]uint32 {
	return [HeaderScalarCount]uint32{
		h.Unknown0x0, h.Unknown0x4, h.Unknown0x8, h.PictureCount,
		h.Unknown0x10, uint32(h.Type), h.Unknown0x18, h.Unknown0x1C,
		h.Unknown0x20, h.Unknown0x24, h.Unknown0x28, h.Unknown0x2C,
		h.Width, h.Height, h.Unknown0x38, h.Unknown0x3C,
		h.Unknown0x40, h.Unknown0x44, h.OriginX, h.OriginY,
		h.DataSize, h.Unknown0x54,
	}
}

// SetScalars fills the 22 leading header values from file order.
func (h *Header) SetScalars(s [HeaderScalarCount]uint32) {
	h.Unknown0x0, h.Unknown0x4, h.Unknown0x8, h.PictureCount = s[0], s[1], s[2], s[3]
	h.Unknown0x10, h.Type, h.Unknown0x18, h.Unknown0x1C = s[4], Type(s[5]), s[6], s[7]
	h.Unknown0x20, h.Unknown0x24, h.Unknown0x28, h.Unknown0x2C = s[8], s[9], s[10], s[11]
	h.Width, h.Height, h.Unknown0x38, h.Unknown0x3C = s[12], s[13], s[14], s[15]
	h.Unknown0x40, h.Unknown0x44, h.OriginX, h.OriginY = s[16], s[17], s[18], s[19]
	h.DataSize, h.Unknown0x54 = s[20], s[21]
}

// decodeHeader reads the header from the first HeaderSize bytes of b.
func decodeHeader(b []byte) Header {
	var h Header
	var s [HeaderScalarCount]uint32
	for i := range s {
		s[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	h.SetScalars(s)

	off := HeaderScalarCount * 4
	for p := 0; p < PaletteCount; p++ {
		for c := 0; c < PaletteLength; c++ {
			h.Palettes[p][c] = binary.LittleEndian.Uint16(b[off:])
			off += 2
		}
	}
	return h
}

// encodeHeader writes the header into the first HeaderSize bytes of b.
func encodeHeader(h *Header, b []byte) {
	s := h.Scalars()
	for i, v := range s {
		binary.LittleEndian.PutUint32(b[i*4:], v)
	}

	off := HeaderScalarCount * 4
	for p := 0; p < PaletteCount; p++ {
		for c := 0; c < PaletteLength; c++ {
			binary.LittleEndian.PutUint16(b[off:], h.Palettes[p][c])
			off += 2
		}
	}
}

// String returns the multi-line report form of the header scalars.
func (h *Header) String() string {
	s := h.Scalars()
	names := [HeaderScalarCount]string{
		"Unknown 0x0", "Unknown 0x4", "Unknown 0x8", "Number Of Pictures",
		"Unknown 0x10", "Type", "Unknown 0x18", "Unknown 0x1C",
		"Unknown 0x20", "Unknown 0x24", "Unknown 0x28", "Unknown 0x2C",
		"Width", "Height", "Unknown 0x38", "Unknown 0x3C",
		"Unknown 0x40", "Unknown 0x44", "Origin X", "Origin Y",
		"Data Size", "Unknown 0x54",
	}
	out := ""
	for i, name := range names {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("%s: %d", name, s[i])
	}
	return out
}
