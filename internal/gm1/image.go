package gm1

import (
	"encoding/binary"
	"fmt"
)

// ImageHeaderSize is the encoded size of one per-image header record.
const ImageHeaderSize = 16

// TilePosition states where the TGX part of a tile-object image sits
// relative to its tile.
type TilePosition uint8

const (
	PositionNone       TilePosition = 0 // tile only, no TGX part
	PositionTop        TilePosition = 1
	PositionUpperLeft  TilePosition = 2
	PositionUpperRight TilePosition = 3
)

// Valid reports whether the position is one of the known placements.
func (p TilePosition) Valid() bool {
	return p <= PositionUpperRight
}

// String returns the string representation of the position.
func (p TilePosition) String() string {
	switch p {
	case PositionNone:
		return "none"
	case PositionTop:
		return "top"
	case PositionUpperLeft:
		return "upper left"
	case PositionUpperRight:
		return "upper right"
	default:
		return "unknown"
	}
}

// ImageHeader is one 16-byte per-image record: the image dimensions and
// placement, followed by an 8-byte info block whose interpretation depends
// on the archive sub-type.
type ImageHeader struct {
	Width   uint16
	Height  uint16
	OffsetX uint16
	OffsetY uint16
	Info    [8]byte
}

// TileObjectInfo is the info block variant of tile-object archives.
type TileObjectInfo struct {
	ImagePart     uint8
	SubParts      uint8
	TileOffset    uint16
	Position      TilePosition
	ImageOffsetX  int8
	ImageWidth    uint8
	AnimatedColor uint8
}

// GeneralInfo is the info block variant of every other sub-type. The
// relative data position and the flag bits have partially unknown meaning
// and are preserved verbatim on round-trips.
type GeneralInfo struct {
	RelativeDataPos int16
	FontRelatedSize int16
	Unknown0x4      uint8
	Unknown0x5      uint8
	Unknown0x6      uint8
	Flags           uint8
}

// TileObjectInfo decodes the info block as the tile-object variant. It is
// only meaningful for tile-object archives.
func (h *ImageHeader) TileObjectInfo() TileObjectInfo {
	return TileObjectInfo{
		ImagePart:     h.Info[0],
		SubParts:      h.Info[1],
		TileOffset:    binary.LittleEndian.Uint16(h.Info[2:]),
		Position:      TilePosition(h.Info[4]),
		ImageOffsetX:  int8(h.Info[5]),
		ImageWidth:    h.Info[6],
		AnimatedColor: h.Info[7],
	}
}

// SetTileObjectInfo encodes the tile-object variant into the info block.
func (h *ImageHeader) SetTileObjectInfo(info TileObjectInfo) {
	h.Info[0] = info.ImagePart
	h.Info[1] = info.SubParts
	binary.LittleEndian.PutUint16(h.Info[2:], info.TileOffset)
	h.Info[4] = byte(info.Position)
	h.Info[5] = byte(info.ImageOffsetX)
	h.Info[6] = info.ImageWidth
	h.Info[7] = info.AnimatedColor
}

// GeneralInfo decodes the info block as the general variant.
func (h *ImageHeader) GeneralInfo() GeneralInfo {
	return GeneralInfo{
		RelativeDataPos: int16(binary.LittleEndian.Uint16(h.Info[0:])),
		FontRelatedSize: int16(binary.LittleEndian.Uint16(h.Info[2:])),
		Unknown0x4:      h.Info[4],
		Unknown0x5:      h.Info[5],
		Unknown0x6:      h.Info[6],
		Flags:           h.Info[7],
	}
}

// SetGeneralInfo encodes the general variant into the info block.
func (h *ImageHeader) SetGeneralInfo(info GeneralInfo) {
	binary.LittleEndian.PutUint16(h.Info[0:], uint16(info.RelativeDataPos))
	binary.LittleEndian.PutUint16(h.Info[2:], uint16(info.FontRelatedSize))
	h.Info[4] = info.Unknown0x4
	h.Info[5] = info.Unknown0x5
	h.Info[6] = info.Unknown0x6
	h.Info[7] = info.Flags
}

func decodeImageHeader(b []byte) ImageHeader {
	var h ImageHeader
	h.Width = binary.LittleEndian.Uint16(b[0:])
	h.Height = binary.LittleEndian.Uint16(b[2:])
	h.OffsetX = binary.LittleEndian.Uint16(b[4:])
	h.OffsetY = binary.LittleEndian.Uint16(b[6:])
	copy(h.Info[:], b[8:16])
	return h
}

func encodeImageHeader(h *ImageHeader, b []byte) {
	binary.LittleEndian.PutUint16(b[0:], h.Width)
	binary.LittleEndian.PutUint16(b[2:], h.Height)
	binary.LittleEndian.PutUint16(b[4:], h.OffsetX)
	binary.LittleEndian.PutUint16(b[6:], h.OffsetY)
	copy(b[8:16], h.Info[:])
}

// String returns the multi-line report form of the dimension fields.
func (h ImageHeader) String() string {
	return fmt.Sprintf("Width: %d\nHeight: %d\nOffset X: %d\nOffset Y: %d",
		h.Width, h.Height, h.OffsetX, h.OffsetY)
}

// String returns the multi-line report form of the tile-object info.
func (i TileObjectInfo) String() string {
	return fmt.Sprintf(
		"Image Part: %d\nSub Parts: %d\nTile Offset: %d\nImage Position: %s\nImage Offset X: %d\nImage Width: %d\nAnimated Color: %d",
		i.ImagePart, i.SubParts, i.TileOffset, i.Position, i.ImageOffsetX, i.ImageWidth, i.AnimatedColor)
}

// String returns the multi-line report form of the general info.
func (i GeneralInfo) String() string {
	return fmt.Sprintf(
		"Relative Data Position: %d\nFont Related Size: %d\nUnknown 0x4: %d\nUnknown 0x5: %d\nUnknown 0x6: %d\nFlags: %d",
		i.RelativeDataPos, i.FontRelatedSize, i.Unknown0x4, i.Unknown0x5, i.Unknown0x6, i.Flags)
}
