package gm1

import (
	"encoding/binary"

	"github.com/TheRedDaemon/shcresource/internal/codec"
)

// Tile dimensions. A tile is a 30×16 isometric diamond whose 256 inside
// pixels are stored as exactly 512 bytes; the outside corners do not
// appear in the file.
const (
	TileWidth    = 30
	TileHeight   = 16
	TileByteSize = 512
)

const (
	halfTileWidth    = TileWidth / 2
	quarterTileWidth = halfTileWidth / 2
	halfTileHeight   = TileHeight / 2
)

// TileImageHeightOffset is added to the tile offset of a tile-object image
// to obtain the height of its TGX part.
const TileImageHeightOffset = 7

// inDiamond reports whether the pixel pair column x and row y, both
// counted from the tile center, belong to the diamond. Rows widen by two
// pairs per step towards the middle, from 2 pixels at the tips to the full
// 30 pixels, which yields exactly 256 inside pixels.
func inDiamond(x, y int) bool {
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	return x+y <= halfTileHeight
}

// DecodeTile places the tile pixels into the canvas at (x, y). Positions
// outside the diamond are left untouched, the caller pre-fills the canvas
// with the transparent raw color. A canvas without pixel data is a dry
// run that only verifies the parameters.
func DecodeTile(tile []byte, canvas *codec.Canvas, x, y int) codec.Result {
	if tile == nil || canvas == nil {
		return codec.MissingRequiredStructs
	}
	if len(tile) < TileByteSize {
		return codec.InvalidDataSize
	}
	if !canvas.Contains(x, y, TileWidth, TileHeight) {
		return codec.CanvasCannotContainImage
	}
	if canvas.Pix == nil {
		return codec.CheckedParameter
	}

	sourceIndex := 0
	targetIndex := x + canvas.Width*y
	lineJump := canvas.Width - TileWidth
	for ty := -halfTileHeight; ty <= halfTileHeight; ty++ {
		if ty == 0 {
			continue
		}
		for tx := -quarterTileWidth; tx <= quarterTileWidth; tx++ {
			if inDiamond(tx, ty) {
				canvas.Pix[targetIndex] = binary.LittleEndian.Uint16(tile[sourceIndex:])
				canvas.Pix[targetIndex+1] = binary.LittleEndian.Uint16(tile[sourceIndex+2:])
				sourceIndex += 4
			}
			targetIndex += 2
		}
		targetIndex += lineJump
	}
	return codec.Success
}

// EncodeTile reads the tile pixels from the canvas at (x, y) in diamond
// order and writes the 512 tile bytes. Every canvas pixel outside the
// diamond must equal the transparent raw color. A nil tile buffer is a
// dry run that performs the verification without writing.
func EncodeTile(canvas *codec.Canvas, x, y int, tile []byte, transparent uint16) codec.Result {
	if canvas == nil || canvas.Pix == nil {
		return codec.MissingRequiredStructs
	}
	if tile != nil && len(tile) < TileByteSize {
		return codec.InvalidDataSize
	}
	if !canvas.Contains(x, y, TileWidth, TileHeight) {
		return codec.CanvasCannotContainImage
	}

	sourceIndex := x + canvas.Width*y
	targetIndex := 0
	lineJump := canvas.Width - TileWidth
	for ty := -halfTileHeight; ty <= halfTileHeight; ty++ {
		if ty == 0 {
			continue
		}
		for tx := -quarterTileWidth; tx <= quarterTileWidth; tx++ {
			if inDiamond(tx, ty) {
				if tile != nil {
					binary.LittleEndian.PutUint16(tile[targetIndex:], canvas.Pix[sourceIndex])
					binary.LittleEndian.PutUint16(tile[targetIndex+2:], canvas.Pix[sourceIndex+1])
				}
				targetIndex += 4
			} else if canvas.Pix[sourceIndex] != transparent || canvas.Pix[sourceIndex+1] != transparent {
				return codec.ExpectedTransparentPixel
			}
			sourceIndex += 2
		}
		sourceIndex += lineJump
	}

	if tile == nil {
		return codec.CheckedParameter
	}
	return codec.Success
}
