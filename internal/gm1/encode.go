package gm1

import (
	"github.com/pkg/errors"

	"github.com/TheRedDaemon/shcresource/internal/codec"
	"github.com/TheRedDaemon/shcresource/internal/tgx"
)

// EncodeImage encodes a single image canvas back into its payload bytes
// for an archive of the given type. The canvas must have the dimensions of
// the per-image header, pre-composed the way DecodeImage produces it.
func EncodeImage(t Type, header *ImageHeader, canvas *codec.Canvas, opt codec.Options) ([]byte, error) {
	if canvas == nil || canvas.Pix == nil {
		return nil, codec.MissingRequiredStructs.Err()
	}
	switch t {
	case TypeInterface, TypeAnimations, TypeFont, TypeTgxConstSize:
		return encodeStream(canvas, 0, 0, int(header.Width), int(header.Height), colorTypeFor(t), opt)
	case TypeTileObject:
		return encodeTileObject(header, canvas, opt)
	case TypeUncompressedA, TypeUncompressedB:
		size, res := EncodeUncompressed(canvas, 0, 0, int(header.Width), int(header.Height), nil, opt.TransparentRawColor)
		if res != codec.FilledEncodingSize {
			return nil, res.Err()
		}
		dst := make([]byte, size)
		if _, res = EncodeUncompressed(canvas, 0, 0, int(header.Width), int(header.Height), dst, opt.TransparentRawColor); res != codec.Success {
			return nil, res.Err()
		}
		return dst, nil
	default:
		return nil, errors.Errorf("archive has unknown type %d", int32(t))
	}
}

func encodeStream(canvas *codec.Canvas, x, y, width, height int, color codec.ColorType, opt codec.Options) ([]byte, error) {
	size, res := tgx.Encode(canvas, x, y, width, height, color, nil, opt)
	if res != codec.FilledEncodingSize {
		return nil, res.Err()
	}
	dst := make([]byte, size)
	if _, res = tgx.Encode(canvas, x, y, width, height, color, dst, opt); res != codec.Success {
		return nil, res.Err()
	}
	return dst, nil
}

// encodeTileObject splits the composed canvas back into its tile and its
// TGX part. The tile pixels are lifted onto a clean 30×16 scratch so the
// surrounding image pixels do not trip the out-of-diamond verification;
// the TGX part is encoded from a copy with the tile diamond cut out, which
// restores the transparency the composition filled with tile pixels.
func encodeTileObject(header *ImageHeader, canvas *codec.Canvas, opt codec.Options) ([]byte, error) {
	info := header.TileObjectInfo()
	tileY := int(info.TileOffset)
	if !canvas.Contains(0, tileY, TileWidth, TileHeight) {
		return nil, codec.CanvasCannotContainImage.Err()
	}

	tileScratch := codec.NewCanvas(TileWidth, TileHeight, opt.TransparentRawColor)
	copyDiamond(canvas, 0, tileY, tileScratch)
	payload := make([]byte, TileByteSize)
	if res := EncodeTile(tileScratch, 0, 0, payload, opt.TransparentRawColor); res != codec.Success {
		return nil, errors.Wrap(res.Err(), "tile part")
	}
	if info.Position == PositionNone {
		return payload, nil
	}

	cut := &codec.Canvas{
		Pix:    append([]uint16(nil), canvas.Pix...),
		Width:  canvas.Width,
		Height: canvas.Height,
	}
	cutDiamond(cut, 0, tileY, opt.TransparentRawColor)
	imageHeight := tileY + TileImageHeightOffset
	stream, err := encodeStream(cut, int(info.ImageOffsetX), 0, int(info.ImageWidth), imageHeight, codec.ColorDefault, opt)
	if err != nil {
		return nil, errors.Wrap(err, "image part")
	}
	return append(payload, stream...), nil
}

// copyDiamond copies the in-diamond pixels of the tile at (x, y) onto a
// 30×16 scratch canvas, leaving the scratch corners transparent.
func copyDiamond(src *codec.Canvas, x, y int, dst *codec.Canvas) {
	forEachDiamondPair(func(row, pair int) {
		sx := x + pair*2
		sy := y + row
		dst.Set(pair*2, row, src.At(sx, sy))
		dst.Set(pair*2+1, row, src.At(sx+1, sy))
	})
}

// cutDiamond replaces the in-diamond pixels of the tile at (x, y) with the
// transparent color.
func cutDiamond(canvas *codec.Canvas, x, y int, transparent uint16) {
	forEachDiamondPair(func(row, pair int) {
		canvas.Set(x+pair*2, y+row, transparent)
		canvas.Set(x+pair*2+1, y+row, transparent)
	})
}

// forEachDiamondPair visits every in-diamond pixel pair as a tile-local
// (row, pair column) position, top to bottom, left to right.
func forEachDiamondPair(visit func(row, pair int)) {
	row := 0
	for ty := -halfTileHeight; ty <= halfTileHeight; ty++ {
		if ty == 0 {
			continue
		}
		for tx := -quarterTileWidth; tx <= quarterTileWidth; tx++ {
			if inDiamond(tx, ty) {
				visit(row, tx+quarterTileWidth)
			}
		}
		row++
	}
}
