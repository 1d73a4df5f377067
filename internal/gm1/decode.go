package gm1

import (
	"github.com/pkg/errors"

	"github.com/TheRedDaemon/shcresource/internal/codec"
	"github.com/TheRedDaemon/shcresource/internal/tgx"
)

// colorTypeFor returns the stream color type used by TGX-like payloads of
// the sub-type. Only animations use the indexed form.
func colorTypeFor(t Type) codec.ColorType {
	if t == TypeAnimations {
		return codec.ColorIndexed
	}
	return codec.ColorDefault
}

// DecodeImage decodes image i onto its own canvas, sized by the per-image
// header and pre-filled with the transparent raw color. Tile-object images
// are composed: the tile lands at (0, tileOffset), the TGX part, if the
// image position declares one, at (imageOffsetX, 0).
func (r *Resource) DecodeImage(i int, opt codec.Options) (*codec.Canvas, error) {
	data, err := r.ImageData(i)
	if err != nil {
		return nil, err
	}
	header := &r.Images[i]
	canvas := codec.NewCanvas(int(header.Width), int(header.Height), opt.TransparentRawColor)

	switch r.Header.Type {
	case TypeInterface, TypeAnimations, TypeFont, TypeTgxConstSize:
		res := tgx.Decode(data, int(header.Width), int(header.Height), colorTypeFor(r.Header.Type), canvas, 0, 0, nil)
		if res != codec.Success {
			return nil, errors.Wrapf(res.Err(), "decoding image %d", i)
		}
	case TypeTileObject:
		if err := decodeTileObject(data, header, canvas, opt); err != nil {
			return nil, errors.Wrapf(err, "decoding image %d", i)
		}
	case TypeUncompressedA, TypeUncompressedB:
		res := DecodeUncompressed(data, int(header.Width), int(header.Height), canvas, 0, 0)
		if res != codec.Success {
			return nil, errors.Wrapf(res.Err(), "decoding image %d", i)
		}
	default:
		return nil, errors.Errorf("archive has unknown type %d", int32(r.Header.Type))
	}
	return canvas, nil
}

func decodeTileObject(data []byte, header *ImageHeader, canvas *codec.Canvas, opt codec.Options) error {
	info := header.TileObjectInfo()
	if len(data) < TileByteSize {
		return codec.InvalidDataSize.Err()
	}
	if res := DecodeTile(data[:TileByteSize], canvas, 0, int(info.TileOffset)); res != codec.Success {
		return errors.Wrap(res.Err(), "tile part")
	}
	if info.Position == PositionNone {
		if len(data) != TileByteSize {
			return codec.InvalidDataSize.Err()
		}
		return nil
	}
	imageHeight := int(info.TileOffset) + TileImageHeightOffset
	res := tgx.Decode(data[TileByteSize:], int(info.ImageWidth), imageHeight,
		codec.ColorDefault, canvas, int(info.ImageOffsetX), 0, nil)
	if res != codec.Success {
		return errors.Wrap(res.Err(), "image part")
	}
	return nil
}
