package gm1

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/TheRedDaemon/shcresource/internal/codec"
	"github.com/TheRedDaemon/shcresource/internal/tgx"
)

// Validate checks every image payload of the resource with the codec that
// its sub-type selects and writes a structural report to out. The sweep
// stops at the first invalid image. With tgxAsText set, every valid
// TGX-like payload is additionally written as a token listing.
func (r *Resource) Validate(opt codec.Options, out io.Writer, tgxAsText bool) error {
	fmt.Fprintf(out, "### General GM1 info ###\nType: %s\nNumber of pictures: %d\nImage data size: %d\n\n",
		r.Header.Type, r.Header.PictureCount, r.Header.DataSize)
	fmt.Fprintf(out, "### GM1 Header ###\n%s\n\n", &r.Header)

	var err error
	switch r.Header.Type {
	case TypeInterface, TypeAnimations, TypeFont, TypeTgxConstSize:
		err = r.validateStreamImages(out, tgxAsText)
	case TypeTileObject:
		err = r.validateTileObjectImages(out, tgxAsText)
	case TypeUncompressedA, TypeUncompressedB:
		err = r.validateUncompressedImages(out)
	default:
		err = errors.Errorf("archive has unknown type %d", int32(r.Header.Type))
	}

	if err != nil {
		fmt.Fprintf(out, "\n### GM1 seems invalid. Remaining checks are skipped. ###\n")
		return err
	}
	fmt.Fprintf(out, "### GM1 seems valid ###\n")
	return nil
}

func (r *Resource) validateStreamImages(out io.Writer, tgxAsText bool) error {
	color := colorTypeFor(r.Header.Type)
	for i := range r.Images {
		image := &r.Images[i]
		fmt.Fprintf(out, "### Image %d ###\n%s\n\n%s\n\n", i, image, image.GeneralInfo())

		data, err := r.ImageData(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# General TGX Info #\nData Size: %d\nTGX Width: %d\nTGX Height: %d\n\n",
			len(data), image.Width, image.Height)

		// animations place every frame at the archive origin, so all of
		// them need the archive dimensions
		if r.Header.Type == TypeAnimations &&
			(uint32(image.Width) != r.Header.Width || uint32(image.Height) != r.Header.Height) {
			return errors.Errorf("animation image %d has dimensions %dx%d instead of the archive dimensions %dx%d",
				i, image.Width, image.Height, r.Header.Width, r.Header.Height)
		}

		var analysis tgx.Analysis
		if res := tgx.Analyze(data, int(image.Width), int(image.Height), color, &analysis); res != codec.Success {
			return errors.Wrapf(res.Err(), "image %d", i)
		}
		fmt.Fprintf(out, "# Structure Meta Data #\n%s\n\n", analysis)

		if tgxAsText {
			if err := traceStream(data, int(image.Width), int(image.Height), color, out); err != nil {
				return errors.Wrapf(err, "image %d", i)
			}
		}
	}
	return nil
}

func (r *Resource) validateTileObjectImages(out io.Writer, tgxAsText bool) error {
	for i := range r.Images {
		image := &r.Images[i]
		info := image.TileObjectInfo()
		fmt.Fprintf(out, "### Image %d ###\n%s\n\n%s\n\n", i, image, info)

		data, err := r.ImageData(i)
		if err != nil {
			return err
		}
		if len(data) < TileByteSize {
			return errors.Errorf("image %d with %d bytes is too small for a tile", i, len(data))
		}
		if !info.Position.Valid() {
			return errors.Errorf("image %d has unknown image position %d", i, uint8(info.Position))
		}

		dryRun := &codec.Canvas{Width: TileWidth, Height: TileHeight}
		if res := DecodeTile(data[:TileByteSize], dryRun, 0, 0); res != codec.CheckedParameter {
			return errors.Wrapf(res.Err(), "image %d tile part", i)
		}
		if info.Position == PositionNone {
			continue
		}

		stream := data[TileByteSize:]
		imageHeight := int(info.TileOffset) + TileImageHeightOffset
		fmt.Fprintf(out, "# General TGX Info #\nData Size: %d\nTGX Width: %d\nTGX Height: %d\n\n",
			len(stream), info.ImageWidth, imageHeight)

		var analysis tgx.Analysis
		if res := tgx.Analyze(stream, int(info.ImageWidth), imageHeight, codec.ColorDefault, &analysis); res != codec.Success {
			return errors.Wrapf(res.Err(), "image %d image part", i)
		}
		fmt.Fprintf(out, "# Structure Meta Data #\n%s\n\n", analysis)

		if tgxAsText {
			if err := traceStream(stream, int(info.ImageWidth), imageHeight, codec.ColorDefault, out); err != nil {
				return errors.Wrapf(err, "image %d image part", i)
			}
		}
	}
	return nil
}

func (r *Resource) validateUncompressedImages(out io.Writer) error {
	for i := range r.Images {
		image := &r.Images[i]
		fmt.Fprintf(out, "### Image %d ###\n%s\n\n%s\n\n", i, image, image.GeneralInfo())

		data, err := r.ImageData(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# General Image Info #\nData Size: %d\nData Width: %d\nData Height: %d\n\n",
			len(data), image.Width, image.Height)

		dryRun := &codec.Canvas{Width: int(image.Width), Height: int(image.Height)}
		if res := DecodeUncompressed(data, int(image.Width), int(image.Height), dryRun, 0, 0); res != codec.CheckedParameter {
			return errors.Wrapf(res.Err(), "image %d", i)
		}
	}
	return nil
}

func traceStream(data []byte, width, height int, color codec.ColorType, out io.Writer) error {
	log.Info().Msg("printing TGX as text")
	if res := tgx.Trace(data, width, height, color, out); res != codec.Success {
		return res.Err()
	}
	fmt.Fprintln(out)
	return nil
}
