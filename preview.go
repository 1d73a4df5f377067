package shcresource

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/TheRedDaemon/shcresource/internal/codec"
	"github.com/TheRedDaemon/shcresource/internal/gm1"
)

// canvasImage converts a decoded canvas into an image. Pixels are read as
// ARGB 1555 color; the transparent raw color becomes a fully transparent
// pixel. For indexed canvases a palette resolves the stored index first.
func canvasImage(c *codec.Canvas, transparent uint16, palette *[gm1.PaletteLength]uint16) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			v := c.At(x, y)
			if v == transparent {
				continue
			}
			if palette != nil {
				v = palette[v&0xFF]
			}
			img.SetNRGBA(x, y, color.NRGBA{
				R: scale5to8(v >> 10),
				G: scale5to8(v >> 5),
				B: scale5to8(v),
				A: 0xFF,
			})
		}
	}
	return img
}

// scale5to8 widens a 5-bit channel to 8 bits.
func scale5to8(v uint16) uint8 {
	c := uint8(v & 0x1F)
	return c<<3 | c>>2
}

// writePreview renders the canvas as PNG and BMP files next to the raw
// data.
func writePreview(dir, stem string, c *codec.Canvas, transparent uint16, palette *[gm1.PaletteLength]uint16) error {
	img := canvasImage(c, transparent, palette)

	pngFile, err := os.Create(filepath.Join(dir, stem+previewPngFileExt))
	if err != nil {
		return errors.Wrap(err, "creating PNG preview")
	}
	defer pngFile.Close()
	if err := png.Encode(pngFile, img); err != nil {
		return errors.Wrap(err, "encoding PNG preview")
	}

	bmpFile, err := os.Create(filepath.Join(dir, stem+previewBmpFileExt))
	if err != nil {
		return errors.Wrap(err, "creating BMP preview")
	}
	defer bmpFile.Close()
	if err := bmp.Encode(bmpFile, img); err != nil {
		return errors.Wrap(err, "encoding BMP preview")
	}
	return nil
}
