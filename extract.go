package shcresource

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/TheRedDaemon/shcresource/internal/codec"
	"github.com/TheRedDaemon/shcresource/internal/gm1"
	"github.com/TheRedDaemon/shcresource/internal/resmeta"
	"github.com/TheRedDaemon/shcresource/internal/tgx"
)

// Extract decodes a resource file into the target directory: a
// resource.meta text file describing the resource, one raw 16-bit pixel
// file per image and, for archives, the ten palette files. The resource
// format is selected by the source file extension.
func Extract(srcFile, dstDir string, opt ExtractOptions) error {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return errors.Wrap(err, "creating target directory")
	}
	stem := fileStem(srcFile)

	switch strings.ToLower(filepath.Ext(srcFile)) {
	case TgxFileExtension:
		r, err := LoadTgx(srcFile)
		if err != nil {
			return err
		}
		return extractTgx(r, dstDir, stem, opt)
	case Gm1FileExtension:
		r, err := LoadGm1(srcFile)
		if err != nil {
			return err
		}
		return extractGm1(r.res, dstDir, stem, opt)
	default:
		return errors.Errorf("%s is not a known resource file type", srcFile)
	}
}

func extractTgx(r *TgxResource, dir, stem string, opt ExtractOptions) error {
	log.Info().Str("dir", dir).Msg("extracting TGX resource")
	coder := opt.Coder.codec()

	canvas := codec.NewCanvas(r.Width, r.Height, coder.TransparentRawColor)
	if res := tgx.Decode(r.Data, r.Width, r.Height, codec.ColorDefault, canvas, 0, 0, nil); res != codec.Success {
		return res.Err()
	}

	dataName := stem + dataFileExt
	raw := canvasToBytes(canvas)
	if err := os.WriteFile(filepath.Join(dir, dataName), raw, 0o644); err != nil {
		return errors.Wrap(err, "writing raw pixel file")
	}

	meta, err := os.Create(filepath.Join(dir, metaFileName))
	if err != nil {
		return errors.Wrap(err, "creating meta file")
	}
	defer meta.Close()

	w := resmeta.NewWriter(meta)
	w.StartObject(idTgxResource, sidecarVersion).
		WriteMapEntry(keyDataPath, dataName).
		WriteMapEntry(keyDataSize, fmt.Sprint(len(raw))).
		WriteMapEntry(keyTransparentPixel, fmt.Sprintf("%#06x", coder.TransparentRawColor)).
		EndObject()
	w.StartObject(idTgxHeader, sidecarVersion).
		WriteListEntry(fmt.Sprint(r.Width), "width").
		WriteListEntry(fmt.Sprint(r.Height), "height").
		EndObject()
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "writing meta file")
	}

	if opt.WritePreviews {
		if err := writePreview(dir, stem, canvas, coder.TransparentRawColor, nil); err != nil {
			return err
		}
	}
	log.Info().Msg("extracted TGX resource")
	return nil
}

func extractGm1(r *gm1.Resource, dir, stem string, opt ExtractOptions) error {
	log.Info().Str("dir", dir).Msg("extracting GM1 resource")
	coder := opt.Coder.codec()

	meta, err := os.Create(filepath.Join(dir, metaFileName))
	if err != nil {
		return errors.Wrap(err, "creating meta file")
	}
	defer meta.Close()

	w := resmeta.NewWriter(meta)
	w.StartObject(idGm1Resource, sidecarVersion).
		WriteMapEntry(keyDataPrefix, stem).
		WriteMapEntry(keyPalettePrefix, stem).
		WriteMapEntry(keyResourceSize, fmt.Sprint(r.FileSize())).
		WriteMapEntry(keyTransparentPixel, fmt.Sprintf("%#06x", coder.TransparentRawColor)).
		WriteMapEntry(keyCanvasWidth, fmt.Sprint(r.Header.Width)).
		WriteMapEntry(keyCanvasHeight, fmt.Sprint(r.Header.Height)).
		EndObject()
	writeGm1HeaderObject(w, &r.Header)

	for j := 0; j < gm1.PaletteCount; j++ {
		name := fmt.Sprintf("%s-%d%s", stem, j, paletteFileExt)
		b := make([]byte, gm1.PaletteByteSize)
		for c, v := range r.Header.Palettes[j] {
			binary.LittleEndian.PutUint16(b[c*2:], v)
		}
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			return errors.Wrapf(err, "writing palette %d", j)
		}
	}

	var animationPalette *[gm1.PaletteLength]uint16
	if r.Header.Type == gm1.TypeAnimations {
		animationPalette = &r.Header.Palettes[0]
	}
	for i := range r.Images {
		canvas, err := r.DecodeImage(i, coder)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%s-%d%s", stem, i, dataFileExt)
		if err := os.WriteFile(filepath.Join(dir, name), canvasToBytes(canvas), 0o644); err != nil {
			return errors.Wrapf(err, "writing raw pixel file for image %d", i)
		}
		writeGm1ImageObjects(w, r, i)

		if opt.WritePreviews {
			if err := writePreview(dir, fmt.Sprintf("%s-%d", stem, i), canvas, coder.TransparentRawColor, animationPalette); err != nil {
				return err
			}
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "writing meta file")
	}
	log.Info().Int("images", len(r.Images)).Msg("extracted GM1 resource")
	return nil
}

// headerScalarComments name the 22 header values in the sidecar, in file
// order.
var headerScalarComments = [gm1.HeaderScalarCount]string{
	"unknown 0x0", "unknown 0x4", "unknown 0x8", "number of pictures",
	"unknown 0x10", "gm1 type", "unknown 0x18", "unknown 0x1C",
	"unknown 0x20", "unknown 0x24", "unknown 0x28", "unknown 0x2C",
	"width", "height", "unknown 0x38", "unknown 0x3C",
	"unknown 0x40", "unknown 0x44", "origin x", "origin y",
	"data size", "unknown 0x54",
}

func writeGm1HeaderObject(w *resmeta.Writer, h *gm1.Header) {
	w.StartObject(idGm1Header, sidecarVersion)
	for i, v := range h.Scalars() {
		w.WriteListEntry(fmt.Sprint(v), headerScalarComments[i])
	}
	w.EndObject()
}

func writeGm1ImageObjects(w *resmeta.Writer, r *gm1.Resource, i int) {
	header := &r.Images[i]
	w.StartObject(idGm1ImageHeader, sidecarVersion).
		WriteMapEntry(keyDataOffset, fmt.Sprint(r.Offsets[i])).
		WriteMapEntry(keyDataSize, fmt.Sprint(r.Sizes[i])).
		WriteListEntry(fmt.Sprint(header.Width), "width").
		WriteListEntry(fmt.Sprint(header.Height), "height").
		WriteListEntry(fmt.Sprint(header.OffsetX), "offset x").
		WriteListEntry(fmt.Sprint(header.OffsetY), "offset y").
		EndObject()

	if r.Header.Type == gm1.TypeTileObject {
		info := header.TileObjectInfo()
		w.StartObject(idGm1TileInfo, sidecarVersion).
			WriteListEntry(fmt.Sprint(info.ImagePart), "image part").
			WriteListEntry(fmt.Sprint(info.SubParts), "sub parts").
			WriteListEntry(fmt.Sprint(info.TileOffset), "tile offset").
			WriteListEntry(fmt.Sprint(uint8(info.Position)), "image position").
			WriteListEntry(fmt.Sprint(info.ImageOffsetX), "image offset x").
			WriteListEntry(fmt.Sprint(info.ImageWidth), "image width").
			WriteListEntry(fmt.Sprint(info.AnimatedColor), "animated color").
			EndObject()
		return
	}
	info := header.GeneralInfo()
	w.StartObject(idGm1GeneralInfo, sidecarVersion).
		WriteListEntry(fmt.Sprint(info.RelativeDataPos), "relative data position").
		WriteListEntry(fmt.Sprint(info.FontRelatedSize), "font related size").
		WriteListEntry(fmt.Sprint(info.Unknown0x4), "unknown 0x4").
		WriteListEntry(fmt.Sprint(info.Unknown0x5), "unknown 0x5").
		WriteListEntry(fmt.Sprint(info.Unknown0x6), "unknown 0x6").
		WriteListEntry(fmt.Sprint(info.Flags), "flags").
		EndObject()
}

// canvasToBytes serializes a canvas as little-endian 16-bit pixels.
func canvasToBytes(c *codec.Canvas) []byte {
	b := make([]byte, len(c.Pix)*2)
	for i, v := range c.Pix {
		binary.LittleEndian.PutUint16(b[i*2:], v)
	}
	return b
}

// canvasFromBytes rebuilds a canvas from little-endian 16-bit pixels.
func canvasFromBytes(b []byte, width, height int) *codec.Canvas {
	c := &codec.Canvas{Pix: make([]uint16, width*height), Width: width, Height: height}
	for i := range c.Pix {
		c.Pix[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return c
}

// fileStem returns the file name without directory and extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
