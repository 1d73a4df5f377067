package shcresource

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/TheRedDaemon/shcresource/internal/codec"
	"github.com/TheRedDaemon/shcresource/internal/gm1"
	"github.com/TheRedDaemon/shcresource/internal/resmeta"
	"github.com/TheRedDaemon/shcresource/internal/tgx"
)

// Pack reassembles an extracted directory into a resource file. The
// resource format is taken from the meta file's first content object.
func Pack(srcDir, dstFile string, opt CoderOptions) error {
	content, err := os.ReadFile(filepath.Join(srcDir, metaFileName))
	if err != nil {
		return errors.Wrap(err, "reading meta file")
	}
	meta, err := resmeta.Parse(string(content))
	if err != nil {
		return errors.Wrap(err, "parsing meta file")
	}
	if len(meta.Objects) == 0 {
		return errors.New("meta file describes no resource")
	}

	switch meta.Objects[0].Identifier {
	case idTgxResource:
		return packTgx(meta, srcDir, dstFile, opt)
	case idGm1Resource:
		return packGm1(meta, srcDir, dstFile, opt)
	default:
		return errors.Errorf("meta file starts with unknown resource object %s", meta.Objects[0].Identifier)
	}
}

func packTgx(meta *resmeta.File, dir, dstFile string, opt CoderOptions) error {
	log.Info().Str("dir", dir).Msg("packing TGX resource")
	if len(meta.Objects) != 2 {
		return errors.Errorf("TGX meta file has %d objects, expected 2", len(meta.Objects))
	}
	resourceObj := &meta.Objects[0]
	if err := resourceObj.Expect(idTgxResource, sidecarVersion); err != nil {
		return err
	}
	headerObj := &meta.Objects[1]
	if err := headerObj.Expect(idTgxHeader, sidecarVersion); err != nil {
		return err
	}
	if err := headerObj.ExpectEntryCounts(0, 2); err != nil {
		return err
	}

	width, height, err := dimensionsFromList(headerObj, 0)
	if err != nil {
		return err
	}
	coder := opt.codec()
	if coder.TransparentRawColor, err = transparentFromMap(resourceObj); err != nil {
		return err
	}

	dataPath, err := resourceObj.MapEntry(keyDataPath)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(filepath.Join(dir, dataPath))
	if err != nil {
		return errors.Wrap(err, "reading raw pixel file")
	}
	if declared, err := resourceObj.MapEntry(keyDataSize); err == nil {
		if size, err := parseUint(declared, 32); err != nil || int(size) != len(raw) {
			return errors.Errorf("raw pixel file has %d bytes, meta file declares %s", len(raw), declared)
		}
	}
	if len(raw) != width*height*2 {
		return errors.Errorf("raw pixel file has %d bytes, dimensions %dx%d require %d",
			len(raw), width, height, width*height*2)
	}
	canvas := canvasFromBytes(raw, width, height)

	size, res := tgx.Encode(canvas, 0, 0, width, height, codec.ColorDefault, nil, coder)
	if err := res.Err(); err != nil {
		return err
	}
	data := make([]byte, size)
	if _, res = tgx.Encode(canvas, 0, 0, width, height, codec.ColorDefault, data, coder); res.Err() != nil {
		return res.Err()
	}

	if err := SaveTgx(dstFile, &TgxResource{Width: width, Height: height, Data: data}); err != nil {
		return err
	}
	log.Info().Str("file", dstFile).Msg("packed TGX resource")
	return nil
}

func packGm1(meta *resmeta.File, dir, dstFile string, opt CoderOptions) error {
	log.Info().Str("dir", dir).Msg("packing GM1 resource")
	if len(meta.Objects) < 2 {
		return errors.Errorf("GM1 meta file has %d objects, expected at least 2", len(meta.Objects))
	}
	resourceObj := &meta.Objects[0]
	if err := resourceObj.Expect(idGm1Resource, sidecarVersion); err != nil {
		return err
	}
	headerObj := &meta.Objects[1]
	if err := headerObj.Expect(idGm1Header, sidecarVersion); err != nil {
		return err
	}

	r := &gm1.Resource{}
	if err := headerFromObject(headerObj, &r.Header); err != nil {
		return err
	}
	coder := opt.codec()
	var err error
	if coder.TransparentRawColor, err = transparentFromMap(resourceObj); err != nil {
		return err
	}

	n := int(r.Header.PictureCount)
	imageObjects := meta.Objects[2:]
	if len(imageObjects) != 2*n {
		return errors.Errorf("meta file has %d image objects, %d pictures require %d",
			len(imageObjects), n, 2*n)
	}

	palettePrefix, err := resourceObj.MapEntry(keyPalettePrefix)
	if err != nil {
		return err
	}
	if err := loadPalettes(dir, palettePrefix, &r.Header); err != nil {
		return err
	}
	dataPrefix, err := resourceObj.MapEntry(keyDataPrefix)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		header, err := imageHeaderFromObject(&imageObjects[2*i], &imageObjects[2*i+1], r.Header.Type)
		if err != nil {
			return errors.Wrapf(err, "image %d", i)
		}

		name := fmt.Sprintf("%s-%d%s", dataPrefix, i, dataFileExt)
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return errors.Wrapf(err, "reading raw pixel file for image %d", i)
		}
		if len(raw) != int(header.Width)*int(header.Height)*2 {
			return errors.Errorf("raw pixel file %s has %d bytes, dimensions %dx%d require %d",
				name, len(raw), header.Width, header.Height, int(header.Width)*int(header.Height)*2)
		}
		canvas := canvasFromBytes(raw, int(header.Width), int(header.Height))

		payload, err := gm1.EncodeImage(r.Header.Type, &header, canvas, coder)
		if err != nil {
			return errors.Wrapf(err, "encoding image %d", i)
		}
		r.Images = append(r.Images, header)
		r.Offsets = append(r.Offsets, uint32(len(r.Data)))
		r.Sizes = append(r.Sizes, uint32(len(payload)))
		r.Data = append(r.Data, payload...)
	}
	r.Header.DataSize = uint32(len(r.Data))

	if declared, err := resourceObj.MapEntry(keyResourceSize); err == nil {
		if size, err := parseUint(declared, 63); err == nil && int(size) != r.FileSize() {
			log.Warn().Int("size", r.FileSize()).Str("declared", declared).
				Msg("packed resource size differs from the size recorded at extraction")
		}
	}

	if err := SaveGm1(dstFile, &Gm1Resource{res: r}); err != nil {
		return err
	}
	log.Info().Str("file", dstFile).Int("images", n).Msg("packed GM1 resource")
	return nil
}

func dimensionsFromList(obj *resmeta.Object, start int) (int, int, error) {
	w, err := obj.ListEntry(start)
	if err != nil {
		return 0, 0, err
	}
	width, err := parseUint(w, 32)
	if err != nil {
		return 0, 0, err
	}
	h, err := obj.ListEntry(start + 1)
	if err != nil {
		return 0, 0, err
	}
	height, err := parseUint(h, 32)
	if err != nil {
		return 0, 0, err
	}
	return int(width), int(height), nil
}

func transparentFromMap(obj *resmeta.Object) (uint16, error) {
	s, err := obj.MapEntry(keyTransparentPixel)
	if err != nil {
		return 0, err
	}
	v, err := parseUint(s, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func headerFromObject(obj *resmeta.Object, h *gm1.Header) error {
	if err := obj.ExpectEntryCounts(0, gm1.HeaderScalarCount); err != nil {
		return err
	}
	var scalars [gm1.HeaderScalarCount]uint32
	for i := range scalars {
		v, err := parseUint(obj.List[i], 32)
		if err != nil {
			return errors.Wrapf(err, "header value %d", i)
		}
		scalars[i] = uint32(v)
	}
	h.SetScalars(scalars)
	if !h.Type.Valid() {
		return errors.Errorf("meta file specifies unknown archive type %d", int32(h.Type))
	}
	return nil
}

func imageHeaderFromObject(headerObj, infoObj *resmeta.Object, typ gm1.Type) (gm1.ImageHeader, error) {
	var header gm1.ImageHeader
	if err := headerObj.Expect(idGm1ImageHeader, sidecarVersion); err != nil {
		return header, err
	}
	if err := headerObj.ExpectEntryCounts(2, 4); err != nil {
		return header, err
	}
	fields := [4]*uint16{&header.Width, &header.Height, &header.OffsetX, &header.OffsetY}
	for i, field := range fields {
		v, err := parseUint(headerObj.List[i], 16)
		if err != nil {
			return header, err
		}
		*field = uint16(v)
	}

	if typ == gm1.TypeTileObject {
		if err := infoObj.Expect(idGm1TileInfo, sidecarVersion); err != nil {
			return header, err
		}
		if err := infoObj.ExpectEntryCounts(0, 7); err != nil {
			return header, err
		}
		var info gm1.TileObjectInfo
		values := [7]struct {
			bits   int
			signed bool
			set    func(int64)
		}{
			{8, false, func(v int64) { info.ImagePart = uint8(v) }},
			{8, false, func(v int64) { info.SubParts = uint8(v) }},
			{16, false, func(v int64) { info.TileOffset = uint16(v) }},
			{8, false, func(v int64) { info.Position = gm1.TilePosition(v) }},
			{8, true, func(v int64) { info.ImageOffsetX = int8(v) }},
			{8, false, func(v int64) { info.ImageWidth = uint8(v) }},
			{8, false, func(v int64) { info.AnimatedColor = uint8(v) }},
		}
		for i, field := range values {
			var v int64
			var err error
			if field.signed {
				v, err = parseInt(infoObj.List[i], field.bits)
			} else {
				var u uint64
				u, err = parseUint(infoObj.List[i], field.bits)
				v = int64(u)
			}
			if err != nil {
				return header, err
			}
			field.set(v)
		}
		if !info.Position.Valid() {
			return header, errors.Errorf("unknown image position %d", uint8(info.Position))
		}
		header.SetTileObjectInfo(info)
		return header, nil
	}

	if err := infoObj.Expect(idGm1GeneralInfo, sidecarVersion); err != nil {
		return header, err
	}
	if err := infoObj.ExpectEntryCounts(0, 6); err != nil {
		return header, err
	}
	var info gm1.GeneralInfo
	relative, err := parseInt(infoObj.List[0], 16)
	if err != nil {
		return header, err
	}
	fontSize, err := parseInt(infoObj.List[1], 16)
	if err != nil {
		return header, err
	}
	info.RelativeDataPos = int16(relative)
	info.FontRelatedSize = int16(fontSize)
	bytes := [4]*uint8{&info.Unknown0x4, &info.Unknown0x5, &info.Unknown0x6, &info.Flags}
	for i, field := range bytes {
		v, err := parseUint(infoObj.List[2+i], 8)
		if err != nil {
			return header, err
		}
		*field = uint8(v)
	}
	header.SetGeneralInfo(info)
	return header, nil
}

func loadPalettes(dir, prefix string, h *gm1.Header) error {
	for j := 0; j < gm1.PaletteCount; j++ {
		name := fmt.Sprintf("%s-%d%s", prefix, j, paletteFileExt)
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return errors.Wrapf(err, "reading palette %d", j)
		}
		if len(b) != gm1.PaletteByteSize {
			return errors.Errorf("palette file %s has %d bytes, expected %d", name, len(b), gm1.PaletteByteSize)
		}
		for c := 0; c < gm1.PaletteLength; c++ {
			h.Palettes[j][c] = binary.LittleEndian.Uint16(b[c*2:])
		}
	}
	return nil
}
