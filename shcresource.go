// Package shcresource reads, validates, decodes, re-encodes and writes the
// two binary image resource formats of Stronghold Crusader: the
// run-length-encoded single-image TGX file and the multi-image GM1 archive
// that embeds TGX-like streams, isometric tile bitmaps and uncompressed
// pixel regions.
//
// The package offers three operations, mirrored by the shcresconv command:
//
//   - Test parses a resource file and reports its structure.
//   - Extract decodes a resource into a directory holding a text meta file,
//     raw 16-bit pixel buffers and, for archives, the color palettes.
//   - Pack reassembles such a directory into a resource file.
//
// The codec layers live in the internal packages; their behavior is
// configured through CoderOptions.
package shcresource

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/TheRedDaemon/shcresource/internal/codec"
)

// File extensions of the two resource formats.
const (
	TgxFileExtension = ".tgx"
	Gm1FileExtension = ".gm1"
)

// File size bounds enforced by the loaders. The upper bound is far beyond
// any real resource and only guards against loading arbitrary huge files.
const (
	minTgxFileSize = 8
	minGm1FileSize = 5208
	maxFileSize    = 1 << 30
)

// CoderOptions carries the configurable coder behavior, one field per CLI
// option.
type CoderOptions struct {
	// TransparentPixelTgxColor is the in-stream transparency marker color.
	TransparentPixelTgxColor uint16
	// TransparentPixelRawColor represents "no pixel" in raw canvases.
	TransparentPixelRawColor uint16
	// PixelRepeatThreshold is the minimum run length for a repeat token.
	PixelRepeatThreshold int
	// PaddingAlignment pads encoded stream lengths to a multiple of it.
	PaddingAlignment int
}

// DefaultCoderOptions returns the coder defaults.
func DefaultCoderOptions() CoderOptions {
	return CoderOptions{
		TransparentPixelTgxColor: codec.DefaultTransparentTgxColor,
		TransparentPixelRawColor: codec.DefaultTransparentRawColor,
		PixelRepeatThreshold:     codec.DefaultPixelRepeatThreshold,
		PaddingAlignment:         codec.DefaultPaddingAlignment,
	}
}

func (o CoderOptions) codec() codec.Options {
	return codec.Options{
		TransparentTgxColor:  o.TransparentPixelTgxColor,
		TransparentRawColor:  o.TransparentPixelRawColor,
		PixelRepeatThreshold: o.PixelRepeatThreshold,
		PaddingAlignment:     o.PaddingAlignment,
	}
}

// ExtractOptions configures the Extract operation.
type ExtractOptions struct {
	Coder CoderOptions
	// WritePreviews additionally converts every decoded canvas into PNG
	// and BMP preview images.
	WritePreviews bool
}

// Sidecar object identifiers of the version 1 schemas.
const (
	idTgxResource     = "TgxResource"
	idTgxHeader       = "TgxHeader"
	idGm1Resource     = "Gm1Resource"
	idGm1Header       = "Gm1HeaderMeta"
	idGm1ImageHeader  = "Gm1ImageHeader"
	idGm1TileInfo     = "Gm1TileObjectImageInfo"
	idGm1GeneralInfo  = "Gm1GeneralImageInfo"
	sidecarVersion    = 1
	metaFileName      = "resource.meta"
	dataFileExt       = ".data"
	paletteFileExt    = ".palette"
	previewPngFileExt = ".png"
	previewBmpFileExt = ".bmp"
)

// Sidecar map entry keys of the version 1 schemas.
const (
	keyDataPath         = "data path"
	keyDataSize         = "data size"
	keyDataOffset       = "data offset"
	keyDataPrefix       = "data prefix"
	keyPalettePrefix    = "palette prefix"
	keyResourceSize     = "resource size"
	keyTransparentPixel = "transparent pixel"
	keyCanvasWidth      = "canvas width"
	keyCanvasHeight     = "canvas height"
)

// parseUint reads an unsigned sidecar value. The base is detected, so both
// plain decimal and 0x-prefixed values are accepted.
func parseUint(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, errors.Wrapf(err, "value %q is not an unsigned %d-bit number", s, bits)
	}
	return v, nil
}

// parseInt reads a signed sidecar value.
func parseInt(s string, bits int) (int64, error) {
	v, err := strconv.ParseInt(s, 0, bits)
	if err != nil {
		return 0, errors.Wrapf(err, "value %q is not a signed %d-bit number", s, bits)
	}
	return v, nil
}
