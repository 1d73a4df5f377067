package gm1

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheRedDaemon/shcresource/internal/codec"
)

const transparent = codec.DefaultTransparentRawColor

// ascendingTile returns the 512 tile bytes holding the values 0..255 as
// little-endian 16-bit pixels.
func ascendingTile() []byte {
	tile := make([]byte, TileByteSize)
	for i := 0; i < TileByteSize/2; i++ {
		binary.LittleEndian.PutUint16(tile[i*2:], uint16(i))
	}
	return tile
}

func TestDiamondPixelCount(t *testing.T) {
	pairs := 0
	forEachDiamondPair(func(row, pair int) { pairs++ })
	require.Equal(t, TileByteSize/4, pairs, "diamond must hold exactly 256 pixels")
}

func TestTileRoundTrip(t *testing.T) {
	tile := ascendingTile()

	canvas := codec.NewCanvas(TileWidth, TileHeight, transparent)
	require.Equal(t, codec.Success, DecodeTile(tile, canvas, 0, 0))

	// the tips of the diamond carry the first and last stored pixels
	assert.Equal(t, uint16(0), canvas.At(14, 0))
	assert.Equal(t, uint16(1), canvas.At(15, 0))
	assert.Equal(t, uint16(254), canvas.At(14, 15))
	assert.Equal(t, uint16(255), canvas.At(15, 15))
	// the corners stay transparent
	assert.Equal(t, transparent, canvas.At(0, 0))
	assert.Equal(t, transparent, canvas.At(29, 0))
	assert.Equal(t, transparent, canvas.At(0, 15))
	assert.Equal(t, transparent, canvas.At(29, 15))

	out := make([]byte, TileByteSize)
	require.Equal(t, codec.Success, EncodeTile(canvas, 0, 0, out, transparent))
	require.Equal(t, tile, out)
}

func TestEncodeTile_ExpectedTransparentPixel(t *testing.T) {
	canvas := codec.NewCanvas(TileWidth, TileHeight, transparent)
	require.Equal(t, codec.Success, DecodeTile(ascendingTile(), canvas, 0, 0))
	canvas.Set(0, 0, 0x1234) // outside the diamond

	out := make([]byte, TileByteSize)
	require.Equal(t, codec.ExpectedTransparentPixel, EncodeTile(canvas, 0, 0, out, transparent))
}

func TestEncodeTile_DryRun(t *testing.T) {
	canvas := codec.NewCanvas(TileWidth, TileHeight, transparent)
	require.Equal(t, codec.CheckedParameter, EncodeTile(canvas, 0, 0, nil, transparent))

	canvas.Set(0, 0, 0x1234)
	require.Equal(t, codec.ExpectedTransparentPixel, EncodeTile(canvas, 0, 0, nil, transparent))
}

func TestTile_CanvasContainment(t *testing.T) {
	small := codec.NewCanvas(TileWidth-1, TileHeight, transparent)
	require.Equal(t, codec.CanvasCannotContainImage, DecodeTile(ascendingTile(), small, 0, 0))
	require.Equal(t, codec.CanvasCannotContainImage, EncodeTile(small, 0, 0, nil, transparent))

	big := codec.NewCanvas(TileWidth+5, TileHeight+5, transparent)
	require.Equal(t, codec.CanvasCannotContainImage, DecodeTile(ascendingTile(), big, 6, 0))
	require.Equal(t, codec.Success, DecodeTile(ascendingTile(), big, 5, 5))
}

func TestDecodeTile_DryRun(t *testing.T) {
	dry := &codec.Canvas{Width: TileWidth, Height: TileHeight}
	require.Equal(t, codec.CheckedParameter, DecodeTile(ascendingTile(), dry, 0, 0))
}

func TestTile_ParameterChecks(t *testing.T) {
	canvas := codec.NewCanvas(TileWidth, TileHeight, transparent)
	require.Equal(t, codec.MissingRequiredStructs, DecodeTile(nil, canvas, 0, 0))
	require.Equal(t, codec.InvalidDataSize, DecodeTile(make([]byte, TileByteSize-1), canvas, 0, 0))
	require.Equal(t, codec.MissingRequiredStructs, EncodeTile(nil, 0, 0, nil, transparent))
}
