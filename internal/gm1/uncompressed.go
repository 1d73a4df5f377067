package gm1

import (
	"encoding/binary"

	"github.com/TheRedDaemon/shcresource/internal/codec"
)

// DecodeUncompressed copies a block of plain 16-bit pixel lines into the
// canvas at (x, y). The data may cover fewer than dataHeight lines: the
// remaining lines are transparent and stay untouched, the caller pre-fills
// the canvas with the transparent raw color. A canvas without pixel data
// is a dry run that only verifies the parameters.
func DecodeUncompressed(data []byte, dataWidth, dataHeight int, canvas *codec.Canvas, x, y int) codec.Result {
	if data == nil || canvas == nil {
		return codec.MissingRequiredStructs
	}
	if !canvas.Contains(x, y, dataWidth, dataHeight) {
		return codec.CanvasCannotContainImage
	}
	lineSize := dataWidth * 2
	if len(data) == 0 || len(data) > lineSize*dataHeight || len(data)%lineSize != 0 {
		return codec.InvalidDataSize
	}
	if canvas.Pix == nil {
		return codec.CheckedParameter
	}

	linesWithData := len(data) / lineSize
	sourceIndex := 0
	targetIndex := x + canvas.Width*y
	for line := 0; line < linesWithData; line++ {
		for px := 0; px < dataWidth; px++ {
			canvas.Pix[targetIndex+px] = binary.LittleEndian.Uint16(data[sourceIndex:])
			sourceIndex += 2
		}
		targetIndex += canvas.Width
	}
	return codec.Success
}

// EncodeUncompressed writes the canvas rectangle at (x, y) back into plain
// pixel lines. With a nil dst it is a dry run: it determines the smallest
// line count whose remaining lines are all transparent and returns the
// needed byte size together with codec.FilledEncodingSize. With a buffer it
// writes len(dst)/lineSize lines and verifies that every line below them is
// entirely transparent.
func EncodeUncompressed(canvas *codec.Canvas, x, y, dataWidth, dataHeight int, dst []byte, transparent uint16) (int, codec.Result) {
	if canvas == nil || canvas.Pix == nil {
		return 0, codec.MissingRequiredStructs
	}
	if !canvas.Contains(x, y, dataWidth, dataHeight) {
		return 0, codec.CanvasCannotContainImage
	}
	lineSize := dataWidth * 2

	linesWithData := 0
	if dst != nil {
		if len(dst) == 0 || len(dst) > lineSize*dataHeight || len(dst)%lineSize != 0 {
			return 0, codec.InvalidDataSize
		}
		linesWithData = len(dst) / lineSize

		sourceIndex := x + canvas.Width*y
		targetIndex := 0
		for line := 0; line < linesWithData; line++ {
			for px := 0; px < dataWidth; px++ {
				binary.LittleEndian.PutUint16(dst[targetIndex:], canvas.Pix[sourceIndex+px])
				targetIndex += 2
			}
			sourceIndex += canvas.Width
		}
	} else {
		// scan from the bottom for the smallest line count that leaves
		// only transparent lines behind; at least one line is always kept
		// so the encoded size stays positive
		linesWithData = dataHeight
		for linesWithData > 1 && lineTransparent(canvas, x, y+linesWithData-1, dataWidth, transparent) {
			linesWithData--
		}
	}

	for line := linesWithData; line < dataHeight; line++ {
		if !lineTransparent(canvas, x, y+line, dataWidth, transparent) {
			return 0, codec.ExpectedTransparentPixel
		}
	}

	if dst == nil {
		return linesWithData * lineSize, codec.FilledEncodingSize
	}
	return len(dst), codec.Success
}

func lineTransparent(canvas *codec.Canvas, x, y, width int, transparent uint16) bool {
	base := x + canvas.Width*y
	for px := 0; px < width; px++ {
		if canvas.Pix[base+px] != transparent {
			return false
		}
	}
	return true
}
