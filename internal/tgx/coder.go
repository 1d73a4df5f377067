// Package tgx implements the run-length pixel stream codec used by the
// standalone image files and by most archive payloads.
//
// A stream is a sequence of tokens. Every token starts with one byte whose
// top three bits select the marker kind and whose low five bits hold the
// pixel count minus one, so a token covers 1 to 32 pixels. Literal tokens
// are followed by the pixel values, repeat tokens by a single pixel value,
// transparent and newline tokens by nothing.
package tgx

import (
	"encoding/binary"

	"github.com/TheRedDaemon/shcresource/internal/codec"
)

// Stream marker kinds. The marker occupies the top three bits of the token
// byte, the low five bits hold the pixel count minus one.
const (
	MarkerStream      byte = 0x00 // literal run of pixel values
	MarkerTransparent byte = 0x20 // run of transparent pixels, no payload
	MarkerRepeat      byte = 0x40 // one pixel value, replicated
	MarkerNewline     byte = 0x80 // end of line, also used as padding

	markerMask byte = 0xE0
	countMask  byte = 0x1F
)

// MaxPixelsPerToken is the largest count a single token can declare.
const MaxPixelsPerToken = 32

// indexedAlpha is or-ed onto a palette index byte when widening it to the
// uniform 16-bit canvas form.
const indexedAlpha uint16 = 0xFF00

func pixelSize(color codec.ColorType) int {
	if color == codec.ColorIndexed {
		return 1
	}
	return 2
}

// Analyze walks the stream without producing pixels. It verifies the stream
// against the given dimensions and, if a is not nil, fills it with marker
// statistics. The returned result is codec.Success for a valid stream.
func Analyze(data []byte, width, height int, color codec.ColorType, a *Analysis) codec.Result {
	if data == nil {
		return codec.MissingRequiredStructs
	}
	if a != nil {
		*a = Analysis{}
	}
	size := pixelSize(color)

	currentWidth := 0
	currentHeight := 0

	sourceIndex := 0
	for sourceIndex < len(data) {
		marker := data[sourceIndex] & markerMask
		pixelNumber := int(data[sourceIndex]&countMask) + 1
		sourceIndex++

		if marker == MarkerNewline {
			if currentWidth <= 0 && currentHeight == height { // padding at the end
				if a != nil {
					a.PaddingNewlineMarkerCount++
				}
				continue
			}
			if a != nil {
				a.NewlineMarkerCount++
				if currentWidth < width {
					a.UnfinishedWidthPixelCount += width - currentWidth
				}
			}
			currentWidth = 0
			currentHeight++
			if currentHeight > height {
				return codec.HeightTooBig
			}
			continue
		}

		// not every producer emits the newline marker
		if currentWidth == width {
			if a != nil {
				a.NewlineWithoutMarkerCount++
			}
			currentWidth = 0
			currentHeight++
			if currentHeight > height {
				return codec.HeightTooBig
			}
		}

		switch marker {
		case MarkerStream:
			if a != nil {
				a.PixelStreamMarkerCount++
				a.PixelStreamPixelCount += pixelNumber
			}
			sourceIndex += pixelNumber * size
		case MarkerRepeat:
			if a != nil {
				a.RepeatingPixelsMarkerCount++
				a.RepeatingPixelsPixelCount += pixelNumber
			}
			sourceIndex += size
		case MarkerTransparent:
			if a != nil {
				a.TransparentMarkerCount++
				a.TransparentPixelCount += pixelNumber
			}
		default:
			return codec.UnknownMarker
		}

		currentWidth += pixelNumber
		if currentWidth > width {
			return codec.WidthTooBig
		}
	}

	if sourceIndex != len(data) {
		return codec.InvalidDataSize
	}
	if currentHeight < height {
		return codec.NotEnoughPixels
	}
	return codec.Success
}

// Decode fills a width×height image into the canvas at (x, y). The canvas
// is expected to be pre-filled with the transparent raw color: transparent
// runs and short lines leave the target untouched.
// In indexed mode every stream byte b lands in the canvas as 0xFF00|b.
//
// The stream is analyzed first, so a non-success result leaves the canvas
// unmodified. If a is not nil it receives the analysis statistics.
func Decode(data []byte, width, height int, color codec.ColorType, canvas *codec.Canvas, x, y int, a *Analysis) codec.Result {
	if data == nil || canvas == nil || canvas.Pix == nil {
		return codec.MissingRequiredStructs
	}
	if res := Analyze(data, width, height, color, a); res != codec.Success {
		return res
	}
	lineJump := canvas.Width - width
	if lineJump < 0 || x < 0 || x+width > canvas.Width {
		return codec.RawWidthTooSmall
	}
	if y < 0 || y+height > canvas.Height {
		return codec.CanvasCannotContainImage
	}
	indexed := color == codec.ColorIndexed

	currentWidth := 0
	currentHeight := 0 // only required to properly handle padding
	targetIndex := x + canvas.Width*y
	for sourceIndex := 0; sourceIndex < len(data); {
		marker := data[sourceIndex] & markerMask
		pixelNumber := int(data[sourceIndex]&countMask) + 1
		sourceIndex++

		if marker == MarkerNewline {
			if currentWidth <= 0 && currentHeight == height {
				continue
			}
			if currentWidth < width {
				targetIndex += width - currentWidth
			}
			currentWidth = 0
			currentHeight++
			targetIndex += lineJump
			continue
		}

		if currentWidth == width {
			currentWidth = 0
			currentHeight++
			targetIndex += lineJump
		}

		switch marker {
		case MarkerStream:
			if indexed {
				for end := targetIndex + pixelNumber; targetIndex < end; targetIndex++ {
					canvas.Pix[targetIndex] = indexedAlpha | uint16(data[sourceIndex])
					sourceIndex++
				}
			} else {
				for end := targetIndex + pixelNumber; targetIndex < end; targetIndex++ {
					canvas.Pix[targetIndex] = binary.LittleEndian.Uint16(data[sourceIndex:])
					sourceIndex += 2
				}
			}
		case MarkerRepeat:
			var pixel uint16
			if indexed {
				pixel = indexedAlpha | uint16(data[sourceIndex])
				sourceIndex++
			} else {
				pixel = binary.LittleEndian.Uint16(data[sourceIndex:])
				sourceIndex += 2
			}
			for end := targetIndex + pixelNumber; targetIndex < end; targetIndex++ {
				canvas.Pix[targetIndex] = pixel
			}
		case MarkerTransparent:
			targetIndex += pixelNumber
		}
		currentWidth += pixelNumber
	}

	return codec.Success
}

// Encode produces the stream for a width×height image read from the canvas
// at (x, y). With a nil dst it is a dry run: it computes and returns the
// exact encoded size together with codec.FilledEncodingSize, so the caller
// can allocate and call again. With a buffer it returns the written size
// and codec.Success, or codec.InvalidDataSize if dst is too small.
//
// The output is deterministic for a given canvas and option set: pixels
// equal to the transparent raw color become transparent runs, runs of equal
// pixels at least PixelRepeatThreshold long become repeat tokens, everything
// else is emitted as literal streams. Run detection looks ahead across line
// ends to decide whether a run that continues on the next line reaches the
// threshold, but tokens never span lines. Every line ends with one newline
// token and the stream is padded with further newline tokens to a multiple
// of PaddingAlignment. In indexed mode a line's trailing transparency is
// dropped entirely, the newline token alone ends the line early.
func Encode(canvas *codec.Canvas, x, y, width, height int, color codec.ColorType, dst []byte, opt codec.Options) (int, codec.Result) {
	if canvas == nil || canvas.Pix == nil {
		return 0, codec.MissingRequiredStructs
	}
	lineJump := canvas.Width - width
	if lineJump < 0 || x < 0 || x+width > canvas.Width {
		return 0, codec.RawWidthTooSmall
	}
	if y < 0 || y+height > canvas.Height {
		return 0, codec.CanvasCannotContainImage
	}
	indexed := color == codec.ColorIndexed
	size := pixelSize(color)

	resultSize := 0
	sourceIndex := x + canvas.Width*y
	targetIndex := 0
	var pixelBuffer [MaxPixelsPerToken]uint16

	for yIndex := 0; yIndex < height; yIndex++ {
		for xIndex := 0; xIndex < width; {
			transparentCount := 0
			for xIndex < width && canvas.Pix[sourceIndex] == opt.TransparentRawColor {
				transparentCount++
				xIndex++
				sourceIndex++
			}

			// indexed lines short-circuit to the newline instead of
			// emitting their trailing transparency
			if !indexed || xIndex < width {
				for transparentCount > 0 {
					batch := transparentCount
					if batch > MaxPixelsPerToken {
						batch = MaxPixelsPerToken
					}
					transparentCount -= batch

					resultSize++
					if dst != nil {
						if resultSize > len(dst) {
							return 0, codec.InvalidDataSize
						}
						dst[targetIndex] = MarkerTransparent | byte(batch-1)
						targetIndex++
					}
				}
			}

			count := 0
			repeatingPixelCount := 0
			var repeatingPixel uint16
			for xIndex < width && count < MaxPixelsPerToken {
				nextPixel := canvas.Pix[sourceIndex]
				if nextPixel == opt.TransparentRawColor {
					break
				}

				// count the repeating pixels attributable to this line, but
				// let the run cross into following lines for the threshold
				// decision
				tempXIndex := xIndex
				tempYIndex := yIndex
				tempSourceIndex := sourceIndex
				tempRepeatingPixelCount := 0
				for {
					if tempRepeatingPixelCount >= MaxPixelsPerToken {
						repeatingPixelCount += MaxPixelsPerToken
						tempRepeatingPixelCount = 0
					}
					if tempYIndex != yIndex && tempRepeatingPixelCount >= opt.PixelRepeatThreshold {
						break
					}
					if tempXIndex >= width {
						tempYIndex++
						if tempYIndex >= height {
							break
						}
						tempXIndex = 0
						tempSourceIndex += lineJump
					}
					if canvas.Pix[tempSourceIndex] != nextPixel {
						break
					}
					tempRepeatingPixelCount++
					tempSourceIndex++
					tempXIndex++
				}
				// if more than one batch, only add the remaining count if it
				// reaches the threshold on its own
				if repeatingPixelCount == 0 || tempRepeatingPixelCount >= opt.PixelRepeatThreshold {
					repeatingPixelCount += tempRepeatingPixelCount
				}
				reachedThreshold := repeatingPixelCount >= opt.PixelRepeatThreshold

				// the emitted count must not extend over the line end
				if remaining := width - xIndex; remaining < repeatingPixelCount {
					repeatingPixelCount = remaining
				}

				if reachedThreshold {
					repeatingPixel = nextPixel
					break
				}

				// run too short for a repeat token, absorb it into the stream
				adjustPixel := count + repeatingPixelCount
				if adjustPixel > MaxPixelsPerToken {
					adjustPixel = MaxPixelsPerToken
				}
				for count < adjustPixel {
					sourceIndex++
					xIndex++
					pixelBuffer[count] = nextPixel
					count++
				}
				repeatingPixelCount = 0
			}

			if count > 0 {
				resultSize += 1 + count*size
				if dst != nil {
					if resultSize > len(dst) {
						return 0, codec.InvalidDataSize
					}
					dst[targetIndex] = MarkerStream | byte(count-1)
					targetIndex++
					if indexed {
						for i := 0; i < count; i++ {
							dst[targetIndex] = byte(pixelBuffer[i])
							targetIndex++
						}
					} else {
						for i := 0; i < count; i++ {
							binary.LittleEndian.PutUint16(dst[targetIndex:], pixelBuffer[i])
							targetIndex += 2
						}
					}
				}
			}

			for repeatingPixelCount > 0 {
				batch := repeatingPixelCount
				if batch > MaxPixelsPerToken {
					batch = MaxPixelsPerToken
				}
				repeatingPixelCount -= batch
				xIndex += batch
				sourceIndex += batch

				resultSize += 1 + size
				if dst != nil {
					if resultSize > len(dst) {
						return 0, codec.InvalidDataSize
					}
					dst[targetIndex] = MarkerRepeat | byte(batch-1)
					targetIndex++
					if indexed {
						dst[targetIndex] = byte(repeatingPixel)
						targetIndex++
					} else {
						binary.LittleEndian.PutUint16(dst[targetIndex:], repeatingPixel)
						targetIndex += 2
					}
				}
			}
		}

		resultSize++
		if dst != nil {
			if resultSize > len(dst) {
				return 0, codec.InvalidDataSize
			}
			dst[targetIndex] = MarkerNewline
			targetIndex++
		}
		sourceIndex += lineJump
	}

	if remainder := resultSize % opt.PaddingAlignment; remainder > 0 {
		padding := opt.PaddingAlignment - remainder
		resultSize += padding
		if dst != nil {
			if resultSize > len(dst) {
				return 0, codec.InvalidDataSize
			}
			for i := 0; i < padding; i++ {
				dst[targetIndex] = MarkerNewline
				targetIndex++
			}
		}
	}

	if dst == nil {
		return resultSize, codec.FilledEncodingSize
	}
	return resultSize, codec.Success
}
