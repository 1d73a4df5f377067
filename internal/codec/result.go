// Package codec holds the vocabulary shared by the TGX and GM1 coders:
// the result enum, the 16-bit pixel canvas, and the coder options.
package codec

import "github.com/pkg/errors"

// Result codes returned by the coders.
const (
	// Success indicates the coder completed and produced output.
	Success Result = iota
	// CheckedParameter indicates a dry run that only verified parameters.
	CheckedParameter
	// FilledEncodingSize indicates a dry run that computed the encoded size.
	FilledEncodingSize

	// MissingRequiredStructs indicates a required input structure was absent.
	MissingRequiredStructs
	// UnknownMarker indicates an unknown marker in the encoded data.
	UnknownMarker
	// WidthTooBig indicates a line accumulated more pixels than the width allows.
	WidthTooBig
	// HeightTooBig indicates more lines than the height allows.
	HeightTooBig
	// InvalidDataSize indicates the coder would run beyond the given data.
	InvalidDataSize
	// NotEnoughPixels indicates the data ended before the image was complete.
	NotEnoughPixels
	// RawWidthTooSmall indicates the canvas width cannot hold the image width.
	RawWidthTooSmall
	// CanvasCannotContainImage indicates the image rectangle leaves the canvas.
	CanvasCannotContainImage
	// ExpectedTransparentPixel indicates a pixel that had to be transparent was not.
	ExpectedTransparentPixel
)

// Result is the dense status code shared by all coders.
type Result int32

// Ok reports whether the result is one of the success kinds.
func (r Result) Ok() bool {
	switch r {
	case Success, CheckedParameter, FilledEncodingSize:
		return true
	default:
		return false
	}
}

// String returns a human-readable description of the result.
func (r Result) String() string {
	switch r {
	case Success:
		return "coder completed successfully"
	case CheckedParameter:
		return "parameter check and/or dry run completed successfully"
	case FilledEncodingSize:
		return "dry run completed successfully and filled the encoding size"
	case MissingRequiredStructs:
		return "coder was not given the structures required for de- or encoding"
	case UnknownMarker:
		return "coder encountered an unknown marker in the encoded data"
	case WidthTooBig:
		return "coder encountered a line with a bigger width than stated by the meta data"
	case HeightTooBig:
		return "coder encountered a bigger height than stated by the meta data"
	case InvalidDataSize:
		return "coder attempted to run beyond the given encoded data, which is likely invalid or incomplete"
	case NotEnoughPixels:
		return "coder produced an image with fewer pixels than required by the meta data"
	case RawWidthTooSmall:
		return "coder was given a raw canvas width that is not compatible with the other meta data"
	case CanvasCannotContainImage:
		return "coder was given an image that can not be contained in the raw pixel canvas"
	case ExpectedTransparentPixel:
		return "coder expected to find a transparent pixel in the source, but encountered another color"
	default:
		return "unknown coder result"
	}
}

// Err returns nil for the success kinds and an error carrying the
// description otherwise.
func (r Result) Err() error {
	if r.Ok() {
		return nil
	}
	return errors.New(r.String())
}
