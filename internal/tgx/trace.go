package tgx

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/TheRedDaemon/shcresource/internal/codec"
)

// Trace writes a human-readable token listing of the stream to w. The
// stream is analyzed against the given dimensions first and only written
// when it is valid.
func Trace(data []byte, width, height int, color codec.ColorType, w io.Writer) codec.Result {
	if res := Analyze(data, width, height, color, nil); res != codec.Success {
		return res
	}
	indexed := color == codec.ColorIndexed

	out := bufio.NewWriter(w)
	sourceIndex := 0
	for sourceIndex < len(data) {
		marker := data[sourceIndex] & markerMask
		pixelNumber := int(data[sourceIndex]&countMask) + 1
		sourceIndex++

		switch marker {
		case MarkerStream:
			fmt.Fprintf(out, "STREAM_PIXEL %d", pixelNumber)
			if indexed {
				for i := 0; i < pixelNumber; i++ {
					fmt.Fprintf(out, " 0x%02x", data[sourceIndex])
					sourceIndex++
				}
			} else {
				for i := 0; i < pixelNumber; i++ {
					fmt.Fprintf(out, " 0x%04x", binary.LittleEndian.Uint16(data[sourceIndex:]))
					sourceIndex += 2
				}
			}
			fmt.Fprintln(out)
		case MarkerRepeat:
			if indexed {
				fmt.Fprintf(out, "REPEAT_PIXEL %d 0x%02x\n", pixelNumber, data[sourceIndex])
				sourceIndex++
			} else {
				fmt.Fprintf(out, "REPEAT_PIXEL %d 0x%04x\n", pixelNumber, binary.LittleEndian.Uint16(data[sourceIndex:]))
				sourceIndex += 2
			}
		case MarkerTransparent:
			fmt.Fprintf(out, "TRANSPARENT_PIXEL %d\n", pixelNumber)
		case MarkerNewline:
			fmt.Fprintf(out, "NEWLINE %d\n", pixelNumber)
		}
	}
	_ = out.Flush()
	return codec.Success
}
