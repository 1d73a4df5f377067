package tgx

import (
	"testing"

	"github.com/TheRedDaemon/shcresource/internal/codec"
)

// FuzzAnalyze feeds arbitrary stream bytes to the analyzer. The format is
// trusted game data, but invalid input must be rejected, never crash.
// Run with: go test -fuzz=FuzzAnalyze -fuzztime=60s
func FuzzAnalyze(f *testing.F) {
	f.Add([]byte{0x01, 0x34, 0x12, 0x56, 0x34, 0x80}, 2, 1)
	f.Add([]byte{0x42, 0xAD, 0xDE, 0x80}, 3, 1)
	f.Add([]byte{0x21, 0x80}, 5, 1)
	f.Add([]byte{0x80}, 0, 0)
	f.Add([]byte{}, 1, 1)
	f.Add([]byte{0xFF}, 32, 32)

	f.Fuzz(func(t *testing.T, data []byte, width, height int) {
		if width < 0 || height < 0 || width > 1<<12 || height > 1<<12 {
			return
		}
		var a Analysis
		_ = Analyze(data, width, height, codec.ColorDefault, &a)
		_ = Analyze(data, width, height, codec.ColorIndexed, nil)
	})
}

// FuzzDecode decodes arbitrary stream bytes into a matching canvas. A
// stream that survives analysis must decode without leaving the canvas.
func FuzzDecode(f *testing.F) {
	f.Add([]byte{0x01, 0x34, 0x12, 0x56, 0x34, 0x80}, 2, 1)
	f.Add([]byte{0x22, 0x80, 0x80, 0x80}, 3, 1)
	f.Add([]byte{0x41, 0x05, 0x80}, 2, 1)

	f.Fuzz(func(t *testing.T, data []byte, width, height int) {
		if width < 1 || height < 1 || width > 256 || height > 256 {
			return
		}
		canvas := codec.NewCanvas(width, height, codec.DefaultTransparentRawColor)
		_ = Decode(data, width, height, codec.ColorDefault, canvas, 0, 0, nil)
	})
}

// FuzzRoundTrip encodes arbitrary canvas content and requires the decoded
// result to reproduce it.
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{0x00, 0x00, 0x12, 0x34, 0x12, 0x34, 0x12, 0x34}, 2)
	f.Add([]byte{0xFF, 0xFF, 0x00, 0x00}, 1)

	f.Fuzz(func(t *testing.T, raw []byte, width int) {
		if width < 1 || width > 64 || len(raw) < width*2 {
			return
		}
		pixels := len(raw) / 2
		height := pixels / width
		if height < 1 || height > 64 {
			return
		}
		canvas := &codec.Canvas{Pix: make([]uint16, width*height), Width: width, Height: height}
		for i := range canvas.Pix {
			canvas.Pix[i] = uint16(raw[i*2]) | uint16(raw[i*2+1])<<8
		}

		opt := codec.DefaultOptions()
		size, res := Encode(canvas, 0, 0, width, height, codec.ColorDefault, nil, opt)
		if res != codec.FilledEncodingSize {
			t.Fatalf("dry run Encode() = %v", res)
		}
		data := make([]byte, size)
		if _, res = Encode(canvas, 0, 0, width, height, codec.ColorDefault, data, opt); res != codec.Success {
			t.Fatalf("Encode() = %v", res)
		}
		if len(data)%opt.PaddingAlignment != 0 {
			t.Fatalf("encoded size %d not aligned", len(data))
		}

		decoded := codec.NewCanvas(width, height, opt.TransparentRawColor)
		if res := Decode(data, width, height, codec.ColorDefault, decoded, 0, 0, nil); res != codec.Success {
			t.Fatalf("Decode() = %v", res)
		}
		for i := range canvas.Pix {
			if decoded.Pix[i] != canvas.Pix[i] {
				t.Fatalf("pixel %d = %#06x, want %#06x", i, decoded.Pix[i], canvas.Pix[i])
			}
		}
	})
}
