package tgx

import (
	"bytes"
	"testing"

	"github.com/TheRedDaemon/shcresource/internal/codec"
)

const transparent = codec.DefaultTransparentRawColor

// decodeInto runs Decode into a fresh pre-filled canvas.
func decodeInto(t *testing.T, data []byte, width, height int, color codec.ColorType) *codec.Canvas {
	t.Helper()
	canvas := codec.NewCanvas(width, height, transparent)
	if res := Decode(data, width, height, color, canvas, 0, 0, nil); res != codec.Success {
		t.Fatalf("Decode() = %v, want success", res)
	}
	return canvas
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		width  int
		height int
		color  codec.ColorType
		want   []uint16
	}{
		{
			name:   "literal stream with newline",
			data:   []byte{0x01, 0x34, 0x12, 0x56, 0x34, 0x80},
			width:  2,
			height: 1,
			want:   []uint16{0x1234, 0x3456},
		},
		{
			name:   "repeating pixels",
			data:   []byte{0x42, 0xAD, 0xDE, 0x80},
			width:  3,
			height: 1,
			want:   []uint16{0xDEAD, 0xDEAD, 0xDEAD},
		},
		{
			name:   "transparent run with short line",
			data:   []byte{0x21, 0x80},
			width:  5,
			height: 1,
			want:   []uint16{transparent, transparent, transparent, transparent, transparent},
		},
		{
			name:   "two lines with trailing padding newlines",
			data:   []byte{0x40, 0x01, 0x00, 0x80, 0x40, 0x02, 0x00, 0x80, 0x80, 0x80, 0x80, 0x80},
			width:  1,
			height: 2,
			want:   []uint16{0x0001, 0x0002},
		},
		{
			name:   "line without newline marker",
			data:   []byte{0x40, 0x01, 0x00, 0x40, 0x02, 0x00, 0x80, 0x80},
			width:  1,
			height: 2,
			want:   []uint16{0x0001, 0x0002},
		},
		{
			name:   "indexed stream widens to 0xFF00 form",
			data:   []byte{0x01, 0x07, 0x13, 0x42, 0x2A, 0x80},
			width:  5,
			height: 1,
			color:  codec.ColorIndexed,
			want:   []uint16{0xFF07, 0xFF13, 0xFF2A, 0xFF2A, 0xFF2A},
		},
		{
			name:   "indexed short line at column zero",
			data:   []byte{0x80, 0x41, 0x05, 0x80},
			width:  2,
			height: 2,
			color:  codec.ColorIndexed,
			want:   []uint16{transparent, transparent, 0xFF05, 0xFF05},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas := codec.NewCanvas(tt.width, tt.height, transparent)
			if res := Decode(tt.data, tt.width, tt.height, tt.color, canvas, 0, 0, nil); res != codec.Success {
				t.Fatalf("Decode() = %v, want success", res)
			}
			for i, want := range tt.want {
				if canvas.Pix[i] != want {
					t.Errorf("pixel %d = %#06x, want %#06x", i, canvas.Pix[i], want)
				}
			}
		})
	}
}

func TestDecode_Offset(t *testing.T) {
	// a 2x1 image placed at (1, 1) of a 4x3 canvas
	data := []byte{0x01, 0x11, 0x11, 0x22, 0x22, 0x80}
	canvas := codec.NewCanvas(4, 3, transparent)
	if res := Decode(data, 2, 1, codec.ColorDefault, canvas, 1, 1, nil); res != codec.Success {
		t.Fatalf("Decode() = %v, want success", res)
	}
	if got := canvas.At(1, 1); got != 0x1111 {
		t.Errorf("canvas(1,1) = %#06x, want 0x1111", got)
	}
	if got := canvas.At(2, 1); got != 0x2222 {
		t.Errorf("canvas(2,1) = %#06x, want 0x2222", got)
	}
	for _, p := range []struct{ x, y int }{{0, 0}, {3, 1}, {1, 0}, {1, 2}} {
		if got := canvas.At(p.x, p.y); got != transparent {
			t.Errorf("canvas(%d,%d) = %#06x, want transparent", p.x, p.y, got)
		}
	}
}

func TestAnalyze_Failures(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		width  int
		height int
		want   codec.Result
	}{
		{
			name:   "line wider than the image",
			data:   []byte{0x02, 0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x80},
			width:  2,
			height: 1,
			want:   codec.WidthTooBig,
		},
		{
			name:   "more lines than the image",
			data:   []byte{0x40, 0x01, 0x00, 0x80, 0x40, 0x02, 0x00, 0x80},
			width:  1,
			height: 1,
			want:   codec.HeightTooBig,
		},
		{
			name:   "literal token runs beyond the stream",
			data:   []byte{0x05, 0x01, 0x00},
			width:  6,
			height: 1,
			want:   codec.InvalidDataSize,
		},
		{
			name:   "repeat token misses its pixel value",
			data:   []byte{0x42, 0xAD},
			width:  3,
			height: 1,
			want:   codec.InvalidDataSize,
		},
		{
			name:   "stream ends before the image is complete",
			data:   []byte{0x40, 0x01, 0x00, 0x80},
			width:  1,
			height: 2,
			want:   codec.NotEnoughPixels,
		},
		{
			name:   "empty stream for a non-empty image",
			data:   []byte{},
			width:  1,
			height: 1,
			want:   codec.NotEnoughPixels,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Analyze(tt.data, tt.width, tt.height, codec.ColorDefault, nil); got != tt.want {
				t.Errorf("Analyze() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyze_NilData(t *testing.T) {
	if got := Analyze(nil, 1, 1, codec.ColorDefault, nil); got != codec.MissingRequiredStructs {
		t.Errorf("Analyze(nil) = %v, want MissingRequiredStructs", got)
	}
}

func TestAnalyze_Statistics(t *testing.T) {
	// one literal, one repeat, one transparent run, one short newline,
	// one implicit newline, two padding newlines
	data := []byte{
		0x01, 0x11, 0x11, 0x22, 0x22, // stream of 2
		0x42, 0xAD, 0xDE, // repeat 3
		0x80,       // newline (line 1 complete)
		0x22,       // transparent 3
		0x80,       // newline (line 2 short by 2)
		0x44, 0xFF, 0xFF, // repeat 5 fills line 3, no newline marker
		0x41, 0x01, 0x00, // line 4 starts without marker
		0x22, // transparent 3 finishes line 4
		0x80, // newline
		0x80, 0x80, // padding
	}
	var a Analysis
	if res := Analyze(data, 5, 4, codec.ColorDefault, &a); res != codec.Success {
		t.Fatalf("Analyze() = %v, want success", res)
	}
	want := Analysis{
		PixelStreamMarkerCount:     1,
		PixelStreamPixelCount:      2,
		TransparentMarkerCount:     2,
		TransparentPixelCount:      6,
		RepeatingPixelsMarkerCount: 3,
		RepeatingPixelsPixelCount:  10,
		NewlineMarkerCount:         3,
		UnfinishedWidthPixelCount:  2,
		NewlineWithoutMarkerCount:  1,
		PaddingNewlineMarkerCount:  2,
	}
	if a != want {
		t.Errorf("Analysis = %+v, want %+v", a, want)
	}
}

func TestEncode_PaddingAlignment(t *testing.T) {
	canvas := &codec.Canvas{Pix: []uint16{0x1234}, Width: 1, Height: 1}
	opt := codec.DefaultOptions()

	size, res := Encode(canvas, 0, 0, 1, 1, codec.ColorDefault, nil, opt)
	if res != codec.FilledEncodingSize {
		t.Fatalf("dry run Encode() = %v, want FilledEncodingSize", res)
	}
	if size != 4 {
		t.Fatalf("dry run size = %d, want 4", size)
	}

	dst := make([]byte, size)
	size, res = Encode(canvas, 0, 0, 1, 1, codec.ColorDefault, dst, opt)
	if res != codec.Success {
		t.Fatalf("Encode() = %v, want success", res)
	}
	if size != 4 {
		t.Errorf("encoded size = %d, want 4", size)
	}
	if dst[len(dst)-1] != MarkerNewline {
		t.Errorf("last byte = %#02x, want newline marker", dst[len(dst)-1])
	}
	want := []byte{0x00, 0x34, 0x12, 0x80}
	if !bytes.Equal(dst, want) {
		t.Errorf("encoded stream = %x, want %x", dst, want)
	}
}

func TestEncode_RepeatThreshold(t *testing.T) {
	opt := codec.DefaultOptions()

	// two equal pixels stay a literal stream, three become a repeat token
	short := &codec.Canvas{Pix: []uint16{0xAAAA, 0xAAAA, 0x1111}, Width: 3, Height: 1}
	dst := encode(t, short, 3, 1, codec.ColorDefault, opt)
	want := []byte{0x02, 0xAA, 0xAA, 0xAA, 0xAA, 0x11, 0x11, 0x80}
	if !bytes.Equal(dst, want) {
		t.Errorf("below threshold: stream = %x, want %x", dst, want)
	}

	long := &codec.Canvas{Pix: []uint16{0xAAAA, 0xAAAA, 0xAAAA}, Width: 3, Height: 1}
	dst = encode(t, long, 3, 1, codec.ColorDefault, opt)
	want = []byte{0x42, 0xAA, 0xAA, 0x80}
	if !bytes.Equal(dst, want) {
		t.Errorf("at threshold: stream = %x, want %x", dst, want)
	}
}

func TestEncode_RunCrossingLineEnd(t *testing.T) {
	// the run only reaches the threshold together with the next line; the
	// emission still stays line-local: a repeat for the tail of line one,
	// another for the head of line two
	canvas := &codec.Canvas{
		Pix:    []uint16{0x1111, 0xAAAA, 0xAAAA, 0xAAAA, 0xAAAA, 0x2222},
		Width:  3,
		Height: 2,
	}
	opt := codec.DefaultOptions()
	dst := encode(t, canvas, 3, 2, codec.ColorDefault, opt)
	want := []byte{
		0x00, 0x11, 0x11, // literal 0x1111
		0x41, 0xAA, 0xAA, // repeat 2: tail of line one, threshold met across lines
		0x80,
		0x02, 0xAA, 0xAA, 0xAA, 0xAA, 0x22, 0x22, // line two restarts as a literal
		0x80,
		0x80, // padding to 16
	}
	if !bytes.Equal(dst, want) {
		t.Errorf("stream = %x, want %x", dst, want)
	}
}

func TestEncode_TransparentBatches(t *testing.T) {
	// 40 transparent pixels need two transparent tokens
	canvas := codec.NewCanvas(41, 1, transparent)
	canvas.Pix[40] = 0x1234
	opt := codec.DefaultOptions()
	dst := encode(t, canvas, 41, 1, codec.ColorDefault, opt)
	want := []byte{0x3F, 0x27, 0x00, 0x34, 0x12, 0x80, 0x80, 0x80}
	if !bytes.Equal(dst, want) {
		t.Errorf("stream = %x, want %x", dst, want)
	}
}

func TestEncode_IndexedShortCircuit(t *testing.T) {
	// trailing transparency of an indexed line is not emitted at all
	canvas := codec.NewCanvas(4, 1, transparent)
	canvas.Pix[0] = 0xFF05
	opt := codec.DefaultOptions()
	dst := encode(t, canvas, 4, 1, codec.ColorIndexed, opt)
	want := []byte{0x00, 0x05, 0x80, 0x80}
	if !bytes.Equal(dst, want) {
		t.Errorf("stream = %x, want %x", dst, want)
	}

	// the default color type keeps the trailing transparent run
	dst = encode(t, canvas, 4, 1, codec.ColorDefault, opt)
	want = []byte{0x00, 0x05, 0xFF, 0x22, 0x80, 0x80, 0x80, 0x80}
	if !bytes.Equal(dst, want) {
		t.Errorf("default stream = %x, want %x", dst, want)
	}
}

func TestEncode_BufferTooSmall(t *testing.T) {
	canvas := &codec.Canvas{Pix: []uint16{0x1234}, Width: 1, Height: 1}
	dst := make([]byte, 2)
	if _, res := Encode(canvas, 0, 0, 1, 1, codec.ColorDefault, dst, codec.DefaultOptions()); res != codec.InvalidDataSize {
		t.Errorf("Encode() = %v, want InvalidDataSize", res)
	}
}

func TestEncode_MissingCanvas(t *testing.T) {
	if _, res := Encode(nil, 0, 0, 1, 1, codec.ColorDefault, nil, codec.DefaultOptions()); res != codec.MissingRequiredStructs {
		t.Errorf("Encode(nil) = %v, want MissingRequiredStructs", res)
	}
}

func TestEncode_RawWidthTooSmall(t *testing.T) {
	canvas := codec.NewCanvas(2, 2, transparent)
	if _, res := Encode(canvas, 0, 0, 3, 2, codec.ColorDefault, nil, codec.DefaultOptions()); res != codec.RawWidthTooSmall {
		t.Errorf("Encode() = %v, want RawWidthTooSmall", res)
	}
	if _, res := Encode(canvas, 1, 0, 2, 2, codec.ColorDefault, nil, codec.DefaultOptions()); res != codec.RawWidthTooSmall {
		t.Errorf("Encode() with offset = %v, want RawWidthTooSmall", res)
	}
}

// encode runs the dry run followed by the real pass.
func encode(t *testing.T, canvas *codec.Canvas, width, height int, color codec.ColorType, opt codec.Options) []byte {
	t.Helper()
	size, res := Encode(canvas, 0, 0, width, height, color, nil, opt)
	if res != codec.FilledEncodingSize {
		t.Fatalf("dry run Encode() = %v, want FilledEncodingSize", res)
	}
	dst := make([]byte, size)
	written, res := Encode(canvas, 0, 0, width, height, color, dst, opt)
	if res != codec.Success {
		t.Fatalf("Encode() = %v, want success", res)
	}
	if written != size {
		t.Fatalf("written size %d does not match dry run size %d", written, size)
	}
	return dst
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		pix    []uint16
		width  int
		height int
		color  codec.ColorType
	}{
		{
			name:   "mixed content",
			pix:    []uint16{0x1111, 0x1111, 0x1111, 0x2222, transparent, transparent, 0x3333, 0x4444, transparent, 0x5555, 0x5555, 0x5555},
			width:  4,
			height: 3,
		},
		{
			name:   "fully transparent",
			pix:    make([]uint16, 12),
			width:  4,
			height: 3,
		},
		{
			name:   "single color block",
			pix:    []uint16{0x9999, 0x9999, 0x9999, 0x9999, 0x9999, 0x9999, 0x9999, 0x9999},
			width:  4,
			height: 2,
		},
		{
			name: "run longer than one token",
			pix: func() []uint16 {
				p := make([]uint16, 80)
				for i := range p {
					p[i] = 0xBEEF
				}
				return p
			}(),
			width:  40,
			height: 2,
		},
		{
			name:   "indexed content",
			pix:    []uint16{0xFF01, 0xFF01, 0xFF01, 0xFF01, transparent, transparent, 0xFF02, 0xFF03},
			width:  4,
			height: 2,
			color:  codec.ColorIndexed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas := &codec.Canvas{Pix: tt.pix, Width: tt.width, Height: tt.height}
			opt := codec.DefaultOptions()
			data := encode(t, canvas, tt.width, tt.height, tt.color, opt)

			if len(data)%opt.PaddingAlignment != 0 {
				t.Errorf("encoded size %d is not aligned to %d", len(data), opt.PaddingAlignment)
			}

			decoded := decodeInto(t, data, tt.width, tt.height, tt.color)
			for i := range tt.pix {
				if decoded.Pix[i] != tt.pix[i] {
					t.Errorf("pixel %d = %#06x, want %#06x", i, decoded.Pix[i], tt.pix[i])
				}
			}

			// the encoder is deterministic
			again := encode(t, canvas, tt.width, tt.height, tt.color, opt)
			if !bytes.Equal(data, again) {
				t.Errorf("second encoding differs from the first")
			}
		})
	}
}

func TestRoundTrip_ThresholdAndAlignmentVariants(t *testing.T) {
	pix := []uint16{
		0x1111, 0x1111, 0x2222, 0x2222, 0x2222, 0x2222, transparent, 0x3333,
		0x3333, 0x3333, transparent, transparent, 0x4444, 0x4444, 0x4444, 0x4444,
	}
	for _, threshold := range []int{1, 2, 3, 5} {
		for _, alignment := range []int{1, 2, 4, 8} {
			opt := codec.DefaultOptions()
			opt.PixelRepeatThreshold = threshold
			opt.PaddingAlignment = alignment

			canvas := &codec.Canvas{Pix: pix, Width: 8, Height: 2}
			data := encode(t, canvas, 8, 2, codec.ColorDefault, opt)
			if len(data)%alignment != 0 {
				t.Errorf("threshold %d alignment %d: size %d not aligned", threshold, alignment, len(data))
			}
			decoded := decodeInto(t, data, 8, 2, codec.ColorDefault)
			for i := range pix {
				if decoded.Pix[i] != pix[i] {
					t.Errorf("threshold %d alignment %d: pixel %d = %#06x, want %#06x",
						threshold, alignment, i, decoded.Pix[i], pix[i])
				}
			}
		}
	}
}
