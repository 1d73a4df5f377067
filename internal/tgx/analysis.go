package tgx

import "fmt"

// Analysis collects structural statistics while a stream is walked.
type Analysis struct {
	PixelStreamMarkerCount     int
	PixelStreamPixelCount      int
	TransparentMarkerCount     int
	TransparentPixelCount      int
	RepeatingPixelsMarkerCount int
	RepeatingPixelsPixelCount  int
	NewlineMarkerCount         int
	UnfinishedWidthPixelCount  int
	NewlineWithoutMarkerCount  int
	PaddingNewlineMarkerCount  int
}

// String returns the multi-line report form used by the test command.
func (a Analysis) String() string {
	return fmt.Sprintf(
		"Marker Count Pixel Stream: %d\n"+
			"Pixel Stream Pixel Count: %d\n"+
			"Marker Count Transparent: %d\n"+
			"Transparent Pixel Count: %d\n"+
			"Marker Count Repeating Pixels: %d\n"+
			"Repeating Pixels Pixel Count: %d\n"+
			"Marker Count Newline: %d\n"+
			"Unfinished Width Pixel Count: %d\n"+
			"Newline Without Marker Count: %d\n"+
			"Padding Newline Marker Count: %d",
		a.PixelStreamMarkerCount,
		a.PixelStreamPixelCount,
		a.TransparentMarkerCount,
		a.TransparentPixelCount,
		a.RepeatingPixelsMarkerCount,
		a.RepeatingPixelsPixelCount,
		a.NewlineMarkerCount,
		a.UnfinishedWidthPixelCount,
		a.NewlineWithoutMarkerCount,
		a.PaddingNewlineMarkerCount)
}
