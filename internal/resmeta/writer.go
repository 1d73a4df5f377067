package resmeta

import (
	"bufio"
	"fmt"
	"io"
)

// Writer emits a meta file object by object. Calls chain:
//
//	w.StartObject("Example", 1).
//		WriteMapEntry("key", "value").
//		WriteListEntry("123", "width").
//		EndObject()
//
// Errors stick to the writer and surface from Flush.
type Writer struct {
	out       *bufio.Writer
	err       error
	open      bool
	firstLine bool
}

// NewWriter returns a writer that starts the file with its header object.
func NewWriter(w io.Writer) *Writer {
	mw := &Writer{out: bufio.NewWriter(w), firstLine: true}
	mw.StartObject(HeaderIdentifier, CurrentVersion).EndObject()
	return mw
}

// StartObject begins a new object.
func (w *Writer) StartObject(identifier string, version int) *Writer {
	if w.err != nil {
		return w
	}
	if w.open {
		w.EndObject()
	}
	if !w.firstLine {
		w.writeLine("")
	}
	w.firstLine = false
	w.open = true
	w.writeLine(fmt.Sprintf("%s %d", identifier, version))
	return w
}

// WriteMapEntry appends a map entry to the open object.
func (w *Writer) WriteMapEntry(key, value string) *Writer {
	w.writeLine(fmt.Sprintf("%c %s %c %s", mapItemMarker, key, mapSeparatorMarker, value))
	return w
}

// WriteListEntry appends a list entry to the open object, followed by an
// optional comment naming the value.
func (w *Writer) WriteListEntry(value, comment string) *Writer {
	if comment != "" {
		w.writeLine(fmt.Sprintf("%c %s %c %s", listItemMarker, value, commentMarker, comment))
		return w
	}
	w.writeLine(fmt.Sprintf("%c %s", listItemMarker, value))
	return w
}

// EndObject closes the open object.
func (w *Writer) EndObject() *Writer {
	w.open = false
	return w
}

// Flush writes buffered output and returns the first error encountered.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.out.Flush()
}

func (w *Writer) writeLine(line string) {
	if w.err != nil {
		return
	}
	if _, err := w.out.WriteString(line); err != nil {
		w.err = err
		return
	}
	if err := w.out.WriteByte('\n'); err != nil {
		w.err = err
	}
}
