package gm1

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Resource is a fully parsed archive: the header, the three per-image
// tables and the shared image data blob. A resource owns its slices;
// callers must not keep sub-slices of Data beyond the resource lifetime.
type Resource struct {
	Header  Header
	Offsets []uint32
	Sizes   []uint32
	Images  []ImageHeader
	Data    []byte
}

// imageTableEntrySize is the per-image cost outside the data blob:
// one offset, one size, one image header.
const imageTableEntrySize = 4 + 4 + ImageHeaderSize

// Parse reads a resource from a complete archive file image.
func Parse(b []byte) (*Resource, error) {
	if len(b) < HeaderSize {
		return nil, errors.Errorf("file of %d bytes is too small for an archive header of %d bytes", len(b), HeaderSize)
	}

	r := &Resource{Header: decodeHeader(b)}
	if !r.Header.Type.Valid() {
		return nil, errors.Errorf("header does not specify a known archive type: %d", int32(r.Header.Type))
	}

	n := int(r.Header.PictureCount)
	bodySize := len(b) - HeaderSize
	if int(r.Header.DataSize) != bodySize-n*imageTableEntrySize {
		return nil, errors.Errorf("body of %d bytes does not have the size specified by the header (%d pictures, %d data bytes)",
			bodySize, n, r.Header.DataSize)
	}

	off := HeaderSize
	r.Offsets = make([]uint32, n)
	for i := range r.Offsets {
		r.Offsets[i] = binary.LittleEndian.Uint32(b[off:])
		off += 4
	}
	r.Sizes = make([]uint32, n)
	for i := range r.Sizes {
		r.Sizes[i] = binary.LittleEndian.Uint32(b[off:])
		off += 4
	}
	r.Images = make([]ImageHeader, n)
	for i := range r.Images {
		r.Images[i] = decodeImageHeader(b[off:])
		off += ImageHeaderSize
	}
	r.Data = make([]byte, r.Header.DataSize)
	copy(r.Data, b[off:])

	return r, nil
}

// FileSize returns the encoded size of the resource.
func (r *Resource) FileSize() int {
	return HeaderSize + len(r.Offsets)*imageTableEntrySize + len(r.Data)
}

// Serialize writes the resource back into a complete archive file image.
// The table lengths and the header counters must be consistent.
func (r *Resource) Serialize() ([]byte, error) {
	n := int(r.Header.PictureCount)
	if len(r.Offsets) != n || len(r.Sizes) != n || len(r.Images) != n {
		return nil, errors.Errorf("table lengths %d/%d/%d do not match the header picture count %d",
			len(r.Offsets), len(r.Sizes), len(r.Images), n)
	}
	if int(r.Header.DataSize) != len(r.Data) {
		return nil, errors.Errorf("data blob of %d bytes does not match the header data size %d",
			len(r.Data), r.Header.DataSize)
	}

	b := make([]byte, r.FileSize())
	encodeHeader(&r.Header, b)
	off := HeaderSize
	for _, v := range r.Offsets {
		binary.LittleEndian.PutUint32(b[off:], v)
		off += 4
	}
	for _, v := range r.Sizes {
		binary.LittleEndian.PutUint32(b[off:], v)
		off += 4
	}
	for i := range r.Images {
		encodeImageHeader(&r.Images[i], b[off:])
		off += ImageHeaderSize
	}
	copy(b[off:], r.Data)
	return b, nil
}

// ImageData returns the payload slice of image i, checked against the
// bounds of the data blob.
func (r *Resource) ImageData(i int) ([]byte, error) {
	if i < 0 || i >= len(r.Images) {
		return nil, errors.Errorf("image index %d out of range [0, %d)", i, len(r.Images))
	}
	offset := int64(r.Offsets[i])
	size := int64(r.Sizes[i])
	if offset+size > int64(len(r.Data)) {
		return nil, errors.Errorf("image %d with offset %d and size %d leaves the data blob of %d bytes",
			i, offset, size, len(r.Data))
	}
	return r.Data[offset : offset+size], nil
}
