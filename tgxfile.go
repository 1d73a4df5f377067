package shcresource

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/TheRedDaemon/shcresource/internal/codec"
	"github.com/TheRedDaemon/shcresource/internal/tgx"
)

// TgxResource is a loaded standalone TGX file: the two header dimensions
// and the raw encoded stream.
type TgxResource struct {
	Width  int
	Height int
	Data   []byte
}

// LoadTgx reads a standalone TGX file: two little-endian uint32 dimensions
// followed by the stream to the end of the file.
func LoadTgx(path string) (*TgxResource, error) {
	log.Info().Str("file", path).Msg("loading TGX file")
	b, err := readResourceFile(path, minTgxFileSize)
	if err != nil {
		return nil, err
	}

	r := &TgxResource{
		Width:  int(binary.LittleEndian.Uint32(b[0:])),
		Height: int(binary.LittleEndian.Uint32(b[4:])),
		Data:   b[8:],
	}
	log.Info().Int("width", r.Width).Int("height", r.Height).
		Int("dataSize", len(r.Data)).Msg("loaded TGX resource")
	return r, nil
}

// SaveTgx writes the resource as a standalone TGX file, creating parent
// directories as needed.
func SaveTgx(path string, r *TgxResource) error {
	log.Info().Str("file", path).Msg("saving TGX resource")
	b := make([]byte, 8+len(r.Data))
	binary.LittleEndian.PutUint32(b[0:], uint32(r.Width))
	binary.LittleEndian.PutUint32(b[4:], uint32(r.Height))
	copy(b[8:], r.Data)
	return writeResourceFile(path, b)
}

// Validate analyzes the stream against the header dimensions and writes a
// structural report to out. With tgxAsText set, a valid stream is
// additionally written as a token listing.
func (r *TgxResource) Validate(opt CoderOptions, out io.Writer, tgxAsText bool) error {
	log.Info().Msg("validating TGX resource")
	fmt.Fprintf(out, "### General TGX info ###\nData Size: %d\nTGX Width: %d\nTGX Height: %d\n\n",
		len(r.Data), r.Width, r.Height)
	fmt.Fprintf(out, "### Coder Instruction ###\n%s\n\n", opt.codec())

	var analysis tgx.Analysis
	if res := tgx.Analyze(r.Data, r.Width, r.Height, codec.ColorDefault, &analysis); res != codec.Success {
		fmt.Fprintf(out, "%s\n\n### TGX seems invalid ###\n", res)
		return res.Err()
	}
	fmt.Fprintf(out, "### Structure Meta Data ###\n%s\n\n", analysis)

	if tgxAsText {
		if res := tgx.Trace(r.Data, r.Width, r.Height, codec.ColorDefault, out); res != codec.Success {
			return res.Err()
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "### TGX seems valid ###\n")
	return nil
}

// readResourceFile loads a complete resource file with the size guards
// shared by both loaders.
func readResourceFile(path string, minSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "inspecting resource file")
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Errorf("%s is not a regular file", path)
	}
	if info.Size() < minSize {
		return nil, errors.Errorf("file of %d bytes is too small for this resource format", info.Size())
	}
	if info.Size() > maxFileSize {
		return nil, errors.Errorf("file of %d bytes is too big to be handled", info.Size())
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading resource file")
	}
	return b, nil
}

// writeResourceFile writes a resource file and verifies the size on disk.
// A mismatch is reported, but the file is kept for inspection.
func writeResourceFile(path string, b []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "creating target directories")
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Wrap(err, "writing resource file")
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "inspecting written resource file")
	}
	if info.Size() != int64(len(b)) {
		log.Error().Str("file", path).Int64("size", info.Size()).Int("expected", len(b)).
			Msg("written file has not the expected size and might be corrupted")
		return errors.Errorf("written file has %d bytes instead of %d", info.Size(), len(b))
	}
	return nil
}
