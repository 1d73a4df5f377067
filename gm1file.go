package shcresource

import (
	"io"

	"github.com/rs/zerolog/log"

	"github.com/TheRedDaemon/shcresource/internal/gm1"
)

// Gm1Resource is a loaded GM1 archive.
type Gm1Resource struct {
	res *gm1.Resource
}

// LoadGm1 reads and parses a GM1 archive file. The body layout is checked
// against the header counters; individual images are only checked by an
// explicit Validate call.
func LoadGm1(path string) (*Gm1Resource, error) {
	log.Info().Str("file", path).Msg("loading GM1 file")
	b, err := readResourceFile(path, minGm1FileSize)
	if err != nil {
		return nil, err
	}
	res, err := gm1.Parse(b)
	if err != nil {
		return nil, err
	}
	log.Info().Stringer("type", res.Header.Type).Uint32("pictures", res.Header.PictureCount).
		Uint32("dataSize", res.Header.DataSize).Msg("loaded GM1 resource")
	return &Gm1Resource{res: res}, nil
}

// SaveGm1 writes the archive back to a file, creating parent directories
// as needed.
func SaveGm1(path string, r *Gm1Resource) error {
	log.Info().Str("file", path).Msg("saving GM1 resource")
	b, err := r.res.Serialize()
	if err != nil {
		return err
	}
	return writeResourceFile(path, b)
}

// PictureCount returns the number of images in the archive.
func (r *Gm1Resource) PictureCount() int {
	return len(r.res.Images)
}

// Validate checks every image payload with the codec selected by the
// archive sub-type and writes a structural report to out.
func (r *Gm1Resource) Validate(opt CoderOptions, out io.Writer, tgxAsText bool) error {
	log.Info().Msg("validating GM1 resource")
	return r.res.Validate(opt.codec(), out, tgxAsText)
}
