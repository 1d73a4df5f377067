package shcresource

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Test parses and validates a resource file and writes a structural report
// to out. The resource format is selected by the file extension. With
// tgxAsText set, every valid TGX-like stream is additionally written as a
// human-readable token listing.
func Test(path string, opt CoderOptions, out io.Writer, tgxAsText bool) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case TgxFileExtension:
		r, err := LoadTgx(path)
		if err != nil {
			return err
		}
		return r.Validate(opt, out, tgxAsText)
	case Gm1FileExtension:
		r, err := LoadGm1(path)
		if err != nil {
			return err
		}
		return r.Validate(opt, out, tgxAsText)
	default:
		return errors.Errorf("%s is not a known resource file type", path)
	}
}
