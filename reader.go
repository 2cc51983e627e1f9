package picture_go

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/imageformats"
	"github.com/kpfaulkner/picture-go/pixel"
	log "github.com/sirupsen/logrus"
)

// Decode reads a PNG, BMP, TIFF or QOI stream into a buffer of the closest
// matching pixel type.
func Decode(r io.Reader) (*imageformats.Decoded, error) {
	return imageformats.Decode(r)
}

// Open decodes the image stored at path.
func Open(path string) (*imageformats.Decoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	d, err := imageformats.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	w, h := d.Dimensions()
	log.Debugf("opened %s: %s %s %dx%d", path, d.Format, d.ColorType, w, h)
	return d, nil
}

// Save writes v to path, picking the file format from the extension.
func Save[P pixel.Pixel[P]](path string, v image.Viewer[P]) (err error) {
	format, err := imageformats.FormatFromFilename(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return imageformats.Encode(v, f, format)
}
