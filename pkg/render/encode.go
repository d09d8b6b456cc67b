package render

import (
	"image"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 95

// Encode writes img in the given pixel format.
func Encode(w io.Writer, img image.Image, f export.Format) error {
	var err error
	switch f {
	case export.PNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case export.JPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	case export.WEBP:
		err = nativewebp.Encode(w, img, nil)
	default:
		return errors.New(errors.ErrCodeUnsupportedFormat, "%s is not a raster format", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeRaster, err, "encode %s", f)
	}
	return nil
}
