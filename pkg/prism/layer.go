package prism

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/rainbow-hdr/pkg/emath"
)

// A Layer is one input photo, converted to grayscale, along with the
// wavelength it gets tinted with.
type Layer struct {
	LoadFilename string
	Camera       string // EXIF summary, if the file had any

	Gray *image.Gray // The photo, as loaded

	Wavelength float64 // nm
	Color      colorful.Color
	Tinted     emath.Raster // RGBA planes, [0,255]
}

func (l Layer) String() string {
	b := l.Gray.Bounds()
	str := fmt.Sprintf("%s: %dx%d", l.Filename(), b.Dx(), b.Dy())
	if l.Wavelength > 0 {
		str += fmt.Sprintf(", %6.2fnm %s", l.Wavelength, l.Color.Hex())
	}
	if l.Camera != "" {
		str += fmt.Sprintf(", [%s]", l.Camera)
	}
	return str
}

func (l Layer) Filename() string {
	return filepath.Base(l.LoadFilename)
}
