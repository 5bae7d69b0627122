package prism

import (
	"fmt"
	"image/color"
	"os"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/rainbow-hdr/pkg/emath"
)

// FusedImage is the unnormalized output of CombineHDR, for a given L.
// Implements the image.Image interface, and hdr.Image.
type FusedImage struct {
	emath.Raster
	L float64
}

// Implement image.Image
func (fi FusedImage) ColorModel() color.Model { return hdrcolor.RGBModel }
func (fi FusedImage) At(x, y int) color.Color { return fi.HDRAt(x, y) }

// Implement hdr.Image
func (fi FusedImage) Size() int { return fi.Dx() * fi.Dy() }
func (fi FusedImage) HDRAt(x, y int) hdrcolor.Color {
	return hdrcolor.RGB{R: fi.Planes[0].Get(x, y), G: fi.Planes[1].Get(x, y), B: fi.Planes[2].Get(x, y)}
}

func (fi FusedImage) String() string {
	return fmt.Sprintf("FusedImage L=%v %s", fi.L, fi.Raster)
}

// WriteToHDR outputs a Radiance RGBE image. You can load this into
// photoshop or other HDR tools.
func (fi FusedImage) WriteToHDR(filename string) error {
	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("FusedImage.WriteToHDR, open+w '%s': %w", filename, err)
	}

	if err := rgbe.Encode(writer, fi); err != nil {
		writer.Close()
		return fmt.Errorf("FusedImage.WriteToHDR, encoding RGBE '%s': %w", filename, err)
	}
	return writer.Close()
}
