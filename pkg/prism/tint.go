package prism

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/rainbow-hdr/pkg/emath"
)

// Tint colors a grayscale image. The gray is copied into R, G and B
// planes (with an empty alpha plane), scaled to [0,1], and multiplied
// by the color's (r,g,b,1). The result is then normalized so its
// brightest sample is 255, and truncated to 8-bit values.
//
// Tinting an all-black image, or tinting with black, leaves nothing to
// normalize against and returns ErrDegenerate.
func Tint(gray *image.Gray, col colorful.Color) (emath.Raster, error) {
	src := emath.RasterFromGray(gray)
	out := emath.NewRaster(src.Dx(), src.Dy(), 4)

	weights := [4]float64{col.R, col.G, col.B, 1.0}
	for c := 0; c < 3; c++ {
		out.Planes[c] = src.Planes[0].Copy()
		out.Planes[c].Apply(func(v float64) float64 { return (v / 255.0) * weights[c] })
	}
	// out.Planes[3] is the alpha plane; it started at zero, and 0*1.0 stays zero.

	if err := normalize8(out); err != nil {
		return out, fmt.Errorf("tint with %s: %w", col.Hex(), err)
	}
	return out, nil
}
