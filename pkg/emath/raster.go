package emath

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// A Raster is a stack of same-sized FloatGrids, one per channel. A
// grayscale raster has one plane; an RGBA raster has four, in R,G,B,A
// order.
type Raster struct {
	Planes []FloatGrid
}

func NewRaster(w, h, channels int) Raster {
	r := Raster{Planes: make([]FloatGrid, channels)}
	for c := range r.Planes {
		r.Planes[c] = NewFloatGrid(w, h)
	}
	return r
}

// RasterFromGray builds a single plane raster holding the 8-bit
// intensities [0,255] of the image.
func RasterFromGray(img *image.Gray) Raster {
	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy(), 1)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r.Planes[0].Set(x, y, float64(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y))
		}
	}
	return r
}

// RasterFromNRGBA builds a four plane raster of the non-premultiplied
// 8-bit samples of the image.
func RasterFromNRGBA(img *image.NRGBA) Raster {
	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy(), 4)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			r.Planes[0].Set(x, y, float64(c.R))
			r.Planes[1].Set(x, y, float64(c.G))
			r.Planes[2].Set(x, y, float64(c.B))
			r.Planes[3].Set(x, y, float64(c.A))
		}
	}
	return r
}

func (r Raster) Channels() int { return len(r.Planes) }

func (r Raster) Dx() int {
	if len(r.Planes) == 0 {
		return 0
	}
	return r.Planes[0].Dx()
}

func (r Raster) Dy() int {
	if len(r.Planes) == 0 {
		return 0
	}
	return r.Planes[0].Dy()
}

func (r Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.Dx(), r.Dy()) }

func (r Raster) String() string {
	return fmt.Sprintf("raster[%dx%dx%d, max %.3f]", r.Dx(), r.Dy(), r.Channels(), r.Max())
}

// SameShape is true if both rasters have the same size and channel count.
func (r Raster) SameShape(o Raster) bool {
	return r.Dx() == o.Dx() && r.Dy() == o.Dy() && r.Channels() == o.Channels()
}

func (r Raster) Copy() Raster {
	r2 := Raster{Planes: make([]FloatGrid, len(r.Planes))}
	for c := range r.Planes {
		r2.Planes[c] = r.Planes[c].Copy()
	}
	return r2
}

// Max is the global maximum, across every plane.
func (r Raster) Max() float64 {
	max := math.Inf(-1)
	for c := range r.Planes {
		if m := r.Planes[c].Max(); m > max {
			max = m
		}
	}
	if math.IsInf(max, -1) {
		return 0
	}
	return max
}

func (r Raster) Apply(fn func(float64) float64) {
	for c := range r.Planes {
		r.Planes[c].Apply(fn)
	}
}

// Quantize truncates every sample toward zero and clamps it into
// [0,255], the way a float array is cast down to uint8.
func (r Raster) Quantize() {
	r.Apply(func(v float64) float64 { return Clamp(math.Trunc(v), 0, 255) })
}

// ToNRGBA renders the raster as an 8-bit image. One plane rasters are
// rendered as gray. The fourth plane is used as alpha, unless opaque is
// set or there is no fourth plane, in which case alpha is 0xFF.
func (r Raster) ToNRGBA(opaque bool) *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())

	sample := func(c, x, y int) uint8 {
		if len(r.Planes) < 3 {
			c = 0
		}
		return uint8(Clamp(r.Planes[c].Get(x, y), 0, 255))
	}

	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			col := color.NRGBA{sample(0, x, y), sample(1, x, y), sample(2, x, y), 0xFF}
			if !opaque && len(r.Planes) >= 4 {
				col.A = uint8(Clamp(r.Planes[3].Get(x, y), 0, 255))
			}
			img.SetNRGBA(x, y, col)
		}
	}

	return img
}
