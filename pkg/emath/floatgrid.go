package emath

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/floats"
)

// A FloatGrid is a single plane of float samples, stored row by row.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid) Set(x, y int, v float64) { fg.values[fg.stride*y+x] = v }
func (fg *FloatGrid) Get(x, y int) float64    { return fg.values[fg.stride*y+x] }
func (fg *FloatGrid) Dx() int                 { return fg.stride }
func (fg *FloatGrid) Values() []float64       { return fg.values }

func (fg *FloatGrid) Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

func (fg *FloatGrid) Copy() FloatGrid {
	g2 := FloatGrid{stride: fg.stride, values: make([]float64, len(fg.values))}
	copy(g2.values, fg.values)
	return g2
}

// Max returns the largest value in the grid, or 0 for an empty grid.
func (fg *FloatGrid) Max() float64 {
	if len(fg.values) == 0 {
		return 0
	}
	return floats.Max(fg.values)
}

// Min returns the smallest value in the grid, or 0 for an empty grid.
func (fg *FloatGrid) Min() float64 {
	if len(fg.values) == 0 {
		return 0
	}
	return floats.Min(fg.values)
}

// Scale multiplies every value by f, in place.
func (fg *FloatGrid) Scale(f float64) { floats.Scale(f, fg.values) }

// Apply replaces every value v with fn(v), in place.
func (fg *FloatGrid) Apply(fn func(float64) float64) {
	for i, v := range fg.values {
		fg.values[i] = fn(v)
	}
}

func (fg *FloatGrid) Stats() string {
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), fg.Min(), fg.Max())
}

// ToImg saves a grayscale rendering of the grid, stretched over the
// range of values in the grid, with the title drawn in the corner.
func (fg *FloatGrid) ToImg(title, filename string) error {
	min, max := fg.Min(), fg.Max()
	span := max - min
	if span == 0 {
		span = 1
	}

	img := image.NewRGBA64(image.Rectangle{Max: image.Point{fg.Dx(), fg.Dy()}})
	for x := 0; x < fg.Dx(); x++ {
		for y := 0; y < fg.Dy(); y++ {
			gray := uint16(math.Round((fg.Get(x, y) - min) / span * 65535.0))
			img.Set(x, y, color.RGBA64{gray, gray, gray, 0xFFFF})
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 0, 1)
	dc.DrawString(title, 4, 14)
	return dc.SavePNG(filename)
}
