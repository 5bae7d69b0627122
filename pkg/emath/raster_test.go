package emath

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterFromGray(t *testing.T) {
	img := image.NewGray(image.Rect(10, 20, 13, 22))
	img.SetGray(10, 20, color.Gray{Y: 7})
	img.SetGray(12, 21, color.Gray{Y: 250})

	r := RasterFromGray(img)
	require.Equal(t, 1, r.Channels())
	assert.Equal(t, 3, r.Dx())
	assert.Equal(t, 2, r.Dy())
	assert.Equal(t, 7.0, r.Planes[0].Get(0, 0))
	assert.Equal(t, 250.0, r.Planes[0].Get(2, 1))
	assert.Equal(t, 250.0, r.Max())
}

func TestRasterEmpty(t *testing.T) {
	var r Raster
	assert.Zero(t, r.Dx())
	assert.Zero(t, r.Dy())
	assert.Zero(t, r.Max())
	assert.True(t, r.SameShape(Raster{}))
	assert.False(t, r.SameShape(NewRaster(1, 1, 1)))
}

func TestRasterQuantize(t *testing.T) {
	r := NewRaster(4, 1, 1)
	for x, v := range []float64{-3, 12.99, 254.999, 300} {
		r.Planes[0].Set(x, 0, v)
	}
	r.Quantize()
	assert.Equal(t, []float64{0, 12, 254, 255}, r.Planes[0].Values())
}

func TestRasterCopyIsDeep(t *testing.T) {
	r := NewRaster(2, 2, 3)
	r2 := r.Copy()
	r2.Planes[1].Set(1, 1, 9)

	assert.Zero(t, r.Planes[1].Get(1, 1))
	assert.True(t, r.SameShape(r2))
}

func TestRasterToNRGBA(t *testing.T) {
	r := NewRaster(1, 1, 4)
	for c, v := range []float64{10, 20, 30, 0} {
		r.Planes[c].Set(0, 0, v)
	}

	assert.Equal(t, color.NRGBA{10, 20, 30, 0}, r.ToNRGBA(false).NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{10, 20, 30, 0xFF}, r.ToNRGBA(true).NRGBAAt(0, 0))

	gray := NewRaster(1, 1, 1)
	gray.Planes[0].Set(0, 0, 99)
	assert.Equal(t, color.NRGBA{99, 99, 99, 0xFF}, gray.ToNRGBA(false).NRGBAAt(0, 0))
}

func TestRasterNRGBARoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}

	assert.Equal(t, img, RasterFromNRGBA(img).ToNRGBA(false))
}

func TestFloatGrid(t *testing.T) {
	fg := NewFloatGrid(3, 2)
	assert.Equal(t, 3, fg.Dx())
	assert.Equal(t, 2, fg.Dy())
	assert.Zero(t, fg.Max())

	fg.Set(2, 1, 4)
	fg.Set(0, 1, -2)
	assert.Equal(t, 4.0, fg.Get(2, 1))
	assert.Equal(t, 4.0, fg.Max())
	assert.Equal(t, -2.0, fg.Min())

	fg.Scale(0.5)
	assert.Equal(t, 2.0, fg.Max())

	fg.Apply(math.Abs)
	assert.Equal(t, 0.0, fg.Min())
	assert.Equal(t, 1.0, fg.Get(0, 1))

	var empty FloatGrid
	assert.Zero(t, empty.Dy())
	assert.Zero(t, empty.Max())
	assert.Zero(t, empty.Min())
}

func TestVec3(t *testing.T) {
	v := Vec3{0.25, 0, 2}.Pow(0.5)
	assert.InDelta(t, 0.5, v[0], 1e-12)
	assert.Zero(t, v[1])

	v.CeilingAt(1)
	v.FloorAt(0.1)
	assert.Equal(t, Vec3{0.5, 0.1, 1}, v)

	assert.Equal(t, 3.0, Clamp(9, 0, 3))
	assert.Equal(t, 0.0, Clamp(-1, 0, 3))
}
