// Package balance has the color balancers that run over the fused
// image before it is written out. They all treat the input as RGB;
// alpha is dropped and the output is always opaque.
package balance

import (
	"fmt"
	"image"
	"math"

	"github.com/codahale/hdrhistogram"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/rainbow-hdr/pkg/emath"
)

// A Func takes an image and returns a color corrected copy of it.
type Func func(img *image.NRGBA) *image.NRGBA

var (
	Balancers = []string{"stretch", "grayworld", "percentile", "none"}
)

func ListBalancers() string {
	return fmt.Sprintf("%v", Balancers)
}

func ByName(name string) (Func, error) {
	switch name {
	case "stretch", "":
		return Stretch, nil
	case "grayworld":
		return GrayWorld, nil
	case "percentile":
		return Percentile(1, 99), nil
	case "none":
		return None, nil
	default:
		return nil, fmt.Errorf("no balancer named '%s', wanted one of %s", name, ListBalancers())
	}
}

// rgbPlanes returns the R, G and B planes of the image as floats in [0,255].
func rgbPlanes(img *image.NRGBA) emath.Raster {
	r := emath.RasterFromNRGBA(img)
	r.Planes = r.Planes[:3]
	return r
}

// Stretch shifts each channel down so its darkest sample is zero, then
// scales it so its brightest sample lands at the top of the range
// (max-white). A channel that is entirely black is left black.
func Stretch(img *image.NRGBA) *image.NRGBA {
	r := rgbPlanes(img)

	for c := range r.Planes {
		p := &r.Planes[c]

		min := p.Min()
		p.Apply(func(v float64) float64 { return math.Max(v-min, 0) })

		max := p.Max()
		if max == 0 {
			continue
		}
		p.Apply(func(v float64) float64 { return math.Trunc(math.Min(v*256.0/max, 255)) })
	}

	return r.ToNRGBA(true)
}

// GrayWorld assumes the scene averages out to gray, and scales the red
// and blue channels so their means match the green channel's.
func GrayWorld(img *image.NRGBA) *image.NRGBA {
	r := rgbPlanes(img)
	muG := stat.Mean(r.Planes[1].Values(), nil)

	for _, c := range []int{0, 2} {
		p := &r.Planes[c]
		mu := stat.Mean(p.Values(), nil)
		if mu == 0 {
			continue
		}
		p.Scale(muG / mu)
		p.Apply(func(v float64) float64 { return math.Trunc(math.Min(v, 255)) })
	}

	return r.ToNRGBA(true)
}

// Percentile returns a balancer that clips each channel at the given
// low and high percentiles (0-100), and stretches what is left over
// the full range. It shrugs off a few hot or dead pixels that would
// otherwise pin Stretch in place.
func Percentile(low, high float64) Func {
	return func(img *image.NRGBA) *image.NRGBA {
		r := rgbPlanes(img)

		for c := range r.Planes {
			p := &r.Planes[c]
			lo, hi := channelPercentiles(p.Values(), low, high)
			if hi <= lo {
				continue
			}
			p.Apply(func(v float64) float64 {
				return math.Trunc(emath.Clamp((v-lo)*255.0/(hi-lo), 0, 255))
			})
		}

		return r.ToNRGBA(true)
	}
}

// The histogram can't track zero, so samples are recorded shifted up by one.
func channelPercentiles(vals []float64, low, high float64) (float64, float64) {
	h := hdrhistogram.New(1, 256, 3)
	for _, v := range vals {
		h.RecordValue(int64(emath.Clamp(v, 0, 255)) + 1)
	}
	if h.TotalCount() == 0 {
		return 0, 0
	}
	return float64(h.ValueAtQuantile(low) - 1), float64(h.ValueAtQuantile(high) - 1)
}

func None(img *image.NRGBA) *image.NRGBA {
	return rgbPlanes(img).ToNRGBA(true)
}
