package prism

import (
	"fmt"
	"math"

	"github.com/abworrall/rainbow-hdr/pkg/emath"
)

// CombineHDR fuses the tinted rasters, sample by sample:
//
//	log2( (1/n) * sum_i( 2^(L * x_i) ) )
//
// where each x_i is a sample scaled to [0,1]. It is a soft maximum:
// the bigger L gets, the more the brightest layer at each sample wins
// out. The result is left in that log2 space, in [0,L].
//
// The sum is taken relative to m = max_i(L * x_i), as
// m + log2(mean(2^(L*x_i - m))), so 2^x never overflows for large L.
func CombineHDR(tinted []emath.Raster, L float64) (emath.Raster, error) {
	if len(tinted) == 0 {
		return emath.Raster{}, fmt.Errorf("combine: %w", ErrNoInputs)
	} else if math.IsNaN(L) || math.IsInf(L, 0) {
		return emath.Raster{}, fmt.Errorf("combine: L=%v: %w", L, ErrDegenerate)
	}

	first := tinted[0]
	for i, img := range tinted {
		if !img.SameShape(first) {
			return emath.Raster{}, fmt.Errorf("combine: image %d is %dx%dx%d, image 0 is %dx%dx%d: %w",
				i, img.Dx(), img.Dy(), img.Channels(), first.Dx(), first.Dy(), first.Channels(), ErrSizeMismatch)
		}
	}

	// peak holds m, the largest L*x_i at each sample
	peak := emath.NewRaster(first.Dx(), first.Dy(), first.Channels())
	for c := range peak.Planes {
		pk := peak.Planes[c].Values()
		for j := range pk {
			pk[j] = math.Inf(-1)
		}
		for _, img := range tinted {
			for j, v := range img.Planes[c].Values() {
				pk[j] = math.Max(pk[j], L*(v/255.0))
			}
		}
	}

	sum := emath.NewRaster(first.Dx(), first.Dy(), first.Channels())
	for _, img := range tinted {
		for c := range img.Planes {
			in, pk, acc := img.Planes[c].Values(), peak.Planes[c].Values(), sum.Planes[c].Values()
			for j := range acc {
				acc[j] += math.Exp2(L*(in[j]/255.0) - pk[j])
			}
		}
	}

	n := float64(len(tinted))
	for c := range sum.Planes {
		pk, acc := peak.Planes[c].Values(), sum.Planes[c].Values()
		for j := range acc {
			acc[j] = pk[j] + math.Log2((1/n)*acc[j])
		}
	}

	return sum, nil
}

// Combine is CombineHDR, normalized so the brightest sample is 255 and
// truncated to 8-bit values. It has the same shape as the inputs.
func Combine(tinted []emath.Raster, L float64) (emath.Raster, error) {
	out, err := CombineHDR(tinted, L)
	if err != nil {
		return out, err
	}

	if err := normalize8(out); err != nil {
		return out, fmt.Errorf("combine at L=%v: %w", L, err)
	}
	return out, nil
}

// normalize8 scales the raster (in place) so its brightest sample is
// 255, then truncates to 8-bit values. A max that is zero, negative,
// NaN or infinite can't be normalized against.
func normalize8(r emath.Raster) error {
	max := r.Max()
	if !(max > 0) || math.IsInf(max, 0) {
		return fmt.Errorf("max is %v: %w", max, ErrDegenerate)
	}

	r.Apply(func(v float64) float64 { return v / max * 255.0 })
	r.Quantize()
	return nil
}
