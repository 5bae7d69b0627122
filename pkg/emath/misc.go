package emath

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Some functions that only operate on basic types, that are useful

// Use a local type so we can hang methods off it
type Vec3 f64.Vec3

func (v Vec3) String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f]", v[0], v[1], v[2])
}

func (v Vec3) Scale(f float64) Vec3 { return Vec3{v[0] * f, v[1] * f, v[2] * f} }

// Pow raises each channel to the power gamma. Zero channels stay zero.
func (v Vec3) Pow(gamma float64) Vec3 {
	f := func(c float64) float64 {
		if c <= 0 {
			return 0
		}
		return math.Pow(c, gamma)
	}
	return Vec3{f(v[0]), f(v[1]), f(v[2])}
}

func (v *Vec3) FloorAt(min float64) {
	if v[0] < min {
		v[0] = min
	}
	if v[1] < min {
		v[1] = min
	}
	if v[2] < min {
		v[2] = min
	}
}

func (v *Vec3) CeilingAt(max float64) {
	if v[0] > max {
		v[0] = max
	}
	if v[1] > max {
		v[1] = max
	}
	if v[2] > max {
		v[2] = max
	}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}
