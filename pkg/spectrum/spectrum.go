// Package spectrum maps visible light wavelengths onto approximate RGB
// colors.
package spectrum

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/rainbow-hdr/pkg/emath"
)

const (
	MinWavelength = 380.0 // nm, violet end of human vision
	MaxWavelength = 780.0 // nm, red end of human vision
)

// A Mapper turns a wavelength (nm) into a color whose channels are all
// in [0,1]. Wavelengths outside the visible range map to black.
type Mapper func(nm float64) colorful.Color

var (
	Mappers = []string{"bruton", "hue"}

	// BrutonGamma is applied to each channel after intensity falloff.
	BrutonGamma = 0.8

	// HueViolet is the HSV hue (degrees) that Hue assigns to MinWavelength.
	HueViolet = 270.0
)

func ListMappers() string {
	return fmt.Sprintf("%v", Mappers)
}

func ByName(name string) (Mapper, error) {
	switch name {
	case "bruton", "":
		return Bruton, nil
	case "hue":
		return Hue, nil
	default:
		return nil, fmt.Errorf("no spectrum mapper named '%s', wanted one of %s", name, ListMappers())
	}
}

// Bruton is Dan Bruton's piecewise linear approximation. Each band
// ramps one channel up or down; the intensity falls off towards
// both limits of vision, but never all the way to black inside
// [380,780].
func Bruton(nm float64) colorful.Color {
	var rgb emath.Vec3

	switch {
	case nm >= 380 && nm < 440:
		rgb = emath.Vec3{-(nm - 440) / (440 - 380), 0, 1}
	case nm >= 440 && nm < 490:
		rgb = emath.Vec3{0, (nm - 440) / (490 - 440), 1}
	case nm >= 490 && nm < 510:
		rgb = emath.Vec3{0, 1, -(nm - 510) / (510 - 490)}
	case nm >= 510 && nm < 580:
		rgb = emath.Vec3{(nm - 510) / (580 - 510), 1, 0}
	case nm >= 580 && nm < 645:
		rgb = emath.Vec3{1, -(nm - 645) / (645 - 580), 0}
	case nm >= 645 && nm <= 780:
		rgb = emath.Vec3{1, 0, 0}
	default:
		return colorful.Color{}
	}

	falloff := 1.0
	switch {
	case nm < 420:
		falloff = 0.3 + 0.7*(nm-380)/(420-380)
	case nm > 700:
		falloff = 0.3 + 0.7*(780-nm)/(780-700)
	}

	rgb = rgb.Scale(falloff).Pow(BrutonGamma)
	rgb.FloorAt(0.0)
	rgb.CeilingAt(1.0)

	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}
}

// Hue walks the HSV color wheel from violet (270 degrees) at 380nm
// round to pure red (0 degrees) at 780nm, at full saturation and value.
// It ignores the eye's sensitivity, so every band is equally bright.
func Hue(nm float64) colorful.Color {
	if nm < MinWavelength || nm > MaxWavelength {
		return colorful.Color{}
	}

	frac := (nm - MinWavelength) / (MaxWavelength - MinWavelength)
	return colorful.Hsv(HueViolet*(1.0-frac), 1.0, 1.0).Clamped()
}
