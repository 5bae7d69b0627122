package prism

import (
	"fmt"

	"github.com/abworrall/rainbow-hdr/pkg/spectrum"
)

// AssignWavelengths splits the visible spectrum into n equal steps, and
// returns the top of each step: 380 + ((780-380)/n) * k, for k = 1..n.
// The first wavelength is one step above violet, and the last is
// exactly 780nm.
func AssignWavelengths(n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("assign wavelengths to %d images: %w", n, ErrNoInputs)
	}

	min, max := spectrum.MinWavelength, spectrum.MaxWavelength

	ret := make([]float64, n)
	for k := 1; k <= n; k++ {
		ret[k-1] = min + ((max-min)/float64(n))*float64(k)
	}
	return ret, nil
}
