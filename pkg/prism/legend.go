package prism

import (
	"fmt"

	"github.com/fogleman/gg"
)

const legendSwatch = 64

// WriteLegend draws a strip of color swatches, one per layer in layer
// order, each labelled with its wavelength, and saves it as a PNG.
func WriteLegend(layers []Layer, filename string) error {
	if len(layers) == 0 {
		return fmt.Errorf("legend: %w", ErrNoInputs)
	}

	dc := gg.NewContext(legendSwatch*len(layers), legendSwatch+20)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	for i, l := range layers {
		x := float64(i * legendSwatch)

		dc.SetRGB(l.Color.R, l.Color.G, l.Color.B)
		dc.DrawRectangle(x, 0, legendSwatch, legendSwatch)
		dc.Fill()

		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(fmt.Sprintf("%.0fnm", l.Wavelength), x+legendSwatch/2, legendSwatch+10, 0.5, 0.5)
	}

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("legend save '%s': %w", filename, err)
	}
	return nil
}
