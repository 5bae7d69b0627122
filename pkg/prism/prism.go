// Package prism turns a directory of grayscale photos into a rainbow:
// each photo is tinted with its own wavelength of visible light, and
// the tinted layers are fused into a single image.
package prism

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/abworrall/rainbow-hdr/pkg/emath"
)

var (
	ErrNoInputs     = errors.New("no input images found")
	ErrSizeMismatch = errors.New("input images differ in size")
	ErrDegenerate   = errors.New("image has no brightness to normalize against")
)

// Prism holds the layers, in filename order, and walks them through
// load -> tint -> combine -> balance -> save.
type Prism struct {
	Layers []Layer
	Config

	Log *zap.SugaredLogger
}

func New(cfg Config) *Prism {
	return &Prism{
		Layers: []Layer{},
		Config: cfg,
		Log:    zap.NewNop().Sugar(),
	}
}

func (p Prism) String() string {
	str := "Prism [\n"
	for _, l := range p.Layers {
		str += fmt.Sprintf("  %s\n", l)
	}
	return str + "]\n"
}

// Run does the whole thing, and returns the names of the fused images
// it wrote. Any failure stops the run.
func (p *Prism) Run() ([]string, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	if err := p.Load(); err != nil {
		return nil, err
	}
	if err := p.Tint(); err != nil {
		return nil, err
	}
	if err := p.WriteTinted(); err != nil {
		return nil, err
	}

	if p.LegendFilename != "" {
		if err := WriteLegend(p.Layers, p.LegendFilename); err != nil {
			return nil, err
		}
		p.Log.Infof("Legend written '%s'", p.LegendFilename)
	}

	written := []string{}
	for _, L := range p.DynamicRanges() {
		filename, err := p.FuseAndWrite(L)
		if err != nil {
			return written, err
		}
		written = append(written, filename)
	}

	return written, nil
}

// Load reads the input photos as grayscale layers.
func (p *Prism) Load() error {
	p.Log.Infof("Reading images of form: %s", filepath.Join(p.SourceDir, "*"+p.Extension))

	layers, err := LoadGrayscale(p.Config)
	if err != nil {
		return err
	}
	p.Layers = layers

	p.Log.Infof("Finished reading %d images", len(p.Layers))
	return nil
}

// Tint pairs the i'th layer (in filename order) with the i'th
// wavelength, and tints it.
func (p *Prism) Tint() error {
	mapper, err := p.GetSpectrum()
	if err != nil {
		return err
	}

	wavelengths, err := AssignWavelengths(len(p.Layers))
	if err != nil {
		return err
	}

	for i := range p.Layers {
		l := &p.Layers[i]
		l.Wavelength = wavelengths[i]
		l.Color = mapper(l.Wavelength)

		if l.Tinted, err = Tint(l.Gray, l.Color); err != nil {
			return fmt.Errorf("layer %s: %w", l.Filename(), err)
		}
	}

	p.Log.Debugf("Layers tinted: %s", p)
	return nil
}

// WriteTinted saves each tinted layer as <TintedDir>/<i>_tinted.bmp,
// creating TintedDir if needed.
func (p *Prism) WriteTinted() error {
	if err := os.MkdirAll(p.TintedDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", p.TintedDir, err)
	}

	for i, l := range p.Layers {
		if err := WriteBMP(l.Tinted.ToNRGBA(false), p.TintedFilename(i)); err != nil {
			return err
		}
	}

	p.Log.Infof("Wrote %d tinted images into %s", len(p.Layers), p.TintedDir)
	return nil
}

// Fuse combines the tinted layers at the given L, and color balances
// the result. The unnormalized fusion is returned too.
func (p *Prism) Fuse(L float64) (*image.NRGBA, FusedImage, error) {
	balancer, err := p.GetBalancer()
	if err != nil {
		return nil, FusedImage{}, err
	}

	tinted := make([]emath.Raster, len(p.Layers))
	for i, l := range p.Layers {
		tinted[i] = l.Tinted
	}

	hdrRaster, err := CombineHDR(tinted, L)
	if err != nil {
		return nil, FusedImage{}, err
	}
	fused := FusedImage{Raster: hdrRaster, L: L}

	combined := hdrRaster.Copy()
	if err := normalize8(combined); err != nil {
		return nil, fused, fmt.Errorf("combine at L=%v: %w", L, err)
	}

	return balancer(combined.ToNRGBA(true)), fused, nil
}

// FuseAndWrite fuses at L and writes the output file (and any extras
// the config asks for). It returns the name of the output file.
func (p *Prism) FuseAndWrite(L float64) (string, error) {
	final, fused, err := p.Fuse(L)
	if err != nil {
		return "", err
	}

	filename := p.OutputFilename(L)
	if err := WriteBMP(final, filename); err != nil {
		return "", err
	}
	p.Log.Infof("Fused L=%v, output written '%s'", L, filename)

	if p.WriteHDR {
		hdrFilename := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".hdr"
		if err := fused.WriteToHDR(hdrFilename); err != nil {
			return "", err
		}
		p.Log.Infof("HDR output written '%s'", hdrFilename)
	}

	if p.DumpGrids {
		base := strings.TrimSuffix(filename, filepath.Ext(filename))
		for c, name := range []string{"r", "g", "b"} {
			gridFilename := fmt.Sprintf("%s-grid-%s.png", base, name)
			title := fmt.Sprintf("L=%v %s: %s", L, name, fused.Planes[c].Stats())
			if err := fused.Planes[c].ToImg(title, gridFilename); err != nil {
				return "", fmt.Errorf("dump grid '%s': %w", gridFilename, err)
			}
		}
	}

	return filename, nil
}
