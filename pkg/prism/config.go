package prism

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/rainbow-hdr/pkg/balance"
	"github.com/abworrall/rainbow-hdr/pkg/spectrum"
)

/* Example config file ...

sourcedir: src
extension: .JPG
tinteddir: tinted
outputdir: .
dynamic: [1, 2, 4]
spectrum: bruton
balancer: stretch
width: 1200

*/

type Config struct {
	Verbosity int

	SourceDir string // Where the input photos live
	Extension string // Only files ending in this (case-sensitive) are loaded
	TintedDir string // Where the per-layer tinted images are written
	OutputDir string // Where the fused images are written

	Dynamic  []float64 // Dynamic range multipliers (L); one output per value
	Spectrum string    // How to map wavelengths to colors: see spectrum.Mappers
	Balancer string    // How to color balance the fused image: see balance.Balancers

	Width      int  // Resize inputs to this width before processing; 0 == native
	AutoOrient bool // Apply the EXIF orientation tag when loading

	WriteHDR       bool   // Also write the unnormalized fusion as a Radiance .hdr file
	LegendFilename string // If set, write a PNG showing each layer's wavelength & color
	DumpGrids      bool   // Write a grayscale PNG of each fused plane, for debugging
}

func NewConfig() Config {
	return Config{
		SourceDir: "src",
		Extension: ".JPG",
		TintedDir: "tinted",
		OutputDir: ".",
		Dynamic:   []float64{},
		Spectrum:  "bruton",
		Balancer:  "stretch",
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %w", filename, err)
	}

	c, err := newConfigFromYaml(contents)
	if err != nil {
		return c, fmt.Errorf("config parse %s: %w", filename, err)
	}
	return c, nil
}

func (c Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("# can't marshal config: %v\n", err)
	}
	return string(b)
}

// Validate does sanity checks; it should be called once all the
// overrides have been applied.
func (c Config) Validate() error {
	if c.Extension == "" {
		return fmt.Errorf("config: empty extension")
	}
	if c.Width < 0 {
		return fmt.Errorf("config: width %d is negative", c.Width)
	}
	for _, L := range c.Dynamic {
		if !(L > 0) || math.IsInf(L, 0) {
			return fmt.Errorf("config: dynamic range multiplier %v must be finite and > 0", L)
		}
	}
	if _, err := c.GetSpectrum(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.GetBalancer(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) GetSpectrum() (spectrum.Mapper, error) { return spectrum.ByName(c.Spectrum) }
func (c Config) GetBalancer() (balance.Func, error)    { return balance.ByName(c.Balancer) }

// DynamicRanges is the list of L values to fuse with. No values at all
// means a single fusion at L=1.
func (c Config) DynamicRanges() []float64 {
	if len(c.Dynamic) == 0 {
		return []float64{1}
	}
	return c.Dynamic
}

// OutputFilename is output.bmp, unless we're sweeping over more than
// one L, in which case each gets its own output_<L>.bmp.
func (c Config) OutputFilename(L float64) string {
	name := "output.bmp"
	if len(c.Dynamic) > 1 {
		name = fmt.Sprintf("output_%s.bmp", strconv.FormatFloat(L, 'f', -1, 64))
	}
	return filepath.Join(c.OutputDir, name)
}

// TintedFilename is where the i'th layer's tinted image goes.
func (c Config) TintedFilename(i int) string {
	return filepath.Join(c.TintedDir, fmt.Sprintf("%d_tinted.bmp", i))
}
