package prism

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicRanges(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, []float64{1}, c.DynamicRanges())
	assert.Equal(t, "output.bmp", c.OutputFilename(1))

	c.Dynamic = []float64{3}
	assert.Equal(t, []float64{3}, c.DynamicRanges())
	assert.Equal(t, "output.bmp", c.OutputFilename(3))

	c.Dynamic = []float64{1, 2, 4}
	assert.Equal(t, []float64{1, 2, 4}, c.DynamicRanges())
	assert.Equal(t, "output_1.bmp", c.OutputFilename(1))
	assert.Equal(t, "output_4.bmp", c.OutputFilename(4))
	assert.Equal(t, "output_2.5.bmp", c.OutputFilename(2.5))

	c.OutputDir = "out"
	assert.Equal(t, filepath.Join("out", "output_2.bmp"), c.OutputFilename(2))
}

func TestTintedFilename(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, filepath.Join("tinted", "0_tinted.bmp"), c.TintedFilename(0))
	assert.Equal(t, filepath.Join("tinted", "12_tinted.bmp"), c.TintedFilename(12))
}

func TestValidate(t *testing.T) {
	require.NoError(t, NewConfig().Validate())

	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"zero L", func(c *Config) { c.Dynamic = []float64{1, 0} }},
		{"negative L", func(c *Config) { c.Dynamic = []float64{-2} }},
		{"infinite L", func(c *Config) { c.Dynamic = []float64{math.Inf(1)} }},
		{"NaN L", func(c *Config) { c.Dynamic = []float64{math.NaN()} }},
		{"no extension", func(c *Config) { c.Extension = "" }},
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"bad spectrum", func(c *Config) { c.Spectrum = "xray" }},
		{"bad balancer", func(c *Config) { c.Balancer = "magic" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfig()
			tt.edit(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "rainbow.yaml")
	yaml := `
sourcedir: photos
extension: .tif
dynamic: [1, 2, 4]
balancer: grayworld
writehdr: true
`
	require.NoError(t, os.WriteFile(filename, []byte(yaml), 0o644))

	c, err := LoadConfig(filename)
	require.NoError(t, err)

	assert.Equal(t, "photos", c.SourceDir)
	assert.Equal(t, ".tif", c.Extension)
	assert.Equal(t, []float64{1, 2, 4}, c.Dynamic)
	assert.Equal(t, "grayworld", c.Balancer)
	assert.True(t, c.WriteHDR)

	// Unset fields keep their defaults
	assert.Equal(t, "tinted", c.TintedDir)
	assert.Equal(t, "bruton", c.Spectrum)

	again, err := newConfigFromYaml([]byte(c.AsYaml()))
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
