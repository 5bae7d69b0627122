package prism

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveImage(t *testing.T, img image.Image, filename string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0o755))
	require.NoError(t, imaging.Save(img, filename))
}

func TestFindInputsSortedAndCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.png", "a.png", "b.PNG", "b.png", "notes.txt"} {
		saveImage(t, grayImage(2, 2, solid(1)), filepath.Join(dir, name))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.png"), 0o755))

	files, err := FindInputs(dir, ".png")
	require.NoError(t, err)

	names := []string{}
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, names)
}

func TestLoadGrayscaleConvertsColor(t *testing.T) {
	cfg := NewConfig()
	cfg.SourceDir = t.TempDir()
	cfg.Extension = ".png"

	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	saveImage(t, img, filepath.Join(cfg.SourceDir, "red.png"))

	layers, err := LoadGrayscale(cfg)
	require.NoError(t, err)
	require.Len(t, layers, 1)

	assert.Equal(t, image.Pt(3, 2), layers[0].Gray.Bounds().Size())
	// 0.299 * 255 of pure red, give or take rounding
	assert.InDelta(t, 76, int(layers[0].Gray.GrayAt(1, 1).Y), 1)
	assert.Equal(t, "red.png", layers[0].Filename())
}

func TestLoadGrayscaleResizes(t *testing.T) {
	cfg := NewConfig()
	cfg.SourceDir = t.TempDir()
	cfg.Extension = ".png"
	cfg.Width = 4

	saveImage(t, grayImage(8, 6, solid(90)), filepath.Join(cfg.SourceDir, "a.png"))

	layers, err := LoadGrayscale(cfg)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 3), layers[0].Gray.Bounds().Size())
}

func TestLoadGrayscaleNoInputs(t *testing.T) {
	cfg := NewConfig()
	cfg.SourceDir = t.TempDir()

	_, err := LoadGrayscale(cfg)
	assert.ErrorIs(t, err, ErrNoInputs)
}

func TestLoadGrayscaleSizeMismatch(t *testing.T) {
	cfg := NewConfig()
	cfg.SourceDir = t.TempDir()
	cfg.Extension = ".png"

	saveImage(t, grayImage(4, 4, solid(10)), filepath.Join(cfg.SourceDir, "a.png"))
	saveImage(t, grayImage(4, 5, solid(10)), filepath.Join(cfg.SourceDir, "b.png"))

	_, err := LoadGrayscale(cfg)
	require.ErrorIs(t, err, ErrSizeMismatch)
	assert.Contains(t, err.Error(), "b.png")
	assert.Contains(t, err.Error(), "a.png")
}

func TestLoadGrayscaleBadFile(t *testing.T) {
	cfg := NewConfig()
	cfg.SourceDir = t.TempDir()
	cfg.Extension = ".png"

	require.NoError(t, os.WriteFile(filepath.Join(cfg.SourceDir, "junk.png"), []byte("not a png"), 0o644))

	_, err := LoadGrayscale(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "junk.png")
}
