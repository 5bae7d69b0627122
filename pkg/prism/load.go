package prism

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
)

// FindInputs lists the files in dir whose names end with ext, sorted
// by filename. The order matters: it decides which wavelength each
// photo gets.
func FindInputs(dir, ext string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return nil, fmt.Errorf("glob %s/*%s: %w", dir, ext, err)
	}

	files := []string{}
	for _, m := range matches {
		if info, err := os.Stat(m); err != nil {
			return nil, fmt.Errorf("stat %s: %w", m, err)
		} else if !info.IsDir() {
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// LoadGrayscale loads every input file, in filename order, converting
// each to grayscale. All of them must be the same size.
func LoadGrayscale(cfg Config) ([]Layer, error) {
	files, err := FindInputs(cfg.SourceDir, cfg.Extension)
	if err != nil {
		return nil, err
	} else if len(files) == 0 {
		return nil, fmt.Errorf("no %s/*%s files: %w", cfg.SourceDir, cfg.Extension, ErrNoInputs)
	}

	layers := []Layer{}
	for _, filename := range files {
		gray, err := LoadGray(filename, cfg)
		if err != nil {
			return nil, err
		}

		l := Layer{
			LoadFilename: filename,
			Gray:         gray,
			Camera:       cameraSummary(filename),
		}

		if len(layers) > 0 {
			if want, got := layers[0].Gray.Bounds().Size(), gray.Bounds().Size(); want != got {
				return nil, fmt.Errorf("%s is %dx%d, but %s is %dx%d: %w", l.Filename(), got.X, got.Y,
					layers[0].Filename(), want.X, want.Y, ErrSizeMismatch)
			}
		}

		layers = append(layers, l)
	}

	return layers, nil
}

// LoadGray decodes a single image file (JPEG, PNG, TIFF, BMP or GIF),
// resizes it if the config asks for that, and converts it to 8-bit
// grayscale using the usual luma weights.
func LoadGray(filename string, cfg Config) (*image.Gray, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(cfg.AutoOrient))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}

	if cfg.Width > 0 && img.Bounds().Dx() != cfg.Width {
		img = imaging.Resize(img, cfg.Width, 0, imaging.Lanczos)
	}

	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)

	return gray, nil
}

// cameraSummary pulls a few EXIF fields out, for the logs. Plenty of
// inputs have no EXIF at all, so failures just give an empty string.
func cameraSummary(filename string) string {
	reader, err := os.Open(filename)
	if err != nil {
		return ""
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return ""
	}

	parts := []string{}
	if tag, err := ex.Get(exif.Model); err == nil {
		if s, err := tag.StringVal(); err == nil && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	if tag, err := ex.Get(exif.ExposureTime); err == nil {
		if num, denom, err := tag.Rat2(0); err == nil {
			parts = append(parts, fmt.Sprintf("%d/%ds", num, denom))
		}
	}
	if t, err := ex.DateTime(); err == nil {
		parts = append(parts, t.Format("2006-01-02 15:04:05"))
	}

	return strings.Join(parts, ", ")
}
