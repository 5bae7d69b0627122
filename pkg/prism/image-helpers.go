package prism

// A few helpers for reading and writing image files

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/bmp"
)

// WriteBMP creates (or truncates) filename, and writes img into it as a
// bitmap. The directory must already exist.
func WriteBMP(img image.Image, filename string) error {
	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %w", filename, err)
	}

	if err := bmp.Encode(writer, img); err != nil {
		writer.Close()
		return fmt.Errorf("bmp encode '%s': %w", filename, err)
	}
	return writer.Close()
}

func ReadBMP(filename string) (image.Image, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r '%s': %w", filename, err)
	}
	defer reader.Close()

	img, err := bmp.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("bmp decode '%s': %w", filename, err)
	}
	return img, nil
}
