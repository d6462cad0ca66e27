package assets

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// WritePNG writes img out, and returns the size of the file.
func WritePNG(img image.Image, filename string) (int64, error) {
	writer, err := os.Create(filename)
	if err != nil {
		return 0, fmt.Errorf("open+w '%s': %v", filename, err)
	}
	defer writer.Close()

	if err := png.Encode(writer, img); err != nil {
		return 0, fmt.Errorf("encode '%s': %v", filename, err)
	}
	info, err := writer.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat '%s': %v", filename, err)
	}
	return info.Size(), nil
}
