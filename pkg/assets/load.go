// Package assets loads photos and sticker bitmaps from disk, and writes
// rendered results back out.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"

	"github.com/abworrall/photostack/pkg/filter"
	"github.com/abworrall/photostack/pkg/geom"
)

var ErrUnsupported = errors.New("unsupported image format")

type decoder func(io.Reader) (image.Image, error)

func decoderFor(filename string) (decoder, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return png.Decode, nil
	case ".jpg", ".jpeg":
		return jpeg.Decode, nil
	case ".tif", ".tiff":
		return tiff.Decode, nil
	}
	return nil, fmt.Errorf("'%s': %w", filename, ErrUnsupported)
}

// LoadImage decodes the file, and reads the orientation its EXIF says the
// pixels are stored in. Files without EXIF are taken to be upright.
func LoadImage(filename string) (image.Image, geom.Orientation, error) {
	decode, err := decoderFor(filename)
	if err != nil {
		return nil, geom.Up, err
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, geom.Up, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, geom.Up, fmt.Errorf("decode '%s': %v", filename, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, geom.Up, fmt.Errorf("seek '%s': %v", filename, err)
	}
	o, err := readOrientation(f)
	if err != nil {
		return nil, geom.Up, fmt.Errorf("exif orientation '%s': %v", filename, err)
	}

	return img, o, nil
}

func readOrientation(r io.Reader) (geom.Orientation, error) {
	ex, err := exif.Decode(r)
	if err != nil {
		return geom.Up, nil // no EXIF at all
	}

	tag, err := ex.Get(exif.Orientation)
	if err != nil {
		return geom.Up, nil
	}
	val, err := tag.Int64(0)
	if err != nil {
		return geom.Up, err
	}
	return orientationForTag(val), nil
}

// orientationForTag reads tags outside 1..8 (0 turns up in the wild) as
// upright, same as a missing tag.
func orientationForTag(val int64) geom.Orientation {
	o, err := geom.OrientationFromEXIF(int(val))
	if err != nil {
		return geom.Up
	}
	return o
}

// LoadSticker loads a sticker bitmap; its name is the file's base name.
func LoadSticker(filename string) (*filter.Sticker, error) {
	img, o, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return &filter.Sticker{Name: name, Image: img, Orientation: o}, nil
}

// LoadStickers loads each file named, recursing into directories. Files in
// a directory that aren't images are skipped.
func LoadStickers(args ...string) ([]*filter.Sticker, error) {
	stickers := []*filter.Sticker{}
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {
		case err != nil:
			return nil, fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			contents, err := os.ReadDir(arg)
			if err != nil {
				return nil, fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				path := filepath.Join(arg, content.Name())
				if _, err := decoderFor(path); err != nil && !content.IsDir() {
					continue
				}
				more, err := LoadStickers(path)
				if err != nil {
					return nil, fmt.Errorf("load %s: %w", arg, err)
				}
				stickers = append(stickers, more...)
			}

		default:
			s, err := LoadSticker(arg)
			if err != nil {
				return nil, err
			}
			stickers = append(stickers, s)
		}
	}
	return stickers, nil
}
