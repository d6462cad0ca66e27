package filter

import (
	"fmt"
	"image"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/abworrall/photostack/pkg/geom"
)

// Default sticker width, as a fraction of the full image width.
const DefaultStickerSize = 0.25

// A Sticker is the bitmap behind a StickerFilter. Stickers are never
// mutated in place; a change of orientation makes a new Sticker that
// shares the pixels.
type Sticker struct {
	Name        string
	Image       image.Image
	Orientation geom.Orientation
}

func (s Sticker) String() string {
	if s.Image == nil {
		return fmt.Sprintf("Sticker[%s, no image, %s]", s.Name, s.Orientation)
	}
	return fmt.Sprintf("Sticker[%s, %s, %s]", s.Name, s.Image.Bounds(), s.Orientation)
}

// Oriented is the sticker as it should be displayed.
func (s Sticker) Oriented() image.Image {
	return s.Orientation.Apply(s.Image)
}

// StickerFilter draws a sticker over the photo.
type StickerFilter struct {
	toggle
	Placement
	id uuid.UUID

	Sticker *Sticker
	Size    float64 // Sticker width, as a fraction of the full image width
}

func NewStickerFilter(s *Sticker) *StickerFilter {
	return &StickerFilter{
		toggle:    toggle{enabled: true},
		Placement: NewPlacement(),
		id:        uuid.New(),
		Sticker:   s,
		Size:      DefaultStickerSize,
	}
}

func (f *StickerFilter) Identifier() string { return IDSticker }
func (f *StickerFilter) ID() uuid.UUID      { return f.id }
func (f *StickerFilter) overlay()           {}

func (f *StickerFilter) String() string {
	str := fmt.Sprintf("StickerFilter[%s, %s", f.id, f.Placement)
	if f.Sticker != nil {
		str += ", " + f.Sticker.String()
	}
	return str + "]"
}

// HasImage is true if there is a backing bitmap to draw.
func (f *StickerFilter) HasImage() bool {
	return f.Sticker != nil && f.Sticker.Image != nil
}

// Copy keeps the overlay ID, so a duplicated stack can be matched up with
// the one it came from. The sticker pixels are shared.
func (f *StickerFilter) Copy() *StickerFilter {
	c := *f
	if f.Sticker != nil {
		s := *f.Sticker
		c.Sticker = &s
	}
	return &c
}

func (f *StickerFilter) Clone() Filter        { return f.Copy() }
func (f *StickerFilter) CopyOverlay() Overlay { return f.Copy() }

// FlipHorizontal flips the placement, and swaps the sticker's orientation
// tag for its mirrored partner.
func (f *StickerFilter) FlipHorizontal() {
	f.flipOrientation()
	f.Placement.FlipHorizontal()
}

func (f *StickerFilter) FlipVertical() {
	f.flipOrientation()
	f.Placement.FlipVertical()
}

func (f *StickerFilter) flipOrientation() {
	if !f.HasImage() {
		return
	}
	flipped := *f.Sticker
	flipped.Orientation = flipped.Orientation.Flipped()
	f.Sticker = &flipped
}

// ToMatrix maps sticker pixel coords into the coords of a cropped image
// with the given bounds.
func (f *StickerFilter) ToMatrix(src, dst image.Rectangle) geom.Aff3 {
	crop := f.crop()
	c := crop.ToCropped(f.Center)
	w, h := float64(dst.Dx()), float64(dst.Dy())

	k := 0.0
	if src.Dx() > 0 {
		k = f.Size * w / crop.Dx() / float64(src.Dx())
	}

	// Remember they compose back to front - rightmost operations performed first
	return geom.Identity().
		Translate(float64(dst.Min.X)+c.X*w, float64(dst.Min.Y)+c.Y*h).
		Mult(f.Transform).
		Scale(k, k).
		Translate(-float64(src.Min.X)-float64(src.Dx())/2, -float64(src.Min.Y)-float64(src.Dy())/2)
}

func (f *StickerFilter) Apply(img image.Image) (image.Image, error) {
	if !f.HasImage() {
		return img, nil
	}

	src := f.Sticker.Oriented()
	dst := geom.CopyImage(img)
	m := f.ToMatrix(src.Bounds(), dst.Bounds())
	draw.BiLinear.Transform(dst, f64.Aff3(m), src, src.Bounds(), draw.Over, nil)

	return dst, nil
}
