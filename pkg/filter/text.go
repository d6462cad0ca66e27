package filter

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/unicode/norm"

	"github.com/abworrall/photostack/pkg/geom"
)

const (
	DefaultTextColor    = "#ffffff"
	DefaultTextFontSize = 0.05 // fraction of the full image height

	faceHeight = 13.0 // basicfont.Face7x13
)

// TextFilter draws a single line of text over the photo.
type TextFilter struct {
	toggle
	Placement
	id uuid.UUID

	text     string
	Color    string  // Hex, e.g. "#ff8800"
	FontSize float64 // Line height, as a fraction of the full image height
}

func NewTextFilter() *TextFilter {
	return &TextFilter{
		toggle:    toggle{enabled: true},
		Placement: NewPlacement(),
		id:        uuid.New(),
		Color:     DefaultTextColor,
		FontSize:  DefaultTextFontSize,
	}
}

func (f *TextFilter) Identifier() string { return IDText }
func (f *TextFilter) ID() uuid.UUID      { return f.id }
func (f *TextFilter) overlay()           {}
func (f *TextFilter) Text() string       { return f.text }

// SetText stores the text NFC-normalized, so that composed and decomposed
// input render the same.
func (f *TextFilter) SetText(s string) { f.text = norm.NFC.String(s) }

func (f *TextFilter) String() string {
	return fmt.Sprintf("TextFilter[%s, %q, %s]", f.id, f.text, f.Placement)
}

func (f *TextFilter) Copy() *TextFilter {
	c := *f
	return &c
}

func (f *TextFilter) Clone() Filter        { return f.Copy() }
func (f *TextFilter) CopyOverlay() Overlay { return f.Copy() }

func (f *TextFilter) Apply(img image.Image) (image.Image, error) {
	if f.text == "" {
		return img, nil
	}

	col, err := colorful.Hex(f.Color)
	if err != nil {
		return nil, fmt.Errorf("text color '%s': %v", f.Color, err)
	}

	crop := f.crop()
	dc := gg.NewContextForImage(geom.CopyImage(img))
	w, h := float64(dc.Width()), float64(dc.Height())
	c := crop.ToCropped(f.Center)
	scale := f.FontSize * h / crop.Dy() / faceHeight * f.Transform.ScaleFactor()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(col)
	dc.Push()
	dc.Translate(c.X*w, c.Y*h)
	dc.Rotate(f.Transform.Angle())
	dc.Scale(scale, scale)
	dc.DrawStringAnchored(f.text, 0, 0, 0.5, 0.5)
	dc.Pop()

	return dc.Image(), nil
}
