// Package stack holds the FixedFilterStack, the editing session's chain of
// filters: one of each singleton filter in a fixed order, then the overlays
// in the order they were added.
package stack

import (
	"fmt"
	"image"
	"slices"

	"github.com/google/uuid"

	"github.com/abworrall/photostack/pkg/filter"
	"github.com/abworrall/photostack/pkg/geom"
)

// NumFixedFilters is the number of singleton filters at the head of the
// active list.
const NumFixedFilters = 6

// FixedFilterStack is not safe for concurrent use; an editing session
// should mutate it from one goroutine.
type FixedFilterStack struct {
	Enhancement     *filter.EnhancementFilter
	OrientationCrop *filter.OrientationCropFilter
	TiltShift       *filter.TiltShiftFilter
	Effect          *filter.EffectFilter
	ColorAdjustment *filter.ColorAdjustmentFilter
	Text            *filter.TextFilter

	stickerSize float64
	overlays    []filter.Overlay
}

// New makes a stack with the default filters.
func New() *FixedFilterStack {
	return newFromConfig(NewConfig())
}

func NewFromConfig(c Config) (*FixedFilterStack, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return newFromConfig(c), nil
}

func newFromConfig(c Config) *FixedFilterStack {
	s := &FixedFilterStack{
		Enhancement:     filter.NewEnhancementFilter(),
		OrientationCrop: filter.NewOrientationCropFilter(),
		TiltShift:       filter.NewTiltShiftFilter(),
		Effect:          filter.NewEffectFilter(),
		ColorAdjustment: filter.NewColorAdjustmentFilter(),
		Text:            filter.NewTextFilter(),
		stickerSize:     c.StickerSize,
		overlays:        []filter.Overlay{},
	}

	s.Enhancement.SetEnabled(c.Enhancement.Enabled)
	s.Enhancement.StoreEnhancedImage = c.Enhancement.StoreEnhancedImage
	if c.Enhancement.Operator != "" {
		s.Enhancement.Operator = c.Enhancement.Operator
	}

	s.OrientationCrop.CropRect = c.Crop
	s.Effect.Type = c.effectType()

	s.ColorAdjustment.Brightness = c.ColorAdjustment.Brightness
	s.ColorAdjustment.Contrast = c.ColorAdjustment.Contrast
	s.ColorAdjustment.Saturation = c.ColorAdjustment.Saturation

	s.TiltShift.Mode = c.tiltShiftMode()
	s.TiltShift.FocusBand = c.TiltShift.FocusBand
	s.TiltShift.BlurRadius = c.TiltShift.BlurRadius

	s.Text.SetText(c.Text.Text)
	s.Text.Color = c.Text.Color
	s.Text.FontSize = c.Text.FontSize

	s.syncCropRects()
	return s
}

func (s *FixedFilterStack) String() string {
	str := "FixedFilterStack [\n"
	for _, f := range s.ActiveFilters() {
		str += fmt.Sprintf("  %-16s enabled=%-5v %s\n", f.Identifier(), f.Enabled(), f)
	}
	return str + "]\n"
}

// ActiveFilters is the list of filters in the order they must be applied:
// the singletons, then the overlays. Disabled filters are included. Every
// overlay's crop rect is brought up to date first.
func (s *FixedFilterStack) ActiveFilters() []filter.Filter {
	s.syncCropRects()

	active := make([]filter.Filter, 0, NumFixedFilters+len(s.overlays))
	active = append(active,
		s.Enhancement,
		s.OrientationCrop,
		s.TiltShift,
		s.Effect,
		s.ColorAdjustment,
		s.Text,
	)
	for _, o := range s.overlays {
		active = append(active, o)
	}
	return active
}

func (s *FixedFilterStack) syncCropRects() {
	crop := s.OrientationCrop.CropRect
	s.Text.CropRect = crop
	for _, o := range s.overlays {
		o.Geometry().CropRect = crop
	}
}

// Overlay management

func (s *FixedFilterStack) Len() int { return len(s.overlays) }

// Overlays returns the overlays in order. The slice is a copy; the
// overlays are not.
func (s *FixedFilterStack) Overlays() []filter.Overlay {
	return slices.Clone(s.overlays)
}

func (s *FixedFilterStack) AddOverlay(o filter.Overlay) {
	o.Geometry().CropRect = s.OrientationCrop.CropRect
	s.overlays = append(s.overlays, o)
	Logger().Debug("overlay added", "kind", o.Identifier(), "id", o.ID(), "count", len(s.overlays))
}

// AddSticker wraps the sticker in a new, centred overlay at the
// configured default size.
func (s *FixedFilterStack) AddSticker(st *filter.Sticker) *filter.StickerFilter {
	f := filter.NewStickerFilter(st)
	f.Size = s.stickerSize
	s.AddOverlay(f)
	return f
}

func (s *FixedFilterStack) Overlay(id uuid.UUID) (filter.Overlay, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	return s.overlays[i], true
}

// RemoveOverlay reports whether an overlay with that ID was there to remove.
func (s *FixedFilterStack) RemoveOverlay(id uuid.UUID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.overlays = slices.Delete(s.overlays, i, i+1)
	Logger().Debug("overlay removed", "id", id, "count", len(s.overlays))
	return true
}

func (s *FixedFilterStack) index(id uuid.UUID) int {
	return slices.IndexFunc(s.overlays, func(o filter.Overlay) bool { return o.ID() == id })
}

// Stickers lists the sticker overlays, in order.
func (s *FixedFilterStack) Stickers() []*filter.StickerFilter {
	stickers := []*filter.StickerFilter{}
	for _, o := range s.overlays {
		if f, ok := o.(*filter.StickerFilter); ok {
			stickers = append(stickers, f)
		}
	}
	return stickers
}

// texts is the text singleton, followed by any text overlays.
func (s *FixedFilterStack) texts() []*filter.TextFilter {
	texts := []*filter.TextFilter{s.Text}
	for _, o := range s.overlays {
		if f, ok := o.(*filter.TextFilter); ok {
			texts = append(texts, f)
		}
	}
	return texts
}

// Sticker geometry

func (s *FixedFilterStack) RotateStickersRight() {
	for _, f := range s.Stickers() {
		f.RotateRight()
	}
	Logger().Debug("stickers rotated", "dir", "right", "count", len(s.Stickers()))
}

func (s *FixedFilterStack) RotateStickersLeft() {
	for _, f := range s.Stickers() {
		f.RotateLeft()
	}
	Logger().Debug("stickers rotated", "dir", "left", "count", len(s.Stickers()))
}

func (s *FixedFilterStack) FlipStickersHorizontal() {
	for _, f := range s.Stickers() {
		f.FlipHorizontal()
	}
	Logger().Debug("stickers flipped", "axis", "horizontal", "count", len(s.Stickers()))
}

func (s *FixedFilterStack) FlipStickersVertical() {
	for _, f := range s.Stickers() {
		f.FlipVertical()
	}
	Logger().Debug("stickers flipped", "axis", "vertical", "count", len(s.Stickers()))
}

// Text geometry

func (s *FixedFilterStack) RotateTextRight() {
	for _, f := range s.texts() {
		f.RotateRight()
	}
	Logger().Debug("text rotated", "dir", "right")
}

func (s *FixedFilterStack) RotateTextLeft() {
	for _, f := range s.texts() {
		f.RotateLeft()
	}
	Logger().Debug("text rotated", "dir", "left")
}

func (s *FixedFilterStack) FlipTextHorizontal() {
	for _, f := range s.texts() {
		f.FlipHorizontal()
	}
	Logger().Debug("text flipped", "axis", "horizontal")
}

func (s *FixedFilterStack) FlipTextVertical() {
	for _, f := range s.texts() {
		f.FlipVertical()
	}
	Logger().Debug("text flipped", "axis", "vertical")
}

// Whole canvas edits: the photo turns or mirrors, and everything placed on
// it follows.

func (s *FixedFilterStack) RotateRight() {
	s.OrientationCrop.RotateRight()
	s.RotateStickersRight()
	s.RotateTextRight()
	s.syncCropRects()
}

func (s *FixedFilterStack) RotateLeft() {
	s.OrientationCrop.RotateLeft()
	s.RotateStickersLeft()
	s.RotateTextLeft()
	s.syncCropRects()
}

func (s *FixedFilterStack) FlipHorizontal() {
	s.OrientationCrop.FlipHorizontal()
	s.FlipStickersHorizontal()
	s.FlipTextHorizontal()
	s.syncCropRects()
}

func (s *FixedFilterStack) FlipVertical() {
	s.OrientationCrop.FlipVertical()
	s.FlipStickersVertical()
	s.FlipTextVertical()
	s.syncCropRects()
}

// SetCrop replaces the crop rect, and passes it on to the overlays.
func (s *FixedFilterStack) SetCrop(r geom.Rect) error {
	if !r.Valid() {
		return fmt.Errorf("crop rect %s is not within the unit square", r)
	}
	s.OrientationCrop.CropRect = r
	s.syncCropRects()
	return nil
}

// Duplicate makes a wholly independent copy of the stack. Sticker bitmaps
// are shared, as nothing modifies them.
func (s *FixedFilterStack) Duplicate() *FixedFilterStack {
	d := &FixedFilterStack{
		Enhancement:     s.Enhancement.Copy(),
		OrientationCrop: s.OrientationCrop.Copy(),
		TiltShift:       s.TiltShift.Copy(),
		Effect:          s.Effect.Copy(),
		ColorAdjustment: s.ColorAdjustment.Copy(),
		Text:            s.Text.Copy(),
		stickerSize:     s.stickerSize,
		overlays:        make([]filter.Overlay, 0, len(s.overlays)),
	}
	for _, o := range s.overlays {
		d.overlays = append(d.overlays, o.CopyOverlay())
	}
	return d
}

// Render runs the enabled filters over img, in order.
func (s *FixedFilterStack) Render(img image.Image) (image.Image, error) {
	for _, f := range s.ActiveFilters() {
		if !f.Enabled() {
			continue
		}
		out, err := f.Apply(img)
		if err != nil {
			return nil, fmt.Errorf("filter '%s': %w", f.Identifier(), err)
		}
		Logger().Debug("filter applied", "filter", f.Identifier(), "bounds", out.Bounds())
		img = out
	}
	return img, nil
}
