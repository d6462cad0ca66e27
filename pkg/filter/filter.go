// Package filter defines the image filters that make up an editing stack,
// and the overlay filters (stickers, text) that carry a placement on top of
// the photo.
package filter

import (
	"image"
)

// Identifiers, one per filter role
const (
	IDEnhancement     = "enhancement"
	IDOrientationCrop = "orientation_crop"
	IDTiltShift       = "tilt_shift"
	IDEffect          = "effect"
	IDColorAdjustment = "color_adjustment"
	IDText            = "text"
	IDSticker         = "sticker"
)

// A Filter is a named, configurable image transform. Apply never mutates
// its input; it returns either the input itself (when it has nothing to
// do) or a new image.
type Filter interface {
	Identifier() string
	Enabled() bool
	SetEnabled(bool)
	Apply(img image.Image) (image.Image, error)

	// Clone returns an independent copy; nothing mutable is shared.
	Clone() Filter
}

type toggle struct {
	enabled bool
}

func (t *toggle) Enabled() bool      { return t.enabled }
func (t *toggle) SetEnabled(on bool) { t.enabled = on }

var (
	_ Filter  = (*EnhancementFilter)(nil)
	_ Filter  = (*OrientationCropFilter)(nil)
	_ Filter  = (*TiltShiftFilter)(nil)
	_ Filter  = (*EffectFilter)(nil)
	_ Filter  = (*ColorAdjustmentFilter)(nil)
	_ Overlay = (*TextFilter)(nil)
	_ Overlay = (*StickerFilter)(nil)
)
